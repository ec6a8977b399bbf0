package vocab

import (
	"regexp"
	"strings"
)

// complexVocabRe matches algorithmic/scientific/technical vocabulary that
// pushes a definition into the advanced bucket regardless of length.
var complexVocabRe = regexp.MustCompile(`(?i)\b(algorithm|asymptotic|heuristic|stochastic|polynomial|quantum|molecular|thermodynamic|cryptograph\w*|eigen\w*|covarian\w*|isomorph\w*|topolog\w*|epistemolog\w*|phenomenolog\w*|homeostas\w*|electromagnet\w*|differentiable|recursion|concurrency|idempoten\w*)\b`)

const (
	beginnerMaxWords     = 15
	intermediateMaxWords = 25
	advancedAvgWordLen   = 8.0
)

// EstimateComplexity buckets a definition by word count, average word length
// and technical vocabulary.
func EstimateComplexity(definition string) Complexity {
	words := strings.Fields(definition)
	count := len(words)
	if count == 0 {
		return ComplexityBeginner
	}

	var totalLen int
	for _, w := range words {
		totalLen += len(w)
	}
	avgLen := float64(totalLen) / float64(count)

	if count > intermediateMaxWords || avgLen > advancedAvgWordLen || complexVocabRe.MatchString(definition) {
		return ComplexityAdvanced
	}
	if count <= beginnerMaxWords {
		return ComplexityBeginner
	}
	return ComplexityIntermediate
}
