package vocab

// Confidence anchors per provenance class. Curated dictionaries sit above
// encyclopedia sources inside the trusted band.
const (
	confidenceCurated      = 0.95
	confidenceEncyclopedia = 0.85
	confidenceCommunity    = 0.7
	confidenceAIExampled   = 0.75
	confidenceAIBare       = 0.6
	confidenceUnsourced    = 0.4
)

// AssignConfidence scores a candidate in [0,1] from its provenance and
// content heuristics.
func AssignConfidence(c Candidate) float64 {
	var score float64
	switch {
	case c.Tier == TierCurated:
		score = confidenceCurated
	case c.Tier == TierEncyclopedia:
		score = confidenceEncyclopedia
	case c.Tier == TierCommunity:
		score = confidenceCommunity
	case c.AIGenerated && hasSubstantiveExample(c):
		score = confidenceAIExampled
	case c.AIGenerated:
		score = confidenceAIBare
	default:
		score = confidenceUnsourced
	}
	return clamp01(score)
}

// hasSubstantiveExample requires at least one example longer than 10 chars,
// so a placeholder like "n/a" does not earn the exampled bonus.
func hasSubstantiveExample(c Candidate) bool {
	for _, ex := range c.Examples {
		if len(ex) > 10 {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
