package vocab

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingPunctRe = regexp.MustCompile("[\\s.,;:!?'\"`]+$")
	nonWordRe       = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
)

// Normalize canonicalizes term text: trims, collapses whitespace, strips
// trailing punctuation and quotes, removes non-word/non-hyphen characters and
// title-cases each word. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	s := strings.TrimSpace(text)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = trailingPunctRe.ReplaceAllString(s, "")
	s = nonWordRe.ReplaceAllString(s, "")

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// NormalizeKey lowercases the normalized form. Used as the dedup/grouping key
// so that "Machine Learning" and "machine learning" collide.
func NormalizeKey(text string) string {
	return strings.ToLower(Normalize(text))
}

// TopicKey canonicalizes a topic name for lookup only. Display names keep
// their original casing.
func TopicKey(topicName string) string {
	s := strings.TrimSpace(topicName)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(s)
}

func titleWord(w string) string {
	runes := []rune(w)
	for i, r := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(r)
		} else {
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes)
}
