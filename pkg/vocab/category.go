package vocab

import "strings"

// categoryRule pairs a keyword pattern with the category it implies.
// Rules are evaluated in priority order; the first hit wins.
type categoryRule struct {
	keyword  string
	category string
}

// categoryRules is the ordered cascade. Keeping it as a table (instead of a
// chain of string-contains branches) keeps the heuristic auditable and
// testable in isolation.
var categoryRules = []categoryRule{
	{"algorithm", "algorithm"},
	{"method", "method"},
	{"technique", "technique"},
	{"framework", "framework"},
	{"model", "model"},
	{"theory", "theory"},
	{"concept", "concept"},
	{"tool", "tool"},
	{"platform", "platform"},
	{"system", "system"},
	{"api", "api"},
}

// domainBuckets maps topic keywords to a domain category used when the
// keyword cascade finds nothing.
var domainBuckets = []categoryRule{
	{"programming", "technology"},
	{"software", "technology"},
	{"computer", "technology"},
	{"machine learning", "technology"},
	{"biology", "science"},
	{"chemistry", "science"},
	{"physics", "science"},
	{"medicine", "health"},
	{"health", "health"},
	{"finance", "business"},
	{"business", "business"},
	{"economics", "business"},
	{"history", "humanities"},
	{"philosophy", "humanities"},
	{"art", "humanities"},
	{"language", "language"},
	{"grammar", "language"},
}

const longTermRuneCount = 12

// Categorize assigns a category from the term text and definition, falling
// back to topic-domain buckets and finally to generic buckets.
func Categorize(term, definition, topicName string) string {
	haystack := strings.ToLower(term + " " + definition)
	for _, rule := range categoryRules {
		if strings.Contains(haystack, rule.keyword) {
			return rule.category
		}
	}

	topic := strings.ToLower(topicName)
	for _, rule := range domainBuckets {
		if strings.Contains(topic, rule.keyword) {
			return rule.category
		}
	}

	if strings.Contains(strings.TrimSpace(term), " ") {
		return "multi-word-concept"
	}
	if len([]rune(term)) > longTermRuneCount {
		return "long-term"
	}
	return "general"
}
