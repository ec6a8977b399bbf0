package vocab

import (
	"strings"
)

const (
	minDefinitionLen = 10
	maxDefinitionLen = 1000
)

// historicalEvents are well-known events whose unexpected appearance in a
// definition signals the source drifted off topic (a common failure of
// crowd-sourced and LLM content).
var historicalEvents = []string{
	"world war",
	"cold war",
	"french revolution",
	"industrial revolution",
	"civil war",
	"battle of",
	"great depression",
	"fall of rome",
	"renaissance period",
}

// RejectReason explains why the quality gate dropped a candidate.
type RejectReason string

const (
	RejectBlocked   RejectReason = "blocked_term"
	RejectMarkup    RejectReason = "markup_artifacts"
	RejectTooShort  RejectReason = "definition_too_short"
	RejectTooLong   RejectReason = "definition_too_long"
	RejectOffTopic  RejectReason = "off_topic"
	RejectEmptyTerm RejectReason = "empty_term"
	RejectNone      RejectReason = ""
)

// QualityGate validates candidate content before it may enter the pipeline.
type QualityGate struct {
	blocklist []string
}

// NewQualityGate builds a gate with a lowercased block-list of inappropriate
// terms.
func NewQualityGate(blocklist []string) *QualityGate {
	lowered := make([]string, 0, len(blocklist))
	for _, w := range blocklist {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			lowered = append(lowered, w)
		}
	}
	return &QualityGate{blocklist: lowered}
}

// Check returns RejectNone when the candidate passes, or the reason it fails.
func (g *QualityGate) Check(c Candidate, topicName string) RejectReason {
	if NormalizeKey(c.Term) == "" {
		return RejectEmptyTerm
	}

	content := strings.ToLower(c.Term + " " + c.Definition)
	for _, blocked := range g.blocklist {
		if strings.Contains(content, blocked) {
			return RejectBlocked
		}
	}

	if HasMarkupArtifacts(c.Term) || HasMarkupArtifacts(c.Definition) {
		return RejectMarkup
	}

	defLen := len(strings.TrimSpace(c.Definition))
	if defLen < minDefinitionLen {
		return RejectTooShort
	}
	if defLen > maxDefinitionLen {
		return RejectTooLong
	}

	if offTopic(c, topicName) {
		return RejectOffTopic
	}

	return RejectNone
}

// offTopic flags a definition mentioning an unrelated well-known historical
// event when neither the term nor the topic has any connection to it.
func offTopic(c Candidate, topicName string) bool {
	def := strings.ToLower(c.Definition)
	term := strings.ToLower(c.Term)
	topic := strings.ToLower(topicName)
	for _, event := range historicalEvents {
		if !strings.Contains(def, event) {
			continue
		}
		if strings.Contains(term, event) || strings.Contains(topic, event) {
			continue
		}
		// The event has to share at least a word with term/topic to count as
		// connected; otherwise the definition wandered.
		if sharesWord(event, term) || sharesWord(event, topic) {
			continue
		}
		return true
	}
	return false
}

func sharesWord(a, b string) bool {
	for _, wa := range strings.Fields(a) {
		for _, wb := range strings.Fields(b) {
			if wa == wb {
				return true
			}
		}
	}
	return false
}
