package knowledge

import (
	"context"

	"vocabforge-be/pkg/vocab"
)

// Result is a single lookup hit from an external dictionary or encyclopedia.
type Result struct {
	Definition string
	Examples   []string
	Source     string
	SourceURL  string
	Tier       vocab.SourceTier
	Confidence float64
	Etymology  string
	Synonyms   []string
}

// Source is one ranked external lookup backend. Lookup returns (nil, nil)
// when the term is simply not found; errors are reserved for transport
// failures.
type Source interface {
	Name() string
	Tier() vocab.SourceTier
	Lookup(ctx context.Context, term, topic string) (*Result, error)
}

// ToCandidate converts a lookup hit into a pipeline candidate.
func (r *Result) ToCandidate(term string) vocab.Candidate {
	c := vocab.Candidate{
		Term:       term,
		Definition: r.Definition,
		Examples:   r.Examples,
		Source:     r.Source,
		SourceURL:  r.SourceURL,
		Tier:       r.Tier,
		Confidence: r.Confidence,
		Verified:   true,
	}
	if c.Confidence == 0 {
		c.Confidence = vocab.AssignConfidence(c)
	}
	return c
}
