package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vocabforge-be/pkg/llm"
	"vocabforge-be/pkg/vocab"
)

// LLMSource generates a candidate term set for a topic via the completion
// provider. Model output is untrusted input: it is parsed strictly and every
// candidate still passes the quality gate downstream.
type LLMSource struct {
	provider llm.Provider
}

func NewLLMSource(provider llm.Provider) *LLMSource {
	return &LLMSource{provider: provider}
}

// TermSet is the parsed payload of one generation call.
type TermSet struct {
	Candidates []vocab.Candidate
	Facts      []string
	Usage      *llm.Completion
}

// --- LLM response schema (untrusted) ---

type termSetResponse struct {
	Terms []struct {
		Term       string   `json:"term"`
		Definition string   `json:"definition"`
		Examples   []string `json:"examples"`
	} `json:"terms"`
	Facts []string `json:"facts"`
}

const termSetPromptTemplate = `You are a vocabulary curator. Generate %d %s-level vocabulary terms for the topic "%s".

Respond with ONLY a JSON object, no markdown, matching exactly:
{"terms":[{"term":"...","definition":"...","examples":["..."]}],"facts":["..."]}

Rules:
- each definition is one or two plain sentences
- at most 3 examples per term, each a full sentence using the term
- include 3 short interesting facts about the topic in "facts"`

// GenerateTermSet asks the model for count terms at the given complexity.
func (s *LLMSource) GenerateTermSet(ctx context.Context, topic string, count int, complexity vocab.Complexity) (*TermSet, error) {
	prompt := fmt.Sprintf(termSetPromptTemplate, count, complexity, topic)

	completion, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil {
		return nil, fmt.Errorf("llm generation failed: %w", err)
	}

	parsed, err := parseTermSetResponse(completion.Content)
	if err != nil {
		return nil, fmt.Errorf("llm response rejected: %w", err)
	}

	set := &TermSet{
		Facts: parsed.Facts,
		Usage: completion,
	}
	for _, t := range parsed.Terms {
		c := vocab.Candidate{
			Term:        vocab.CleanMarkup(t.Term),
			Definition:  vocab.CleanMarkup(t.Definition),
			Source:      "ai",
			Tier:        vocab.TierAI,
			AIGenerated: true,
		}
		for _, ex := range t.Examples {
			if ex = vocab.CleanMarkup(ex); ex != "" && len(c.Examples) < 3 {
				c.Examples = append(c.Examples, ex)
			}
		}
		c.Confidence = vocab.AssignConfidence(c)
		set.Candidates = append(set.Candidates, c)
	}
	return set, nil
}

// parseTermSetResponse tolerates markdown fences around the JSON but nothing
// else.
func parseTermSetResponse(raw string) (*termSetResponse, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Some models prepend prose; recover the outermost object.
	if !strings.HasPrefix(cleaned, "{") {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("no JSON object in response")
		}
		cleaned = cleaned[start : end+1]
	}

	var parsed termSetResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal term set: %w", err)
	}
	if len(parsed.Terms) == 0 {
		return nil, fmt.Errorf("term set is empty")
	}
	return &parsed, nil
}
