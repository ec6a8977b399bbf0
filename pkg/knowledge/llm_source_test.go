package knowledge

import (
	"context"
	"testing"

	"vocabforge-be/pkg/llm"
	"vocabforge-be/pkg/vocab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	content string
	err     error
	prompt  string
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	return nil, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (*llm.Completion, error) {
	p.prompt = prompt
	if p.err != nil {
		return nil, p.err
	}
	return &llm.Completion{
		Content:          p.content,
		PromptTokens:     120,
		CompletionTokens: 340,
		Model:            "llama3",
	}, nil
}

func TestLLMSource_GenerateTermSet(t *testing.T) {
	provider := &stubProvider{
		content: `{"terms":[{"term":"consensus","definition":"Agreement among distributed nodes on a shared state.","examples":["The network reached consensus on the new block."]}],"facts":["The first blockchain launched in 2009."]}`,
	}
	src := NewLLMSource(provider)

	set, err := src.GenerateTermSet(context.Background(), "Blockchain", 5, vocab.ComplexityIntermediate)
	require.NoError(t, err)

	require.Len(t, set.Candidates, 1)
	c := set.Candidates[0]
	assert.Equal(t, "consensus", c.Term)
	assert.Equal(t, "ai", c.Source)
	assert.Equal(t, vocab.TierAI, c.Tier)
	assert.True(t, c.AIGenerated)
	assert.Greater(t, c.Confidence, 0.0)

	assert.Equal(t, []string{"The first blockchain launched in 2009."}, set.Facts)
	require.NotNil(t, set.Usage)
	assert.Equal(t, 460, set.Usage.TotalTokens())

	assert.Contains(t, provider.prompt, "Blockchain")
	assert.Contains(t, provider.prompt, "5 intermediate-level")
}

func TestLLMSource_GenerateTermSet_CapsExamples(t *testing.T) {
	provider := &stubProvider{
		content: `{"terms":[{"term":"node","definition":"A participant in the network.","examples":["One.","Two.","Three.","Four.","Five."]}]}`,
	}
	src := NewLLMSource(provider)

	set, err := src.GenerateTermSet(context.Background(), "Networking", 1, vocab.ComplexityBeginner)
	require.NoError(t, err)
	require.Len(t, set.Candidates, 1)
	assert.Len(t, set.Candidates[0].Examples, 3)
}

func TestParseTermSetResponse(t *testing.T) {
	valid := `{"terms":[{"term":"a","definition":"b"}],"facts":[]}`

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"bare json", valid, false},
		{"fenced json", "```json\n" + valid + "\n```", false},
		{"fenced no language", "```\n" + valid + "\n```", false},
		{"prose prefix", "Here is your vocabulary:\n" + valid, false},
		{"no object", "I cannot help with that.", true},
		{"invalid json", `{"terms":[`, true},
		{"empty terms", `{"terms":[],"facts":["x"]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseTermSetResponse(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, parsed.Terms, 1)
		})
	}
}
