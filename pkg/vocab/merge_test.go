package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeDefinitionRules(t *testing.T) {
	original := Candidate{
		Term:        "Gradient Descent",
		Definition:  "An optimization method.",
		Confidence:  0.6,
		AIGenerated: true,
		Source:      "ai",
	}

	t.Run("top tier external wins", func(t *testing.T) {
		external := Candidate{
			Definition: "Short one.",
			Source:     "wikipedia",
			SourceURL:  "https://en.wikipedia.org/wiki/Gradient_descent",
			Tier:       TierEncyclopedia,
			Confidence: 0.85,
		}
		merged := Merge(original, external)
		assert.Equal(t, external.Definition, merged.Definition)
		assert.Equal(t, "wikipedia", merged.Source)
		assert.True(t, merged.Verified)
		assert.False(t, merged.AIGenerated)
		assert.Equal(t, 0.85, merged.Confidence)
	})

	t.Run("materially longer external wins", func(t *testing.T) {
		external := Candidate{
			Definition: "An iterative optimization procedure that follows the negative gradient of a differentiable objective toward a local minimum.",
			Source:     "community",
			Tier:       TierCommunity,
			Confidence: 0.7,
		}
		merged := Merge(original, external)
		assert.Equal(t, external.Definition, merged.Definition)
	})

	t.Run("crowd source replaces llm original", func(t *testing.T) {
		external := Candidate{
			Definition: "Walk downhill, basically.",
			Source:     "community",
			Tier:       TierCommunity,
			Confidence: 0.7,
		}
		merged := Merge(original, external)
		assert.Equal(t, external.Definition, merged.Definition)
	})

	t.Run("weak external loses to human original", func(t *testing.T) {
		humanOriginal := original
		humanOriginal.AIGenerated = false
		external := Candidate{
			Definition: "Short one again.",
			Source:     "community",
			Tier:       TierCommunity,
			Confidence: 0.5,
		}
		merged := Merge(humanOriginal, external)
		assert.Equal(t, humanOriginal.Definition, merged.Definition)
		assert.Equal(t, humanOriginal.Confidence, merged.Confidence)
	})
}

func TestMergeExampleRules(t *testing.T) {
	t.Run("external fills empty examples", func(t *testing.T) {
		merged := Merge(
			Candidate{Term: "Stack", Definition: "A LIFO data structure used everywhere.", Confidence: 0.9},
			Candidate{Examples: []string{"push and pop"}, Tier: TierCommunity},
		)
		assert.Equal(t, []string{"push and pop"}, merged.Examples)
		assert.True(t, merged.Verified)
	})

	t.Run("strictly more examples wins", func(t *testing.T) {
		merged := Merge(
			Candidate{Term: "Stack", Definition: "A LIFO data structure used everywhere.", Examples: []string{"one"}, Confidence: 0.9},
			Candidate{Examples: []string{"one", "two"}, Tier: TierCommunity},
		)
		assert.Len(t, merged.Examples, 2)
	})

	t.Run("equal count from non top tier keeps original", func(t *testing.T) {
		merged := Merge(
			Candidate{Term: "Stack", Definition: "A LIFO data structure used everywhere.", Examples: []string{"mine"}, Confidence: 0.9},
			Candidate{Examples: []string{"theirs"}, Tier: TierCommunity},
		)
		assert.Equal(t, []string{"mine"}, merged.Examples)
	})
}
