package vocab

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeKeepsHighestConfidence(t *testing.T) {
	batch := []Candidate{
		{Term: "Machine Learning", Definition: "def a", Confidence: 0.7},
		{Term: "machine learning", Definition: "def b", Confidence: 0.8},
	}

	out := Dedupe(batch)

	require.Len(t, out, 1)
	assert.Equal(t, 0.8, out[0].Confidence)
	assert.Equal(t, "def b", out[0].Definition)
}

func TestDedupeTieBreaks(t *testing.T) {
	t.Run("verified source beats unverified", func(t *testing.T) {
		batch := []Candidate{
			{Term: "Recursion", Confidence: 0.8, AIGenerated: true},
			{Term: "recursion", Confidence: 0.8, Verified: true, Source: "wiktionary"},
		}
		out := Dedupe(batch)
		require.Len(t, out, 1)
		assert.True(t, out[0].Verified)
	})

	t.Run("ai candidate with example beats bare ai candidate", func(t *testing.T) {
		batch := []Candidate{
			{Term: "Recursion", Confidence: 0.6, AIGenerated: true},
			{Term: "recursion", Confidence: 0.6, AIGenerated: true, Examples: []string{"recursion in practice"}},
		}
		out := Dedupe(batch)
		require.Len(t, out, 1)
		assert.NotEmpty(t, out[0].Examples)
	})
}

func TestDedupeOrderIndependent(t *testing.T) {
	batch := []Candidate{
		{Term: "Machine Learning", Confidence: 0.7, Source: "ai", AIGenerated: true},
		{Term: "machine learning", Confidence: 0.8, Source: "wikipedia", Verified: true},
		{Term: "Neural Network", Confidence: 0.9, Source: "wiktionary", Verified: true},
		{Term: "neural network", Confidence: 0.9, Source: "wikipedia", Verified: true},
		{Term: "Backpropagation", Confidence: 0.6, Source: "ai", AIGenerated: true},
	}

	want := Dedupe(batch)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		shuffled := make([]Candidate, len(batch))
		copy(shuffled, batch)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Dedupe(shuffled)
		assert.Equal(t, want, got, "permutation %d changed the dedupe result", i)
	}
}

func TestDedupeDropsEmptyTerms(t *testing.T) {
	out := Dedupe([]Candidate{{Term: "   "}, {Term: "!!"}})
	assert.Empty(t, out)
}
