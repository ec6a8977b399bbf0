package knowledge

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/pkg/vocab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name    string
	tier    vocab.SourceTier
	result  *Result
	err     error
	lookups int64
}

func (s *stubSource) Name() string           { return s.name }
func (s *stubSource) Tier() vocab.SourceTier { return s.tier }

func (s *stubSource) Lookup(ctx context.Context, term, topic string) (*Result, error) {
	atomic.AddInt64(&s.lookups, 1)
	return s.result, s.err
}

func newTestAdapter(sources ...Source) *Adapter {
	return NewAdapter(sources, nil, nil, logger.NewNopLogger(), AdapterConfig{MaxInFlight: 2})
}

func TestAdapter_LookupBest_FirstHitWins(t *testing.T) {
	curated := &stubSource{
		name: "dictionary",
		tier: vocab.TierCurated,
		result: &Result{
			Definition: "A book of financial accounts.",
			Source:     "dictionary",
			Tier:       vocab.TierCurated,
			Confidence: 0.95,
		},
	}
	community := &stubSource{name: "community", tier: vocab.TierCommunity}

	a := newTestAdapter(curated, community)

	c := a.LookupBest(context.Background(), "ledger", "Accounting")
	require.NotNil(t, c)
	assert.Equal(t, "dictionary", c.Source)
	assert.True(t, c.Verified)
	assert.EqualValues(t, 0, atomic.LoadInt64(&community.lookups))
}

func TestAdapter_LookupBest_SkipsFailingSource(t *testing.T) {
	broken := &stubSource{name: "wikipedia", err: errors.New("boom")}
	working := &stubSource{
		name: "community",
		tier: vocab.TierCommunity,
		result: &Result{
			Definition: "Holding an asset long term.",
			Source:     "community",
			Tier:       vocab.TierCommunity,
			Confidence: 0.7,
		},
	}

	a := newTestAdapter(broken, working)

	c := a.LookupBest(context.Background(), "hodl", "Cryptocurrency")
	require.NotNil(t, c)
	assert.Equal(t, "community", c.Source)
}

func TestAdapter_LookupBest_AllMiss(t *testing.T) {
	a := newTestAdapter(
		&stubSource{name: "wikipedia"},
		&stubSource{name: "dictionary"},
	)

	assert.Nil(t, a.LookupBest(context.Background(), "zzzz", ""))
}

func TestAdapter_LookupBest_RateLimited(t *testing.T) {
	hit := &stubSource{
		name:   "wikipedia",
		result: &Result{Definition: "x", Source: "wikipedia", Confidence: 0.85},
	}
	limiter := NewRateLimiter(NewLocalWindowStore(time.Minute), 1, time.Minute)
	a := NewAdapter([]Source{hit}, nil, limiter, logger.NewNopLogger(), AdapterConfig{MaxInFlight: 2})
	ctx := context.Background()

	require.NotNil(t, a.LookupBest(ctx, "first", ""))
	assert.Nil(t, a.LookupBest(ctx, "second", ""))
	assert.EqualValues(t, 1, atomic.LoadInt64(&hit.lookups))
}

func TestAdapter_EnrichBatch_MergesExternalHit(t *testing.T) {
	external := &stubSource{
		name: "dictionary",
		tier: vocab.TierCurated,
		result: &Result{
			Definition: "A book of financial accounts.",
			Source:     "dictionary",
			Tier:       vocab.TierCurated,
			Confidence: 0.95,
		},
	}
	a := newTestAdapter(external)

	candidates := []vocab.Candidate{
		{Term: "ledger", Definition: "An AI guess.", Source: "ai", Tier: vocab.TierAI, Confidence: 0.5, AIGenerated: true},
	}

	out := a.EnrichBatch(context.Background(), "Accounting", candidates)
	require.Len(t, out, 1)

	assert.Equal(t, "A book of financial accounts.", out[0].Definition)
	assert.Equal(t, "dictionary", out[0].Source)
	assert.True(t, out[0].Verified)
	// The original slice is left untouched.
	assert.Equal(t, "An AI guess.", candidates[0].Definition)
}

func TestAdapter_EnrichBatch_NoHitPassesThrough(t *testing.T) {
	a := newTestAdapter(&stubSource{name: "dictionary"})

	candidates := []vocab.Candidate{
		{Term: "qubit", Definition: "A quantum bit.", Source: "ai", Tier: vocab.TierAI, Confidence: 0.5, AIGenerated: true},
	}

	out := a.EnrichBatch(context.Background(), "Quantum Computing", candidates)
	require.Len(t, out, 1)
	assert.Equal(t, candidates[0], out[0])
}

func TestAdapter_EnrichBatch_BoundsConcurrency(t *testing.T) {
	var inFlight, peak int64
	src := &slowSource{inFlight: &inFlight, peak: &peak}
	a := NewAdapter([]Source{src}, nil, nil, logger.NewNopLogger(), AdapterConfig{MaxInFlight: 2})

	candidates := make([]vocab.Candidate, 7)
	for i := range candidates {
		candidates[i] = vocab.Candidate{Term: "t", Definition: "d"}
	}

	a.EnrichBatch(context.Background(), "X", candidates)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
}

type slowSource struct {
	inFlight *int64
	peak     *int64
}

func (s *slowSource) Name() string           { return "slow" }
func (s *slowSource) Tier() vocab.SourceTier { return vocab.TierCurated }

func (s *slowSource) Lookup(ctx context.Context, term, topic string) (*Result, error) {
	n := atomic.AddInt64(s.inFlight, 1)
	for {
		p := atomic.LoadInt64(s.peak)
		if n <= p || atomic.CompareAndSwapInt64(s.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt64(s.inFlight, -1)
	return nil, nil
}
