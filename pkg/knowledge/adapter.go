package knowledge

import (
	"context"
	"sync"
	"time"

	"vocabforge-be/internal/pkg/logger"
	"vocabforge-be/pkg/vocab"
)

// Adapter fronts all external knowledge backends: the ranked lookup sources
// (encyclopedia, curated dictionary, crowd dictionary) and the LLM term-set
// generator. Every lookup goes through the per-source rate limiter.
type Adapter struct {
	sources    []Source // ranked preference order
	llmSource  *LLMSource
	limiter    *RateLimiter
	logger     logger.ILogger
	inFlight   int
	batchDelay time.Duration
}

// AdapterConfig bounds the adapter's concurrency.
type AdapterConfig struct {
	MaxInFlight int           // concurrent lookups per batch, 3-5 is sane
	BatchDelay  time.Duration // pause between lookup batches
}

func NewAdapter(
	sources []Source,
	llmSource *LLMSource,
	limiter *RateLimiter,
	sysLogger logger.ILogger,
	cfg AdapterConfig,
) *Adapter {
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 3
	}
	return &Adapter{
		sources:    sources,
		llmSource:  llmSource,
		limiter:    limiter,
		logger:     sysLogger,
		inFlight:   cfg.MaxInFlight,
		batchDelay: cfg.BatchDelay,
	}
}

// AcquireCandidates produces the raw candidate set for a topic from the LLM
// completion service.
func (a *Adapter) AcquireCandidates(ctx context.Context, topic string, count int, complexity vocab.Complexity) (*TermSet, error) {
	if a.limiter != nil && !a.limiter.Allow(ctx, "llm") {
		a.logger.Warn("KNOWLEDGE", "LLM rate limit reached, skipping generation", map[string]interface{}{
			"topic": topic,
		})
		return &TermSet{}, nil
	}
	return a.llmSource.GenerateTermSet(ctx, topic, count, complexity)
}

// LookupBest walks the ranked sources and returns the first hit as an
// enrichment candidate, or nil when every source misses, declines or fails.
func (a *Adapter) LookupBest(ctx context.Context, term, topic string) *vocab.Candidate {
	for _, src := range a.sources {
		if a.limiter != nil && !a.limiter.Allow(ctx, src.Name()) {
			continue
		}
		res, err := src.Lookup(ctx, term, topic)
		if err != nil {
			// Acquisition failures are non-fatal: skip the source
			a.logger.Warn("KNOWLEDGE", "Source lookup failed", map[string]interface{}{
				"source": src.Name(),
				"term":   term,
				"error":  err.Error(),
			})
			continue
		}
		if res == nil {
			continue
		}
		c := res.ToCandidate(term)
		return &c
	}
	return nil
}

// EnrichBatch looks up every candidate concurrently (bounded) and merges the
// best external hit into it. Candidates with no external hit pass through
// unchanged. An inter-batch delay keeps burst pressure off the sources.
func (a *Adapter) EnrichBatch(ctx context.Context, topic string, candidates []vocab.Candidate) []vocab.Candidate {
	out := make([]vocab.Candidate, len(candidates))
	copy(out, candidates)

	for start := 0; start < len(out); start += a.inFlight {
		end := start + a.inFlight
		if end > len(out) {
			end = len(out)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if external := a.LookupBest(ctx, out[i].Term, topic); external != nil {
					out[i] = vocab.Merge(out[i], *external)
				}
			}(i)
		}
		wg.Wait()

		if a.batchDelay > 0 && end < len(out) {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(a.batchDelay):
			}
		}
	}
	return out
}
