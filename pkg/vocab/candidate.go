package vocab

// SourceTier ranks the provenance of an external candidate.
type SourceTier int

const (
	TierUnknown SourceTier = iota
	TierAI
	TierCommunity
	TierEncyclopedia
	TierCurated
)

// TopTier reports whether the tier belongs to the trusted set
// (encyclopedia and curated dictionary sources).
func (t SourceTier) TopTier() bool {
	return t == TierEncyclopedia || t == TierCurated
}

func (t SourceTier) String() string {
	switch t {
	case TierAI:
		return "ai"
	case TierCommunity:
		return "community"
	case TierEncyclopedia:
		return "encyclopedia"
	case TierCurated:
		return "curated"
	default:
		return "unknown"
	}
}

// Complexity buckets a definition by reading difficulty.
type Complexity string

const (
	ComplexityBeginner     Complexity = "beginner"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// Candidate is a term proposal flowing through the generation pipeline.
// It is provider-agnostic: LLM output and dictionary lookups both map here.
type Candidate struct {
	Term        string
	Definition  string
	Examples    []string
	Source      string
	SourceURL   string
	Tier        SourceTier
	Confidence  float64
	Verified    bool
	AIGenerated bool
}

// FirstExample returns the first example sentence, or "".
func (c Candidate) FirstExample() string {
	if len(c.Examples) == 0 {
		return ""
	}
	return c.Examples[0]
}
