package vocab

// definitionGrowthFactor is how much longer an external definition must be
// before it displaces a non-trusted original.
const definitionGrowthFactor = 1.5

// Merge enriches an original candidate with an external lookup result.
// Field decisions are independent: definition and examples are each taken
// from whichever side the rules favor, confidence is the max of both, and
// using any external content marks the term verified and clears the
// AI-generated flag.
func Merge(original, external Candidate) Candidate {
	merged := original

	usedExternal := false

	if useExternalDefinition(original, external) {
		merged.Definition = external.Definition
		merged.Source = external.Source
		merged.SourceURL = external.SourceURL
		merged.Tier = external.Tier
		usedExternal = true
	}

	if useExternalExamples(original, external) {
		merged.Examples = external.Examples
		usedExternal = true
	}

	if external.Confidence > merged.Confidence {
		merged.Confidence = external.Confidence
	}

	if usedExternal {
		merged.Verified = true
		merged.AIGenerated = false
	}

	return merged
}

func useExternalDefinition(original, external Candidate) bool {
	if external.Definition == "" {
		return false
	}
	if external.Tier.TopTier() {
		return true
	}
	if float64(len(external.Definition)) > definitionGrowthFactor*float64(len(original.Definition)) {
		return true
	}
	// A crowd-sourced human definition still beats pure LLM output.
	return original.AIGenerated && external.Tier == TierCommunity
}

func useExternalExamples(original, external Candidate) bool {
	if len(external.Examples) == 0 {
		return false
	}
	if len(original.Examples) == 0 {
		return true
	}
	if external.Tier.TopTier() {
		return true
	}
	return len(external.Examples) > len(original.Examples)
}
