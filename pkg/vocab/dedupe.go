package vocab

import "sort"

// Dedupe collapses candidates that normalize to the same text, keeping a
// single winner per group. The result is independent of input order: the
// winner is picked by a total ordering (confidence, then verified provenance,
// then presence of an example, then lexicographic tiebreaks) and the surviving
// candidates are returned sorted by their normalized key.
func Dedupe(candidates []Candidate) []Candidate {
	groups := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		key := NormalizeKey(c.Term)
		if key == "" {
			continue
		}
		best, ok := groups[key]
		if !ok || prefer(c, best) {
			groups[key] = c
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Candidate, 0, len(groups))
	for _, k := range keys {
		out = append(out, groups[k])
	}
	return out
}

// prefer reports whether a should replace b as the group winner.
func prefer(a, b Candidate) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	aVerified := a.Verified && !a.AIGenerated
	bVerified := b.Verified && !b.AIGenerated
	if aVerified != bVerified {
		return aVerified
	}
	if a.AIGenerated && b.AIGenerated {
		aEx := a.FirstExample() != ""
		bEx := b.FirstExample() != ""
		if aEx != bEx {
			return aEx
		}
	}
	// Stable final tiebreaks so permutations of the input cannot flip the winner.
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.Term < b.Term
}
