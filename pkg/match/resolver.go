// Package match resolves raw message tokens against the reference lists.
// It combines fuzzy scoring (for approximate resolution and shortlists)
// with an Aho-Corasick dictionary (for exact-mention detection).
package match

import (
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Default tuning. Observed best-match thresholds in operation range 50-80,
// so the value is configuration, not contract.
const (
	DefaultBestThreshold      = 70
	DefaultShortlistThreshold = 50
	DefaultShortlistLimit     = 5
)

// Candidate pairs a reference name with its similarity score in [0,100].
type Candidate struct {
	Name  string
	Score int
}

// Mode controls what happens to LLM-proposed names outside the
// reference lists.
type Mode string

const (
	// ModePermissive keeps the raw text and flags the entry unmatched.
	ModePermissive Mode = "permissive"
	// ModeStrict snaps the value to the nearest reference name when one
	// clears the best-match threshold.
	ModeStrict Mode = "strict"
)

// score computes a similarity in [0,100]. The port's WRatio cascade
// ASCII-cleanses its inputs, which strips Georgian text to empty and
// scores everything 0, so the cascade is rebuilt here from the
// library's Unicode-safe scorers.
func score(term, name string) int {
	s := fuzzy.Ratio(term, name)
	if ts := fuzzy.TokenSetRatio(term, name); ts > s {
		s = ts
	}
	if ts := fuzzy.TokenSortRatio(term, name); ts > s {
		s = ts
	}
	return s
}

// ResolveBest returns the highest-scoring reference name for term, or
// ok=false when nothing reaches threshold. An empty term or empty list
// always misses. Pure function; stable for equal scores (earlier list
// entries win).
func ResolveBest(term string, list []string, threshold int) (Candidate, bool) {
	if term == "" || len(list) == 0 {
		return Candidate{}, false
	}

	best := Candidate{Score: -1}
	for _, name := range list {
		s := score(term, name)
		if s > best.Score {
			best = Candidate{Name: name, Score: s}
		}
	}

	if best.Score < threshold {
		return Candidate{}, false
	}
	return best, true
}

// ResolveShortlist returns up to limit reference names scoring at least
// threshold, ordered by descending score. Ties keep reference-list order.
func ResolveShortlist(term string, list []string, limit, threshold int) []Candidate {
	if term == "" || len(list) == 0 || limit <= 0 {
		return nil
	}

	candidates := make([]Candidate, 0, len(list))
	for _, name := range list {
		s := score(term, name)
		if s >= threshold {
			candidates = append(candidates, Candidate{Name: name, Score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Names projects a candidate slice to its reference names, in rank order.
func Names(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Name
	}
	return out
}
