package match

import (
	"strings"
	"unicode"

	"github.com/coregx/ahocorasick"
)

// isJoiner returns true for punctuation that commonly appears inside
// display names ("შპს-ალფა", "O'Brien", "AT&T") and must survive
// canonicalization.
func isJoiner(r rune) bool {
	switch r {
	case '\'', '’', '‘',
		'-', '–', '—',
		'.', '_', '/', '&':
		return true
	default:
		return false
	}
}

// Canonicalize normalizes text for dictionary matching: lowercase,
// letters/digits/joiners preserved, every separator run collapsed to a
// single space, no surrounding spaces. The same function is applied to
// patterns and to scanned text.
func Canonicalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := true
	for _, ch := range s {
		c := unicode.ToLower(ch)

		if c == '’' || c == '‘' {
			c = '\''
		}
		if c == '–' || c == '—' {
			c = '-'
		}

		if unicode.IsLetter(c) || unicode.IsDigit(c) || isJoiner(c) {
			out.WriteRune(c)
			lastWasSpace = false
		} else if !lastWasSpace {
			out.WriteRune(' ')
			lastWasSpace = true
		}
	}

	result := out.String()
	if len(result) > 0 && result[len(result)-1] == ' ' {
		result = result[:len(result)-1]
	}
	return result
}

// Dictionary is an Aho-Corasick automaton over a reference list, used to
// detect which known names a message literally mentions. Rebuilt by the
// caller when the list grows.
type Dictionary struct {
	ac       *ahocorasick.Automaton
	index    map[string]int
	names    []string // original display names, parallel to pattern IDs
	patterns []string
}

// NewDictionary compiles a dictionary from display names. Names that
// canonicalize to the same pattern keep the first display form.
func NewDictionary(names []string) (*Dictionary, error) {
	d := &Dictionary{
		index: make(map[string]int, len(names)),
	}

	for _, name := range names {
		key := Canonicalize(name)
		if key == "" {
			continue
		}
		if _, exists := d.index[key]; exists {
			continue
		}
		d.index[key] = len(d.patterns)
		d.patterns = append(d.patterns, key)
		d.names = append(d.names, name)
	}

	if len(d.patterns) == 0 {
		return d, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(d.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	d.ac = automaton

	return d, nil
}

// Lookup resolves a surface form to its display name by exact
// canonical equality.
func (d *Dictionary) Lookup(surface string) (string, bool) {
	idx, ok := d.index[Canonicalize(surface)]
	if !ok {
		return "", false
	}
	return d.names[idx], true
}

// Mentions returns the display names literally mentioned in text, in
// first-occurrence order without duplicates.
func (d *Dictionary) Mentions(text string) []string {
	if d.ac == nil {
		return nil
	}

	haystack := []byte(Canonicalize(text))
	matches := d.ac.FindAllOverlapping(haystack)

	seen := make(map[int]bool, len(matches))
	var out []string
	for _, m := range matches {
		if seen[m.PatternID] {
			continue
		}
		seen[m.PatternID] = true
		out = append(out, d.names[m.PatternID])
	}
	return out
}
