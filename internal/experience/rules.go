// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experience

import (
	"slices"
	"strings"

	"github.com/pdiddy/experience-extractor/pkg/types"
)

// bandWidth is the fixed width of the range built around a single bound
// such as "minimum 5" or "5+".
const bandWidth = 2

// rule turns the tokens of one sentence into a range.
type rule struct {
	name  string
	match func(tokens []string) (types.Range, bool)
}

// rules is the normalization chain in priority order. The first rule that
// matches decides the sentence; later rules are not consulted.
var rules = []rule{
	{name: "to-range", match: matchToRange},
	{name: "hyphen-range", match: matchHyphenRange},
	{name: "minimum", match: matchMinimum},
	{name: "maximum", match: matchMaximum},
	{name: "at-least", match: matchAtLeast},
	{name: "plus", match: matchPlus},
	{name: "bare-years", match: matchBareYears},
}

// normalize runs the rule chain over one lower-cased sentence and returns
// the range with the name of the rule that produced it.
func normalize(sentence string) (types.Range, string, bool) {
	tokens := substituteNumberWords(sentence)
	for _, r := range rules {
		if rng, ok := r.match(tokens); ok {
			return rng, r.name, true
		}
	}
	return types.Range{}, "", false
}

// from returns the band [n, n+2].
func from(n int) types.Range {
	return types.Range{Low: n, High: n + bandWidth}
}

// matchToRange handles "3 to 5 years". Only the first "to" is considered.
func matchToRange(tokens []string) (types.Range, bool) {
	idx := slices.Index(tokens, "to")
	if idx <= 0 || idx >= len(tokens)-1 {
		return types.Range{}, false
	}
	first, ok1 := parseNumber(tokens[idx-1])
	second, ok2 := parseNumber(tokens[idx+1])
	if !ok1 || !ok2 {
		return types.Range{}, false
	}
	return types.NewRange(first, second), true
}

// matchHyphenRange handles "3-5" and "(3-5)".
func matchHyphenRange(tokens []string) (types.Range, bool) {
	for _, tok := range tokens {
		if !strings.Contains(tok, "-") || strings.HasPrefix(tok, "-") || strings.HasSuffix(tok, "-") {
			continue
		}
		parts := strings.Split(tok, "-")
		if len(parts) != 2 {
			continue
		}
		first, ok1 := parseNumber(parts[0])
		second, ok2 := parseNumber(parts[1])
		if ok1 && ok2 {
			return types.NewRange(first, second), true
		}
	}
	return types.Range{}, false
}

// matchMinimum handles "minimum 5 years".
func matchMinimum(tokens []string) (types.Range, bool) {
	if n, ok := numberAfter(tokens, "minimum"); ok {
		return from(n), true
	}
	return types.Range{}, false
}

// matchMaximum handles "maximum 10 years". The low end may go negative for
// maxima below two; it is reported as computed.
func matchMaximum(tokens []string) (types.Range, bool) {
	if n, ok := numberAfter(tokens, "maximum"); ok {
		return types.Range{Low: n - bandWidth, High: n}, true
	}
	return types.Range{}, false
}

// matchAtLeast handles "at least 3 years". Only the first "at" is
// considered, so "look at our team, at least 3 years" does not match.
func matchAtLeast(tokens []string) (types.Range, bool) {
	if !slices.Contains(tokens, "least") {
		return types.Range{}, false
	}
	idx := slices.Index(tokens, "at")
	if idx < 0 || idx >= len(tokens)-2 || tokens[idx+1] != "least" {
		return types.Range{}, false
	}
	n, ok := parseNumber(tokens[idx+2])
	if !ok {
		return types.Range{}, false
	}
	return from(n), true
}

// matchPlus handles "5+ years" and "5+yrs".
func matchPlus(tokens []string) (types.Range, bool) {
	for _, tok := range tokens {
		if !strings.Contains(tok, "+") || strings.HasPrefix(tok, "+") {
			continue
		}
		head, _, _ := strings.Cut(tok, "+")
		if n, ok := parseNumber(head); ok {
			return from(n), true
		}
	}
	return types.Range{}, false
}

// matchBareYears handles "4 years", "4 yrs." and "four year".
func matchBareYears(tokens []string) (types.Range, bool) {
	for i := 0; i < len(tokens)-1; i++ {
		n, ok := parseNumber(tokens[i])
		if !ok {
			continue
		}
		next := tokens[i+1]
		if strings.HasPrefix(next, "year") || strings.HasPrefix(next, "yr") {
			return from(n), true
		}
	}
	return types.Range{}, false
}

// numberAfter finds the first occurrence of word followed by a number.
func numberAfter(tokens []string, word string) (int, bool) {
	for i := 0; i < len(tokens)-1; i++ {
		if tokens[i] != word {
			continue
		}
		if n, ok := parseNumber(tokens[i+1]); ok {
			return n, true
		}
	}
	return 0, false
}
