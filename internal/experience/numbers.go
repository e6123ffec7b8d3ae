// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experience

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// keywords mark a sentence as a candidate. Matching is by substring, so
// "exp" also matches "expert" and "yrs" matches "yrse".
var keywords = []string{
	"experience", "exp", "years", "yrs", "minimum",
	"maximum", "at least", "required", "qualification",
	"work experience", "professional experience",
}

// numberWords maps the English number words the parser understands.
var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// hasKeyword reports whether sentence contains any experience keyword.
func hasKeyword(sentence string) bool {
	for _, kw := range keywords {
		if strings.Contains(sentence, kw) {
			return true
		}
	}
	return false
}

// alnum keeps only the letters and digits of s.
func alnum(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return -1
	}, s)
}

// maxNumber is the largest value that still leaves room for the band.
const maxNumber = math.MaxInt - bandWidth

// parseNumber reads a token as a number word or a base-10 integer after
// dropping punctuation: "(3)" → 3, "five," → 5, "3yrs" → no number.
// Values above maxNumber are no number.
func parseNumber(token string) (int, bool) {
	cleaned := alnum(token)
	if n, ok := numberWords[cleaned]; ok {
		return n, true
	}
	if cleaned == "" {
		return 0, false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil || n > maxNumber {
		return 0, false
	}
	return n, true
}

// substituteNumberWords splits text on whitespace and rewrites tokens whose
// letters-and-digits core is a number word: "three," → "3,".
func substituteNumberWords(text string) []string {
	tokens := strings.Fields(text)
	for i, tok := range tokens {
		cleaned := alnum(tok)
		if n, ok := numberWords[cleaned]; ok {
			tokens[i] = strings.ReplaceAll(tok, cleaned, strconv.Itoa(n))
		}
	}
	return tokens
}
