// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Simple splits on sentence-final punctuation followed by whitespace and on
// line breaks. Job descriptions are mostly bullet lists, so every line is
// treated as at least one sentence.
type Simple struct{}

// Segment never fails.
func (Simple) Segment(text string) (iter.Seq[Sentence], error) {
	return func(yield func(Sentence) bool) {
		start := 0
		emit := func(end int) bool {
			span := text[start:end]
			trimmed := strings.TrimSpace(span)
			if trimmed == "" {
				return true
			}
			lead := strings.Index(span, trimmed)
			return yield(Sentence{
				Start: start + lead,
				End:   start + lead + len(trimmed),
				Text:  trimmed,
			})
		}

		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size
			switch {
			case r == '\n':
				if !emit(i) {
					return
				}
				start = next
			case r == '.' || r == '!' || r == '?':
				if next == len(text) || startsWithSpace(text[next:]) {
					if !emit(next) {
						return
					}
					start = next
				}
			}
			i = next
		}
		if start < len(text) {
			emit(len(text))
		}
	}, nil
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
