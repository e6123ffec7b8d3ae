// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package experience extracts a normalized years-of-experience range from a
// job description.
//
// Extraction lower-cases the text, splits it into sentences, keeps the
// sentences that mention an experience keyword, turns each into a range
// with an ordered chain of phrase rules, and reduces the ranges to the
// narrowest one.
package experience

import (
	"fmt"
	"strings"

	"github.com/pdiddy/experience-extractor/internal/segment"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

// Candidate is a keyword sentence together with the range it normalized
// to. Rule names the phrase rule that matched.
type Candidate struct {
	Sentence string      `json:"sentence" yaml:"sentence"`
	Range    types.Range `json:"range" yaml:"range"`
	Rule     string      `json:"rule" yaml:"rule"`
}

// Extractor is safe for concurrent use when its segmenter is.
type Extractor struct {
	segmenter segment.Segmenter
}

// New returns an Extractor using seg, or the simple splitter when seg is nil.
func New(seg segment.Segmenter) *Extractor {
	if seg == nil {
		seg = segment.Simple{}
	}
	return &Extractor{segmenter: seg}
}

// Extract returns the experience range stated in text. The boolean is
// false when the text is empty or nothing in it normalizes. Only a
// segmentation failure produces an error.
func (e *Extractor) Extract(text string) (types.Range, bool, error) {
	candidates, err := e.Candidates(text)
	if err != nil {
		return types.Range{}, false, err
	}
	ranges := make([]types.Range, len(candidates))
	for i, c := range candidates {
		ranges[i] = c.Range
	}
	rng, ok := Merge(ranges)
	return rng, ok, nil
}

// ExtractString is Extract rendered for output: "3 - 5 Years" or
// types.NotFound.
func (e *Extractor) ExtractString(text string) (string, error) {
	rng, ok, err := e.Extract(text)
	if err != nil {
		return "", err
	}
	if !ok {
		return types.NotFound, nil
	}
	return rng.String(), nil
}

// Candidates returns every keyword sentence of text that normalized, in
// source order.
func (e *Extractor) Candidates(text string) ([]Candidate, error) {
	if text == "" {
		return nil, nil
	}

	sentences, err := e.segmenter.Segment(strings.ToLower(text))
	if err != nil {
		return nil, fmt.Errorf("segmenting text: %w", err)
	}

	var candidates []Candidate
	for s := range sentences {
		sentence := strings.ToLower(s.Text)
		if !hasKeyword(sentence) {
			continue
		}
		rng, name, ok := normalize(sentence)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{Sentence: s.Text, Range: rng, Rule: name})
	}
	return candidates, nil
}

// Merge picks the narrowest range. Ties go to the earliest range. It
// reports false for an empty slice.
func Merge(ranges []types.Range) (types.Range, bool) {
	if len(ranges) == 0 {
		return types.Range{}, false
	}
	best := ranges[0]
	for _, r := range ranges[1:] {
		if r.Span() < best.Span() {
			best = r
		}
	}
	return best, true
}
