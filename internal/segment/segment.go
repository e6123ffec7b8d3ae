// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits raw text into sentences. The extraction engine
// depends only on the Segmenter interface so the splitting strategy can be
// swapped through configuration.
package segment

import (
	"errors"
	"fmt"
	"iter"

	"github.com/pdiddy/experience-extractor/pkg/types"
)

// ErrUnknownSegmenter is returned by New for an unrecognized name.
var ErrUnknownSegmenter = errors.New("unknown segmenter")

// Sentence is a contiguous span of the segmented text.
type Sentence struct {
	// Start and End are byte offsets into the text passed to Segment.
	Start int
	End   int

	// Text is the sentence content with surrounding whitespace removed.
	Text string
}

// Segmenter produces the sentences of a text in source order. The returned
// sequence is lazy and may be ranged over more than once.
type Segmenter interface {
	Segment(text string) (iter.Seq[Sentence], error)
}

// New returns the segmenter registered under name.
func New(name string) (Segmenter, error) {
	switch name {
	case types.SegmenterPunkt:
		return NewPunkt()
	case types.SegmenterSimple:
		return Simple{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownSegmenter, name, types.SegmenterPunkt, types.SegmenterSimple)
	}
}

// Texts collects the sentence texts of seq.
func Texts(seq iter.Seq[Sentence]) []string {
	var out []string
	for s := range seq {
		out = append(out, s.Text)
	}
	return out
}
