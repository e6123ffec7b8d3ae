// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Punkt segments with the pre-trained English Punkt model. It handles
// abbreviations ("e.g.", "approx.") and decimal numbers that a plain
// punctuation split would break on.
type Punkt struct {
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunkt loads the English model.
func NewPunkt() (*Punkt, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading punkt model: %w", err)
	}
	return &Punkt{tokenizer: tok}, nil
}

// Segment tokenizes text each time the returned sequence is ranged over.
// Line breaks always end a sentence; Punkt runs on each line, so bullet
// lists without final periods yield one sentence per bullet.
func (p *Punkt) Segment(text string) (iter.Seq[Sentence], error) {
	return func(yield func(Sentence) bool) {
		offset := 0
		for line := range strings.Lines(text) {
			lineStart := offset
			offset += len(line)
			if strings.TrimSpace(line) == "" {
				continue
			}
			for _, s := range p.tokenize(strings.TrimRight(line, "\r\n")) {
				trimmed := strings.TrimSpace(s.Text)
				if trimmed == "" {
					continue
				}
				start := lineStart + s.Start + strings.Index(s.Text, trimmed)
				if !yield(Sentence{Start: start, End: start + len(trimmed), Text: trimmed}) {
					return
				}
			}
		}
	}, nil
}

func (p *Punkt) tokenize(text string) []*sentences.Sentence {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tokenizer.Tokenize(text)
}
