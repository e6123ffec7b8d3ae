// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/experience-extractor/internal/batch"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

// ErrUnknownFormat is returned by Write for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Export is the document written by WriteYAML and WriteJSON.
type Export struct {
	RunID    string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Results  []types.Outcome `json:"results" yaml:"results"`
	Found    int             `json:"found" yaml:"found"`
	NotFound int             `json:"not_found" yaml:"not_found"`
	Failed   int             `json:"failed" yaml:"failed"`
}

// NewExport wraps outcomes with their counts.
func NewExport(runID string, outcomes []types.Outcome) Export {
	if outcomes == nil {
		outcomes = []types.Outcome{}
	}
	s := batch.Summarize(outcomes)
	return Export{
		RunID:    runID,
		Results:  outcomes,
		Found:    s.Found,
		NotFound: s.NotFound,
		Failed:   s.Failed,
	}
}

// Write encodes e in the named format.
func Write(w io.Writer, format Format, e Export) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, e)
	case FormatJSON:
		return WriteJSON(w, e)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteYAML encodes e as YAML.
func WriteYAML(w io.Writer, e Export) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes e as indented JSON.
func WriteJSON(w io.Writer, e Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
