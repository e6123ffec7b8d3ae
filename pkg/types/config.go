// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Segmenter names accepted by the segment package.
const (
	SegmenterPunkt  = "punkt"
	SegmenterSimple = "simple"
)

// Config holds the resolved settings for a CLI invocation. Values come
// from defaults, the config file, EXPERIENCE_EXTRACTOR_* environment
// variables, and flags, in increasing priority.
type Config struct {
	// InputDir is the directory scanned for job descriptions (default "sample_jds").
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir" validate:"required"`

	// OutputFile is the CSV file results are appended to (default "results/output.csv").
	OutputFile string `json:"output_file" yaml:"output_file" mapstructure:"output_file" validate:"required"`

	// HistoryDB is the SQLite database recording batch runs (default "results/history.db").
	// An empty value disables run history.
	HistoryDB string `json:"history_db" yaml:"history_db" mapstructure:"history_db"`

	// Segmenter selects the sentence splitter: punkt or simple.
	Segmenter string `json:"segmenter" yaml:"segmenter" mapstructure:"segmenter" validate:"oneof=punkt simple"`

	// Workers bounds the number of documents extracted concurrently (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers" validate:"min=1,max=256"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		InputDir:   "sample_jds",
		OutputFile: "results/output.csv",
		HistoryDB:  "results/history.db",
		Segmenter:  SegmenterPunkt,
		Workers:    4,
	}
}

var validate = validator.New()

// Validate reports the first invalid field in c.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
