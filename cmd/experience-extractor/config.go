// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/experience-extractor/internal/batch"
	"github.com/pdiddy/experience-extractor/internal/experience"
	"github.com/pdiddy/experience-extractor/internal/report"
	"github.com/pdiddy/experience-extractor/internal/segment"
	"github.com/pdiddy/experience-extractor/internal/store"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

// loadConfig resolves defaults, config file, environment, and flags into a
// validated Config.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

func newExtractor(cfg types.Config) (*experience.Extractor, error) {
	seg, err := segment.New(cfg.Segmenter)
	if err != nil {
		return nil, err
	}
	return experience.New(seg), nil
}

func batchOptions(cfg types.Config) batch.Options {
	return batch.Options{Workers: cfg.Workers, Logger: logger}
}

// persist appends outcomes to the CSV results file and records them as a
// run in the history database when one is configured. It returns the run
// ID, or "" when history is disabled.
func persist(ctx context.Context, cfg types.Config, source string, outcomes []types.Outcome) (string, error) {
	if err := report.SaveCSV(cfg.OutputFile, outcomes); err != nil {
		return "", fmt.Errorf("saving results: %w", err)
	}
	if cfg.HistoryDB == "" {
		return "", nil
	}

	st, err := store.Open(cfg.HistoryDB)
	if err != nil {
		return "", fmt.Errorf("opening history: %w", err)
	}
	defer st.Close()

	runID, err := st.RecordRun(ctx, source, outcomes)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	logger.Debug("recorded run",
		zap.String("run_id", runID),
		zap.String("source", source),
		zap.Int("documents", len(outcomes)),
	)
	return runID, nil
}

// errHistoryDisabled is returned by history when no database is configured.
var errHistoryDisabled = errors.New("run history is disabled (history_db is empty)")
