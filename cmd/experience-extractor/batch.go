// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/experience-extractor/internal/batch"
	"github.com/pdiddy/experience-extractor/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Extract experience ranges from every job description in a directory",
	Long: `Batch reads every .txt and .html file in the input directory (default
from config, sample_jds/), extracts the experience range of each, appends
the results to the output CSV, and records the run in the history
database.

With --format the results are also written to stdout as YAML or JSON and
progress lines move to stderr. The command exits non-zero when any
document failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("format", "", "also write results to stdout as yaml or json")
	batchCmd.Flags().Bool("no-save", false, "do not write the CSV or record the run")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.InputDir = args[0]
	}

	formatName, _ := cmd.Flags().GetString("format")
	format := report.Format(formatName)
	if format != "" && format != report.FormatYAML && format != report.FormatJSON {
		return fmt.Errorf("%w: %q (want yaml or json)", report.ErrUnknownFormat, formatName)
	}

	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	progress := cmd.OutOrStdout()
	if format != "" {
		progress = cmd.ErrOrStderr()
	}

	outcomes, summary, err := batch.ExtractAll(ctx, ext, cfg.InputDir, batchOptions(cfg), progress)
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Fprintf(progress, "No JDs found in %s\n", cfg.InputDir)
		return nil
	}

	var runID string
	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		if runID, err = persist(ctx, cfg, cfg.InputDir, outcomes); err != nil {
			return err
		}
		fmt.Fprintf(progress, "Results successfully saved to %s\n", cfg.OutputFile)
	}

	if format != "" {
		if err := report.Write(cmd.OutOrStdout(), format, report.NewExport(runID, outcomes)); err != nil {
			return err
		}
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}
