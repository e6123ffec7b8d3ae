// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/experience-extractor/internal/batch"
	"github.com/pdiddy/experience-extractor/internal/experience"
	"github.com/pdiddy/experience-extractor/internal/ingest"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract the experience range from text, files, or stdin",
	Long: `Extract prints the years-of-experience range stated in each input.
Input comes from --text, from the named .txt or .html files, or from
stdin when neither is given. A single input prints only the range;
several inputs print one "name: range" line each.

Use --explain to list every keyword sentence and the rule that
normalized it.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("text", "", "job description text to extract from")
	extractCmd.Flags().Bool("explain", false, "show the candidate sentences behind each result")
	extractCmd.Flags().Bool("save", false, "append results to the output CSV and run history")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	docs, err := extractInputs(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	outcomes := batch.Process(ctx, ext, docs, batchOptions(cfg))

	explain, _ := cmd.Flags().GetBool("explain")
	for i, o := range outcomes {
		if explain {
			writeCandidates(out, ext, docs[i])
		}
		switch {
		case len(outcomes) == 1 && o.Status != types.StatusError:
			fmt.Fprintln(out, o.Experience)
		case o.Status == types.StatusError:
			fmt.Fprintf(out, "%s: %s (%s)\n", o.Name, o.Experience, o.Err)
		default:
			fmt.Fprintf(out, "%s: %s\n", o.Name, o.Experience)
		}
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if _, err := persist(ctx, cfg, "extract", outcomes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Results successfully saved to %s\n", cfg.OutputFile)
	}

	if summary := batch.Summarize(outcomes); summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}

// extractInputs collects the documents named by --text, file arguments, or
// stdin, in that order of preference.
func extractInputs(cmd *cobra.Command, args []string) ([]types.Document, error) {
	if cmd.Flags().Changed("text") {
		text, _ := cmd.Flags().GetString("text")
		return []types.Document{{Name: "text", Text: text}}, nil
	}

	if len(args) > 0 {
		docs := make([]types.Document, 0, len(args))
		for _, path := range args {
			doc, err := ingest.ReadFile(path)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return docs, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return []types.Document{{Name: "stdin", Text: string(data)}}, nil
}

// writeCandidates lists the keyword sentences of doc. Segmentation errors
// are left to the outcome line.
func writeCandidates(w io.Writer, ext *experience.Extractor, doc types.Document) {
	candidates, err := ext.Candidates(doc.Text)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "%s: %d candidate sentence(s)\n", doc.Name, len(candidates))
	for _, c := range candidates {
		fmt.Fprintf(w, "  %-12s %-14s %s\n", c.Rule, c.Range, c.Sentence)
	}
}
