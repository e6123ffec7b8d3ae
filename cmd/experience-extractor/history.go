// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/experience-extractor/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List earlier results from the run history database",
	Long: `History lists the most recent extraction outcomes recorded by batch,
extract --save, and the interactive menu. Use --name to follow one job
description across runs, or --runs to list the runs themselves.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Bool("runs", false, "list runs instead of outcomes")
	historyCmd.Flags().String("name", "", "only show outcomes for this document name")
	historyCmd.Flags().Int("limit", 20, "maximum number of rows")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return errHistoryDisabled
	}

	st, err := store.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if runs, _ := cmd.Flags().GetBool("runs"); runs {
		list, err := st.Runs(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, list)
		}
		formatRuns(out, list)
		return nil
	}

	name, _ := cmd.Flags().GetString("name")
	entries, err := st.Recent(cmd.Context(), name, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(out, entries)
	}
	formatEntries(out, entries)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRuns(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-20s  %-30s  %5s  %9s  %6s\n",
		"Run", "Started", "Source", "Found", "Not Found", "Failed")
	fmt.Fprintln(w, strings.Repeat("-", 118))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-20s  %-30s  %5d  %9d  %6d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), truncate(r.Source, 30),
			r.Found, r.NotFound, r.Failed)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

func formatEntries(w io.Writer, entries []store.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	fmt.Fprintf(w, "%-30s  %-14s  %-9s  %-20s  %s\n",
		"Role", "Experience", "Status", "Recorded", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		fmt.Fprintf(w, "%-30s  %-14s  %-9s  %-20s  %s\n",
			truncate(e.Name, 30), e.Experience, e.Status,
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"), e.Source)
	}
	fmt.Fprintf(w, "\n%d results\n", len(entries))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
