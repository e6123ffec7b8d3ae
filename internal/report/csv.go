// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists extraction outcomes: a Role/Experience CSV file
// that accumulates across runs, and YAML or JSON exports.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/experience-extractor/pkg/types"
)

// ErrNoResults is returned when there is nothing to save.
var ErrNoResults = errors.New("no results to save")

// csvHeader is the column layout of the results file.
var csvHeader = []string{"Role", "Experience"}

// Row is one line of the results file.
type Row struct {
	Role       string `json:"role" yaml:"role"`
	Experience string `json:"experience" yaml:"experience"`
}

// RowFromOutcome names the row after the document without its extension,
// so "backend.txt" is saved as role "backend".
func RowFromOutcome(o types.Outcome) Row {
	return Row{
		Role:       strings.TrimSuffix(o.Name, filepath.Ext(o.Name)),
		Experience: o.Experience,
	}
}

// SaveCSV appends outcomes to the CSV file at path, creating the file and
// its parent directories when needed. Rows already in a non-empty file are
// kept ahead of the new ones; an empty file is rewritten with a header.
// The file is replaced atomically.
func SaveCSV(path string, outcomes []types.Outcome) error {
	if len(outcomes) == 0 {
		return ErrNoResults
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	existing, err := ReadCSV(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	rows := make([]Row, 0, len(existing)+len(outcomes))
	rows = append(rows, existing...)
	for _, o := range outcomes {
		rows = append(rows, RowFromOutcome(o))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".results-*.csv")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRows(tmp, rows); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// ReadCSV returns the rows of a results file, skipping its header. An
// empty file has no rows. A missing file returns an error wrapping
// os.ErrNotExist.
func ReadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	roleCol, expCol := 0, 1
	if header := records[0]; isHeader(header) {
		roleCol, expCol = columnIndex(header, "Role"), columnIndex(header, "Experience")
		records = records[1:]
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{Role: field(rec, roleCol), Experience: field(rec, expCol)})
	}
	return rows, nil
}

func writeRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Role, row.Experience}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func isHeader(rec []string) bool {
	return columnIndex(rec, "Role") >= 0 && columnIndex(rec, "Experience") >= 0
}

func columnIndex(rec []string, name string) int {
	for i, v := range rec {
		if strings.TrimSpace(v) == name {
			return i
		}
	}
	return -1
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
