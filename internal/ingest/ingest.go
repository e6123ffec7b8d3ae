// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads job descriptions from files, directories, and pasted
// text.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/experience-extractor/pkg/types"
)

// ErrUnsupported is returned by ReadFile for extensions it does not load.
var ErrUnsupported = errors.New("unsupported file type")

// pasteSeparator divides several job descriptions pasted as one block.
const pasteSeparator = "=="

// Supported reports whether name has an extension ReadDir loads: .txt,
// .html, or .htm.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".html", ".htm":
		return true
	}
	return false
}

// ReadDir loads every supported file directly inside dir, sorted by name.
// A missing directory yields no documents and no error. Files that cannot
// be read or are not valid UTF-8 produce a warning on warn and are skipped.
func ReadDir(dir string, warn io.Writer) ([]types.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading job description directory %s: %w", dir, err)
	}

	var docs []types.Document
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		doc, err := ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(warn, "warning: skipping %s: %v\n", entry.Name(), err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ReadFile loads one job description. HTML files are reduced to their
// visible text. The document is named after the file's base name.
func ReadFile(path string) (types.Document, error) {
	name := filepath.Base(path)
	if !Supported(name) {
		return types.Document{}, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return types.Document{}, fmt.Errorf("%s is not valid UTF-8", path)
	}

	text := string(data)
	if ext := strings.ToLower(filepath.Ext(name)); ext == ".html" || ext == ".htm" {
		text, err = HTMLText(strings.NewReader(text))
		if err != nil {
			return types.Document{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return types.Document{Name: name, Text: text}, nil
}

// SplitPasted splits a block of pasted job descriptions on "==" and drops
// the empty pieces.
func SplitPasted(text string) []string {
	var out []string
	for _, part := range strings.Split(text, pasteSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PastedDocuments names pasted texts pasted_jd_1, pasted_jd_2, ... and
// skips blank ones while keeping their position in the numbering.
func PastedDocuments(texts []string) []types.Document {
	var docs []types.Document
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, types.Document{Name: fmt.Sprintf("pasted_jd_%d", i+1), Text: text})
	}
	return docs
}
