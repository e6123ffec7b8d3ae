// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/experience-extractor/internal/batch"
	"github.com/pdiddy/experience-extractor/internal/ingest"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

// Menu choices.
const (
	choiceDirectory = 1
	choiceSingle    = 2
	choiceMultiple  = 3
	choiceExit      = 4
)

const menuWidth = 50

// SaveFunc persists the outcomes of one menu action. Source describes
// where the documents came from.
type SaveFunc func(ctx context.Context, source string, outcomes []types.Outcome) error

// Session is one interactive menu loop.
type Session struct {
	Prompter  *Prompter
	Out       io.Writer
	Extractor batch.Extractor
	Options   batch.Options

	// InputDir is the directory processed by the first menu entry.
	InputDir string

	// OutputFile is shown to the user after a successful save.
	OutputFile string

	// Save persists results. Nil disables saving.
	Save SaveFunc
}

// Run shows the menu until the user exits or the input ends. Failures of
// single actions are printed and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.showMenu()
		choice, err := s.Prompter.Choice(choiceDirectory, choiceExit)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.Out, "\nExiting...")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading choice: %w", err)
		}

		switch choice {
		case choiceDirectory:
			s.processDirectory(ctx)
		case choiceSingle:
			s.processSingle(ctx)
		case choiceMultiple:
			s.processMultiple(ctx)
		case choiceExit:
			fmt.Fprintln(s.Out, "\nExiting...")
			return nil
		}
	}
}

func (s *Session) showMenu() {
	rule := strings.Repeat("=", menuWidth)
	fmt.Fprintln(s.Out, "\n"+rule)
	fmt.Fprintln(s.Out, center("Job Experience Extractor", menuWidth))
	fmt.Fprintln(s.Out, rule)
	fmt.Fprintf(s.Out, "%d. Process all JDs in %s folder\n", choiceDirectory, s.InputDir)
	fmt.Fprintf(s.Out, "%d. Paste a single JD\n", choiceSingle)
	fmt.Fprintf(s.Out, "%d. Paste multiple JDs (separate with '==')\n", choiceMultiple)
	fmt.Fprintf(s.Out, "%d. Exit\n", choiceExit)
}

func (s *Session) processDirectory(ctx context.Context) {
	outcomes, _, err := batch.ExtractAll(ctx, s.Extractor, s.InputDir, s.Options, s.Out)
	if err != nil {
		fmt.Fprintf(s.Out, "\nError reading %s: %v\n", s.InputDir, err)
		return
	}
	if len(outcomes) == 0 {
		fmt.Fprintf(s.Out, "\nNo JDs found in %s folder\n", s.InputDir)
		return
	}
	s.save(ctx, s.InputDir, outcomes)
	s.printOutcomes("Processing Results:", outcomes)
}

func (s *Session) processSingle(ctx context.Context) {
	text, ok := s.Prompter.ReadDocument()
	if !ok {
		fmt.Fprintln(s.Out, "\nNo input received or input was empty")
		return
	}

	doc := types.Document{Name: "pasted_jd", Text: text}
	outcome := batch.Process(ctx, s.Extractor, []types.Document{doc}, s.Options)[0]
	if outcome.Status == types.StatusError {
		fmt.Fprintf(s.Out, "Error processing JD: %s\n", outcome.Err)
	}

	fmt.Fprintln(s.Out, "\nResult:")
	fmt.Fprintf(s.Out, "Extracted Experience: %s\n", outcome.Experience)

	if s.Save != nil && s.Prompter.Confirm("Save to results?") {
		if s.save(ctx, "pasted", []types.Outcome{outcome}) {
			fmt.Fprintln(s.Out, "Result saved successfully")
		}
	}
}

func (s *Session) processMultiple(ctx context.Context) {
	docs := ingest.PastedDocuments(s.Prompter.ReadDocuments())
	if len(docs) == 0 {
		fmt.Fprintln(s.Out, "\nNo valid inputs received")
		return
	}

	outcomes := batch.Process(ctx, s.Extractor, docs, s.Options)
	s.save(ctx, "pasted", outcomes)
	s.printOutcomes("Results:", outcomes)
}

// save reports whether the outcomes were persisted.
func (s *Session) save(ctx context.Context, source string, outcomes []types.Outcome) bool {
	if s.Save == nil {
		return false
	}
	if err := s.Save(ctx, source, outcomes); err != nil {
		fmt.Fprintf(s.Out, "Error saving results: %v\n", err)
		return false
	}
	fmt.Fprintf(s.Out, "Results successfully saved to %s\n", s.OutputFile)
	return true
}

func (s *Session) printOutcomes(title string, outcomes []types.Outcome) {
	fmt.Fprintf(s.Out, "\n%s\n", title)
	for _, o := range outcomes {
		fmt.Fprintf(s.Out, "\n%s:\n", o.Name)
		fmt.Fprintf(s.Out, "Extracted: %s\n", o.Experience)
	}
}

// center pads text on both sides to width, extra space going right.
func center(text string, width int) string {
	pad := width - len(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}
