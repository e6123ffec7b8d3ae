// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs experience extraction over many job descriptions.
// Every document gets exactly one outcome; a failure in one document never
// stops the others.
package batch

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/experience-extractor/internal/ingest"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

const defaultWorkers = 4

// Extractor is the engine contract batch depends on, so tests can inject
// failures.
type Extractor interface {
	Extract(text string) (types.Range, bool, error)
}

// Options tunes a batch run.
type Options struct {
	// Workers bounds concurrent extractions (default 4).
	Workers int

	// Logger receives per-document failures. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return defaultWorkers
	}
	return o.Workers
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Summary holds counts from a batch run.
type Summary struct {
	Found    int
	NotFound int
	Failed   int
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Found + s.NotFound + s.Failed
}

// HasFailures reports whether any document failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Summarize counts outcomes by status.
func Summarize(outcomes []types.Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case types.StatusFound:
			s.Found++
		case types.StatusNotFound:
			s.NotFound++
		default:
			s.Failed++
		}
	}
	return s
}

// Process extracts every document and returns the outcomes in input order.
// Extraction errors and panics become ErrorMarker outcomes for the
// affected document only. Documents not started before ctx is cancelled
// are reported as errors carrying the context error.
func Process(ctx context.Context, ext Extractor, docs []types.Document, opts Options) []types.Outcome {
	log := opts.logger()
	outcomes := make([]types.Outcome, len(docs))

	var g errgroup.Group
	g.SetLimit(opts.workers())

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			outcomes[i] = types.ErrorOutcome(doc.Name, err)
			continue
		}
		g.Go(func() error {
			// The slot may open after cancellation.
			if err := ctx.Err(); err != nil {
				outcomes[i] = types.ErrorOutcome(doc.Name, err)
				return nil
			}
			outcomes[i] = extractOne(ext, doc, log)
			return nil
		})
	}
	// Workers never return errors; failures live in the outcomes.
	_ = g.Wait()

	return outcomes
}

func extractOne(ext Extractor, doc types.Document, log *zap.Logger) (out types.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("extraction panicked",
				zap.String("document", doc.Name),
				zap.Any("panic", r),
			)
			out = types.ErrorOutcome(doc.Name, fmt.Errorf("panic: %v", r))
		}
	}()

	rng, ok, err := ext.Extract(doc.Text)
	if err != nil {
		log.Error("extraction failed",
			zap.String("document", doc.Name),
			zap.Error(err),
		)
		return types.ErrorOutcome(doc.Name, err)
	}
	if !ok {
		return types.NotFoundOutcome(doc.Name)
	}
	return types.FoundOutcome(doc.Name, rng)
}

// ExtractAll processes every job description in dir and writes one
// progress line per document to w, followed by the totals. A missing
// directory is not an error; it yields no outcomes.
func ExtractAll(ctx context.Context, ext Extractor, dir string, opts Options, w io.Writer) ([]types.Outcome, Summary, error) {
	docs, err := ingest.ReadDir(dir, w)
	if err != nil {
		return nil, Summary{}, err
	}

	outcomes := Process(ctx, ext, docs, opts)
	for _, o := range outcomes {
		WriteProgress(w, o)
	}

	summary := Summarize(outcomes)
	fmt.Fprintf(w, "\nfound: %d, not found: %d, failed: %d\n",
		summary.Found, summary.NotFound, summary.Failed)

	return outcomes, summary, nil
}

// WriteProgress prints the status line for one outcome.
func WriteProgress(w io.Writer, o types.Outcome) {
	switch o.Status {
	case types.StatusFound:
		fmt.Fprintf(w, "found     %s: %s\n", o.Name, o.Experience)
	case types.StatusNotFound:
		fmt.Fprintf(w, "not found %s\n", o.Name)
	default:
		fmt.Fprintf(w, "failed    %s: %s\n", o.Name, o.Err)
	}
}
