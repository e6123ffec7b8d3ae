// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared by the extraction engine, the
// batch processor, the report writers, and the CLI.
package types

import "fmt"

// Markers written in place of a range when a document yields none.
const (
	NotFound    = "Not Found"
	ErrorMarker = "Error"
)

// Range is a normalized years-of-experience range. Its canonical text form
// is "{Low} - {High} Years".
type Range struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

// NewRange orders the two endpoints so that Low <= High.
func NewRange(a, b int) Range {
	return Range{Low: min(a, b), High: max(a, b)}
}

// Span returns High - Low.
func (r Range) Span() int {
	return r.High - r.Low
}

// String renders the canonical form, e.g. "3 - 5 Years".
func (r Range) String() string {
	return fmt.Sprintf("%d - %d Years", r.Low, r.High)
}

// Document is one job description handed to the extractor.
type Document struct {
	// Name identifies the document: a file name such as "backend.txt" or a
	// generated label such as "pasted_jd_2".
	Name string `json:"name" yaml:"name"`

	// Text is the raw job description.
	Text string `json:"-" yaml:"-"`
}

// OutcomeStatus classifies the result of extracting from one document.
type OutcomeStatus string

const (
	StatusFound    OutcomeStatus = "found"
	StatusNotFound OutcomeStatus = "not_found"
	StatusError    OutcomeStatus = "error"
)

// Outcome is the per-document result of a batch run. Experience always
// holds a printable value: a range string, NotFound, or ErrorMarker.
type Outcome struct {
	Name       string        `json:"name" yaml:"name"`
	Experience string        `json:"experience" yaml:"experience"`
	Status     OutcomeStatus `json:"status" yaml:"status"`

	// Err carries the failure message when Status is StatusError.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// FoundOutcome builds the outcome for a document that produced a range.
func FoundOutcome(name string, r Range) Outcome {
	return Outcome{Name: name, Experience: r.String(), Status: StatusFound}
}

// NotFoundOutcome builds the outcome for a document without a usable mention.
func NotFoundOutcome(name string) Outcome {
	return Outcome{Name: name, Experience: NotFound, Status: StatusNotFound}
}

// ErrorOutcome builds the outcome for a document whose extraction failed.
func ErrorOutcome(name string, err error) Outcome {
	o := Outcome{Name: name, Experience: ErrorMarker, Status: StatusError}
	if err != nil {
		o.Err = err.Error()
	}
	return o
}
