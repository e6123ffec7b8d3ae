// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console implements the interactive menu: line-based prompts for
// pasting job descriptions and a session loop that runs extractions and
// saves their results.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/experience-extractor/internal/ingest"
)

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter returns a Prompter over in and out. Lines may be up to 1 MiB
// long so whole job descriptions can be pasted as one line.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Prompter{in: sc, out: out}
}

// readLine returns the next line without its terminator, or io.EOF.
func (p *Prompter) readLine() (string, error) {
	if p.in.Scan() {
		return p.in.Text(), nil
	}
	if err := p.in.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Choice asks for a number between lo and hi until one is given. It
// returns io.EOF when the input ends first.
func (p *Prompter) Choice(lo, hi int) (int, error) {
	for {
		fmt.Fprintf(p.out, "\nEnter your choice (%d-%d): ", lo, hi)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a number")
			continue
		}
		if n < lo || n > hi {
			fmt.Fprintf(p.out, "Please enter a number between %d and %d\n", lo, hi)
			continue
		}
		return n, nil
	}
}

// ReadDocument reads one job description terminated by an empty line. An
// empty line before any text is ignored with a reminder. At end of input
// whatever was read is returned; ok is false when nothing was.
func (p *Prompter) ReadDocument() (text string, ok bool) {
	fmt.Fprintln(p.out, "\nEnter/Paste your job description (press Enter twice to finish):")
	var lines []string
	for {
		line, err := p.readLine()
		if err != nil {
			break
		}
		if line == "" {
			if len(lines) > 0 {
				break
			}
			fmt.Fprintln(p.out, "Please paste the job description first")
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// ReadDocuments reads several job descriptions separated by "==" lines,
// finishing at two consecutive blank lines or end of input.
func (p *Prompter) ReadDocuments() []string {
	fmt.Fprintln(p.out, "Enter multiple JDs separated by '==' (press Enter twice when done):")
	var content []string
	blank := 0
	for {
		line, err := p.readLine()
		if err != nil {
			break
		}
		if strings.TrimSpace(line) == "" {
			blank++
			if blank >= 2 {
				break
			}
			continue
		}
		blank = 0
		content = append(content, line)
	}
	return ingest.SplitPasted(strings.Join(content, "\n"))
}

// Confirm asks a yes/no question; only "y" counts as yes.
func (p *Prompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "\n%s (y/n): ", question)
	line, err := p.readLine()
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
