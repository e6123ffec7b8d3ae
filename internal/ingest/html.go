// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skippedTags never contribute visible text.
var skippedTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "head": true,
	"#comment": true,
}

// blockTags start a new line, so list items and paragraphs become separate
// sentences for the segmenter.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"tr": true, "td": true, "th": true, "table": true, "dd": true, "dt": true,
	"blockquote": true, "pre": true,
}

// HTMLText returns the visible text of an HTML job posting with one block
// element per line and runs of whitespace collapsed.
func HTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var b strings.Builder
	writeText(doc.Selection, &b)
	return collapseLines(b.String()), nil
}

func writeText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			b.WriteString(strings.Map(flattenSpace, child.Text()))
			return
		case skippedTags[name]:
			return
		}
		block := blockTags[name]
		if block {
			b.WriteByte('\n')
		}
		writeText(child, b)
		if block {
			b.WriteByte('\n')
		}
	})
}

// flattenSpace turns source line breaks into spaces; only block elements
// break lines.
func flattenSpace(r rune) rune {
	if r == '\n' || r == '\r' || r == '\t' {
		return ' '
	}
	return r
}

// collapseLines normalizes whitespace within lines and drops blank lines.
func collapseLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
