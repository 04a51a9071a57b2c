// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-document-model R1, R2;
//
//	docs/ARCHITECTURE § Document Model.
package types

import "strings"

// Document is a line-indexed view of a text buffer. Lines are 1-based and
// stored without terminators; each line's own terminator and the presence of
// a trailing terminator are recorded so Text reassembles unmodified lines
// byte-for-byte, even in a document that mixes LF and CRLF. A Document is
// immutable; Splice returns a new one.
type Document struct {
	lines       []string
	eols        []string // terminator after each line ("\n" or "\r\n")
	eol         string   // dominant convention, used for spliced-in lines
	trailingEOL bool     // original text ended with a terminator
}

// NewDocument splits text into lines, recording each line's terminator. The
// dominant convention for new lines is "\r\n" when the text contains at
// least one CRLF, "\n" otherwise.
//
// Implements: prd002-document-model R1.1-R1.4.
func NewDocument(text string) *Document {
	d := &Document{eol: "\n"}
	if strings.Contains(text, "\r\n") {
		d.eol = "\r\n"
	}

	if text == "" {
		return d
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
		d.trailingEOL = true
	}
	d.lines = lines
	d.eols = make([]string, len(lines))
	for i, line := range lines {
		d.eols[i] = "\n"
		// A final unterminated line has no terminator; a trailing \r there
		// is content, not half a CRLF.
		terminated := i < len(lines)-1 || d.trailingEOL
		if terminated && strings.HasSuffix(line, "\r") {
			d.lines[i] = strings.TrimSuffix(line, "\r")
			d.eols[i] = "\r\n"
		}
	}
	return d
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns line n (1-based). Panics on out-of-range n; callers are
// expected to range-check against LineCount.
func (d *Document) Line(n int) string {
	return d.lines[n-1]
}

// Window returns lines start..end (1-based, inclusive) joined with "\n".
// An empty range (end == start-1) returns "".
func (d *Document) Window(start, end int) string {
	if end < start {
		return ""
	}
	return strings.Join(d.lines[start-1:end], "\n")
}

// Splice returns a new Document with lines start..end (1-based, inclusive)
// replaced by repl. An empty range (end == start-1) inserts repl before
// start. Lines outside the range keep their content and terminators;
// spliced-in lines get the dominant convention.
//
// Implements: prd004-applier R1.1-R1.3.
func (d *Document) Splice(start, end int, repl []string) *Document {
	n := len(d.lines) - (end - start + 1) + len(repl)
	lines := make([]string, 0, n)
	eols := make([]string, 0, n)

	lines = append(lines, d.lines[:start-1]...)
	eols = append(eols, d.eols[:start-1]...)
	lines = append(lines, repl...)
	for range repl {
		eols = append(eols, d.eol)
	}
	lines = append(lines, d.lines[end:]...)
	eols = append(eols, d.eols[end:]...)

	return &Document{lines: lines, eols: eols, eol: d.eol, trailingEOL: d.trailingEOL}
}

// Text reassembles the document using each line's recorded terminator.
//
// Implements: prd002-document-model R2.1-R2.3.
func (d *Document) Text() string {
	var b strings.Builder
	for i, line := range d.lines {
		b.WriteString(line)
		if i < len(d.lines)-1 || d.trailingEOL {
			b.WriteString(d.eols[i])
		}
	}
	return b.String()
}
