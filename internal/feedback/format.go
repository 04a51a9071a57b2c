// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package feedback formats engine failures into messages the upstream agent
// can act on: what went wrong, where, and what a corrected instruction needs
// to look like.
// Implements: prd005-failure-taxonomy R2;
//
//	docs/ARCHITECTURE § Failure Reporting.
package feedback

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-patcher/internal/match"
	"github.com/petar-djukic/go-patcher/internal/resolve"
	"github.com/petar-djukic/go-patcher/pkg/types"
)

const defaultContextLines = 3

const retryPreamble = "The diff was not applied. Fix the problem below and resend the full set of SEARCH/REPLACE blocks.\n\n"

// MalformedDetail describes a structural parse failure.
//
// Implements: prd005-failure-taxonomy R2.1.
func MalformedDetail(err error) string {
	return retryPreamble + fmt.Sprintf("Parse failure: %v.", err)
}

// AmbiguousInsertionDetail describes an insertion block that cannot be
// placed because it has no line hint.
//
// Implements: prd005-failure-taxonomy R2.2.
func AmbiguousInsertionDetail(err error) string {
	return retryPreamble + fmt.Sprintf(
		"Ambiguous insertion: %v. Add a :start_line: hint so the engine knows where the new text belongs.", err)
}

// NoMatchDetail describes a failed match, quoting the searched text and a
// line-numbered excerpt of the closest window found so the agent can see
// how far off its search text was.
//
// Implements: prd005-failure-taxonomy R2.3.
func NoMatchDetail(doc *types.Document, opIndex int, op types.EditOperation, e *match.NoMatchError) string {
	var buf strings.Builder
	buf.WriteString(retryPreamble)
	fmt.Fprintf(&buf, "Operation %d found no matching text (best similarity %.3f, threshold %.3f).\n\n",
		opIndex+1, e.BestScore, e.Threshold)

	buf.WriteString("Searched for:\n```\n")
	buf.WriteString(op.SearchText)
	buf.WriteString("\n```\n")

	if e.BestStart > 0 {
		fmt.Fprintf(&buf, "\nClosest window, lines %d-%d:\n```\n", e.BestStart, e.BestEnd)
		buf.WriteString(renderContext(doc, e.BestStart, e.BestEnd, defaultContextLines))
		buf.WriteString("```\n")
	}

	return buf.String()
}

// OverlapDetail describes two instructions that resolved to intersecting
// line ranges.
//
// Implements: prd005-failure-taxonomy R2.4.
func OverlapDetail(e *resolve.OverlapError) string {
	return retryPreamble + fmt.Sprintf(
		"Conflicting edits: %v. Merge them into one block or make their search texts target disjoint regions.", e)
}

// renderContext returns numbered document lines spanning start..end plus
// contextLines above and below, marking the span itself with ">".
func renderContext(doc *types.Document, start, end, contextLines int) string {
	lo := start - contextLines
	if lo < 1 {
		lo = 1
	}
	hi := end + contextLines
	if hi > doc.LineCount() {
		hi = doc.LineCount()
	}

	var buf strings.Builder
	for n := lo; n <= hi; n++ {
		marker := "  "
		if n >= start && n <= end {
			marker = "> "
		}
		fmt.Fprintf(&buf, "%s%4d │ %s\n", marker, n, doc.Line(n))
	}
	return buf.String()
}
