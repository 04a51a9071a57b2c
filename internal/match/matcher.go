// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package match locates the line range of a document that an edit
// operation's search text refers to. Exact line-window matching runs first;
// fuzzy similarity matching is the fallback, restricted to a neighborhood of
// the line hint when one is present.
//
// Implements: prd003-matcher R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § Matcher.
package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petar-djukic/go-patcher/pkg/types"
)

const (
	defaultFuzzyThreshold = 0.97
	defaultHintRadius     = 100
)

// ErrUnhintedInsertion is returned for an insertion operation (empty search
// text) without a start-line hint. The parser rejects these up front; this
// guards direct Matcher callers.
var ErrUnhintedInsertion = errors.New("insertion without a line hint")

// Matcher resolves edit operations to document line ranges. The zero value
// uses a 0.97 fuzzy threshold, a ±100-line hint window, and tolerates one
// extra or missing trailing blank line in the search text.
type Matcher struct {
	// FuzzyThreshold is the minimum similarity for a fuzzy match.
	// Defaults to 0.97 if zero. Near-miss matches in code are dangerous,
	// hence the high default.
	FuzzyThreshold float64

	// HintRadius bounds the fuzzy scan to start lines within this distance
	// of the hint. Defaults to 100 if zero. Ignored when there is no hint.
	HintRadius int

	// StrictBlankLines disables the trailing-blank-line tolerance.
	StrictBlankLines bool
}

// NoMatchError reports that no window met the threshold, carrying the best
// candidate found for diagnostics.
//
// Implements: prd003-matcher R4.2-R4.4.
type NoMatchError struct {
	BestScore float64 // Highest similarity seen (0 if no candidate)
	BestStart int     // Start line of the best candidate (1-based; 0 if none)
	BestEnd   int     // End line of the best candidate (inclusive)
	Closest   string  // Text of the best candidate window
	Threshold float64 // Threshold that was required
}

func (e *NoMatchError) Error() string {
	if e.BestStart == 0 {
		return "no matching window found"
	}
	return fmt.Sprintf("no match: closest window at lines %d-%d scored %.3f (threshold %.3f)",
		e.BestStart, e.BestEnd, e.BestScore, e.Threshold)
}

// Find resolves op against doc. Insertions resolve directly to the hinted
// point; otherwise exact matching runs over the whole document and fuzzy
// matching over the hint neighborhood.
//
// Implements: prd003-matcher R1.1, R2.1-R2.5, R3.1-R3.4.
func (m *Matcher) Find(doc *types.Document, op types.EditOperation) (*types.MatchResult, error) {
	if op.IsInsertion() {
		return m.resolveInsertion(doc, op)
	}

	searchLines := splitSearch(op.SearchText)
	hint := startHint(op, len(searchLines))

	if r := m.exactMatch(doc, searchLines, hint); r != nil {
		return r, nil
	}
	return m.fuzzyMatch(doc, op.SearchText, searchLines, hint)
}

// resolveInsertion maps an empty-search operation to an empty range before
// the hinted line, clamped to the document bounds so an append past the last
// line still works.
func (m *Matcher) resolveInsertion(doc *types.Document, op types.EditOperation) (*types.MatchResult, error) {
	if op.StartLine == 0 {
		return nil, ErrUnhintedInsertion
	}
	point := op.StartLine
	if limit := doc.LineCount() + 1; point > limit {
		point = limit
	}
	return &types.MatchResult{StartLine: point, EndLine: point - 1, Confidence: 1.0}, nil
}

// exactMatch scans every window whose joined content is character-identical
// to the search text. With a hint, the occurrence closest to it wins (ties
// go to the earlier one); without, the first occurrence wins. The
// blank-line-tolerant variants also count as exact (confidence 1.0) since
// their content is identical.
//
// Implements: prd003-matcher R2.1-R2.3.
func (m *Matcher) exactMatch(doc *types.Document, searchLines []string, hint int) *types.MatchResult {
	var best *types.MatchResult
	bestDist := -1

	for _, variant := range m.variants(searchLines) {
		n := len(variant)
		if n == 0 || n > doc.LineCount() {
			continue
		}
		for i := 1; i+n-1 <= doc.LineCount(); i++ {
			if !windowEquals(doc, i, variant) {
				continue
			}
			if hint == 0 {
				// First occurrence in document order.
				if best == nil || i < best.StartLine {
					best = &types.MatchResult{StartLine: i, EndLine: i + n - 1, Confidence: 1.0}
				}
				break
			}
			d := abs(i - hint)
			if best == nil || d < bestDist || (d == bestDist && i < best.StartLine) {
				best = &types.MatchResult{StartLine: i, EndLine: i + n - 1, Confidence: 1.0}
				bestDist = d
			}
		}
	}

	return best
}

// fuzzyMatch scores every candidate window with the same line count as the
// search text and accepts the best one at or above the threshold. With a
// hint, the scan covers start lines within HintRadius of it; ties on score
// prefer the window closest to the hint, then the earlier one.
//
// Implements: prd003-matcher R3.1-R3.4.
func (m *Matcher) fuzzyMatch(doc *types.Document, searchText string, searchLines []string, hint int) (*types.MatchResult, error) {
	threshold := m.fuzzyThreshold()
	normalized := strings.Join(searchLines, "\n")

	n := len(searchLines)
	if doc.LineCount() == 0 {
		return nil, &NoMatchError{Threshold: threshold}
	}
	if n > doc.LineCount() {
		// Degenerate case: search text is longer than the document. The
		// whole document is the only candidate.
		sim := Similarity(normalized, doc.Window(1, doc.LineCount()))
		if sim >= threshold {
			return &types.MatchResult{StartLine: 1, EndLine: doc.LineCount(), Confidence: sim}, nil
		}
		return nil, &NoMatchError{
			BestScore: sim,
			BestStart: 1,
			BestEnd:   doc.LineCount(),
			Closest:   doc.Window(1, doc.LineCount()),
			Threshold: threshold,
		}
	}

	lo, hi := 1, doc.LineCount()-n+1
	if hint > 0 {
		radius := m.hintRadius()
		if hint-radius > lo {
			lo = hint - radius
		}
		if hint+radius < hi {
			hi = hint + radius
		}
	}

	var (
		bestScore float64
		bestStart int
		bestDist  int
	)
	for i := lo; i <= hi; i++ {
		sim := Similarity(normalized, doc.Window(i, i+n-1))
		d := 0
		if hint > 0 {
			d = abs(i - hint)
		}
		better := sim > bestScore ||
			(sim == bestScore && bestStart != 0 && hint > 0 && d < bestDist)
		if bestStart == 0 || better {
			bestScore, bestStart, bestDist = sim, i, d
		}
	}

	if bestStart != 0 && bestScore >= threshold {
		return &types.MatchResult{StartLine: bestStart, EndLine: bestStart + n - 1, Confidence: bestScore}, nil
	}

	err := &NoMatchError{BestScore: bestScore, Threshold: threshold}
	if bestStart != 0 {
		err.BestStart = bestStart
		err.BestEnd = bestStart + n - 1
		err.Closest = doc.Window(bestStart, bestStart+n-1)
	}
	return nil, err
}

// variants returns the line sequences that count as an exact match for the
// search text. Beyond the text itself, the tolerance admits one missing or
// extra trailing blank line, a common artifact of model-generated diffs.
//
// Implements: prd003-matcher R2.4.
func (m *Matcher) variants(searchLines []string) [][]string {
	out := [][]string{searchLines}
	if m.StrictBlankLines {
		return out
	}
	if n := len(searchLines); n > 1 && searchLines[n-1] == "" {
		out = append(out, searchLines[:n-1])
	}
	out = append(out, append(append([]string{}, searchLines...), ""))
	return out
}

// splitSearch splits search text into lines, normalizing CRLF terminators
// so matching is terminator-independent. Content whitespace is untouched.
func splitSearch(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// startHint derives the effective start-line hint for an operation. An
// end-line hint alone is converted using the search length.
func startHint(op types.EditOperation, searchLen int) int {
	if op.StartLine > 0 {
		return op.StartLine
	}
	if op.EndLine > 0 {
		h := op.EndLine - searchLen + 1
		if h < 1 {
			h = 1
		}
		return h
	}
	return 0
}

func windowEquals(doc *types.Document, start int, lines []string) bool {
	for j, want := range lines {
		if doc.Line(start+j) != want {
			return false
		}
	}
	return true
}

func (m *Matcher) fuzzyThreshold() float64 {
	if m.FuzzyThreshold > 0 {
		return m.FuzzyThreshold
	}
	return defaultFuzzyThreshold
}

func (m *Matcher) hintRadius() int {
	if m.HintRadius > 0 {
		return m.HintRadius
	}
	return defaultHintRadius
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
