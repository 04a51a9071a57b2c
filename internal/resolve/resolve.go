// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resolve validates a batch of resolved matches for conflicts and
// orders them for application. Because every match is resolved against the
// original document, applying from the highest start line down keeps the
// lower-line matches valid: only the already-processed tail shifts.
//
// Implements: prd004-resolver R1, R2;
//
//	docs/ARCHITECTURE § Conflict & Order Resolver.
package resolve

import (
	"fmt"
	"sort"

	"github.com/petar-djukic/go-patcher/pkg/types"
)

// ResolvedEdit pairs an operation with its match, remembering the original
// instruction index for error reporting and ordering ties.
type ResolvedEdit struct {
	Index int // Position in the instruction list (0-based)
	Op    types.EditOperation
	Match types.MatchResult
}

// OverlapError names the two instructions whose resolved ranges intersect.
// Overlapping batches are rejected whole; partial application is never
// attempted.
//
// Implements: prd004-resolver R1.2, R1.3.
type OverlapError struct {
	FirstIndex  int // 0-based instruction index of the earlier operation
	SecondIndex int
	First       types.MatchResult
	Second      types.MatchResult
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("operations %d (lines %d-%d) and %d (lines %d-%d) overlap",
		e.FirstIndex+1, e.First.StartLine, e.First.EndLine,
		e.SecondIndex+1, e.Second.StartLine, e.Second.EndLine)
}

// Order verifies that no two resolved ranges share a line and returns the
// edits sorted for application: descending start line. A start-line tie can
// only be a replacement plus insertions at its start (ranges overlap
// otherwise), so ties break by descending end line: the replacement splices
// first, and the insertions then land in front of the already-replaced
// region instead of inside it. Among equal empty ranges, descending
// instruction index keeps same-point insertions in instruction order in the
// output.
//
// Implements: prd004-resolver R1.1, R2.1-R2.3.
func Order(edits []ResolvedEdit) ([]ResolvedEdit, error) {
	for i := 0; i < len(edits); i++ {
		for j := i + 1; j < len(edits); j++ {
			if overlaps(edits[i].Match, edits[j].Match) {
				return nil, &OverlapError{
					FirstIndex:  edits[i].Index,
					SecondIndex: edits[j].Index,
					First:       edits[i].Match,
					Second:      edits[j].Match,
				}
			}
		}
	}

	ordered := make([]ResolvedEdit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(a, b int) bool {
		if ordered[a].Match.StartLine != ordered[b].Match.StartLine {
			return ordered[a].Match.StartLine > ordered[b].Match.StartLine
		}
		if ordered[a].Match.EndLine != ordered[b].Match.EndLine {
			return ordered[a].Match.EndLine > ordered[b].Match.EndLine
		}
		return ordered[a].Index > ordered[b].Index
	})
	return ordered, nil
}

// overlaps is the inclusive-range intersection test. Insertion ranges are
// empty (end == start-1) and therefore never overlap each other, but do
// conflict with a replacement range that spans their insertion point.
func overlaps(a, b types.MatchResult) bool {
	return a.StartLine <= b.EndLine && b.StartLine <= a.EndLine
}
