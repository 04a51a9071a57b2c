// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-patcher-interface R5.1, R5.2 (EditOperation, ApplyResult);
//
//	prd003-matcher R4.1 (MatchResult);
//	prd005-failure-taxonomy R1 (FailureKind).
package types

// EditOperation is one search/replace instruction parsed from a diff block.
// Line hints are advisory: the matcher prefers them but may match elsewhere.
type EditOperation struct {
	SearchText  string // Expected original content (empty = pure insertion)
	ReplaceText string // Replacement content (empty = deletion)
	StartLine   int    // Hinted first line (1-based; 0 = no hint)
	EndLine     int    // Hinted last line (1-based; 0 = no hint)
}

// IsInsertion reports whether the operation inserts text without replacing
// anything (empty search text).
func (op EditOperation) IsInsertion() bool {
	return op.SearchText == ""
}

// MatchResult is the resolved location of one edit operation in a document.
// The range is 1-based and inclusive. For pure insertions,
// EndLine == StartLine-1 (an empty range before StartLine).
type MatchResult struct {
	StartLine  int     // First matched line (1-based)
	EndLine    int     // Last matched line (inclusive)
	Confidence float64 // Similarity score in [0,1]; 1.0 for exact matches
}

// FailureKind classifies why an apply call was rejected.
//
// Implements: prd005-failure-taxonomy R1.1-R1.4.
type FailureKind int

const (
	FailureNone               FailureKind = iota // Success
	FailureMalformedBlock                        // Structural parse failure
	FailureAmbiguousInsertion                    // Empty search text without a line hint
	FailureNoMatch                               // No exact or sufficiently similar window
	FailureOverlappingEdits                      // Two resolved ranges intersect
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureMalformedBlock:
		return "malformed_block"
	case FailureAmbiguousInsertion:
		return "ambiguous_insertion"
	case FailureNoMatch:
		return "no_match"
	case FailureOverlappingEdits:
		return "overlapping_edits"
	default:
		return "unknown"
	}
}

// ApplyResult is the outcome of one apply call. A batch either fully applies
// (Success true, Content set) or is rejected with nothing changed (Failure
// and Detail set). Detail is written for the upstream agent so it can
// regenerate a corrected instruction.
type ApplyResult struct {
	Success bool          // True if every operation applied
	Content string        // Final document text (only when Success)
	Matches []MatchResult // Resolved range per operation, in instruction order (only when Success)
	Failure FailureKind   // Why the batch was rejected
	Detail  string        // Human-readable failure description
}
