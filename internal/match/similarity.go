// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-matcher R3.2, R3.3 (similarity metric).
package match

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Similarity computes a Levenshtein ratio in [0,1] between two strings.
// Distance and length are measured in grapheme clusters rather than bytes
// or runes, so multi-code-unit content (emoji, combining marks) weighs as
// single units and cannot skew the score. 1.0 means identical.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := graphemeLevenshtein(diffs)

	maxLen := graphemeCount(a)
	if n := graphemeCount(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// graphemeLevenshtein folds a diff sequence into a Levenshtein distance the
// same way diffmatchpatch.DiffLevenshtein does, but counting grapheme
// clusters instead of runes.
func graphemeLevenshtein(diffs []diffmatchpatch.Diff) int {
	distance, inserts, deletes := 0, 0, 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserts += graphemeCount(d.Text)
		case diffmatchpatch.DiffDelete:
			deletes += graphemeCount(d.Text)
		case diffmatchpatch.DiffEqual:
			distance += maxInt(inserts, deletes)
			inserts, deletes = 0, 0
		}
	}
	return distance + maxInt(inserts, deletes)
}

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	iter := graphemes.FromString(s)
	n := 0
	for iter.Next() {
		n++
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
