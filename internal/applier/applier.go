// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package applier splices ordered, validated edits into a document. It
// assumes the resolver has already checked for overlaps and sorted the
// edits high-to-low by start line.
//
// Implements: prd004-applier R1, R2;
//
//	docs/ARCHITECTURE § Applier.
package applier

import (
	"strings"

	"github.com/petar-djukic/go-patcher/internal/resolve"
	"github.com/petar-djukic/go-patcher/pkg/types"
)

// Apply replaces each matched line range with the operation's replacement
// lines, producing a new Document. Lines outside the replaced ranges are
// carried over untouched, and the document's terminator convention is
// preserved by the Document itself on reassembly.
//
// Implements: prd004-applier R1.1-R1.4, R2.1.
func Apply(doc *types.Document, ordered []resolve.ResolvedEdit) *types.Document {
	out := doc
	for _, e := range ordered {
		out = out.Splice(e.Match.StartLine, e.Match.EndLine, replacementLines(e.Op.ReplaceText))
	}
	return out
}

// replacementLines splits replacement text for splicing. Empty replacement
// text contributes no lines (a pure deletion), not one blank line.
func replacementLines(replaceText string) []string {
	if replaceText == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(replaceText, "\r\n", "\n"), "\n")
}
