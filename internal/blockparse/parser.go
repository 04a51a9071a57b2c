// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package blockparse parses raw diff-instruction text into an ordered list
// of EditOperations. The grammar is a SEARCH/REPLACE marker grammar with an
// optional line-hint sub-block:
//
//	<<<<<<< SEARCH
//	:start_line:12
//	:end_line:14
//	-------
//	old content
//	=======
//	new content
//	>>>>>>> REPLACE
//
// Markers only count when they appear on their own line in the expected
// sequence position, so search/replace content that merely resembles a
// marker does not terminate a block early.
//
// Implements: prd002-block-parser R1, R2, R3;
//
//	docs/ARCHITECTURE § Block Parser.
package blockparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/petar-djukic/go-patcher/pkg/types"
)

const (
	markerSearch  = "<<<<<<< SEARCH"
	markerDivider = "======="
	markerReplace = ">>>>>>> REPLACE"
	hintDivider   = "-------"

	hintStartPrefix = ":start_line:"
	hintEndPrefix   = ":end_line:"
)

// parserState tracks where the tokenizer is inside a block.
type parserState int

const (
	stateScan    parserState = iota // Outside any block
	stateHints                      // After SEARCH marker, collecting line hints
	stateSearch                     // Collecting search content
	stateReplace                    // Collecting replacement content
)

// ParseError describes a malformed edit block.
//
// Implements: prd002-block-parser R3.1-R3.3.
type ParseError struct {
	Position int    // Line number of the offending block's SEARCH marker (1-based)
	Message  string // What went wrong
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed block at line %d: %s", e.Position, e.Message)
}

// AmbiguousInsertionError is returned for a block with empty search text and
// no start-line hint: there is no way to decide where the insertion belongs.
//
// Implements: prd002-block-parser R2.4.
type AmbiguousInsertionError struct {
	Position int // Line number of the block's SEARCH marker (1-based)
}

func (e *AmbiguousInsertionError) Error() string {
	return fmt.Sprintf("block at line %d: empty search text requires a :start_line: hint", e.Position)
}

// NoBlocksError is returned when the instruction text contains no blocks.
type NoBlocksError struct{}

func (e *NoBlocksError) Error() string {
	return "no edit blocks found in instructions"
}

// Parse tokenizes instruction text into EditOperations. Text outside blocks
// (agent reasoning, markdown fences) is ignored. The first structural
// problem aborts the parse.
//
// Implements: prd002-block-parser R1.1-R1.6, R2.1-R2.4.
func Parse(instructions string) ([]types.EditOperation, error) {
	lines := strings.Split(instructions, "\n")

	var (
		ops          []types.EditOperation
		op           types.EditOperation
		searchLines  []string
		replaceLines []string
		blockStart   int // 1-based line of the current block's SEARCH marker
		hintsSeen    bool
	)
	state := stateScan

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch state {
		case stateScan:
			if trimmed == markerSearch {
				op = types.EditOperation{}
				searchLines = nil
				replaceLines = nil
				hintsSeen = false
				blockStart = i + 1
				state = stateHints
			}
			// Anything else is reasoning text.

		case stateHints:
			switch {
			case strings.HasPrefix(trimmed, hintStartPrefix):
				n, err := parseHint(trimmed, hintStartPrefix)
				if err != nil {
					return nil, &ParseError{Position: blockStart, Message: err.Error()}
				}
				op.StartLine = n
				hintsSeen = true
			case strings.HasPrefix(trimmed, hintEndPrefix):
				n, err := parseHint(trimmed, hintEndPrefix)
				if err != nil {
					return nil, &ParseError{Position: blockStart, Message: err.Error()}
				}
				op.EndLine = n
				hintsSeen = true
			case trimmed == hintDivider:
				state = stateSearch
			case hintsSeen:
				return nil, &ParseError{
					Position: blockStart,
					Message:  "line hints must be terminated by a ------- divider",
				}
			default:
				// No hint sub-block. Reprocess this line as search content.
				state = stateSearch
				i--
			}

		case stateSearch:
			switch trimmed {
			case markerDivider:
				state = stateReplace
			case markerSearch:
				return nil, &ParseError{
					Position: blockStart,
					Message:  "nested SEARCH marker before ======= divider",
				}
			case markerReplace:
				return nil, &ParseError{
					Position: blockStart,
					Message:  "REPLACE marker before ======= divider",
				}
			default:
				searchLines = append(searchLines, line)
			}

		case stateReplace:
			switch trimmed {
			case markerReplace:
				op.SearchText = strings.Join(searchLines, "\n")
				op.ReplaceText = strings.Join(replaceLines, "\n")
				if op.SearchText == "" && op.StartLine == 0 {
					return nil, &AmbiguousInsertionError{Position: blockStart}
				}
				ops = append(ops, op)
				state = stateScan
			case markerSearch:
				return nil, &ParseError{
					Position: blockStart,
					Message:  "new SEARCH marker before >>>>>>> REPLACE",
				}
			default:
				// A ======= here is replacement content: the only marker
				// expected in this position is >>>>>>> REPLACE.
				replaceLines = append(replaceLines, line)
			}
		}
	}

	switch state {
	case stateHints, stateSearch:
		return nil, &ParseError{Position: blockStart, Message: "unclosed block: missing ======= divider"}
	case stateReplace:
		return nil, &ParseError{Position: blockStart, Message: "unclosed block: missing >>>>>>> REPLACE marker"}
	}

	if len(ops) == 0 {
		return nil, &NoBlocksError{}
	}

	return ops, nil
}

// parseHint extracts the line number from a hint line like ":start_line:42".
func parseHint(line, prefix string) (int, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line hint %q: expected a positive integer", line)
	}
	return n, nil
}
