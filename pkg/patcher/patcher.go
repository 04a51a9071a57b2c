// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package patcher defines the public interface for go-patcher, a fuzzy
// search/replace patching engine for LLM-generated edit blocks.
// Implements: prd001-patcher-interface R1, R2, R3;
//
//	docs/ARCHITECTURE § Patcher Interface.
package patcher

import (
	"errors"

	"github.com/petar-djukic/go-patcher/pkg/types"
)

// ErrInvalidConfig is returned by New when the configuration is rejected.
var ErrInvalidConfig = errors.New("invalid config")

// Config configures a Patcher instance. The zero value is usable: a 0.97
// fuzzy threshold, a ±100-line hint window, and trailing-blank-line
// tolerance enabled.
//
// Implements: prd001-patcher-interface R1.1-R1.4.
type Config struct {
	FuzzyThreshold   float64 // Minimum confidence for fuzzy matches, in (0,1] (default 0.97)
	HintRadius       int     // Fuzzy scan radius around line hints, in lines (default 100)
	StrictBlankLines bool    // Disable the trailing-blank-line match tolerance
}

// Patcher applies a batch of SEARCH/REPLACE edit blocks to a document.
// Implementations are stateless between calls and safe for concurrent use;
// every call operates on its own copy of the inputs.
//
// Implements: prd001-patcher-interface R2.1-R2.3.
type Patcher interface {
	// ApplyDiff parses diffInstructions, resolves every block against
	// originalContent, and returns either the fully patched text or a
	// structured failure. The batch is atomic: on any failure nothing is
	// applied.
	ApplyDiff(originalContent, diffInstructions string) *types.ApplyResult
}
