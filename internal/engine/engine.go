// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine wires the four diff stages into one pipeline: parse the
// instruction text, resolve every operation against the original document,
// validate and order the matches, then splice. Any stage failure rejects
// the whole batch with nothing applied.
// Implements: prd001-patcher-interface R2;
//
//	docs/ARCHITECTURE § Engine Pipeline.
package engine

import (
	"errors"

	"github.com/petar-djukic/go-patcher/internal/applier"
	"github.com/petar-djukic/go-patcher/internal/blockparse"
	"github.com/petar-djukic/go-patcher/internal/feedback"
	"github.com/petar-djukic/go-patcher/internal/match"
	"github.com/petar-djukic/go-patcher/internal/resolve"
	"github.com/petar-djukic/go-patcher/pkg/types"
)

// Config carries the per-call engine settings. Zero values select the
// matcher defaults; the engine holds no other state, so one Engine may be
// shared by concurrent callers.
type Config struct {
	FuzzyThreshold   float64 // Minimum fuzzy-match confidence (0 = 0.97)
	HintRadius       int     // Fuzzy scan radius around line hints (0 = 100)
	StrictBlankLines bool    // Disable trailing-blank-line tolerance
}

// Engine applies diff-instruction batches to documents.
type Engine struct {
	cfg Config
}

// New returns an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// ApplyDiff runs the full pipeline. Failures come back as result values,
// never as panics: the caller (typically an agent loop) is expected to
// regenerate the instructions and retry.
//
// Implements: prd001-patcher-interface R2.1-R2.4.
func (e *Engine) ApplyDiff(originalContent, diffInstructions string) *types.ApplyResult {
	ops, err := blockparse.Parse(diffInstructions)
	if err != nil {
		return parseFailure(err)
	}

	doc := types.NewDocument(originalContent)
	matcher := &match.Matcher{
		FuzzyThreshold:   e.cfg.FuzzyThreshold,
		HintRadius:       e.cfg.HintRadius,
		StrictBlankLines: e.cfg.StrictBlankLines,
	}

	// Every operation is matched against the original document; the
	// resolver's high-to-low ordering is what keeps those line numbers
	// valid during application.
	resolved := make([]resolve.ResolvedEdit, 0, len(ops))
	matches := make([]types.MatchResult, 0, len(ops))
	for i, op := range ops {
		m, err := matcher.Find(doc, op)
		if err != nil {
			return matchFailure(doc, i, op, err)
		}
		resolved = append(resolved, resolve.ResolvedEdit{Index: i, Op: op, Match: *m})
		matches = append(matches, *m)
	}

	ordered, err := resolve.Order(resolved)
	if err != nil {
		var overlap *resolve.OverlapError
		if errors.As(err, &overlap) {
			return &types.ApplyResult{
				Failure: types.FailureOverlappingEdits,
				Detail:  feedback.OverlapDetail(overlap),
			}
		}
		return &types.ApplyResult{Failure: types.FailureOverlappingEdits, Detail: err.Error()}
	}

	final := applier.Apply(doc, ordered)
	return &types.ApplyResult{
		Success: true,
		Content: final.Text(),
		Matches: matches,
	}
}

// parseFailure maps parser errors onto the failure taxonomy.
func parseFailure(err error) *types.ApplyResult {
	var ambiguous *blockparse.AmbiguousInsertionError
	if errors.As(err, &ambiguous) {
		return &types.ApplyResult{
			Failure: types.FailureAmbiguousInsertion,
			Detail:  feedback.AmbiguousInsertionDetail(ambiguous),
		}
	}
	return &types.ApplyResult{
		Failure: types.FailureMalformedBlock,
		Detail:  feedback.MalformedDetail(err),
	}
}

// matchFailure maps matcher errors onto the failure taxonomy, attaching the
// closest-window diagnostics for NoMatch.
func matchFailure(doc *types.Document, opIndex int, op types.EditOperation, err error) *types.ApplyResult {
	if errors.Is(err, match.ErrUnhintedInsertion) {
		return &types.ApplyResult{
			Failure: types.FailureAmbiguousInsertion,
			Detail:  feedback.AmbiguousInsertionDetail(err),
		}
	}
	var noMatch *match.NoMatchError
	if errors.As(err, &noMatch) {
		return &types.ApplyResult{
			Failure: types.FailureNoMatch,
			Detail:  feedback.NoMatchDetail(doc, opIndex, op, noMatch),
		}
	}
	return &types.ApplyResult{Failure: types.FailureNoMatch, Detail: err.Error()}
}
