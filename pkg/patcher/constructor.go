// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-patcher-interface R4;
//
//	docs/ARCHITECTURE § Patcher Interface.
package patcher

import (
	"fmt"

	"github.com/petar-djukic/go-patcher/internal/engine"
	"github.com/petar-djukic/go-patcher/pkg/types"
)

// New validates the config and returns a ready-to-use Patcher.
//
// Implements: prd001-patcher-interface R4.1-R4.3.
func New(cfg Config) (Patcher, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	eng := engine.New(engine.Config{
		FuzzyThreshold:   cfg.FuzzyThreshold,
		HintRadius:       cfg.HintRadius,
		StrictBlankLines: cfg.StrictBlankLines,
	})
	return &patcherAdapter{engine: eng}, nil
}

// ApplyDiff applies diffInstructions to originalContent with the default
// configuration. Convenience for callers that never tune the engine.
func ApplyDiff(originalContent, diffInstructions string) *types.ApplyResult {
	p, _ := New(Config{}) // Zero config always validates.
	return p.ApplyDiff(originalContent, diffInstructions)
}

// patcherAdapter adapts internal/engine.Engine to the public Patcher
// interface.
type patcherAdapter struct {
	engine *engine.Engine
}

func (a *patcherAdapter) ApplyDiff(originalContent, diffInstructions string) *types.ApplyResult {
	return a.engine.ApplyDiff(originalContent, diffInstructions)
}

// validateConfig checks that tunables are in range. Zero values are legal
// and select the defaults.
func validateConfig(cfg Config) error {
	if cfg.FuzzyThreshold < 0 || cfg.FuzzyThreshold > 1 {
		return fmt.Errorf("FuzzyThreshold %v is outside [0,1] (0 selects the default)", cfg.FuzzyThreshold)
	}
	if cfg.HintRadius < 0 {
		return fmt.Errorf("HintRadius %d is negative", cfg.HintRadius)
	}
	return nil
}
