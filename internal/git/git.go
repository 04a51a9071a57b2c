// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git provides auto-commit, dirty-tree handling, and undo for
// patches applied by go-patcher.
// Implements: prd007-git-integration R1, R2, R3;
//
//	docs/ARCHITECTURE § Git Integration.
package git

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

const (
	coAuthorTrailer = "Co-Authored-By: go-patcher <noreply@go-patcher>"
	dirtyCommitMsg  = "go-patcher: save uncommitted changes before patch"
)

// ErrNotPatcherCommit is returned when undo targets a commit not made by go-patcher.
var ErrNotPatcherCommit = errors.New("not a go-patcher commit")

// ErrDirtyWorkTree is returned when uncommitted changes exist and DirtyCommit is false.
var ErrDirtyWorkTree = errors.New("uncommitted changes exist")

// ErrNoGit is returned when the working directory is not a git repository.
var ErrNoGit = errors.New("not a git repository")

// Config configures git integration behavior.
type Config struct {
	WorkDir     string // Repository working directory
	AutoCommit  bool   // Create commits after patches
	DirtyCommit bool   // Commit dirty files before patching
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	cfg  Config
}

// Open opens an existing git repository at the configured work directory.
// Returns ErrNoGit if the directory is not a git repository.
//
// Implements: prd007-git-integration R1.1.
func Open(cfg Config) (*Repo, error) {
	r, err := gogit.PlainOpen(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Repo{repo: r, cfg: cfg}, nil
}

// IsDirty returns true if the working tree has uncommitted changes
// (either staged or unstaged).
//
// Implements: prd007-git-integration R2.1.
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	return !status.IsClean(), nil
}

// IsPatcherCommit checks whether the HEAD commit was made by go-patcher
// by looking for the Co-Authored-By trailer.
//
// Implements: prd007-git-integration R3.2.
func (r *Repo) IsPatcherCommit() (bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return false, fmt.Errorf("getting commit: %w", err)
	}

	return strings.Contains(commit.Message, coAuthorTrailer), nil
}
