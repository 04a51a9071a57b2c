// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ValidRepo(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := Open(Config{WorkDir: dir, AutoCommit: true, DirtyCommit: true})
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestOpen_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(Config{WorkDir: dir})
	assert.ErrorIs(t, err, ErrNoGit)
}

func TestIsDirty(t *testing.T) {
	t.Run("clean repo", func(t *testing.T) {
		dir := initTestRepo(t)
		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		dirty, err := repo.IsDirty()
		require.NoError(t, err)
		assert.False(t, dirty)
	})

	t.Run("unstaged changes", func(t *testing.T) {
		dir := initTestRepo(t)
		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("edited\n"), 0o644))

		dirty, err := repo.IsDirty()
		require.NoError(t, err)
		assert.True(t, dirty)
	})
}

func TestIsPatcherCommit(t *testing.T) {
	t.Run("go-patcher commit", func(t *testing.T) {
		dir := initTestRepo(t)
		addFileAndCommit(t, dir, "patched.txt", "content\n", "patch: update patched.txt\n\n"+coAuthorTrailer)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		isPatcher, err := repo.IsPatcherCommit()
		require.NoError(t, err)
		assert.True(t, isPatcher)
	})

	t.Run("foreign commit", func(t *testing.T) {
		dir := initTestRepo(t)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		isPatcher, err := repo.IsPatcherCommit()
		require.NoError(t, err)
		assert.False(t, isPatcher)
	})
}

func TestHandleDirty(t *testing.T) {
	t.Run("commits dirty files when allowed", func(t *testing.T) {
		dir := initTestRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("edited\n"), 0o644))

		repo, err := Open(Config{WorkDir: dir, DirtyCommit: true})
		require.NoError(t, err)
		require.NoError(t, repo.HandleDirty())

		dirty, err := repo.IsDirty()
		require.NoError(t, err)
		assert.False(t, dirty)
	})

	t.Run("rejects dirty tree when disallowed", func(t *testing.T) {
		dir := initTestRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("edited\n"), 0o644))

		repo, err := Open(Config{WorkDir: dir, DirtyCommit: false})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.HandleDirty(), ErrDirtyWorkTree)
	})
}

func TestAutoCommit(t *testing.T) {
	dir := initTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("patched\n"), 0o644))

	repo, err := Open(Config{WorkDir: dir, AutoCommit: true})
	require.NoError(t, err)
	require.NoError(t, repo.AutoCommit([]string{"notes.txt"}))

	isPatcher, err := repo.IsPatcherCommit()
	require.NoError(t, err)
	assert.True(t, isPatcher)
}

func TestUndo(t *testing.T) {
	t.Run("reverts a go-patcher commit", func(t *testing.T) {
		dir := initTestRepo(t)
		addFileAndCommit(t, dir, "patched.txt", "content\n", "patch: update patched.txt\n\n"+coAuthorTrailer)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)
		require.NoError(t, repo.Undo())

		// HEAD moved back; the patched content stays in the tree.
		isPatcher, err := repo.IsPatcherCommit()
		require.NoError(t, err)
		assert.False(t, isPatcher)
		assert.FileExists(t, filepath.Join(dir, "patched.txt"))
	})

	t.Run("refuses a foreign commit", func(t *testing.T) {
		dir := initTestRepo(t)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Undo(), ErrNotPatcherCommit)
	})
}

func TestGenerateMessage(t *testing.T) {
	tests := []struct {
		name        string
		files       []string
		wantSubject string
	}{
		{name: "single file", files: []string{"docs/readme.md"}, wantSubject: "patch: update readme.md"},
		{name: "multiple files", files: []string{"a.txt", "b.txt", "c.txt"}, wantSubject: "patch: update 3 files"},
		{name: "no files", files: nil, wantSubject: "patch: no changes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := GenerateMessage(tt.files)
			assert.Contains(t, msg, tt.wantSubject)
			assert.Contains(t, msg, coAuthorTrailer)
			assert.LessOrEqual(t, len(firstLineOf(msg)), maxSubjectLength)
		})
	}
}

func TestGenerateMessage_IncludesFiles(t *testing.T) {
	msg := GenerateMessage([]string{"a.txt", "b.txt"})
	assert.Contains(t, msg, "Patched files:")
	assert.Contains(t, msg, "- a.txt")
	assert.Contains(t, msg, "- b.txt")
}

// initTestRepo creates a temp dir with a git repo, an initial commit, and
// returns the directory path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("original\n"), 0o644))

	_, err = wt.Add("notes.txt")
	require.NoError(t, err)

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

// addFileAndCommit adds a file and creates a commit with the given message.
func addFileAndCommit(t *testing.T, dir, name, content, msg string) {
	t.Helper()

	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	_, err = wt.Add(name)
	require.NoError(t, err)

	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}

func firstLineOf(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
