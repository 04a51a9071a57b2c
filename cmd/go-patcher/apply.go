// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-cli R2, R3, R4.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-patcher/internal/fileio"
	gitpkg "github.com/petar-djukic/go-patcher/internal/git"
	"github.com/petar-djukic/go-patcher/pkg/patcher"
	"github.com/petar-djukic/go-patcher/pkg/types"
)

// newApplyCmd creates the "apply" command.
func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a diff to a file",
		Long:  "Apply reads a document and a SEARCH/REPLACE instruction file, resolves every block, and either prints the result or rewrites the document in place.",
		RunE:  runApply,
	}

	cmd.Flags().StringP("file", "f", "", "Document to patch (required)")
	cmd.Flags().StringP("diff", "d", "-", "Diff instruction file ('-' for stdin)")
	cmd.Flags().Bool("write", false, "Write the patched document back to the file")
	cmd.Flags().Bool("stdout", false, "Print the patched text instead of the JSON result")
	cmd.Flags().Bool("commit", false, "Auto-commit the patched file (implies --write)")
	cmd.MarkFlagRequired("file")

	return cmd
}

// runApply executes the apply command.
func runApply(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")
	diffPath, _ := cmd.Flags().GetString("diff")
	write, _ := cmd.Flags().GetBool("write")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	commit, _ := cmd.Flags().GetBool("commit")
	if commit {
		write = true
	}

	original, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}

	instructions, err := readDiff(diffPath)
	if err != nil {
		return err
	}

	p, err := patcher.New(patcher.Config{
		FuzzyThreshold:   viper.GetFloat64("fuzzy-threshold"),
		HintRadius:       viper.GetInt("hint-radius"),
		StrictBlankLines: viper.GetBool("strict-blank-lines"),
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Commit pre-existing changes first so undo only ever reverts the patch.
	var repo *gitpkg.Repo
	if commit && !viper.GetBool("no-git") {
		repo, err = gitpkg.Open(gitpkg.Config{
			WorkDir:     viper.GetString("workdir"),
			AutoCommit:  true,
			DirtyCommit: true,
		})
		if err != nil {
			return err
		}
		if err := repo.HandleDirty(); err != nil {
			return fmt.Errorf("handling dirty files: %w", err)
		}
	}

	result := p.ApplyDiff(string(original), instructions)
	if !result.Success {
		printResult(result)
		return fmt.Errorf("diff not applied: %s", result.Failure)
	}

	if write {
		if err := fileio.WriteAtomic(filePath, []byte(result.Content)); err != nil {
			return fmt.Errorf("writing %s: %w", filePath, err)
		}
		if repo != nil {
			// go-git stages by repository-root-relative path; --file may be
			// absolute or relative to the current directory.
			relPath, err := repoRelative(viper.GetString("workdir"), filePath)
			if err != nil {
				return err
			}
			if err := repo.AutoCommit([]string{relPath}); err != nil {
				return fmt.Errorf("committing: %w", err)
			}
		}
	}

	if toStdout {
		fmt.Print(result.Content)
		return nil
	}

	printResult(result)
	return nil
}

// repoRelative converts path, as typed on the command line, to a
// slash-separated path relative to the repository work directory. Paths
// outside the repository cannot be staged and are rejected.
func repoRelative(workDir, path string) (string, error) {
	root, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving workdir %s: %w", workDir, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository at %s", path, workDir)
	}
	return filepath.ToSlash(rel), nil
}

// readDiff reads the instruction text from a file or stdin.
func readDiff(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// printResult outputs the result as JSON to stdout. The patched content is
// omitted; it is either on disk already or requested via --stdout.
func printResult(result *types.ApplyResult) {
	view := struct {
		Success bool
		Matches []types.MatchResult `json:",omitempty"`
		Failure string              `json:",omitempty"`
		Detail  string              `json:",omitempty"`
	}{
		Success: result.Success,
		Matches: result.Matches,
	}
	if !result.Success {
		view.Failure = result.Failure.String()
		view.Detail = result.Detail
	}

	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

// newUndoCmd creates the "undo" command.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last go-patcher commit",
		Long:  "Undo performs a soft reset of the last commit if it was made by go-patcher.",
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir := viper.GetString("workdir")

			repo, err := gitpkg.Open(gitpkg.Config{WorkDir: workDir})
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}

			if err := repo.Undo(); err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}

			fmt.Println("Successfully reverted last go-patcher commit.")
			return nil
		},
	}
}
