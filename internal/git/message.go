// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd007-git-integration R1.3.
package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

const maxSubjectLength = 72

// GenerateMessage creates a commit message for a set of patched files.
// Subject: "patch: update <name>" for one file, "patch: update N files"
// otherwise. Body lists every file; the trailer marks the commit as
// undoable by go-patcher.
func GenerateMessage(patchedFiles []string) string {
	subject := buildSubject(patchedFiles)
	body := buildBody(patchedFiles)

	msg := subject
	if body != "" {
		msg += "\n\n" + body
	}
	msg += "\n\n" + coAuthorTrailer

	return msg
}

// buildSubject creates the first line of the commit message (max 72 chars).
func buildSubject(patchedFiles []string) string {
	var subject string
	switch len(patchedFiles) {
	case 0:
		subject = "patch: no changes"
	case 1:
		subject = fmt.Sprintf("patch: update %s", filepath.Base(patchedFiles[0]))
	default:
		subject = fmt.Sprintf("patch: update %d files", len(patchedFiles))
	}

	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

// buildBody creates the commit body listing patched files.
func buildBody(patchedFiles []string) string {
	if len(patchedFiles) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("Patched files:\n")
	for _, f := range patchedFiles {
		buf.WriteString(fmt.Sprintf("- %s\n", f))
	}
	return buf.String()
}
