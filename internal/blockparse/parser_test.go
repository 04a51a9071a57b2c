// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package blockparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleBlock(t *testing.T) {
	instructions := `Replacing the retry count:

<<<<<<< SEARCH
retries: 3
=======
retries: 5
>>>>>>> REPLACE`

	ops, err := Parse(instructions)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "retries: 3", ops[0].SearchText)
	assert.Equal(t, "retries: 5", ops[0].ReplaceText)
	assert.Equal(t, 0, ops[0].StartLine)
	assert.Equal(t, 0, ops[0].EndLine)
}

func TestParse_LineHints(t *testing.T) {
	instructions := `<<<<<<< SEARCH
:start_line:12
:end_line:14
-------
old text
more old text
=======
new text
>>>>>>> REPLACE`

	ops, err := Parse(instructions)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, 12, ops[0].StartLine)
	assert.Equal(t, 14, ops[0].EndLine)
	assert.Equal(t, "old text\nmore old text", ops[0].SearchText)
	assert.Equal(t, "new text", ops[0].ReplaceText)
}

func TestParse_MultipleBlocks(t *testing.T) {
	instructions := `First change:

<<<<<<< SEARCH
alpha
=======
ALPHA
>>>>>>> REPLACE

Second change:

<<<<<<< SEARCH
:start_line:9
-------
beta
=======
BETA
>>>>>>> REPLACE`

	ops, err := Parse(instructions)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "alpha", ops[0].SearchText)
	assert.Equal(t, "BETA", ops[1].ReplaceText)
	assert.Equal(t, 9, ops[1].StartLine)
}

func TestParse_MarkerLikeContent(t *testing.T) {
	// A ======= in replacement content and a ------- below the first search
	// content line are ordinary text: neither is the marker expected in
	// that position.
	instructions := `<<<<<<< SEARCH
section
-------
underline
=======
section
=======
underline
>>>>>>> REPLACE`

	ops, err := Parse(instructions)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "section\n-------\nunderline", ops[0].SearchText)
	assert.Equal(t, "section\n=======\nunderline", ops[0].ReplaceText)
}

func TestParse_EmptyReplacementIsDeletion(t *testing.T) {
	instructions := `<<<<<<< SEARCH
dead code
=======
>>>>>>> REPLACE`

	ops, err := Parse(instructions)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "dead code", ops[0].SearchText)
	assert.Equal(t, "", ops[0].ReplaceText)
}

func TestParse_InsertionWithHint(t *testing.T) {
	instructions := `<<<<<<< SEARCH
:start_line:4
-------
=======
inserted line
>>>>>>> REPLACE`

	ops, err := Parse(instructions)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.True(t, ops[0].IsInsertion())
	assert.Equal(t, 4, ops[0].StartLine)
	assert.Equal(t, "inserted line", ops[0].ReplaceText)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		wantMessage  string
	}{
		{
			name:         "missing divider",
			instructions: "<<<<<<< SEARCH\nold\n>>>>>>> REPLACE",
			wantMessage:  "REPLACE marker before ======= divider",
		},
		{
			name:         "missing replace marker",
			instructions: "<<<<<<< SEARCH\nold\n=======\nnew",
			wantMessage:  "missing >>>>>>> REPLACE",
		},
		{
			name:         "unclosed search",
			instructions: "<<<<<<< SEARCH\nold",
			wantMessage:  "missing ======= divider",
		},
		{
			name:         "nested search marker",
			instructions: "<<<<<<< SEARCH\n<<<<<<< SEARCH\n=======\nnew\n>>>>>>> REPLACE",
			wantMessage:  "nested SEARCH marker",
		},
		{
			name:         "search marker inside replacement",
			instructions: "<<<<<<< SEARCH\nold\n=======\n<<<<<<< SEARCH\n>>>>>>> REPLACE",
			wantMessage:  "new SEARCH marker before >>>>>>> REPLACE",
		},
		{
			name:         "hint without divider",
			instructions: "<<<<<<< SEARCH\n:start_line:3\nold\n=======\nnew\n>>>>>>> REPLACE",
			wantMessage:  "line hints must be terminated",
		},
		{
			name:         "non-numeric hint",
			instructions: "<<<<<<< SEARCH\n:start_line:abc\n-------\nold\n=======\nnew\n>>>>>>> REPLACE",
			wantMessage:  "invalid line hint",
		},
		{
			name:         "zero hint",
			instructions: "<<<<<<< SEARCH\n:start_line:0\n-------\nold\n=======\nnew\n>>>>>>> REPLACE",
			wantMessage:  "invalid line hint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.instructions)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, parseErr.Message, tt.wantMessage)
			assert.Equal(t, 1, parseErr.Position)
		})
	}
}

func TestParse_InsertionWithoutHint(t *testing.T) {
	instructions := `<<<<<<< SEARCH
=======
inserted line
>>>>>>> REPLACE`

	_, err := Parse(instructions)
	var ambiguous *AmbiguousInsertionError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 1, ambiguous.Position)
}

func TestParse_NoBlocks(t *testing.T) {
	_, err := Parse("just some prose with no markers")
	var noBlocks *NoBlocksError
	assert.ErrorAs(t, err, &noBlocks)
}

func TestParse_IgnoresSurroundingProse(t *testing.T) {
	instructions := "I looked at the file.\n```\n<<<<<<< SEARCH\nx = 1\n=======\nx = 2\n>>>>>>> REPLACE\n```\nDone."

	ops, err := Parse(instructions)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "x = 1", ops[0].SearchText)
}
