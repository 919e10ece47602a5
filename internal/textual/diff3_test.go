// Copyright 2026 The Semistruct Merge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff3MergeCleanWhenOnlyOneSideChanges(t *testing.T) {
	m := New(Diff3, false)
	out, err := m.Merge("a\nB\nc\n", "a\nb\nc\n", "a\nb\nc\n", false)
	require.NoError(t, err)
	assert.Equal(t, "a\nB\nc\n", out)
}

func TestDiff3MergeConflictsOnOverlappingEdits(t *testing.T) {
	m := New(Diff3, false)
	out, err := m.Merge("f(10, 2);\n", "f(1, 2);\n", "f(1, 20);\n", false)
	require.NoError(t, err)
	assert.Contains(t, out, "<<<<<<< MINE")
	assert.Contains(t, out, "f(10, 2);")
	assert.Contains(t, out, "=======")
	assert.Contains(t, out, "f(1, 20);")
	assert.Contains(t, out, ">>>>>>> YOURS")
	assert.NotContains(t, out, "||||||| BASE")
}

func TestDiff3MergeShowBaseIncludesBaseHunk(t *testing.T) {
	m := New(Diff3, true)
	out, err := m.Merge("f(10, 2);\n", "f(1, 2);\n", "f(1, 20);\n", false)
	require.NoError(t, err)
	assert.Contains(t, out, "||||||| BASE")
	assert.Contains(t, out, "f(1, 2);")
}

func TestDiff3MergeCombinesNonOverlappingEdits(t *testing.T) {
	m := New(Diff3, false)
	out, err := m.Merge("line one\nCHANGED-BY-LEFT\nline three\n", "line one\nmiddle\nline three\n", "line one\nmiddle\nCHANGED-BY-RIGHT\n", false)
	require.NoError(t, err)
	assert.NotContains(t, out, "<<<<<<<")
	assert.Contains(t, out, "CHANGED-BY-LEFT")
	assert.Contains(t, out, "CHANGED-BY-RIGHT")
}

func TestDiff3MergeIdenticalChangeOnBothSidesIsClean(t *testing.T) {
	m := New(Diff3, false)
	out, err := m.Merge("a\nX\nc\n", "a\nb\nc\n", "a\nX\nc\n", false)
	require.NoError(t, err)
	assert.Equal(t, "a\nX\nc\n", out)
}

func TestDiff3MergeIgnoreWhitespaceTreatsReformattingAsNoop(t *testing.T) {
	m := New(Diff3, false)
	out, err := m.Merge("a\nb   c\n", "a\nb c\n", "a\nCHANGED\n", true)
	require.NoError(t, err)
	assert.NotContains(t, out, "<<<<<<<")
	assert.Contains(t, out, "CHANGED")
}

func TestDiff3MergeIdentityOnAllEqualInputs(t *testing.T) {
	m := New(Diff3, false)
	src := "one\ntwo\nthree\n"
	out, err := m.Merge(src, src, src, false)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}
