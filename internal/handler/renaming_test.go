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

package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeforge-dev/semistruct-merge/internal/mergectx"
	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

func TestRenamingHandlerAppliesSafeRenameAndDetachesOld(t *testing.T) {
	ctx := mergectx.New(nil)
	root := node.NewNonTerminal(ctx.Alloc, "File", "f")

	// right never touched this slot (OtherSideEdited is the zero value,
	// false): applySafeRename keeps the matched addition's own body and
	// discards oldDecl's emptied one.
	oldDecl := node.NewTerminal(ctx.Alloc, "Method", "oldName", "", "", node.Default)
	newDecl := node.NewTerminal(ctx.Alloc, "Method", "newName", "return 1;", "", node.Default)
	root.AppendChild(oldDecl)
	root.AppendChild(newDecl)

	ctx.PossibleRenamedLeftNodes = []mergectx.RenameCandidate{{BaseBody: "return 1;", Node: oldDecl}}
	ctx.AddedLeftNodes = []node.Node{newDecl}
	ctx.NodesDeletedByLeft = []node.Node{oldDecl}

	h := &renamingHandler{}
	require.NoError(t, h.Handle(ctx))

	assert.NotContains(t, root.Children(), node.Node(oldDecl))
	assert.Contains(t, root.Children(), node.Node(newDecl))
	assert.Equal(t, "return 1;", newDecl.Body())
}

func TestRenamingHandlerPreservesOtherSidesEditWhenItTouchedTheOldSlot(t *testing.T) {
	ctx := mergectx.New(nil)
	root := node.NewNonTerminal(ctx.Alloc, "File", "f")

	// right edited the old slot's content relative to base while left
	// renamed it away: oldDecl's post-content-merge body (a conflict
	// bracket, stood in here directly since content.Merge already ran)
	// must survive onto the renamed declaration, not newDecl's own text.
	conflictBody := "<<<<<<< MINE\n\n=======\nreturn 2;\n>>>>>>> YOURS\n"
	oldDecl := node.NewTerminal(ctx.Alloc, "Method", "oldName", conflictBody, "", node.Default)
	newDecl := node.NewTerminal(ctx.Alloc, "Method", "newName", "return 1;", "", node.Default)
	root.AppendChild(oldDecl)
	root.AppendChild(newDecl)

	ctx.PossibleRenamedLeftNodes = []mergectx.RenameCandidate{{BaseBody: "return 1;", Node: oldDecl, OtherSideEdited: true}}
	ctx.AddedLeftNodes = []node.Node{newDecl}
	ctx.NodesDeletedByLeft = []node.Node{oldDecl}

	h := &renamingHandler{}
	require.NoError(t, h.Handle(ctx))

	assert.Equal(t, conflictBody, newDecl.Body())
}

func TestRenamingHandlerFlagsUnsafeRenameOnAmbiguousMatch(t *testing.T) {
	ctx := mergectx.New(nil)
	candidate := node.NewTerminal(ctx.Alloc, "Method", "oldName", "", "", node.Default)
	matchA := node.NewTerminal(ctx.Alloc, "Method", "a", "return 1;", "", node.Default)
	matchB := node.NewTerminal(ctx.Alloc, "Method", "b", "return 1;", "", node.Default)

	ctx.PossibleRenamedLeftNodes = []mergectx.RenameCandidate{{BaseBody: "return 1;", Node: candidate}}
	ctx.AddedLeftNodes = []node.Node{matchA, matchB}

	h := &renamingHandler{}
	require.NoError(t, h.Handle(ctx))

	assert.True(t, isConflictMarked(candidate.Body()))
}

func TestRenamingHandlerLeavesGenuineDeletionForDeletionsHandler(t *testing.T) {
	ctx := mergectx.New(nil)
	candidate := node.NewTerminal(ctx.Alloc, "Method", "oldName", "", "", node.Default)
	ctx.PossibleRenamedLeftNodes = []mergectx.RenameCandidate{{BaseBody: "return 1;", Node: candidate}}

	h := &renamingHandler{}
	require.NoError(t, h.Handle(ctx))

	assert.Empty(t, candidate.Body())
	assert.False(t, isConflictMarked(candidate.Body()))
}

func TestSimilarDeclarationsMatchesNormalizedBody(t *testing.T) {
	alloc := node.NewAllocator()
	a := node.NewTerminal(alloc, "Method", "a", "return  1;", "", node.Default)
	b := node.NewTerminal(alloc, "Method", "b", "return 2;", "", node.Default)

	matches := similarDeclarations("return 1;", []node.Node{a, b})
	require.Len(t, matches, 1)
	assert.Equal(t, a, matches[0])
}
