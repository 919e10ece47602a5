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

package superimpose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeforge-dev/semistruct-merge/internal/marker"
	"github.com/codeforge-dev/semistruct-merge/internal/mergectx"
	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

// file builds a class body: a NonTerminal "File" with one ConflictMerge
// "Field" terminal child per (name, body) pair, mirroring the shape
// internal/lang's ToyParser produces.
func file(alloc *node.Allocator, fields ...[2]string) *node.NonTerminal {
	root := node.NewNonTerminal(alloc, "File", "f")
	for _, kv := range fields {
		root.AppendChild(node.NewTerminal(alloc, "Field", kv[0], kv[1], "", node.ConflictMerge))
	}
	return root
}

func newTestContext() *mergectx.Context {
	return mergectx.New(nil)
}

func TestRunSetsIndexOnEveryNode(t *testing.T) {
	ctx := newTestContext()
	ctx.LeftTree = file(ctx.Alloc, [2]string{"k", "1"})
	ctx.BaseTree = file(ctx.Alloc, [2]string{"k", "0"})
	ctx.RightTree = file(ctx.Alloc, [2]string{"k", "0"})

	Run(ctx)

	require.NotNil(t, ctx.SuperImposedTree)
	assert.NotEqual(t, node.IndexUnset, ctx.SuperImposedTree.Index())
	for _, c := range ctx.SuperImposedTree.Children() {
		assert.NotEqual(t, node.IndexUnset, c.Index())
	}
}

func TestRunTagsMatchedLeafWithAllThreeContributions(t *testing.T) {
	ctx := newTestContext()
	ctx.LeftTree = file(ctx.Alloc, [2]string{"k", "10"})
	ctx.BaseTree = file(ctx.Alloc, [2]string{"k", "0"})
	ctx.RightTree = file(ctx.Alloc, [2]string{"k", "20"})

	Run(ctx)

	require.Len(t, ctx.SuperImposedTree.Children(), 1)
	body := ctx.SuperImposedTree.Children()[0].(*node.Terminal).Body()

	require.True(t, strings.HasPrefix(body, marker.SemanticMarker))
	parts := strings.Split(strings.TrimPrefix(body, marker.SemanticMarker), marker.Separator)
	require.Len(t, parts, 3)
	assert.Equal(t, "10", parts[0])
	assert.Equal(t, "0", parts[1])
	assert.Equal(t, "20", parts[2])
}

func TestRunLeavesDefaultMechanismBodyUntouched(t *testing.T) {
	alloc := node.NewAllocator()
	left := node.NewNonTerminal(alloc, "File", "f")
	left.AppendChild(node.NewTerminal(alloc, "Import", "pkg", "pkg", "", node.Default))
	base := node.NewNonTerminal(alloc, "File", "f")
	base.AppendChild(node.NewTerminal(alloc, "Import", "pkg", "pkg", "", node.Default))
	right := node.NewNonTerminal(alloc, "File", "f")
	right.AppendChild(node.NewTerminal(alloc, "Import", "pkg", "pkg", "", node.Default))

	ctx := newTestContext()
	ctx.Alloc = alloc
	ctx.LeftTree, ctx.BaseTree, ctx.RightTree = left, base, right

	Run(ctx)

	body := ctx.SuperImposedTree.Children()[0].(*node.Terminal).Body()
	assert.Equal(t, "pkg", body)
}

func TestRunAddedLeftOnlyNodeSurvives(t *testing.T) {
	ctx := newTestContext()
	ctx.LeftTree = file(ctx.Alloc, [2]string{"k", "0"}, [2]string{"added", "1"})
	ctx.BaseTree = file(ctx.Alloc, [2]string{"k", "0"})
	ctx.RightTree = file(ctx.Alloc, [2]string{"k", "0"})

	Run(ctx)

	names := childNames(ctx.SuperImposedTree)
	assert.Contains(t, names, "added")
	assert.Len(t, ctx.AddedLeftNodes, 1)
	assert.Equal(t, "added", ctx.AddedLeftNodes[0].Name())
}

func TestRunAddedRightOnlyNodeSurvives(t *testing.T) {
	ctx := newTestContext()
	ctx.LeftTree = file(ctx.Alloc, [2]string{"k", "0"})
	ctx.BaseTree = file(ctx.Alloc, [2]string{"k", "0"})
	ctx.RightTree = file(ctx.Alloc, [2]string{"k", "0"}, [2]string{"added", "1"})

	Run(ctx)

	names := childNames(ctx.SuperImposedTree)
	assert.Contains(t, names, "added")
}

func TestRunBilateralDeletionRemovesNode(t *testing.T) {
	ctx := newTestContext()
	ctx.LeftTree = file(ctx.Alloc, [2]string{"k", "0"})
	ctx.BaseTree = file(ctx.Alloc, [2]string{"k", "0"}, [2]string{"gone", "1"})
	ctx.RightTree = file(ctx.Alloc, [2]string{"k", "0"})

	Run(ctx)

	names := childNames(ctx.SuperImposedTree)
	assert.NotContains(t, names, "gone")
	require.Len(t, ctx.DeletedBaseNodes, 1)
	assert.Equal(t, "gone", ctx.DeletedBaseNodes[0].Name())
}

func TestRunUnilateralLeftDeletionIsRecordedNotApplied(t *testing.T) {
	ctx := newTestContext()
	ctx.LeftTree = file(ctx.Alloc, [2]string{"k", "0"})
	ctx.BaseTree = file(ctx.Alloc, [2]string{"k", "0"}, [2]string{"keep", "1"})
	ctx.RightTree = file(ctx.Alloc, [2]string{"k", "0"}, [2]string{"keep", "1"})

	Run(ctx)

	names := childNames(ctx.SuperImposedTree)
	assert.Contains(t, names, "keep")
	require.Len(t, ctx.NodesDeletedByLeft, 1)
	assert.Empty(t, ctx.DeletedBaseNodes)
}

func TestRunUnilateralLeftDeletionIsRecordedUnderItsFinalTreeHandle(t *testing.T) {
	ctx := newTestContext()
	ctx.LeftTree = file(ctx.Alloc, [2]string{"k", "0"})
	ctx.BaseTree = file(ctx.Alloc, [2]string{"k", "0"}, [2]string{"keep", "1"})
	ctx.RightTree = file(ctx.Alloc, [2]string{"k", "0"}, [2]string{"keep", "1"})

	Run(ctx)

	require.Len(t, ctx.NodesDeletedByLeft, 1)
	var inTree node.Node
	for _, c := range ctx.SuperImposedTree.Children() {
		if c.Name() == "keep" {
			inTree = c
		}
	}
	require.NotNil(t, inTree, "the declaration right kept unchanged must still be reachable from the merged tree")
	assert.Equal(t, inTree.Handle(), ctx.NodesDeletedByLeft[0].Handle(),
		"a deletion record pointing at a handle no longer in the tree can never be detached by the deletions handler")
}

func TestRunIncompatibleRootsYieldsNil(t *testing.T) {
	ctx := newTestContext()
	ctx.LeftTree = node.NewNonTerminal(ctx.Alloc, "File", "left-name")
	ctx.BaseTree = node.NewNonTerminal(ctx.Alloc, "File", "base-name")
	ctx.RightTree = node.NewNonTerminal(ctx.Alloc, "File", "right-name")

	Run(ctx)

	assert.Nil(t, ctx.SuperImposedTree)
}

func TestMarkContributionsSecondPassAppendsRatherThanRetags(t *testing.T) {
	tagged := marker.SemanticMarker + "L" + marker.Separator + "B" + marker.Separator
	got := markContributions(tagged, "R", StepLeftBaseRight, node.IndexLeft, node.IndexRight)
	assert.Equal(t, tagged+"R", got)
}

func childNames(nt *node.NonTerminal) []string {
	names := make([]string, 0, len(nt.Children()))
	for _, c := range nt.Children() {
		names = append(names, c.Name())
	}
	return names
}
