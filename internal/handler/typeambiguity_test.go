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

func TestTypeAmbiguityHandlerFlagsCollidingSiblings(t *testing.T) {
	ctx := mergectx.New(nil)
	root := node.NewNonTerminal(ctx.Alloc, "File", "f")
	a := node.NewTerminal(ctx.Alloc, "Field", "k", "1", "", node.Default)
	b := node.NewTerminal(ctx.Alloc, "Field", "k", "2", "", node.Default)
	root.AppendChild(a)
	root.AppendChild(b)
	ctx.SuperImposedTree = root

	h := &typeAmbiguityHandler{}
	require.NoError(t, h.Handle(ctx))

	assert.False(t, isConflictMarked(a.Body()))
	assert.True(t, isConflictMarked(b.Body()))
}

func TestTypeAmbiguityHandlerLeavesUniqueSiblingsAlone(t *testing.T) {
	ctx := mergectx.New(nil)
	root := node.NewNonTerminal(ctx.Alloc, "File", "f")
	a := node.NewTerminal(ctx.Alloc, "Field", "k", "1", "", node.Default)
	b := node.NewTerminal(ctx.Alloc, "Field", "other", "2", "", node.Default)
	root.AppendChild(a)
	root.AppendChild(b)
	ctx.SuperImposedTree = root

	h := &typeAmbiguityHandler{}
	require.NoError(t, h.Handle(ctx))

	assert.False(t, isConflictMarked(a.Body()))
	assert.False(t, isConflictMarked(b.Body()))
}

func TestTypeAmbiguityHandlerSkipsAlreadyMarkedDuplicate(t *testing.T) {
	ctx := mergectx.New(nil)
	root := node.NewNonTerminal(ctx.Alloc, "File", "f")
	a := node.NewTerminal(ctx.Alloc, "Field", "k", "1", "", node.Default)
	b := node.NewTerminal(ctx.Alloc, "Field", "k", "<<<<<<< MINE\nx\n=======\ny\n>>>>>>> YOURS", "", node.Default)
	root.AppendChild(a)
	root.AppendChild(b)
	ctx.SuperImposedTree = root

	h := &typeAmbiguityHandler{}
	require.NoError(t, h.Handle(ctx))

	assert.Equal(t, "<<<<<<< MINE\nx\n=======\ny\n>>>>>>> YOURS", b.Body())
}

func TestTypeAmbiguityHandlerNoopOnNilTree(t *testing.T) {
	ctx := mergectx.New(nil)
	h := &typeAmbiguityHandler{}
	require.NoError(t, h.Handle(ctx))
}
