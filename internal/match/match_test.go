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

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

func TestGetCompatibleChildFindsMatch(t *testing.T) {
	alloc := node.NewAllocator()
	parent := node.NewNonTerminal(alloc, "File", "f")
	a := node.NewTerminal(alloc, "Field", "k", "0", "", node.Default)
	parent.AppendChild(a)

	m := New()
	query := node.NewTerminal(alloc, "Field", "k", "", "", node.Default)
	got := m.GetCompatibleChild(parent, query)

	assert.Same(t, a, got)
}

func TestGetCompatibleChildReturnsNilOnMiss(t *testing.T) {
	alloc := node.NewAllocator()
	parent := node.NewNonTerminal(alloc, "File", "f")
	m := New()

	query := node.NewTerminal(alloc, "Field", "missing", "", "", node.Default)
	assert.Nil(t, m.GetCompatibleChild(parent, query))
}

func TestGetCompatibleChildCacheHitMatchesLiveScan(t *testing.T) {
	alloc := node.NewAllocator()
	parent := node.NewNonTerminal(alloc, "File", "f")
	a := node.NewTerminal(alloc, "Field", "k", "0", "", node.Default)
	parent.AppendChild(a)

	m := New()
	query := node.NewTerminal(alloc, "Field", "k", "", "", node.Default)

	first := m.GetCompatibleChild(parent, query)
	second := m.GetCompatibleChild(parent, query)

	assert.Same(t, first, second)
}

func TestMatcherDistinguishesParentsWithSameChildShape(t *testing.T) {
	alloc := node.NewAllocator()
	parentA := node.NewNonTerminal(alloc, "File", "a")
	parentB := node.NewNonTerminal(alloc, "File", "b")
	childA := node.NewTerminal(alloc, "Field", "k", "A", "", node.Default)
	childB := node.NewTerminal(alloc, "Field", "k", "B", "", node.Default)
	parentA.AppendChild(childA)
	parentB.AppendChild(childB)

	m := New()
	query := node.NewTerminal(alloc, "Field", "k", "", "", node.Default)

	gotA := m.GetCompatibleChild(parentA, query)
	gotB := m.GetCompatibleChild(parentB, query)

	assert.Same(t, childA, gotA)
	assert.Same(t, childB, gotB)
}
