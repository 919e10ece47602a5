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

// Package node defines the tagged-union tree model shared by every stage
// of the merge pipeline: terminals carrying raw source text, and
// non-terminals carrying ordered children.
package node

// Handle is a stable, per-merge-run node identity. It is assigned once,
// at construction or clone time, by an Allocator and never recomputed.
// Unlike a pointer or structural equality, two deep clones of the same
// base subtree get distinct handles, so membership tests (e.g. "is this
// node one of the base nodes we decided to delete") stay correct even
// when the same base subtree is cloned into the tree more than once.
type Handle uint64

// Allocator hands out unique handles for one merge run. It is not safe
// for concurrent use; each merge run (single-threaded per spec) owns one.
type Allocator struct {
	next uint64
}

// NewAllocator returns an Allocator starting from handle 1 (0 is reserved
// as the zero-value "no handle").
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns a fresh, previously unissued handle.
func (a *Allocator) Next() Handle {
	h := Handle(a.next)
	a.next++
	return h
}

// Index encodes which of the three input trees contributed a node: 0
// left, 1 base, 2 right, or -1 when not yet determined.
type Index int8

const (
	IndexUnset Index = -1
	IndexLeft  Index = 0
	IndexBase  Index = 1
	IndexRight Index = 2
)

// MergingMechanism controls whether a terminal's body participates in
// textual merging at all.
type MergingMechanism int8

const (
	// Default leaves the terminal body untouched by the superimposer;
	// used for leaves whose identity alone matters (e.g. import
	// statements matched by name).
	Default MergingMechanism = iota
	// ConflictMerge tags the body for later splitting and textual
	// merging by the content merger.
	ConflictMerge
)

func (m MergingMechanism) String() string {
	switch m {
	case Default:
		return "Default"
	case ConflictMerge:
		return "ConflictMerge"
	default:
		return "Unknown"
	}
}

// Node is the sealed interface implemented by *Terminal and *NonTerminal.
// Callers dispatch on concrete type with a type switch rather than
// relying on virtual methods, matching the "tagged variant" shape of the
// source data model.
type Node interface {
	Handle() Handle
	Type() string
	Name() string
	Index() Index
	SetIndex(Index)
	Parent() *NonTerminal
	SetParent(*NonTerminal)

	node() // unexported: seals the interface to this package's two types
}

// Compatible reports whether a and b have the same type and name, the
// sole criterion the matcher (and every handler) uses to decide two
// nodes denote "the same" declaration across versions.
func Compatible(a, b Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Type() == b.Type() && a.Name() == b.Name()
}

// InheritIndexFromParent sets n's index to its parent's index if n's
// index is still IndexUnset, walking up through unset ancestors. The
// superimposer does not call it: superimpose.Run stamps every input node's
// index up front and copies indices onto clones explicitly.
func InheritIndexFromParent(n Node) {
	if n.Index() != IndexUnset {
		return
	}
	if p := n.Parent(); p != nil {
		if p.Index() == IndexUnset {
			InheritIndexFromParent(p)
		}
		n.SetIndex(p.Index())
	}
}
