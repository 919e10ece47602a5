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

package node

// NonTerminal is an internal tree node: a type/name pair plus an ordered
// list of children. Order is significant and preserved across the merge
// unless a handler explicitly reorders (e.g. the initialization-blocks
// handler).
type NonTerminal struct {
	handle   Handle
	typ      string
	name     string
	children []Node
	index    Index
	parent   *NonTerminal
}

// NewNonTerminal constructs a fresh non-terminal with IndexUnset and no
// parent or children.
func NewNonTerminal(alloc *Allocator, typ, name string) *NonTerminal {
	return &NonTerminal{
		handle: alloc.Next(),
		typ:    typ,
		name:   name,
		index:  IndexUnset,
	}
}

func (n *NonTerminal) node() {}

func (n *NonTerminal) Handle() Handle           { return n.handle }
func (n *NonTerminal) Type() string             { return n.typ }
func (n *NonTerminal) Name() string             { return n.name }
func (n *NonTerminal) Index() Index             { return n.index }
func (n *NonTerminal) SetIndex(idx Index)       { n.index = idx }
func (n *NonTerminal) Parent() *NonTerminal     { return n.parent }
func (n *NonTerminal) SetParent(p *NonTerminal) { n.parent = p }

func (n *NonTerminal) Children() []Node { return n.children }

// SetChildren replaces the child list and re-links parent pointers.
func (n *NonTerminal) SetChildren(children []Node) {
	n.children = children
	for _, c := range children {
		c.SetParent(n)
	}
}

// AppendChild adds a child at the end and links its parent.
func (n *NonTerminal) AppendChild(child Node) {
	child.SetParent(n)
	n.children = append(n.children, child)
}

// InsertChildAt inserts child at position i (clamped to [0, len]).
func (n *NonTerminal) InsertChildAt(i int, child Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	child.SetParent(n)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
}

// IndexOfHandle returns the position of the child with the given handle,
// or -1 if absent. Used for "left/right neighbour" placement (spec.md
// §4.3 phase β) and by the handlers when detaching a node.
func (n *NonTerminal) IndexOfHandle(h Handle) int {
	for i, c := range n.children {
		if c.Handle() == h {
			return i
		}
	}
	return -1
}

// RemoveChildAt detaches the child at position i.
func (n *NonTerminal) RemoveChildAt(i int) {
	if i < 0 || i >= len(n.children) {
		return
	}
	c := n.children[i]
	c.SetParent(nil)
	n.children = append(n.children[:i], n.children[i+1:]...)
}

// GetCompatibleChild returns the first child compatible (same type and
// name) with q, or nil. Linear scan: children per parent are few, and
// order must be preserved, so a sorted/indexed structure would only add
// complexity (spec.md §4.2).
func (n *NonTerminal) GetCompatibleChild(q Node) Node {
	for _, c := range n.children {
		if Compatible(c, q) {
			return c
		}
	}
	return nil
}

// ShallowClone preserves type/name but has no children, a fresh handle,
// IndexUnset, and no parent.
func (n *NonTerminal) ShallowClone(alloc *Allocator) *NonTerminal {
	return &NonTerminal{
		handle: alloc.Next(),
		typ:    n.typ,
		name:   n.name,
		index:  IndexUnset,
	}
}

// DeepClone recursively clones the full subtree, including children, with
// fresh handles throughout and index reset to IndexUnset.
func (n *NonTerminal) DeepClone(alloc *Allocator) *NonTerminal {
	c := n.ShallowClone(alloc)
	children := make([]Node, 0, len(n.children))
	for _, child := range n.children {
		children = append(children, DeepClone(child, alloc))
	}
	c.SetChildren(children)
	return c
}

// DeepClone dispatches to the concrete type's deep-clone method via a
// type switch, the "pattern matching on the variant tag" the design
// notes call for rather than virtual dispatch.
func DeepClone(n Node, alloc *Allocator) Node {
	switch v := n.(type) {
	case *Terminal:
		return v.DeepClone(alloc)
	case *NonTerminal:
		return v.DeepClone(alloc)
	default:
		return nil
	}
}

// ShallowClone dispatches similarly for the shallow-clone case.
func ShallowClone(n Node, alloc *Allocator) Node {
	switch v := n.(type) {
	case *Terminal:
		return v.ShallowClone(alloc)
	case *NonTerminal:
		return v.ShallowClone(alloc)
	default:
		return nil
	}
}
