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

// Package mergectx holds the bookkeeping object accumulated during
// superimposition and consumed, in order, by the handler pipeline.
package mergectx

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/codeforge-dev/semistruct-merge/internal/match"
	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

// RenameCandidate pairs a base body with the node that emptied it
// relative to base, a candidate for the rename-or-deletion handler.
// OtherSideEdited records whether the side that did *not* empty the
// body changed it relative to base at this same slot: when true, that
// side's contribution survived into Node's post-merge body and must be
// preserved; when false, Node's post-merge body is just the emptied
// string and carries no content worth keeping.
type RenameCandidate struct {
	BaseBody        string
	Node            *node.Terminal
	OtherSideEdited bool
}

// Context is created empty before superimposition, mutated by the
// superimposer and content merger, and read-and-mutated by each handler
// in sequence. It is discarded after serialization.
type Context struct {
	RunID uuid.UUID
	Log   logrus.FieldLogger

	Alloc   *node.Allocator
	Matcher *match.Matcher

	LeftTree  *node.NonTerminal
	BaseTree  *node.NonTerminal
	RightTree *node.NonTerminal

	SuperImposedTree *node.NonTerminal

	// SemistructuredOutput is the serialized merged tree, set once after
	// the handler pipeline has run and the tree has been printed.
	SemistructuredOutput string

	AddedLeftNodes  []node.Node
	AddedRightNodes []node.Node

	NodesDeletedByLeft  []node.Node
	NodesDeletedByRight []node.Node
	DeletedBaseNodes    []node.Node

	EditedLeftNodes  []*node.Terminal
	EditedRightNodes []*node.Terminal

	PossibleRenamedLeftNodes  []RenameCandidate
	PossibleRenamedRightNodes []RenameCandidate

	// Warnings accumulates non-fatal diagnostics, e.g. an unrecognized
	// node shape encountered during a DFS (spec.md §7: "logged as a
	// warning and ignored").
	Warnings []string
}

// New creates an empty context, stamping a fresh run ID used to
// correlate every log line and wrapped error this merge produces.
func New(log logrus.FieldLogger) *Context {
	id := uuid.New()
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Context{
		RunID:   id,
		Log:     log.WithField("merge_id", id.String()),
		Alloc:   node.NewAllocator(),
		Matcher: match.New(),
	}
}

// Warnf records a non-fatal diagnostic and logs it at Warn level.
func (c *Context) Warnf(format string, args ...interface{}) {
	c.Log.Warnf(format, args...)
	c.Warnings = append(c.Warnings, sprintfCompat(format, args...))
}

func sprintfCompat(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// IsDeletedBaseNode reports whether n is, by handle identity, one of the
// nodes recorded in DeletedBaseNodes. Handle identity (not object
// address, not structural equality) is what the design notes require:
// two deep clones of a structurally identical base child must not be
// confused with one another.
func (c *Context) IsDeletedBaseNode(n node.Node) bool {
	for _, d := range c.DeletedBaseNodes {
		if d.Handle() == n.Handle() {
			return true
		}
	}
	return false
}

// MarkDeletedByLeft records n in NodesDeletedByLeft and, if n (by handle)
// is also recorded as deleted by right, in DeletedBaseNodes.
// MarkDeletedByRight is its mirror.
func (c *Context) MarkDeletedByLeft(n node.Node) {
	c.NodesDeletedByLeft = append(c.NodesDeletedByLeft, n)
	c.reconcileBaseDeletion(n)
}

func (c *Context) MarkDeletedByRight(n node.Node) {
	c.NodesDeletedByRight = append(c.NodesDeletedByRight, n)
	c.reconcileBaseDeletion(n)
}

// IsDeletedByLeft reports whether n is, by handle identity, already
// recorded in NodesDeletedByLeft. The superimposer's second pass uses
// this to recognize a base-only node (absent from left, carried into the
// first pass' result) that is also absent from right, before it would
// otherwise be re-cloned with a fresh handle and lose that identity
// (spec.md §3 invariant 4; see the superimpose package's phase β).
func (c *Context) IsDeletedByLeft(n node.Node) bool {
	for _, d := range c.NodesDeletedByLeft {
		if d.Handle() == n.Handle() {
			return true
		}
	}
	return false
}

// ReplaceDeletedByLeft re-records, under replacement's handle, a node
// previously marked deleted-by-left under old's handle. The second
// superimposition pass recurses into a pass-one deletion clone whenever
// the right tree still holds a compatible declaration, and that recursion
// (ordinary Superimpose, not the bilateral-deletion shortcut) produces a
// fresh handle for its result rather than carrying old's forward. Without
// this, the deletion stays recorded against a handle that is no longer
// reachable from the merged tree, and the deletions handler's detach on
// it is a no-op (spec.md §8 testable property 2: merge(y,x,x) must equal
// y, which requires the unilateral deletion to actually take effect).
func (c *Context) ReplaceDeletedByLeft(old, replacement node.Node) {
	for i, d := range c.NodesDeletedByLeft {
		if d.Handle() == old.Handle() {
			c.NodesDeletedByLeft[i] = replacement
		}
	}
	c.reconcileBaseDeletion(replacement)
}

// IsDeletedByRight is IsDeletedByLeft's mirror, consulted symmetrically
// were a future caller to need it; kept alongside IsDeletedByLeft so the
// pair stays in lockstep.
func (c *Context) IsDeletedByRight(n node.Node) bool {
	for _, d := range c.NodesDeletedByRight {
		if d.Handle() == n.Handle() {
			return true
		}
	}
	return false
}

// MarkBothDeleted records n directly in DeletedBaseNodes without going
// through the left/right reconciliation dance — used when the
// superimposer already knows, from its own pass-1 bookkeeping, that a
// node is bilaterally deleted (spec.md §4.3 post-pass).
func (c *Context) MarkBothDeleted(n node.Node) {
	if !c.IsDeletedBaseNode(n) {
		c.DeletedBaseNodes = append(c.DeletedBaseNodes, n)
	}
}

func (c *Context) reconcileBaseDeletion(n node.Node) {
	var byLeft, byRight bool
	for _, d := range c.NodesDeletedByLeft {
		if d.Handle() == n.Handle() {
			byLeft = true
			break
		}
	}
	for _, d := range c.NodesDeletedByRight {
		if d.Handle() == n.Handle() {
			byRight = true
			break
		}
	}
	if byLeft && byRight && !c.IsDeletedBaseNode(n) {
		c.DeletedBaseNodes = append(c.DeletedBaseNodes, n)
	}
}
