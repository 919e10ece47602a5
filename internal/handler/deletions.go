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
	"github.com/codeforge-dev/semistruct-merge/internal/mergectx"
	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

// deletionsHandler always runs, last. It re-asserts that every node in
// ctx.DeletedBaseNodes (deleted by both sides) is gone, and for a node
// deleted by only one side, checks whether the other side edited a
// descendant of it — if so, the deletion can't be applied silently, so it
// leaves a delete-vs-edit conflict carrying the surviving body instead
// (spec.md §4.6.6).
type deletionsHandler struct {
	showBase bool
}

func (h *deletionsHandler) Handle(ctx *mergectx.Context) error {
	if ctx.SuperImposedTree == nil {
		return nil
	}
	pruneDeletedBaseNodes(ctx, ctx.SuperImposedTree)
	h.resolveUnilateral(ctx, ctx.NodesDeletedByLeft, ctx.EditedRightNodes, true)
	h.resolveUnilateral(ctx, ctx.NodesDeletedByRight, ctx.EditedLeftNodes, false)
	return nil
}

// pruneDeletedBaseNodes is a defensive re-assertion of invariant 4
// (spec.md §8): the superimposer already detaches every member of
// ctx.DeletedBaseNodes via removeRemainingBaseNodes, so ordinarily this
// is a no-op; it only matters if an earlier handler re-attached one,
// which none of them do.
func pruneDeletedBaseNodes(ctx *mergectx.Context, root *node.NonTerminal) {
	deleted := make(map[node.Handle]bool, len(ctx.DeletedBaseNodes))
	for _, d := range ctx.DeletedBaseNodes {
		deleted[d.Handle()] = true
	}
	var walk func(nt *node.NonTerminal)
	walk = func(nt *node.NonTerminal) {
		kept := make([]node.Node, 0, len(nt.Children()))
		for _, c := range nt.Children() {
			if deleted[c.Handle()] {
				continue
			}
			kept = append(kept, c)
			if child, ok := c.(*node.NonTerminal); ok {
				walk(child)
			}
		}
		nt.SetChildren(kept)
	}
	walk(root)
}

// resolveUnilateral walks every node deleted by exactly one side. If the
// other side edited a descendant of it, the deletion can't be applied
// silently: it leaves a delete-vs-edit conflict on that descendant,
// carrying its surviving body, and keeps the node (spec.md §4.6.6). If
// nothing survives the deletion-side's removal — the ordinary case — the
// deletion is actually applied: the node is detached so the merge result
// reflects it, the way a node deleted by only one side is meant to.
func (h *deletionsHandler) resolveUnilateral(ctx *mergectx.Context, deletedBy []node.Node, editedOther []*node.Terminal, deletedSideIsLeft bool) {
	for _, d := range deletedBy {
		if ctx.IsDeletedBaseNode(d) {
			// Already handled as a bilateral deletion above.
			continue
		}
		edited := findEditedDescendant(d, editedOther)
		if edited == nil {
			detach(d)
			continue
		}
		if isConflictMarked(edited.Body()) {
			continue
		}
		mine, yours := "", edited.Body()
		if !deletedSideIsLeft {
			mine, yours = edited.Body(), ""
		}
		edited.SetBody(wrapConflict(mine, "", yours, h.showBase))
		ctx.Warnf("deletions: delete-vs-edit conflict on type=%s name=%s", d.Type(), d.Name())
	}
}

func findEditedDescendant(n node.Node, edited []*node.Terminal) *node.Terminal {
	if t, ok := n.(*node.Terminal); ok {
		if containsTerminal(edited, t) {
			return t
		}
		return nil
	}
	nt, ok := n.(*node.NonTerminal)
	if !ok {
		return nil
	}
	for _, c := range nt.Children() {
		if found := findEditedDescendant(c, edited); found != nil {
			return found
		}
	}
	return nil
}

func containsTerminal(list []*node.Terminal, t *node.Terminal) bool {
	for _, e := range list {
		if e.Handle() == t.Handle() {
			return true
		}
	}
	return false
}
