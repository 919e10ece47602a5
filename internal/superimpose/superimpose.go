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

// Package superimpose implements the pairwise tree merge (C3): matching
// children by type/name, carrying over what's unmatched on either side,
// and tagging terminal bodies so the content merger can later split them
// back into their left/base/right contributions.
package superimpose

import (
	"github.com/codeforge-dev/semistruct-merge/internal/marker"
	"github.com/codeforge-dev/semistruct-merge/internal/mergectx"
	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

// Step labels which pair of inputs a superimposition call is merging.
type Step int

const (
	// StepLeftBase merges the left tree onto the base tree.
	StepLeftBase Step = iota
	// StepLeftBaseRight merges the left+base result onto the right tree.
	StepLeftBaseRight
)

// Run performs both superimposition passes over ctx.LeftTree, ctx.BaseTree
// and ctx.RightTree, stores the result in ctx.SuperImposedTree, and then
// removes any node that both descendants deleted relative to base.
//
// Every node in the three input trees is stamped with its tree's index
// (left=0, base=1, right=2) before merging begins. Doing this once, up
// front, rather than relying solely on per-call index inheritance
// resolves the ambiguity the design notes flag around markContributions'
// indexA==0 branch: a node added only by left must still carry index
// Left after it is carried, unmatched, through phase β of the first pass,
// even though its new parent (the pass-one result) is stamped with the
// base tree's index. Phase β stamps each carried-over clone with its
// original contributor's index explicitly, rather than letting it fall
// back to parent inheritance, so that invariant survives into the second
// pass.
func Run(ctx *mergectx.Context) {
	stampAll(ctx.LeftTree, node.IndexLeft)
	stampAll(ctx.BaseTree, node.IndexBase)
	stampAll(ctx.RightTree, node.IndexRight)

	leftBase := Superimpose(ctx, ctx.LeftTree, ctx.BaseTree, nil, StepLeftBase)
	merged, ok := leftBase.(*node.NonTerminal)
	if !ok || merged == nil {
		// Incompatible roots: leave ctx.SuperImposedTree nil.
		return
	}
	full := Superimpose(ctx, merged, ctx.RightTree, nil, StepLeftBaseRight)
	if fn, ok := full.(*node.NonTerminal); ok {
		ctx.SuperImposedTree = fn
	}

	if ctx.SuperImposedTree != nil {
		removeRemainingBaseNodes(ctx, ctx.SuperImposedTree)
	}
}

func stampAll(n node.Node, idx node.Index) {
	if n == nil {
		return
	}
	n.SetIndex(idx)
	if nt, ok := n.(*node.NonTerminal); ok {
		for _, c := range nt.Children() {
			stampAll(c, idx)
		}
	}
}

// Superimpose merges compatible nodeA/nodeB into a single result linked
// under parent (nil for the tree root), recursing into non-terminal
// children. It returns nil if the two nodes are not compatible.
func Superimpose(ctx *mergectx.Context, a, b node.Node, parent *node.NonTerminal, step Step) node.Node {
	if a == nil || b == nil || !node.Compatible(a, b) {
		return nil
	}
	switch at := a.(type) {
	case *node.Terminal:
		bt, ok := b.(*node.Terminal)
		if !ok {
			ctx.Warnf("superimpose: mismatched node shapes for type=%s name=%s", a.Type(), a.Name())
			return nil
		}
		return superimposeTerminal(ctx, at, bt, parent, step)
	case *node.NonTerminal:
		bn, ok := b.(*node.NonTerminal)
		if !ok {
			ctx.Warnf("superimpose: mismatched node shapes for type=%s name=%s", a.Type(), a.Name())
			return nil
		}
		return superimposeNonTerminal(ctx, at, bn, parent, step)
	default:
		ctx.Warnf("superimpose: unknown node shape for type=%s name=%s", a.Type(), a.Name())
		return nil
	}
}

func superimposeTerminal(ctx *mergectx.Context, a, b *node.Terminal, parent *node.NonTerminal, step Step) *node.Terminal {
	result := a.ShallowClone(ctx.Alloc)
	result.SetIndex(b.Index())
	if parent != nil {
		result.SetParent(parent)
	}
	if a.Mechanism() != node.Default {
		result.SetBody(markContributions(a.Body(), b.Body(), step, a.Index(), b.Index()))
		result.SetSpecialTokenPrefix(markContributions(a.SpecialTokenPrefix(), b.SpecialTokenPrefix(), step, a.Index(), b.Index()))
	} else {
		result.SetBody(a.Body())
		result.SetSpecialTokenPrefix(a.SpecialTokenPrefix())
	}
	return result
}

func superimposeNonTerminal(ctx *mergectx.Context, a, b *node.NonTerminal, parent *node.NonTerminal, step Step) *node.NonTerminal {
	result := a.ShallowClone(ctx.Alloc)
	result.SetIndex(b.Index())
	if parent != nil {
		result.SetParent(parent)
	}

	placedFor := make(map[node.Handle]node.Node, len(a.Children())+len(b.Children()))

	// Phase α: children of B matched against A.
	for _, childB := range b.Children() {
		childA := ctx.Matcher.GetCompatibleChild(a, childB)
		if childA != nil {
			rec := Superimpose(ctx, childA, childB, result, step)
			if rec != nil {
				result.AppendChild(rec)
				placedFor[childA.Handle()] = rec
				if step == StepLeftBaseRight && ctx.IsDeletedByLeft(childA) {
					// childA is a pass-one deletion clone (left dropped this
					// declaration, right still has it): the recursive
					// Superimpose above just gave it a fresh handle, so the
					// deletion record made in pass one must be retargeted
					// onto rec or it points at a node no longer reachable
					// from the merged tree.
					ctx.ReplaceDeletedByLeft(childA, rec)
				}
			}
			if step == StepLeftBaseRight && containsHandle(ctx.AddedLeftNodes, childA.Handle()) {
				ctx.AddedRightNodes = append(ctx.AddedRightNodes, childB)
			}
			continue
		}
		clone := node.DeepClone(childB, ctx.Alloc)
		clone.SetIndex(childB.Index())
		result.AppendChild(clone)
		if step == StepLeftBase {
			ctx.MarkDeletedByLeft(clone)
		} else {
			ctx.AddedRightNodes = append(ctx.AddedRightNodes, clone)
		}
	}

	// Phase β: children of A with no compatible match in B.
	for i, childA := range a.Children() {
		if ctx.Matcher.GetCompatibleChild(b, childA) != nil {
			continue
		}

		if step == StepLeftBaseRight && ctx.IsDeletedByLeft(childA) {
			// childA is a base-only node the first pass already carried
			// over as "deleted by left" (recorded under childA's own
			// handle, since phase α appends that exact clone rather than
			// a further copy of it). It is now absent from right too:
			// bilateral deletion. Record it directly, under the handle
			// already on file, and do not carry it into the merged
			// result at all — re-cloning it here (as the general case
			// below does) would stamp a fresh handle that never matches
			// the one recorded by MarkDeletedByLeft in pass one, and the
			// node would wrongly survive removeRemainingBaseNodes.
			ctx.MarkBothDeleted(childA)
			continue
		}

		clone := node.DeepClone(childA, ctx.Alloc)
		clone.SetIndex(childA.Index())

		placeNear(result, a.Children(), i, placedFor, clone)
		placedFor[childA.Handle()] = clone

		switch {
		case step == StepLeftBase:
			ctx.AddedLeftNodes = append(ctx.AddedLeftNodes, clone)
		case containsHandle(ctx.AddedLeftNodes, childA.Handle()):
			// A left-only addition right simply doesn't share: not a
			// deletion on anyone's part, just carry it over and keep its
			// AddedLeftNodes membership under the new handle.
			for j, n := range ctx.AddedLeftNodes {
				if n.Handle() == childA.Handle() {
					ctx.AddedLeftNodes[j] = clone
				}
			}
		default:
			ctx.MarkDeletedByRight(clone)
		}
	}

	return result
}

// placeNear inserts clone into result's children near the position of
// origSiblings[i]'s left neighbour, falling back to the right neighbour,
// falling back to append (spec.md §4.3 phase β).
func placeNear(result *node.NonTerminal, origSiblings []node.Node, i int, placedFor map[node.Handle]node.Node, clone node.Node) {
	if i > 0 {
		if placed, ok := placedFor[origSiblings[i-1].Handle()]; ok {
			pos := result.IndexOfHandle(placed.Handle())
			if pos >= 0 {
				result.InsertChildAt(pos+1, clone)
				return
			}
		}
	}
	if i+1 < len(origSiblings) {
		if placed, ok := placedFor[origSiblings[i+1].Handle()]; ok {
			pos := result.IndexOfHandle(placed.Handle())
			if pos >= 0 {
				result.InsertChildAt(pos, clone)
				return
			}
		}
	}
	result.AppendChild(clone)
}

func containsHandle(list []node.Node, h node.Handle) bool {
	for _, n := range list {
		if n.Handle() == h {
			return true
		}
	}
	return false
}

// markContributions splices bodyA and bodyB into a single tagged string
// the content merger can later split back into (left, base, right).
func markContributions(bodyA, bodyB string, step Step, indexA, indexB node.Index) string {
	if marker.Tagged(bodyA) {
		return bodyA + bodyB
	}
	if step == StepLeftBase {
		return marker.SemanticMarker + bodyA + marker.Separator + bodyB + marker.Separator
	}
	if indexA == node.IndexLeft {
		return marker.SemanticMarker + bodyA + marker.Separator + marker.Separator + bodyB
	}
	return marker.SemanticMarker + marker.Separator + bodyA + marker.Separator + bodyB
}

// removeRemainingBaseNodes detaches every node in the merged tree whose
// handle matches a member of ctx.DeletedBaseNodes (spec.md §3 invariant 4,
// §4.3 post-pass).
func removeRemainingBaseNodes(ctx *mergectx.Context, root *node.NonTerminal) {
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
