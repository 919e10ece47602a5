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

// renamingHandler resolves possibleRenamed{Left,Right}Nodes (spec.md
// §4.4): a node whose body went empty on one side, relative to base,
// because that side actually renamed the declaration rather than
// deleting it outright. The renamed declaration itself shows up as a
// fresh, unmatched addition on the same side — possibleRenamedLeftNodes
// is searched against addedLeftNodes (the side that did the renaming),
// not the opposite side, since the new name is that side's own
// contribution; "the other side" in "unsafe rename (other side also
// edited)" means the side that *didn't* rename, found via ambiguity in
// the candidate pool rather than the edited-node bookkeeping (which, by
// construction, never contains a node whose body differs from base on
// *both* sides at once — see content.mergeTerminal).
type renamingHandler struct {
	showBase bool
}

func (h *renamingHandler) Handle(ctx *mergectx.Context) error {
	h.resolve(ctx, ctx.PossibleRenamedLeftNodes, ctx.AddedLeftNodes, ctx.NodesDeletedByLeft)
	h.resolve(ctx, ctx.PossibleRenamedRightNodes, ctx.AddedRightNodes, ctx.NodesDeletedByRight)
	return nil
}

func (h *renamingHandler) resolve(ctx *mergectx.Context, candidates []mergectx.RenameCandidate, addedSameSide []node.Node, deletedSameSide []node.Node) {
	for _, cand := range candidates {
		matches := similarDeclarations(cand.BaseBody, addedSameSide)

		switch len(matches) {
		case 0:
			// No body-similar addition: a genuine deletion, left for the
			// always-on deletions handler.
			continue
		case 1:
			h.applySafeRename(ctx, cand, matches[0], deletedSameSide)
		default:
			h.flagUnsafeRename(cand, matches)
		}
	}
}

// similarDeclarations returns every added declaration whose rendered body
// matches baseBody once both are whitespace-normalized — a deliberately
// simple, deterministic stand-in for the fuzzier similarity metrics the
// broader merge-tool literature uses (see DESIGN.md).
func similarDeclarations(baseBody string, added []node.Node) []node.Node {
	want := fingerprint(baseBody)
	normBase := normalizeBody(baseBody)
	var matches []node.Node
	for _, a := range added {
		rendered := renderPlain(a)
		if fingerprint(rendered) == want && normalizeBody(rendered) == normBase {
			matches = append(matches, a)
		}
	}
	return matches
}

// applySafeRename adopts match as the surviving declaration: its body is
// overwritten with whatever cand.Node already resolved to if that content
// reflects a real edit from the non-renaming side, and the old,
// now-redundant declaration (found by walking up from cand.Node to the
// ancestor the superimposer bucketed as deleted on this side) is detached.
func (h *renamingHandler) applySafeRename(ctx *mergectx.Context, cand mergectx.RenameCandidate, match node.Node, deletedSameSide []node.Node) {
	finalBody := renderPlain(match)
	if cand.OtherSideEdited {
		// The non-renaming side changed this slot's content relative to
		// base; that edit (or its conflict with the rename, already
		// bracketed by the textual merger) is what must survive, not the
		// matched addition's own text.
		finalBody = cand.Node.Body()
	}

	if mt, ok := match.(*node.Terminal); ok {
		mt.SetBody(finalBody)
	} else {
		ctx.Warnf("renaming: matched declaration type=%s name=%s is not a single terminal; body left as-is", match.Type(), match.Name())
	}

	if old := findDeletedAncestor(cand.Node, deletedSameSide); old != nil {
		detach(old)
	}
}

// flagUnsafeRename brackets the candidate's current body against every
// competing rename target when the similarity search is ambiguous.
func (h *renamingHandler) flagUnsafeRename(cand mergectx.RenameCandidate, matches []node.Node) {
	if isConflictMarked(cand.Node.Body()) {
		return
	}
	yours := ""
	for i, m := range matches {
		if i > 0 {
			yours += "\n"
		}
		yours += renderPlain(m)
	}
	cand.Node.SetBody(wrapConflict(cand.Node.Body(), cand.BaseBody, yours, h.showBase))
}
