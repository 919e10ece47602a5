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
	"regexp"

	"github.com/codeforge-dev/semistruct-merge/internal/mergectx"
	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

// newElementReferencingEditedOneHandler flags a new declaration, added by
// one side, that textually references an identifier the other side
// edited or deleted outright — the tree shows no structural overlap (the
// new declaration has no compatible counterpart anywhere), so without
// this handler the result would silently compile-fail at the reference
// site (spec.md §8 scenario 4, which is specifically the deleted case:
// one side removes a declaration, the other side adds a new one that
// still calls it).
type newElementReferencingEditedOneHandler struct {
	showBase bool
}

func (h *newElementReferencingEditedOneHandler) Handle(ctx *mergectx.Context) error {
	h.flag(ctx, ctx.AddedLeftNodes, terminalNames(ctx.EditedRightNodes), "edited")
	h.flag(ctx, ctx.AddedRightNodes, terminalNames(ctx.EditedLeftNodes), "edited")
	h.flag(ctx, ctx.AddedLeftNodes, nodeNames(ctx.NodesDeletedByRight), "deleted")
	h.flag(ctx, ctx.AddedRightNodes, nodeNames(ctx.NodesDeletedByLeft), "deleted")
	return nil
}

func (h *newElementReferencingEditedOneHandler) flag(ctx *mergectx.Context, added []node.Node, namesOpposite []string, reason string) {
	for _, a := range added {
		rendered := renderPlain(a)
		for _, name := range namesOpposite {
			if name == "" || !referencesIdentifier(rendered, name) {
				continue
			}
			ctx.Warnf("new-element-referencing-edited-one: %s %s references identifier %s %s on the other side", a.Type(), a.Name(), name, reason)
			if t, ok := a.(*node.Terminal); ok && !isConflictMarked(t.Body()) {
				t.SetBody(wrapConflict(t.Body(), "", t.Body(), h.showBase))
			}
			break
		}
	}
}

func terminalNames(terms []*node.Terminal) []string {
	names := make([]string, 0, len(terms))
	for _, t := range terms {
		names = append(names, t.Name())
	}
	return names
}

func nodeNames(nodes []node.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name())
	}
	return names
}

func referencesIdentifier(body, name string) bool {
	if name == "" {
		return false
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return re.MatchString(body)
}
