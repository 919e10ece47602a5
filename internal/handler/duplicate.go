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

// duplicatedDeclarationHandler collapses a declaration independently
// added, with the same type and name, on both sides: if the two bodies
// are structurally identical, one copy is dropped; if they differ and the
// left copy is a Terminal, the survivor is left carrying a conflict
// (spec.md §8 scenario 5). A differing pair whose left copy is a
// NonTerminal is only logged as a warning and both copies stay as they are.
//
// In practice a same-type/same-name duplicate is already caught by
// ctx.Matcher during superimposition itself (phase α matches B's child
// against A's regardless of which side added it), so content.Merge's own
// textual merge of the two additions already produces the clean single
// copy (identical bodies) or conflict (differing bodies) this handler
// would otherwise compute — the pairs this handler walks are recorded
// against their pass-one handles, not the post-match node the matcher
// actually kept, so resolve's detach(right) runs against an
// already-orphaned or never-attached node. This handler stays as the
// explicit, spec-named post-pass for the cases where that automatic
// collapse doesn't apply (e.g. a Default-mechanism leaf's raw byte
// comparison, or a future matcher that stops auto-merging by name).
type duplicatedDeclarationHandler struct {
	showBase bool
}

func (h *duplicatedDeclarationHandler) Handle(ctx *mergectx.Context) error {
	used := make(map[node.Handle]bool)
	for _, l := range ctx.AddedLeftNodes {
		if used[l.Handle()] {
			continue
		}
		for _, r := range ctx.AddedRightNodes {
			if used[r.Handle()] || l.Type() != r.Type() || l.Name() != r.Name() {
				continue
			}
			used[l.Handle()] = true
			used[r.Handle()] = true
			h.resolve(ctx, l, r)
			break
		}
	}
	return nil
}

func (h *duplicatedDeclarationHandler) resolve(ctx *mergectx.Context, left, right node.Node) {
	lBody, rBody := renderPlain(left), renderPlain(right)

	// xxhash fingerprint first: a cheap way to skip the exact compare on
	// the common case of genuinely distinct bodies.
	if fingerprint(lBody) == fingerprint(rBody) && normalizeBody(lBody) == normalizeBody(rBody) {
		detach(right)
		return
	}

	lt, ok := left.(*node.Terminal)
	if !ok {
		ctx.Warnf("duplicated-declaration: structurally differing duplicate type=%s name=%s left unresolved", left.Type(), left.Name())
		return
	}
	lt.SetBody(wrapConflict(lt.Body(), "", rBody, h.showBase))
	detach(right)
}
