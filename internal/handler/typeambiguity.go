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

// typeAmbiguityHandler runs first in the pipeline, on the tree as the
// superimposer and content merger left it (the renaming and deletions
// handlers run after it): it catches the case where two distinct sibling declarations now share a
// type and name (an ambiguous signature) even though they started out
// unambiguous, e.g. because a rename collided with an existing name.
type typeAmbiguityHandler struct {
	showBase bool
}

func (h *typeAmbiguityHandler) Handle(ctx *mergectx.Context) error {
	if ctx.SuperImposedTree == nil {
		return nil
	}
	walkNonTerminals(ctx.SuperImposedTree, func(nt *node.NonTerminal) {
		h.flagSiblingCollisions(ctx, nt)
	})
	return nil
}

func (h *typeAmbiguityHandler) flagSiblingCollisions(ctx *mergectx.Context, nt *node.NonTerminal) {
	groups := make(map[string][]node.Node)
	for _, c := range nt.Children() {
		key := c.Type() + "\x00" + c.Name()
		groups[key] = append(groups[key], c)
	}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		anchor := group[0]
		for _, dup := range group[1:] {
			t, ok := dup.(*node.Terminal)
			if !ok {
				ctx.Warnf("type-ambiguity: ambiguous non-terminal declaration type=%s name=%s left unresolved", dup.Type(), dup.Name())
				continue
			}
			if isConflictMarked(t.Body()) {
				continue
			}
			t.SetBody(wrapConflict(t.Body(), "", renderPlain(anchor), h.showBase))
		}
	}
}
