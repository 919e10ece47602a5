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

const (
	staticInitializerType   = "StaticInitializer"
	instanceInitializerType = "InstanceInitializer"
)

func isInitializerType(t string) bool {
	return t == staticInitializerType || t == instanceInitializerType
}

// initializationBlocksHandler rewrites the placement of newly added
// static/instance initializer blocks so independent insertions by both
// sides compose instead of fighting over the superimposer's
// neighbour-based placement (spec.md §4.6.4). multipleBlocks selects
// which of the two mutually exclusive variants this instance is; Build
// only ever constructs one of them per run (spec.md §9).
type initializationBlocksHandler struct {
	multipleBlocks bool
}

func (h *initializationBlocksHandler) Handle(ctx *mergectx.Context) error {
	if ctx.SuperImposedTree == nil {
		return nil
	}
	addedLeft := handleSet(ctx.AddedLeftNodes)
	addedRight := handleSet(ctx.AddedRightNodes)
	walkNonTerminals(ctx.SuperImposedTree, func(nt *node.NonTerminal) {
		reorderInitBlocks(nt, addedLeft, addedRight, h.multipleBlocks)
	})
	return nil
}

func handleSet(nodes []node.Node) map[node.Handle]bool {
	s := make(map[node.Handle]bool, len(nodes))
	for _, n := range nodes {
		s[n.Handle()] = true
	}
	return s
}

// reorderInitBlocks keeps every child of nt that is not a newly-added
// initializer block (other declarations and pre-existing initializer
// blocks alike) first, in original relative order, then every newly-added
// block from the left, then every newly-added block from the right, each
// group in its own original relative order. The single-block variant only
// fires when there's exactly one newly added block to place; the
// multiple-blocks variant only fires at two or more.
func reorderInitBlocks(nt *node.NonTerminal, addedLeft, addedRight map[node.Handle]bool, multipleBlocks bool) {
	children := nt.Children()
	var kept, newLeft, newRight []node.Node
	for _, c := range children {
		if !isInitializerType(c.Type()) {
			kept = append(kept, c)
			continue
		}
		switch {
		case addedLeft[c.Handle()]:
			newLeft = append(newLeft, c)
		case addedRight[c.Handle()]:
			newRight = append(newRight, c)
		default:
			kept = append(kept, c)
		}
	}

	newCount := len(newLeft) + len(newRight)
	if newCount == 0 {
		return
	}
	if multipleBlocks && newCount < 2 {
		return
	}
	if !multipleBlocks && newCount != 1 {
		return
	}

	reordered := make([]node.Node, 0, len(children))
	reordered = append(reordered, kept...)
	reordered = append(reordered, newLeft...)
	reordered = append(reordered, newRight...)
	nt.SetChildren(reordered)
}
