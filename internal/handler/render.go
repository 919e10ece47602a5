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
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

// walkNonTerminals visits every non-terminal in the tree, root included,
// depth-first with children in original order.
func walkNonTerminals(root *node.NonTerminal, fn func(*node.NonTerminal)) {
	fn(root)
	for _, c := range root.Children() {
		if nt, ok := c.(*node.NonTerminal); ok {
			walkNonTerminals(nt, fn)
		}
	}
}

// renderPlain flattens a subtree's textual content (special-token prefix
// then body for a terminal, concatenated children for a non-terminal).
// It is not a pretty-printer — it exists for handlers that need a rough
// textual signature of a declaration to compare or bracket in a conflict,
// not for final output.
func renderPlain(n node.Node) string {
	switch v := n.(type) {
	case *node.Terminal:
		return v.SpecialTokenPrefix() + v.Body()
	case *node.NonTerminal:
		var b strings.Builder
		for _, c := range v.Children() {
			b.WriteString(renderPlain(c))
		}
		return b.String()
	default:
		return ""
	}
}

// normalizeBody collapses whitespace runs so comparisons match spec.md
// §4.4's "all comparisons use whitespace-normalized single-line content."
func normalizeBody(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fingerprint hashes a normalized body, used as a cheap pre-filter before
// an exact comparison (spec.md DOMAIN STACK: xxhash fast path).
func fingerprint(s string) uint64 {
	return xxhash.Sum64String(normalizeBody(s))
}

// isConflictMarked reports whether body already contains an open conflict
// bracket, so a handler doesn't double-wrap an already-conflicted leaf.
func isConflictMarked(body string) bool {
	return strings.Contains(body, "<<<<<<< MINE")
}

// wrapConflict renders the conventional conflict-marker layout (spec.md
// §6), identical in shape to the textual package's, for handlers that
// need to bracket a conflict at the tree level rather than the line
// level.
func wrapConflict(mine, base, yours string, showBase bool) string {
	var b strings.Builder
	b.WriteString("<<<<<<< MINE\n")
	b.WriteString(mine)
	ensureNewline(&b, mine)
	if showBase {
		b.WriteString("||||||| BASE\n")
		b.WriteString(base)
		ensureNewline(&b, base)
	}
	b.WriteString("=======\n")
	b.WriteString(yours)
	ensureNewline(&b, yours)
	b.WriteString(">>>>>>> YOURS")
	return b.String()
}

func ensureNewline(b *strings.Builder, s string) {
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
}

// detach removes n from its parent's children, a no-op if n has no
// parent.
func detach(n node.Node) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	if i := parent.IndexOfHandle(n.Handle()); i >= 0 {
		parent.RemoveChildAt(i)
	}
}

// findDeletedAncestor walks n and its ancestors looking for the one
// recorded, by handle, in deleted — the declaration-level node the
// superimposer bucketed as "deleted by this side" even though the match
// that triggered the rename/deletion bookkeeping may sit on a nested
// content terminal several levels below it.
func findDeletedAncestor(n node.Node, deleted []node.Node) node.Node {
	for cur := n; cur != nil; {
		if containsHandle(deleted, cur.Handle()) {
			return cur
		}
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		cur = parent
	}
	return nil
}

func containsHandle(list []node.Node, h node.Handle) bool {
	for _, n := range list {
		if n.Handle() == h {
			return true
		}
	}
	return false
}
