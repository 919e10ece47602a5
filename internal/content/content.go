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

// Package content implements the content merger (C4): it walks the
// superimposed tree looking for terminals tagged by the superimposer,
// splits each tagged body/prefix back into its (left, base, right)
// contributions, and resolves them — bodies via the configured textual
// strategy, special-token prefixes via a lightweight three-way compare.
package content

import (
	"strings"

	"github.com/codeforge-dev/semistruct-merge/internal/marker"
	"github.com/codeforge-dev/semistruct-merge/internal/mergectx"
	"github.com/codeforge-dev/semistruct-merge/internal/node"
	"github.com/codeforge-dev/semistruct-merge/internal/textual"
)

// Options controls how the content merger resolves a single tagged body.
type Options struct {
	Merger           textual.Merger
	IgnoreWhitespace bool
	// TrackRenameCandidates enables population of
	// ctx.PossibleRenamedLeftNodes/PossibleRenamedRightNodes, gated on
	// whether the renaming handler is enabled for this run.
	TrackRenameCandidates bool
}

// Merge walks root depth-first and resolves every tagged terminal found,
// recording edited/rename bookkeeping on ctx along the way.
func Merge(ctx *mergectx.Context, root *node.NonTerminal, opts Options) error {
	if root == nil {
		return nil
	}
	return walk(ctx, root, opts)
}

func walk(ctx *mergectx.Context, nt *node.NonTerminal, opts Options) error {
	for _, child := range nt.Children() {
		switch c := child.(type) {
		case *node.Terminal:
			if err := mergeTerminal(ctx, c, opts); err != nil {
				return err
			}
		case *node.NonTerminal:
			if err := walk(ctx, c, opts); err != nil {
				return err
			}
		default:
			ctx.Warnf("content: unknown node shape for type=%s name=%s", child.Type(), child.Name())
		}
	}
	return nil
}

func mergeTerminal(ctx *mergectx.Context, t *node.Terminal, opts Options) error {
	if marker.Tagged(t.Body()) || strings.Contains(t.Body(), marker.Separator) {
		left, base, right := split(t.Body())
		recordEditedAndRenamed(ctx, t, left, base, right, opts.TrackRenameCandidates)

		merged, err := opts.Merger.Merge(left, base, right, opts.IgnoreWhitespace)
		if err != nil {
			return err
		}
		t.SetBody(merged)
	}

	if marker.Tagged(t.SpecialTokenPrefix()) || strings.Contains(t.SpecialTokenPrefix(), marker.Separator) {
		left, base, right := split(t.SpecialTokenPrefix())
		t.SetSpecialTokenPrefix(CompareAndMerge(left, base, right))
	}

	return nil
}

// split strips the leading semantic marker (if present) and breaks the
// remainder on the separator into exactly three parts, treating any
// missing trailing part as empty (spec.md §4.4: "yielding three parts,
// empty strings where absent").
func split(tagged string) (left, base, right string) {
	tagged = strings.TrimPrefix(tagged, marker.SemanticMarker)
	parts := strings.SplitN(tagged, marker.Separator, 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

// recordEditedAndRenamed populates ctx's edited-node and
// possible-renamed-node bookkeeping for one resolved body, per spec.md
// §4.4: a terminal is "edited by X" iff the other side held base's body
// unchanged and X's differs from it; a side is a rename/deletion
// candidate iff it emptied the body relative to base.
func recordEditedAndRenamed(ctx *mergectx.Context, t *node.Terminal, left, base, right string, trackRenames bool) {
	normBase, normLeft, normRight := normalizeBody(base), normalizeBody(left), normalizeBody(right)
	if normBase == normRight && normBase != normLeft {
		ctx.EditedLeftNodes = append(ctx.EditedLeftNodes, t)
	}
	if normBase == normLeft && normBase != normRight {
		ctx.EditedRightNodes = append(ctx.EditedRightNodes, t)
	}

	if !trackRenames {
		return
	}
	if normLeft == "" && normBase != "" {
		ctx.PossibleRenamedLeftNodes = append(ctx.PossibleRenamedLeftNodes, mergectx.RenameCandidate{BaseBody: base, Node: t, OtherSideEdited: normRight != normBase})
	}
	if normRight == "" && normBase != "" {
		ctx.PossibleRenamedRightNodes = append(ctx.PossibleRenamedRightNodes, mergectx.RenameCandidate{BaseBody: base, Node: t, OtherSideEdited: normLeft != normBase})
	}
}

// normalizeBody collapses whitespace runs so the edited/rename-candidate
// comparisons above match spec.md §4.4's "all comparisons use
// whitespace-normalized single-line content" — mirrors
// internal/handler's normalizeBody, kept local here since the two
// packages have no reason to import one another over a one-line helper.
func normalizeBody(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CompareAndMerge resolves a three-way value (used for special-token
// prefixes) without invoking the textual merger: a side that left the
// value equal to base yields to whichever side changed it, an identical
// change on both sides is taken once, and a genuine two-sided edit is
// resolved left-biased (spec.md §4.4).
func CompareAndMerge(left, base, right string) string {
	switch {
	case left == base:
		return right
	case right == base:
		return left
	case left == right:
		return left
	default:
		return left
	}
}
