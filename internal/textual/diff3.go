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

package textual

import "strings"

// diff3Merger is a conventional line-based three-way merge: it diffs
// base against left and base against right independently, then walks
// both edit streams together over the base line axis, taking whichever
// side changed a range, accepting identical changes from both sides, and
// bracketing a conflict when both sides changed an overlapping range
// differently.
type diff3Merger struct {
	showBase bool
}

func (d *diff3Merger) Merge(left, base, right string, ignoreWhitespace bool) (string, error) {
	baseLines := splitLines(base)
	leftLines := splitLines(left)
	rightLines := splitLines(right)

	compareBase := baseLines
	compareLeft := leftLines
	compareRight := rightLines
	if ignoreWhitespace {
		compareBase = mapLines(baseLines, normalizeLine)
		compareLeft = mapLines(leftLines, normalizeLine)
		compareRight = mapLines(rightLines, normalizeLine)
	}

	leftEdits := buildEdits(compareBase, compareLeft, leftLines)
	rightEdits := buildEdits(compareBase, compareRight, rightLines)

	// A conflict is reflected as embedded <<<<<<< / ======= / >>>>>>>
	// markers in the returned text, not as a Go error: conflict markers
	// are this strategy's normal, successful output (spec.md §6), so this
	// method always returns a nil error. The merged lines are rejoined
	// with plain "\n" separators so a clean merge reproduces its input's
	// line endings exactly (splitLines keeps a trailing "" element for a
	// final newline).
	out, _ := merge3(baseLines, leftEdits, rightEdits, ignoreWhitespace, d.showBase)
	return strings.Join(out, "\n"), nil
}

func mapLines(lines []string, f func(string) string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = f(l)
	}
	return out
}

// merge3 walks leftEdits and rightEdits (both expressed in base line
// coordinates) together, producing the merged line sequence and
// reporting whether any conflict was emitted. The caller ignores that
// flag and does not turn a conflict into an error: the merged text, with
// embedded conflict markers, is what it returns.
func merge3(baseLines []string, leftEdits, rightEdits []lineEdit, ignoreWhitespace, showBase bool) ([]string, bool) {
	var out []string
	conflict := false
	cursor, li, ri := 0, 0, 0

	for cursor < len(baseLines) || li < len(leftEdits) || ri < len(rightEdits) {
		leStart := len(baseLines)
		if li < len(leftEdits) {
			leStart = leftEdits[li].startBase
		}
		reStart := len(baseLines)
		if ri < len(rightEdits) {
			reStart = rightEdits[ri].startBase
		}
		nextStart := minInt(leStart, reStart)

		if nextStart > cursor {
			out = append(out, baseLines[cursor:nextStart]...)
			cursor = nextStart
			continue
		}

		leActive := li < len(leftEdits) && leftEdits[li].startBase == cursor
		reActive := ri < len(rightEdits) && rightEdits[ri].startBase == cursor

		switch {
		case leActive && !reActive:
			out = append(out, leftEdits[li].lines...)
			cursor = leftEdits[li].endBase
			li++
		case reActive && !leActive:
			out = append(out, rightEdits[ri].lines...)
			cursor = rightEdits[ri].endBase
			ri++
		case leActive && reActive:
			le, re := leftEdits[li], rightEdits[ri]
			end := maxInt(le.endBase, re.endBase)
			if linesEqual(le.lines, re.lines, ignoreWhitespace) {
				out = append(out, le.lines...)
			} else {
				baseSeg := baseLines[cursor:end]
				out = append(out, conflictBlock(le.lines, baseSeg, re.lines, showBase)...)
				conflict = true
			}
			cursor = end
			li++
			ri++
		default:
			// Neither edit is active at cursor but nextStart == cursor;
			// only possible once both lists are exhausted and cursor has
			// reached len(baseLines), so we're done.
			cursor = len(baseLines)
		}
	}
	if cursor < len(baseLines) {
		out = append(out, baseLines[cursor:]...)
	}
	return out, conflict
}

func conflictBlock(left, base, right []string, showBase bool) []string {
	var block []string
	block = append(block, "<<<<<<< MINE")
	block = append(block, left...)
	if showBase {
		block = append(block, "||||||| BASE")
		block = append(block, base...)
	}
	block = append(block, "=======")
	block = append(block, right...)
	block = append(block, ">>>>>>> YOURS")
	return block
}

