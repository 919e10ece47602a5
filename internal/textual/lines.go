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

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineEdit describes a contiguous edit against the base line sequence:
// base lines [startBase, endBase) are replaced by lines. A zero-width
// range (startBase == endBase) is a pure insertion before that position.
type lineEdit struct {
	startBase, endBase int
	lines              []string
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// joinLines rejoins a line slice into text with a trailing newline, so
// every line token the diff library tracks (including the last) is
// terminated the same way and lineCount can count them uniformly.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// normalizeLine collapses internal whitespace runs and trims the ends,
// used when ignoreWhitespace is set so whitespace-only edits are treated
// as no-ops by the line matcher while the original text is still what
// gets emitted.
func normalizeLine(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// buildEdits diffs compareBase against compareOther at line granularity
// (via the library's line-mode trick: map each line to a pseudo-char,
// diff the resulting strings, then translate back), and returns the
// edits needed to turn base into other — but using otherOriginal for the
// replacement text rather than compareOther, so a caller can diff on a
// normalized or signature view of the lines while still emitting the
// real source text.
func buildEdits(compareBaseLines, compareOtherLines, otherOriginal []string) []lineEdit {
	dmp := diffmatchpatch.New()
	c1, c2, lineArray := dmp.DiffLinesToChars(joinLines(compareBaseLines), joinLines(compareOtherLines))
	diffs := dmp.DiffMain(c1, c2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var edits []lineEdit
	baseCursor, otherCursor := 0, 0
	i := 0
	for i < len(diffs) {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			n := lineCount(d.Text)
			baseCursor += n
			otherCursor += n
			i++
		case diffmatchpatch.DiffDelete:
			delCount := lineCount(d.Text)
			start := baseCursor
			baseCursor += delCount
			var repl []string
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				insCount := lineCount(diffs[i+1].Text)
				repl = sliceClamp(otherOriginal, otherCursor, otherCursor+insCount)
				otherCursor += insCount
				i++
			}
			edits = append(edits, lineEdit{startBase: start, endBase: baseCursor, lines: repl})
			i++
		case diffmatchpatch.DiffInsert:
			insCount := lineCount(d.Text)
			repl := sliceClamp(otherOriginal, otherCursor, otherCursor+insCount)
			otherCursor += insCount
			edits = append(edits, lineEdit{startBase: baseCursor, endBase: baseCursor, lines: repl})
			i++
		}
	}
	return edits
}

func sliceClamp(s []string, start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return nil
	}
	out := make([]string, end-start)
	copy(out, s[start:end])
	return out
}

// lineCount counts how many lines a diff op's text represents. Every
// input to the diff is newline-terminated (joinLines always appends a
// trailing "\n"), so each tracked line token ends with exactly one "\n"
// and the count is just the number of newlines in the fragment.
func lineCount(s string) int {
	return strings.Count(s, "\n")
}

func linesEqual(a, b []string, ignoreWhitespace bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if ignoreWhitespace {
			if normalizeLine(a[i]) != normalizeLine(b[i]) {
				return false
			}
		} else if a[i] != b[i] {
			return false
		}
	}
	return true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
