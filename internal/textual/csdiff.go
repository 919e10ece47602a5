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
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// csDiffAndDiff3 first tries a consistent-signature diff: for every line
// position present in all three versions, it checks whether base, left
// and right share the same structural "skeleton" (identifiers and
// numeric literals collapsed to a placeholder). When they do, the three
// variants of that line are really the same statement with different
// argument/identifier tokens, and a token-level three-way merge combines
// them directly — so editing different arguments of the same call on
// each side (spec.md §8 scenario 1) merges cleanly instead of conflicting
// at line granularity. Any line whose shape doesn't line up across all
// three versions, or any unresolved token-level conflict, falls back to
// plain diff3 over the whole file (spec.md §4.7).
type csDiffAndDiff3 struct {
	fallback *diff3Merger
}

func (c *csDiffAndDiff3) Merge(left, base, right string, ignoreWhitespace bool) (string, error) {
	baseLines := splitLines(base)
	leftLines := splitLines(left)
	rightLines := splitLines(right)

	if len(baseLines) == len(leftLines) && len(baseLines) == len(rightLines) {
		merged := make([]string, len(baseLines))
		ok := true
		for i := range baseLines {
			if !sameSkeleton(baseLines[i], leftLines[i], rightLines[i]) {
				ok = false
				break
			}
			line, conflict := mergeTokens(baseLines[i], leftLines[i], rightLines[i])
			if conflict {
				ok = false
				break
			}
			merged[i] = line
		}
		if ok {
			return strings.Join(merged, "\n"), nil
		}
	}

	return c.fallback.Merge(left, base, right, ignoreWhitespace)
}

var identifierOrNumber = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*|[0-9]+(\.[0-9]+)?`)

// tokenPattern splits a line into identifiers/numbers, individual
// non-space characters, and whitespace runs, so a token-level three-way
// compare can treat "f(10, 2)" as the tokens "f" "(" "10" "," " " "2" ")".
var tokenPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*|[0-9]+(\.[0-9]+)?|\s+|\S`)

func skeletonHash(line string) [32]byte {
	skeleton := identifierOrNumber.ReplaceAllString(strings.TrimSpace(line), "\x00ID\x00")
	return blake2b.Sum256([]byte(skeleton))
}

// sameSkeleton reports whether three lines have the same structural
// shape once identifiers and numeric literals are erased, via a cheap
// fixed-size hash compare rather than repeated full-string comparisons.
func sameSkeleton(base, left, right string) bool {
	hb, hl, hr := skeletonHash(base), skeletonHash(left), skeletonHash(right)
	return hb == hl && hb == hr
}

func tokenize(line string) []string {
	return tokenPattern.FindAllString(line, -1)
}

// mergeTokens applies the classic three-way rule per token position:
// take whichever side changed it, accept either if both made the same
// change, and conflict if both changed it differently.
func mergeTokens(base, left, right string) (string, bool) {
	bt, lt, rt := tokenize(base), tokenize(left), tokenize(right)
	if len(bt) != len(lt) || len(bt) != len(rt) {
		return "", true
	}
	merged := make([]string, len(bt))
	conflict := false
	for i := range bt {
		switch {
		case lt[i] == rt[i]:
			merged[i] = lt[i]
		case bt[i] == lt[i]:
			merged[i] = rt[i]
		case bt[i] == rt[i]:
			merged[i] = lt[i]
		default:
			conflict = true
		}
	}
	if conflict {
		return "", true
	}
	return strings.Join(merged, ""), false
}
