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

// Package textual adapts an external line-based three-way merge engine
// behind a common interface (C7). Two strategies are provided: a plain
// diff3 and a consistent-signature variant that falls back to diff3.
package textual

// Strategy selects which Merger implementation a merge run uses. Global
// to a run (spec.md §4.7).
type Strategy int

const (
	Diff3 Strategy = iota
	CSDiffAndDiff3
)

func (s Strategy) String() string {
	switch s {
	case Diff3:
		return "Diff3"
	case CSDiffAndDiff3:
		return "CSDiffAndDiff3"
	default:
		return "Unknown"
	}
}

// Merger is the common interface both textual-merge strategies implement.
type Merger interface {
	Merge(left, base, right string, ignoreWhitespace bool) (string, error)
}

// MergeError wraps a failed textual merge with the three inputs that
// produced it, so callers can fall back to a pure textual merge of the
// whole file (spec.md §7).
type MergeError struct {
	Left, Base, Right string
	cause             error
}

func (e *MergeError) Error() string {
	if e.cause != nil {
		return "textual merge failed: " + e.cause.Error()
	}
	return "textual merge failed"
}

func (e *MergeError) Unwrap() error { return e.cause }

func newMergeError(left, base, right string, cause error) *MergeError {
	return &MergeError{Left: left, Base: base, Right: right, cause: cause}
}

// New returns the Merger for the given strategy.
func New(strategy Strategy, showBase bool) Merger {
	switch strategy {
	case CSDiffAndDiff3:
		return &csDiffAndDiff3{fallback: &diff3Merger{showBase: showBase}}
	default:
		return &diff3Merger{showBase: showBase}
	}
}

