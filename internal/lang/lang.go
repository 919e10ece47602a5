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

// Package lang defines the shape of the two external collaborators the
// merge engine consumes (spec.md §6) — a Parser and a PrettyPrinter for
// whatever curly-brace target language a deployment plugs in — plus a
// minimal toy implementation of both, sufficient to exercise the merge
// pipeline end-to-end without depending on a real language front end.
package lang

import (
	"fmt"

	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

// Parser turns source text into a tree rooted at a non-terminal. A real
// deployment supplies one for its target language; ToyParser stands in
// for tests and examples.
type Parser interface {
	Parse(alloc *node.Allocator, file, src string) (*node.NonTerminal, error)
}

// PrettyPrinter serializes a merged tree back to source text with
// canonical indentation.
type PrettyPrinter interface {
	Print(root *node.NonTerminal) (string, error)
}

// ParseError reports that src could not be parsed as the target language
// at all (spec.md §7): the merge cannot proceed.
type ParseError struct {
	File  string
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.File, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

// TokenError reports a lexical failure at a specific line, a more
// specific ParseError cause.
type TokenError struct {
	File  string
	Line  int
	Token string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s:%d: unexpected token %q", e.File, e.Line, e.Token)
}
