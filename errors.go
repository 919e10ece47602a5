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

package semerge

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/codeforge-dev/semistruct-merge/internal/mergectx"
	"github.com/codeforge-dev/semistruct-merge/internal/textual"
)

// MissingFileError reports that one of the three inputs is absent —
// interpreted as "deleted in one version" (spec.md §7).
type MissingFileError struct {
	Which string // "left", "base", or "right"
}

func (e *MissingFileError) Error() string {
	return "The merged file was deleted in one version."
}

// TextualMergeError wraps a failed textual merge with the three leaf
// bodies that produced it (spec.md §7). It mirrors internal/textual's
// MergeError one-to-one so callers never need to import the internal
// package to inspect a failure.
type TextualMergeError struct {
	Left, Base, Right string
	cause             error
}

func (e *TextualMergeError) Error() string {
	return fmt.Sprintf("textual merge failed: %v", e.cause)
}

func (e *TextualMergeError) Unwrap() error { return e.cause }

func fromInternalMergeError(err error) error {
	if err == nil {
		return nil
	}
	if me, ok := err.(*textual.MergeError); ok {
		return &TextualMergeError{Left: me.Left, Base: me.Base, Right: me.Right, cause: me}
	}
	return err
}

// SemistructuredMergeError wraps any failure during superimposition or a
// handler, retaining the merge context so the caller can fall back to a
// pure textual merge of the whole file (spec.md §7).
type SemistructuredMergeError struct {
	Ctx   *mergectx.Context
	cause error
}

func (e *SemistructuredMergeError) Error() string {
	return fmt.Sprintf("semistructured merge failed: %v", e.cause)
}

func (e *SemistructuredMergeError) Unwrap() error { return e.cause }

func wrapSemistructuredError(ctx *mergectx.Context, err error) error {
	if err == nil {
		return nil
	}
	return &SemistructuredMergeError{Ctx: ctx, cause: errors.WithStack(fromInternalMergeError(err))}
}
