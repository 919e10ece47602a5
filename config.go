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

// Package semerge implements a semistructured three-way merge engine for
// curly-brace, statically typed source languages: it superimposes the
// three ASTs, textually merges unmerged leaf content, and runs a pipeline
// of conflict handlers that refine the result (renaming, deletion-vs-edit,
// duplicated declarations, ambiguous types, and more).
package semerge

import "github.com/codeforge-dev/semistruct-merge/internal/textual"

// TextualMergeStrategy selects the line-level merge algorithm used for
// leaf content the tree merge can't resolve structurally.
type TextualMergeStrategy int

const (
	// Diff3 is the conventional line-based three-way merge.
	Diff3 TextualMergeStrategy = iota
	// CSDiffAndDiff3 tries a structural-signature diff first, falling
	// back to Diff3 on conflict.
	CSDiffAndDiff3
)

func (s TextualMergeStrategy) toInternal() textual.Strategy {
	if s == CSDiffAndDiff3 {
		return textual.CSDiffAndDiff3
	}
	return textual.Diff3
}

// Config collects every flag a merge run reads, frozen before the run
// begins and never mutated from within the core (spec.md §9: "collect
// all flags... into an immutable Config struct"; §5: "must be set before
// any merge begins and must not be mutated concurrently with an
// in-flight merge").
type Config struct {
	// ShowBase includes the base hunk between MINE and YOURS in every
	// conflict block emitted.
	ShowBase bool `default:"false"`
	// IgnoreWhitespace treats whitespace-only line differences as equal
	// during textual merging.
	IgnoreWhitespace bool `default:"false"`
	// IsGit makes a missing input (nil Content) fail SemistructuredMerge
	// with a SemistructuredMergeError wrapping MissingFileError; when false,
	// a missing input is merged as empty content. It does not check file
	// extensions and does not change which diagnostics are logged.
	IsGit bool `default:"false"`
	// TextualMergeStrategy selects the C7 strategy for this run.
	TextualMergeStrategy TextualMergeStrategy `default:"0"`

	TypeAmbiguityHandler                          bool `default:"true"`
	NewElementReferencingEditedOneHandler         bool `default:"true"`
	MethodAndConstructorRenamingAndDeletionHandler bool `default:"true"`
	InitializationBlocksHandler                    bool `default:"true"`
	InitializationBlocksHandlerMultipleBlocks      bool `default:"false"`
	DuplicatedDeclarationHandler                   bool `default:"true"`
}
