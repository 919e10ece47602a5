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
	"golang.org/x/sync/errgroup"

	"github.com/codeforge-dev/semistruct-merge/internal/content"
	"github.com/codeforge-dev/semistruct-merge/internal/handler"
	"github.com/codeforge-dev/semistruct-merge/internal/lang"
	"github.com/codeforge-dev/semistruct-merge/internal/mergectx"
	"github.com/codeforge-dev/semistruct-merge/internal/superimpose"
	"github.com/codeforge-dev/semistruct-merge/internal/textual"
)

// Input is one of the three versions of a file handed to a merge. A nil
// Content means the file does not exist in this version (spec.md §7
// MissingFileError).
type Input struct {
	Path    string
	Content *string
}

func text(in Input) string {
	if in.Content == nil {
		return ""
	}
	return *in.Content
}

// SemistructuredMerge runs the full tree-superimposition pipeline with
// the default handler set built from cfg, using parser/printer as the
// external language collaborators (spec.md §6).
func SemistructuredMerge(parser lang.Parser, printer lang.PrettyPrinter, left, base, right Input, cfg Config) (string, error) {
	return SemistructuredMergeWithHandlers(parser, printer, left, base, right, cfg, handler.Build(handlerFlags(cfg)))
}

func handlerFlags(cfg Config) handler.Flags {
	return handler.Flags{
		ShowBase:                                cfg.ShowBase,
		TypeAmbiguity:                           cfg.TypeAmbiguityHandler,
		NewElementReferencingEditedOne:          cfg.NewElementReferencingEditedOneHandler,
		MethodAndConstructorRenamingAndDeletion: cfg.MethodAndConstructorRenamingAndDeletionHandler,
		InitializationBlocks:                    cfg.InitializationBlocksHandler,
		InitializationBlocksMultipleBlocks:      cfg.InitializationBlocksHandlerMultipleBlocks,
		DuplicatedDeclaration:                   cfg.DuplicatedDeclarationHandler,
	}
}

// SemistructuredMergeWithHandlers is SemistructuredMerge with an explicit
// handler pipeline, for callers that assembled their own (spec.md §6).
func SemistructuredMergeWithHandlers(parser lang.Parser, printer lang.PrettyPrinter, left, base, right Input, cfg Config, handlers []handler.Handler) (string, error) {
	if cfg.IsGit && (left.Content == nil || base.Content == nil || right.Content == nil) {
		which := "left"
		switch {
		case base.Content == nil:
			which = "base"
		case right.Content == nil:
			which = "right"
		}
		return "", wrapSemistructuredError(nil, &MissingFileError{Which: which})
	}

	ctx := mergectx.New(nil)

	leftTree, err := parser.Parse(ctx.Alloc, left.Path, text(left))
	if err != nil {
		return "", err
	}
	baseTree, err := parser.Parse(ctx.Alloc, base.Path, text(base))
	if err != nil {
		return "", err
	}
	rightTree, err := parser.Parse(ctx.Alloc, right.Path, text(right))
	if err != nil {
		return "", err
	}
	ctx.LeftTree, ctx.BaseTree, ctx.RightTree = leftTree, baseTree, rightTree

	superimpose.Run(ctx)
	if ctx.SuperImposedTree == nil {
		return "", wrapSemistructuredError(ctx, errIncompatibleRoots)
	}

	merger := textual.New(cfg.TextualMergeStrategy.toInternal(), cfg.ShowBase)
	if err := content.Merge(ctx, ctx.SuperImposedTree, content.Options{
		Merger:                merger,
		IgnoreWhitespace:      cfg.IgnoreWhitespace,
		TrackRenameCandidates: cfg.MethodAndConstructorRenamingAndDeletionHandler,
	}); err != nil {
		return "", wrapSemistructuredError(ctx, err)
	}

	if err := handler.Run(ctx, handlers); err != nil {
		return "", wrapSemistructuredError(ctx, err)
	}

	out, err := printer.Print(ctx.SuperImposedTree)
	if err != nil {
		return "", wrapSemistructuredError(ctx, err)
	}
	ctx.SemistructuredOutput = out
	return out, nil
}

var errIncompatibleRoots = &rootMismatchError{}

type rootMismatchError struct{}

func (*rootMismatchError) Error() string {
	return "left, base and right roots are not compatible for merging"
}

// ThreeWayTextualMerge runs only the line-based textual merge, bypassing
// tree superimposition entirely — the fallback path a caller takes after
// a SemistructuredMergeError (spec.md §7).
func ThreeWayTextualMerge(left, base, right *string, ignoreWhitespace bool, strategy TextualMergeStrategy, showBase bool) (string, error) {
	l, b, r := derefOrEmpty(left), derefOrEmpty(base), derefOrEmpty(right)
	merger := textual.New(strategy.toInternal(), showBase)
	out, err := merger.Merge(l, b, r, ignoreWhitespace)
	if err != nil {
		return "", fromInternalMergeError(err)
	}
	return out, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FileTriple holds the three versions of one file for MergeFiles.
type FileTriple struct {
	Left, Base, Right Input
}

// MergeFiles fans a batch of independent three-way merges out over an
// errgroup, one goroutine per file — the caller-level, file-granularity
// parallelism spec.md §5 leaves to the caller, each individual merge
// still single-threaded and synchronous.
func MergeFiles(parser lang.Parser, printer lang.PrettyPrinter, files []FileTriple, cfg Config) ([]string, error) {
	results := make([]string, len(files))
	var g errgroup.Group
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			out, err := SemistructuredMerge(parser, printer, f.Left, f.Base, f.Right, cfg)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
