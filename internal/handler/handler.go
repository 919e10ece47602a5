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

// Package handler implements the post-superimposition conflict handler
// pipeline (C6): a fixed-order sequence of refinements, each one a value
// implementing the single-method Handler capability, assembled fresh from
// a Flags value at the start of every merge run rather than through any
// global registry.
package handler

import "github.com/codeforge-dev/semistruct-merge/internal/mergectx"

// Handler mutates the merge context's tree to resolve one family of
// conflicts.
type Handler interface {
	Handle(ctx *mergectx.Context) error
}

// Flags selects which optional handlers participate in a run; ShowBase
// controls whether conflict blocks this pipeline emits include the base
// hunk. Deletions always runs and has no flag.
type Flags struct {
	ShowBase bool

	TypeAmbiguity                          bool
	NewElementReferencingEditedOne         bool
	MethodAndConstructorRenamingAndDeletion bool
	InitializationBlocks                   bool
	InitializationBlocksMultipleBlocks     bool
	DuplicatedDeclaration                  bool
}

// Build assembles the handler pipeline in the fixed order spec.md §4.6
// requires. The two initialization-block variants are mutually exclusive:
// the multiple-blocks variant only runs when the single-block variant is
// disabled (spec.md §9).
func Build(f Flags) []Handler {
	var pipeline []Handler

	if f.TypeAmbiguity {
		pipeline = append(pipeline, &typeAmbiguityHandler{showBase: f.ShowBase})
	}
	if f.NewElementReferencingEditedOne {
		pipeline = append(pipeline, &newElementReferencingEditedOneHandler{showBase: f.ShowBase})
	}
	if f.MethodAndConstructorRenamingAndDeletion {
		pipeline = append(pipeline, &renamingHandler{showBase: f.ShowBase})
	}
	switch {
	case f.InitializationBlocks:
		pipeline = append(pipeline, &initializationBlocksHandler{multipleBlocks: false})
	case f.InitializationBlocksMultipleBlocks:
		pipeline = append(pipeline, &initializationBlocksHandler{multipleBlocks: true})
	}
	if f.DuplicatedDeclaration {
		pipeline = append(pipeline, &duplicatedDeclarationHandler{showBase: f.ShowBase})
	}
	pipeline = append(pipeline, &deletionsHandler{showBase: f.ShowBase})

	return pipeline
}

// Run executes handlers in order, stopping at the first error.
func Run(ctx *mergectx.Context, handlers []Handler) error {
	for _, h := range handlers {
		if err := h.Handle(ctx); err != nil {
			return err
		}
	}
	return nil
}
