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

// Command semerge runs the semistructured three-way merge engine against
// three files on disk, in the conventional LOCAL/BASE/REMOTE argument
// order used by git's merge.<driver>.driver configuration.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/attic-labs/kingpin"
	"github.com/cenkalti/backoff/v4"
	"github.com/creasty/defaults"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	semerge "github.com/codeforge-dev/semistruct-merge"
	"github.com/codeforge-dev/semistruct-merge/internal/lang"
)

var (
	app = kingpin.New("semerge", "Semistructured three-way merge for curly-brace source files.")

	leftPath  = app.Arg("local", "Your version of the file.").Required().String()
	basePath  = app.Arg("base", "The common ancestor.").Required().String()
	rightPath = app.Arg("remote", "The other version of the file.").Required().String()

	outPath  = app.Flag("out", "Write the merged result here instead of stdout.").Short('o').String()
	cfgPath  = app.Flag("config", "Path to a TOML file overriding the default Config.").Short('c').String()
	showBase = app.Flag("show-base", "Include the common-ancestor hunk in conflict blocks.").Bool()
	ignoreWS = app.Flag("ignore-whitespace", "Treat whitespace-only line changes as equal during textual merges.").Bool()
	isGit    = app.Flag("is-git", "Run as a git merge driver: raise an error instead of merging when a side is missing.").Bool()
	strategy = app.Flag("strategy", "Textual merge strategy for unresolved leaves: diff3 or csdiff.").Default("diff3").Enum("diff3", "csdiff")
	noColor  = app.Flag("no-color", "Disable colorized conflict markers even on a terminal.").Bool()
	quiet    = app.Flag("quiet", "Suppress warning diagnostics.").Short('q').Bool()
	profCPU  = app.Flag("profile", "Write a pprof CPU profile for this run under ./semerge-profile.").Bool()

	noTypeAmbiguity    = app.Flag("no-type-ambiguity-handler", "Disable the sibling-type-ambiguity handler.").Bool()
	noNewElementRef    = app.Flag("no-new-element-handler", "Disable the new-element-references-edited handler.").Bool()
	noRenaming         = app.Flag("no-renaming-handler", "Disable the method/constructor renaming-and-deletion handler.").Bool()
	noInitBlocks       = app.Flag("no-init-blocks-handler", "Disable the initialization-blocks handler.").Bool()
	multipleInitBlocks = app.Flag("multiple-init-blocks", "Use the multiple-initialization-blocks variant instead of the single-block one.").Bool()
	noDuplicates       = app.Flag("no-duplicate-handler", "Disable the duplicated-declaration handler.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *profCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("./semerge-profile")).Stop()
	}

	log := logrus.StandardLogger()
	if *quiet {
		log.SetLevel(logrus.ErrorLevel)
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	applyFlags(&cfg)

	start := time.Now()
	left, base, right, err := readInputs(*leftPath, *basePath, *rightPath)
	if err != nil {
		log.Fatalf("reading inputs: %v", err)
	}

	out, mergeErr := semerge.SemistructuredMerge(lang.ToyParser{}, lang.ToyPrettyPrinter{}, left, base, right, cfg)
	if mergeErr != nil {
		log.Warnf("semistructured merge failed, falling back to textual merge: %v", mergeErr)
		out, err = semerge.ThreeWayTextualMerge(left.Content, base.Content, right.Content, cfg.IgnoreWhitespace, cfg.TextualMergeStrategy, cfg.ShowBase)
		if err != nil {
			log.Fatalf("textual fallback failed: %v", err)
		}
	}

	if err := writeOutput(*outPath, colorizeIfTerminal(out, *outPath, *noColor)); err != nil {
		log.Fatalf("writing output: %v", err)
	}

	log.Debugf("merge finished in %s (%s written)", time.Since(start).Round(time.Millisecond), humanize.Bytes(uint64(len(out))))

	if hasConflictMarkers(out) {
		os.Exit(1)
	}
}

func loadConfig(path string) (semerge.Config, error) {
	var cfg semerge.Config
	if err := defaults.Set(&cfg); err != nil {
		return cfg, errors.Wrap(err, "applying default config")
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "decoding %s", path)
	}
	return cfg, nil
}

func applyFlags(cfg *semerge.Config) {
	cfg.ShowBase = cfg.ShowBase || *showBase
	cfg.IgnoreWhitespace = cfg.IgnoreWhitespace || *ignoreWS
	cfg.IsGit = cfg.IsGit || *isGit
	if *strategy == "csdiff" {
		cfg.TextualMergeStrategy = semerge.CSDiffAndDiff3
	}
	if *noTypeAmbiguity {
		cfg.TypeAmbiguityHandler = false
	}
	if *noNewElementRef {
		cfg.NewElementReferencingEditedOneHandler = false
	}
	if *noRenaming {
		cfg.MethodAndConstructorRenamingAndDeletionHandler = false
	}
	if *noInitBlocks {
		cfg.InitializationBlocksHandler = false
	}
	if *multipleInitBlocks {
		cfg.InitializationBlocksHandler = false
		cfg.InitializationBlocksHandlerMultipleBlocks = true
	}
	if *noDuplicates {
		cfg.DuplicatedDeclarationHandler = false
	}
}

// readInputs reads the three files with a short retry for transient
// filesystem errors (a merge driver is often invoked against files that
// a concurrent checkout or editor save is still flushing).
func readInputs(leftPath, basePath, rightPath string) (left, base, right semerge.Input, err error) {
	left, err = readOneInput(leftPath)
	if err != nil {
		return
	}
	base, err = readOneInput(basePath)
	if err != nil {
		return
	}
	right, err = readOneInput(rightPath)
	return
}

func readOneInput(path string) (semerge.Input, error) {
	var content string
	missing := false
	op := func() error {
		b, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			missing = true
			return nil
		}
		if err != nil {
			return err
		}
		content = string(b)
		return nil
	}
	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(op, bo); err != nil {
		return semerge.Input{}, errors.Wrapf(err, "reading %s", path)
	}
	in := semerge.Input{Path: path}
	if !missing {
		in.Content = &content
	}
	return in, nil
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func hasConflictMarkers(s string) bool {
	return strings.Contains(s, "<<<<<<< MINE")
}
