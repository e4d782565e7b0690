// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package run implements the taintsum command: load a function, compute its
// forward and backward summaries, and print or render the result.
package run

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/awslabs/ar-taint-summaries/analysis/ast"
	"github.com/awslabs/ar-taint-summaries/analysis/config"
	"github.com/awslabs/ar-taint-summaries/analysis/render"
	"github.com/awslabs/ar-taint-summaries/analysis/summary"
	"github.com/awslabs/ar-taint-summaries/cmd/taintsum/internal/clitools"
	"github.com/awslabs/ar-taint-summaries/internal/formatutil"
)

const usage = ` Compute per-function taint summaries.
Usage:
  taintsum [options] <function.json>
Examples:
  % taintsum -config config.yaml handler.json
`

// Flags is the parsed command line for one invocation.
type Flags struct {
	clitools.CommonFlags
	FunctionPath string
}

// NewFlags parses args into a Flags.
func NewFlags(args []string) (Flags, error) {
	flags, err := clitools.NewCommonFlags("taintsum", args, usage)
	if err != nil {
		return Flags{}, err
	}
	rest := flags.FlagSet.Args()
	if len(rest) != 1 {
		return Flags{}, fmt.Errorf("expected exactly one function file, got %d", len(rest))
	}
	return Flags{CommonFlags: flags, FunctionPath: rest[0]}, nil
}

// Run loads flags.FunctionPath, computes its forward and backward summaries,
// and writes the result to stdout.
func Run(flags Flags, logger *log.Logger) error {
	cfg, err := clitools.LoadConfig(flags.ConfigPath)
	if err != nil {
		return err
	}
	if flags.Verbose {
		cfg.LogLevel = int(config.DebugLevel)
	}
	logGroup := config.NewLogGroup(cfg)

	data, err := os.ReadFile(flags.FunctionPath)
	if err != nil {
		return fmt.Errorf("could not read function file: %w", err)
	}
	fn, err := ast.DecodeFunction(data)
	if err != nil {
		return fmt.Errorf("could not decode function: %w", err)
	}

	store := summary.NewMapStore()
	sumLogger := config.NewSummaryLogger(logGroup)
	opts := cfg.FixpointOptions(store, nil, sumLogger)

	logger.Print(formatutil.Faint("Analyzing " + fn.Name))

	forward, err := summary.RunForward(fn, opts)
	if err != nil {
		return fmt.Errorf("forward analysis of %s failed: %w", fn.Name, err)
	}
	backward, err := summary.RunBackward(fn, opts)
	if err != nil {
		return fmt.Errorf("backward analysis of %s failed: %w", fn.Name, err)
	}

	if flags.RenderDot {
		if err := render.WriteForwardModel(fn.Name, forward, os.Stdout); err != nil {
			return err
		}
		return render.WriteBackwardModel(fn.Name, backward, os.Stdout)
	}

	Report(fn.Name, summary.Summary{Forward: forward, Backward: backward}, logger)
	return nil
}

// Report prints name's summary in a human-readable form.
func Report(name string, model summary.Summary, logger *log.Logger) {
	sourceKinds := summary.RootElement(model.Forward.SourceTaint).Sorted()
	if len(sourceKinds) == 0 {
		logger.Printf("%s: %s", name, formatutil.Green("no source taint reaches the return value"))
	} else {
		logger.Printf("%s: %s %v", name, formatutil.Yellow("return value tainted with"), sourceKinds)
	}

	for _, root := range sortedRoots(model.Backward.SinkTaint) {
		kinds := summary.Collapse(model.Backward.SinkTaint.Get(root))
		if kinds.IsEmpty() {
			continue
		}
		logger.Printf("%s: %s %s %v", name, formatutil.Red("sink reached via"), root.String(), kinds.Sorted())
	}
	for _, root := range sortedRoots(model.Backward.TaintInTaintOut) {
		kinds := summary.Collapse(model.Backward.TaintInTaintOut.Get(root))
		if kinds.IsEmpty() {
			continue
		}
		logger.Printf("%s: %s %s", name, formatutil.Cyan("taint-in-taint-out via"), root.String())
	}
}

// sortedRoots returns state's roots in a deterministic order, mirroring
// render.mergedRoots, so the CLI report's line order is stable across runs.
func sortedRoots(state summary.State) []summary.Root {
	roots := make([]summary.Root, 0, len(state.Roots()))
	for r := range state.Roots() {
		roots = append(roots, r)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].String() < roots[j].String() })
	return roots
}
