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

package summary

import (
	"github.com/awslabs/ar-taint-summaries/analysis/ast"
	"github.com/awslabs/ar-taint-summaries/analysis/cfg"
	"github.com/awslabs/ar-taint-summaries/internal/graphutil"
)

// Options configures one run of the fixpoint driver.
type Options struct {
	Store        Store
	Types        TypeResolver // consulted only by RunForward, per §6
	Logger       *Logger
	Widening     WideningPolicy
	MaxIterations int // global iteration cap; 0 means DefaultMaxIterations
}

// DefaultMaxIterations bounds the worklist loop so a malformed CFG cannot
// spin forever; per §5, exceeding it means the current over-approximation
// is accepted as the result rather than refined further.
const DefaultMaxIterations = 10000

func (o Options) maxIterations() int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	return DefaultMaxIterations
}

// RunForward implements run_forward(define) of §4.F: builds fn's CFG,
// starts from the empty state at entry, and iterates transfer functions to
// a post-fixed point, taking the exit state as the source model.
func RunForward(fn *ast.Function, opts Options) (ForwardModel, error) {
	g := cfg.Build(fn)
	transfer := &ForwardTransfer{Store: opts.Store, Types: opts.Types, FunctionName: fn.Name, Logger: opts.Logger}
	apply := func(block *cfg.Block, in State) (State, error) {
		state := in
		for _, stmt := range block.Stmts {
			var err error
			state, err = transfer.Statement(stmt, state)
			if err != nil {
				return state, err
			}
		}
		return state, nil
	}
	outState, err := iterate(g, false, EmptyState(), apply, opts)
	if err != nil {
		return ForwardModel{}, err
	}
	return ExtractForwardModel(outState[g.Exit]), nil
}

// RunBackward implements run_backward(define) of §4.F: runs from the exit
// block, seeding LocalResult with the LocalReturn marker, and takes the
// entry state (after the pass) as the sink/TITO model.
func RunBackward(fn *ast.Function, opts Options) (BackwardModel, error) {
	g := cfg.Build(fn)
	transfer := &BackwardTransfer{Store: opts.Store, FunctionName: fn.Name, Logger: opts.Logger}
	apply := func(block *cfg.Block, in State) (State, error) {
		state := in
		for i := len(block.Stmts) - 1; i >= 0; i-- {
			var err error
			state, err = transfer.Statement(block.Stmts[i], state)
			if err != nil {
				return state, err
			}
		}
		return state, nil
	}
	seed := EmptyState().Assign(LocalResultRoot, nil, MakeLeaf(Singleton(LocalReturn)))
	inState, err := iterate(g, true, seed, apply, opts)
	if err != nil {
		return BackwardModel{}, err
	}
	paramNames := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		paramNames[i] = p.Name
	}
	return ExtractBackwardModel(inState[g.Entry], paramNames), nil
}

// blockApply runs one block's statements through a transfer, front-to-back
// or back-to-front depending on direction.
type blockApply func(block *cfg.Block, in State) (State, error)

// iterate is the generic worklist fixpoint shared by both directions. For
// the forward direction it walks from g.Entry toward g.Exit, merging a
// block's predecessors' out-states into its in-state. For the backward
// direction (reversed == true) it walks from g.Exit toward g.Entry, merging
// a block's successors' states (as seen in the original CFG) into what is,
// from the backward pass's point of view, its "in" state — mergeSources and
// propagateTo below are deliberately direction-relative, resolved once via
// resolved.
//
// iterate returns, for every block, the state produced by running apply at
// that block: for forward this is each block's post-state; for backward it
// is each block's pre-state (entry state once the pass reaches the CFG's
// actual entry block). Both RunForward and RunBackward read exactly the one
// entry they need out of the returned map.
func iterate(g *cfg.Graph, reversed bool, seedAtStart State, apply blockApply, opts Options) (map[cfg.BlockID]State, error) {
	bg := graphutil.NewBlockGraph(g, reversed)
	start := g.Entry
	if reversed {
		start = g.Exit
	}
	order := graphutil.VisitOrder(bg, start)
	loopHeaders := graphutil.LoopHeaders(bg)

	resolved := func(b *cfg.Block) ([]cfg.BlockID, []cfg.BlockID) {
		if reversed {
			return b.Succs, b.Preds
		}
		return b.Preds, b.Succs
	}

	mergeSources := map[cfg.BlockID][]cfg.BlockID{}
	propagateTo := map[cfg.BlockID][]cfg.BlockID{}
	for id, b := range g.Blocks {
		sources, targets := resolved(b)
		mergeSources[id] = sources
		propagateTo[id] = targets
	}

	merged := map[cfg.BlockID]State{}  // state merged at this block's start, direction-relative
	produced := map[cfg.BlockID]State{} // state produced by apply at this block
	visits := map[cfg.BlockID]int{}

	worklist := append([]cfg.BlockID{}, order...)
	iterations := 0
	for len(worklist) > 0 {
		if iterations >= opts.maxIterations() {
			break
		}
		iterations++
		id := worklist[0]
		worklist = worklist[1:]

		incoming := EmptyState()
		for _, src := range mergeSources[id] {
			incoming = incoming.Join(produced[src])
		}
		if id == start {
			incoming = incoming.Join(seedAtStart)
		}

		visits[id]++
		prevMerged, hadMerged := merged[id]
		var next State
		if !hadMerged {
			next = incoming
		} else if loopHeaders[id] && visits[id] > opts.Widening.nonZero().IterationThreshold {
			next = prevMerged.Widen(incoming, visits[id], opts.Widening.nonZero())
		} else {
			next = prevMerged.Join(incoming)
		}
		if hadMerged && next.Equal(prevMerged) {
			continue
		}
		merged[id] = next

		out, err := apply(g.Blocks[id], next)
		if err != nil {
			return nil, err
		}
		prevProduced, hadProduced := produced[id]
		produced[id] = out
		if !hadProduced || !out.Equal(prevProduced) {
			worklist = append(worklist, propagateTo[id]...)
		}
	}
	return produced, nil
}

// nonZero returns p with DefaultWideningPolicy's values substituted for any
// field left at its zero value, so callers of RunForward/RunBackward can
// pass a zero Options.Widening and get the §4.B-recommended policy.
func (p WideningPolicy) nonZero() WideningPolicy {
	def := DefaultWideningPolicy()
	if p.IterationThreshold == 0 {
		p.IterationThreshold = def.IterationThreshold
	}
	if p.DepthBound == 0 {
		p.DepthBound = def.DepthBound
	}
	return p
}
