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

// Package graphutil wraps a function's control-flow graph so the fixpoint
// driver can reuse general-purpose graph algorithms instead of reinventing
// traversal order and loop detection: gonum's graph/traverse for the visit
// order that makes a worklist converge fast, and yourbasic/graph's strongly
// connected components to find the loop headers that need widening.
package graphutil

import (
	"sort"

	"github.com/awslabs/ar-taint-summaries/analysis/cfg"
	"github.com/yourbasic/graph"
	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// BlockGraph is an abstraction over a cfg.Graph to work with existing graph
// libraries. It exposes both gonum's graph.Graph (used for traversal order)
// and yourbasic/graph's Iterator (used for strongly connected components).
type BlockGraph struct {
	CFG *cfg.Graph

	order int
	ids   []int64
	succs map[int64][]int64
	preds map[int64][]int64
}

// NewBlockGraph builds a BlockGraph over g's blocks, in either the forward
// (successor) or reversed (predecessor-as-successor) direction. The
// backward analysis walks the reversed graph so that its "forward" notion
// of traversal order and loop headers is relative to the CFG's exit.
func NewBlockGraph(g *cfg.Graph, reversed bool) *BlockGraph {
	ids := make([]int64, 0, len(g.Blocks))
	succs := make(map[int64][]int64, len(g.Blocks))
	preds := make(map[int64][]int64, len(g.Blocks))
	for id, b := range g.Blocks {
		ids = append(ids, int64(id))
		for _, s := range b.Succs {
			succs[int64(id)] = append(succs[int64(id)], int64(s))
			preds[int64(s)] = append(preds[int64(s)], int64(id))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	bg := &BlockGraph{CFG: g, order: len(g.Blocks), ids: ids, succs: succs, preds: preds}
	if reversed {
		bg.succs, bg.preds = bg.preds, bg.succs
	}
	return bg
}

// Order implements yourbasic/graph.Iterator.
func (b *BlockGraph) Order() int { return b.order }

// Visit implements yourbasic/graph.Iterator.
func (b *BlockGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	for _, w := range b.succs[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// simpleGraph builds a gonum simple.DirectedGraph mirroring b, for the
// algorithms in gonum/graph/traverse that want the gonum interfaces rather
// than yourbasic's.
func (b *BlockGraph) simpleGraph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for _, id := range b.ids {
		g.AddNode(simple.Node(id))
	}
	for from, tos := range b.succs {
		for _, to := range tos {
			g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}
	return g
}

// VisitOrder returns the blocks reachable from start in depth-first
// pre-order. For the forward analysis (start = entry, direction = Succs)
// this is a traversal order that visits a block's predecessors before the
// block itself whenever the CFG is acyclic along that path, which is what
// lets a single worklist pass make progress instead of thrashing.
func VisitOrder(b *BlockGraph, start cfg.BlockID) []cfg.BlockID {
	g := b.simpleGraph()
	var order []cfg.BlockID
	visited := map[int64]bool{}
	walk := traverse.DepthFirst{
		Visit: func(n gonumgraph.Node) {
			id := n.ID()
			if !visited[id] {
				visited[id] = true
				order = append(order, cfg.BlockID(id))
			}
		},
	}
	walk.Walk(g, simple.Node(start), func(gonumgraph.Node) bool { return false })
	return order
}

// LoopHeaders returns the set of blocks that are part of a nontrivial
// strongly connected component, i.e. blocks on some cycle in the CFG. These
// are the blocks the fixpoint driver revisits; once a block's visit count
// exceeds the widening policy's IterationThreshold, widen replaces join
// there (§5).
func LoopHeaders(b *BlockGraph) map[cfg.BlockID]bool {
	headers := map[cfg.BlockID]bool{}
	components := graph.StrongComponents(b)
	for _, component := range components {
		if len(component) < 2 {
			continue
		}
		for _, idx := range component {
			headers[cfg.BlockID(b.ids[idx])] = true
		}
	}
	// A single-block self-loop (a block that is its own successor) is also
	// a loop header, but the loop above skips every size-1 component; check
	// self-edges directly.
	for _, id := range b.ids {
		for _, s := range b.succs[id] {
			if s == id {
				headers[cfg.BlockID(id)] = true
			}
		}
	}
	return headers
}
