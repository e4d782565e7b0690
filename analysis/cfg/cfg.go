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

// Package cfg builds the control-flow graph the fixpoint driver iterates
// over. CFG construction from a full source grammar (branches, loops,
// exception handlers, ...) is an external collaborator in the design this
// package implements; what lives here is a minimal builder good enough to
// turn a straight-line-with-one-level-of-nesting statement list into basic
// blocks, plus the block/edge types the driver and internal/graphutil share.
package cfg

import "github.com/awslabs/ar-taint-summaries/analysis/ast"

// BlockID identifies a basic block within one function's CFG.
type BlockID int

// Block is a maximal straight-line run of statements.
type Block struct {
	ID    BlockID
	Stmts []ast.Statement
	Preds []BlockID
	Succs []BlockID
}

// Graph is a function's control-flow graph: an entry block, an exit block,
// and every block reachable between them.
type Graph struct {
	Entry  BlockID
	Exit   BlockID
	Blocks map[BlockID]*Block
}

// Block returns the block with the given id, or nil if it does not exist.
func (g *Graph) Block(id BlockID) *Block { return g.Blocks[id] }

// Preds returns the predecessor blocks of id.
func (g *Graph) Preds(id BlockID) []BlockID { return g.Blocks[id].Preds }

// Succs returns the successor blocks of id.
func (g *Graph) Succs(id BlockID) []BlockID { return g.Blocks[id].Succs }

// Len returns the number of blocks in the graph.
func (g *Graph) Len() int { return len(g.Blocks) }

// Build constructs a CFG for fn. Statements are appended to the current
// straight-line block until an Other of kind "For" or "While"; each such
// loop becomes a header block with one empty body block (loop body
// statements are not represented) wired back to the header, and the
// statements after it continue in a new block that follows the header.
// Every other statement, including an Other of kind "If", stays in the
// current block; no branch structure is built. This is enough structure to
// exercise widening at loop headers without requiring a full front-end
// grammar.
func Build(fn *ast.Function) *Graph {
	g := &Graph{Blocks: map[BlockID]*Block{}}
	nextID := BlockID(0)
	newBlock := func() *Block {
		b := &Block{ID: nextID}
		g.Blocks[nextID] = b
		nextID++
		return b
	}

	entry := newBlock()
	g.Entry = entry.ID

	link := func(from, to BlockID) {
		g.Blocks[from].Succs = append(g.Blocks[from].Succs, to)
		g.Blocks[to].Preds = append(g.Blocks[to].Preds, from)
	}

	// build appends stmts to cur, splitting into new blocks around loop
	// constructs, and returns the block execution continues from.
	var build func(cur *Block, stmts []ast.Statement) *Block
	build = func(cur *Block, stmts []ast.Statement) *Block {
		for _, s := range stmts {
			loop, isLoop := s.(*ast.Other)
			if isLoop && (loop.Kind == "For" || loop.Kind == "While") {
				header := newBlock()
				link(cur.ID, header.ID)
				body := newBlock()
				link(header.ID, body.ID)
				after := build(body, nil) // loop body statements are opaque at this granularity
				link(after.ID, header.ID)
				cur = newBlock()
				link(header.ID, cur.ID)
				continue
			}
			cur.Stmts = append(cur.Stmts, s)
		}
		return cur
	}

	last := build(entry, fn.Body)
	exit := newBlock()
	link(last.ID, exit.ID)
	g.Exit = exit.ID
	return g
}
