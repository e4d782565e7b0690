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

// Package render writes a function's extracted summary as a GraphViz DOT
// graph: one node per access path that carries taint, grouped by root, with
// edges to its children and a label listing the kinds present at that node.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/awslabs/ar-taint-summaries/analysis/summary"
	"github.com/awslabs/ar-taint-summaries/internal/formatutil"
)

// WriteForwardModel renders name's forward (source) model to w.
func WriteForwardModel(name string, model summary.ForwardModel, w io.Writer) error {
	return writeGraph(w, "forward_"+dotSafe(name), func(emit nodeEmitter, edge edgeEmitter) error {
		return writeTree(emit, edge, "result", model.SourceTaint)
	})
}

// WriteBackwardModel renders name's backward (sink + taint-in-taint-out)
// model to w, one subgraph per parameter root that carries taint.
func WriteBackwardModel(name string, model summary.BackwardModel, w io.Writer) error {
	return writeGraph(w, "backward_"+dotSafe(name), func(emit nodeEmitter, edge edgeEmitter) error {
		roots := mergedRoots(model.SinkTaint, model.TaintInTaintOut)
		for _, root := range roots {
			prefix := dotSafe(root.String())
			if err := writeTree(emit, edge, prefix, model.SinkTaint.Get(root)); err != nil {
				return err
			}
			if err := writeTree(emit, edge, prefix+"_tito", model.TaintInTaintOut.Get(root)); err != nil {
				return err
			}
		}
		return nil
	})
}

type nodeEmitter func(id, label string, isSink bool) error
type edgeEmitter func(fromID, toID string) error

func writeGraph(w io.Writer, name string, body func(nodeEmitter, edgeEmitter) error) error {
	if _, err := fmt.Fprintf(w, "digraph %s {\n", name); err != nil {
		return err
	}
	emitNode := func(id, label string, isSink bool) error {
		_, err := fmt.Fprintf(w, "  %q [label=%q];\n", id, formatutil.KindLabel(label, isSink))
		return err
	}
	emitEdge := func(fromID, toID string) error {
		_, err := fmt.Fprintf(w, "  %q -> %q;\n", fromID, toID)
		return err
	}
	if err := body(emitNode, emitEdge); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

// writeTree walks t depth-first, emitting a node per visited subtree and an
// edge from each parent to its children; nodeID is the dot identifier of
// the tree's root.
func writeTree(emit nodeEmitter, edge edgeEmitter, nodeID string, t *summary.Tree) error {
	if summary.IsEmptyTree(t) {
		return nil
	}
	kinds := summary.RootElement(t).Sorted()
	if err := emit(nodeID, joinKinds(nodeID, kinds), hasSinkKind(kinds)); err != nil {
		return err
	}
	children := summary.Children(t)
	labels := make([]summary.Label, 0, len(children))
	for l := range children {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].String() < labels[j].String() })
	for _, l := range labels {
		childID := nodeID + dotSafe(l.String())
		if err := edge(nodeID, childID); err != nil {
			return err
		}
		if err := writeTree(emit, edge, childID, children[l]); err != nil {
			return err
		}
	}
	return nil
}

func mergedRoots(states ...summary.State) []summary.Root {
	seen := map[summary.Root]bool{}
	var roots []summary.Root
	for _, s := range states {
		for r := range s.Roots() {
			if !seen[r] {
				seen[r] = true
				roots = append(roots, r)
			}
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].String() < roots[j].String() })
	return roots
}

func hasSinkKind(kinds []summary.Kind) bool {
	for _, k := range kinds {
		if k != summary.LocalReturn {
			return true
		}
	}
	return false
}

func joinKinds(nodeID string, kinds []summary.Kind) string {
	label := nodeID
	for _, k := range kinds {
		label += "\n" + string(k)
	}
	return label
}

func dotSafe(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
