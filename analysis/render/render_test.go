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

package render

import (
	"strings"
	"testing"

	"github.com/awslabs/ar-taint-summaries/analysis/summary"
)

func TestWriteForwardModelEmitsRootAndChild(t *testing.T) {
	tree := summary.AssignTreePath(
		summary.MakeLeaf(summary.EmptySet()),
		summary.Path{summary.FieldLabel("f")},
		summary.MakeLeaf(summary.Singleton(summary.TestSource)),
	)
	var buf strings.Builder
	if err := WriteForwardModel("pkg.Source", summary.ForwardModel{SourceTaint: tree}, &buf); err != nil {
		t.Fatalf("WriteForwardModel returned an error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph forward_pkg_Source {\n") {
		t.Fatalf("expected a digraph header naming the callable, got %q", out)
	}
	if !strings.Contains(out, "result_f") {
		t.Fatalf("expected a node for the .f child, got %q", out)
	}
	if !strings.Contains(out, "TestSource") {
		t.Fatalf("expected the TestSource kind to appear in a label, got %q", out)
	}
	if !strings.Contains(out, `"result" -> "result_f";`) {
		t.Fatalf("expected an edge from the root to its .f child, got %q", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Fatalf("expected the graph to be closed, got %q", out)
	}
}

func TestWriteBackwardModelSkipsEmptyRoots(t *testing.T) {
	sinkState := summary.EmptyState().Assign(summary.ParameterRoot(0), nil, summary.MakeLeaf(summary.Singleton(summary.TestSink)))
	var buf strings.Builder
	model := summary.BackwardModel{SinkTaint: sinkState, TaintInTaintOut: summary.EmptyState()}
	if err := WriteBackwardModel("pkg.Sink", model, &buf); err != nil {
		t.Fatalf("WriteBackwardModel returned an error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "TestSink") {
		t.Fatalf("expected TestSink to appear, got %q", out)
	}
	if strings.Contains(out, "_tito") {
		t.Fatalf("an empty taint-in-taint-out tree must not emit any node, got %q", out)
	}
}
