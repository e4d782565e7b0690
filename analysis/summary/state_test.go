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

import "testing"

func TestStateAssignAndRead(t *testing.T) {
	s := EmptyState()
	s = s.Assign(VariableRoot("x"), Path{FieldLabel("f")}, MakeLeaf(Singleton(TestSource)))
	got := RootElement(s.ReadAccessPath(VariableRoot("x"), Path{FieldLabel("f")}))
	if !got.Equal(Singleton(TestSource)) {
		t.Fatalf("expected TestSource at x.f, got %v", got.Sorted())
	}
	if !IsEmptyTree(s.Get(VariableRoot("y"))) {
		t.Fatalf("unassigned root must read as bottom")
	}
}

func TestStateJoinAndLessOrEqual(t *testing.T) {
	a := EmptyState().Assign(VariableRoot("x"), nil, MakeLeaf(Singleton(TestSource)))
	b := EmptyState().Assign(VariableRoot("y"), nil, MakeLeaf(Singleton(UserControlled)))
	joined := a.Join(b)
	if !a.LessOrEqual(joined) || !b.LessOrEqual(joined) {
		t.Fatalf("joined state must be above both operands")
	}
	if joined.LessOrEqual(a) {
		t.Fatalf("joined state must not collapse back to a strict operand")
	}
}

func TestStateEqualIsAntisymmetric(t *testing.T) {
	a := EmptyState().Assign(VariableRoot("x"), nil, MakeLeaf(Singleton(TestSource)))
	b := EmptyState().Assign(VariableRoot("x"), nil, MakeLeaf(Singleton(TestSource)))
	if !a.Equal(b) {
		t.Fatalf("states built the same way must compare equal")
	}
	c := EmptyState().Assign(VariableRoot("x"), nil, MakeLeaf(Singleton(UserControlled)))
	if a.Equal(c) {
		t.Fatalf("states with different taint must not compare equal")
	}
}

func TestStateWidenBoundsGrowth(t *testing.T) {
	policy := WideningPolicy{IterationThreshold: 1, DepthBound: 1}
	deep := EmptyState().Assign(VariableRoot("x"),
		Path{FieldLabel("a"), FieldLabel("b"), FieldLabel("c")},
		MakeLeaf(Singleton(TestSource)))
	widened := EmptyState().Widen(deep, 1, policy)
	atDepth1 := widened.ReadAccessPath(VariableRoot("x"), Path{FieldLabel("a")})
	if len(Children(atDepth1)) != 0 {
		t.Fatalf("state widen must propagate the tree depth bound")
	}
}
