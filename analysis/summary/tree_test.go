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

func TestSetLattice(t *testing.T) {
	a := Singleton(TestSource)
	b := Singleton(UserControlled)
	joined := a.Join(b)
	if !joined.Has(TestSource) || !joined.Has(UserControlled) {
		t.Fatalf("join missing a member: %v", joined.Sorted())
	}
	if !a.LessOrEqual(joined) || !b.LessOrEqual(joined) {
		t.Fatalf("join is not an upper bound of its operands")
	}
	if joined.LessOrEqual(a) {
		t.Fatalf("join must not be below one of its strict operands")
	}
	if !EmptySet().LessOrEqual(a) {
		t.Fatalf("empty set must be bottom")
	}
}

func TestTreeAssignIsStrongUpdate(t *testing.T) {
	tree := MakeLeaf(Singleton(TestSource))
	tree = AssignTreePath(tree, Path{FieldLabel("f")}, MakeLeaf(Singleton(UserControlled)))
	replaced := AssignTreePath(tree, Path{FieldLabel("f")}, MakeLeaf(Singleton(TestSource)))
	got := Read(replaced, Path{FieldLabel("f")})
	if RootElement(got).Has(UserControlled) {
		t.Fatalf("strong update at .f must discard the previous value, got %v", RootElement(got).Sorted())
	}
	if !RootElement(got).Has(TestSource) {
		t.Fatalf("strong update must install the new value")
	}
}

func TestTreeAssignWeakJoinsExisting(t *testing.T) {
	tree := AssignTreePath(EmptyTree(), Path{FieldLabel("f")}, MakeLeaf(Singleton(TestSource)))
	tree = AssignWeakTreePath(tree, Path{FieldLabel("f")}, MakeLeaf(Singleton(UserControlled)))
	got := RootElement(Read(tree, Path{FieldLabel("f")}))
	if !got.Has(TestSource) || !got.Has(UserControlled) {
		t.Fatalf("weak update must join rather than replace, got %v", got.Sorted())
	}
}

func TestReadAccumulatesAncestorTaint(t *testing.T) {
	tree := MakeLeaf(Singleton(TestSource))
	tree = AssignWeakTreePath(tree, Path{FieldLabel("f"), FieldLabel("g")}, MakeLeaf(Singleton(UserControlled)))
	shallow := RootElement(Read(tree, Path{FieldLabel("f")}))
	if !shallow.Has(TestSource) {
		t.Fatalf("reading x.f must see taint assigned on the root, got %v", shallow.Sorted())
	}
	deep := RootElement(Read(tree, Path{FieldLabel("f"), FieldLabel("g")}))
	if !deep.Has(TestSource) || !deep.Has(UserControlled) {
		t.Fatalf("reading x.f.g must see taint from every ancestor, got %v", deep.Sorted())
	}
}

func TestJoinTreesIsCommutativeAndIdempotent(t *testing.T) {
	a := AssignWeakTreePath(EmptyTree(), Path{FieldLabel("f")}, MakeLeaf(Singleton(TestSource)))
	b := MakeLeaf(Singleton(UserControlled))
	ab := JoinTrees(a, b)
	ba := JoinTrees(b, a)
	if !TreeLessOrEqual(ab, ba) || !TreeLessOrEqual(ba, ab) {
		t.Fatalf("join must be commutative up to lattice equivalence")
	}
	if !TreeLessOrEqual(JoinTrees(ab, ab), ab) {
		t.Fatalf("join must be idempotent")
	}
}

// TestAbleProperty1Monotonicity covers §8 Testable Property 1: joining a
// tree with any other tree never decreases it in the lattice order.
func TestAbleProperty1Monotonicity(t *testing.T) {
	a := MakeLeaf(Singleton(TestSource))
	b := AssignWeakTreePath(EmptyTree(), Path{FieldLabel("f")}, MakeLeaf(Singleton(RemoteCodeExecution)))
	joined := JoinTrees(a, b)
	if !TreeLessOrEqual(a, joined) || !TreeLessOrEqual(b, joined) {
		t.Fatalf("join must be above both operands")
	}
}

// TestAbleProperty3WidenTerminates covers §8 Testable Property 3: once the
// widening iteration threshold is reached, Widen bounds tree depth so the
// ascending chain of widened values cannot grow forever.
func TestAbleProperty3WidenTerminates(t *testing.T) {
	policy := WideningPolicy{IterationThreshold: 1, DepthBound: 2}
	deep := AssignTreePath(EmptyTree(),
		Path{FieldLabel("a"), FieldLabel("b"), FieldLabel("c"), FieldLabel("d")},
		MakeLeaf(Singleton(TestSource)))

	widened := WidenTree(EmptyTree(), deep, 1, policy)

	atDepth2 := Read(widened, Path{FieldLabel("a"), FieldLabel("b")})
	if len(Children(atDepth2)) != 0 {
		t.Fatalf("widen with DepthBound=2 must collapse structure past depth 2, got children %v", Children(atDepth2))
	}
	if !RootElement(atDepth2).Has(TestSource) {
		t.Fatalf("widen must not lose the taint collapsed from deeper nodes")
	}

	// Below the iteration threshold, widen degrades to a plain join and keeps
	// the full structure.
	unwidened := WidenTree(EmptyTree(), deep, 0, policy)
	fullDepth := Read(unwidened, Path{FieldLabel("a"), FieldLabel("b"), FieldLabel("c")})
	if len(Children(fullDepth)) == 0 {
		t.Fatalf("below the iteration threshold, widen must not collapse structure")
	}
}

// TestAbleProperty4TreeRoundTrip covers §8 Testable Property 4: assigning a
// subtree at a path and reading that same path back recovers exactly the
// assigned element.
func TestAbleProperty4TreeRoundTrip(t *testing.T) {
	subtree := MakeLeaf(Singleton(UserControlled))
	tree := AssignTreePath(EmptyTree(), Path{FieldLabel("a"), FieldLabel("b")}, subtree)
	got := RootElement(Read(tree, Path{FieldLabel("a"), FieldLabel("b")}))
	if !got.Equal(Singleton(UserControlled)) {
		t.Fatalf("round trip through assign/read changed the element: got %v", got.Sorted())
	}
}

func TestCollapseJoinsEveryNode(t *testing.T) {
	tree := MakeLeaf(Singleton(TestSource))
	tree = AssignWeakTreePath(tree, Path{FieldLabel("f")}, MakeLeaf(Singleton(UserControlled)))
	tree = AssignWeakTreePath(tree, Path{FieldLabel("f"), FieldLabel("g")}, MakeLeaf(Singleton(RemoteCodeExecution)))
	collapsed := Collapse(tree)
	for _, k := range []Kind{TestSource, UserControlled, RemoteCodeExecution} {
		if !collapsed.Has(k) {
			t.Fatalf("collapse must retain %s from somewhere in the tree", k)
		}
	}
}
