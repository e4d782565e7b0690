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

// Label names one step of an access path. Field is the only materialized
// label in this core; Any is reserved for a future wildcard label and is
// never produced by access-path extraction (§4.D).
type Label struct {
	field string
	any   bool
}

// FieldLabel returns the label for attribute access `.name`.
func FieldLabel(name string) Label { return Label{field: name} }

// AnyLabel is the reserved wildcard label. Not materialized by this core.
var AnyLabel = Label{any: true}

func (l Label) String() string {
	if l.any {
		return "[*]"
	}
	return "." + l.field
}

// Path is an ordered sequence of labels, e.g. x.f.g is the path
// [FieldLabel("f"), FieldLabel("g")] relative to root x.
type Path []Label

// defaultWideningIterationThreshold (K) and defaultWideningDepthBound (D)
// implement the widening policy recommended in §4.B: after a node has been
// revisited K times, further widening collapses everything deeper than D
// into its ancestor at depth D. Both are overridable per analysis run
// through WideningPolicy so the fixpoint driver (package summary, see
// fixpoint.go) can surface them as configuration.
const (
	defaultWideningIterationThreshold = 3
	defaultWideningDepthBound         = 4
)

// WideningPolicy bounds how aggressively Tree.Widen collapses structure.
type WideningPolicy struct {
	IterationThreshold int
	DepthBound         int
}

// DefaultWideningPolicy returns the policy recommended in §4.B.
func DefaultWideningPolicy() WideningPolicy {
	return WideningPolicy{
		IterationThreshold: defaultWideningIterationThreshold,
		DepthBound:         defaultWideningDepthBound,
	}
}

// Tree is the access-path tree TaintTree<E> of §3/§4.B: a prefix tree whose
// nodes each carry a Set. The taint at path p is the join of the elements
// stored on every node along p from the root. A nil *Tree is a valid empty
// (bottom) tree, so the zero value of the type works everywhere a fresh
// empty tree is needed.
type Tree struct {
	element  Set
	children map[Label]*Tree
}

// EmptyTree is the bottom tree.
func EmptyTree() *Tree { return nil }

// MakeLeaf returns a tree with only a root element and no children.
func MakeLeaf(element Set) *Tree {
	if element.IsEmpty() {
		return nil
	}
	return &Tree{element: element}
}

// IsEmptyTree reports whether t is bottom: no element anywhere in the tree.
func IsEmptyTree(t *Tree) bool {
	if t == nil {
		return true
	}
	if !t.element.IsEmpty() {
		return false
	}
	for _, c := range t.children {
		if !IsEmptyTree(c) {
			return false
		}
	}
	return true
}

// RootElement returns the element stored exactly at the root of t (not
// joined with anything below it).
func RootElement(t *Tree) Set {
	if t == nil {
		return EmptySet()
	}
	return t.element
}

// Children returns the direct children of t, keyed by label. Used by
// diagnostics and rendering; the fixpoint engine never needs it.
func Children(t *Tree) map[Label]*Tree {
	if t == nil {
		return nil
	}
	return t.children
}

func (t *Tree) clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{element: t.element}
	if len(t.children) > 0 {
		out.children = make(map[Label]*Tree, len(t.children))
		for l, c := range t.children {
			out.children[l] = c
		}
	}
	return out
}

func (t *Tree) child(l Label) *Tree {
	if t == nil {
		return nil
	}
	return t.children[l]
}

// Read returns the subtree rooted at path, with the taint accumulated along
// every ancestor of path joined onto the returned root. This is what lets a
// read at a shallow path see taint assigned deep below a common prefix and,
// symmetrically, a read at a deep path see taint assigned on a shallow
// ancestor.
func Read(t *Tree, path Path) *Tree {
	acc := EmptySet()
	cur := t
	for _, l := range path {
		acc = acc.Join(RootElement(cur))
		cur = cur.child(l)
	}
	if acc.IsEmpty() {
		return cur
	}
	out := cur.clone()
	if out == nil {
		out = &Tree{}
	}
	out.element = out.element.Join(acc)
	return out
}

// AssignTreePath places subtree into tree at path, replacing anything that
// was there before (strong update). A nil subtree clears path.
func AssignTreePath(tree *Tree, path Path, subtree *Tree) *Tree {
	if len(path) == 0 {
		return subtree.clone()
	}
	root := tree.clone()
	if root == nil {
		root = &Tree{}
	}
	if root.children == nil {
		root.children = map[Label]*Tree{}
	}
	l := path[0]
	root.children[l] = AssignTreePath(root.children[l], path[1:], subtree)
	if IsEmptyTree(root) {
		return nil
	}
	return root
}

// AssignWeakTreePath joins subtree into the existing subtree at path instead
// of replacing it (monotone weak update).
func AssignWeakTreePath(tree *Tree, path Path, subtree *Tree) *Tree {
	if len(path) == 0 {
		return JoinTrees(tree, subtree)
	}
	root := tree.clone()
	if root == nil {
		root = &Tree{}
	}
	if root.children == nil {
		root.children = map[Label]*Tree{}
	}
	l := path[0]
	root.children[l] = AssignWeakTreePath(root.children[l], path[1:], subtree)
	return root
}

// JoinTrees computes the pointwise lattice join of a and b.
func JoinTrees(a, b *Tree) *Tree {
	if IsEmptyTree(a) {
		return b
	}
	if IsEmptyTree(b) {
		return a
	}
	out := &Tree{element: a.element.Join(b.element)}
	if len(a.children) > 0 || len(b.children) > 0 {
		out.children = map[Label]*Tree{}
		for l, c := range a.children {
			out.children[l] = c
		}
		for l, c := range b.children {
			out.children[l] = JoinTrees(out.children[l], c)
		}
	}
	return out
}

// TreeLessOrEqual reports whether a is below b in the lattice order:
// a's element is a subset of b's at every path.
func TreeLessOrEqual(a, b *Tree) bool {
	if IsEmptyTree(a) {
		return true
	}
	if !a.element.LessOrEqual(RootElement(b)) {
		return false
	}
	for l, c := range a.children {
		if !TreeLessOrEqual(c, b.child(l)) {
			return false
		}
	}
	return true
}

// Collapse joins every node in t into a single top-level element, dropping
// all structure below the root. Used both by the widening policy and by the
// call-handling rule that collapses an incoming call's taint onto a leaf
// (§4.E.1).
func Collapse(t *Tree) Set {
	if t == nil {
		return EmptySet()
	}
	out := t.element
	for _, c := range t.children {
		out = out.Join(Collapse(c))
	}
	return out
}

// FilterMapTree applies f to the element of every node in t, preserving
// structure.
func FilterMapTree(t *Tree, f func(Set) Set) *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{element: f(t.element)}
	if len(t.children) > 0 {
		out.children = make(map[Label]*Tree, len(t.children))
		for l, c := range t.children {
			out.children[l] = FilterMapTree(c, f)
		}
	}
	if IsEmptyTree(out) {
		return nil
	}
	return out
}

// collapseBeyondDepth collapses every subtree whose root is strictly deeper
// than bound into its ancestor at that bound, implementing the "over-
// approximate by collapsing path depth" requirement on Widen.
func collapseBeyondDepth(t *Tree, bound int) *Tree {
	if t == nil {
		return nil
	}
	if bound <= 0 {
		return MakeLeaf(Collapse(t))
	}
	out := &Tree{element: t.element}
	if len(t.children) > 0 {
		out.children = make(map[Label]*Tree, len(t.children))
		for l, c := range t.children {
			out.children[l] = collapseBeyondDepth(c, bound-1)
		}
	}
	return out
}

// WidenTree computes the widening of the ascending chain element (the
// previous widened value prev) with the new iterate next, at the given
// iteration count. Below the policy's IterationThreshold this is just the
// join; at or beyond it, the joined tree is additionally collapsed past
// DepthBound, which bounds tree depth and guarantees the ascending chain of
// widened values itself stabilizes (Testable Property 3, §8).
func WidenTree(prev, next *Tree, iteration int, policy WideningPolicy) *Tree {
	joined := JoinTrees(prev, next)
	if iteration >= policy.IterationThreshold {
		joined = collapseBeyondDepth(joined, policy.DepthBound)
	}
	return joined
}
