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

// State is a mapping from Root to Tree: the per-function abstract state the
// fixpoint engine threads through transfer functions (§3/§4.C). A missing
// root is bottom. State is immutable by convention: every operation returns
// a new State, which keeps join/widen at block merges (package fixpoint.go)
// free of aliasing surprises between the states of different predecessors.
type State struct {
	roots map[Root]*Tree
}

// EmptyState is the bottom state: every root maps to the empty tree.
func EmptyState() State { return State{} }

// Get returns the tree at root, or the empty tree if root is absent.
func (s State) Get(root Root) *Tree {
	if s.roots == nil {
		return nil
	}
	return s.roots[root]
}

// with returns a copy of s with root set to t.
func (s State) with(root Root, t *Tree) State {
	out := State{roots: make(map[Root]*Tree, len(s.roots)+1)}
	for r, tr := range s.roots {
		out.roots[r] = tr
	}
	if IsEmptyTree(t) {
		delete(out.roots, root)
	} else {
		out.roots[root] = t
	}
	return out
}

// Assign performs a strong update: the tree at root's path is replaced by
// subtree.
func (s State) Assign(root Root, path Path, subtree *Tree) State {
	return s.with(root, AssignTreePath(s.Get(root), path, subtree))
}

// AssignWeak performs a weak update: subtree is joined into whatever is
// already at root's path.
func (s State) AssignWeak(root Root, path Path, subtree *Tree) State {
	return s.with(root, AssignWeakTreePath(s.Get(root), path, subtree))
}

// ReadAccessPath reads the subtree at root's path, with ancestor taint
// accumulated per Tree.Read.
func (s State) ReadAccessPath(root Root, path Path) *Tree {
	return Read(s.Get(root), path)
}

// Join computes the pointwise lattice join of s and other.
func (s State) Join(other State) State {
	out := State{roots: map[Root]*Tree{}}
	for r, t := range s.roots {
		out.roots[r] = t
	}
	for r, t := range other.roots {
		joined := JoinTrees(out.roots[r], t)
		if IsEmptyTree(joined) {
			delete(out.roots, r)
		} else {
			out.roots[r] = joined
		}
	}
	return out
}

// LessOrEqual reports whether s is below other in the lattice order.
func (s State) LessOrEqual(other State) bool {
	for r, t := range s.roots {
		if !TreeLessOrEqual(t, other.Get(r)) {
			return false
		}
	}
	return true
}

// Widen computes the widening of the ascending chain element s (the
// previous widened value) against next, at the given iteration, lifting
// Tree.Widen pointwise across every root.
func (s State) Widen(next State, iteration int, policy WideningPolicy) State {
	out := State{roots: map[Root]*Tree{}}
	for r, t := range s.roots {
		out.roots[r] = t
	}
	for r := range next.roots {
		if _, ok := out.roots[r]; !ok {
			out.roots[r] = nil
		}
	}
	for r, t := range out.roots {
		widened := WidenTree(t, next.Get(r), iteration, policy)
		if IsEmptyTree(widened) {
			delete(out.roots, r)
		} else {
			out.roots[r] = widened
		}
	}
	return out
}

// Equal reports whether s and other assign the same taint to every root.
func (s State) Equal(other State) bool {
	return s.LessOrEqual(other) && other.LessOrEqual(s)
}

// Roots returns every root with non-bottom taint in s. Used by rendering and
// the CLI report; the fixpoint engine never iterates this.
func (s State) Roots() map[Root]*Tree {
	return s.roots
}
