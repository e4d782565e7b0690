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

import "github.com/awslabs/ar-taint-summaries/internal/funcutil"

// Kind identifies one taint source or sink. The two domains never mix: a
// Kind tagged as a source never appears in a BackwardTaint set and vice
// versa. Both sets are open for extension by configuration (see
// analysis/config), which is why Kind is a plain string rather than a small
// closed enum.
type Kind string

// Built-in source kinds.
const (
	TestSource    Kind = "TestSource"
	UserControlled Kind = "UserControlled"
)

// Built-in sink kinds. LocalReturn is not a "real" sink: it is the sentinel
// used to mark that a value flows into the function's return, which is how
// model extraction recovers taint-in-taint-out (§4.G).
const (
	LocalReturn         Kind = "LocalReturn"
	TestSink            Kind = "TestSink"
	RemoteCodeExecution Kind = "RemoteCodeExecution"
)

// Set is a finite set of Kinds: the lattice element attached to every node
// of a TaintTree. Bottom is the empty set, join is union, and less-or-equal
// is subset. A Set is used either as a ForwardTaint (kinds drawn from the
// source domain) or a BackwardTaint (kinds drawn from the sink domain);
// nothing in the type itself enforces that split, callers must not mix them.
type Set map[Kind]bool

// EmptySet is the bottom element of the Set lattice.
func EmptySet() Set { return nil }

// Singleton returns a Set containing exactly kind.
func Singleton(kind Kind) Set { return Set{kind: true} }

// IsEmpty reports whether s is bottom. A nil map and an allocated-but-empty
// map are both treated as bottom.
func (s Set) IsEmpty() bool { return len(s) == 0 }

// Add returns a new set containing every kind in s plus kind.
func (s Set) Add(kind Kind) Set {
	out := s.clone()
	out[kind] = true
	return out
}

// Has reports whether kind is in s.
func (s Set) Has(kind Kind) bool { return s[kind] }

// Join computes the set union of s and other, the lattice join.
func (s Set) Join(other Set) Set {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}
	out := s.clone()
	funcutil.Union(out, other)
	return out
}

// LessOrEqual reports whether s is a subset of other, the lattice order.
func (s Set) LessOrEqual(other Set) bool {
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Filter returns the subset of s for which predicate holds.
func (s Set) Filter(predicate func(Kind) bool) Set {
	var out Set
	for k := range s {
		if predicate(k) {
			if out == nil {
				out = Set{}
			}
			out[k] = true
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same kinds.
func (s Set) Equal(other Set) bool {
	return s.LessOrEqual(other) && other.LessOrEqual(s)
}

// Sorted returns the kinds in s in a deterministic (lexicographic) order,
// useful for printing and for tests that compare against a fixed shape.
func (s Set) Sorted() []Kind {
	m := make(map[Kind]bool, len(s))
	for k, v := range s {
		m[k] = v
	}
	return funcutil.SetToOrderedSlice(m)
}

func (s Set) clone() Set {
	out := make(Set, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}
