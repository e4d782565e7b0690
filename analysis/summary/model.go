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

// Callable is an opaque identity for a function, constructed from its
// fully-qualified access path. Resolving a callee expression to a Callable
// is the job of the external collaborators named in §6 (type resolution for
// method calls, plain name lookup for bare calls); this core only consumes
// the result.
type Callable struct {
	qualifiedName string
}

// NewCallable constructs the identity for a fully-qualified function or
// method name, e.g. "pkg.Type.method" or "pkg.function".
func NewCallable(qualifiedName string) Callable {
	return Callable{qualifiedName: qualifiedName}
}

func (c Callable) String() string { return c.qualifiedName }

// ForwardModel is a function's source summary: which sources may reach its
// return value.
type ForwardModel struct {
	SourceTaint *Tree
}

// BackwardModel is a function's sink/TITO summary, one entry per formal
// parameter position. SinkTaint holds "real" sinks (LocalReturn filtered
// out); TaintInTaintOut holds only the LocalReturn marker, i.e. which parts
// of each parameter propagate unchanged to the return value.
type BackwardModel struct {
	SinkTaint       State
	TaintInTaintOut State
}

// Summary is a function's complete model: both directions' projections of
// its fixed-point state.
type Summary struct {
	Forward  ForwardModel
	Backward BackwardModel
}

// Store is the callee-model lookup adapter of §4.H: it reads the shared
// interprocedural model store for a callable's current summary. The store
// is treated as a read-only snapshot for the duration of one function's
// fixed-point computation (§5); the outer interprocedural driver, not this
// core, controls when and how summaries are updated between runs.
type Store interface {
	GetModel(c Callable) (Summary, bool)
}

// MapStore is a minimal in-memory Store, useful for tests and for driving
// the analysis outside of a full interprocedural fixed-point loop.
type MapStore struct {
	models map[Callable]Summary
}

// NewMapStore returns an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{models: map[Callable]Summary{}}
}

// GetModel implements Store.
func (s *MapStore) GetModel(c Callable) (Summary, bool) {
	m, ok := s.models[c]
	return m, ok
}

// SetModel records c's summary, overwriting any previous one.
func (s *MapStore) SetModel(c Callable, m Summary) {
	s.models[c] = m
}

// isRealSink reports whether kind is a sink that should appear in
// sink_taint rather than being folded into taint_in_taint_out.
func isRealSink(k Kind) bool { return k != LocalReturn }

// ExtractForwardModel projects a forward fixed-point's exit state into a
// ForwardModel per §4.G: the exit state's LocalResult tree is the source
// taint. Every other root is discarded, since nothing outside the return
// value is observable to a caller.
func ExtractForwardModel(exitState State) ForwardModel {
	return ForwardModel{SourceTaint: exitState.Get(LocalResultRoot)}
}

// ExtractBackwardModel projects a backward fixed-point's entry state into a
// BackwardModel per §4.G. For each formal parameter (0-indexed, named by
// paramNames), the tree at Variable(name) is partitioned by kind at every
// node: the LocalReturn kind goes to taint_in_taint_out, every other kind to
// sink_taint, both re-rooted under Parameter{i}. The entry state indexes
// parameters by Variable(name) because that is the root the backward
// expression rules assign into (§4.E); extraction is what translates that
// into the Parameter-indexed shape a caller's model store expects.
func ExtractBackwardModel(entryState State, paramNames []string) BackwardModel {
	sinkTaint := EmptyState()
	tito := EmptyState()
	for i, name := range paramNames {
		t := entryState.Get(VariableRoot(name))
		titoTree := FilterMapTree(t, func(s Set) Set { return s.Filter(func(k Kind) bool { return k == LocalReturn }) })
		sinkTree := FilterMapTree(t, func(s Set) Set { return s.Filter(isRealSink) })
		if !IsEmptyTree(titoTree) {
			tito = tito.Assign(ParameterRoot(i), nil, titoTree)
		}
		if !IsEmptyTree(sinkTree) {
			sinkTaint = sinkTaint.Assign(ParameterRoot(i), nil, sinkTree)
		}
	}
	return BackwardModel{SinkTaint: sinkTaint, TaintInTaintOut: tito}
}
