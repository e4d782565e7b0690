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

import "github.com/awslabs/ar-taint-summaries/analysis/ast"

// BackwardTransfer implements the backward (sink/TITO-propagation) transfer
// functions of §4.E. It runs over the CFG from exit to entry; the state it
// threads holds the sinks reachable from each location.
type BackwardTransfer struct {
	Store        Store
	FunctionName string
	Logger       *Logger
}

// AnalyzeExpression pushes incoming (the taint flowing into e from its use
// site) through e per §4.E, returning the updated state.
func (b *BackwardTransfer) AnalyzeExpression(incoming *Tree, e ast.Expression, state State, programPoint int) State {
	switch v := e.(type) {
	case *ast.Identifier:
		return state.AssignWeak(VariableRoot(v.Name), nil, incoming)
	case *ast.Access:
		wrapped := AssignTreePath(EmptyTree(), Path{FieldLabel(v.Member)}, incoming)
		return b.AnalyzeExpression(wrapped, v.Receiver, state, programPoint)
	case *ast.Call:
		return b.call(incoming, v, state, programPoint)
	default:
		return state
	}
}

func (b *BackwardTransfer) call(incoming *Tree, call *ast.Call, state State, programPoint int) State {
	if kind, ok := intrinsicSinkKind(call.Callee); ok {
		sink := MakeLeaf(Singleton(kind))
		for _, arg := range call.Args {
			state = b.AnalyzeExpression(sink, arg, state, programPoint)
		}
		return state
	}

	// Type resolution is a forward-only collaborator (§6): a method call
	// through Access{receiver, member} never resolves to a target here.
	target, ok := resolveCallee(false, call.Callee, nil, b.FunctionName, programPoint)
	var model Summary
	resolved := false
	if ok {
		if m, found := b.Store.GetModel(target); found {
			model, resolved = m, true
		} else {
			b.Logger.log("backward: no model for callable " + target.String())
		}
	} else {
		b.Logger.log("backward: could not resolve callee shape")
	}

	for i, arg := range call.Args {
		var argTaint *Tree
		if resolved {
			sinkTaint := model.Backward.SinkTaint.Get(ParameterRoot(i))
			titoShape := model.Backward.TaintInTaintOut.Get(ParameterRoot(i))
			collapsedIncoming := Collapse(incoming)
			titoAdjusted := FilterMapTree(titoShape, func(Set) Set { return collapsedIncoming })
			argTaint = JoinTrees(sinkTaint, titoAdjusted)
		} else {
			// Default policy (§4.E.1): every argument receives the
			// incoming call taint unchanged.
			argTaint = incoming
		}
		state = b.AnalyzeExpression(argTaint, arg, state, programPoint)
	}

	// In both modes the receiver of a method call is analyzed with the
	// incoming taint after arguments are handled; taint never descends
	// under the method name itself (§4.E.1).
	if access, ok := call.Callee.(*ast.Access); ok {
		state = b.AnalyzeExpression(incoming, access.Receiver, state, programPoint)
	}
	return state
}

// Statement applies the backward transfer for one statement, per §4.E.
func (b *BackwardTransfer) Statement(stmt ast.Statement, state State) (State, error) {
	switch s := stmt.(type) {
	case *ast.Assign:
		ap := ExtractAccessPath(s.Target)
		var t *Tree
		if ap.IsSome() {
			t = state.ReadAccessPath(ap.Value().Root, ap.Value().Path)
		}
		return b.AnalyzeExpression(t, s.Value, state, s.Line), nil
	case *ast.Return:
		if s.Value == nil {
			return state, nil
		}
		t := state.ReadAccessPath(LocalResultRoot, nil)
		return b.AnalyzeExpression(t, s.Value, state, s.Line), nil
	case *ast.ExpressionStatement:
		return b.AnalyzeExpression(EmptyTree(), s.Value, state, s.Line), nil
	case *ast.Define:
		return state, errNestedDefine(s.Name)
	default:
		return state, nil
	}
}
