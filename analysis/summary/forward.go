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

// ForwardTransfer implements the forward (source-propagation) transfer
// functions of §4.E. The state it threads holds the sources that may reach
// each location.
type ForwardTransfer struct {
	Store        Store
	Types        TypeResolver
	FunctionName string
	Logger       *Logger
}

// AnalyzeExpression computes the taint tree an expression evaluates to
// under state, per §4.E. Expression shapes not listed explicitly (Opaque)
// are a deliberate under-approximation to empty taint (§7, §9).
func (f *ForwardTransfer) AnalyzeExpression(e ast.Expression, state State, programPoint int) *Tree {
	switch v := e.(type) {
	case *ast.Access:
		t := f.AnalyzeExpression(v.Receiver, state, programPoint)
		return AssignTreePath(EmptyTree(), Path{FieldLabel(v.Member)}, t)
	case *ast.Identifier:
		return state.ReadAccessPath(VariableRoot(v.Name), nil)
	case *ast.Call:
		return f.call(v, state, programPoint)
	default:
		return EmptyTree()
	}
}

func (f *ForwardTransfer) call(call *ast.Call, state State, programPoint int) *Tree {
	result := EmptyTree()
	target, ok := resolveCallee(true, call.Callee, f.Types, f.FunctionName, programPoint)
	resolved := false
	if ok {
		if model, found := f.Store.GetModel(target); found {
			result = model.Forward.SourceTaint
			resolved = true
		} else {
			f.Logger.log("forward: no model for callable " + target.String())
		}
	} else {
		f.Logger.log("forward: could not resolve callee shape")
	}
	if !resolved {
		// Default propagation policy (§4.E.1): the result is the join of
		// every argument's taint. Per the open question in §9, this
		// deliberately does not re-analyze arguments for side-effecting
		// taint when a model IS present; that asymmetry is preserved here.
		for _, arg := range call.Args {
			result = JoinTrees(result, f.AnalyzeExpression(arg, state, programPoint))
		}
	}
	// The receiver of a method call is still visited when present, purely
	// so that any nested call inside it (e.g. another unresolved callee)
	// is reported through the logger; its value is never used because
	// forward expression evaluation has no side effects on state.
	if access, ok := call.Callee.(*ast.Access); ok {
		f.AnalyzeExpression(access.Receiver, state, programPoint)
	}
	return result
}

// Statement applies the forward transfer for one statement, per §4.E.
func (f *ForwardTransfer) Statement(stmt ast.Statement, state State) (State, error) {
	switch s := stmt.(type) {
	case *ast.Assign:
		t := f.AnalyzeExpression(s.Value, state, s.Line)
		ap := ExtractAccessPath(s.Target)
		if ap.IsNone() {
			f.Logger.log("forward: assignment target is not an access path, dropping")
			return state, nil
		}
		return state.Assign(ap.Value().Root, ap.Value().Path, t), nil
	case *ast.Return:
		if s.Value == nil {
			return state, nil
		}
		t := f.AnalyzeExpression(s.Value, state, s.Line)
		return state.Assign(LocalResultRoot, nil, t), nil
	case *ast.Define:
		return state, errNestedDefine(s.Name)
	default:
		return state, nil
	}
}
