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

// testSinkName and testRCESinkName are the intrinsics §4.E.1 recognizes by
// exact identifier on the callee, in backward mode only.
const (
	testSinkName    = "__testSink"
	testRCESinkName = "__testRCESink"
)

// resolveCallee implements the general callee resolution rules of §4.E.1:
//
//   - a bare Identifier(f)                       -> the callable named f
//   - Access{receiver=Identifier(r), member=m}    -> resolved via the
//     type-resolution collaborator, forward mode only (§6)
//   - any other callee shape                      -> no target
func resolveCallee(forward bool, callee ast.Expression, types TypeResolver, functionName string, programPoint int) (Callable, bool) {
	switch c := callee.(type) {
	case *ast.Identifier:
		return NewCallable(c.Name), true
	case *ast.Access:
		if !forward || types == nil {
			return Callable{}, false
		}
		recv, ok := c.Receiver.(*ast.Identifier)
		if !ok {
			return Callable{}, false
		}
		primitive, ok := types.ResolveReceiverType(functionName, programPoint, recv.Name)
		if !ok {
			return Callable{}, false
		}
		return NewCallable(primitive + "." + c.Member), true
	default:
		return Callable{}, false
	}
}

// intrinsicSinkKind reports whether callee is one of the recognized test
// sink intrinsics, and the sink kind it introduces.
func intrinsicSinkKind(callee ast.Expression) (Kind, bool) {
	id, ok := callee.(*ast.Identifier)
	if !ok {
		return "", false
	}
	switch id.Name {
	case testSinkName:
		return TestSink, true
	case testRCESinkName:
		return RemoteCodeExecution, true
	default:
		return "", false
	}
}
