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

package ast

import "testing"

const sampleFunction = `{
  "name": "handle",
  "parameters": [{"name": "p"}],
  "body": [
    {"kind": "expr", "line": 1, "value":
      {"kind": "call", "callee": {"kind": "identifier", "name": "__testSink"},
       "args": [{"kind": "access", "receiver": {"kind": "identifier", "name": "p"}, "member": "f"}]}},
    {"kind": "return", "line": 2, "value": {"kind": "identifier", "name": "p"}}
  ]
}`

func TestDecodeFunctionRoundTripsShape(t *testing.T) {
	fn, err := DecodeFunction([]byte(sampleFunction))
	if err != nil {
		t.Fatalf("DecodeFunction returned an error: %v", err)
	}
	if fn.Name != "handle" || len(fn.Parameters) != 1 || fn.Parameters[0].Name != "p" {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body))
	}
	exprStmt, ok := fn.Body[0].(*ExpressionStatement)
	if !ok {
		t.Fatalf("expected an ExpressionStatement, got %T", fn.Body[0])
	}
	call, ok := exprStmt.Value.(*Call)
	if !ok {
		t.Fatalf("expected a Call, got %T", exprStmt.Value)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(call.Args))
	}
	access, ok := call.Args[0].(*Access)
	if !ok || access.Member != "f" {
		t.Fatalf("expected access to .f, got %+v", call.Args[0])
	}
	ret, ok := fn.Body[1].(*Return)
	if !ok {
		t.Fatalf("expected a Return, got %T", fn.Body[1])
	}
	if _, ok := ret.Value.(*Identifier); !ok {
		t.Fatalf("expected return value to be an Identifier, got %T", ret.Value)
	}
}

func TestDecodeFunctionRejectsMissingDiscriminator(t *testing.T) {
	_, err := DecodeFunction([]byte(`{"name":"f","body":[{"line":1}]}`))
	if err == nil {
		t.Fatalf("expected an error for a statement with no kind")
	}
}

func TestDecodeFunctionFallsBackToOpaque(t *testing.T) {
	fn, err := DecodeFunction([]byte(`{
		"name": "f",
		"body": [{"kind": "return", "line": 1, "value": {"kind": "literal"}}]
	}`))
	if err != nil {
		t.Fatalf("DecodeFunction returned an error: %v", err)
	}
	ret := fn.Body[0].(*Return)
	opaque, ok := ret.Value.(*Opaque)
	if !ok || opaque.Kind != "literal" {
		t.Fatalf("expected an Opaque(literal), got %+v", ret.Value)
	}
}
