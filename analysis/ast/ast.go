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

// Package ast defines the tagged-variant expression and statement trees that
// the taint core consumes. The front-end parser that produces these trees for
// a concrete source language is an external collaborator; this package only
// fixes the shapes the transfer functions in package summary know how to
// interpret.
package ast

// Expression is implemented by every expression node the core can appear in
// program text. Unhandled shapes (comprehensions, lambdas, ...) still
// implement Expression so they can be passed to the transfer functions, which
// treat them as opaque.
type Expression interface {
	expressionNode()
}

// Identifier is a bare name reference, e.g. `x`.
type Identifier struct {
	Name string
}

func (*Identifier) expressionNode() {}

// Access is a member/attribute access, e.g. `x.f`.
type Access struct {
	Receiver Expression
	Member   string
}

func (*Access) expressionNode() {}

// Call is a function or method call `callee(args...)`.
type Call struct {
	Callee Expression
	Args   []Expression
}

func (*Call) expressionNode() {}

// Opaque covers every expression shape this analysis under-approximates to
// empty taint: literals, comprehensions, lambdas, comparisons, await, yield,
// starred expressions, ternaries, tuples, lists, sets, dicts, unary/boolean/
// complex operators, and ellipses. Kind records which one, purely for
// diagnostics; the transfer functions never switch on it.
type Opaque struct {
	Kind string
}

func (*Opaque) expressionNode() {}

// Statement is implemented by every statement node.
type Statement interface {
	statementNode()
	Pos() int
}

// Assign is `target = value`.
type Assign struct {
	Target Expression
	Value  Expression
	Line   int
}

func (*Assign) statementNode() {}
func (s *Assign) Pos() int     { return s.Line }

// Return is `return expr` or bare `return`.
type Return struct {
	Value Expression // nil for a bare return
	Line  int
}

func (*Return) statementNode() {}
func (s *Return) Pos() int     { return s.Line }

// ExpressionStatement is a bare expression used for its side effects, e.g. a
// call that is not assigned or returned.
type ExpressionStatement struct {
	Value Expression
	Line  int
}

func (*ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) Pos() int     { return s.Line }

// Define is a nested function definition. Analyzing one is a fatal error
// (see §7 of the design): this core does not support nested defines.
type Define struct {
	Name string
	Line int
}

func (*Define) statementNode() {}
func (s *Define) Pos() int     { return s.Line }

// Other is a catch-all for every statement shape that is an identity
// transfer in both directions: Assert, Break, Class, Continue, Delete, For,
// Global, If, Import, Nonlocal, Pass, Raise, Try, With, While, Yield, and
// YieldFrom. A bare return is a Return with a nil Value, not an Other. Kind
// records which one purely for diagnostics.
type Other struct {
	Kind string
	Line int
}

func (*Other) statementNode() {}
func (s *Other) Pos() int     { return s.Line }

// Parameter describes one formal parameter of a function definition, in
// declaration order.
type Parameter struct {
	Name string
}

// Function is the definition under analysis: a name, its formal parameters
// in declaration order, and its body. This is distinct from the Define
// statement shape above, which marks a *nested* definition encountered while
// analyzing a Function's body.
type Function struct {
	Name       string
	Parameters []Parameter
	Body       []Statement
}
