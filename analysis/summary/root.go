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

import "fmt"

// Root partitions the State: every access path is rooted at exactly one of
// a local variable, a formal parameter, or the function's result. Roots are
// never aliased to one another (§3): this core has no pointer or reference
// model beyond syntactic access paths.
type Root struct {
	kind rootKind
	name string // set when kind == rootVariable
	pos  int    // set when kind == rootParameter
}

type rootKind int

const (
	rootLocalResult rootKind = iota
	rootParameter
	rootVariable
)

// LocalResultRoot is the root under which a function's return value taint
// is recorded.
var LocalResultRoot = Root{kind: rootLocalResult}

// ParameterRoot returns the root for the formal parameter at position.
func ParameterRoot(position int) Root { return Root{kind: rootParameter, pos: position} }

// VariableRoot returns the root for the local variable named name.
func VariableRoot(name string) Root { return Root{kind: rootVariable, name: name} }

// IsParameter reports whether r is a Parameter root, and if so at which
// position.
func (r Root) IsParameter() (position int, ok bool) {
	if r.kind == rootParameter {
		return r.pos, true
	}
	return 0, false
}

// IsLocalResult reports whether r is the LocalResult root.
func (r Root) IsLocalResult() bool { return r.kind == rootLocalResult }

func (r Root) String() string {
	switch r.kind {
	case rootLocalResult:
		return "LocalResult"
	case rootParameter:
		return fmt.Sprintf("Parameter{%d}", r.pos)
	default:
		return fmt.Sprintf("Variable(%s)", r.name)
	}
}
