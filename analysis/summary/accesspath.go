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

import (
	"github.com/awslabs/ar-taint-summaries/analysis/ast"
	"github.com/awslabs/ar-taint-summaries/internal/funcutil"
)

// AccessPath is a root plus a path relative to it, e.g. the syntactic
// location denoted by `x.f.g`.
type AccessPath struct {
	Root Root
	Path Path
}

// ExtractAccessPath normalizes an expression to a Root/Path when it
// syntactically denotes an assignable location, per §4.D:
//
//   - Identifier(x)                -> Some{Variable(x), []}
//   - Access{receiver, member}      -> recurse on receiver, append Field(member)
//   - anything else                 -> None
//
// A failed extraction on an assignment target is a recoverable error per
// §7: the caller drops the assignment rather than guessing an alias.
func ExtractAccessPath(e ast.Expression) funcutil.Optional[AccessPath] {
	switch v := e.(type) {
	case *ast.Identifier:
		return funcutil.Some(AccessPath{Root: VariableRoot(v.Name)})
	case *ast.Access:
		return funcutil.MapOption(ExtractAccessPath(v.Receiver), func(ap AccessPath) AccessPath {
			ap.Path = append(append(Path{}, ap.Path...), FieldLabel(v.Member))
			return ap
		})
	default:
		return funcutil.None[AccessPath]()
	}
}
