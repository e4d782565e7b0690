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

// FatalError aborts the analysis of the current function and surfaces to
// the caller of run_forward/run_backward, per §7. The only case this core
// constructs one for is a nested function definition (errNestedDefine);
// ForwardTransfer and BackwardTransfer are distinct types, each wired to its
// own fixpoint, so no transfer runs in the other direction.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string { return "taint analysis: " + e.Reason }

func errNestedDefine(name string) error {
	return &FatalError{Reason: fmt.Sprintf("nested define %q not supported", name)}
}

// Recoverable describes a condition that §7 says must never abort analysis:
// a model-store miss, an unresolved callee shape, or a failed access-path
// extraction on an assignment target. Transfer functions never return these
// as errors; instead they fall back to the documented default ("empty /
// none / default policy") and report the condition through a Logger so a
// caller that wants visibility can get it without the control-flow cost of
// an error return on the hot path.
type Recoverable struct {
	Reason string
}

func (r Recoverable) String() string { return r.Reason }

// Logger receives recoverable conditions encountered during one run. A nil
// Logger is valid and silently drops them, which is why transfer functions
// take a *Logger (see fixpoint.go) rather than requiring every caller to
// supply one.
type Logger struct {
	Record func(Recoverable)
}

func (l *Logger) log(reason string) {
	if l == nil || l.Record == nil {
		return
	}
	l.Record(Recoverable{Reason: reason})
}
