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

import "strconv"

// TypeResolver is the type-resolution store of §6: given the function being
// analyzed, a program point within it, and the name of a receiver variable,
// it answers what nominal type the receiver has at that point, if known.
// Per §6 this collaborator is consulted only by forward-mode call
// resolution; a backward call through a method receiver never has a
// resolvable target in this core.
type TypeResolver interface {
	ResolveReceiverType(functionName string, programPoint int, receiverName string) (primitiveType string, ok bool)
}

// MapTypeResolver is a minimal TypeResolver backed by a flat map, keyed by
// "functionName@programPoint@receiverName". It is good enough for tests and
// for driving the analysis without a full type checker attached.
type MapTypeResolver map[string]string

// Key formats the lookup key MapTypeResolver uses.
func (MapTypeResolver) Key(functionName string, programPoint int, receiverName string) string {
	return functionName + "@" + strconv.Itoa(programPoint) + "@" + receiverName
}

// ResolveReceiverType implements TypeResolver.
func (m MapTypeResolver) ResolveReceiverType(functionName string, programPoint int, receiverName string) (string, bool) {
	t, ok := m[m.Key(functionName, programPoint, receiverName)]
	return t, ok
}
