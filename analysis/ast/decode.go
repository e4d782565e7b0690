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

import (
	"encoding/json"
	"fmt"
)

// DecodeFunction parses the JSON front-end representation of a Function.
// This is the wire format a concrete front-end (out of scope for this core,
// see the package doc) would emit: a "kind" discriminator on every
// expression and statement node selects which Go type to decode into.
func DecodeFunction(data []byte) (*Function, error) {
	var raw rawFunction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not decode function: %w", err)
	}
	body, err := decodeStatements(raw.Body)
	if err != nil {
		return nil, fmt.Errorf("could not decode function %q: %w", raw.Name, err)
	}
	return &Function{Name: raw.Name, Parameters: raw.Parameters, Body: body}, nil
}

type rawFunction struct {
	Name       string         `json:"name"`
	Parameters []Parameter    `json:"parameters"`
	Body       []rawStatement `json:"body"`
}

type rawStatement struct {
	Kind   string          `json:"kind"`
	Line   int             `json:"line"`
	Target json.RawMessage `json:"target,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
	Name   string          `json:"name,omitempty"`
}

type rawExpression struct {
	Kind     string          `json:"kind"`
	Name     string          `json:"name,omitempty"`
	Receiver json.RawMessage `json:"receiver,omitempty"`
	Member   string          `json:"member,omitempty"`
	Callee   json.RawMessage `json:"callee,omitempty"`
	Args     []json.RawMessage `json:"args,omitempty"`
}

func decodeStatements(raws []rawStatement) ([]Statement, error) {
	out := make([]Statement, 0, len(raws))
	for _, r := range raws {
		stmt, err := decodeStatement(r)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func decodeStatement(r rawStatement) (Statement, error) {
	switch r.Kind {
	case "assign":
		target, err := decodeExpression(r.Target)
		if err != nil {
			return nil, fmt.Errorf("assign target: %w", err)
		}
		value, err := decodeExpression(r.Value)
		if err != nil {
			return nil, fmt.Errorf("assign value: %w", err)
		}
		return &Assign{Target: target, Value: value, Line: r.Line}, nil
	case "return":
		if len(r.Value) == 0 {
			return &Return{Line: r.Line}, nil
		}
		value, err := decodeExpression(r.Value)
		if err != nil {
			return nil, fmt.Errorf("return value: %w", err)
		}
		return &Return{Value: value, Line: r.Line}, nil
	case "expr":
		value, err := decodeExpression(r.Value)
		if err != nil {
			return nil, fmt.Errorf("expression statement: %w", err)
		}
		return &ExpressionStatement{Value: value, Line: r.Line}, nil
	case "define":
		return &Define{Name: r.Name, Line: r.Line}, nil
	case "":
		return nil, fmt.Errorf("statement missing a kind discriminator")
	default:
		return &Other{Kind: r.Kind, Line: r.Line}, nil
	}
}

func decodeExpression(data json.RawMessage) (Expression, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	var r rawExpression
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("could not decode expression: %w", err)
	}
	switch r.Kind {
	case "identifier":
		return &Identifier{Name: r.Name}, nil
	case "access":
		receiver, err := decodeExpression(r.Receiver)
		if err != nil {
			return nil, fmt.Errorf("access receiver: %w", err)
		}
		return &Access{Receiver: receiver, Member: r.Member}, nil
	case "call":
		callee, err := decodeExpression(r.Callee)
		if err != nil {
			return nil, fmt.Errorf("call callee: %w", err)
		}
		args := make([]Expression, 0, len(r.Args))
		for i, a := range r.Args {
			arg, err := decodeExpression(a)
			if err != nil {
				return nil, fmt.Errorf("call argument %d: %w", i, err)
			}
			args = append(args, arg)
		}
		return &Call{Callee: callee, Args: args}, nil
	case "":
		return nil, fmt.Errorf("expression missing a kind discriminator")
	default:
		return &Opaque{Kind: r.Kind}, nil
	}
}
