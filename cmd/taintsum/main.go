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

// Command taintsum computes the forward and backward taint summaries of a
// single function and prints them, or renders them as GraphViz DOT.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/awslabs/ar-taint-summaries/cmd/taintsum/internal/run"
)

func main() {
	flags, err := run.NewFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := log.New(os.Stdout, "", log.Flags())
	if err := run.Run(flags, logger); err != nil {
		logger.Printf("taintsum: %v", err)
		os.Exit(1)
	}
}
