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

// Package clitools holds the flag-parsing helpers shared by taintsum's
// command-line frontend.
package clitools

import (
	"flag"
	"fmt"
	"os"

	"github.com/awslabs/ar-taint-summaries/analysis/config"
)

// CommonFlags are the flags every taintsum invocation accepts.
type CommonFlags struct {
	FlagSet    *flag.FlagSet
	ConfigPath string
	Verbose    bool
	RenderDot  bool
}

// NewCommonFlags parses args into a CommonFlags, printing cmdUsage on -h.
func NewCommonFlags(name string, args []string, cmdUsage string) (CommonFlags, error) {
	cmd := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := cmd.String("config", "", "config file path for analysis")
	verbose := cmd.Bool("verbose", false, "verbose printing on standard output")
	renderDot := cmd.Bool("dot", false, "render the summary as GraphViz DOT instead of text")
	SetUsage(cmd, cmdUsage)
	if err := cmd.Parse(args); err != nil {
		return CommonFlags{}, fmt.Errorf("failed to parse flags: %w", err)
	}
	return CommonFlags{
		FlagSet:    cmd,
		ConfigPath: *configPath,
		Verbose:    *verbose,
		RenderDot:  *renderDot,
	}, nil
}

// SetUsage sets cmd's -h output to cmdUsage followed by each flag's doc.
func SetUsage(cmd *flag.FlagSet, cmdUsage string) {
	cmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", cmdUsage)
		fmt.Fprintf(os.Stderr, "Options:\n")
		cmd.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(os.Stderr, "  -%s: %s (default: %q)\n", f.Name, f.Usage, f.DefValue)
		})
	}
}

// LoadConfig loads the config file at configPath, or an empty default
// config if configPath is "".
func LoadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.NewDefault(), nil
	}
	config.SetGlobalConfig(configPath)
	cfg, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	return cfg, nil
}
