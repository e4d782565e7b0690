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

// Package config loads the yaml configuration that drives one run of the
// taint summary tool: which additional source/sink kinds to recognize by
// name pattern, the widening policy, and logging verbosity. The core
// (package summary) has no notion of a config file; this package is the
// outer collaborator that turns one into the Options the core's fixpoint
// driver takes (§6 of the design this implements).
package config

import (
	"fmt"
	"os"

	"github.com/awslabs/ar-taint-summaries/analysis/summary"
	"gopkg.in/yaml.v3"
)

var configFile string

// SetGlobalConfig sets the file LoadGlobal reads from.
func SetGlobalConfig(filename string) { configFile = filename }

// LoadGlobal loads the file set by SetGlobalConfig.
func LoadGlobal() (*Config, error) { return Load(configFile) }

// KindSpec associates a taint kind with the set of callable-name patterns
// that introduce it, e.g. a source kind "Secrets" matched against every
// qualified name ending in ".ReadSecret".
type KindSpec struct {
	Kind        summary.Kind     `yaml:"kind"`
	Identifiers []CodeIdentifier `yaml:"identifiers"`
}

// Options holds the scalar knobs of a run.
type Options struct {
	// ReportsDir is parsed from the config file but not read anywhere:
	// SeedSourceModels writes no files, and rendered summaries go to stdout.
	ReportsDir string `yaml:"reports-dir"`

	// LogLevel controls verbosity; see LogGroup.
	LogLevel int `yaml:"log-level"`

	// WideningIterationThreshold and WideningDepthBound override the
	// core's default WideningPolicy (§4.B). Zero means "use the default".
	WideningIterationThreshold int `yaml:"widening-iteration-threshold"`
	WideningDepthBound         int `yaml:"widening-depth-bound"`

	// MaxIterations overrides the fixpoint driver's global iteration cap.
	// Zero means "use summary.DefaultMaxIterations".
	MaxIterations int `yaml:"max-iterations"`
}

// Config is the full configuration for one analysis run.
type Config struct {
	Options `yaml:",inline"`

	// ExtraSources and ExtraSinks extend the built-in kinds of §3 with
	// project-specific ones, matched by callable name pattern.
	ExtraSources []KindSpec `yaml:"extra-sources"`
	ExtraSinks   []KindSpec `yaml:"extra-sinks"`

	sourceFile string
}

// NewDefault returns a Config equivalent to an empty yaml file.
func NewDefault() *Config {
	return &Config{
		Options: Options{
			LogLevel: int(InfoLevel),
		},
	}
}

// Load reads and parses the yaml config file at filename.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}
	cfg.sourceFile = filename

	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	for i, spec := range cfg.ExtraSources {
		cfg.ExtraSources[i] = compileKindSpec(spec)
	}
	for i, spec := range cfg.ExtraSinks {
		cfg.ExtraSinks[i] = compileKindSpec(spec)
	}
	return cfg, nil
}

func compileKindSpec(spec KindSpec) KindSpec {
	for i, id := range spec.Identifiers {
		spec.Identifiers[i] = CompileRegexes(id)
	}
	return spec
}

// Widening returns the WideningPolicy this config selects: the core's
// recommended default unless either field has been overridden.
func (c *Config) Widening() summary.WideningPolicy {
	policy := summary.DefaultWideningPolicy()
	if c.WideningIterationThreshold > 0 {
		policy.IterationThreshold = c.WideningIterationThreshold
	}
	if c.WideningDepthBound > 0 {
		policy.DepthBound = c.WideningDepthBound
	}
	return policy
}

// FixpointOptions builds the summary.Options for one run_forward/
// run_backward call, wiring this config's widening policy and the given
// store/type-resolver/logger collaborators.
func (c *Config) FixpointOptions(store summary.Store, types summary.TypeResolver, logger *summary.Logger) summary.Options {
	return summary.Options{
		Store:         store,
		Types:         types,
		Logger:        logger,
		Widening:      c.Widening(),
		MaxIterations: c.MaxIterations,
	}
}
