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

package config

import "github.com/awslabs/ar-taint-summaries/analysis/summary"

// SeedSourceModels installs a synthetic forward model for every callable in
// names that matches one of cfg's ExtraSources patterns and does not
// already have a model in store. This is how library/builtin functions
// outside the analyzed program (which therefore never get their own
// run_forward call) still contribute source taint: the interprocedural
// driver (external to this core) calls this once before analyzing callers.
// It returns the number of models it installed.
func SeedSourceModels(store *summary.MapStore, cfg *Config, names []string) int {
	installed := 0
	for _, name := range names {
		callable := summary.NewCallable(name)
		if _, found := store.GetModel(callable); found {
			continue
		}
		kind, ok := cfg.ClassifySource(name)
		if !ok {
			continue
		}
		store.SetModel(callable, summary.Summary{
			Forward: summary.ForwardModel{SourceTaint: summary.MakeLeaf(summary.Singleton(kind))},
		})
		installed++
	}
	return installed
}
