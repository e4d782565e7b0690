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

import (
	"regexp"

	"github.com/awslabs/ar-taint-summaries/analysis/summary"
	"github.com/awslabs/ar-taint-summaries/internal/funcutil"
)

// A CodeIdentifier matches a callable's fully-qualified name by regular
// expression. Unlike the original Go-specific notion of identifying code by
// package/receiver/type/field, this core's Callable is a single opaque
// qualified name (§6), so one pattern is all a CodeIdentifier needs.
type CodeIdentifier struct {
	Pattern string `yaml:"pattern"`

	compiled *regexp.Regexp
}

// CompileRegexes compiles cid.Pattern. If the pattern fails to compile, cid
// is returned unchanged and Matches falls back to an exact string compare.
func CompileRegexes(cid CodeIdentifier) CodeIdentifier {
	if re, err := regexp.Compile(cid.Pattern); err == nil {
		cid.compiled = re
	}
	return cid
}

// Matches reports whether qualifiedName matches cid's pattern.
func (cid CodeIdentifier) Matches(qualifiedName string) bool {
	if cid.compiled != nil {
		return cid.compiled.MatchString(qualifiedName)
	}
	return cid.Pattern == qualifiedName
}

// ClassifySource reports the extra source kind, if any, that qualifiedName
// matches.
func (c *Config) ClassifySource(qualifiedName string) (summary.Kind, bool) {
	return classify(c.ExtraSources, qualifiedName)
}

// ClassifySink reports the extra sink kind, if any, that qualifiedName
// matches.
func (c *Config) ClassifySink(qualifiedName string) (summary.Kind, bool) {
	return classify(c.ExtraSinks, qualifiedName)
}

func classify(specs []KindSpec, qualifiedName string) (summary.Kind, bool) {
	for _, spec := range specs {
		if funcutil.Exists(spec.Identifiers, func(cid CodeIdentifier) bool { return cid.Matches(qualifiedName) }) {
			return spec.Kind, true
		}
	}
	return "", false
}
