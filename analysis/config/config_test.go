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
	"os"
	"path/filepath"
	"testing"

	"github.com/awslabs/ar-taint-summaries/analysis/summary"
)

const sampleConfig = `
log-level: 4
widening-depth-bound: 2
extra-sources:
  - kind: Secrets
    identifiers:
      - pattern: '\.ReadSecret$'
extra-sinks:
  - kind: Exfiltration
    identifiers:
      - pattern: '\.Upload$'
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("could not write test config: %v", err)
	}
	return path
}

func TestLoadParsesExtraKinds(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	if cfg.LogLevel != int(DebugLevel) {
		t.Fatalf("expected log level %d, got %d", DebugLevel, cfg.LogLevel)
	}

	if kind, ok := cfg.ClassifySource("vault.Client.ReadSecret"); !ok || kind != "Secrets" {
		t.Fatalf("expected ReadSecret to classify as Secrets, got %v ok=%v", kind, ok)
	}
	if _, ok := cfg.ClassifySource("vault.Client.Write"); ok {
		t.Fatalf("Write must not match the ReadSecret pattern")
	}
	if kind, ok := cfg.ClassifySink("s3.Bucket.Upload"); !ok || kind != "Exfiltration" {
		t.Fatalf("expected Upload to classify as Exfiltration, got %v ok=%v", kind, ok)
	}
}

func TestWideningOverride(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	policy := cfg.Widening()
	if policy.DepthBound != 2 {
		t.Fatalf("expected overridden depth bound 2, got %d", policy.DepthBound)
	}
	defaultPolicy := summary.DefaultWideningPolicy()
	if policy.IterationThreshold != defaultPolicy.IterationThreshold {
		t.Fatalf("un-overridden iteration threshold must fall back to the default")
	}
}

func TestSeedSourceModels(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	store := summary.NewMapStore()
	n := SeedSourceModels(store, cfg, []string{"vault.Client.ReadSecret", "vault.Client.Write"})
	if n != 1 {
		t.Fatalf("expected exactly one seeded model, got %d", n)
	}
	model, found := store.GetModel(summary.NewCallable("vault.Client.ReadSecret"))
	if !found {
		t.Fatalf("expected a model for the matched callable")
	}
	if !summary.RootElement(model.Forward.SourceTaint).Has("Secrets") {
		t.Fatalf("expected the seeded model to carry the Secrets kind")
	}
}
