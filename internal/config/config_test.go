/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvTheme, EnvMuted, EnvLogLevel, EnvLogFormat, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if len(cfg.Categories) == 0 {
		t.Fatalf("defaults carry no categories")
	}
}

func TestLoadFromPathMissingFileFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	def := Defaults()
	if cfg.General.Theme != def.General.Theme || len(cfg.Categories) != len(def.Categories) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFromPathMergesSparseFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "general:\n  theme: dark\nphysics:\n  velocity_decay: 0.6\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.General.Theme != "dark" {
		t.Fatalf("theme not merged: %q", cfg.General.Theme)
	}
	if cfg.Physics.VelocityDecay != 0.6 {
		t.Fatalf("velocity decay not merged: %v", cfg.Physics.VelocityDecay)
	}
	// untouched sections keep defaults
	if cfg.Physics.ChargeStrength != Defaults().Physics.ChargeStrength {
		t.Fatalf("charge strength lost: %v", cfg.Physics.ChargeStrength)
	}
	if len(cfg.Categories) != len(Defaults().Categories) {
		t.Fatalf("categories lost: %d", len(cfg.Categories))
	}
}

func TestCategoriesReplaceWholesale(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "categories:\n  - name: writing\n    selector: .essay\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Categories) != 1 || cfg.Categories[0].Name != "writing" {
		t.Fatalf("expected single custom category, got %+v", cfg.Categories)
	}
	// defaults filled per-entry
	if cfg.Categories[0].Title != "writing" || cfg.Categories[0].Shape != "circle" {
		t.Fatalf("entry defaults not applied: %+v", cfg.Categories[0])
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []func(*AppConfig){
		func(c *AppConfig) { c.Categories[0].Shape = "triangle" },
		func(c *AppConfig) { c.Categories = append(c.Categories, c.Categories[0]) },
		func(c *AppConfig) { c.Categories[0].Name = " " },
		func(c *AppConfig) { c.Interaction.References = "magic" },
		func(c *AppConfig) { c.Physics.VelocityDecay = 1.5 },
		func(c *AppConfig) { c.Physics.ChargeStrength = 10 },
		func(c *AppConfig) { c.Interaction.DragThresholdPx = -1 },
		func(c *AppConfig) { c.Interaction.MaxScale = 0 },
		func(c *AppConfig) { c.Interaction.MinRefTokenLen = 0 },
	}
	for i, mutate := range cases {
		cfg := Defaults()
		mutate(&cfg)
		if err := Validate(&cfg); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTheme, "Light")
	t.Setenv(EnvMuted, "yes")
	t.Setenv(EnvLogLevel, "DEBUG")
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.General.Theme != "light" {
		t.Fatalf("theme env override not applied: %q", cfg.General.Theme)
	}
	if !cfg.General.Muted {
		t.Fatalf("muted env override not applied")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level env override not applied: %q", cfg.Logging.Level)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")
	cfg := Defaults()
	cfg.General.Theme = "dark"
	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.General.Theme != "dark" {
		t.Fatalf("round trip lost theme: %q", got.General.Theme)
	}
}

func TestConfigPathMentionsApp(t *testing.T) {
	p, err := ConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(strings.ToLower(p), "graphfolio") {
		t.Fatalf("unexpected config path: %q", p)
	}
}
