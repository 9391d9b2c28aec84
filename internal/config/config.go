/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config holds the user-editable application configuration: the
// portfolio category definitions the graph is built from, physics tuning for
// the layout simulation, interaction thresholds, and theme/logging options.
// The file is YAML in the user scope; environment variables act as read-only
// overrides at runtime.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryConfig describes one portfolio section that becomes a category
// node. Selector is a CSS-like query (tag, .class or #id) locating the
// section's content blocks in an HTML source; JSON sources match on Name.
type CategoryConfig struct {
	Name     string `yaml:"name"`     // stable slug, e.g. "work"
	Title    string `yaml:"title"`    // display label; defaults to Name
	Shape    string `yaml:"shape"`    // circle | square | diamond | hexagon
	Color    string `yaml:"color"`    // #rrggbb; themed palettes may override
	Selector string `yaml:"selector"` // content query for HTML sources
}

// PhysicsConfig tunes the force simulation. Zero values fall back to
// defaults on load, so a sparse user file stays valid.
type PhysicsConfig struct {
	SpineDistance     float64 `yaml:"spine_distance"`
	BranchDistance    float64 `yaml:"branch_distance"`
	ReferenceDistance float64 `yaml:"reference_distance"`
	SpineStrength     float64 `yaml:"spine_strength"`
	BranchStrength    float64 `yaml:"branch_strength"`
	ReferenceStrength float64 `yaml:"reference_strength"`
	ChargeStrength    float64 `yaml:"charge_strength"`     // negative = repulsion
	ChargeMaxDistance float64 `yaml:"charge_max_distance"` // pair interaction cutoff
	CenterStrength    float64 `yaml:"center_strength"`
	VelocityDecay     float64 `yaml:"velocity_decay"`
}

// InteractionConfig tunes gesture recognition and framing.
type InteractionConfig struct {
	DragThresholdPx float64 `yaml:"drag_threshold_px"` // below this a press is a click
	ReframeDelayMs  int     `yaml:"reframe_delay_ms"`  // deferred reframe after visibility change
	TransitionMs    int     `yaml:"transition_ms"`     // animated transform duration
	FitPadding      float64 `yaml:"fit_padding"`
	MaxScale        float64 `yaml:"max_scale"`
	MinRefTokenLen  int     `yaml:"min_ref_token_len"` // shortest identity token auto-matched
	References      string  `yaml:"references"`        // "auto" or "explicit"
}

type GeneralConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
	Muted bool   `yaml:"muted"` // ambient feedback muted
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	General       GeneralConfig    `yaml:"general"`
	Categories    []CategoryConfig `yaml:"categories"`
	Physics       PhysicsConfig    `yaml:"physics"`
	Interaction   InteractionConfig `yaml:"interaction"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// ValidShapes enumerates the supported category glyph shapes.
var ValidShapes = []string{"circle", "square", "diamond", "hexagon"}

// ValidReferenceModes enumerates the cross-reference resolution mechanisms.
// Exactly one is active per deployment.
var ValidReferenceModes = []string{"auto", "explicit"}

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Defaults returns the application defaults, including the stock portfolio
// categories. Force constants follow the usual d3-force shape: short stiff
// spines, medium branches, long weak references.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system", Muted: false},
		Categories: []CategoryConfig{
			{Name: "work", Title: "Work", Shape: "square", Color: "#4f8fea", Selector: ".work-item"},
			{Name: "projects", Title: "Projects", Shape: "hexagon", Color: "#4fea8f", Selector: ".project-card"},
			{Name: "talks", Title: "Talks", Shape: "diamond", Color: "#ea8f4f", Selector: ".talk-entry"},
			{Name: "contact", Title: "Contact", Shape: "circle", Color: "#ea4f8f", Selector: ".contact-entry"},
		},
		Physics: PhysicsConfig{
			SpineDistance:     90,
			BranchDistance:    120,
			ReferenceDistance: 200,
			SpineStrength:     0.9,
			BranchStrength:    0.5,
			ReferenceStrength: 0.15,
			ChargeStrength:    -400,
			ChargeMaxDistance: 500,
			CenterStrength:    0.05,
			VelocityDecay:     0.45,
		},
		Interaction: InteractionConfig{
			DragThresholdPx: 5,
			ReframeDelayMs:  250,
			TransitionMs:    600,
			FitPadding:      60,
			MaxScale:        2.5,
			MinRefTokenLen:  4,
			References:      "auto",
		},
		Logging: LoggingConfig{Level: "info", Format: "console", File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvTheme = "GFX_THEME"
	EnvMuted = "GFX_MUTED"
	// Logging envs are read by internal/log as well; mirrored here so a
	// loaded config reflects the effective values.
	EnvLogLevel  = "GFX_LOG_LEVEL"
	EnvLogFormat = "GFX_LOG_FORMAT"
	EnvLogFile   = "GFX_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Graphfolio")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Graphfolio")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "graphfolio")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, merges
// environment overrides, and validates the result.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	return loadFrom(cfg, path)
}

// LoadFromPath behaves like Load but reads a specific file, for tests and
// for the --config CLI flag.
func LoadFromPath(path string) (AppConfig, error) {
	return loadFrom(Defaults(), path)
}

func loadFrom(cfg AppConfig, path string) (AppConfig, error) {
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config YAML to an explicit path.
func SaveTo(cfg AppConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks that config values are usable. Zero-valued physics and
// interaction numbers have already been filled from defaults by merge.
func Validate(cfg *AppConfig) error {
	seen := map[string]bool{}
	for i, c := range cfg.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: categories[%d] has no name", ErrInvalidConfig, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidConfig, c.Name)
		}
		seen[c.Name] = true
		if !contains(ValidShapes, c.Shape) {
			return fmt.Errorf("%w: category %q shape must be one of %v, got %q",
				ErrInvalidConfig, c.Name, ValidShapes, c.Shape)
		}
	}
	if !contains(ValidReferenceModes, cfg.Interaction.References) {
		return fmt.Errorf("%w: references must be one of %v, got %q",
			ErrInvalidConfig, ValidReferenceModes, cfg.Interaction.References)
	}
	if cfg.Physics.VelocityDecay <= 0 || cfg.Physics.VelocityDecay >= 1 {
		return fmt.Errorf("%w: velocity_decay must be in (0,1), got %f",
			ErrInvalidConfig, cfg.Physics.VelocityDecay)
	}
	if cfg.Physics.ChargeStrength > 0 {
		return fmt.Errorf("%w: charge_strength must be negative (repulsion), got %f",
			ErrInvalidConfig, cfg.Physics.ChargeStrength)
	}
	if cfg.Interaction.DragThresholdPx < 0 {
		return fmt.Errorf("%w: drag_threshold_px must be non-negative, got %f",
			ErrInvalidConfig, cfg.Interaction.DragThresholdPx)
	}
	if cfg.Interaction.MaxScale <= 0 {
		return fmt.Errorf("%w: max_scale must be positive, got %f",
			ErrInvalidConfig, cfg.Interaction.MaxScale)
	}
	if cfg.Interaction.MinRefTokenLen < 1 {
		return fmt.Errorf("%w: min_ref_token_len must be at least 1, got %d",
			ErrInvalidConfig, cfg.Interaction.MinRefTokenLen)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.Muted = src.General.Muted
	// categories replace wholesale when present; merging per-entry would
	// make removing a stock category impossible
	if len(src.Categories) > 0 {
		dst.Categories = append([]CategoryConfig(nil), src.Categories...)
		for i := range dst.Categories {
			if dst.Categories[i].Title == "" {
				dst.Categories[i].Title = dst.Categories[i].Name
			}
			if dst.Categories[i].Shape == "" {
				dst.Categories[i].Shape = "circle"
			}
		}
	}
	mergeFloat := func(dst *float64, src float64) {
		if src != 0 {
			*dst = src
		}
	}
	mergeFloat(&dst.Physics.SpineDistance, src.Physics.SpineDistance)
	mergeFloat(&dst.Physics.BranchDistance, src.Physics.BranchDistance)
	mergeFloat(&dst.Physics.ReferenceDistance, src.Physics.ReferenceDistance)
	mergeFloat(&dst.Physics.SpineStrength, src.Physics.SpineStrength)
	mergeFloat(&dst.Physics.BranchStrength, src.Physics.BranchStrength)
	mergeFloat(&dst.Physics.ReferenceStrength, src.Physics.ReferenceStrength)
	mergeFloat(&dst.Physics.ChargeStrength, src.Physics.ChargeStrength)
	mergeFloat(&dst.Physics.ChargeMaxDistance, src.Physics.ChargeMaxDistance)
	mergeFloat(&dst.Physics.CenterStrength, src.Physics.CenterStrength)
	mergeFloat(&dst.Physics.VelocityDecay, src.Physics.VelocityDecay)
	mergeFloat(&dst.Interaction.DragThresholdPx, src.Interaction.DragThresholdPx)
	mergeFloat(&dst.Interaction.FitPadding, src.Interaction.FitPadding)
	mergeFloat(&dst.Interaction.MaxScale, src.Interaction.MaxScale)
	if src.Interaction.ReframeDelayMs != 0 {
		dst.Interaction.ReframeDelayMs = src.Interaction.ReframeDelayMs
	}
	if src.Interaction.TransitionMs != 0 {
		dst.Interaction.TransitionMs = src.Interaction.TransitionMs
	}
	if src.Interaction.MinRefTokenLen != 0 {
		dst.Interaction.MinRefTokenLen = src.Interaction.MinRefTokenLen
	}
	if strings.TrimSpace(src.Interaction.References) != "" {
		dst.Interaction.References = strings.ToLower(strings.TrimSpace(src.Interaction.References))
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMuted)); v != "" {
		cfg.General.Muted = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	if b, err := strconv.ParseBool(lv); err == nil {
		return b
	}
	return lv == "on" || lv == "yes"
}
