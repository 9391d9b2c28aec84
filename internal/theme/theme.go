/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package theme supplies named color palettes for node kinds, link kinds and
// the background, plus the recolor pass that applies a palette to a built
// graph without rebuilding it.
package theme

import (
	"fmt"
	"image/color"
	"strings"

	"graphfolio/internal/config"
	"graphfolio/internal/graph"
)

// Palette holds per-kind colors as #rrggbb strings. Category/item fills are
// usually overridden per category from config; the palette values are the
// fallback.
type Palette struct {
	Name       string
	Background string
	Center     string
	Category   string
	Item       string
	Spine      string
	Branch     string
	Reference  string
	Highlight  string
}

var palettes = map[string]Palette{
	"dark": {
		Name:       "dark",
		Background: "#101418",
		Center:     "#e8e6e3",
		Category:   "#7aa2f7",
		Item:       "#9ece6a",
		Spine:      "#565f89",
		Branch:     "#414868",
		Reference:  "#bb9af7",
		Highlight:  "#f7768e",
	},
	"light": {
		Name:       "light",
		Background: "#fafafa",
		Center:     "#2e3440",
		Category:   "#3b6ea5",
		Item:       "#4c8a4c",
		Spine:      "#b0b8c4",
		Branch:     "#c8ced8",
		Reference:  "#8f5fbf",
		Highlight:  "#c84b62",
	},
}

// ByName resolves a palette. "system" and unknown names resolve to dark;
// the UI is responsible for mapping a real OS preference before asking.
func ByName(name string) Palette {
	if p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return palettes["dark"]
}

// Names lists the selectable palettes.
func Names() []string { return []string{"dark", "light"} }

// Recolor applies a palette to a built graph: category and item nodes keep
// their per-category config color when one is set, everything else takes the
// palette value. The graph structure is untouched, so callers follow up
// with a redraw, never a rebuild.
func Recolor(g *graph.Graph, p Palette, categories []config.CategoryConfig) {
	catColor := make(map[string]string, len(categories))
	for _, c := range categories {
		if c.Color != "" {
			catColor[c.Name] = c.Color
		}
	}
	for _, n := range g.Nodes {
		switch n.Kind {
		case graph.KindCenter:
			n.Color = p.Center
		case graph.KindCategory:
			if c, ok := catColor[n.ID]; ok {
				n.Color = c
			} else {
				n.Color = p.Category
			}
		case graph.KindItem:
			if c, ok := catColor[n.Category]; ok {
				n.Color = c
			} else {
				n.Color = p.Item
			}
		}
	}
}

// LinkColor returns the palette color for a link kind.
func (p Palette) LinkColor(k graph.LinkKind) string {
	switch k {
	case graph.LinkSpine:
		return p.Spine
	case graph.LinkBranch:
		return p.Branch
	default:
		return p.Reference
	}
}

// ParseHex decodes #rgb or #rrggbb into an RGBA color. Bad input degrades
// to opaque gray rather than failing a render.
func ParseHex(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err == nil {
			return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 0xff}
		}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 0xff}
		}
	}
	return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
}
