/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package theme

import (
	"math/rand"
	"testing"

	"graphfolio/internal/config"
	"graphfolio/internal/content"
	"graphfolio/internal/graph"
)

func TestByNameFallsBackToDark(t *testing.T) {
	for _, name := range []string{"dark", "DARK", " system ", "unknown", ""} {
		p := ByName(name)
		if name == "dark" || name == "DARK" {
			if p.Name != "dark" {
				t.Fatalf("ByName(%q) = %q", name, p.Name)
			}
			continue
		}
		if name == " system " || name == "unknown" || name == "" {
			if p.Name != "dark" {
				t.Fatalf("ByName(%q) should fall back to dark, got %q", name, p.Name)
			}
		}
	}
	if p := ByName("light"); p.Name != "light" {
		t.Fatalf("light palette missing")
	}
}

func TestRecolorAppliesPaletteAndOverrides(t *testing.T) {
	cats := []config.CategoryConfig{
		{Name: "work", Shape: "square", Color: "#112233"},
		{Name: "projects", Shape: "circle"}, // no override
	}
	g := graph.Build(graph.BuildOptions{
		Categories: cats,
		Rand:       rand.New(rand.NewSource(1)),
	}, []content.Section{
		{Category: "work", Blocks: []*content.Block{{Label: "Acme"}}},
		{Category: "projects", Blocks: []*content.Block{{Label: "Beamer"}}},
	})

	p := ByName("light")
	Recolor(g, p, cats)

	if got := g.Center().Color; got != p.Center {
		t.Fatalf("center color: %q", got)
	}
	if got := g.Node("work").Color; got != "#112233" {
		t.Fatalf("config override lost: %q", got)
	}
	if got := g.Node("work-acme-0").Color; got != "#112233" {
		t.Fatalf("item should inherit category override: %q", got)
	}
	if got := g.Node("projects").Color; got != p.Category {
		t.Fatalf("palette fallback not applied: %q", got)
	}
	if got := g.Node("projects-beamer-0").Color; got != p.Item {
		t.Fatalf("item palette fallback not applied: %q", got)
	}
}

func TestLinkColor(t *testing.T) {
	p := ByName("dark")
	if p.LinkColor(graph.LinkSpine) != p.Spine ||
		p.LinkColor(graph.LinkBranch) != p.Branch ||
		p.LinkColor(graph.LinkReference) != p.Reference {
		t.Fatalf("link colors misrouted")
	}
}

func TestParseHex(t *testing.T) {
	c := ParseHex("#112233")
	if c.R != 0x11 || c.G != 0x22 || c.B != 0x33 || c.A != 0xff {
		t.Fatalf("rrggbb: %+v", c)
	}
	c = ParseHex("#fff")
	if c.R != 0xff || c.G != 0xff || c.B != 0xff {
		t.Fatalf("rgb: %+v", c)
	}
	c = ParseHex("garbage")
	if c.A != 0xff {
		t.Fatalf("bad input must stay opaque: %+v", c)
	}
}
