/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graph

import (
	"log/slog"
	"math"
	"math/rand"

	applog "graphfolio/internal/log"

	"graphfolio/internal/config"
	"graphfolio/internal/content"
)

// RefMode selects the cross-reference mechanism; exactly one is active.
type RefMode int

const (
	// RefAuto scans each item's text for other items' identity tokens.
	RefAuto RefMode = iota
	// RefExplicit follows author-specified target identity lists.
	RefExplicit
)

// ParseRefMode maps the config string; anything unrecognized means auto.
func ParseRefMode(s string) RefMode {
	if s == "explicit" {
		return RefExplicit
	}
	return RefAuto
}

// BuildOptions parameterizes a build. Width/Height seed the initial radial
// placement; zero values fall back to the default viewport dimensions.
type BuildOptions struct {
	Categories  []config.CategoryConfig
	RefMode     RefMode
	MinTokenLen int // identity tokens shorter than this never auto-match
	Width       float64
	Height      float64
	CenterLabel string
	Rand        *rand.Rand // nil: unseeded source; tests pass a fixed seed
}

// Default seeding geometry. Positions are simulation seeds only; the force
// layout owns final placement.
const (
	DefaultWidth       = 1200.0
	DefaultHeight      = 800.0
	categorySeedRadius = 180.0
	itemSeedJitter     = 40.0
)

// Build assembles the node/link dataset from extracted sections plus the
// category configuration. It never fails on content problems: missing
// categories yield bare category nodes, unresolved reference targets are
// dropped, and duplicate identities keep the first node.
func Build(opts BuildOptions, sections []content.Section) *Graph {
	l := applog.WithComponent("graph")
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	cx, cy := w/2, h/2

	g := &Graph{
		byID:     make(map[string]*Node),
		Elements: make(map[string]*content.Block),
	}

	centerLabel := opts.CenterLabel
	if centerLabel == "" {
		centerLabel = "•"
	}
	center := &Node{ID: CenterID, Kind: KindCenter, Label: centerLabel, Shape: ShapeCircle}
	center.Pin(cx, cy)
	g.add(center)

	byCategory := make(map[string]content.Section, len(sections))
	for _, sec := range sections {
		byCategory[sec.Category] = sec
	}

	// Category nodes at even angular spacing, spine links to the center.
	for i, cat := range opts.Categories {
		angle := 2 * math.Pi * float64(i) / float64(len(opts.Categories))
		n := &Node{
			ID:       cat.Name,
			Kind:     KindCategory,
			Label:    cat.Title,
			Category: cat.Name,
			Shape:    ParseShape(cat.Shape),
			Color:    cat.Color,
			X:        cx + categorySeedRadius*math.Cos(angle),
			Y:        cy + categorySeedRadius*math.Sin(angle),
		}
		if n.Label == "" {
			n.Label = cat.Name
		}
		if !g.add(n) {
			l.Warn("duplicate category identity dropped", slog.String("id", cat.Name))
			continue
		}
		g.Links = append(g.Links, Link{Source: CenterID, Target: cat.Name, Kind: LinkSpine})

		// Item nodes seeded near their parent, hidden by default.
		for idx, b := range byCategory[cat.Name].Blocks {
			id := b.ExplicitID
			if id == "" {
				id = DeriveIdentity(cat.Name, b.Label, idx)
			}
			item := &Node{
				ID:       id,
				Kind:     KindItem,
				Label:    b.Label,
				Subtitle: b.Subtitle,
				Category: cat.Name,
				Shape:    ShapeCircle,
				Color:    cat.Color,
				Hidden:   true,
				X:        n.X + (rng.Float64()*2-1)*itemSeedJitter,
				Y:        n.Y + (rng.Float64()*2-1)*itemSeedJitter,
			}
			if !g.add(item) {
				l.Warn("duplicate item identity dropped",
					slog.String("id", id), slog.String("category", cat.Name))
				// last write wins in the element lookup so the visible
				// block still resolves somewhere
				b.Identity = id
				g.Elements[id] = b
				continue
			}
			b.Identity = id
			g.Elements[id] = b
			g.Links = append(g.Links, Link{Source: cat.Name, Target: id, Kind: LinkBranch})
		}
	}

	switch opts.RefMode {
	case RefExplicit:
		g.resolveExplicitRefs(l)
	default:
		g.resolveAutoRefs(l, opts.MinTokenLen)
	}

	l.Debug("graph built",
		slog.Int("nodes", len(g.Nodes)),
		slog.Int("links", len(g.Links)))
	return g
}

// add registers a node unless its identity is taken.
func (g *Graph) add(n *Node) bool {
	if _, exists := g.byID[n.ID]; exists {
		return false
	}
	g.byID[n.ID] = n
	g.Nodes = append(g.Nodes, n)
	return true
}
