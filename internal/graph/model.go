/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package graph defines the node/link dataset of the portfolio graph and the
// builder that derives it from extracted content. The dataset is built once
// per load; afterwards only Hidden flags and positions mutate. Visibility
// substitutes for deletion.
package graph

import (
	"encoding/json"
	"fmt"

	"graphfolio/internal/content"
)

// NodeKind discriminates the three node variants.
type NodeKind int

const (
	KindCenter NodeKind = iota
	KindCategory
	KindItem
)

func (k NodeKind) String() string {
	switch k {
	case KindCenter:
		return "center"
	case KindCategory:
		return "category"
	case KindItem:
		return "item"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Shape is the closed set of glyph shapes. Rendering dispatches on it; no
// other code may branch on shape semantics.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeDiamond
	ShapeHexagon
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeDiamond:
		return "diamond"
	case ShapeHexagon:
		return "hexagon"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape maps a config shape string; unknown strings fall back to circle.
func ParseShape(s string) Shape {
	switch s {
	case "square":
		return ShapeSquare
	case "diamond":
		return ShapeDiamond
	case "hexagon":
		return ShapeHexagon
	default:
		return ShapeCircle
	}
}

// CenterID is the identity of the singleton center node.
const CenterID = "center"

// Node is one graph node. Position and velocity are simulation state; FX/FY,
// when non-nil, pin the node (the simulation snaps it there each tick).
type Node struct {
	ID       string
	Kind     NodeKind
	Label    string
	Subtitle string
	Category string // owning category for items; own name for categories
	Shape    Shape
	Color    string // #rrggbb, kept current by the theme recolor pass
	Hidden   bool   // items start hidden; center/categories never hide

	X, Y   float64
	VX, VY float64
	FX, FY *float64
}

// Pin fixes the node at (x, y) until Unpin.
func (n *Node) Pin(x, y float64) {
	n.X, n.Y = x, y
	fx, fy := x, y
	n.FX, n.FY = &fx, &fy
	n.VX, n.VY = 0, 0
}

// Unpin releases a pinned node.
func (n *Node) Unpin() { n.FX, n.FY = nil, nil }

// Pinned reports whether the node is held fixed.
func (n *Node) Pinned() bool { return n.FX != nil && n.FY != nil }

// LinkKind discriminates spine, branch and reference links.
type LinkKind int

const (
	LinkSpine LinkKind = iota
	LinkBranch
	LinkReference
)

func (k LinkKind) String() string {
	switch k {
	case LinkSpine:
		return "spine"
	case LinkBranch:
		return "branch"
	case LinkReference:
		return "reference"
	}
	return fmt.Sprintf("LinkKind(%d)", int(k))
}

// Link is a directed pair of node identities. Links are derived from their
// endpoints and never outlive them.
type Link struct {
	Source string
	Target string
	Kind   LinkKind
}

// Graph owns the full node/link dataset plus the identity-to-content lookup
// used by the highlighting and scroll collaborators. All mutation happens on
// the owning event loop; there is no internal locking.
type Graph struct {
	Nodes []*Node
	Links []Link

	byID     map[string]*Node
	Elements map[string]*content.Block
}

// Node returns the node with the given identity, or nil.
func (g *Graph) Node(id string) *Node { return g.byID[id] }

// Center returns the singleton center node.
func (g *Graph) Center() *Node { return g.byID[CenterID] }

// Categories returns category nodes in build order.
func (g *Graph) Categories() []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Kind == KindCategory {
			out = append(out, n)
		}
	}
	return out
}

// Items returns item nodes in build order.
func (g *Graph) Items() []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Kind == KindItem {
			out = append(out, n)
		}
	}
	return out
}

// ItemsOf returns the item nodes owned by a category.
func (g *Graph) ItemsOf(category string) []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Kind == KindItem && n.Category == category {
			out = append(out, n)
		}
	}
	return out
}

// LinkVisible derives link visibility from endpoint state: spine links are
// always visible, a branch link mirrors its target item, and a reference
// link needs both endpoints shown.
func (g *Graph) LinkVisible(l Link) bool {
	switch l.Kind {
	case LinkSpine:
		return true
	case LinkBranch:
		t := g.byID[l.Target]
		return t != nil && !t.Hidden
	case LinkReference:
		s, t := g.byID[l.Source], g.byID[l.Target]
		return s != nil && !s.Hidden && t != nil && !t.Hidden
	}
	return false
}

// VisibleLinks returns the currently visible links.
func (g *Graph) VisibleLinks() []Link {
	var out []Link
	for _, l := range g.Links {
		if g.LinkVisible(l) {
			out = append(out, l)
		}
	}
	return out
}

// VisibleNodes returns center, categories and unhidden items.
func (g *Graph) VisibleNodes() []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if !n.Hidden {
			out = append(out, n)
		}
	}
	return out
}

// SkeletonNodes returns the center plus all category nodes, independent of
// item visibility.
func (g *Graph) SkeletonNodes() []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Kind != KindItem {
			out = append(out, n)
		}
	}
	return out
}

// LinksOf returns the links touching a node.
func (g *Graph) LinksOf(id string) []Link {
	var out []Link
	for _, l := range g.Links {
		if l.Source == id || l.Target == id {
			out = append(out, l)
		}
	}
	return out
}

// ReferencePartners returns the identities reference-linked to an item.
func (g *Graph) ReferencePartners(id string) []string {
	var out []string
	for _, l := range g.Links {
		if l.Kind != LinkReference {
			continue
		}
		switch id {
		case l.Source:
			out = append(out, l.Target)
		case l.Target:
			out = append(out, l.Source)
		}
	}
	return out
}

// EncodePositions serializes node positions for the layout snapshot store.
func (g *Graph) EncodePositions() ([]byte, error) {
	pos := make(map[string][2]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		pos[n.ID] = [2]float64{n.X, n.Y}
	}
	return json.Marshal(pos)
}

// ApplyPositions restores previously saved positions. Unknown identities are
// ignored so a stale snapshot degrades to partial placement.
func (g *Graph) ApplyPositions(blob []byte) error {
	var pos map[string][2]float64
	if err := json.Unmarshal(blob, &pos); err != nil {
		return fmt.Errorf("decoding layout snapshot: %w", err)
	}
	for id, p := range pos {
		if n := g.byID[id]; n != nil && !n.Pinned() {
			n.X, n.Y = p[0], p[1]
			n.VX, n.VY = 0, 0
		}
	}
	return nil
}
