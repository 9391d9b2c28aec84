/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package sim is the force-directed layout engine. One Tick per animation
// frame relaxes node positions under link springs, mutual repulsion, a weak
// centering pull and collision avoidance. Energy is tracked as alpha in the
// d3-force sense: it decays toward zero, the simulation idles below a floor,
// and visibility changes reheat it so redistributed nodes drift rather than
// snap.
package sim

import (
	"math"

	"graphfolio/internal/config"
	"graphfolio/internal/graph"
)

const (
	alphaMin        = 0.001
	alphaDecay      = 0.0228 // 1 - alphaMin^(1/300): idle after ~300 ticks
	reheatAlpha     = 0.6
	nudgeAlpha      = 0.3
	dragAlphaTarget = 0.3

	collidePadding = 4.0
)

// RadiusFor returns the collision radius per node kind. Categories reserve
// more space than items so the skeleton stays readable.
func RadiusFor(k graph.NodeKind) float64 {
	switch k {
	case graph.KindCenter:
		return 46
	case graph.KindCategory:
		return 36
	default:
		return 22
	}
}

// Simulation owns the kinetic state of one graph's layout. It is driven by
// the event loop: callers invoke Tick once per frame and mutate visibility
// or pins between ticks. No internal locking.
type Simulation struct {
	g    *graph.Graph
	phys config.PhysicsConfig

	alpha       float64
	alphaTarget float64
	cx, cy      float64
}

// New creates a simulation centered in a w x h viewport and starts it hot.
func New(g *graph.Graph, phys config.PhysicsConfig, w, h float64) *Simulation {
	if w <= 0 || h <= 0 {
		w, h = graph.DefaultWidth, graph.DefaultHeight
	}
	return &Simulation{g: g, phys: phys, alpha: 1, cx: w / 2, cy: h / 2}
}

// Alpha exposes the current energy, mainly for tests and diagnostics.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Settled reports whether the simulation has cooled below its floor.
func (s *Simulation) Settled() bool { return s.alpha < alphaMin && s.alphaTarget == 0 }

// Reheat raises energy after a visibility change so newly shown nodes
// redistribute instead of snapping into place.
func (s *Simulation) Reheat() {
	if s.alpha < reheatAlpha {
		s.alpha = reheatAlpha
	}
}

// Nudge is a gentler reheat used for viewport resizes.
func (s *Simulation) Nudge() {
	if s.alpha < nudgeAlpha {
		s.alpha = nudgeAlpha
	}
}

// SetDragging switches the drag alpha target on or off. While a drag is in
// progress the simulation holds energy so neighbors keep following the
// pinned node.
func (s *Simulation) SetDragging(on bool) {
	if on {
		s.alphaTarget = dragAlphaTarget
		if s.alpha < dragAlphaTarget {
			s.alpha = dragAlphaTarget
		}
	} else {
		s.alphaTarget = 0
	}
}

// SetCenter re-derives the centering target (viewport resize) and re-pins
// the center node there. The layout is nudged, never rebuilt.
func (s *Simulation) SetCenter(x, y float64) {
	s.cx, s.cy = x, y
	if c := s.g.Center(); c != nil {
		c.Pin(x, y)
	}
	s.Nudge()
}

// Center returns the current centering target.
func (s *Simulation) Center() (x, y float64) { return s.cx, s.cy }

// Tick advances the simulation one frame. It returns false when idle so the
// driver can skip redraws.
func (s *Simulation) Tick() bool {
	if s.Settled() {
		return false
	}
	s.alpha += (s.alphaTarget - s.alpha) * alphaDecay

	active := s.activeNodes()
	s.applyLinks(active)
	s.applyCharge(active)
	s.applyCenterPull(active)

	decay := 1 - s.phys.VelocityDecay
	for _, n := range active {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= decay
		n.VY *= decay
		n.X += n.VX
		n.Y += n.VY
	}

	s.applyCollide(active)
	return true
}

// Step runs up to max ticks and returns how many ran before the simulation
// settled.
func (s *Simulation) Step(max int) int {
	for i := 0; i < max; i++ {
		if !s.Tick() {
			return i
		}
	}
	return max
}

// activeNodes are the nodes participating in forces: everything not hidden.
// Hidden items neither move nor repel.
func (s *Simulation) activeNodes() []*graph.Node {
	return s.g.VisibleNodes()
}

func (s *Simulation) restLength(k graph.LinkKind) float64 {
	switch k {
	case graph.LinkSpine:
		return s.phys.SpineDistance
	case graph.LinkBranch:
		return s.phys.BranchDistance
	default:
		return s.phys.ReferenceDistance
	}
}

func (s *Simulation) stiffness(k graph.LinkKind) float64 {
	switch k {
	case graph.LinkSpine:
		return s.phys.SpineStrength
	case graph.LinkBranch:
		return s.phys.BranchStrength
	default:
		return s.phys.ReferenceStrength
	}
}

// applyLinks pulls linked pairs toward per-kind rest lengths. Links with a
// hidden endpoint exert no force.
func (s *Simulation) applyLinks(active []*graph.Node) {
	for _, l := range s.g.Links {
		src, dst := s.g.Node(l.Source), s.g.Node(l.Target)
		if src == nil || dst == nil || src.Hidden || dst.Hidden {
			continue
		}
		dx := dst.X + dst.VX - src.X - src.VX
		dy := dst.Y + dst.VY - src.Y - src.VY
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dx, dy, dist = 1e-6, 1e-6, math.Sqrt2 * 1e-6
		}
		k := (dist - s.restLength(l.Kind)) / dist * s.stiffness(l.Kind) * s.alpha
		fx, fy := dx*k, dy*k
		dst.VX -= fx / 2
		dst.VY -= fy / 2
		src.VX += fx / 2
		src.VY += fy / 2
	}
}

// applyCharge repels every visible pair, cut off beyond the configured
// interaction distance. The node counts here are tens, so the naive pair
// loop is fine.
func (s *Simulation) applyCharge(active []*graph.Node) {
	maxD2 := s.phys.ChargeMaxDistance * s.phys.ChargeMaxDistance
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			dx, dy := b.X-a.X, b.Y-a.Y
			d2 := dx*dx + dy*dy
			if d2 == 0 {
				dx, dy, d2 = 1e-6, 1e-6, 2e-12
			}
			if maxD2 > 0 && d2 > maxD2 {
				continue
			}
			// negative charge pushes the pair apart
			f := s.phys.ChargeStrength * s.alpha / d2
			a.VX += dx * f
			a.VY += dy * f
			b.VX -= dx * f
			b.VY -= dy * f
		}
	}
}

// applyCenterPull drifts unpinned nodes weakly toward the viewport center.
func (s *Simulation) applyCenterPull(active []*graph.Node) {
	k := s.phys.CenterStrength * s.alpha
	for _, n := range active {
		if n.Pinned() {
			continue
		}
		n.VX += (s.cx - n.X) * k
		n.VY += (s.cy - n.Y) * k
	}
}

// applyCollide separates overlapping pairs by their combined kind radii.
// Positions are corrected directly, half per endpoint; pinned nodes push
// their partner the full distance.
func (s *Simulation) applyCollide(active []*graph.Node) {
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			minDist := RadiusFor(a.Kind) + RadiusFor(b.Kind) + collidePadding
			dx, dy := b.X-a.X, b.Y-a.Y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				dx, dy, dist = 1e-6, 0, 1e-6
			}
			overlap := (minDist - dist) / dist
			switch {
			case a.Pinned() && b.Pinned():
				// both held; leave them
			case a.Pinned():
				b.X += dx * overlap
				b.Y += dy * overlap
			case b.Pinned():
				a.X -= dx * overlap
				a.Y -= dy * overlap
			default:
				a.X -= dx * overlap / 2
				a.Y -= dy * overlap / 2
				b.X += dx * overlap / 2
				b.Y += dy * overlap / 2
			}
		}
	}
}
