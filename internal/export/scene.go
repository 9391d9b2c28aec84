/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders the current graph to SVG, PNG and PDF files. All
// formats draw the same scene: visible nodes and links, snapshotted at call
// time, scaled to fit the requested canvas.
package export

import (
	"errors"
	"image/color"
	"math"

	"graphfolio/internal/graph"
	"graphfolio/internal/sim"
	"graphfolio/internal/theme"
)

// Options controls export output.
type Options struct {
	Width   int     // canvas width in pixels/points; defaults to 1200
	Height  int     // canvas height; defaults to 800
	Padding float64 // margin around the framed graph; defaults to 40
	Labels  bool    // draw node labels
	Title   string  // document title where the format carries one
	Palette theme.Palette
}

func (o *Options) applyDefaults() {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.Padding <= 0 {
		o.Padding = 40
	}
	if o.Palette.Name == "" {
		o.Palette = theme.ByName("dark")
	}
}

type sceneNode struct {
	X, Y, R float64
	Shape   graph.Shape
	Fill    color.RGBA
	Label   string
}

type sceneLink struct {
	X1, Y1, X2, Y2 float64
	Stroke         color.RGBA
	Width          float64
}

type scene struct {
	W, H  float64
	BG    color.RGBA
	Links []sceneLink
	Nodes []sceneNode
}

// buildScene projects the visible subgraph onto the output canvas. Link
// order before node order keeps nodes on top in every backend.
func buildScene(g *graph.Graph, opt Options) (scene, error) {
	nodes := g.VisibleNodes()
	if len(nodes) == 0 {
		return scene{}, errors.New("nothing visible to export")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		r := sim.RadiusFor(n.Kind)
		minX = math.Min(minX, n.X-r)
		minY = math.Min(minY, n.Y-r)
		maxX = math.Max(maxX, n.X+r)
		maxY = math.Max(maxY, n.Y+r)
	}
	bw, bh := maxX-minX, maxY-minY
	if bw <= 0 {
		bw = 1
	}
	if bh <= 0 {
		bh = 1
	}
	w, h := float64(opt.Width), float64(opt.Height)
	scale := math.Min((w-2*opt.Padding)/bw, (h-2*opt.Padding)/bh)
	if scale <= 0 || math.IsInf(scale, 0) {
		scale = 1
	}
	tx := w/2 - scale*(minX+bw/2)
	ty := h/2 - scale*(minY+bh/2)
	project := func(x, y float64) (float64, float64) {
		return x*scale + tx, y*scale + ty
	}

	sc := scene{W: w, H: h, BG: theme.ParseHex(opt.Palette.Background)}
	for _, l := range g.VisibleLinks() {
		a, b := g.Node(l.Source), g.Node(l.Target)
		if a == nil || b == nil {
			continue
		}
		x1, y1 := project(a.X, a.Y)
		x2, y2 := project(b.X, b.Y)
		width := 1.0
		if l.Kind == graph.LinkSpine {
			width = 2.0
		}
		sc.Links = append(sc.Links, sceneLink{
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			Stroke: theme.ParseHex(opt.Palette.LinkColor(l.Kind)),
			Width:  width,
		})
	}
	for _, n := range nodes {
		x, y := project(n.X, n.Y)
		label := ""
		if opt.Labels {
			label = n.Label
		}
		sc.Nodes = append(sc.Nodes, sceneNode{
			X: x, Y: y, R: sim.RadiusFor(n.Kind) * scale,
			Shape: n.Shape,
			Fill:  theme.ParseHex(n.Color),
			Label: label,
		})
	}
	return sc, nil
}

// shapePoints returns the polygon outline for non-circle shapes, vertices
// in drawing order.
func shapePoints(s graph.Shape, x, y, r float64) [][2]float64 {
	switch s {
	case graph.ShapeSquare:
		k := r * math.Sqrt2 / 2
		return [][2]float64{{x - k, y - k}, {x + k, y - k}, {x + k, y + k}, {x - k, y + k}}
	case graph.ShapeDiamond:
		return [][2]float64{{x, y - r}, {x + r, y}, {x, y + r}, {x - r, y}}
	case graph.ShapeHexagon:
		pts := make([][2]float64, 6)
		for i := 0; i < 6; i++ {
			a := math.Pi/6 + float64(i)*math.Pi/3
			pts[i] = [2]float64{x + r*math.Cos(a), y + r*math.Sin(a)}
		}
		return pts
	default:
		return nil
	}
}
