//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"graphfolio/internal/explore"
	"graphfolio/internal/export"
	"graphfolio/internal/graph"
	"graphfolio/internal/sim"
	"graphfolio/internal/theme"
	"graphfolio/internal/view"
)

// graphCanvas renders the graph and routes gestures to the controller. It
// is also the Highlighter and Scroller collaborator: on a desktop there is
// no page to scroll, so scroll-into-view recenters the viewport instead.
type graphCanvas struct {
	widget.BaseWidget

	g       *graph.Graph
	palette theme.Palette
	ctl     *explore.Controller

	cur, target view.Transform
	animLeft    int

	highlighted string
	nodes       map[string]*nodeWidget
}

func newGraphCanvas(g *graph.Graph, p theme.Palette) *graphCanvas {
	gc := &graphCanvas{
		g:       g,
		palette: p,
		cur:     view.IdentityTransform,
		target:  view.IdentityTransform,
		nodes:   make(map[string]*nodeWidget),
	}
	for _, n := range g.Nodes {
		gc.nodes[n.ID] = newNodeWidget(gc, n)
	}
	gc.ExtendBaseWidget(gc)
	return gc
}

// toScreen projects a scene point through the current transform.
func (gc *graphCanvas) toScreen(x, y float64) fyne.Position {
	p := gc.cur.Apply(view.Pt{X: float32(x), Y: float32(y)})
	return fyne.NewPos(p.X, p.Y)
}

// toScene inverts the current transform.
func (gc *graphCanvas) toScene(p fyne.Position) view.Pt {
	s := gc.cur.Scale
	if s == 0 {
		s = 1
	}
	return view.Pt{X: (p.X - gc.cur.Tx) / s, Y: (p.Y - gc.cur.Ty) / s}
}

// animateTo retargets the viewport transform; steps are consumed by the
// frame loop.
func (gc *graphCanvas) animateTo(tr view.Transform, d time.Duration) {
	gc.target = tr
	gc.animLeft = int(d / frameInterval)
	if gc.animLeft < 1 {
		gc.cur = tr
		gc.animLeft = 0
	}
}

func (gc *graphCanvas) animating() bool { return gc.animLeft > 0 }

// stepTransform advances one animation frame toward the target transform.
func (gc *graphCanvas) stepTransform() {
	if gc.animLeft <= 0 {
		return
	}
	t := 1.0 / float32(gc.animLeft)
	gc.cur.Scale += (gc.target.Scale - gc.cur.Scale) * t
	gc.cur.Tx += (gc.target.Tx - gc.cur.Tx) * t
	gc.cur.Ty += (gc.target.Ty - gc.cur.Ty) * t
	gc.animLeft--
}

// Highlight implements explore.Highlighter.
func (gc *graphCanvas) Highlight(identity string) {
	gc.highlighted = identity
	gc.Refresh()
}

// Clear implements explore.Highlighter.
func (gc *graphCanvas) Clear() {
	gc.highlighted = ""
	gc.Refresh()
}

// ScrollIntoView implements explore.Scroller by recentering the viewport on
// the node, keeping the current scale.
func (gc *graphCanvas) ScrollIntoView(identity string) {
	n := gc.g.Node(identity)
	if n == nil {
		return
	}
	sz := gc.Size()
	tr := gc.cur
	tr.Tx = sz.Width/2 - tr.Scale*float32(n.X)
	tr.Ty = sz.Height/2 - tr.Scale*float32(n.Y)
	gc.animateTo(tr, 300*time.Millisecond)
}

// Tapped on empty canvas collapses any open subgraph.
func (gc *graphCanvas) Tapped(_ *fyne.PointEvent) {
	if gc.ctl != nil {
		gc.ctl.ClickBackground()
	}
}

func (gc *graphCanvas) Resize(sz fyne.Size) {
	gc.BaseWidget.Resize(sz)
	if gc.ctl != nil {
		gc.ctl.Resize(sz.Width, sz.Height)
	}
}

func (gc *graphCanvas) MinSize() fyne.Size { return fyne.NewSize(480, 320) }

func (gc *graphCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &graphRenderer{gc: gc, bg: canvas.NewRectangle(theme.ParseHex(gc.palette.Background))}
	r.Refresh()
	return r
}

type graphRenderer struct {
	gc      *graphCanvas
	bg      *canvas.Rectangle
	lines   []*canvas.Line
	ring    *canvas.Circle
	objects []fyne.CanvasObject
}

func (r *graphRenderer) Layout(sz fyne.Size) {
	r.bg.Resize(sz)
}

func (r *graphRenderer) MinSize() fyne.Size { return r.gc.MinSize() }

func (r *graphRenderer) Refresh() {
	gc := r.gc
	r.bg.FillColor = theme.ParseHex(gc.palette.Background)

	links := gc.g.VisibleLinks()
	for len(r.lines) < len(links) {
		r.lines = append(r.lines, canvas.NewLine(theme.ParseHex(gc.palette.Spine)))
	}
	r.lines = r.lines[:len(links)]
	hovered := ""
	if gc.ctl != nil {
		hovered = gc.ctl.Hovered()
	}
	for i, l := range links {
		a, b := gc.g.Node(l.Source), gc.g.Node(l.Target)
		line := r.lines[i]
		line.StrokeColor = theme.ParseHex(gc.palette.LinkColor(l.Kind))
		line.StrokeWidth = 1
		if l.Kind == graph.LinkSpine {
			line.StrokeWidth = 2
		}
		if hovered != "" && (l.Source == hovered || l.Target == hovered) {
			line.StrokeColor = theme.ParseHex(gc.palette.Highlight)
			line.StrokeWidth += 1
		}
		line.Position1 = gc.toScreen(a.X, a.Y)
		line.Position2 = gc.toScreen(b.X, b.Y)
	}

	r.ring = nil
	if id := gc.highlighted; id != "" {
		if n := gc.g.Node(id); n != nil && !n.Hidden {
			rad := float32(sim.RadiusFor(n.Kind))*gc.cur.Scale + 5
			ring := canvas.NewCircle(color.Transparent)
			ring.StrokeColor = theme.ParseHex(gc.palette.Highlight)
			ring.StrokeWidth = 2
			p := gc.toScreen(n.X, n.Y)
			ring.Move(fyne.NewPos(p.X-rad, p.Y-rad))
			ring.Resize(fyne.NewSize(rad*2, rad*2))
			r.ring = ring
		}
	}

	r.objects = r.objects[:0]
	r.objects = append(r.objects, r.bg)
	for _, line := range r.lines {
		r.objects = append(r.objects, line)
	}
	if r.ring != nil {
		r.objects = append(r.objects, r.ring)
	}
	for _, n := range gc.g.Nodes {
		nw := gc.nodes[n.ID]
		if nw == nil {
			continue
		}
		nw.Hidden = n.Hidden
		if !n.Hidden {
			nw.place()
			r.objects = append(r.objects, nw)
		}
	}
	canvas.Refresh(gc)
}

func (r *graphRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *graphRenderer) Destroy()                     {}

// nodeWidget draws one node glyph with its label and forwards gestures.
type nodeWidget struct {
	widget.BaseWidget

	owner    *graphCanvas
	node     *graph.Node
	img      *canvas.Image
	label    *canvas.Text
	lastFill string
	pressed  bool
}

func newNodeWidget(owner *graphCanvas, n *graph.Node) *nodeWidget {
	nw := &nodeWidget{owner: owner, node: n}
	nw.img = canvas.NewImageFromImage(export.Glyph(n.Shape, theme.ParseHex(n.Color), sim.RadiusFor(n.Kind)))
	nw.img.FillMode = canvas.ImageFillContain
	nw.label = canvas.NewText(n.Label, theme.ParseHex(n.Color))
	nw.label.TextSize = 11
	nw.label.Alignment = fyne.TextAlignCenter
	nw.lastFill = n.Color
	nw.ExtendBaseWidget(nw)
	return nw
}

// place positions the widget so the glyph center sits on the projected node
// position.
func (nw *nodeWidget) place() {
	rad := float32(sim.RadiusFor(nw.node.Kind)) * nw.owner.cur.Scale
	if nw.owner.ctl != nil && nw.owner.ctl.Hovered() == nw.node.ID {
		rad *= 1.15
	}
	p := nw.owner.toScreen(nw.node.X, nw.node.Y)
	nw.Move(fyne.NewPos(p.X-rad, p.Y-rad))
	nw.Resize(fyne.NewSize(rad*2, rad*2+16))
	if nw.node.Color != nw.lastFill {
		nw.img.Image = export.Glyph(nw.node.Shape, theme.ParseHex(nw.node.Color), sim.RadiusFor(nw.node.Kind))
		nw.label.Color = theme.ParseHex(nw.node.Color)
		nw.lastFill = nw.node.Color
		nw.img.Refresh()
	}
}

func (nw *nodeWidget) center() fyne.Position {
	sz := nw.Size()
	pos := nw.Position()
	return fyne.NewPos(pos.X+sz.Width/2, pos.Y+sz.Height/2)
}

func (nw *nodeWidget) Tapped(_ *fyne.PointEvent) {
	nw.owner.ctl.ClickNode(nw.node.ID)
}

func (nw *nodeWidget) Dragged(e *fyne.DragEvent) {
	ctl := nw.owner.ctl
	if !nw.pressed {
		nw.pressed = true
		ctl.PointerDown(nw.node.ID, nw.owner.toScene(nw.center()))
	}
	abs := nw.center()
	abs.X += e.Dragged.DX
	abs.Y += e.Dragged.DY
	ctl.PointerMove(nw.owner.toScene(abs))
}

func (nw *nodeWidget) DragEnd() {
	if !nw.pressed {
		return
	}
	nw.pressed = false
	nw.owner.ctl.PointerUp(nw.owner.toScene(nw.center()))
}

func (nw *nodeWidget) MouseIn(_ *desktop.MouseEvent) {
	nw.owner.ctl.HoverEnter(nw.node.ID)
	nw.owner.Refresh()
}

func (nw *nodeWidget) MouseMoved(_ *desktop.MouseEvent) {}

func (nw *nodeWidget) MouseOut() {
	nw.owner.ctl.HoverExit(nw.node.ID)
	nw.owner.Refresh()
}

func (nw *nodeWidget) CreateRenderer() fyne.WidgetRenderer {
	return &nodeRenderer{nw: nw}
}

type nodeRenderer struct {
	nw *nodeWidget
}

func (r *nodeRenderer) Layout(sz fyne.Size) {
	glyph := sz.Height - 16
	r.nw.img.Resize(fyne.NewSize(sz.Width, glyph))
	r.nw.img.Move(fyne.NewPos(0, 0))
	r.nw.label.Resize(fyne.NewSize(sz.Width, 14))
	r.nw.label.Move(fyne.NewPos(0, glyph+2))
}

func (r *nodeRenderer) MinSize() fyne.Size { return fyne.NewSize(12, 12) }

func (r *nodeRenderer) Refresh() {
	canvas.Refresh(r.nw)
}

func (r *nodeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.nw.img, r.nw.label}
}

func (r *nodeRenderer) Destroy() {}
