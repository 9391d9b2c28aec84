/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package explore owns the runtime interaction state of the graph: which
// subgraph is open, gesture interpretation, and the choreography between
// visibility changes, simulation reheats and viewport reframes. All methods
// must be called from the single event loop that owns the graph; the
// controller has no internal locking by design of the concurrency model.
package explore

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"time"

	"graphfolio/internal/config"
	"graphfolio/internal/graph"
	applog "graphfolio/internal/log"
	"graphfolio/internal/sim"
	"graphfolio/internal/theme"
	"graphfolio/internal/view"
)

// State is the visibility state machine's current state.
type State int

const (
	// StateClosed hides all items.
	StateClosed State = iota
	// StateSingleOpen shows one category's items.
	StateSingleOpen
	// StateMultiOpen shows a set of categories, entered only via
	// cross-reference expansion from an item click.
	StateMultiOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateSingleOpen:
		return "single-open"
	case StateMultiOpen:
		return "multi-open"
	}
	return "state"
}

// SelectionRule picks the node subset a reframe targets.
type SelectionRule int

const (
	// SelectVisible frames center, categories and shown items.
	SelectVisible SelectionRule = iota
	// SelectSkeleton frames center and categories only.
	SelectSkeleton
)

// Reshuffle scatter bands, by node kind.
const (
	categoryBandMin = 140.0
	categoryBandMax = 240.0
	itemBandMin     = 80.0
	itemBandMax     = 360.0
)

// Options wires a Controller. Graph, Sim and Interaction are required; the
// collaborators are optional and nil-safe.
type Options struct {
	Graph       *graph.Graph
	Sim         *sim.Simulation
	Interaction config.InteractionConfig
	Categories  []config.CategoryConfig
	Viewport    view.Size

	Feedback    Feedback
	Highlighter Highlighter
	Scroller    Scroller
	Scheduler   Scheduler

	// OnFrame receives the framing transform to animate over the given
	// duration. The controller never moves nodes to frame them.
	OnFrame func(view.Transform, time.Duration)
	// OnRedraw requests a visual refresh after a recolor.
	OnRedraw func()

	Rand *rand.Rand
}

// Controller is the visibility state machine plus interaction dispatch.
type Controller struct {
	g     *graph.Graph
	sim   *sim.Simulation
	icfg  config.InteractionConfig
	cats  []config.CategoryConfig
	vp    view.Size
	log   *slog.Logger
	rng   *rand.Rand
	sched Scheduler

	feedback    Feedback
	highlighter Highlighter
	scroller    Scroller
	onFrame     func(view.Transform, time.Duration)
	onRedraw    func()

	state   State
	open    map[string]bool
	hovered string

	pressID   string
	pressAt   view.Pt
	prevAt    view.Pt
	dragging  bool
	havePress bool
}

// NewController builds a controller in the closed state.
func NewController(opts Options) *Controller {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = TimerScheduler{}
	}
	c := &Controller{
		g:           opts.Graph,
		sim:         opts.Sim,
		icfg:        opts.Interaction,
		cats:        opts.Categories,
		vp:          opts.Viewport,
		log:         applog.WithComponent("explore"),
		rng:         rng,
		sched:       sched,
		feedback:    opts.Feedback,
		highlighter: opts.Highlighter,
		scroller:    opts.Scroller,
		onFrame:     opts.OnFrame,
		onRedraw:    opts.OnRedraw,
		state:       StateClosed,
		open:        make(map[string]bool),
	}
	return c
}

// State returns the current visibility state.
func (c *Controller) State() State { return c.state }

// OpenCategories returns the open category set, sorted for stable output.
func (c *Controller) OpenCategories() []string {
	out := make([]string, 0, len(c.open))
	for id := range c.open {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// emit forwards a semantic event when a feedback sink is attached.
func (c *Controller) emit(e Event) {
	if c.feedback != nil {
		c.feedback.Emit(e)
	}
}

// ClickNode dispatches a click by node kind. Clicks on hidden nodes are
// ignored; the UI should not deliver them, but gesture recognition can race
// a visibility transition.
func (c *Controller) ClickNode(id string) {
	n := c.g.Node(id)
	if n == nil || n.Hidden {
		return
	}
	c.emit(Event{Kind: EventClick, NodeID: id})
	switch n.Kind {
	case graph.KindCenter:
		c.Reshuffle()
	case graph.KindCategory:
		c.clickCategory(id)
	case graph.KindItem:
		c.clickItem(id)
	}
}

// ClickBackground collapses any open subgraph.
func (c *Controller) ClickBackground() { c.Collapse() }

// Collapse is the terminal collapse action: any state to closed.
func (c *Controller) Collapse() {
	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	c.open = make(map[string]bool)
	c.applyVisibility(SelectSkeleton)
	c.emit(Event{Kind: EventCollapse})
}

func (c *Controller) clickCategory(id string) {
	switch {
	case c.state == StateSingleOpen && c.open[id] && len(c.open) == 1:
		// same open category again: back to closed
		c.state = StateClosed
		c.open = make(map[string]bool)
		c.applyVisibility(SelectSkeleton)
		c.emit(Event{Kind: EventCollapse, NodeID: id})
	default:
		// closed, a different single-open category, or multi-open:
		// exactly this category opens
		c.state = StateSingleOpen
		c.open = map[string]bool{id: true}
		c.applyVisibility(SelectVisible)
		c.emit(Event{Kind: EventExpand, NodeID: id})
	}
}

func (c *Controller) clickItem(id string) {
	n := c.g.Node(id)
	set := map[string]bool{n.Category: true}
	for _, partner := range c.g.ReferencePartners(id) {
		if p := c.g.Node(partner); p != nil {
			set[p.Category] = true
		}
	}
	if len(set) > 1 {
		c.state = StateMultiOpen
	} else {
		c.state = StateSingleOpen
	}
	c.open = set
	c.applyVisibility(SelectVisible)
	c.emit(Event{Kind: EventExpand, NodeID: id})
	if c.scroller != nil {
		c.scroller.ScrollIntoView(id)
	}
}

// applyVisibility enforces the visibility invariant for the current open
// set, reheats the simulation, and schedules the deferred reframe so the
// transition animation has begun before framing chases it.
func (c *Controller) applyVisibility(rule SelectionRule) {
	for _, n := range c.g.Items() {
		n.Hidden = !c.open[n.Category]
	}
	c.sim.Reheat()
	c.scheduleReframe(rule)
	c.log.Debug("visibility applied",
		slog.String("state", c.state.String()),
		slog.Int("open", len(c.open)))
}

func (c *Controller) scheduleReframe(rule SelectionRule) {
	delay := time.Duration(c.icfg.ReframeDelayMs) * time.Millisecond
	c.sched.After(delay, func() { c.Reframe(rule) })
}

// Reframe computes and pushes the framing transform for a selection rule.
// Node positions are read, never written.
func (c *Controller) Reframe(rule SelectionRule) {
	if c.onFrame == nil {
		return
	}
	var nodes []*graph.Node
	if rule == SelectSkeleton {
		nodes = c.g.SkeletonNodes()
	} else {
		nodes = c.g.VisibleNodes()
	}
	pts := make([]view.Pt, len(nodes))
	for i, n := range nodes {
		pts[i] = view.Pt{X: float32(n.X), Y: float32(n.Y)}
	}
	tr := view.Fit(pts, c.vp, float32(c.icfg.FitPadding), float32(c.icfg.MaxScale))
	c.onFrame(tr, time.Duration(c.icfg.TransitionMs)*time.Millisecond)
}

// Reshuffle randomizes all non-center positions within kind-specific radius
// bands, collapses any open subgraph, reheats hard and reframes to the
// skeleton. The center stays pinned at the viewport center throughout the
// settling phase.
func (c *Controller) Reshuffle() {
	cx, cy := c.sim.Center()
	if ctr := c.g.Center(); ctr != nil {
		ctr.Pin(cx, cy)
	}
	for _, n := range c.g.Nodes {
		if n.Kind == graph.KindCenter {
			continue
		}
		var lo, hi float64
		if n.Kind == graph.KindCategory {
			lo, hi = categoryBandMin, categoryBandMax
		} else {
			lo, hi = itemBandMin, itemBandMax
		}
		angle := c.rng.Float64() * 2 * math.Pi
		radius := lo + c.rng.Float64()*(hi-lo)
		n.X = cx + radius*math.Cos(angle)
		n.Y = cy + radius*math.Sin(angle)
		n.VX, n.VY = 0, 0
	}
	c.state = StateClosed
	c.open = make(map[string]bool)
	c.applyVisibility(SelectSkeleton)
	c.emit(Event{Kind: EventCollapse})
}

// HoverEnter marks a node hovered and notifies collaborators. Hidden nodes
// cannot be hovered.
func (c *Controller) HoverEnter(id string) {
	n := c.g.Node(id)
	if n == nil || n.Hidden || c.hovered == id {
		return
	}
	c.hovered = id
	c.emit(Event{Kind: EventHover, NodeID: id})
	if n.Kind == graph.KindItem && c.highlighter != nil {
		c.highlighter.Highlight(id)
	}
}

// HoverExit clears the hover state.
func (c *Controller) HoverExit(id string) {
	if c.hovered != id {
		return
	}
	c.hovered = ""
	c.emit(Event{Kind: EventUnhover, NodeID: id})
	if c.highlighter != nil {
		c.highlighter.Clear()
	}
}

// Hovered returns the hovered node's identity, or "".
func (c *Controller) Hovered() string { return c.hovered }

// ConnectedVisibleLinks returns the currently visible links touching a
// node, for hover highlighting.
func (c *Controller) ConnectedVisibleLinks(id string) []graph.Link {
	var out []graph.Link
	for _, l := range c.g.LinksOf(id) {
		if c.g.LinkVisible(l) {
			out = append(out, l)
		}
	}
	return out
}

// PointerDown starts gesture recognition on a node. Coordinates are scene
// coordinates (the UI un-projects the viewport transform first).
func (c *Controller) PointerDown(id string, at view.Pt) {
	n := c.g.Node(id)
	if n == nil || n.Hidden {
		return
	}
	c.pressID = id
	c.pressAt = at
	c.prevAt = at
	c.havePress = true
	c.dragging = false
}

// PointerMove continues a gesture. A press becomes a drag once the pointer
// travels the minimum displacement threshold; below it, release still
// counts as a click.
func (c *Controller) PointerMove(at view.Pt) {
	if !c.havePress {
		return
	}
	n := c.g.Node(c.pressID)
	if n == nil {
		c.havePress = false
		return
	}
	if !c.dragging {
		dx := float64(at.X - c.pressAt.X)
		dy := float64(at.Y - c.pressAt.Y)
		if math.Hypot(dx, dy) < c.icfg.DragThresholdPx {
			return
		}
		c.dragging = true
		c.sim.SetDragging(true)
		c.emit(Event{Kind: EventDragStart, NodeID: c.pressID})
	}
	vel := math.Hypot(float64(at.X-c.prevAt.X), float64(at.Y-c.prevAt.Y))
	c.prevAt = at
	n.Pin(float64(at.X), float64(at.Y))
	c.emit(Event{Kind: EventDrag, NodeID: c.pressID, Velocity: vel})
}

// PointerUp ends a gesture: a completed drag unpins (except the center,
// which stays pinned), a short press dispatches as a click.
func (c *Controller) PointerUp(at view.Pt) {
	if !c.havePress {
		return
	}
	id := c.pressID
	wasDrag := c.dragging
	c.havePress = false
	c.dragging = false
	c.pressID = ""

	if !wasDrag {
		c.ClickNode(id)
		return
	}
	c.sim.SetDragging(false)
	if n := c.g.Node(id); n != nil && n.Kind != graph.KindCenter {
		n.Unpin()
	}
	c.emit(Event{Kind: EventDragEnd, NodeID: id})
}

// Dragging reports the in-flight drag target, if any.
func (c *Controller) Dragging() (string, bool) {
	if c.dragging {
		return c.pressID, true
	}
	return "", false
}

// Resize re-derives the centering target from the new viewport and nudges
// the simulation; the layout is never recomputed wholesale.
func (c *Controller) Resize(w, h float32) {
	if w <= 0 || h <= 0 {
		w, h = view.DefaultWidth, view.DefaultHeight
	}
	c.vp = view.Size{W: w, H: h}
	c.sim.SetCenter(float64(w)/2, float64(h)/2)
}

// Viewport returns the current viewport size.
func (c *Controller) Viewport() view.Size { return c.vp }

// Recolor applies a palette to the graph and requests a redraw. The graph
// is not rebuilt and no visibility changes.
func (c *Controller) Recolor(p theme.Palette) {
	theme.Recolor(c.g, p, c.cats)
	if c.onRedraw != nil {
		c.onRedraw()
	}
}

// NavigateAway emits the departure event (window close, page leave).
func (c *Controller) NavigateAway() {
	c.emit(Event{Kind: EventNavigate})
}
