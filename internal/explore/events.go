/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package explore

import "time"

// EventKind enumerates the semantic feedback events the controller emits.
// An audio/haptic subsystem may subscribe; its absence never affects graph
// behavior.
type EventKind int

const (
	EventHover EventKind = iota
	EventUnhover
	EventClick
	EventExpand
	EventCollapse
	EventDragStart
	EventDrag
	EventDragEnd
	EventNavigate
)

func (k EventKind) String() string {
	switch k {
	case EventHover:
		return "hover"
	case EventUnhover:
		return "unhover"
	case EventClick:
		return "click"
	case EventExpand:
		return "expand"
	case EventCollapse:
		return "collapse"
	case EventDragStart:
		return "drag-start"
	case EventDrag:
		return "drag-update"
	case EventDragEnd:
		return "drag-end"
	case EventNavigate:
		return "navigate-away"
	}
	return "event"
}

// Event is one semantic feedback event. Velocity is only meaningful for
// drag updates.
type Event struct {
	Kind     EventKind
	NodeID   string
	Velocity float64
}

// Feedback receives semantic events, fire-and-forget.
type Feedback interface {
	Emit(Event)
}

// Highlighter toggles the page-side highlight for a content block. At most
// one block is highlighted at a time; Clear removes any highlight.
type Highlighter interface {
	Highlight(identity string)
	Clear()
}

// Scroller scrolls the page to a content block.
type Scroller interface {
	ScrollIntoView(identity string)
}

// Scheduler defers work, used for the reframe that follows a visibility
// change once its transition has begun. The implementation must deliver the
// callback on the event loop that owns the controller.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler is the production Scheduler, backed by time.AfterFunc.
// UI layers that need loop affinity wrap the callback accordingly.
type TimerScheduler struct {
	Wrap func(func()) // optional, e.g. fyne.Do
}

func (s TimerScheduler) After(d time.Duration, fn func()) {
	if s.Wrap != nil {
		inner := fn
		fn = func() { s.Wrap(inner) }
	}
	time.AfterFunc(d, fn)
}
