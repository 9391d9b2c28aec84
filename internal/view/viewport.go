/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package view

// Default viewport dimensions, used when the real container size is not
// known yet. Layout degrades to these instead of failing.
const (
	DefaultWidth  float32 = 1200
	DefaultHeight float32 = 800
)

// Transform is a uniform scale plus translation framing the graph in the
// viewport. It is applied to the rendered scene; node positions are never
// altered by framing.
type Transform struct {
	Scale  float32
	Tx, Ty float32
}

// IdentityTransform leaves the scene unframed.
var IdentityTransform = Transform{Scale: 1}

// Affine converts the transform to matrix form.
func (t Transform) Affine() Affine2D {
	return Translate(t.Tx, t.Ty).Mul(Scale(t.Scale, t.Scale))
}

// Apply maps a scene point to viewport coordinates.
func (t Transform) Apply(p Pt) Pt {
	return Pt{p.X*t.Scale + t.Tx, p.Y*t.Scale + t.Ty}
}

// Fit computes the transform framing the bounding box of pts in a viewport:
// box plus padding, uniform scale capped at maxScale, translation centering
// the box. A zero-sized viewport falls back to the defaults; an empty point
// set yields the identity transform.
func Fit(pts []Pt, viewport Size, padding, maxScale float32) Transform {
	if viewport.W <= 0 || viewport.H <= 0 {
		viewport = Size{W: DefaultWidth, H: DefaultHeight}
	}
	box, ok := BoundsOf(pts)
	if !ok {
		return IdentityTransform
	}
	box = box.Inset(-padding)

	scale := maxScale
	if scale <= 0 {
		scale = 1
	}
	if box.W > 0 {
		scale = min(scale, viewport.W/box.W)
	}
	if box.H > 0 {
		scale = min(scale, viewport.H/box.H)
	}

	c := box.Center()
	return Transform{
		Scale: scale,
		Tx:    viewport.W/2 - c.X*scale,
		Ty:    viewport.H/2 - c.Y*scale,
	}
}
