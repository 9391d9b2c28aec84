/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package view

import (
	"math"
	"testing"
)

func approx(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-3 }

func TestBoundsOf(t *testing.T) {
	pts := []Pt{{10, 20}, {-5, 40}, {30, 0}}
	box, ok := BoundsOf(pts)
	if !ok {
		t.Fatalf("expected bounds")
	}
	if box.X != -5 || box.Y != 0 || box.W != 35 || box.H != 40 {
		t.Fatalf("bounds: %+v", box)
	}
	if _, ok := BoundsOf(nil); ok {
		t.Fatalf("empty set must report no bounds")
	}
}

func TestRectOps(t *testing.T) {
	r := R(0, 0, 10, 10)
	if !r.Contains(Pt{5, 5}) || r.Contains(Pt{11, 5}) {
		t.Fatalf("contains misbehaves")
	}
	u := r.Union(R(20, 20, 5, 5))
	if u.X != 0 || u.Y != 0 || u.W != 25 || u.H != 25 {
		t.Fatalf("union: %+v", u)
	}
	g := r.Inset(-5)
	if g.X != -5 || g.W != 20 {
		t.Fatalf("negative inset should grow: %+v", g)
	}
	if c := r.Center(); c.X != 5 || c.Y != 5 {
		t.Fatalf("center: %+v", c)
	}
}

func TestFitCentersAndScales(t *testing.T) {
	// a 100x100 box around the origin in a 1000x500 viewport
	pts := []Pt{{-50, -50}, {50, 50}}
	tr := Fit(pts, Size{1000, 500}, 0, 10)
	// limited by height: 500/100 = 5
	if !approx(tr.Scale, 5) {
		t.Fatalf("scale: %v", tr.Scale)
	}
	// box center (0,0) maps to viewport center
	got := tr.Apply(Pt{0, 0})
	if !approx(got.X, 500) || !approx(got.Y, 250) {
		t.Fatalf("box center maps to %+v", got)
	}
}

func TestFitHonorsPaddingAndMaxScale(t *testing.T) {
	pts := []Pt{{0, 0}, {100, 100}}
	unpadded := Fit(pts, Size{400, 400}, 0, 100)
	padded := Fit(pts, Size{400, 400}, 50, 100)
	if padded.Scale >= unpadded.Scale {
		t.Fatalf("padding must shrink scale: %v vs %v", padded.Scale, unpadded.Scale)
	}
	capped := Fit(pts, Size{4000, 4000}, 0, 1.5)
	if capped.Scale != 1.5 {
		t.Fatalf("max scale not honored: %v", capped.Scale)
	}
}

func TestFitAllPointsInsideViewport(t *testing.T) {
	pts := []Pt{{-200, 80}, {340, -90}, {10, 400}}
	vp := Size{800, 600}
	tr := Fit(pts, vp, 40, 3)
	for _, p := range pts {
		m := tr.Apply(p)
		if m.X < 0 || m.Y < 0 || m.X > vp.W || m.Y > vp.H {
			t.Fatalf("point %+v mapped outside viewport: %+v", p, m)
		}
	}
}

func TestFitFallbacks(t *testing.T) {
	// zero viewport falls back to defaults rather than failing
	tr := Fit([]Pt{{0, 0}, {100, 0}}, Size{}, 0, 1)
	if tr.Scale <= 0 {
		t.Fatalf("fallback produced unusable scale: %v", tr.Scale)
	}
	// empty selection frames nothing
	if tr := Fit(nil, Size{800, 600}, 10, 2); tr != IdentityTransform {
		t.Fatalf("empty set should produce identity, got %+v", tr)
	}
	// degenerate (single point) box: capped at max scale, point centered
	tr = Fit([]Pt{{7, 7}}, Size{800, 600}, 0, 2)
	got := tr.Apply(Pt{7, 7})
	if !approx(got.X, 400) || !approx(got.Y, 300) {
		t.Fatalf("single point not centered: %+v", got)
	}
}

func TestTransformAffineAgreesWithApply(t *testing.T) {
	tr := Transform{Scale: 2, Tx: 30, Ty: -10}
	p := Pt{5, 8}
	a, b := tr.Apply(p), tr.Affine().Apply(p)
	if !approx(a.X, b.X) || !approx(a.Y, b.Y) {
		t.Fatalf("affine and direct application disagree: %+v vs %+v", a, b)
	}
}

func TestAffineCompose(t *testing.T) {
	m := Translate(10, 0).Mul(Scale(2, 2))
	got := m.Apply(Pt{3, 4})
	if !approx(got.X, 16) || !approx(got.Y, 8) {
		t.Fatalf("compose: %+v", got)
	}
}
