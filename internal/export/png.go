/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"graphfolio/internal/graph"
)

// WritePNG rasterizes the visible graph and writes a PNG.
func WritePNG(w io.Writer, g *graph.Graph, opt Options) error {
	opt.applyDefaults()
	sc, err := buildScene(g, opt)
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(sc.BG), image.Point{}, draw.Src)

	for _, l := range sc.Links {
		fillLine(img, l)
	}
	for _, n := range sc.Nodes {
		fillNode(img, n)
		if n.Label != "" {
			drawLabel(img, n)
		}
	}
	return png.Encode(w, img)
}

// ExportPNG writes the visible graph to a PNG file.
func ExportPNG(path string, g *graph.Graph, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := WritePNG(f, g, opt); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Glyph rasterizes one filled node glyph centered in a square image, for
// use as a canvas sprite.
func Glyph(shape graph.Shape, fill color.RGBA, radius float64) *image.RGBA {
	size := int(math.Ceil(radius))*2 + 2
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	fillNode(img, sceneNode{X: c, Y: c, R: radius, Shape: shape, Fill: fill})
	return img
}

// fillLine draws a link as a thin antialiased quad along the segment.
func fillLine(img *image.RGBA, l sceneLink) {
	dx, dy := l.X2-l.X1, l.Y2-l.Y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// unit normal scaled to half width
	nx := -dy / length * l.Width / 2
	ny := dx / length * l.Width / 2

	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	r.MoveTo(float32(l.X1+nx), float32(l.Y1+ny))
	r.LineTo(float32(l.X2+nx), float32(l.Y2+ny))
	r.LineTo(float32(l.X2-nx), float32(l.Y2-ny))
	r.LineTo(float32(l.X1-nx), float32(l.Y1-ny))
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(l.Stroke), image.Point{})
}

// circle control point distance for cubic Bezier approximation
const kappa = 0.5522847498

func fillNode(img *image.RGBA, n sceneNode) {
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	if n.Shape == graph.ShapeCircle {
		x, y, rad := float32(n.X), float32(n.Y), float32(n.R)
		k := rad * kappa
		r.MoveTo(x+rad, y)
		r.CubeTo(x+rad, y+k, x+k, y+rad, x, y+rad)
		r.CubeTo(x-k, y+rad, x-rad, y+k, x-rad, y)
		r.CubeTo(x-rad, y-k, x-k, y-rad, x, y-rad)
		r.CubeTo(x+k, y-rad, x+rad, y-k, x+rad, y)
	} else {
		pts := shapePoints(n.Shape, n.X, n.Y, n.R)
		r.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
		for _, p := range pts[1:] {
			r.LineTo(float32(p[0]), float32(p[1]))
		}
	}
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(n.Fill), image.Point{})
}

func drawLabel(img *image.RGBA, n sceneNode) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, n.Label).Ceil()
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: n.Fill.R, G: n.Fill.G, B: n.Fill.B, A: 255}),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(n.X) - width/2),
			Y: fixed.I(int(n.Y+n.R) + 14),
		},
	}
	d.DrawString(n.Label)
}
