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
	"image/color"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"graphfolio/internal/graph"
)

// ExportPDF writes the visible graph as a single-page PDF.
func ExportPDF(path string, g *graph.Graph, opt Options) error {
	opt.applyDefaults()
	sc, err := buildScene(g, opt)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	w, h := float64(opt.Width), float64(opt.Height)
	// Points for a 1:1 mapping from the scene
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
		OrientationStr: "",
	})
	title := opt.Title
	if title == "" {
		title = "Portfolio Graph"
	}
	pdf.SetTitle(title, false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})

	setFill(pdf, sc.BG)
	pdf.Rect(0, 0, w, h, "F")

	for _, l := range sc.Links {
		setDraw(pdf, l.Stroke)
		pdf.SetLineWidth(l.Width)
		pdf.Line(l.X1, l.Y1, l.X2, l.Y2)
	}
	for _, n := range sc.Nodes {
		setFill(pdf, n.Fill)
		if n.Shape == graph.ShapeCircle {
			pdf.Circle(n.X, n.Y, n.R, "F")
		} else {
			pts := shapePoints(n.Shape, n.X, n.Y, n.R)
			poly := make([]gofpdf.PointType, len(pts))
			for i, p := range pts {
				poly[i] = gofpdf.PointType{X: p[0], Y: p[1]}
			}
			pdf.Polygon(poly, "F")
		}
		if n.Label != "" {
			pdf.SetTextColor(int(n.Fill.R), int(n.Fill.G), int(n.Fill.B))
			tw := pdf.GetStringWidth(n.Label)
			pdf.Text(n.X-tw/2, n.Y+n.R+14, n.Label)
		}
	}
	return pdf.OutputFileAndClose(path)
}

func setFill(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setDraw(pdf *gofpdf.Fpdf, c color.RGBA) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}
