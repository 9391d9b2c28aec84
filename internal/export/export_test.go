/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"graphfolio/internal/config"
	"graphfolio/internal/content"
	"graphfolio/internal/graph"
	"graphfolio/internal/theme"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	cats := []config.CategoryConfig{
		{Name: "work", Title: "Work", Shape: "square", Color: "#4f8fea"},
		{Name: "projects", Title: "Projects", Shape: "hexagon", Color: "#4fea8f"},
	}
	g := graph.Build(graph.BuildOptions{
		Categories:  cats,
		RefMode:     graph.RefAuto,
		MinTokenLen: 4,
		Rand:        rand.New(rand.NewSource(7)),
	}, []content.Section{
		{Category: "work", Blocks: []*content.Block{
			{Label: "Acme Corp", Text: "Shipped the Beamer pipeline."},
			{Label: "Initech", Text: "TPS modernization."},
		}},
		{Category: "projects", Blocks: []*content.Block{
			{Label: "Beamer", Text: "A projection toolkit."},
		}},
	})
	p := theme.ByName("dark")
	theme.Recolor(g, p, cats)
	// show everything so exports include items
	for _, n := range g.Items() {
		n.Hidden = false
	}
	return g
}

func TestWriteSVG(t *testing.T) {
	g := sampleGraph(t)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, g, Options{Labels: true}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	svg := buf.String()
	if !strings.HasPrefix(svg, "<svg ") {
		t.Fatalf("not an svg document: %q", svg[:40])
	}
	// 2 spine + 3 branch + 1 reference lines
	if got := strings.Count(svg, "<line "); got != 6 {
		t.Fatalf("expected 6 link lines, got %d", got)
	}
	// circle center + circle items, polygons for category shapes
	if !strings.Contains(svg, "<circle ") || !strings.Contains(svg, "<polygon ") {
		t.Fatalf("expected circles and polygons in output")
	}
	if !strings.Contains(svg, ">Acme Corp</text>") {
		t.Fatalf("expected item label in output")
	}
}

func TestSVGEscapesLabels(t *testing.T) {
	g := sampleGraph(t)
	g.Node("work-acme-corp-0").Label = `R&D <"lab">`
	var buf bytes.Buffer
	if err := WriteSVG(&buf, g, Options{Labels: true}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if !strings.Contains(buf.String(), "R&amp;D &lt;&quot;lab&quot;&gt;") {
		t.Fatalf("label not escaped")
	}
}

func TestWritePNG(t *testing.T) {
	g := sampleGraph(t)
	var buf bytes.Buffer
	if err := WritePNG(&buf, g, Options{Width: 400, Height: 300, Labels: true}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("unexpected dimensions %v", b)
	}
	// background must be the palette background, corners untouched by nodes
	bg := theme.ParseHex(theme.ByName("dark").Background)
	r, gr, bl, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != bg.R || uint8(gr>>8) != bg.G || uint8(bl>>8) != bg.B {
		t.Fatalf("corner pixel is not background")
	}
}

func TestExportFiles(t *testing.T) {
	g := sampleGraph(t)
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "out", "graph.svg")
	pngPath := filepath.Join(dir, "out", "graph.png")
	pdfPath := filepath.Join(dir, "out", "graph.pdf")

	if err := ExportSVG(svgPath, g, Options{}); err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if err := ExportPNG(pngPath, g, Options{Width: 320, Height: 200}); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	if err := ExportPDF(pdfPath, g, Options{Title: "Jane Doe", Labels: true}); err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	for _, p := range []string{svgPath, pngPath, pdfPath} {
		st, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if st.Size() <= 0 {
			t.Fatalf("%s is empty", p)
		}
	}
}

func TestExportNothingVisible(t *testing.T) {
	g := graph.Build(graph.BuildOptions{Rand: rand.New(rand.NewSource(1))}, nil)
	g.Nodes = nil // no center either
	var buf bytes.Buffer
	if err := WriteSVG(&buf, g, Options{}); err == nil {
		t.Fatalf("expected error for empty scene")
	}
}
