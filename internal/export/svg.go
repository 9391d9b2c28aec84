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
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"graphfolio/internal/graph"
)

// WriteSVG renders the visible graph as an SVG document.
func WriteSVG(w io.Writer, g *graph.Graph, opt Options) error {
	opt.applyDefaults()
	sc, err := buildScene(g, opt)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opt.Width, opt.Height, opt.Width, opt.Height)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="%s"/>`+"\n", opt.Width, opt.Height, hexOf(sc.BG))

	for _, l := range sc.Links {
		fmt.Fprintf(&buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			l.X1, l.Y1, l.X2, l.Y2, hexOf(l.Stroke), l.Width)
	}
	for _, n := range sc.Nodes {
		if n.Shape == graph.ShapeCircle {
			fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				n.X, n.Y, n.R, hexOf(n.Fill))
		} else {
			buf.WriteString(`<polygon points="`)
			for i, p := range shapePoints(n.Shape, n.X, n.Y, n.R) {
				if i > 0 {
					buf.WriteByte(' ')
				}
				fmt.Fprintf(&buf, "%.1f,%.1f", p[0], p[1])
			}
			fmt.Fprintf(&buf, `" fill="%s"/>`+"\n", hexOf(n.Fill))
		}
		if n.Label != "" {
			fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
				n.X, n.Y+n.R+14, hexOf(n.Fill), escapeXML(n.Label))
		}
	}
	buf.WriteString("</svg>\n")
	_, err = w.Write(buf.Bytes())
	return err
}

// ExportSVG writes the visible graph to an SVG file.
func ExportSVG(path string, g *graph.Graph, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	if err := WriteSVG(f, g, opt); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escapeXML(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
