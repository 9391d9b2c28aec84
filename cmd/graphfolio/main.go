/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"graphfolio/internal/config"
	"graphfolio/internal/content"
	"graphfolio/internal/crash"
	"graphfolio/internal/export"
	"graphfolio/internal/graph"
	applog "graphfolio/internal/log"
	"graphfolio/internal/sim"
	"graphfolio/internal/theme"
	"graphfolio/internal/ui"
	"graphfolio/internal/version"
)

func usage() {
	fmt.Println("Graphfolio — interactive portfolio graph")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  graphfolio version|-v|--version              Show version")
	fmt.Println("  graphfolio build <portfolio>                 Build the graph and print a summary")
	fmt.Println("  graphfolio export <portfolio> <out.ext>      Render the settled graph (.svg, .png or .pdf)")
	fmt.Println("  graphfolio ui <portfolio>                    Launch the desktop viewer (build with -tags fyne)")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover(nil, nil, "")

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("Graphfolio — interactive portfolio graph")
		fmt.Println(version.String())
	case "build":
		if len(args) < 3 {
			fmt.Println("build requires <portfolio>")
			usage()
			os.Exit(2)
		}
		g, cfg, err := buildGraph(args[2])
		if err != nil {
			l.Error("build failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		printSummary(g, cfg)
	case "export":
		if len(args) < 4 {
			fmt.Println("export requires <portfolio> and <out.ext>")
			usage()
			os.Exit(2)
		}
		if err := runExport(args[2], args[3]); err != nil {
			l.Error("export failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", args[3])
	case "ui":
		if len(args) < 3 {
			fmt.Println("ui requires <portfolio>")
			usage()
			os.Exit(2)
		}
		if err := ui.Run(args[2]); err != nil {
			l.Error("ui failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Unknown command:", args[1])
		usage()
		os.Exit(2)
	}
}

func buildGraph(path string) (*graph.Graph, config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}
	src, err := content.Open(path)
	if err != nil {
		return nil, cfg, err
	}
	sections, err := src.Extract(cfg.Categories)
	if err != nil {
		return nil, cfg, fmt.Errorf("extract portfolio: %w", err)
	}
	centerLabel := content.TitleOf(src)
	if centerLabel == "" {
		centerLabel = filepath.Base(path)
	}
	g := graph.Build(graph.BuildOptions{
		Categories:  cfg.Categories,
		RefMode:     graph.ParseRefMode(cfg.Interaction.References),
		MinTokenLen: cfg.Interaction.MinRefTokenLen,
		CenterLabel: centerLabel,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}, sections)
	if err := graph.Validate(g); err != nil {
		return nil, cfg, fmt.Errorf("portfolio graph: %w", err)
	}
	return g, cfg, nil
}

func printSummary(g *graph.Graph, cfg config.AppConfig) {
	fmt.Printf("Center: %s\n", g.Center().Label)
	fmt.Printf("Categories: %d\n", len(g.Categories()))
	for _, c := range g.Categories() {
		fmt.Printf("  %-12s %d items\n", c.Label, len(g.ItemsOf(c.ID)))
	}
	refs := 0
	for _, l := range g.Links {
		if l.Kind == graph.LinkReference {
			refs++
		}
	}
	fmt.Printf("Links: %d (%d cross-references)\n", len(g.Links), refs)
	fmt.Printf("Reference mode: %s\n", cfg.Interaction.References)
}

func runExport(path, out string) error {
	g, cfg, err := buildGraph(path)
	if err != nil {
		return err
	}
	palette := theme.ByName(cfg.General.Theme)
	theme.Recolor(g, palette, cfg.Categories)
	// show everything and settle the layout before drawing
	for _, n := range g.Items() {
		n.Hidden = false
	}
	s := sim.New(g, cfg.Physics, graph.DefaultWidth, graph.DefaultHeight)
	s.Step(1000)

	opt := export.Options{
		Labels:  true,
		Title:   g.Center().Label,
		Palette: palette,
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".svg":
		return export.ExportSVG(out, g, opt)
	case ".png":
		return export.ExportPNG(out, g, opt)
	case ".pdf":
		return export.ExportPDF(out, g, opt)
	default:
		return fmt.Errorf("unsupported export format %q (want .svg, .png or .pdf)", filepath.Ext(out))
	}
}
