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
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"graphfolio/internal/config"
	"graphfolio/internal/content"
	"graphfolio/internal/crash"
	"graphfolio/internal/explore"
	"graphfolio/internal/export"
	"graphfolio/internal/graph"
	applog "graphfolio/internal/log"
	"graphfolio/internal/sim"
	"graphfolio/internal/store"
	"graphfolio/internal/theme"
	"graphfolio/internal/version"
	"graphfolio/internal/view"
)

const (
	frameInterval = time.Second / 60
	layoutProfile = "default"
	layoutKeep    = 10
)

// Run starts the Fyne desktop viewer on a portfolio file.
func Run(portfolioPath string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting viewer", slog.String("portfolio", portfolioPath))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	src, err := content.Open(portfolioPath)
	if err != nil {
		return err
	}
	sections, err := src.Extract(cfg.Categories)
	if err != nil {
		return fmt.Errorf("extract portfolio: %w", err)
	}
	centerLabel := content.TitleOf(src)
	if centerLabel == "" {
		centerLabel = filepath.Base(portfolioPath)
	}

	g := graph.Build(graph.BuildOptions{
		Categories:  cfg.Categories,
		RefMode:     graph.ParseRefMode(cfg.Interaction.References),
		MinTokenLen: cfg.Interaction.MinRefTokenLen,
		CenterLabel: centerLabel,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}, sections)
	if err := graph.Validate(g); err != nil {
		return fmt.Errorf("portfolio graph: %w", err)
	}

	statePath, err := store.DefaultPath()
	if err != nil {
		return err
	}
	st, err := store.Open(statePath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer crash.Recover(st, g, layoutProfile)

	ctx := context.Background()
	themeName, _ := st.GetPref(ctx, store.PrefTheme, cfg.General.Theme)
	palette := theme.ByName(themeName)
	theme.Recolor(g, palette, cfg.Categories)

	if snap, err := st.LatestLayout(ctx, layoutProfile); err == nil && snap != nil {
		if err := g.ApplyPositions(snap.Blob); err != nil {
			l.Warn("stored layout unusable", slog.Any("err", err))
		} else {
			l.Info("restored layout", slog.Time("saved", snap.TS))
		}
	}

	fyneApp := app.NewWithID("graphfolio")
	w := fyneApp.NewWindow(centerLabel + " — Graphfolio " + version.String())
	w.Resize(fyne.NewSize(view.DefaultWidth, view.DefaultHeight))

	s := sim.New(g, cfg.Physics, float64(view.DefaultWidth), float64(view.DefaultHeight))

	gc := newGraphCanvas(g, palette)
	status := widget.NewLabel("Ready")

	ctl := explore.NewController(explore.Options{
		Graph:       g,
		Sim:         s,
		Interaction: cfg.Interaction,
		Categories:  cfg.Categories,
		Viewport:    view.Size{W: view.DefaultWidth, H: view.DefaultHeight},
		Feedback:    &statusFeedback{status: status, graph: g},
		Highlighter: gc,
		Scroller:    gc,
		Scheduler:   explore.TimerScheduler{Wrap: fyne.Do},
		OnFrame:     gc.animateTo,
		OnRedraw:    gc.Refresh,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano() + 1)),
	})
	gc.ctl = ctl

	w.SetMainMenu(buildMenu(w, st, ctl, g, gc, centerLabel))

	w.SetContent(container.NewBorder(nil, status, nil, nil, gc))

	// simulation drive loop
	stop := make(chan struct{})
	go func() {
		tick := time.NewTicker(frameInterval)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				fyne.Do(func() {
					gc.stepTransform()
					if s.Tick() || gc.animating() {
						gc.Refresh()
					}
				})
			}
		}
	}()

	w.SetCloseIntercept(func() {
		close(stop)
		ctl.NavigateAway()
		if blob, err := g.EncodePositions(); err == nil {
			saveCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := st.SaveLayout(saveCtx, layoutProfile, blob, time.Now()); err != nil {
				l.Warn("layout save failed", slog.Any("err", err))
			}
			if _, err := st.PruneLayouts(saveCtx, layoutProfile, layoutKeep); err != nil {
				l.Warn("layout prune failed", slog.Any("err", err))
			}
		}
		w.Close()
	})

	// initial frame once the window is up
	ctl.Reframe(explore.SelectSkeleton)
	w.ShowAndRun()
	return nil
}

func buildMenu(w fyne.Window, st *store.Store, ctl *explore.Controller, g *graph.Graph, gc *graphCanvas, title string) *fyne.MainMenu {
	exportItem := func(label, ext string, run func(path string) error) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() {
			path := filepath.Join(".", "graph"+ext)
			if err := run(path); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export", "Wrote "+path, w)
		})
	}
	opt := func() export.Options {
		return export.Options{Labels: true, Title: title, Palette: gc.palette}
	}
	fileMenu := fyne.NewMenu("File",
		exportItem("Export SVG…", ".svg", func(p string) error { return export.ExportSVG(p, g, opt()) }),
		exportItem("Export PNG…", ".png", func(p string) error { return export.ExportPNG(p, g, opt()) }),
		exportItem("Export PDF…", ".pdf", func(p string) error { return export.ExportPDF(p, g, opt()) }),
	)

	themeItems := make([]*fyne.MenuItem, 0, len(theme.Names()))
	for _, name := range theme.Names() {
		name := name
		themeItems = append(themeItems, fyne.NewMenuItem(name, func() {
			p := theme.ByName(name)
			gc.palette = p
			ctl.Recolor(p)
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = st.SetPref(ctx, store.PrefTheme, name)
		}))
	}
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reshuffle", func() { ctl.Reshuffle() }),
		fyne.NewMenuItem("Collapse", func() { ctl.Collapse() }),
	)
	viewMenu.Items = append(viewMenu.Items, fyne.NewMenuItemSeparator())
	viewMenu.Items = append(viewMenu.Items, themeItems...)
	return fyne.NewMainMenu(fileMenu, viewMenu)
}

// statusFeedback surfaces semantic events in the status bar; muted state is
// irrelevant here since the desktop build has no audio.
type statusFeedback struct {
	status *widget.Label
	graph  *graph.Graph
}

func (f *statusFeedback) Emit(e explore.Event) {
	switch e.Kind {
	case explore.EventHover:
		if n := f.graph.Node(e.NodeID); n != nil {
			if n.Subtitle != "" {
				f.status.SetText(n.Label + " — " + n.Subtitle)
			} else {
				f.status.SetText(n.Label)
			}
		}
	case explore.EventUnhover:
		f.status.SetText("Ready")
	case explore.EventExpand, explore.EventCollapse:
		f.status.SetText(e.Kind.String())
	}
}
