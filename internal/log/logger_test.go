/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerWritesOneLine(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{level: slog.LevelDebug, w: &buf}
	l := slog.New(h)
	l.Info("hello", slog.String("k", "v"), slog.Int("n", 3))

	out := buf.String()
	if !strings.Contains(out, "INF") {
		t.Fatalf("missing level marker: %q", out)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "k=v") || !strings.Contains(out, "n=3") {
		t.Fatalf("unexpected output: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", out)
	}
}

func TestConsoleHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{level: slog.LevelWarn, w: &buf}
	l := slog.New(h)
	l.Debug("quiet")
	l.Info("quiet too")
	if buf.Len() != 0 {
		t.Fatalf("below-level records should be dropped, got %q", buf.String())
	}
	l.Error("loud")
	if !strings.Contains(buf.String(), "ERR loud") {
		t.Fatalf("error record missing: %q", buf.String())
	}
}

func TestConsoleHandlerGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	var h slog.Handler = &consoleHandler{level: slog.LevelDebug, w: &buf}
	h = h.WithGroup("sim").WithAttrs([]slog.Attr{slog.String("phase", "settle")})
	l := slog.New(h)
	l.Info("tick")
	if !strings.Contains(buf.String(), "sim.phase=settle") {
		t.Fatalf("group prefix missing: %q", buf.String())
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := multiHandler(
		&consoleHandler{level: slog.LevelDebug, w: &a},
		&consoleHandler{level: slog.LevelDebug, w: &b},
	)
	if !m.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("multi handler should be enabled")
	}
	slog.New(m).Info("fanout")
	if !strings.Contains(a.String(), "fanout") || !strings.Contains(b.String(), "fanout") {
		t.Fatalf("record not delivered to all handlers: %q / %q", a.String(), b.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("GFX_LOG_LEVEL", "")
	t.Setenv("GFX_LOG_FORMAT", "")
	t.Setenv("GFX_LOG_FILE", "")
	o := FromEnv()
	if o.Level != "info" || o.Format != "console" || o.File != "" {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

func TestWithComponent(t *testing.T) {
	Init(Options{Level: "error"})
	l := WithComponent("graph")
	if l == nil {
		t.Fatalf("nil component logger")
	}
	if op := WithOperation(l, "build"); op == nil {
		t.Fatalf("nil operation logger")
	}
}
