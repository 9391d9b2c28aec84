/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"graphfolio/internal/config"
)

func testCategories() []config.CategoryConfig {
	return []config.CategoryConfig{
		{Name: "work", Selector: ".work-item"},
		{Name: "projects", Selector: ".project-card"},
	}
}

func TestJSONSourceExtract(t *testing.T) {
	raw := []byte(`{
		"title": "Jane Doe",
		"sections": {
			"work": [
				{"label": "Acme Corp", "subtitle": "Staff engineer", "text": "Shipped the beamer pipeline"},
				{"label": "Initech", "id": "initech", "refs": ["beamer"]}
			],
			"projects": [
				{"label": "Beamer", "text": "A projection toolkit"}
			]
		}
	}`)
	src, err := NewJSONSource(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src.Title() != "Jane Doe" {
		t.Fatalf("title: %q", src.Title())
	}
	secs, err := src.Extract(testCategories())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}
	if len(secs[0].Blocks) != 2 || len(secs[1].Blocks) != 1 {
		t.Fatalf("unexpected block counts: %d/%d", len(secs[0].Blocks), len(secs[1].Blocks))
	}
	b := secs[0].Blocks[1]
	if b.ExplicitID != "initech" || len(b.Refs) != 1 || b.Refs[0] != "beamer" {
		t.Fatalf("explicit fields lost: %+v", b)
	}
}

func TestJSONSourceMissingCategoryYieldsEmptySection(t *testing.T) {
	src, err := NewJSONSource([]byte(`{"sections": {"work": [{"label": "X"}]}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	secs, err := src.Extract(testCategories())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(secs) != 2 {
		t.Fatalf("expected section per configured category, got %d", len(secs))
	}
	if len(secs[1].Blocks) != 0 {
		t.Fatalf("missing category should produce zero blocks")
	}
}

func TestJSONSourceRejectsSchemaViolations(t *testing.T) {
	bad := [][]byte{
		[]byte(`{"sections": {"work": [{"subtitle": "no label"}]}}`),
		[]byte(`{"sections": {"work": [{"label": ""}]}}`),
		[]byte(`{"sections": {"work": [{"label": "X", "bogus": 1}]}}`),
		[]byte(`{"title": "no sections"}`),
	}
	for i, raw := range bad {
		if _, err := NewJSONSource(raw); err == nil {
			t.Errorf("case %d: expected schema error", i)
		}
	}
}

const testPage = `<!doctype html><html><body>
<section id="work">
  <div class="work-item" data-node-id="acme" data-refs="beamer, chess">
    <h3>Acme Corp</h3>
    <p class="subtitle">Staff engineer</p>
    <p>Built the Beamer pipeline and internal tools.</p>
  </div>
  <div class="work-item">
    <h3>Initech</h3>
    <p>TPS reports modernization.</p>
  </div>
</section>
<section id="projects">
  <div class="project-card" data-label="Beamer">
    <p>A projection toolkit.</p>
  </div>
</section>
</body></html>`

func TestHTMLSourceExtract(t *testing.T) {
	src, err := ParseHTML(strings.NewReader(testPage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	secs, err := src.Extract(testCategories())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(secs[0].Blocks) != 2 || len(secs[1].Blocks) != 1 {
		t.Fatalf("unexpected block counts: %d/%d", len(secs[0].Blocks), len(secs[1].Blocks))
	}
	acme := secs[0].Blocks[0]
	if acme.Label != "Acme Corp" {
		t.Fatalf("heading label not extracted: %q", acme.Label)
	}
	if acme.Subtitle != "Staff engineer" {
		t.Fatalf("subtitle not extracted: %q", acme.Subtitle)
	}
	if acme.ExplicitID != "acme" {
		t.Fatalf("data-node-id not extracted: %q", acme.ExplicitID)
	}
	if len(acme.Refs) != 2 || acme.Refs[0] != "beamer" || acme.Refs[1] != "chess" {
		t.Fatalf("data-refs not split: %v", acme.Refs)
	}
	if !strings.Contains(acme.Text, "Beamer pipeline") {
		t.Fatalf("block text missing body: %q", acme.Text)
	}
	if secs[1].Blocks[0].Label != "Beamer" {
		t.Fatalf("data-label not preferred: %q", secs[1].Blocks[0].Label)
	}
}

func TestHTMLSourceMissingContainer(t *testing.T) {
	src, err := ParseHTML(strings.NewReader(`<html><body><p>nothing here</p></body></html>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	secs, err := src.Extract(testCategories())
	if err != nil {
		t.Fatalf("missing containers must not error: %v", err)
	}
	for _, sec := range secs {
		if len(sec.Blocks) != 0 {
			t.Fatalf("expected no blocks, got %d in %s", len(sec.Blocks), sec.Category)
		}
	}
}

func TestSelectAllVariants(t *testing.T) {
	page := `<html><body>
	  <div id="hero">x</div>
	  <article>one</article><article>two</article>
	</body></html>`
	src, err := ParseHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n := len(selectAll(src.root, "#hero")); n != 1 {
		t.Fatalf("#id selector: got %d", n)
	}
	if n := len(selectAll(src.root, "article")); n != 2 {
		t.Fatalf("tag selector: got %d", n)
	}
	if n := len(selectAll(src.root, "")); n != 0 {
		t.Fatalf("empty selector matched %d", n)
	}
}

func TestHTMLTitle(t *testing.T) {
	src, err := ParseHTML(strings.NewReader(`<html><head><title>  Jane   Doe </title></head><body></body></html>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := src.Title(); got != "Jane Doe" {
		t.Fatalf("title: %q", got)
	}
	if got := TitleOf(src); got != "Jane Doe" {
		t.Fatalf("TitleOf: %q", got)
	}
}

func TestOpenDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "p.json")
	if err := os.WriteFile(jsonPath, []byte(`{"title":"X","sections":{}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	htmlPath := filepath.Join(dir, "p.html")
	if err := os.WriteFile(htmlPath, []byte(`<html><body></body></html>`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if src, err := Open(jsonPath); err != nil {
		t.Fatalf("open json: %v", err)
	} else if _, ok := src.(*JSONSource); !ok {
		t.Fatalf("expected JSONSource, got %T", src)
	}
	if src, err := Open(htmlPath); err != nil {
		t.Fatalf("open html: %v", err)
	} else if _, ok := src.(*HTMLSource); !ok {
		t.Fatalf("expected HTMLSource, got %T", src)
	}
	if _, err := Open(filepath.Join(dir, "p.toml")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
