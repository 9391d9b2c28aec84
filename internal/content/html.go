/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package content

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"graphfolio/internal/config"
)

// HTMLSource extracts sections from a portfolio HTML page. Each category's
// Selector locates its content blocks; within a block, data attributes and
// heading structure provide label, subtitle, identity and explicit refs:
//
//	<div class="work-item" data-node-id="acme" data-refs="beamer,chess">
//	  <h3>Acme Corp</h3>
//	  <p class="subtitle">Staff engineer</p>
//	  <p>Built the Beamer pipeline ...</p>
//	</div>
type HTMLSource struct {
	root *html.Node
}

// ParseHTML parses a portfolio page.
func ParseHTML(r io.Reader) (*HTMLSource, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return &HTMLSource{root: root}, nil
}

// OpenHTMLFile reads and parses a portfolio HTML file.
func OpenHTMLFile(path string) (*HTMLSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	defer f.Close()
	return ParseHTML(f)
}

// Title returns the document title, or "".
func (s *HTMLSource) Title() string {
	var title string
	walk(s.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" && title == "" {
			title = collapseSpace(textContent(n))
			return false
		}
		return true
	})
	return title
}

// Extract implements Source. A selector matching nothing yields an empty
// section for that category.
func (s *HTMLSource) Extract(categories []config.CategoryConfig) ([]Section, error) {
	out := make([]Section, 0, len(categories))
	for _, cat := range categories {
		sec := Section{Category: cat.Name}
		for _, el := range selectAll(s.root, cat.Selector) {
			sec.Blocks = append(sec.Blocks, blockFromElement(el))
		}
		out = append(out, sec)
	}
	return out, nil
}

func blockFromElement(el *html.Node) *Block {
	b := &Block{
		Label:      attr(el, "data-label"),
		Subtitle:   attr(el, "data-subtitle"),
		ExplicitID: attr(el, "data-node-id"),
		Text:       collapseSpace(textContent(el)),
	}
	if refs := attr(el, "data-refs"); refs != "" {
		for _, r := range strings.Split(refs, ",") {
			if r = strings.TrimSpace(r); r != "" {
				b.Refs = append(b.Refs, r)
			}
		}
	}
	if b.Label == "" {
		if h := firstMatch(el, isHeading); h != nil {
			b.Label = collapseSpace(textContent(h))
		}
	}
	if b.Subtitle == "" {
		if sub := firstMatch(el, hasClass("subtitle")); sub != nil {
			b.Subtitle = collapseSpace(textContent(sub))
		}
	}
	if b.Label == "" {
		// degrade to the leading words of the block text
		words := strings.Fields(b.Text)
		if len(words) > 6 {
			words = words[:6]
		}
		b.Label = strings.Join(words, " ")
	}
	return b
}

// selectAll resolves a minimal CSS-style selector: "tag", ".class" or "#id".
// Anything richer is out of scope for portfolio pages.
func selectAll(root *html.Node, selector string) []*html.Node {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}
	var match func(*html.Node) bool
	switch {
	case strings.HasPrefix(selector, "."):
		match = hasClass(selector[1:])
	case strings.HasPrefix(selector, "#"):
		id := selector[1:]
		match = func(n *html.Node) bool { return attr(n, "id") == id }
	default:
		match = func(n *html.Node) bool { return n.Data == selector }
	}
	var found []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
			return false // do not descend into a matched block
		}
		return true
	})
	return found
}

// walk visits element nodes depth-first; fn returning false prunes descent.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func firstMatch(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != root && n.Type == html.ElementNode && match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func isHeading(n *html.Node) bool {
	switch n.Data {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
