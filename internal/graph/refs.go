/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graph

import (
	"log/slog"
	"strings"
	"unicode"
)

// resolveAutoRefs scans each item's text for other items' identity and
// label tokens. An explicit index is built first so the scan stays
// O(items x tokens): token list once, then one lowered-text pass per item.
// Same-category and self matches are excluded, as are tokens under the
// minimum length.
func (g *Graph) resolveAutoRefs(l *slog.Logger, minTokenLen int) {
	if minTokenLen <= 0 {
		minTokenLen = 4
	}
	type token struct {
		text     string
		id       string
		category string
	}
	var tokens []token
	for _, n := range g.Items() {
		candidates := []string{NormalizeToken(n.Label), strings.ToLower(n.ID)}
		if candidates[1] == candidates[0] {
			candidates = candidates[:1]
		}
		for _, t := range candidates {
			if len([]rune(t)) < minTokenLen {
				l.Debug("reference token below minimum length",
					slog.String("id", n.ID), slog.String("token", t))
				continue
			}
			tokens = append(tokens, token{text: t, id: n.ID, category: n.Category})
		}
	}

	seen := make(map[[2]string]bool)
	for _, n := range g.Items() {
		b := g.Elements[n.ID]
		if b == nil || b.Text == "" {
			continue
		}
		text := strings.ToLower(b.Text)
		for _, t := range tokens {
			if t.id == n.ID || t.category == n.Category {
				continue
			}
			if !containsWholeWord(text, t.text) {
				continue
			}
			key := pairKey(n.ID, t.id)
			if seen[key] {
				continue
			}
			seen[key] = true
			g.Links = append(g.Links, Link{Source: n.ID, Target: t.id, Kind: LinkReference})
		}
	}
}

// resolveExplicitRefs follows author-specified target lists. Missing targets
// are skipped silently (logged for diagnostics only).
func (g *Graph) resolveExplicitRefs(l *slog.Logger) {
	seen := make(map[[2]string]bool)
	for _, n := range g.Items() {
		b := g.Elements[n.ID]
		if b == nil {
			continue
		}
		for _, ref := range b.Refs {
			target := g.byID[ref]
			if target == nil {
				l.Debug("unresolved reference dropped",
					slog.String("from", n.ID), slog.String("to", ref))
				continue
			}
			if target.ID == n.ID || target.Kind != KindItem {
				continue
			}
			key := pairKey(n.ID, target.ID)
			if seen[key] {
				continue
			}
			seen[key] = true
			g.Links = append(g.Links, Link{Source: n.ID, Target: target.ID, Kind: LinkReference})
		}
	}
}

// pairKey canonicalizes an undirected pair so a↔b is linked once.
func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// containsWholeWord reports whether token occurs in text bounded by
// non-alphanumeric runes (or the ends of the text). Both inputs must
// already be lowercased.
func containsWholeWord(text, token string) bool {
	if token == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(text[start:], token)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(token)
		if boundaryBefore(text, i) && boundaryAfter(text, end) {
			return true
		}
		start = i + 1
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r := lastRune(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r := firstRune(text[end:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
