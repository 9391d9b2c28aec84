/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graph

import (
	"strconv"
	"strings"
	"unicode"
)

// DeriveIdentity produces the deterministic identity for an item: category
// slug, normalized label and positional index within the category. It is a
// pure function, so rebuilding from unchanged content yields the same
// identity and cross-references plus DOM lookups stay stable.
//
// Collision policy: two items with the same label at the same index cannot
// occur within one category, but an explicit identity may collide with a
// derived one. The builder treats that as a caller precondition; the first
// node wins and later duplicates are dropped with a warning.
func DeriveIdentity(category, label string, index int) string {
	slug := Slugify(label)
	if slug == "" {
		slug = "item"
	}
	return Slugify(category) + "-" + slug + "-" + strconv.Itoa(index)
}

// Slugify lowercases and reduces a string to hyphen-separated alphanumeric
// runs: "Acme Corp." -> "acme-corp".
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// NormalizeToken prepares a label for whole-word reference matching.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
