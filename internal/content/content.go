/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package content extracts portfolio content blocks from a source document.
// Two sources are supported: a JSON portfolio file (schema-validated) and an
// HTML page scraped with per-category selectors. Both yield the same Section
// model the graph builder consumes.
package content

import (
	"graphfolio/internal/config"
)

// Block is one unit of portfolio content: a job, a project card, a talk, a
// contact entry. Identity is written back by the graph builder once resolved
// so that highlighting and scroll-to can find the block again.
type Block struct {
	Label      string   // required display label
	Subtitle   string   // optional
	ExplicitID string   // optional author-specified identity
	Refs       []string // optional explicit cross-reference target identities
	Text       string   // free text body, scanned in auto reference mode
	Identity   string   // resolved identity, set by the graph builder
}

// Section groups the blocks found for one configured category, in document
// order. A category whose container is missing yields a Section with zero
// blocks, never an error.
type Section struct {
	Category string
	Blocks   []*Block
}

// Source yields sections for the configured categories.
type Source interface {
	Extract(categories []config.CategoryConfig) ([]Section, error)
}
