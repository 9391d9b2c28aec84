/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidGraph wraps all structural validation failures.
var ErrInvalidGraph = errors.New("invalid graph")

// Validate checks the structural invariants of a built graph: exactly one
// center node, every item owned by an existing category node, unique
// identities, and every link endpoint present in the node set. The builder
// upholds these by construction; Validate exists for tests and for the CLI
// build command's report.
func Validate(g *Graph) error {
	if g == nil {
		return fmt.Errorf("%w: nil graph", ErrInvalidGraph)
	}
	centers := 0
	categories := make(map[string]bool)
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if ids[n.ID] {
			return fmt.Errorf("%w: duplicate identity %q", ErrInvalidGraph, n.ID)
		}
		ids[n.ID] = true
		switch n.Kind {
		case KindCenter:
			centers++
		case KindCategory:
			categories[n.ID] = true
		}
	}
	if centers != 1 {
		return fmt.Errorf("%w: expected exactly one center node, found %d", ErrInvalidGraph, centers)
	}
	for _, n := range g.Nodes {
		if n.Kind == KindItem && !categories[n.Category] {
			return fmt.Errorf("%w: item %q references missing category %q",
				ErrInvalidGraph, n.ID, n.Category)
		}
	}
	for _, l := range g.Links {
		if !ids[l.Source] || !ids[l.Target] {
			return fmt.Errorf("%w: link %s %q->%q has a missing endpoint",
				ErrInvalidGraph, l.Kind, l.Source, l.Target)
		}
	}
	return nil
}
