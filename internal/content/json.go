/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package content

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"graphfolio/internal/config"
)

// portfolioSchema validates portfolio JSON files before extraction. Keeping
// it strict here means the builder can trust block shapes downstream.
const portfolioSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["sections"],
  "properties": {
    "title": {"type": "string"},
    "sections": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["label"],
          "properties": {
            "label": {"type": "string", "minLength": 1},
            "subtitle": {"type": "string"},
            "id": {"type": "string"},
            "refs": {"type": "array", "items": {"type": "string"}},
            "text": {"type": "string"}
          },
          "additionalProperties": false
        }
      }
    }
  },
  "additionalProperties": false
}`

type jsonBlock struct {
	Label    string   `json:"label"`
	Subtitle string   `json:"subtitle,omitempty"`
	ID       string   `json:"id,omitempty"`
	Refs     []string `json:"refs,omitempty"`
	Text     string   `json:"text,omitempty"`
}

type jsonPortfolio struct {
	Title    string                 `json:"title,omitempty"`
	Sections map[string][]jsonBlock `json:"sections"`
}

// JSONSource extracts sections from a portfolio JSON document. Sections are
// keyed by category name; configured categories with no matching key yield
// empty sections.
type JSONSource struct {
	doc jsonPortfolio
}

// NewJSONSource validates raw JSON against the portfolio schema and parses it.
func NewJSONSource(raw []byte) (*JSONSource, error) {
	res, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(portfolioSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validating portfolio: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("portfolio does not match schema: %s", strings.Join(msgs, "; "))
	}
	var doc jsonPortfolio
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing portfolio: %w", err)
	}
	return &JSONSource{doc: doc}, nil
}

// OpenJSONFile reads and validates a portfolio JSON file.
func OpenJSONFile(path string) (*JSONSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading portfolio file: %w", err)
	}
	return NewJSONSource(raw)
}

// Title returns the optional document title.
func (s *JSONSource) Title() string { return s.doc.Title }

// Extract implements Source. Category order follows the configuration, not
// the document.
func (s *JSONSource) Extract(categories []config.CategoryConfig) ([]Section, error) {
	out := make([]Section, 0, len(categories))
	for _, cat := range categories {
		sec := Section{Category: cat.Name}
		for _, jb := range s.doc.Sections[cat.Name] {
			sec.Blocks = append(sec.Blocks, &Block{
				Label:      jb.Label,
				Subtitle:   jb.Subtitle,
				ExplicitID: jb.ID,
				Refs:       append([]string(nil), jb.Refs...),
				Text:       jb.Text,
			})
		}
		out = append(out, sec)
	}
	return out, nil
}
