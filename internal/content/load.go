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
	"path/filepath"
	"strings"
)

// Open dispatches on file extension: .json loads a schema-validated
// portfolio document, .html/.htm parses a page.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return OpenJSONFile(path)
	case ".html", ".htm":
		return OpenHTMLFile(path)
	default:
		return nil, fmt.Errorf("unsupported portfolio format %q (want .json or .html)", filepath.Ext(path))
	}
}

// TitleOf returns the source's document title when it exposes one.
func TitleOf(src Source) string {
	if t, ok := src.(interface{ Title() string }); ok {
		return t.Title()
	}
	return ""
}
