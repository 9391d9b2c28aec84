/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// language=SQL
// dialect=SQLite
const insertLayoutSQL = `INSERT INTO layouts(profile, ts, blob) VALUES (?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestLayoutSQL = `SELECT ts, blob FROM layouts WHERE profile = ? ORDER BY ts DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const pruneLayoutsSQL = `DELETE FROM layouts WHERE profile = ? AND id NOT IN (
	SELECT id FROM layouts WHERE profile = ? ORDER BY ts DESC LIMIT ?
)`

// LayoutSnapshot is one stored layout with its capture time.
type LayoutSnapshot struct {
	TS   time.Time
	Blob []byte
}

// SaveLayout persists a position blob for a profile with a timestamp.
// The profile distinguishes layouts per portfolio source.
func (s *Store) SaveLayout(ctx context.Context, profile string, blob []byte, ts time.Time) error {
	if profile == "" {
		return errors.New("layout profile is required")
	}
	_, err := s.db.ExecContext(ctx, insertLayoutSQL, profile, ts.UTC().Format(time.RFC3339Nano), blob)
	return err
}

// LatestLayout returns the most recent layout for a profile, or nil if none.
func (s *Store) LatestLayout(ctx context.Context, profile string) (*LayoutSnapshot, error) {
	var tsStr string
	var blob []byte
	err := s.db.QueryRowContext(ctx, selectLatestLayoutSQL, profile).Scan(&tsStr, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return &LayoutSnapshot{Blob: blob}, nil // blob still usable without ts
	}
	return &LayoutSnapshot{TS: ts, Blob: blob}, nil
}

// PruneLayouts keeps the keepLast most recent layouts for a profile and
// deletes the rest, returning the number removed.
func (s *Store) PruneLayouts(ctx context.Context, profile string, keepLast int) (int64, error) {
	if keepLast < 0 {
		keepLast = 0
	}
	res, err := s.db.ExecContext(ctx, pruneLayoutsSQL, profile, profile, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
