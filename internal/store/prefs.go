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
)

// Well-known preference keys.
const (
	PrefTheme = "theme"
	PrefMuted = "muted"
)

// language=SQL
// dialect=SQLite
const upsertPrefSQL = `INSERT INTO prefs(key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value`

// language=SQL
// dialect=SQLite
const selectPrefSQL = `SELECT value FROM prefs WHERE key = ?`

// SetPref stores a preference value under key.
func (s *Store) SetPref(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("pref key is required")
	}
	_, err := s.db.ExecContext(ctx, upsertPrefSQL, key, value)
	return err
}

// GetPref returns the stored value for key, or fallback if unset.
func (s *Store) GetPref(ctx context.Context, key, fallback string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, selectPrefSQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return v, nil
}

// SetMuted stores the audio feedback mute flag.
func (s *Store) SetMuted(ctx context.Context, muted bool) error {
	v := "false"
	if muted {
		v = "true"
	}
	return s.SetPref(ctx, PrefMuted, v)
}

// Muted reads the audio feedback mute flag, defaulting to unmuted.
func (s *Store) Muted(ctx context.Context) (bool, error) {
	v, err := s.GetPref(ctx, PrefMuted, "false")
	return v == "true", err
}
