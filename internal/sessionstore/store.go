/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package sessionstore persists session sequencing and auth state across
// process restarts: one row per (sender_id, target_id), loaded at engine
// construction and saved on graceful Logout/Disconnect.
package sessionstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_state (
	sender_id              TEXT NOT NULL,
	target_id               TEXT NOT NULL,
	outbound_seq            INTEGER NOT NULL,
	inbound_seq             INTEGER NOT NULL,
	last_sent_at            TEXT,
	last_received_at        TEXT,
	prev_auth_timestamp_ms  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (sender_id, target_id)
);`

const upsertQuery = `
INSERT INTO session_state
	(sender_id, target_id, outbound_seq, inbound_seq, last_sent_at, last_received_at, prev_auth_timestamp_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(sender_id, target_id) DO UPDATE SET
	outbound_seq           = excluded.outbound_seq,
	inbound_seq            = excluded.inbound_seq,
	last_sent_at           = excluded.last_sent_at,
	last_received_at       = excluded.last_received_at,
	prev_auth_timestamp_ms = excluded.prev_auth_timestamp_ms;`

const selectQuery = `
SELECT outbound_seq, inbound_seq, last_sent_at, last_received_at, prev_auth_timestamp_ms
FROM session_state WHERE sender_id = ? AND target_id = ?;`

// PersistedState is everything a session needs to resume where it left
// off: both sequence counters, the last-activity timestamps, and the
// auth timestamp floor.
type PersistedState struct {
	OutboundSeq         uint64
	InboundSeq          uint64
	LastSentAt          time.Time
	LastReceivedAt      time.Time
	PrevAuthTimestampMs int64
}

// Store is SQLite-backed persistence for PersistedState, keyed by
// (sender_id, target_id). A nil *Store means "no persistence"; callers
// check for nil rather than Store having a no-op mode, so the zero value
// is never silently usable.
type Store struct {
	db         *sql.DB
	stmtUpsert *sql.Stmt
	stmtLoad   *sql.Stmt
	logger     zerolog.Logger
}

// Open opens (creating if necessary) a SQLite database at dbPath and
// prepares the statements Load/Save reuse.
// logger's zero value is a no-op logger, matching every other component's
// Config.Logger convention.
func Open(dbPath string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("sessionstore: open %s: %w", dbPath, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sessionstore: init schema: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if s.stmtUpsert, err = db.Prepare(upsertQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sessionstore: prepare upsert: %w", err)
	}
	if s.stmtLoad, err = db.Prepare(selectQuery); err != nil {
		_ = s.stmtUpsert.Close()
		_ = db.Close()
		return nil, fmt.Errorf("sessionstore: prepare select: %w", err)
	}

	s.logger.Info().Str("path", dbPath).Msg("sessionstore: opened")
	return s, nil
}

// Close releases the prepared statements and the underlying database
// handle.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	_ = s.stmtUpsert.Close()
	_ = s.stmtLoad.Close()
	return s.db.Close()
}

// Load returns the persisted state for (senderID, targetID). A missing
// row is not an error: it returns the zero PersistedState, which the
// engine's Config.withDefaults treats as "start both counters at 1".
func (s *Store) Load(senderID, targetID string) (PersistedState, error) {
	var (
		st                  PersistedState
		lastSent, lastRecvd sql.NullString
	)
	row := s.stmtLoad.QueryRow(senderID, targetID)
	err := row.Scan(&st.OutboundSeq, &st.InboundSeq, &lastSent, &lastRecvd, &st.PrevAuthTimestampMs)
	if err == sql.ErrNoRows {
		return PersistedState{}, nil
	}
	if err != nil {
		return PersistedState{}, fmt.Errorf("sessionstore: load %s/%s: %w", senderID, targetID, err)
	}

	if lastSent.Valid {
		st.LastSentAt, _ = time.Parse(time.RFC3339Nano, lastSent.String)
	}
	if lastRecvd.Valid {
		st.LastReceivedAt, _ = time.Parse(time.RFC3339Nano, lastRecvd.String)
	}
	return st, nil
}

// Save upserts the persisted state for (senderID, targetID), called on
// graceful Logout/Disconnect so a restarted process resumes sequencing
// and the auth timestamp floor where it left off.
func (s *Store) Save(senderID, targetID string, st PersistedState) error {
	var lastSent, lastRecvd interface{}
	if !st.LastSentAt.IsZero() {
		lastSent = st.LastSentAt.UTC().Format(time.RFC3339Nano)
	}
	if !st.LastReceivedAt.IsZero() {
		lastRecvd = st.LastReceivedAt.UTC().Format(time.RFC3339Nano)
	}

	_, err := s.stmtUpsert.Exec(senderID, targetID, st.OutboundSeq, st.InboundSeq, lastSent, lastRecvd, st.PrevAuthTimestampMs)
	if err != nil {
		return fmt.Errorf("sessionstore: save %s/%s: %w", senderID, targetID, err)
	}
	return nil
}
