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

// Package client is the public façade: one Client per session, wrapping
// internal/transport, internal/session and internal/auth behind typed,
// correlated request/response and subscription methods.
package client

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
	"github.com/joaquinbejar/deribit-fix-go/internal/sessionstore"
)

// Config holds every connection and session option. Zero value is never valid;
// construct one and call Validate (NewClient does this for you).
type Config struct {
	Host   string
	Port   int
	UseTLS bool

	ConnectTimeout time.Duration // default 10s
	LogonTimeout   time.Duration // default 30s
	HeartBtInt     time.Duration // negotiated at Logon, default 30s

	SenderCompID string
	TargetCompID string

	Username     string
	AccessSecret string

	ResetSeqNumFlag    bool // tag 141, Y on first logon
	CancelOnDisconnect bool

	// ApplicationID/ApplicationSecret are optional custom DeribitAppId /
	// DeribitAppSig registration fields, sent on Logon when set.
	ApplicationID     string
	ApplicationSecret string

	// LegacyRepeatingGroups selects the venue-compatible flattened-offset
	// encoding for outbound repeating groups; the parser always
	// accepts both regardless of this setting.
	LegacyRepeatingGroups bool

	// Store persists (outbound_seq, inbound_seq, last_sent_at,
	// last_received_at, prev_auth_timestamp_ms) across restarts. Nil means
	// no persistence: every session starts both counters at 1.
	Store *sessionstore.Store

	Logger zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.LogonTimeout <= 0 {
		c.LogonTimeout = 30 * time.Second
	}
	if c.HeartBtInt <= 0 {
		c.HeartBtInt = 30 * time.Second
	}
	return c
}

// Validate rejects an incomplete or nonsensical Config.
func (c Config) Validate() error {
	if c.Host == "" {
		return &fixerr.ConfigError{Field: "Host", Reason: "must not be empty"}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return &fixerr.ConfigError{Field: "Port", Reason: "must be between 1 and 65535"}
	}
	if c.SenderCompID == "" {
		return &fixerr.ConfigError{Field: "SenderCompID", Reason: "must not be empty"}
	}
	if c.TargetCompID == "" {
		return &fixerr.ConfigError{Field: "TargetCompID", Reason: "must not be empty"}
	}
	if c.Username == "" {
		return &fixerr.ConfigError{Field: "Username", Reason: "must not be empty"}
	}
	if c.AccessSecret == "" {
		return &fixerr.ConfigError{Field: "AccessSecret", Reason: "must not be empty"}
	}
	if c.HeartBtInt < 0 {
		return &fixerr.ConfigError{Field: "HeartBtInt", Reason: "must not be negative"}
	}
	return nil
}
