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

// Package auth builds the venue's nonce/timestamp/digest authentication
// payload for Logon: RawData is "<timestamp_ms>.<base64_nonce>",
// and the password digest is base64(SHA-256(RawData ‖ access_secret)).
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
)

// nonceSize is the minimum nonce length the venue accepts.
const nonceSize = 32

// Authenticator mints Logon credentials. Its only shared state is the
// previously-emitted timestamp, which every token must strictly exceed
// even across concurrent callers within the same process.
type Authenticator struct {
	mu              sync.Mutex
	prevTimestampMs int64

	now      func() int64
	randRead func([]byte) (int, error)
}

var (
	processAuthOnce sync.Once
	processAuth     *Authenticator
)

// NewAuthenticator returns the process-wide Authenticator, created on first
// use with the real clock and a cryptographically secure RNG, so every
// caller in the process shares one strictly increasing timestamp.
func NewAuthenticator() *Authenticator {
	processAuthOnce.Do(func() {
		processAuth = &Authenticator{
			now:      func() int64 { return time.Now().UTC().UnixMilli() },
			randRead: rand.Read,
		}
	})
	return processAuth
}

// Generate produces (rawData, passwordDigest) for the given access
// secret.
func (a *Authenticator) Generate(accessSecret string) (rawData, digest string, err error) {
	a.mu.Lock()
	nowMs := a.now()
	ts := nowMs
	if ts <= a.prevTimestampMs {
		ts = a.prevTimestampMs + 1
	}
	a.prevTimestampMs = ts
	a.mu.Unlock()

	nonce := make([]byte, nonceSize)
	if _, err := a.randRead(nonce); err != nil {
		return "", "", &fixerr.AuthError{Kind: fixerr.AuthRngUnavailable, Err: err}
	}

	rawData = fmt.Sprintf("%d.%s", ts, base64.StdEncoding.EncodeToString(nonce))

	h := sha256.Sum256(append([]byte(rawData), accessSecret...))
	digest = base64.StdEncoding.EncodeToString(h[:])
	return rawData, digest, nil
}

// SeedTimestamp raises the monotonic floor from a persisted value (e.g.
// internal/sessionstore's prev_auth_timestamp_ms on reconnect), so a
// restarted process can't emit a timestamp the venue has already seen.
func (a *Authenticator) SeedTimestamp(ms int64) {
	a.mu.Lock()
	if ms > a.prevTimestampMs {
		a.prevTimestampMs = ms
	}
	a.mu.Unlock()
}

// LastTimestamp returns the most recently emitted timestamp, for
// internal/sessionstore to persist on graceful shutdown.
func (a *Authenticator) LastTimestamp() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prevTimestampMs
}
