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

package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
)

func fixedNonceReader() func([]byte) (int, error) {
	return func(buf []byte) (int, error) {
		for i := range buf {
			buf[i] = byte(i)
		}
		return len(buf), nil
	}
}

// TestGenerate_FixedVector reproduces the Logon handshake scenario:
// fixed clock 1700000000000ms and nonce bytes 0x00..0x1F.
func TestGenerate_FixedVector(t *testing.T) {
	a := &Authenticator{
		now:      func() int64 { return 1700000000000 },
		randRead: fixedNonceReader(),
	}

	rawData, digest, err := a.Generate("s")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	wantNonce := base64.StdEncoding.EncodeToString(func() []byte {
		b := make([]byte, 32)
		for i := range b {
			b[i] = byte(i)
		}
		return b
	}())
	wantRaw := fmt.Sprintf("1700000000000.%s", wantNonce)
	if rawData != wantRaw {
		t.Fatalf("rawData = %q, want %q", rawData, wantRaw)
	}

	sum := sha256.Sum256([]byte(wantRaw + "s"))
	wantDigest := base64.StdEncoding.EncodeToString(sum[:])
	if digest != wantDigest {
		t.Fatalf("digest = %q, want %q", digest, wantDigest)
	}
}

// TestGenerate_MonotonicTimestamps: timestamps strictly
// increase across any two tokens from the same Authenticator, even when
// the clock does not advance between calls.
func TestGenerate_MonotonicTimestamps(t *testing.T) {
	clockMs := int64(1700000000000)
	a := &Authenticator{
		now:      func() int64 { return clockMs },
		randRead: fixedNonceReader(),
	}

	var prevTs int64
	for i := 0; i < 1000; i++ {
		raw, _, err := a.Generate("secret")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		var ts int64
		if _, err := fmt.Sscanf(raw, "%d.", &ts); err != nil {
			t.Fatalf("parsing timestamp out of %q: %v", raw, err)
		}
		if ts <= prevTs {
			t.Fatalf("iteration %d: timestamp %d did not strictly exceed previous %d", i, ts, prevTs)
		}
		prevTs = ts
		// Occasionally advance the frozen clock to exercise the non-clamped path too.
		if i%7 == 0 {
			clockMs += 5
		}
	}
}

// TestGenerate_NonceEntropy checks that nonces decode to at least 32
// bytes and do not repeat across a large sample. The full 10^6-draw
// collision test only runs outside -short, keeping the everyday run
// fast.
func TestGenerate_NonceEntropy(t *testing.T) {
	draws := 5000
	if !testing.Short() {
		draws = 1_000_000
	}

	a := NewAuthenticator()
	seen := make(map[string]bool, draws)
	for i := 0; i < draws; i++ {
		raw, _, err := a.Generate("secret")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		dot := strings.IndexByte(raw, '.')
		if dot == -1 {
			t.Fatalf("malformed rawData %q", raw)
		}
		nonceB64 := raw[dot+1:]
		decoded, err := base64.StdEncoding.DecodeString(nonceB64)
		if err != nil {
			t.Fatalf("decoding nonce %q: %v", nonceB64, err)
		}
		if len(decoded) < 32 {
			t.Fatalf("nonce length = %d, want >= 32", len(decoded))
		}
		if seen[nonceB64] {
			t.Fatalf("duplicate nonce observed within %d draws", draws)
		}
		seen[nonceB64] = true
	}
}

func TestGenerate_RngFailureIsAuthError(t *testing.T) {
	a := &Authenticator{
		now:      func() int64 { return 1700000000000 },
		randRead: func([]byte) (int, error) { return 0, errors.New("rng unavailable") },
	}

	_, _, err := a.Generate("secret")
	var ae *fixerr.AuthError
	if !errors.As(err, &ae) || ae.Kind != fixerr.AuthRngUnavailable {
		t.Fatalf("err = %v, want AuthError{Kind: AuthRngUnavailable}", err)
	}
}
