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

// Package transport dials the venue's TCP/TLS endpoint and exposes the two
// halves of the connection the session engine's reader and writer tasks
// each own exclusively.
package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
)

// DialConfig configures a connection attempt.
type DialConfig struct {
	Host           string
	Port           int
	UseTLS         bool
	ConnectTimeout time.Duration
	TLSServerName  string
}

// Conn wraps a net.Conn, splitting it into the read/write halves the
// session engine's reader and writer tasks each own exclusively.
type Conn struct {
	raw net.Conn
}

// Dial connects to cfg.Host:cfg.Port, optionally negotiating TLS with
// mandatory certificate verification (never InsecureSkipVerify).
func Dial(ctx context.Context, cfg DialConfig) (*Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialer := net.Dialer{Timeout: timeout}

	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		kind := fixerr.ConnIO
		if ctx.Err() != nil {
			kind = fixerr.ConnTimeout
		} else if ne, ok := err.(net.Error); ok && ne.Timeout() {
			kind = fixerr.ConnTimeout
		} else if isRefused(err) {
			kind = fixerr.ConnRefused
		}
		return nil, &fixerr.ConnectionError{Kind: kind, Err: err}
	}

	if cfg.UseTLS {
		tlsConn := tls.Client(raw, &tls.Config{ServerName: cfg.TLSServerName})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			raw.Close()
			return nil, &fixerr.ConnectionError{Kind: fixerr.ConnTLS, Err: err}
		}
		raw = tlsConn
	}

	return &Conn{raw: raw}, nil
}

func isRefused(err error) bool {
	var opErr *net.OpError
	for e := err; e != nil; {
		if oe, ok := e.(*net.OpError); ok {
			opErr = oe
			break
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return opErr != nil && opErr.Op == "dial"
}

// Wrap adapts an already-established net.Conn (e.g. one obtained from a
// test fixture) into a Conn.
func Wrap(raw net.Conn) *Conn { return &Conn{raw: raw} }

// ReadHalf returns the reader side of the connection, for the session
// engine's reader task exclusively.
func (c *Conn) ReadHalf() io.Reader { return c.raw }

// WriteHalf returns the writer side of the connection, for the session
// engine's writer task exclusively.
func (c *Conn) WriteHalf() io.Writer { return c.raw }

// Close performs a bounded-timeout graceful shutdown: it gives any
// in-flight write a moment to land, then closes the underlying
// connection.
func (c *Conn) Close(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(2 * time.Second)
	}
	c.raw.SetDeadline(deadline)

	if cw, ok := c.raw.(interface{ CloseWrite() error }); ok {
		cw.CloseWrite()
	}
	return c.raw.Close()
}
