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

package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/joaquinbejar/deribit-fix-go/internal/auth"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
	"github.com/joaquinbejar/deribit-fix-go/internal/session"
	"github.com/joaquinbejar/deribit-fix-go/internal/sessionstore"
	"github.com/joaquinbejar/deribit-fix-go/internal/transport"
)

// Client is one FIX session: Connect dials the transport and starts the
// engine, Logon/Logout negotiate the session, and every other method
// sends one request and correlates the response(s) by the request ID it
// mints. Minted IDs are random UUIDs, and every correlation entry is
// inserted and removed under corrMu.
type Client struct {
	cfg    Config
	enc    *message.Encoder
	auth   *auth.Authenticator
	store  *sessionstore.Store
	logger zerolog.Logger

	conn   *transport.Conn
	engine *session.Engine

	runCancel context.CancelFunc
	runDone   chan error

	corrMu sync.Mutex
	corr   map[string]chan any

	// mdSymbols fans incremental refreshes (which carry no MDReqID) out to
	// every stream subscribed to the entry's symbol.
	mdSymbols map[string]map[string]struct{} // symbol -> set of MDReqID

	// tradeCaptureReports has no correlating ID on inbound (35=AE), so it
	// broadcasts to every outstanding TradeCaptureRequest stream.
	tradeCaptureStreams map[string]chan any

	// massStatus is a single catch-all slot: inbound ExecutionReports from
	// an Order Mass Status Request carry the order's own ClOrdID, not the
	// MassStatusReqID, so there is no per-request ID to correlate on. Only
	// one mass-status request may be outstanding at a time.
	massStatus chan any
}

// NewClient validates cfg and prepares a Client. It does not connect.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	groups := message.GroupEncodingStandard
	if cfg.LegacyRepeatingGroups {
		groups = message.GroupEncodingLegacyOffset
	}

	c := &Client{
		cfg:                 cfg,
		enc:                 message.NewEncoder(message.EncoderConfig{Groups: groups}),
		auth:                auth.NewAuthenticator(),
		store:               cfg.Store,
		logger:              cfg.Logger,
		corr:                make(map[string]chan any),
		mdSymbols:           make(map[string]map[string]struct{}),
		tradeCaptureStreams: make(map[string]chan any),
	}
	return c, nil
}

// Connect dials the venue and starts the session engine's reader, writer
// and heartbeat tasks. It does not log on.
func (c *Client) Connect(ctx context.Context) error {
	conn, err := transport.Dial(ctx, transport.DialConfig{
		Host:           c.cfg.Host,
		Port:           c.cfg.Port,
		UseTLS:         c.cfg.UseTLS,
		ConnectTimeout: c.cfg.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	c.conn = conn

	var persisted sessionstore.PersistedState
	if c.store != nil {
		persisted, err = c.store.Load(c.cfg.SenderCompID, c.cfg.TargetCompID)
		if err != nil {
			return err
		}
		c.auth.SeedTimestamp(persisted.PrevAuthTimestampMs)
	}

	c.engine = session.NewEngine(conn, session.Config{
		SenderCompID:     c.cfg.SenderCompID,
		TargetCompID:     c.cfg.TargetCompID,
		HeartBtInt:       c.cfg.HeartBtInt,
		OutboundSeqStart: persisted.OutboundSeq,
		InboundSeqStart:  persisted.InboundSeq,
		Logger:           c.logger,
	})

	runCtx, cancel := context.WithCancel(context.Background())
	c.runCancel = cancel
	c.runDone = make(chan error, 1)
	go func() { c.runDone <- c.engine.Run(runCtx) }()
	go c.dispatchLoop()

	return nil
}

// Logon sends the venue's nonce/timestamp/digest Logon and blocks
// until the session reaches LoggedOn, a session error occurs, or
// cfg.LogonTimeout elapses.
func (c *Client) Logon(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.LogonTimeout)
	defer cancel()

	rawData, digest, err := c.auth.Generate(c.cfg.AccessSecret)
	if err != nil {
		return err
	}

	c.engine.BeginLogon()
	logon := message.BuildLogon(message.LogonParams{
		RawData:            rawData,
		PasswordDigest:     digest,
		Username:           c.cfg.Username,
		HeartBtInt:         uint64(c.cfg.HeartBtInt / time.Second),
		ResetSeqNumFlag:    c.cfg.ResetSeqNumFlag,
		CancelOnDisconnect: c.cfg.CancelOnDisconnect,
		ApplicationID:      c.cfg.ApplicationID,
		ApplicationSecret:  c.cfg.ApplicationSecret,
	})
	if err := c.engine.Send(ctx, logon); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		switch c.engine.State() {
		case session.StateLoggedOn:
			return nil
		case session.StateError:
			return &fixerr.SessionError{Kind: fixerr.SessionLogonRejected}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Logout sends a Logout, waits briefly for the venue's acknowledgement,
// persists session state if a Store is configured, and tears down the
// transport.
func (c *Client) Logout(ctx context.Context, reason string) error {
	c.engine.BeginLogout()
	if err := c.engine.Send(ctx, message.BuildLogout(reason)); err != nil {
		return err
	}

	deadline := time.NewTimer(2 * time.Second)
	defer deadline.Stop()
	for {
		switch c.engine.State() {
		case session.StateLoggedOut, session.StateError:
			return c.Disconnect(ctx)
		}
		select {
		case <-ctx.Done():
			return c.Disconnect(ctx)
		case <-deadline.C:
			return c.Disconnect(ctx)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Disconnect persists session state (if configured) and stops the engine
// and transport unconditionally. Safe to call after Logout, or instead of
// it for an abrupt teardown.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.store != nil && c.engine != nil {
		_ = c.store.Save(c.cfg.SenderCompID, c.cfg.TargetCompID, sessionstore.PersistedState{
			OutboundSeq:         c.engine.OutboundSeq(),
			InboundSeq:          c.engine.InboundSeq(),
			LastSentAt:          time.Now(),
			LastReceivedAt:      time.Now(),
			PrevAuthTimestampMs: c.auth.LastTimestamp(),
		})
	}
	if c.runCancel != nil {
		c.runCancel()
	}
	if c.runDone != nil {
		select {
		case <-c.runDone:
		case <-ctx.Done():
		}
	}
	c.failAllPending(&fixerr.SessionError{Kind: fixerr.SessionLost})
	return nil
}

// nextID mints a request ID: unique per call, with a short
// human-readable prefix for log readability.
func nextID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

func (c *Client) register(id string, ch chan any) {
	c.corrMu.Lock()
	c.corr[id] = ch
	c.corrMu.Unlock()
}

func (c *Client) unregister(id string) {
	c.corrMu.Lock()
	delete(c.corr, id)
	for sym, set := range c.mdSymbols {
		delete(set, id)
		if len(set) == 0 {
			delete(c.mdSymbols, sym)
		}
	}
	delete(c.tradeCaptureStreams, id)
	c.corrMu.Unlock()
}

func (c *Client) registerMDSymbols(id string, symbols []string) {
	c.corrMu.Lock()
	for _, sym := range symbols {
		set, ok := c.mdSymbols[sym]
		if !ok {
			set = make(map[string]struct{})
			c.mdSymbols[sym] = set
		}
		set[id] = struct{}{}
	}
	c.corrMu.Unlock()
}

func (c *Client) registerTradeCapture(id string, ch chan any) {
	c.corrMu.Lock()
	c.tradeCaptureStreams[id] = ch
	c.corrMu.Unlock()
}

func (c *Client) registerMassStatus(ch chan any) {
	c.corrMu.Lock()
	c.massStatus = ch
	c.corrMu.Unlock()
}

// deliver routes a parsed value to the correlation entry keyed by id,
// dropping it with a debug log if no one is listening (e.g. an orphaned
// response to a cancelled or completed request).
func (c *Client) deliver(id string, v any) {
	c.corrMu.Lock()
	ch, ok := c.corr[id]
	c.corrMu.Unlock()
	if !ok {
		c.logger.Debug().Str("id", id).Msg("orphan response")
		return
	}
	nonBlockingSend(ch, v)
}

func (c *Client) deliverBySymbol(symbol string, v any) {
	c.corrMu.Lock()
	var chans []chan any
	for id := range c.mdSymbols[symbol] {
		if ch, ok := c.corr[id]; ok {
			chans = append(chans, ch)
		}
	}
	c.corrMu.Unlock()
	for _, ch := range chans {
		nonBlockingSend(ch, v)
	}
}

func (c *Client) deliverTradeCaptureBroadcast(v any) {
	c.corrMu.Lock()
	chans := make([]chan any, 0, len(c.tradeCaptureStreams))
	for _, ch := range c.tradeCaptureStreams {
		chans = append(chans, ch)
	}
	c.corrMu.Unlock()
	for _, ch := range chans {
		nonBlockingSend(ch, v)
	}
}

func (c *Client) deliverMassStatus(v any) {
	c.corrMu.Lock()
	ch := c.massStatus
	c.corrMu.Unlock()
	if ch != nil {
		nonBlockingSend(ch, v)
	}
}

func (c *Client) failAllPending(err error) {
	c.corrMu.Lock()
	chans := make([]chan any, 0, len(c.corr)+len(c.tradeCaptureStreams)+1)
	for _, ch := range c.corr {
		chans = append(chans, ch)
	}
	for _, ch := range c.tradeCaptureStreams {
		chans = append(chans, ch)
	}
	if c.massStatus != nil {
		chans = append(chans, c.massStatus)
	}
	c.corrMu.Unlock()
	for _, ch := range chans {
		nonBlockingSend(ch, err)
	}
}

// nonBlockingSend drops the oldest buffered value on overflow rather
// than letting a slow consumer block the dispatcher.
func nonBlockingSend(ch chan any, v any) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
