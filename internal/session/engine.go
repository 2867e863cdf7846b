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

package session

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
	"github.com/joaquinbejar/deribit-fix-go/internal/transport"
)

// Config parameterizes one Engine instance.
type Config struct {
	SenderCompID string
	TargetCompID string
	HeartBtInt   time.Duration

	// OutboundSeqStart/InboundSeqStart seed the counters, e.g. from a
	// internal/sessionstore.Store on reconnect. Zero means "start at 1".
	OutboundSeqStart uint64
	InboundSeqStart  uint64

	Clock  Clock           // nil defaults to NewRealClock()
	Logger zerolog.Logger  // zero value is a no-op logger

	SendBufferSize  int // outbound queue depth, default 64
	EventBufferSize int // event channel depth, default 64
}

func (c Config) withDefaults() Config {
	if c.Clock == nil {
		c.Clock = NewRealClock()
	}
	if c.OutboundSeqStart == 0 {
		c.OutboundSeqStart = 1
	}
	if c.InboundSeqStart == 0 {
		c.InboundSeqStart = 1
	}
	if c.SendBufferSize == 0 {
		c.SendBufferSize = 64
	}
	if c.EventBufferSize == 0 {
		c.EventBufferSize = 64
	}
	return c
}

// Engine drives one FIX session over a transport.Conn: a writer task that
// is the sole authority over outbound sequencing and header stamping, a
// reader task that decodes and dispatches inbound frames, and a heartbeat
// task enforcing the liveness discipline. Locking follows the strict
// `state -> seq -> correlation` order; no I/O, hashing, or user callback
// runs while any of the three is held.
type Engine struct {
	conn   *transport.Conn
	cfg    Config
	clock  Clock
	logger zerolog.Logger

	stateMu     sync.Mutex
	state       State
	testPending bool
	testReqID   string

	seqMu          sync.Mutex
	outboundSeq    uint64
	inboundSeq     uint64
	lastSentAt     time.Time
	lastReceivedAt time.Time

	corrMu     sync.Mutex
	pendingGap map[uint64]codec.Frame // buffered out-of-order frames keyed by their MsgSeqNum

	sendCh   chan message.Message
	eventCh  chan Event
	outboundActivity chan struct{}
	inboundActivity  chan struct{}
}

// NewEngine constructs an Engine over conn. It does not transmit or read
// anything until Run is called.
func NewEngine(conn *transport.Conn, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		conn:             conn,
		cfg:              cfg,
		clock:            cfg.Clock,
		logger:           cfg.Logger,
		state:            StateConnected,
		outboundSeq:      cfg.OutboundSeqStart,
		inboundSeq:       cfg.InboundSeqStart,
		pendingGap:       make(map[uint64]codec.Frame),
		sendCh:           make(chan message.Message, cfg.SendBufferSize),
		eventCh:          make(chan Event, cfg.EventBufferSize),
		outboundActivity: make(chan struct{}, 1),
		inboundActivity:  make(chan struct{}, 1),
	}
}

// Events returns the channel the caller drains for session events. Closed
// when Run returns.
func (e *Engine) Events() <-chan Event { return e.eventCh }

// State returns the current session state.
func (e *Engine) State() State {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.state
}

// Send enqueues m for transmission. The writer task stamps its header
// fields (SenderCompID, TargetCompID, MsgSeqNum, SendingTime) and assigns
// its sequence number; Send itself never touches outboundSeq.
func (e *Engine) Send(ctx context.Context, m message.Message) error {
	select {
	case e.sendCh <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OutboundSeq and InboundSeq report the current counters, e.g. for
// internal/sessionstore persistence on graceful shutdown.
func (e *Engine) OutboundSeq() uint64 {
	e.seqMu.Lock()
	defer e.seqMu.Unlock()
	return e.outboundSeq
}

func (e *Engine) InboundSeq() uint64 {
	e.seqMu.Lock()
	defer e.seqMu.Unlock()
	return e.inboundSeq
}

// BeginLogon transitions the session to LoggingOn. Call this immediately
// before Send-ing the outbound Logon, so dispatch treats the answering
// inbound Logon as the session coming up rather than an
// unsolicited one.
func (e *Engine) BeginLogon() { e.transitionState(StateLoggingOn) }

// BeginLogout transitions the session to LoggingOut. Call this
// immediately before Send-ing the outbound Logout, so dispatch treats the
// answering inbound Logout as the graceful acknowledgement rather than a
// venue-initiated teardown.
func (e *Engine) BeginLogout() { e.transitionState(StateLoggingOut) }

func (e *Engine) transitionState(to State) {
	e.stateMu.Lock()
	from := e.state
	e.state = to
	e.stateMu.Unlock()
	if from != to {
		e.emit(EventStateChanged{From: from, To: to})
	}
}

func (e *Engine) emit(ev Event) {
	ev.logTo(e.logger)
	select {
	case e.eventCh <- ev:
	default:
		e.logger.Warn().Msg("event channel full, dropping oldest")
		select {
		case <-e.eventCh:
		default:
		}
		select {
		case e.eventCh <- ev:
		default:
		}
	}
}

func (e *Engine) notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Run starts the reader, writer and heartbeat tasks and blocks until ctx
// is cancelled or a fatal session error occurs.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var runErr error
	var runErrOnce sync.Once
	fail := func(err error) {
		runErrOnce.Do(func() { runErr = err })
		cancel()
	}

	wg.Add(4)
	go func() { defer wg.Done(); fail(e.readerLoop(ctx)) }()
	go func() { defer wg.Done(); fail(e.writerLoop(ctx)) }()
	go func() { defer wg.Done(); fail(e.heartbeatLoop(ctx)) }()
	// The reader's blocking Read on conn has no visibility into ctx
	// cancellation, so closing the transport is what actually unblocks it
	// once any of the three tasks above decides the session is done.
	go func() {
		defer wg.Done()
		<-ctx.Done()
		e.conn.Close(context.Background())
	}()

	wg.Wait()
	close(e.eventCh)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// writerLoop is the sole authority over outboundSeq and header stamping:
// on-wire order equals channel order, and the counter never rewinds.
func (e *Engine) writerLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-e.sendCh:
			if err := e.sendNow(m); err != nil {
				e.emit(EventSessionError{Err: err})
				e.transitionState(StateError)
				return err
			}
		}
	}
}

func (e *Engine) sendNow(m message.Message) error {
	e.seqMu.Lock()
	seq := e.outboundSeq
	e.outboundSeq++
	now := e.clock.Now()
	e.lastSentAt = now
	e.seqMu.Unlock()

	fields := append([]codec.Field{
		{Tag: fixtag.TagSenderCompID, Value: []byte(e.cfg.SenderCompID)},
		{Tag: fixtag.TagTargetCompID, Value: []byte(e.cfg.TargetCompID)},
		{Tag: fixtag.TagMsgSeqNum, Value: []byte(strconv.FormatUint(seq, 10))},
		{Tag: fixtag.TagSendingTime, Value: []byte(now.UTC().Format(message.TimeFormat))},
	}, m.Fields()...)
	frame := codec.Frame{MsgType: m.MsgType(), Fields: fields}

	e.emit(EventFrameTrace{Outbound: true, Frame: frame})
	wire := codec.Encode(frame)
	if _, err := e.conn.WriteHalf().Write(wire); err != nil {
		return &fixerr.ConnectionError{Kind: fixerr.ConnIO, Err: err}
	}
	e.notify(e.outboundActivity)
	return nil
}

// enqueueInternal bypasses the caller-facing Send (no context needed: the
// writer loop is always draining sendCh while the session is alive) for
// messages the engine itself originates, such as Heartbeat/TestRequest
// replies.
func (e *Engine) enqueueInternal(m message.Message) {
	select {
	case e.sendCh <- m:
	default:
		e.logger.Warn().Str("msgType", m.MsgType()).Msg("send queue full, dropping internal message")
	}
}

func (e *Engine) readerLoop(ctx context.Context) error {
	dec := codec.NewStreamDecoder(e.conn.ReadHalf())
	for {
		frame, err := dec.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if ctx.Err() != nil {
				// Shutdown already in progress (Run's teardown goroutine
				// closed the transport to unblock this Read): not a
				// session failure.
				return nil
			}
			if errors.Is(err, io.EOF) {
				e.emit(EventSessionError{Err: &fixerr.SessionError{Kind: fixerr.SessionLost}})
				e.transitionState(StateError)
				return err
			}
			e.emit(EventSessionError{Err: err})
			e.transitionState(StateError)
			return err
		}
		e.emit(EventFrameTrace{Outbound: false, Frame: frame})
		e.notify(e.inboundActivity)
		e.handleInbound(frame)
		if e.State() == StateError {
			return nil
		}
	}
}

func (e *Engine) handleInbound(frame codec.Frame) {
	seqBytes, ok := frame.Get(fixtag.TagMsgSeqNum)
	if !ok {
		e.emit(EventSessionError{Err: &fixerr.ProtocolError{Kind: fixerr.ProtoMissingRequiredField, Tag: uint32(fixtag.TagMsgSeqNum)}})
		return
	}
	seq, err := strconv.ParseUint(string(seqBytes), 10, 64)
	if err != nil {
		e.emit(EventSessionError{Err: &fixerr.ProtocolError{Kind: fixerr.ProtoMissingRequiredField, Tag: uint32(fixtag.TagMsgSeqNum)}})
		return
	}

	// ResendRequest is surfaced without touching inbound_seq.
	if frame.MsgType == fixtag.MsgTypeResendRequest {
		if rr, err := message.ParseResendRequest(frame); err == nil {
			e.emit(EventResendRequested{BeginSeqNo: rr.BeginSeqNo})
		}
		return
	}

	possDup := false
	if v, ok := frame.Get(fixtag.TagPossDupFlag); ok {
		possDup = string(v) == "Y"
	}

	e.acceptSequenced(seq, possDup, frame)
}

// acceptSequenced applies the sequencing discipline: an
// in-order frame advances inbound_seq and is dispatched; a frame that
// arrives early is buffered until the gap closes; a stale duplicate
// (PossDup=Y) is dropped; a stale non-duplicate is fatal.
func (e *Engine) acceptSequenced(seq uint64, possDup bool, frame codec.Frame) {
	e.seqMu.Lock()
	expected := e.inboundSeq
	switch {
	case seq == expected:
		e.inboundSeq++
		e.lastReceivedAt = e.clock.Now()
		e.seqMu.Unlock()
		e.dispatch(frame)
		e.drainPendingGap()
	case seq < expected:
		e.seqMu.Unlock()
		if possDup {
			e.logger.Debug().Uint64("seq", seq).Msg("dropping duplicate")
			return
		}
		e.emit(EventSessionError{Err: &fixerr.ProtocolError{Kind: fixerr.ProtoSequenceMismatch, Expected: expected, Received: seq}})
		e.enqueueInternal(message.BuildLogout("sequence error"))
		e.transitionState(StateError)
	default:
		e.seqMu.Unlock()
		e.corrMu.Lock()
		e.pendingGap[seq] = frame
		e.corrMu.Unlock()
		e.emit(EventGap{Expected: expected, Received: seq})
	}
}

// drainPendingGap replays any buffered frame that the gap closing now
// makes next-in-line, in order.
func (e *Engine) drainPendingGap() {
	for {
		e.seqMu.Lock()
		expected := e.inboundSeq
		e.seqMu.Unlock()

		e.corrMu.Lock()
		frame, ok := e.pendingGap[expected]
		if ok {
			delete(e.pendingGap, expected)
		}
		e.corrMu.Unlock()
		if !ok {
			return
		}

		e.seqMu.Lock()
		e.inboundSeq++
		e.lastReceivedAt = e.clock.Now()
		e.seqMu.Unlock()
		e.dispatch(frame)
	}
}

func (e *Engine) dispatch(frame codec.Frame) {
	switch frame.MsgType {
	case fixtag.MsgTypeLogon:
		e.stateMu.Lock()
		inLogon := e.state == StateLoggingOn
		e.stateMu.Unlock()
		if inLogon {
			e.transitionState(StateLoggedOn)
		}
		e.emit(EventBusinessMessage{Frame: frame})
	case fixtag.MsgTypeLogout:
		e.stateMu.Lock()
		inLogout := e.state == StateLoggingOut
		e.stateMu.Unlock()
		if inLogout {
			e.transitionState(StateLoggedOut)
		} else {
			lf, _ := message.ParseLogout(frame)
			e.emit(EventSessionError{Err: &fixerr.SessionError{Kind: fixerr.SessionLogout, Reason: lf.Text}})
			e.transitionState(StateError)
		}
	case fixtag.MsgTypeHeartbeat:
		hb, _ := message.ParseHeartbeat(frame)
		e.stateMu.Lock()
		if e.testPending && hb.TestReqID != "" && hb.TestReqID == e.testReqID {
			e.testPending = false
			e.testReqID = ""
		}
		e.stateMu.Unlock()
	case fixtag.MsgTypeTestRequest:
		tr, err := message.ParseTestRequest(frame)
		if err == nil {
			e.enqueueInternal(message.BuildHeartbeat(tr.TestReqID))
		}
	case fixtag.MsgTypeSequenceReset:
		sr, err := message.ParseSequenceReset(frame)
		if err == nil && sr.NewSeqNo > 0 {
			e.seqMu.Lock()
			// Gap-fill mode only ever fills forward over a known gap;
			// reset mode is an administrative resync and may legitimately
			// set inboundSeq to a smaller value.
			if sr.GapFillFlag {
				if sr.NewSeqNo > e.inboundSeq {
					e.inboundSeq = sr.NewSeqNo
				}
			} else {
				e.inboundSeq = sr.NewSeqNo
			}
			e.seqMu.Unlock()
		}
	default:
		e.emit(EventBusinessMessage{Frame: frame})
	}
}

// markTestPending records the TestReqID of the TestRequest the heartbeat
// loop just queued; dispatch clears it when the answering Heartbeat
// arrives.
func (e *Engine) markTestPending(id string) {
	e.stateMu.Lock()
	e.testPending = true
	e.testReqID = id
	e.stateMu.Unlock()
}
