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
	"strconv"
	"testing"
	"time"

	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
	"github.com/joaquinbejar/deribit-fix-go/internal/transport"
	"github.com/joaquinbejar/deribit-fix-go/internal/transport/transporttest"
)

// sendBusinessFrame writes a minimal ExecutionReport-shaped frame with the
// given MsgSeqNum and, optionally, PossDup=Y, the way a scripted venue peer
// would in these tests.
func sendBusinessFrame(t *testing.T, w interface{ Write([]byte) (int, error) }, seq uint64, possDup bool) {
	t.Helper()
	fields := []codec.Field{
		{Tag: fixtag.TagSenderCompID, Value: []byte("VENUE")},
		{Tag: fixtag.TagTargetCompID, Value: []byte("CLIENT")},
		{Tag: fixtag.TagMsgSeqNum, Value: []byte(strconv.FormatUint(seq, 10))},
		{Tag: fixtag.TagSendingTime, Value: []byte("20260101-00:00:00.000")},
	}
	if possDup {
		fields = append(fields, codec.Field{Tag: fixtag.TagPossDupFlag, Value: []byte("Y")})
	}
	fields = append(fields, codec.Field{Tag: fixtag.TagOrderID, Value: []byte("ord-1")})
	wire := codec.Encode(codec.Frame{MsgType: fixtag.MsgTypeExecutionReport, Fields: fields})
	if _, err := w.Write(wire); err != nil {
		t.Fatalf("write frame seq=%d: %v", seq, err)
	}
}

// sendSequenceReset writes a SequenceReset (35=4) frame at the given
// MsgSeqNum, carrying newSeqNo and gapFill the way a scripted venue peer
// would for a gap-fill or administrative resync.
func sendSequenceReset(t *testing.T, w interface{ Write([]byte) (int, error) }, seq, newSeqNo uint64, gapFill bool) {
	t.Helper()
	gapFillFlag := "N"
	if gapFill {
		gapFillFlag = "Y"
	}
	fields := []codec.Field{
		{Tag: fixtag.TagSenderCompID, Value: []byte("VENUE")},
		{Tag: fixtag.TagTargetCompID, Value: []byte("CLIENT")},
		{Tag: fixtag.TagMsgSeqNum, Value: []byte(strconv.FormatUint(seq, 10))},
		{Tag: fixtag.TagSendingTime, Value: []byte("20260101-00:00:00.000")},
		{Tag: fixtag.TagGapFillFlag, Value: []byte(gapFillFlag)},
		{Tag: fixtag.TagNewSeqNo, Value: []byte(strconv.FormatUint(newSeqNo, 10))},
	}
	wire := codec.Encode(codec.Frame{MsgType: fixtag.MsgTypeSequenceReset, Fields: fields})
	if _, err := w.Write(wire); err != nil {
		t.Fatalf("write sequence reset seq=%d: %v", seq, err)
	}
}

func newTestEngine(t *testing.T) (*Engine, *transporttest.Peer) {
	t.Helper()
	peer := transporttest.NewPeer()
	conn := transport.Wrap(peer.Client)
	eng := NewEngine(conn, Config{
		SenderCompID: "CLIENT",
		TargetCompID: "VENUE",
		HeartBtInt:   0, // heartbeat loop disabled; sequencing tests don't need it
	})
	return eng, peer
}

// drainEvents collects events from eng until the channel closes or the
// deadline passes, for assertions that don't care about ordering w.r.t.
// the Run goroutine.
func drainEvents(eng *Engine, out chan<- Event) {
	for ev := range eng.Events() {
		out <- ev
	}
	close(out)
}

func waitForEvent(t *testing.T, events <-chan Event, match func(Event) bool, timeout time.Duration) Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("event channel closed before expected event arrived")
			}
			if match(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for expected event")
		}
	}
}

// TestSequencing_InOrderAdvancesInboundSeq checks that a run of
// in-order inbound frames (seq 1, 2, 3, ...) each advance inbound_seq by
// exactly one and dispatch without gaps or duplicates.
func TestSequencing_InOrderAdvancesInboundSeq(t *testing.T) {
	eng, peer := newTestEngine(t)
	defer peer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- eng.Run(ctx) }()

	events := make(chan Event, 32)
	go drainEvents(eng, events)

	for seq := uint64(1); seq <= 3; seq++ {
		sendBusinessFrame(t, peer.Server, seq, false)
		waitForEvent(t, events, func(ev Event) bool {
			_, ok := ev.(EventBusinessMessage)
			return ok
		}, 2*time.Second)
		if got := eng.InboundSeq(); got != seq+1 {
			t.Fatalf("after seq %d: InboundSeq() = %d, want %d", seq, got, seq+1)
		}
	}

	cancel()
	<-runDone
}

// TestSequencing_GapBufferedAndReplayed covers out-of-order delivery: the
// engine expects seq 1, a frame with seq 3 arrives first (PossDup=N) and
// must be buffered behind an EventGap without advancing inbound_seq. Seq 1
// then arrives and advances inbound_seq to 2. Finally seq 2 arrives, which
// both advances inbound_seq to 3 and triggers the drain of the buffered
// seq 3 frame, advancing it to 4.
func TestSequencing_GapBufferedAndReplayed(t *testing.T) {
	eng, peer := newTestEngine(t)
	defer peer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- eng.Run(ctx) }()

	events := make(chan Event, 32)
	go drainEvents(eng, events)

	// seq 3 arrives while the engine expects seq 1: buffered, gap emitted,
	// inbound_seq must stay at 1.
	sendBusinessFrame(t, peer.Server, 3, false)
	gapEv := waitForEvent(t, events, func(ev Event) bool {
		_, ok := ev.(EventGap)
		return ok
	}, 2*time.Second).(EventGap)
	if gapEv.Expected != 1 || gapEv.Received != 3 {
		t.Fatalf("EventGap = %+v, want {Expected:1 Received:3}", gapEv)
	}
	if got := eng.InboundSeq(); got != 1 {
		t.Fatalf("InboundSeq() after gap = %d, want 1 (unchanged)", got)
	}

	// seq 1 closes the baseline gap and advances to 2; no replay yet since
	// the buffered frame is keyed at 3, not 2.
	sendBusinessFrame(t, peer.Server, 1, false)
	waitForEvent(t, events, func(ev Event) bool {
		bm, ok := ev.(EventBusinessMessage)
		return ok && bm.Frame.MsgType == fixtag.MsgTypeExecutionReport
	}, 2*time.Second)
	if got := eng.InboundSeq(); got != 2 {
		t.Fatalf("InboundSeq() after filling seq 1 = %d, want 2", got)
	}

	// seq 2 arrives, advances to 3, and must trigger the drain of the
	// buffered seq 3 frame, advancing inbound_seq to 4.
	sendBusinessFrame(t, peer.Server, 2, false)

	deadline := time.After(2 * time.Second)
	seen := 0
	for seen < 2 {
		select {
		case ev := <-events:
			if bm, ok := ev.(EventBusinessMessage); ok && bm.Frame.MsgType == fixtag.MsgTypeExecutionReport {
				seen++
			}
		case <-deadline:
			t.Fatalf("timed out waiting for seq=2 dispatch and buffered seq=3 replay, saw %d of 2", seen)
		}
	}
	if got := eng.InboundSeq(); got != 4 {
		t.Fatalf("InboundSeq() after replay = %d, want 4", got)
	}

	cancel()
	<-runDone
}

// TestSequencing_StaleDuplicateDropped covers PossDup=Y handling: a
// duplicate of an already-consumed sequence number is dropped (only its
// frame trace is emitted) and never advances inbound_seq or surfaces as a
// session error.
func TestSequencing_StaleDuplicateDropped(t *testing.T) {
	eng, peer := newTestEngine(t)
	defer peer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- eng.Run(ctx) }()

	events := make(chan Event, 32)
	go drainEvents(eng, events)

	sendBusinessFrame(t, peer.Server, 1, false)
	waitForEvent(t, events, func(ev Event) bool {
		_, ok := ev.(EventBusinessMessage)
		return ok
	}, 2*time.Second)
	if got := eng.InboundSeq(); got != 2 {
		t.Fatalf("InboundSeq() = %d, want 2", got)
	}

	// Replay seq 1 with PossDup=Y: must be dropped, no state change, no
	// EventSessionError.
	sendBusinessFrame(t, peer.Server, 1, true)

	quiet := time.After(300 * time.Millisecond)
	for waiting := true; waiting; {
		select {
		case ev := <-events:
			// Every inbound frame is traced before sequencing; only that
			// trace may follow a dropped duplicate.
			if _, ok := ev.(EventFrameTrace); !ok {
				t.Fatalf("unexpected event after dropped duplicate: %#v", ev)
			}
		case <-quiet:
			waiting = false
		}
	}
	if got := eng.InboundSeq(); got != 2 {
		t.Fatalf("InboundSeq() after duplicate = %d, want 2 (unchanged)", got)
	}
	if eng.State() == StateError {
		t.Fatal("dropped duplicate must not transition the session to Error")
	}

	cancel()
	<-runDone
}

// waitForInboundSeq polls InboundSeq() until it reaches want or the
// deadline passes, since SequenceReset processing is silent (no event is
// emitted on success).
func waitForInboundSeq(t *testing.T, eng *Engine, want uint64, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		if eng.InboundSeq() == want {
			return
		}
		select {
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timed out waiting for InboundSeq() = %d, last seen %d", want, eng.InboundSeq())
		}
	}
}

// TestSequencing_SequenceReset_GapFillOnlyMovesForward covers the
// GapFillFlag=Y branch: NewSeqNo advances inbound_seq when it is ahead of
// the current value, but a later gap-fill with a smaller NewSeqNo than
// already reached is a no-op rather than rewinding the counter.
func TestSequencing_SequenceReset_GapFillOnlyMovesForward(t *testing.T) {
	eng, peer := newTestEngine(t)
	defer peer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- eng.Run(ctx) }()

	sendSequenceReset(t, peer.Server, 1, 5, true)
	waitForInboundSeq(t, eng, 5, 2*time.Second)

	// A gap-fill carrying a NewSeqNo behind where inbound_seq already
	// stands must not rewind it.
	sendSequenceReset(t, peer.Server, 5, 3, true)
	waitForInboundSeq(t, eng, 6, 2*time.Second)

	cancel()
	<-runDone
}

// TestSequencing_SequenceReset_ResetModeCanMoveBackward covers the
// GapFillFlag=N branch: an administrative resync sets inbound_seq to
// NewSeqNo directly, including downward, per DESIGN.md's Open Question 2
// decision.
func TestSequencing_SequenceReset_ResetModeCanMoveBackward(t *testing.T) {
	eng, peer := newTestEngine(t)
	defer peer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- eng.Run(ctx) }()

	sendSequenceReset(t, peer.Server, 1, 10, false)
	waitForInboundSeq(t, eng, 10, 2*time.Second)

	sendSequenceReset(t, peer.Server, 10, 3, false)
	waitForInboundSeq(t, eng, 3, 2*time.Second)

	cancel()
	<-runDone
}

// TestSequencing_StaleNonDuplicateIsFatal: a stale frame
// without PossDup=Y is a fatal protocol error that transitions the session
// to Error.
func TestSequencing_StaleNonDuplicateIsFatal(t *testing.T) {
	eng, peer := newTestEngine(t)
	defer peer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- eng.Run(ctx) }()

	events := make(chan Event, 32)
	go drainEvents(eng, events)

	sendBusinessFrame(t, peer.Server, 1, false)
	waitForEvent(t, events, func(ev Event) bool {
		_, ok := ev.(EventBusinessMessage)
		return ok
	}, 2*time.Second)

	sendBusinessFrame(t, peer.Server, 1, false)
	waitForEvent(t, events, func(ev Event) bool {
		_, ok := ev.(EventSessionError)
		return ok
	}, 2*time.Second)

	deadline := time.After(2 * time.Second)
	for {
		if eng.State() == StateError {
			break
		}
		select {
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for State() to become StateError")
		}
	}

	cancel()
	<-runDone
}
