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
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaquinbejar/deribit-fix-go/internal/auth"
	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
	"github.com/joaquinbejar/deribit-fix-go/internal/session"
	"github.com/joaquinbejar/deribit-fix-go/internal/transport"
	"github.com/joaquinbejar/deribit-fix-go/internal/transport/transporttest"
)

// newTestClient wires a Client to an in-memory transport pair instead of
// dialing out, mirroring internal/session's own test helper.
func newTestClient(t *testing.T) (*Client, *transporttest.Peer) {
	t.Helper()
	peer := transporttest.NewPeer()
	conn := transport.Wrap(peer.Client)

	c := &Client{
		cfg:                 Config{SenderCompID: "CLIENT", TargetCompID: "VENUE", LogonTimeout: 2 * time.Second},
		enc:                 message.NewEncoder(message.EncoderConfig{}),
		auth:                auth.NewAuthenticator(),
		corr:                make(map[string]chan any),
		mdSymbols:           make(map[string]map[string]struct{}),
		tradeCaptureStreams: make(map[string]chan any),
	}
	c.conn = conn
	c.engine = session.NewEngine(conn, session.Config{
		SenderCompID: "CLIENT",
		TargetCompID: "VENUE",
		HeartBtInt:   0, // disabled: these tests don't exercise liveness
	})

	runCtx, cancel := context.WithCancel(context.Background())
	c.runCancel = cancel
	c.runDone = make(chan error, 1)
	go func() { c.runDone <- c.engine.Run(runCtx) }()
	go c.dispatchLoop()

	return c, peer
}

// rawFrame encodes a minimal frame with the header fields Encode expects,
// the same shape internal/session's tests use to script a venue peer.
func rawFrame(msgType string, seq uint64, fields ...codec.Field) []byte {
	all := []codec.Field{
		{Tag: fixtag.TagSenderCompID, Value: []byte("VENUE")},
		{Tag: fixtag.TagTargetCompID, Value: []byte("CLIENT")},
		{Tag: fixtag.TagMsgSeqNum, Value: []byte(strconv.FormatUint(seq, 10))},
		{Tag: fixtag.TagSendingTime, Value: []byte("20260101-00:00:00.000")},
	}
	all = append(all, fields...)
	return codec.Encode(codec.Frame{MsgType: msgType, Fields: all})
}

func TestClient_LogonCompletesOnEchoedLogon(t *testing.T) {
	c, peer := newTestClient(t)
	defer peer.Close()

	go func() {
		buf := make([]byte, 4096)
		n, err := peer.Server.Read(buf)
		if err != nil {
			return
		}
		_ = n
		if _, err := peer.Server.Write(rawFrame(fixtag.MsgTypeLogon, 1)); err != nil {
			t.Errorf("write logon echo: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Logon(ctx); err != nil {
		t.Fatalf("Logon() = %v, want nil", err)
	}
	if got := c.engine.State(); got != session.StateLoggedOn {
		t.Fatalf("State() = %v, want StateLoggedOn", got)
	}

	c.runCancel()
	<-c.runDone
}

func TestClient_NewOrder_DeliversExecutionReport(t *testing.T) {
	c, peer := newTestClient(t)
	defer peer.Close()

	go func() {
		buf := make([]byte, 4096)
		if _, err := peer.Server.Read(buf); err != nil {
			return
		}
		fields := []codec.Field{
			{Tag: fixtag.TagClOrdID, Value: []byte("order-1")},
			{Tag: fixtag.TagOrderID, Value: []byte("venue-order-1")},
			{Tag: fixtag.TagExecID, Value: []byte("exec-1")},
			{Tag: fixtag.TagExecType, Value: []byte("0")},
			{Tag: fixtag.TagOrdStatus, Value: []byte("0")},
			{Tag: fixtag.TagSymbol, Value: []byte("BTC-PERPETUAL")},
			{Tag: fixtag.TagSide, Value: []byte("1")},
			{Tag: fixtag.TagOrderQty, Value: []byte("10")},
			{Tag: fixtag.TagPrice, Value: []byte("50000")},
			{Tag: fixtag.TagLastPx, Value: []byte("0")},
			{Tag: fixtag.TagLastQty, Value: []byte("0")},
			{Tag: fixtag.TagLeavesQty, Value: []byte("10")},
			{Tag: fixtag.TagCumQty, Value: []byte("0")},
			{Tag: fixtag.TagAvgPx, Value: []byte("0")},
		}
		if _, err := peer.Server.Write(rawFrame(fixtag.MsgTypeExecutionReport, 1, fields...)); err != nil {
			t.Errorf("write execution report: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	price := decimal.NewFromInt(50000)
	stream, err := c.NewOrder(ctx, NewOrderParams{
		ClOrdID:  "order-1",
		Symbol:   "BTC-PERPETUAL",
		Side:     fixtag.SideBuy,
		OrdType:  fixtag.OrdTypeLimit,
		OrderQty: decimal.NewFromInt(10),
		Price:    &price,
	})
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	defer stream.Unsubscribe()

	select {
	case upd := <-stream.C():
		if upd.Report == nil || upd.Report.ClOrdID != "order-1" {
			t.Fatalf("got %+v, want a report for order-1", upd)
		}
	case err := <-stream.Err():
		t.Fatalf("stream error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for execution report")
	}

	c.runCancel()
	<-c.runDone
}

func TestClient_MarketDataIncremental_FansOutBySymbol(t *testing.T) {
	c, peer := newTestClient(t)
	defer peer.Close()

	go func() {
		buf := make([]byte, 4096)
		if _, err := peer.Server.Read(buf); err != nil {
			return
		}
		fields := []codec.Field{
			{Tag: fixtag.TagMDUpdateAction, Value: []byte("0")},
			{Tag: fixtag.TagSymbol, Value: []byte("BTC-PERPETUAL")},
			{Tag: fixtag.TagMDEntryType, Value: []byte("0")},
			{Tag: fixtag.TagMDEntryPx, Value: []byte("50001")},
			{Tag: fixtag.TagMDEntrySize, Value: []byte("5")},
		}
		if _, err := peer.Server.Write(rawFrame(fixtag.MsgTypeMarketDataIncrementalRefresh, 1, fields...)); err != nil {
			t.Errorf("write incremental refresh: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	stream, err := c.SubscribeMarketData(ctx, []string{"BTC-PERPETUAL"}, 5, []fixtag.MDEntryType{fixtag.MDEntryTypeBid})
	if err != nil {
		t.Fatalf("SubscribeMarketData() error = %v", err)
	}
	defer stream.Unsubscribe()

	select {
	case upd := <-stream.C():
		if upd.Incremental == nil || len(upd.Incremental.Entries) != 1 {
			t.Fatalf("got %+v, want one incremental entry", upd)
		}
		if upd.Incremental.Entries[0].Symbol != "BTC-PERPETUAL" {
			t.Fatalf("entry symbol = %q, want BTC-PERPETUAL", upd.Incremental.Entries[0].Symbol)
		}
	case err := <-stream.Err():
		t.Fatalf("stream error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for incremental refresh")
	}

	c.runCancel()
	<-c.runDone
}

