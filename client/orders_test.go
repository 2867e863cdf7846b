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
	"testing"
	"time"

	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// TestClient_CancelOrder_AlreadyCancelledSurfacesReject pins the already-cancelled path:
// cancelling an order that is already pending cancel surfaces as an
// OrderCancelReject carrying CxlRejReason=OrderAlreadyInPendingCancel...
// rather than being swallowed or delivered as a bare ExecutionReport.
func TestClient_CancelOrder_AlreadyCancelledSurfacesReject(t *testing.T) {
	c, peer := newTestClient(t)
	defer peer.Close()

	go func() {
		buf := make([]byte, 4096)
		if _, err := peer.Server.Read(buf); err != nil {
			return
		}
		fields := []codec.Field{
			{Tag: fixtag.TagClOrdID, Value: []byte("cancel-2")},
			{Tag: fixtag.TagOrigClOrdID, Value: []byte("order-1")},
			{Tag: fixtag.TagOrderID, Value: []byte("venue-order-1")},
			{Tag: fixtag.TagOrdStatus, Value: []byte("6")}, // PendingCancel
			{Tag: fixtag.TagCxlRejResponseTo, Value: []byte("1")},
			{Tag: fixtag.TagCxlRejReason, Value: []byte("3")}, // OrderAlreadyInPendingCancelOrPendingReplaceStatus
		}
		if _, err := peer.Server.Write(rawFrame(fixtag.MsgTypeOrderCancelReject, 1, fields...)); err != nil {
			t.Errorf("write order cancel reject: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	stream, err := c.CancelOrder(ctx, "cancel-2", "order-1", "venue-order-1", "BTC-PERPETUAL", fixtag.SideBuy)
	if err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
	defer stream.Unsubscribe()

	select {
	case upd := <-stream.C():
		if upd.Reject == nil {
			t.Fatalf("got %+v, want an OrderCancelReject", upd)
		}
		if upd.Reject.CxlRejReason != fixtag.CxlRejReasonOrderAlreadyInPendingCancelOrPendingReplaceStatus {
			t.Fatalf("CxlRejReason = %v, want OrderAlreadyInPendingCancelOrPendingReplaceStatus", upd.Reject.CxlRejReason)
		}
	case err := <-stream.Err():
		t.Fatalf("stream error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for order cancel reject")
	}

	c.runCancel()
	<-c.runDone
}
