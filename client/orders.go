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
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
)

// OrderUpdate is one message an order's correlation entry can receive:
// an ExecutionReport or an OrderCancelReject, whichever the venue sends.
// Exactly one of the two fields is non-nil.
type OrderUpdate struct {
	Report *message.ExecutionReportFields
	Reject *message.OrderCancelRejectFields
}

// OrderStream is the subscription an order's ClOrdID stays correlated to
// until the caller unsubscribes: partial fills and other follow-up
// reports keep arriving on it until a terminal ExecType.
type OrderStream = Stream[OrderUpdate]

// NewOrderParams mirrors message.NewOrderParams but omits TransactTime,
// which NewOrder stamps at send time.
type NewOrderParams struct {
	ClOrdID     string
	Symbol      string
	Side        fixtag.Side
	OrdType     fixtag.OrdType
	TimeInForce fixtag.TimeInForce
	OrderQty    decimal.Decimal
	Price       *decimal.Decimal
	StopPx      *decimal.Decimal
	Account     string
	ExecInst    string
}

// NewOrder submits a NewOrderSingle and returns a stream of the
// ExecutionReports correlated to its ClOrdID.
func (c *Client) NewOrder(ctx context.Context, p NewOrderParams) (*OrderStream, error) {
	msg := message.BuildNewOrderSingle(message.NewOrderParams{
		ClOrdID: p.ClOrdID, Symbol: p.Symbol, Side: p.Side, OrdType: p.OrdType,
		TimeInForce: p.TimeInForce, OrderQty: p.OrderQty, Price: p.Price, StopPx: p.StopPx,
		Account: p.Account, ExecInst: p.ExecInst, TransactTime: time.Now(),
	})
	return c.sendOrderRequest(ctx, p.ClOrdID, msg)
}

// CancelOrder requests cancellation of origClOrdID and returns a stream
// of the resulting ExecutionReports/OrderCancelRejects, correlated to the
// new ClOrdID this cancel request carries.
func (c *Client) CancelOrder(ctx context.Context, clOrdID, origClOrdID, orderID, symbol string, side fixtag.Side) (*OrderStream, error) {
	msg := message.BuildOrderCancelRequest(message.CancelOrderParams{
		ClOrdID: clOrdID, OrigClOrdID: origClOrdID, OrderID: orderID,
		Symbol: symbol, Side: side, TransactTime: time.Now(),
	})
	return c.sendOrderRequest(ctx, clOrdID, msg)
}

// ReplaceOrderParams mirrors message.ReplaceOrderParams but omits
// TransactTime.
type ReplaceOrderParams struct {
	ClOrdID     string
	OrigClOrdID string
	OrderID     string
	Symbol      string
	Side        fixtag.Side
	OrdType     fixtag.OrdType
	OrderQty    decimal.Decimal
	Price       *decimal.Decimal
	StopPx      *decimal.Decimal
}

// ReplaceOrder requests an OrderCancelReplace and returns a stream
// correlated to the new ClOrdID.
func (c *Client) ReplaceOrder(ctx context.Context, p ReplaceOrderParams) (*OrderStream, error) {
	msg := message.BuildOrderCancelReplaceRequest(message.ReplaceOrderParams{
		ClOrdID: p.ClOrdID, OrigClOrdID: p.OrigClOrdID, OrderID: p.OrderID,
		Symbol: p.Symbol, Side: p.Side, OrdType: p.OrdType, OrderQty: p.OrderQty,
		Price: p.Price, StopPx: p.StopPx, TransactTime: time.Now(),
	})
	return c.sendOrderRequest(ctx, p.ClOrdID, msg)
}

func (c *Client) sendOrderRequest(ctx context.Context, clOrdID string, msg message.Message) (*OrderStream, error) {
	s := newStream[OrderUpdate](c, clOrdID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		return nil, err
	}
	return s, nil
}

// MassCancelResult is what MassCancelOrders resolves with.
type MassCancelResult = message.OrderMassCancelReportFields

// MassCancelOrders cancels every open order (optionally scoped to
// symbol) and returns the single OrderMassCancelReport acknowledging it.
// massCancelRequestType is the venue's raw tag 530 value (e.g. "1" for
// all orders for a symbol, "7" for all orders).
func (c *Client) MassCancelOrders(ctx context.Context, massCancelRequestType, symbol string) (MassCancelResult, error) {
	clOrdID := nextID("mc")
	msg := message.BuildOrderMassCancelRequest(clOrdID, massCancelRequestType, symbol)
	s := newStream[MassCancelResult](c, clOrdID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		var zero MassCancelResult
		return zero, err
	}
	return awaitOne(ctx, s)
}

// MassOrderStatus requests a status report for every open order and
// returns a stream of the resulting ExecutionReports. Only one mass
// status request may be outstanding at a time: inbound reports carry the
// order's own ClOrdID, not the request ID, so they cannot be correlated
// per-request and are instead routed to this single catch-all stream.
func (c *Client) MassOrderStatus(ctx context.Context, massStatusReqType string) (*Stream[message.ExecutionReportFields], error) {
	reqID := nextID("mstat")
	msg := message.BuildOrderMassStatusRequest(reqID, massStatusReqType)

	raw := make(chan any, streamBufferSize)
	c.registerMassStatus(raw)
	s := &Stream[message.ExecutionReportFields]{id: reqID, client: c, ch: make(chan message.ExecutionReportFields, streamBufferSize), errCh: make(chan error, 1), done: make(chan struct{})}
	go s.pump(raw)

	if err := c.engine.Send(ctx, msg); err != nil {
		c.registerMassStatus(nil)
		return nil, err
	}
	return s, nil
}
