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

	"github.com/shopspring/decimal"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
)

// QuoteUpdate is one message a quote request stream can receive.
type QuoteUpdate struct {
	Status *message.QuoteStatusReportFields
	Reject *message.QuoteRequestRejectFields
}

// QuoteRequest asks the venue for a two-sided market in symbol and
// returns a stream of the QuoteStatusReports (or reject) that follow,
// correlated by QuoteReqID.
func (c *Client) QuoteRequest(ctx context.Context, symbol string, side fixtag.Side, orderQty decimal.Decimal) (*Stream[QuoteUpdate], error) {
	reqID := nextID("qr")
	msg := message.BuildQuoteRequest(message.QuoteRequestParams{
		QuoteReqID: reqID,
		Symbol:     symbol,
		Side:       side,
		OrderQty:   orderQty,
	})
	s := newStream[QuoteUpdate](c, reqID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		return nil, err
	}
	return s, nil
}

// MassQuoteUpdate is one message a mass quote submission's correlation
// entry can receive.
type MassQuoteUpdate struct {
	Ack   *message.MassQuoteAcknowledgementFields
	Quote *message.MassQuoteFields
}

// MassQuote submits a two-sided quote across entries, correlated by the
// caller-supplied quoteID: MassQuoteAcknowledgement carries QuoteID, not
// any request ID the façade mints, so the caller picks the correlation
// key up front.
func (c *Client) MassQuote(ctx context.Context, quoteID string, entries []message.MassQuoteEntry) (*Stream[MassQuoteUpdate], error) {
	msg := message.BuildMassQuote(c.enc, quoteID, entries)
	s := newStream[MassQuoteUpdate](c, quoteID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		return nil, err
	}
	return s, nil
}

// CancelQuote cancels a previously submitted mass quote (or one of its
// entries, depending on cancelType) and returns the QuoteCancel
// acknowledgement, correlated by the same quoteID passed to MassQuote.
func (c *Client) CancelQuote(ctx context.Context, quoteID string, cancelType fixtag.QuoteCancelType, entries []message.QuoteCancelEntry) (message.QuoteCancelFields, error) {
	msg := message.BuildQuoteCancel(c.enc, quoteID, cancelType, entries)
	s := newStream[message.QuoteCancelFields](c, quoteID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		var zero message.QuoteCancelFields
		return zero, err
	}
	return awaitOne(ctx, s)
}
