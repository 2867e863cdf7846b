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

	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
)

// MarketDataUpdate is one message a market data subscription can
// receive. Exactly one field is non-nil per delivery.
type MarketDataUpdate struct {
	Snapshot    *message.MarketDataSnapshotFields
	Incremental *message.MarketDataIncrementalFields
	Reject      *message.MarketDataRequestRejectFields
}

// MarketDataStream is the subscription returned by SubscribeMarketData.
type MarketDataStream = Stream[MarketDataUpdate]

// SubscribeMarketData requests a snapshot plus updates subscription
// (tag 263 = Subscribe) and returns a stream of every snapshot,
// incremental refresh and reject that follows. Incremental refreshes
// carry no MDReqID; each refresh is delivered whole to every stream
// subscribed to any symbol its entries name, once per such symbol, so a
// stream may also receive entries for symbols it did not subscribe to.
func (c *Client) SubscribeMarketData(ctx context.Context, symbols []string, depth uint64, entryTypes []fixtag.MDEntryType) (*MarketDataStream, error) {
	reqID := nextID("md")
	msg := message.BuildMarketDataRequest(message.MarketDataRequestParams{
		MDReqID:                 reqID,
		SubscriptionRequestType: fixtag.SubscriptionRequestTypeSubscribe,
		MarketDepth:             depth,
		Symbols:                 symbols,
		EntryTypes:              entryTypes,
	})

	s := newStream[MarketDataUpdate](c, reqID)
	c.registerMDSymbols(reqID, symbols)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		return nil, err
	}
	return s, nil
}

// UnsubscribeMarketData sends an unsubscribe (tag 263 = Unsubscribe) for
// the same symbols and then ends delivery locally. The façade does not
// wait for the venue's acknowledgment before returning: by the time this
// call returns, no further updates will be delivered on stream, whether
// or not the venue has processed the unsubscribe yet.
func (c *Client) UnsubscribeMarketData(ctx context.Context, stream *MarketDataStream, symbols []string, entryTypes []fixtag.MDEntryType) error {
	msg := message.BuildMarketDataRequest(message.MarketDataRequestParams{
		MDReqID:                 nextID("mdunsub"),
		SubscriptionRequestType: fixtag.SubscriptionRequestTypeUnsubscribe,
		Symbols:                 symbols,
		EntryTypes:              entryTypes,
	})
	err := c.engine.Send(ctx, msg)
	stream.Unsubscribe()
	return err
}

// RequestSecurityList returns the venue's instrument list. Pass
// SecurityListRequestSecurityType with a securityType to scope the list,
// or SecurityListRequestAllSecurities for every instrument (securityType
// is ignored then).
func (c *Client) RequestSecurityList(ctx context.Context, listType fixtag.SecurityListRequestType, securityType fixtag.SecurityType) (message.SecurityListFields, error) {
	reqID := nextID("secl")
	msg := message.BuildSecurityListRequest(reqID, listType, securityType)
	s := newStream[message.SecurityListFields](c, reqID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		var zero message.SecurityListFields
		return zero, err
	}
	return awaitOne(ctx, s)
}

// RequestSecurityDefinition returns the contract terms for symbol.
func (c *Client) RequestSecurityDefinition(ctx context.Context, symbol string) (message.SecurityDefinitionFields, error) {
	reqID := nextID("secd")
	msg := message.BuildSecurityDefinitionRequest(reqID, symbol)
	s := newStream[message.SecurityDefinitionFields](c, reqID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		var zero message.SecurityDefinitionFields
		return zero, err
	}
	return awaitOne(ctx, s)
}

// SubscribeSecurityStatus returns a stream of trading status updates
// for symbol.
func (c *Client) SubscribeSecurityStatus(ctx context.Context, symbol string) (*Stream[message.SecurityStatusFields], error) {
	reqID := nextID("secs")
	msg := message.BuildSecurityStatusRequest(reqID, symbol)
	s := newStream[message.SecurityStatusFields](c, reqID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		return nil, err
	}
	return s, nil
}
