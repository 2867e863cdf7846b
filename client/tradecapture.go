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

	"github.com/joaquinbejar/deribit-fix-go/internal/message"
)

// TradeCaptureUpdate is one message a trade capture request's stream
// can receive.
type TradeCaptureUpdate struct {
	Ack   *message.TradeCaptureReportRequestAckFields
	Trade *message.TradeCaptureReportFields
}

// TradeCaptureRequest asks the venue for a trade history and returns a
// stream of the acknowledgement and every resulting report. Inbound
// TradeCaptureReports (35=AE) carry no field tying them back to a
// specific request, so every active TradeCaptureRequest stream
// receives every report the venue sends; callers that issued more than
// one concurrent request should filter Trade by symbol/time themselves.
func (c *Client) TradeCaptureRequest(ctx context.Context, tradeRequestType uint64, symbol string) (*Stream[TradeCaptureUpdate], error) {
	reqID := nextID("tcr")
	msg := message.BuildTradeCaptureReportRequest(reqID, tradeRequestType, symbol)

	raw := make(chan any, streamBufferSize)
	c.register(reqID, raw)             // the Ack carries TradeRequestID and correlates normally
	c.registerTradeCapture(reqID, raw) // the reports themselves broadcast to this same channel

	s := &Stream[TradeCaptureUpdate]{id: reqID, client: c, ch: make(chan TradeCaptureUpdate, streamBufferSize), errCh: make(chan error, 1), done: make(chan struct{})}
	go s.pump(raw)

	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		return nil, err
	}
	return s, nil
}
