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

// RfqRequest asks the venue to solicit quotes for a multi-leg structure
// and returns a stream of the QuoteStatusReports that follow, sharing
// QuoteReqID's correlation space with QuoteRequest.
func (c *Client) RfqRequest(ctx context.Context, legs []message.RFQLeg) (*Stream[QuoteUpdate], error) {
	reqID := nextID("rfq")
	msg := message.BuildRFQRequest(c.enc, reqID, legs)
	s := newStream[QuoteUpdate](c, reqID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		return nil, err
	}
	return s, nil
}
