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

// RequestPositions returns a stream of PositionReports for account. A
// request for positions across several symbols may draw more than one
// report (TotNumReports on the first indicates how many to expect), so
// this returns a stream rather than a single value; callers that only
// care about the first report can read once from C() and Unsubscribe.
func (c *Client) RequestPositions(ctx context.Context, posReqType fixtag.PosReqType, account string) (*Stream[message.PositionReportFields], error) {
	reqID := nextID("pos")
	msg := message.BuildRequestForPositions(reqID, posReqType, account)
	s := newStream[message.PositionReportFields](c, reqID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		return nil, err
	}
	return s, nil
}
