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

// SetMMProtectionLimits configures (or updates) the market maker
// protection limit for scope and returns the venue's confirmation.
func (c *Client) SetMMProtectionLimits(ctx context.Context, action fixtag.MMProtectionAction, scope string, limit decimal.Decimal, freezeQuotes bool) (message.MMProtectionLimitsResultFields, error) {
	reqID := nextID("mmp")
	msg := message.BuildMMProtectionLimits(message.MMProtectionLimitsParams{
		MMProtectionReqID: reqID,
		Action:            action,
		Scope:             scope,
		Limit:             limit,
		FreezeQuotes:      freezeQuotes,
	})
	s := newStream[message.MMProtectionLimitsResultFields](c, reqID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		var zero message.MMProtectionLimitsResultFields
		return zero, err
	}
	return awaitOne(ctx, s)
}

// ResetMMProtection clears a triggered protection lock so quoting can
// resume.
func (c *Client) ResetMMProtection(ctx context.Context) (message.MMProtectionResetFields, error) {
	reqID := nextID("mmr")
	msg := message.BuildMMProtectionReset(reqID)
	s := newStream[message.MMProtectionResetFields](c, reqID)
	if err := c.engine.Send(ctx, msg); err != nil {
		s.Unsubscribe()
		var zero message.MMProtectionResetFields
		return zero, err
	}
	return awaitOne(ctx, s)
}
