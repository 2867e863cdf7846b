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

package message

import (
	"github.com/shopspring/decimal"

	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// MMProtectionLimitsParams contains parameters for a market-maker
// protection limits request (35=U10), the venue's custom risk-control
// message (custom tags 9001-9044).
type MMProtectionLimitsParams struct {
	MMProtectionReqID string
	Action            fixtag.MMProtectionAction
	Scope             string
	Limit             decimal.Decimal
	FreezeQuotes      bool
}

// BuildMMProtectionLimits builds an MMProtectionLimits (35=U10) message.
func BuildMMProtectionLimits(p MMProtectionLimitsParams) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagMMProtectionReqID, p.MMProtectionReqID)
	b.str(fixtag.TagMMProtectionAction, p.Action.String())
	b.strIfNotEmpty(fixtag.TagMMProtectionScope, p.Scope)
	b.dec(fixtag.TagMMProtectionLimit, p.Limit)
	if p.FreezeQuotes {
		b.str(fixtag.TagFreezeQuotes, "Y")
	}
	return b.build(fixtag.MsgTypeMMProtectionLimits)
}

// MMProtectionLimitsResultFields is what ParseMMProtectionLimitsResult
// extracts from an MMProtectionLimitsResult (35=U11).
type MMProtectionLimitsResultFields struct {
	MMProtectionReqID    string
	MMProtectionResultCode string
	Limit                decimal.Decimal
	UnparsedFields       []codec.Field
}

// ParseMMProtectionLimitsResult extracts fields from an inbound
// MMProtectionLimitsResult frame.
func ParseMMProtectionLimitsResult(f codec.Frame) (MMProtectionLimitsResultFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagMMProtectionReqID)
	if err != nil {
		return MMProtectionLimitsResultFields{}, err
	}
	result, _ := r.str(fixtag.TagMMProtectionResultCode)
	limit, err := r.dec(fixtag.TagMMProtectionLimit)
	if err != nil {
		return MMProtectionLimitsResultFields{}, err
	}
	return MMProtectionLimitsResultFields{
		MMProtectionReqID: id, MMProtectionResultCode: result, Limit: limit,
		UnparsedFields: r.unparsed(),
	}, nil
}

// BuildMMProtectionReset builds an MMProtectionReset (35=U12) message,
// clearing a previously-tripped protection for the given request ID.
func BuildMMProtectionReset(mmProtectionReqID string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagMMProtectionReqID, mmProtectionReqID)
	return b.build(fixtag.MsgTypeMMProtectionReset)
}

// MMProtectionResetFields is what ParseMMProtectionReset extracts.
type MMProtectionResetFields struct {
	MMProtectionReqID string
	UnparsedFields    []codec.Field
}

// ParseMMProtectionReset extracts fields from an inbound
// MMProtectionReset frame.
func ParseMMProtectionReset(f codec.Frame) (MMProtectionResetFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagMMProtectionReqID)
	if err != nil {
		return MMProtectionResetFields{}, err
	}
	return MMProtectionResetFields{MMProtectionReqID: id, UnparsedFields: r.unparsed()}, nil
}
