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

// RFQLeg is one leg of a multi-leg request for quote.
type RFQLeg struct {
	Symbol string
	Side   fixtag.Side
	Qty    decimal.Decimal
	Ratio  uint64
}

var rfqLegSpec = groupSpec{
	countTag:     fixtag.TagNoLegs,
	legacyBase:   fixtag.TagLegacyRFQLegBase,
	legacyStride: 4,
}

var rfqLegTags = []fixtag.Tag{fixtag.TagRFQLegSymbol, fixtag.TagRFQLegSide, fixtag.TagRFQLegQty, fixtag.TagRFQLegRatio}

// BuildRFQRequest builds an RFQ Request (35=AH) message covering one or
// more legs.
func BuildRFQRequest(enc *Encoder, quoteReqID string, legs []RFQLeg) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagQuoteReqID, quoteReqID)

	entries := make([]groupEntry, 0, len(legs))
	for _, leg := range legs {
		entries = append(entries, groupEntry{
			{Tag: fixtag.TagRFQLegSymbol, Value: []byte(leg.Symbol)},
			{Tag: fixtag.TagRFQLegSide, Value: []byte(leg.Side.String())},
			{Tag: fixtag.TagRFQLegQty, Value: []byte(codec.FormatDecimal(leg.Qty))},
			{Tag: fixtag.TagRFQLegRatio, Value: []byte(codec.FormatInt(leg.Ratio))},
		})
	}
	b.raw(encodeGroup(enc, rfqLegSpec, entries)...)

	return b.build(fixtag.MsgTypeRFQRequest)
}

// RFQRequestFields is what ParseRFQRequest extracts.
type RFQRequestFields struct {
	QuoteReqID     string
	Legs           []RFQLeg
	UnparsedFields []codec.Field
}

// ParseRFQRequest extracts fields from an inbound RFQ Request frame.
func ParseRFQRequest(f codec.Frame) (RFQRequestFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagQuoteReqID)
	if err != nil {
		return RFQRequestFields{}, err
	}

	groups := decodeGroup(f, rfqLegSpec, rfqLegTags)
	legs := make([]RFQLeg, 0, len(groups))
	for _, g := range groups {
		v := fieldsByTag(g)
		side, err := fixtag.ParseSide(string(v[fixtag.TagRFQLegSide]))
		if err != nil {
			return RFQRequestFields{}, err
		}
		qty, err := codec.ParseDecimal(string(v[fixtag.TagRFQLegQty]))
		if err != nil {
			return RFQRequestFields{}, err
		}
		ratio, err := codec.ParseUint(string(v[fixtag.TagRFQLegRatio]))
		if err != nil {
			return RFQRequestFields{}, err
		}
		legs = append(legs, RFQLeg{Symbol: string(v[fixtag.TagRFQLegSymbol]), Side: side, Qty: qty, Ratio: ratio})
	}
	for _, tag := range rfqLegTags {
		r.mark(tag)
	}

	return RFQRequestFields{QuoteReqID: id, Legs: legs, UnparsedFields: r.unparsed()}, nil
}
