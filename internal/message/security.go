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

var securityListSpec = groupSpec{countTag: fixtag.TagNoRelatedSymSecurityList}

// BuildSecurityListRequest builds a Security List Request (35=x).
// securityType scopes the request when listRequestType is
// SecurityListRequestSecurityType; it is omitted from the wire for an
// all-securities request.
func BuildSecurityListRequest(securityReqID string, listRequestType fixtag.SecurityListRequestType, securityType fixtag.SecurityType) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagSecurityReqID, securityReqID)
	b.str(fixtag.TagSecurityListRequestType, listRequestType.String())
	if listRequestType == fixtag.SecurityListRequestSecurityType {
		b.str(fixtag.TagSecurityType, securityType.String())
	}
	return b.build(fixtag.MsgTypeSecurityListRequest)
}

// SecurityListEntry is one instrument in a Security List response.
type SecurityListEntry struct {
	Symbol              string
	SecurityType        fixtag.SecurityType
	Currency            string
	ContractMultiplier  decimal.Decimal
	MinPriceIncrement   decimal.Decimal
	StrikePrice         decimal.Decimal
	PutOrCall           *fixtag.PutOrCall
}

// SecurityListFields is what ParseSecurityList extracts from a Security
// List (35=y) response.
type SecurityListFields struct {
	SecurityReqID  string
	SecurityResponseID string
	Entries        []SecurityListEntry
	UnparsedFields []codec.Field
}

var securityListEntryTags = []fixtag.Tag{
	fixtag.TagSymbol, fixtag.TagSecurityType, fixtag.TagCurrency,
	fixtag.TagContractMultiplier, fixtag.TagMinPriceIncrement,
	fixtag.TagStrikePrice, fixtag.TagPutOrCall,
}

// ParseSecurityList extracts fields from an inbound Security List frame.
func ParseSecurityList(f codec.Frame) (SecurityListFields, error) {
	r := newFieldReader(f)
	reqID, _ := r.str(fixtag.TagSecurityReqID)
	respID, _ := r.str(fixtag.TagSecurityResponseID)

	groups := decodeGroup(f, securityListSpec, securityListEntryTags)
	entries := make([]SecurityListEntry, 0, len(groups))
	for _, g := range groups {
		values := fieldsByTag(g)
		for _, tag := range securityListEntryTags {
			r.mark(tag)
		}

		secType, err := fixtag.ParseSecurityType(string(values[fixtag.TagSecurityType]))
		if err != nil {
			return SecurityListFields{}, err
		}
		mult, err := codec.ParseDecimal(string(values[fixtag.TagContractMultiplier]))
		if err != nil {
			return SecurityListFields{}, err
		}
		tick, err := codec.ParseDecimal(string(values[fixtag.TagMinPriceIncrement]))
		if err != nil {
			return SecurityListFields{}, err
		}
		var strike decimal.Decimal
		if v := values[fixtag.TagStrikePrice]; len(v) > 0 {
			strike, err = codec.ParseDecimal(string(v))
			if err != nil {
				return SecurityListFields{}, err
			}
		}

		var putCall *fixtag.PutOrCall
		if v := values[fixtag.TagPutOrCall]; len(v) > 0 {
			parsed, err := fixtag.ParsePutOrCall(string(v))
			if err != nil {
				return SecurityListFields{}, err
			}
			putCall = &parsed
		}

		entries = append(entries, SecurityListEntry{
			Symbol:             string(values[fixtag.TagSymbol]),
			SecurityType:       secType,
			Currency:           string(values[fixtag.TagCurrency]),
			ContractMultiplier: mult,
			MinPriceIncrement:  tick,
			StrikePrice:        strike,
			PutOrCall:          putCall,
		})
	}

	return SecurityListFields{SecurityReqID: reqID, SecurityResponseID: respID, Entries: entries, UnparsedFields: r.unparsed()}, nil
}

// BuildSecurityDefinitionRequest builds a Security Definition Request (35=c).
func BuildSecurityDefinitionRequest(securityReqID, symbol string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagSecurityReqID, securityReqID)
	b.str(fixtag.TagSymbol, symbol)
	return b.build(fixtag.MsgTypeSecurityDefinitionRequest)
}

// SecurityDefinitionFields is what ParseSecurityDefinition extracts.
type SecurityDefinitionFields struct {
	SecurityReqID      string
	SecurityResponseID string
	Symbol             string
	SecurityType       fixtag.SecurityType
	ContractMultiplier decimal.Decimal
	MinPriceIncrement  decimal.Decimal
	UnparsedFields     []codec.Field
}

// ParseSecurityDefinition extracts fields from an inbound Security
// Definition frame.
func ParseSecurityDefinition(f codec.Frame) (SecurityDefinitionFields, error) {
	r := newFieldReader(f)
	reqID, _ := r.str(fixtag.TagSecurityReqID)
	respID, _ := r.str(fixtag.TagSecurityResponseID)
	symbol, err := r.require(fixtag.TagSymbol)
	if err != nil {
		return SecurityDefinitionFields{}, err
	}
	secTypeStr, _ := r.str(fixtag.TagSecurityType)
	var secType fixtag.SecurityType
	if secTypeStr != "" {
		secType, err = fixtag.ParseSecurityType(secTypeStr)
		if err != nil {
			return SecurityDefinitionFields{}, err
		}
	}
	mult, err := r.dec(fixtag.TagContractMultiplier)
	if err != nil {
		return SecurityDefinitionFields{}, err
	}
	tick, err := r.dec(fixtag.TagMinPriceIncrement)
	if err != nil {
		return SecurityDefinitionFields{}, err
	}

	return SecurityDefinitionFields{
		SecurityReqID: reqID, SecurityResponseID: respID, Symbol: symbol,
		SecurityType: secType, ContractMultiplier: mult, MinPriceIncrement: tick,
		UnparsedFields: r.unparsed(),
	}, nil
}

// BuildSecurityStatusRequest builds a Security Status Request (35=e).
func BuildSecurityStatusRequest(securityStatusReqID, symbol string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagSecurityStatusReqID, securityStatusReqID)
	b.str(fixtag.TagSymbol, symbol)
	return b.build(fixtag.MsgTypeSecurityStatusRequest)
}

// SecurityStatusFields is what ParseSecurityStatus extracts.
type SecurityStatusFields struct {
	SecurityStatusReqID string
	Symbol               string
	TradingStatus        fixtag.SecurityTradingStatus
	UnparsedFields       []codec.Field
}

// ParseSecurityStatus extracts fields from an inbound Security Status frame.
func ParseSecurityStatus(f codec.Frame) (SecurityStatusFields, error) {
	r := newFieldReader(f)
	reqID, _ := r.str(fixtag.TagSecurityStatusReqID)
	symbol, err := r.require(fixtag.TagSymbol)
	if err != nil {
		return SecurityStatusFields{}, err
	}
	statusStr, err := r.require(fixtag.TagSecurityTradingStatus)
	if err != nil {
		return SecurityStatusFields{}, err
	}
	status, err := fixtag.ParseSecurityTradingStatus(statusStr)
	if err != nil {
		return SecurityStatusFields{}, err
	}
	return SecurityStatusFields{SecurityStatusReqID: reqID, Symbol: symbol, TradingStatus: status, UnparsedFields: r.unparsed()}, nil
}
