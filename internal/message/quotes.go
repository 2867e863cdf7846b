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

// QuoteRequestParams contains parameters for a Quote Request (35=R).
type QuoteRequestParams struct {
	QuoteReqID string
	Symbol     string
	Side       fixtag.Side
	OrderQty   decimal.Decimal
}

// BuildQuoteRequest builds a Quote Request (35=R) message.
func BuildQuoteRequest(p QuoteRequestParams) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagQuoteReqID, p.QuoteReqID)
	b.str(fixtag.TagSymbol, p.Symbol)
	b.str(fixtag.TagSide, p.Side.String())
	b.dec(fixtag.TagOrderQty, p.OrderQty)
	return b.build(fixtag.MsgTypeQuoteRequest)
}

// QuoteRequestRejectFields is what ParseQuoteRequestReject extracts.
type QuoteRequestRejectFields struct {
	QuoteReqID        string
	QuoteRejectReason fixtag.QuoteRejectReason
	Text              string
	UnparsedFields    []codec.Field
}

// ParseQuoteRequestReject extracts fields from an inbound Quote Request
// Reject frame.
func ParseQuoteRequestReject(f codec.Frame) (QuoteRequestRejectFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagQuoteReqID)
	if err != nil {
		return QuoteRequestRejectFields{}, err
	}
	reasonStr, _ := r.str(fixtag.TagQuoteRejectReason)
	text, _ := r.str(fixtag.TagText)
	var reason fixtag.QuoteRejectReason
	if reasonStr != "" {
		reason, err = fixtag.ParseQuoteRejectReason(reasonStr)
		if err != nil {
			return QuoteRequestRejectFields{}, err
		}
	}
	return QuoteRequestRejectFields{QuoteReqID: id, QuoteRejectReason: reason, Text: text, UnparsedFields: r.unparsed()}, nil
}

// QuoteStatusReportFields is what ParseQuoteStatusReport extracts from a
// Quote Status Report (35=AI).
type QuoteStatusReportFields struct {
	QuoteID        string
	QuoteReqID     string
	QuoteStatus    fixtag.QuoteStatus
	Symbol         string
	BidPx          decimal.Decimal
	OfferPx        decimal.Decimal
	UnparsedFields []codec.Field
}

// ParseQuoteStatusReport extracts fields from an inbound Quote Status
// Report frame.
func ParseQuoteStatusReport(f codec.Frame) (QuoteStatusReportFields, error) {
	r := newFieldReader(f)
	quoteID, _ := r.str(fixtag.TagQuoteID)
	quoteReqID, _ := r.str(fixtag.TagQuoteReqID)
	statusStr, err := r.require(fixtag.TagQuoteStatus)
	if err != nil {
		return QuoteStatusReportFields{}, err
	}
	status, err := fixtag.ParseQuoteStatus(statusStr)
	if err != nil {
		return QuoteStatusReportFields{}, err
	}
	symbol, _ := r.str(fixtag.TagSymbol)
	bidPx, err := r.dec(fixtag.TagBidPx)
	if err != nil {
		return QuoteStatusReportFields{}, err
	}
	offerPx, err := r.dec(fixtag.TagOfferPx)
	if err != nil {
		return QuoteStatusReportFields{}, err
	}

	return QuoteStatusReportFields{
		QuoteID: quoteID, QuoteReqID: quoteReqID, QuoteStatus: status,
		Symbol: symbol, BidPx: bidPx, OfferPx: offerPx, UnparsedFields: r.unparsed(),
	}, nil
}

// MassQuoteEntry is one two-sided quote instance within a MassQuote.
type MassQuoteEntry struct {
	QuoteEntryID string
	Symbol       string
	BidPx        decimal.Decimal
	OfferPx      decimal.Decimal
	BidSize      decimal.Decimal
	OfferSize    decimal.Decimal
}

var massQuoteEntrySpec = groupSpec{
	countTag:     fixtag.TagNoQuoteEntries,
	legacyBase:   fixtag.TagLegacyMassQuoteEntryBase,
	legacyStride: 6,
}

var massQuoteEntryTags = []fixtag.Tag{
	fixtag.TagQuoteEntryID, fixtag.TagSymbol, fixtag.TagBidPx,
	fixtag.TagOfferPx, fixtag.TagBidSize, fixtag.TagOfferSize,
}

// BuildMassQuote builds a MassQuote (35=i) message, rendering its entries
// per enc's configured GroupEncoding.
func BuildMassQuote(enc *Encoder, quoteID string, entries []MassQuoteEntry) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagQuoteID, quoteID)

	groupEntries := make([]groupEntry, 0, len(entries))
	for _, e := range entries {
		groupEntries = append(groupEntries, groupEntry{
			{Tag: fixtag.TagQuoteEntryID, Value: []byte(e.QuoteEntryID)},
			{Tag: fixtag.TagSymbol, Value: []byte(e.Symbol)},
			{Tag: fixtag.TagBidPx, Value: []byte(codec.FormatDecimal(e.BidPx))},
			{Tag: fixtag.TagOfferPx, Value: []byte(codec.FormatDecimal(e.OfferPx))},
			{Tag: fixtag.TagBidSize, Value: []byte(codec.FormatDecimal(e.BidSize))},
			{Tag: fixtag.TagOfferSize, Value: []byte(codec.FormatDecimal(e.OfferSize))},
		})
	}
	b.raw(encodeGroup(enc, massQuoteEntrySpec, groupEntries)...)

	return b.build(fixtag.MsgTypeMassQuote)
}

// MassQuoteFields is what ParseMassQuote extracts. The parser accepts
// either encoding regardless of the local Encoder's configured mode.
type MassQuoteFields struct {
	QuoteID        string
	Entries        []MassQuoteEntry
	UnparsedFields []codec.Field
}

// ParseMassQuote extracts fields from an inbound MassQuote frame.
func ParseMassQuote(f codec.Frame) (MassQuoteFields, error) {
	r := newFieldReader(f)
	quoteID, _ := r.str(fixtag.TagQuoteID)

	groups := decodeGroup(f, massQuoteEntrySpec, massQuoteEntryTags)
	entries := make([]MassQuoteEntry, 0, len(groups))
	for _, g := range groups {
		v := fieldsByTag(g)
		bidPx, err := codec.ParseDecimal(string(v[fixtag.TagBidPx]))
		if err != nil {
			return MassQuoteFields{}, err
		}
		offerPx, err := codec.ParseDecimal(string(v[fixtag.TagOfferPx]))
		if err != nil {
			return MassQuoteFields{}, err
		}
		bidSize, err := codec.ParseDecimal(string(v[fixtag.TagBidSize]))
		if err != nil {
			return MassQuoteFields{}, err
		}
		offerSize, err := codec.ParseDecimal(string(v[fixtag.TagOfferSize]))
		if err != nil {
			return MassQuoteFields{}, err
		}
		entries = append(entries, MassQuoteEntry{
			QuoteEntryID: string(v[fixtag.TagQuoteEntryID]),
			Symbol:       string(v[fixtag.TagSymbol]),
			BidPx:        bidPx,
			OfferPx:      offerPx,
			BidSize:      bidSize,
			OfferSize:    offerSize,
		})
	}
	for _, tag := range massQuoteEntryTags {
		r.mark(tag)
	}

	return MassQuoteFields{QuoteID: quoteID, Entries: entries, UnparsedFields: r.unparsed()}, nil
}

// MassQuoteAckEntry is one acknowledged entry within a
// MassQuoteAcknowledgement.
type MassQuoteAckEntry struct {
	QuoteEntryID string
	Symbol       string
	QuoteStatus  fixtag.QuoteStatus
}

var massQuoteAckEntrySpec = groupSpec{
	countTag:     fixtag.TagNoQuoteEntries,
	legacyBase:   fixtag.TagLegacyMassQuoteAckEntryBase,
	legacyStride: 3,
}

var massQuoteAckEntryTags = []fixtag.Tag{fixtag.TagQuoteEntryID, fixtag.TagSymbol, fixtag.TagQuoteStatus}

// MassQuoteAcknowledgementFields is what ParseMassQuoteAcknowledgement extracts.
type MassQuoteAcknowledgementFields struct {
	QuoteID        string
	QuoteStatus    fixtag.QuoteStatus
	Entries        []MassQuoteAckEntry
	UnparsedFields []codec.Field
}

// ParseMassQuoteAcknowledgement extracts fields from an inbound
// MassQuoteAcknowledgement frame.
func ParseMassQuoteAcknowledgement(f codec.Frame) (MassQuoteAcknowledgementFields, error) {
	r := newFieldReader(f)
	quoteID, _ := r.str(fixtag.TagQuoteID)
	statusStr, _ := r.str(fixtag.TagQuoteStatus)
	var status fixtag.QuoteStatus
	var err error
	if statusStr != "" {
		status, err = fixtag.ParseQuoteStatus(statusStr)
		if err != nil {
			return MassQuoteAcknowledgementFields{}, err
		}
	}

	groups := decodeGroup(f, massQuoteAckEntrySpec, massQuoteAckEntryTags)
	entries := make([]MassQuoteAckEntry, 0, len(groups))
	for _, g := range groups {
		v := fieldsByTag(g)
		entryStatus, err := fixtag.ParseQuoteStatus(string(v[fixtag.TagQuoteStatus]))
		if err != nil {
			return MassQuoteAcknowledgementFields{}, err
		}
		entries = append(entries, MassQuoteAckEntry{
			QuoteEntryID: string(v[fixtag.TagQuoteEntryID]),
			Symbol:       string(v[fixtag.TagSymbol]),
			QuoteStatus:  entryStatus,
		})
	}
	for _, tag := range massQuoteAckEntryTags {
		r.mark(tag)
	}

	return MassQuoteAcknowledgementFields{QuoteID: quoteID, QuoteStatus: status, Entries: entries, UnparsedFields: r.unparsed()}, nil
}

// QuoteCancelEntry is one symbol targeted by a QuoteCancel.
type QuoteCancelEntry struct {
	Symbol string
}

var quoteCancelEntrySpec = groupSpec{
	countTag:     fixtag.TagNoQuoteEntries,
	legacyBase:   fixtag.TagLegacyQuoteCancelEntryBase,
	legacyStride: 1,
}

var quoteCancelEntryTags = []fixtag.Tag{fixtag.TagSymbol}

// BuildQuoteCancel builds a QuoteCancel (35=Z) message.
func BuildQuoteCancel(enc *Encoder, quoteID string, cancelType fixtag.QuoteCancelType, entries []QuoteCancelEntry) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagQuoteID, quoteID)
	b.str(fixtag.TagQuoteCancelType, cancelType.String())

	groupEntries := make([]groupEntry, 0, len(entries))
	for _, e := range entries {
		groupEntries = append(groupEntries, groupEntry{{Tag: fixtag.TagSymbol, Value: []byte(e.Symbol)}})
	}
	b.raw(encodeGroup(enc, quoteCancelEntrySpec, groupEntries)...)

	return b.build(fixtag.MsgTypeQuoteCancel)
}

// QuoteCancelFields is what ParseQuoteCancel extracts.
type QuoteCancelFields struct {
	QuoteID        string
	QuoteCancelType fixtag.QuoteCancelType
	Entries        []QuoteCancelEntry
	UnparsedFields []codec.Field
}

// ParseQuoteCancel extracts fields from an inbound QuoteCancel frame.
func ParseQuoteCancel(f codec.Frame) (QuoteCancelFields, error) {
	r := newFieldReader(f)
	quoteID, _ := r.str(fixtag.TagQuoteID)
	typeStr, err := r.require(fixtag.TagQuoteCancelType)
	if err != nil {
		return QuoteCancelFields{}, err
	}
	cancelType, err := fixtag.ParseQuoteCancelType(typeStr)
	if err != nil {
		return QuoteCancelFields{}, err
	}

	groups := decodeGroup(f, quoteCancelEntrySpec, quoteCancelEntryTags)
	entries := make([]QuoteCancelEntry, 0, len(groups))
	for _, g := range groups {
		v := fieldsByTag(g)
		entries = append(entries, QuoteCancelEntry{Symbol: string(v[fixtag.TagSymbol])})
	}
	r.mark(fixtag.TagSymbol)

	return QuoteCancelFields{QuoteID: quoteID, QuoteCancelType: cancelType, Entries: entries, UnparsedFields: r.unparsed()}, nil
}
