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

var marketDataEntryTypeSpec = groupSpec{countTag: fixtag.TagNoMDEntryTypes}
var relatedSymSpec = groupSpec{countTag: fixtag.TagNoRelatedSym}
var mdEntriesSpec = groupSpec{countTag: fixtag.TagNoMDEntries}

// MarketDataRequestParams contains parameters for a Market Data Request
// (35=V).
type MarketDataRequestParams struct {
	MDReqID                 string
	SubscriptionRequestType fixtag.SubscriptionRequestType
	MarketDepth             uint64
	Symbols                 []string
	EntryTypes              []fixtag.MDEntryType
}

// BuildMarketDataRequest builds a Market Data Request (35=V) message.
func BuildMarketDataRequest(p MarketDataRequestParams) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagMDReqID, p.MDReqID)
	b.str(fixtag.TagSubscriptionRequestType, p.SubscriptionRequestType.String())
	b.uint(fixtag.TagMarketDepth, p.MarketDepth)

	entryEntries := make([]groupEntry, 0, len(p.EntryTypes))
	for _, et := range p.EntryTypes {
		entryEntries = append(entryEntries, groupEntry{{Tag: fixtag.TagMDEntryType, Value: []byte(et.String())}})
	}
	b.raw(encodeGroup(nil, marketDataEntryTypeSpec, entryEntries)...)

	symEntries := make([]groupEntry, 0, len(p.Symbols))
	for _, sym := range p.Symbols {
		symEntries = append(symEntries, groupEntry{{Tag: fixtag.TagSymbol, Value: []byte(sym)}})
	}
	b.raw(encodeGroup(nil, relatedSymSpec, symEntries)...)

	return b.build(fixtag.MsgTypeMarketDataRequest)
}

// MarketDataRequestRejectFields is what ParseMarketDataRequestReject extracts.
type MarketDataRequestRejectFields struct {
	MDReqID        string
	MDReqRejReason fixtag.MDReqRejReason
	Text           string
	UnparsedFields []codec.Field
}

// ParseMarketDataRequestReject extracts fields from an inbound Market Data
// Request Reject frame.
func ParseMarketDataRequestReject(f codec.Frame) (MarketDataRequestRejectFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagMDReqID)
	if err != nil {
		return MarketDataRequestRejectFields{}, err
	}
	reasonStr, _ := r.str(fixtag.TagMDReqRejReason)
	var reason fixtag.MDReqRejReason
	if reasonStr != "" {
		reason, err = fixtag.ParseMDReqRejReason(reasonStr)
		if err != nil {
			return MarketDataRequestRejectFields{}, err
		}
	}
	text, _ := r.str(fixtag.TagText)
	return MarketDataRequestRejectFields{MDReqID: id, MDReqRejReason: reason, Text: text, UnparsedFields: r.unparsed()}, nil
}

// MDEntry is one parsed market data entry (bid/offer/trade/etc).
type MDEntry struct {
	EntryType fixtag.MDEntryType
	Price     decimal.Decimal
	Size      decimal.Decimal
	Time      string
	Position  uint64

	// Snapshot-only fields the venue attaches to some entries; nil or
	// empty on incremental refreshes and on entries that omit them.
	MarkPrice    *decimal.Decimal
	Funding      *decimal.Decimal
	IndexPrice   *decimal.Decimal
	Liquidation  string
	BlockTradeID string
	TradeID      string
}

// MarketDataSnapshotFields is what ParseMarketDataSnapshot extracts from a
// Market Data Snapshot Full Refresh (35=W).
type MarketDataSnapshotFields struct {
	MDReqID        string
	Symbol         string
	Entries        []MDEntry
	UnparsedFields []codec.Field
}

var mdEntryStandardTags = []fixtag.Tag{
	fixtag.TagMDEntryType, fixtag.TagMDEntryPx, fixtag.TagMDEntrySize,
	fixtag.TagMDEntryTime, fixtag.TagMDEntryPositionNo,
	fixtag.TagMarkPrice, fixtag.TagCurrentFunding, fixtag.TagIndexPrice,
	fixtag.TagLiquidation, fixtag.TagBlockTradeID, fixtag.TagTradeID,
}

// ParseMarketDataSnapshot extracts fields from an inbound Market Data
// Snapshot Full Refresh frame. Entry parsing mirrors the boundary-scanning
// style used for incremental refreshes.
func ParseMarketDataSnapshot(f codec.Frame) (MarketDataSnapshotFields, error) {
	r := newFieldReader(f)
	id, _ := r.str(fixtag.TagMDReqID)
	symbol, _ := r.str(fixtag.TagSymbol)

	entries, err := parseMDEntries(f, r)
	if err != nil {
		return MarketDataSnapshotFields{}, err
	}
	return MarketDataSnapshotFields{MDReqID: id, Symbol: symbol, Entries: entries, UnparsedFields: r.unparsed()}, nil
}

// MarketDataIncrementalFields is what ParseMarketDataIncremental extracts
// from a Market Data Incremental Refresh (35=X).
type MarketDataIncrementalFields struct {
	Entries        []MDIncrementalEntry
	UnparsedFields []codec.Field
}

// MDIncrementalEntry is one entry of an incremental refresh, which also
// carries an update action (new/change/delete).
type MDIncrementalEntry struct {
	MDEntry
	UpdateAction fixtag.MDUpdateAction
	Symbol       string
}

var mdIncrementalStandardTags = []fixtag.Tag{
	fixtag.TagMDUpdateAction, fixtag.TagMDEntryType, fixtag.TagMDEntryPx,
	fixtag.TagMDEntrySize, fixtag.TagMDEntryTime, fixtag.TagSymbol,
}

// ParseMarketDataIncremental extracts fields from an inbound Market Data
// Incremental Refresh frame.
func ParseMarketDataIncremental(f codec.Frame) (MarketDataIncrementalFields, error) {
	r := newFieldReader(f)
	groups := decodeGroup(f, mdEntriesSpec, mdIncrementalStandardTags)

	entries := make([]MDIncrementalEntry, 0, len(groups))
	for _, g := range groups {
		values := fieldsByTag(g)
		r.mark(fixtag.TagMDUpdateAction)
		r.mark(fixtag.TagMDEntryType)
		r.mark(fixtag.TagMDEntryPx)
		r.mark(fixtag.TagMDEntrySize)
		r.mark(fixtag.TagMDEntryTime)
		r.mark(fixtag.TagSymbol)

		action, err := fixtag.ParseMDUpdateAction(string(values[fixtag.TagMDUpdateAction]))
		if err != nil {
			return MarketDataIncrementalFields{}, err
		}
		entryType, err := fixtag.ParseMDEntryType(string(values[fixtag.TagMDEntryType]))
		if err != nil {
			return MarketDataIncrementalFields{}, err
		}
		price, err := codec.ParseDecimal(string(values[fixtag.TagMDEntryPx]))
		if err != nil {
			return MarketDataIncrementalFields{}, err
		}
		size, err := codec.ParseDecimal(string(values[fixtag.TagMDEntrySize]))
		if err != nil {
			return MarketDataIncrementalFields{}, err
		}

		entries = append(entries, MDIncrementalEntry{
			MDEntry: MDEntry{
				EntryType: entryType,
				Price:     price,
				Size:      size,
				Time:      string(values[fixtag.TagMDEntryTime]),
			},
			UpdateAction: action,
			Symbol:       string(values[fixtag.TagSymbol]),
		})
	}

	return MarketDataIncrementalFields{Entries: entries, UnparsedFields: r.unparsed()}, nil
}

func parseMDEntries(f codec.Frame, r *fieldReader) ([]MDEntry, error) {
	groups := decodeGroup(f, mdEntriesSpec, mdEntryStandardTags)
	entries := make([]MDEntry, 0, len(groups))
	for _, g := range groups {
		values := fieldsByTag(g)
		for _, tag := range mdEntryStandardTags {
			r.mark(tag)
		}

		entryType, err := fixtag.ParseMDEntryType(string(values[fixtag.TagMDEntryType]))
		if err != nil {
			return nil, err
		}
		price, err := codec.ParseDecimal(string(values[fixtag.TagMDEntryPx]))
		if err != nil {
			return nil, err
		}
		size, err := codec.ParseDecimal(string(values[fixtag.TagMDEntrySize]))
		if err != nil {
			return nil, err
		}
		var position uint64
		if pv := values[fixtag.TagMDEntryPositionNo]; len(pv) > 0 {
			position, err = codec.ParseUint(string(pv))
			if err != nil {
				return nil, err
			}
		}

		optDec := func(tag fixtag.Tag) (*decimal.Decimal, error) {
			v := values[tag]
			if len(v) == 0 {
				return nil, nil
			}
			d, err := codec.ParseDecimal(string(v))
			if err != nil {
				return nil, err
			}
			return &d, nil
		}
		mark, err := optDec(fixtag.TagMarkPrice)
		if err != nil {
			return nil, err
		}
		funding, err := optDec(fixtag.TagCurrentFunding)
		if err != nil {
			return nil, err
		}
		index, err := optDec(fixtag.TagIndexPrice)
		if err != nil {
			return nil, err
		}

		entries = append(entries, MDEntry{
			EntryType:    entryType,
			Price:        price,
			Size:         size,
			Time:         string(values[fixtag.TagMDEntryTime]),
			Position:     position,
			MarkPrice:    mark,
			Funding:      funding,
			IndexPrice:   index,
			Liquidation:  string(values[fixtag.TagLiquidation]),
			BlockTradeID: string(values[fixtag.TagBlockTradeID]),
			TradeID:      string(values[fixtag.TagTradeID]),
		})
	}
	return entries, nil
}

func fieldsByTag(entry groupEntry) map[fixtag.Tag][]byte {
	out := make(map[fixtag.Tag][]byte, len(entry))
	for _, fld := range entry {
		out[fld.Tag] = fld.Value
	}
	return out
}
