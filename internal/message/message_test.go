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
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// roundTrip encodes m to the wire and decodes it straight back into a
// codec.Frame, the way a session would after a send/receive cycle.
func roundTrip(t *testing.T, m Message) codec.Frame {
	t.Helper()
	wire := codec.Encode(codec.Frame{MsgType: m.MsgType(), Fields: m.Fields()})
	f, n, err := codec.Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(wire) {
		t.Fatalf("Decode consumed %d bytes, want %d", n, len(wire))
	}
	return f
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewOrderSingle_RoundTrip(t *testing.T) {
	price := dec("41250.5")
	m := BuildNewOrderSingle(NewOrderParams{
		ClOrdID:     "clord-1",
		Symbol:      "BTC-PERPETUAL",
		Side:        fixtag.SideBuy,
		OrdType:     fixtag.OrdTypeLimit,
		TimeInForce: fixtag.TimeInForceGTC,
		OrderQty:    dec("10"),
		Price:       &price,
	})
	if m.MsgType() != fixtag.MsgTypeNewOrderSingle {
		t.Fatalf("MsgType = %q, want %q", m.MsgType(), fixtag.MsgTypeNewOrderSingle)
	}
	f := roundTrip(t, m)

	if v, _ := f.Get(fixtag.TagClOrdID); string(v) != "clord-1" {
		t.Errorf("ClOrdID = %q", v)
	}
	if v, _ := f.Get(fixtag.TagPrice); string(v) != "41250.5" {
		t.Errorf("Price = %q, want 41250.5", v)
	}
	if v, _ := f.Get(fixtag.TagSide); string(v) != fixtag.SideBuy.String() {
		t.Errorf("Side = %q", v)
	}
}

func TestExecutionReport_TerminalAndOpenStates(t *testing.T) {
	cases := []struct {
		status   fixtag.OrdStatus
		open     bool
		terminal bool
	}{
		{fixtag.OrdStatusNew, true, false},
		{fixtag.OrdStatusPartiallyFilled, true, false},
		{fixtag.OrdStatusFilled, false, true},
		{fixtag.OrdStatusCanceled, false, true},
		{fixtag.OrdStatusRejected, false, true},
	}
	for _, c := range cases {
		b := newFieldBuilder()
		b.str(fixtag.TagOrderID, "ord-1")
		b.str(fixtag.TagClOrdID, "clord-1")
		b.str(fixtag.TagExecID, "exec-1")
		b.str(fixtag.TagExecType, fixtag.ExecTypeOrderStatus.String())
		b.str(fixtag.TagOrdStatus, c.status.String())
		m := b.build(fixtag.MsgTypeExecutionReport)

		f := roundTrip(t, m)
		got, err := ParseExecutionReport(f)
		if err != nil {
			t.Fatalf("ParseExecutionReport(%v): %v", c.status, err)
		}
		if got.OrdStatus != c.status {
			t.Fatalf("OrdStatus = %v, want %v", got.OrdStatus, c.status)
		}
		if got.OrdStatus.IsOpen() != c.open {
			t.Errorf("%v.IsOpen() = %v, want %v", c.status, got.OrdStatus.IsOpen(), c.open)
		}
		if got.OrdStatus.IsTerminal() != c.terminal {
			t.Errorf("%v.IsTerminal() = %v, want %v", c.status, got.OrdStatus.IsTerminal(), c.terminal)
		}
	}
}

func TestExecutionReport_OrdRejReasonOptional(t *testing.T) {
	b := newFieldBuilder()
	b.str(fixtag.TagOrderID, "ord-1")
	b.str(fixtag.TagExecID, "exec-1")
	b.str(fixtag.TagExecType, fixtag.ExecTypeRejected.String())
	b.str(fixtag.TagOrdStatus, fixtag.OrdStatusRejected.String())
	m := b.build(fixtag.MsgTypeExecutionReport)

	got, err := ParseExecutionReport(roundTrip(t, m))
	if err != nil {
		t.Fatalf("ParseExecutionReport: %v", err)
	}
	if got.OrdRejReason != nil {
		t.Fatalf("OrdRejReason = %v, want nil when absent from the wire", got.OrdRejReason)
	}

	b2 := newFieldBuilder()
	b2.str(fixtag.TagOrderID, "ord-1")
	b2.str(fixtag.TagExecID, "exec-1")
	b2.str(fixtag.TagExecType, fixtag.ExecTypeRejected.String())
	b2.str(fixtag.TagOrdStatus, fixtag.OrdStatusRejected.String())
	b2.str(fixtag.TagOrdRejReason, fixtag.OrdRejReasonOther.String())
	m2 := b2.build(fixtag.MsgTypeExecutionReport)

	got2, err := ParseExecutionReport(roundTrip(t, m2))
	if err != nil {
		t.Fatalf("ParseExecutionReport: %v", err)
	}
	if got2.OrdRejReason == nil || *got2.OrdRejReason != fixtag.OrdRejReasonOther {
		t.Fatalf("OrdRejReason = %v, want %v", got2.OrdRejReason, fixtag.OrdRejReasonOther)
	}
}

// TestMassQuote_StandardAndLegacyEncoding reproduces the two-entry mass
// quote scenario under both group encodings: a frame built with the
// standard form and one built with the venue's legacy flattened offsets
// must parse back to identical entries.
func TestMassQuote_StandardAndLegacyEncoding(t *testing.T) {
	entries := []MassQuoteEntry{
		{QuoteEntryID: "qe-1", Symbol: "BTC-PERPETUAL", BidPx: dec("41000"), OfferPx: dec("41010"), BidSize: dec("5"), OfferSize: dec("5")},
		{QuoteEntryID: "qe-2", Symbol: "ETH-PERPETUAL", BidPx: dec("2200"), OfferPx: dec("2201"), BidSize: dec("10"), OfferSize: dec("10")},
	}

	standardEnc := NewEncoder(EncoderConfig{Groups: GroupEncodingStandard})
	legacyEnc := NewEncoder(EncoderConfig{Groups: GroupEncodingLegacyOffset})

	stdFrame := roundTrip(t, BuildMassQuote(standardEnc, "quote-1", entries))
	legacyFrame := roundTrip(t, BuildMassQuote(legacyEnc, "quote-1", entries))

	// The legacy-encoded wire form must not contain the standard
	// repeating-group delimiter tag at all.
	if _, ok := legacyFrame.Get(fixtag.TagQuoteEntryID); ok {
		t.Fatalf("legacy frame unexpectedly carries standard delimiter tag %d", fixtag.TagQuoteEntryID)
	}
	if _, ok := stdFrame.Get(fixtag.TagLegacyMassQuoteEntryBase); ok {
		t.Fatalf("standard frame unexpectedly carries legacy base tag %d", fixtag.TagLegacyMassQuoteEntryBase)
	}

	stdGot, err := ParseMassQuote(stdFrame)
	if err != nil {
		t.Fatalf("ParseMassQuote(standard): %v", err)
	}
	legacyGot, err := ParseMassQuote(legacyFrame)
	if err != nil {
		t.Fatalf("ParseMassQuote(legacy): %v", err)
	}

	if len(stdGot.Entries) != 2 || len(legacyGot.Entries) != 2 {
		t.Fatalf("got %d standard entries, %d legacy entries, want 2 each", len(stdGot.Entries), len(legacyGot.Entries))
	}
	for i := range entries {
		a, b := stdGot.Entries[i], legacyGot.Entries[i]
		if a.QuoteEntryID != b.QuoteEntryID || a.Symbol != b.Symbol ||
			!a.BidPx.Equal(b.BidPx) || !a.OfferPx.Equal(b.OfferPx) ||
			!a.BidSize.Equal(b.BidSize) || !a.OfferSize.Equal(b.OfferSize) {
			t.Errorf("entry %d: standard=%+v legacy=%+v", i, a, b)
		}
		if a.QuoteEntryID != entries[i].QuoteEntryID {
			t.Errorf("entry %d QuoteEntryID = %q, want %q", i, a.QuoteEntryID, entries[i].QuoteEntryID)
		}
	}
}

func TestUnparsedFields_NeverDropped(t *testing.T) {
	b := newFieldBuilder()
	b.str(fixtag.TagOrderID, "ord-1")
	b.str(fixtag.TagClOrdID, "clord-1")
	b.str(fixtag.TagExecID, "exec-1")
	b.str(fixtag.TagExecType, fixtag.ExecTypeNew.String())
	b.str(fixtag.TagOrdStatus, fixtag.OrdStatusNew.String())
	// A custom/unknown tag ExecutionReport never reads explicitly.
	b.raw(codec.Field{Tag: fixtag.TagMMProtectionFlag, Value: []byte("Y")})
	m := b.build(fixtag.MsgTypeExecutionReport)

	got, err := ParseExecutionReport(roundTrip(t, m))
	if err != nil {
		t.Fatalf("ParseExecutionReport: %v", err)
	}
	found := false
	for _, fld := range got.UnparsedFields {
		if fld.Tag == fixtag.TagMMProtectionFlag && string(fld.Value) == "Y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("UnparsedFields = %+v, want it to retain tag %d", got.UnparsedFields, fixtag.TagMMProtectionFlag)
	}
}

func TestMMProtectionLimits_RoundTrip(t *testing.T) {
	m := BuildMMProtectionLimits(MMProtectionLimitsParams{
		MMProtectionReqID: "mmp-1",
		Action:            fixtag.MMProtectionActionSet,
		Scope:             "BTC-PERPETUAL",
		Limit:             dec("100"),
		FreezeQuotes:      true,
	})
	f := roundTrip(t, m)
	if v, _ := f.Get(fixtag.TagMMProtectionAction); v == nil {
		t.Fatal("MMProtectionAction missing from wire")
	}
	if v, _ := f.Get(fixtag.TagFreezeQuotes); string(v) != "Y" {
		t.Errorf("FreezeQuotes = %q, want Y", v)
	}
}

func TestRFQRequest_LegacyAndStandardLegs(t *testing.T) {
	legs := []RFQLeg{
		{Symbol: "BTC-PERPETUAL", Side: fixtag.SideBuy, Qty: dec("1"), Ratio: 1},
		{Symbol: "ETH-PERPETUAL", Side: fixtag.SideSell, Qty: dec("1"), Ratio: 1},
	}
	legacyEnc := NewEncoder(EncoderConfig{Groups: GroupEncodingLegacyOffset})
	f := roundTrip(t, BuildRFQRequest(legacyEnc, "rfq-1", legs))

	got, err := ParseRFQRequest(f)
	if err != nil {
		t.Fatalf("ParseRFQRequest: %v", err)
	}
	if len(got.Legs) != 2 {
		t.Fatalf("len(Legs) = %d, want 2", len(got.Legs))
	}
	if got.Legs[1].Side != fixtag.SideSell {
		t.Errorf("Legs[1].Side = %v, want Sell", got.Legs[1].Side)
	}
	if got.Legs[1].Symbol != "ETH-PERPETUAL" {
		t.Errorf("Legs[1].Symbol = %q, want ETH-PERPETUAL", got.Legs[1].Symbol)
	}

	standardEnc := NewEncoder(EncoderConfig{Groups: GroupEncodingStandard})
	got, err = ParseRFQRequest(roundTrip(t, BuildRFQRequest(standardEnc, "rfq-1", legs)))
	if err != nil {
		t.Fatalf("ParseRFQRequest(standard): %v", err)
	}
	if len(got.Legs) != 2 || got.Legs[1].Side != fixtag.SideSell || got.Legs[1].Symbol != "ETH-PERPETUAL" {
		t.Errorf("standard legs = %+v, want BTC-PERPETUAL buy then ETH-PERPETUAL sell", got.Legs)
	}
}

func TestLogon_CancelOnDisconnect(t *testing.T) {
	base := LogonParams{RawData: "1700000000000.bm9uY2U=", PasswordDigest: "ZGlnZXN0", Username: "u", HeartBtInt: 30}

	with := base
	with.CancelOnDisconnect = true
	f := roundTrip(t, BuildLogon(with))
	if v, ok := f.Get(fixtag.TagCancelOnDisconnect); !ok || string(v) != "Y" {
		t.Errorf("CancelOnDisconnect = %q (present=%v), want Y", v, ok)
	}

	f = roundTrip(t, BuildLogon(base))
	if _, ok := f.Get(fixtag.TagCancelOnDisconnect); ok {
		t.Error("CancelOnDisconnect emitted without being requested")
	}
}

func TestMarketDataSnapshot_SnapshotOnlyEntryFields(t *testing.T) {
	b := newFieldBuilder()
	b.str(fixtag.TagMDReqID, "md-1")
	b.str(fixtag.TagSymbol, "BTC-PERPETUAL")
	b.raw(
		codec.Field{Tag: fixtag.TagNoMDEntries, Value: []byte("1")},
		codec.Field{Tag: fixtag.TagMDEntryType, Value: []byte("2")},
		codec.Field{Tag: fixtag.TagMDEntryPx, Value: []byte("50000.5")},
		codec.Field{Tag: fixtag.TagMDEntrySize, Value: []byte("10")},
		codec.Field{Tag: fixtag.TagMarkPrice, Value: []byte("50001.25")},
		codec.Field{Tag: fixtag.TagCurrentFunding, Value: []byte("0.0001")},
		codec.Field{Tag: fixtag.TagIndexPrice, Value: []byte("49999.75")},
		codec.Field{Tag: fixtag.TagLiquidation, Value: []byte("T")},
		codec.Field{Tag: fixtag.TagBlockTradeID, Value: []byte("bt-7")},
		codec.Field{Tag: fixtag.TagTradeID, Value: []byte("tr-42")},
	)
	f := roundTrip(t, b.build(fixtag.MsgTypeMarketDataSnapshotFullRefresh))

	got, err := ParseMarketDataSnapshot(f)
	if err != nil {
		t.Fatalf("ParseMarketDataSnapshot: %v", err)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(got.Entries))
	}
	e := got.Entries[0]
	if e.MarkPrice == nil || !e.MarkPrice.Equal(dec("50001.25")) {
		t.Errorf("MarkPrice = %v, want 50001.25", e.MarkPrice)
	}
	if e.Funding == nil || !e.Funding.Equal(dec("0.0001")) {
		t.Errorf("Funding = %v, want 0.0001", e.Funding)
	}
	if e.IndexPrice == nil || !e.IndexPrice.Equal(dec("49999.75")) {
		t.Errorf("IndexPrice = %v, want 49999.75", e.IndexPrice)
	}
	if e.Liquidation != "T" || e.BlockTradeID != "bt-7" || e.TradeID != "tr-42" {
		t.Errorf("identifiers = %q/%q/%q, want T/bt-7/tr-42", e.Liquidation, e.BlockTradeID, e.TradeID)
	}

	// An entry that omits every snapshot-only field parses with them unset.
	b = newFieldBuilder()
	b.str(fixtag.TagMDReqID, "md-2")
	b.str(fixtag.TagSymbol, "BTC-PERPETUAL")
	b.raw(
		codec.Field{Tag: fixtag.TagNoMDEntries, Value: []byte("1")},
		codec.Field{Tag: fixtag.TagMDEntryType, Value: []byte("0")},
		codec.Field{Tag: fixtag.TagMDEntryPx, Value: []byte("50000")},
		codec.Field{Tag: fixtag.TagMDEntrySize, Value: []byte("1")},
	)
	got, err = ParseMarketDataSnapshot(roundTrip(t, b.build(fixtag.MsgTypeMarketDataSnapshotFullRefresh)))
	if err != nil {
		t.Fatalf("ParseMarketDataSnapshot (bare entry): %v", err)
	}
	e = got.Entries[0]
	if e.MarkPrice != nil || e.Funding != nil || e.IndexPrice != nil {
		t.Error("snapshot-only decimals set on an entry that omitted them")
	}
	if e.Liquidation != "" || e.BlockTradeID != "" || e.TradeID != "" {
		t.Error("snapshot-only identifiers set on an entry that omitted them")
	}
}

func TestSecurityListRequest_ScopeAndCurrency(t *testing.T) {
	f := roundTrip(t, BuildSecurityListRequest("secl-1", fixtag.SecurityListRequestSecurityType, fixtag.SecurityTypePerpetual))
	if v, _ := f.Get(fixtag.TagSecurityListRequestType); string(v) != "1" {
		t.Errorf("SecurityListRequestType = %q, want 1", v)
	}
	if v, _ := f.Get(fixtag.TagSecurityType); string(v) != "FUT_PERP" {
		t.Errorf("SecurityType = %q, want FUT_PERP", v)
	}

	f = roundTrip(t, BuildSecurityListRequest("secl-2", fixtag.SecurityListRequestAllSecurities, 0))
	if v, _ := f.Get(fixtag.TagSecurityListRequestType); string(v) != "4" {
		t.Errorf("SecurityListRequestType = %q, want 4", v)
	}
	if _, ok := f.Get(fixtag.TagSecurityType); ok {
		t.Error("SecurityType emitted on an all-securities request")
	}

	b := newFieldBuilder()
	b.str(fixtag.TagSecurityReqID, "secl-1")
	b.raw(
		codec.Field{Tag: fixtag.TagNoRelatedSymSecurityList, Value: []byte("1")},
		codec.Field{Tag: fixtag.TagSymbol, Value: []byte("BTC-PERPETUAL")},
		codec.Field{Tag: fixtag.TagSecurityType, Value: []byte("FUT_PERP")},
		codec.Field{Tag: fixtag.TagCurrency, Value: []byte("BTC")},
		codec.Field{Tag: fixtag.TagContractMultiplier, Value: []byte("10")},
		codec.Field{Tag: fixtag.TagMinPriceIncrement, Value: []byte("0.5")},
	)
	got, err := ParseSecurityList(roundTrip(t, b.build(fixtag.MsgTypeSecurityList)))
	if err != nil {
		t.Fatalf("ParseSecurityList: %v", err)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(got.Entries))
	}
	if got.Entries[0].Currency != "BTC" {
		t.Errorf("Currency = %q, want BTC", got.Entries[0].Currency)
	}
}

func TestRejectReasons_UnknownValueIsError(t *testing.T) {
	b := newFieldBuilder()
	b.uint(fixtag.TagRefSeqNum, 7)
	b.str(fixtag.TagSessionRejectReason, "42")
	if _, err := ParseReject(roundTrip(t, b.build(fixtag.MsgTypeReject))); err == nil {
		t.Error("ParseReject accepted unknown SessionRejectReason 42")
	}

	b = newFieldBuilder()
	b.str(fixtag.TagRefMsgType, "D")
	b.str(fixtag.TagBusinessRejectReason, "42")
	if _, err := ParseBusinessReject(roundTrip(t, b.build(fixtag.MsgTypeBusinessReject))); err == nil {
		t.Error("ParseBusinessReject accepted unknown BusinessRejectReason 42")
	}

	b = newFieldBuilder()
	b.str(fixtag.TagQuoteReqID, "qr-1")
	b.str(fixtag.TagQuoteRejectReason, "42")
	if _, err := ParseQuoteRequestReject(roundTrip(t, b.build(fixtag.MsgTypeQuoteRequestReject))); err == nil {
		t.Error("ParseQuoteRequestReject accepted unknown QuoteRejectReason 42")
	}

	b = newFieldBuilder()
	b.str(fixtag.TagQuoteReqID, "qr-2")
	b.str(fixtag.TagQuoteRejectReason, "2")
	got, err := ParseQuoteRequestReject(roundTrip(t, b.build(fixtag.MsgTypeQuoteRequestReject)))
	if err != nil {
		t.Fatalf("ParseQuoteRequestReject: %v", err)
	}
	if got.QuoteRejectReason != fixtag.QuoteRejectExchangeClosed {
		t.Errorf("QuoteRejectReason = %v, want ExchangeClosed", got.QuoteRejectReason)
	}
}
