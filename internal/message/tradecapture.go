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

// BuildTradeCaptureReportRequest builds a Trade Capture Report Request
// (35=AD).
func BuildTradeCaptureReportRequest(tradeRequestID string, tradeRequestType uint64, symbol string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagTradeRequestID, tradeRequestID)
	b.uint(fixtag.TagTradeRequestType, tradeRequestType)
	b.strIfNotEmpty(fixtag.TagSymbol, symbol)
	return b.build(fixtag.MsgTypeTradeCaptureReportRequest)
}

// TradeCaptureReportRequestAckFields is what
// ParseTradeCaptureReportRequestAck extracts.
type TradeCaptureReportRequestAckFields struct {
	TradeRequestID string
	TotNumReports  uint64
	UnparsedFields []codec.Field
}

// ParseTradeCaptureReportRequestAck extracts fields from an inbound Trade
// Capture Report Request Ack frame.
func ParseTradeCaptureReportRequestAck(f codec.Frame) (TradeCaptureReportRequestAckFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagTradeRequestID)
	if err != nil {
		return TradeCaptureReportRequestAckFields{}, err
	}
	tot, err := r.uint(fixtag.TagTotNumReports)
	if err != nil {
		return TradeCaptureReportRequestAckFields{}, err
	}
	return TradeCaptureReportRequestAckFields{TradeRequestID: id, TotNumReports: tot, UnparsedFields: r.unparsed()}, nil
}

// TradeCaptureReportFields is what ParseTradeCaptureReport extracts from a
// Trade Capture Report (35=AE).
type TradeCaptureReportFields struct {
	TradeReportID  string
	ExecType       fixtag.ExecType
	LastPx         decimal.Decimal
	LastQty        decimal.Decimal
	MatchStatus    string
	UnparsedFields []codec.Field
}

// ParseTradeCaptureReport extracts fields from an inbound Trade Capture
// Report frame.
func ParseTradeCaptureReport(f codec.Frame) (TradeCaptureReportFields, error) {
	r := newFieldReader(f)
	id, err := r.require(fixtag.TagTradeReportID)
	if err != nil {
		return TradeCaptureReportFields{}, err
	}
	execTypeStr, _ := r.str(fixtag.TagExecType)
	var execType fixtag.ExecType
	if execTypeStr != "" {
		execType, err = fixtag.ParseExecType(execTypeStr)
		if err != nil {
			return TradeCaptureReportFields{}, err
		}
	}
	lastPx, err := r.dec(fixtag.TagLastPx)
	if err != nil {
		return TradeCaptureReportFields{}, err
	}
	lastQty, err := r.dec(fixtag.TagLastQty)
	if err != nil {
		return TradeCaptureReportFields{}, err
	}
	matchStatus, _ := r.str(fixtag.TagMatchStatus)

	return TradeCaptureReportFields{
		TradeReportID: id, ExecType: execType, LastPx: lastPx, LastQty: lastQty,
		MatchStatus: matchStatus, UnparsedFields: r.unparsed(),
	}, nil
}
