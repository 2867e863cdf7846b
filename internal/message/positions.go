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

// BuildRequestForPositions builds a Request For Positions (35=AN).
func BuildRequestForPositions(posReqID string, posReqType fixtag.PosReqType, account string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagPosReqID, posReqID)
	b.str(fixtag.TagPosReqType, posReqType.String())
	b.strIfNotEmpty(fixtag.TagAccount, account)
	return b.build(fixtag.MsgTypeRequestForPositions)
}

// PositionReportFields is what ParsePositionReport extracts from a
// Position Report (35=AP).
type PositionReportFields struct {
	PosReqID       string
	Symbol         string
	LongQty        decimal.Decimal
	ShortQty       decimal.Decimal
	SettlPrice     decimal.Decimal
	TotNumReports  uint64
	UnparsedFields []codec.Field
}

// ParsePositionReport extracts fields from an inbound Position Report frame.
func ParsePositionReport(f codec.Frame) (PositionReportFields, error) {
	r := newFieldReader(f)
	reqID, _ := r.str(fixtag.TagPosReqID)
	symbol, err := r.require(fixtag.TagSymbol)
	if err != nil {
		return PositionReportFields{}, err
	}
	longQty, err := r.dec(fixtag.TagLongQty)
	if err != nil {
		return PositionReportFields{}, err
	}
	shortQty, err := r.dec(fixtag.TagShortQty)
	if err != nil {
		return PositionReportFields{}, err
	}
	settlPrice, err := r.dec(fixtag.TagSettlPrice)
	if err != nil {
		return PositionReportFields{}, err
	}
	totNum, err := r.uint(fixtag.TagTotNumReports)
	if err != nil {
		return PositionReportFields{}, err
	}

	return PositionReportFields{
		PosReqID: reqID, Symbol: symbol, LongQty: longQty, ShortQty: shortQty,
		SettlPrice: settlPrice, TotNumReports: totNum, UnparsedFields: r.unparsed(),
	}, nil
}
