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
	"time"

	"github.com/shopspring/decimal"

	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
)

// NewOrderParams contains parameters for a New Order Single (35=D).
type NewOrderParams struct {
	ClOrdID     string
	Symbol      string
	Side        fixtag.Side
	OrdType     fixtag.OrdType
	TimeInForce fixtag.TimeInForce
	OrderQty    decimal.Decimal
	Price       *decimal.Decimal // required for Limit/StopLimit
	StopPx      *decimal.Decimal // required for Stop/StopLimit
	Account     string
	ExecInst    string
	TransactTime time.Time
}

// BuildNewOrderSingle builds a New Order Single (35=D) message.
func BuildNewOrderSingle(p NewOrderParams) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagClOrdID, p.ClOrdID)
	b.strIfNotEmpty(fixtag.TagAccount, p.Account)
	b.str(fixtag.TagSymbol, p.Symbol)
	b.str(fixtag.TagSide, p.Side.String())
	b.str(fixtag.TagOrdType, p.OrdType.String())
	b.str(fixtag.TagTimeInForce, p.TimeInForce.String())
	b.dec(fixtag.TagOrderQty, p.OrderQty)
	b.decPtr(fixtag.TagPrice, p.Price)
	b.decPtr(fixtag.TagStopPx, p.StopPx)
	b.strIfNotEmpty(fixtag.TagExecInst, p.ExecInst)
	b.time(fixtag.TagTransactTime, orNow(p.TransactTime))
	return b.build(fixtag.MsgTypeNewOrderSingle)
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// CancelOrderParams contains parameters for an Order Cancel Request (35=F).
type CancelOrderParams struct {
	ClOrdID      string
	OrigClOrdID  string
	OrderID      string
	Symbol       string
	Side         fixtag.Side
	TransactTime time.Time
}

// BuildOrderCancelRequest builds an Order Cancel Request (35=F) message.
func BuildOrderCancelRequest(p CancelOrderParams) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagClOrdID, p.ClOrdID)
	b.str(fixtag.TagOrigClOrdID, p.OrigClOrdID)
	b.strIfNotEmpty(fixtag.TagOrderID, p.OrderID)
	b.str(fixtag.TagSymbol, p.Symbol)
	b.str(fixtag.TagSide, p.Side.String())
	b.time(fixtag.TagTransactTime, orNow(p.TransactTime))
	return b.build(fixtag.MsgTypeOrderCancelRequest)
}

// ReplaceOrderParams contains parameters for an Order Cancel/Replace
// Request (35=G).
type ReplaceOrderParams struct {
	ClOrdID      string
	OrigClOrdID  string
	OrderID      string
	Symbol       string
	Side         fixtag.Side
	OrdType      fixtag.OrdType
	OrderQty     decimal.Decimal
	Price        *decimal.Decimal
	StopPx       *decimal.Decimal
	TransactTime time.Time
}

// BuildOrderCancelReplaceRequest builds an Order Cancel/Replace Request
// (35=G) message.
func BuildOrderCancelReplaceRequest(p ReplaceOrderParams) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagClOrdID, p.ClOrdID)
	b.str(fixtag.TagOrigClOrdID, p.OrigClOrdID)
	b.strIfNotEmpty(fixtag.TagOrderID, p.OrderID)
	b.str(fixtag.TagSymbol, p.Symbol)
	b.str(fixtag.TagSide, p.Side.String())
	b.str(fixtag.TagOrdType, p.OrdType.String())
	b.dec(fixtag.TagOrderQty, p.OrderQty)
	b.decPtr(fixtag.TagPrice, p.Price)
	b.decPtr(fixtag.TagStopPx, p.StopPx)
	b.time(fixtag.TagTransactTime, orNow(p.TransactTime))
	return b.build(fixtag.MsgTypeOrderCancelReplace)
}

// OrderCancelRejectFields is what ParseOrderCancelReject extracts from an
// Order Cancel Reject (35=9).
type OrderCancelRejectFields struct {
	OrderID        string
	ClOrdID        string
	OrigClOrdID    string
	OrdStatus      fixtag.OrdStatus
	CxlRejReason   fixtag.CxlRejReason
	CxlRejResponseTo string
	Text           string
	UnparsedFields []codec.Field
}

// ParseOrderCancelReject extracts fields from an inbound Order Cancel
// Reject frame.
func ParseOrderCancelReject(f codec.Frame) (OrderCancelRejectFields, error) {
	r := newFieldReader(f)
	orderID, err := r.require(fixtag.TagOrderID)
	if err != nil {
		return OrderCancelRejectFields{}, err
	}
	clOrdID, err := r.require(fixtag.TagClOrdID)
	if err != nil {
		return OrderCancelRejectFields{}, err
	}
	origClOrdID, _ := r.str(fixtag.TagOrigClOrdID)
	ordStatusStr, err := r.require(fixtag.TagOrdStatus)
	if err != nil {
		return OrderCancelRejectFields{}, err
	}
	ordStatus, err := fixtag.ParseOrdStatus(ordStatusStr)
	if err != nil {
		return OrderCancelRejectFields{}, err
	}
	cxlRejReasonStr, _ := r.str(fixtag.TagCxlRejReason)
	var cxlRejReason fixtag.CxlRejReason
	if cxlRejReasonStr != "" {
		cxlRejReason, err = fixtag.ParseCxlRejReason(cxlRejReasonStr)
		if err != nil {
			return OrderCancelRejectFields{}, err
		}
	}
	respTo, _ := r.str(fixtag.TagCxlRejResponseTo)
	text, _ := r.str(fixtag.TagText)

	return OrderCancelRejectFields{
		OrderID:          orderID,
		ClOrdID:          clOrdID,
		OrigClOrdID:      origClOrdID,
		OrdStatus:        ordStatus,
		CxlRejReason:     cxlRejReason,
		CxlRejResponseTo: respTo,
		Text:             text,
		UnparsedFields:   r.unparsed(),
	}, nil
}

// ExecutionReportFields is what ParseExecutionReport extracts from an
// Execution Report (35=8), the central order-lifecycle message.
type ExecutionReportFields struct {
	OrderID        string
	ClOrdID        string
	ExecID         string
	ExecType       fixtag.ExecType
	OrdStatus      fixtag.OrdStatus
	Symbol         string
	Side           fixtag.Side
	OrderQty       decimal.Decimal
	Price          decimal.Decimal
	LastPx         decimal.Decimal
	LastQty        decimal.Decimal
	LeavesQty      decimal.Decimal
	CumQty         decimal.Decimal
	AvgPx          decimal.Decimal
	Text           string
	OrdRejReason   *fixtag.OrdRejReason
	UnparsedFields []codec.Field
}

// ParseExecutionReport extracts fields from an inbound Execution Report frame.
func ParseExecutionReport(f codec.Frame) (ExecutionReportFields, error) {
	r := newFieldReader(f)
	orderID, err := r.require(fixtag.TagOrderID)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	clOrdID, _ := r.str(fixtag.TagClOrdID)
	execID, err := r.require(fixtag.TagExecID)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	execTypeStr, err := r.require(fixtag.TagExecType)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	execType, err := fixtag.ParseExecType(execTypeStr)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	ordStatusStr, err := r.require(fixtag.TagOrdStatus)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	ordStatus, err := fixtag.ParseOrdStatus(ordStatusStr)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	symbol, _ := r.str(fixtag.TagSymbol)
	sideStr, _ := r.str(fixtag.TagSide)
	var side fixtag.Side
	if sideStr != "" {
		side, err = fixtag.ParseSide(sideStr)
		if err != nil {
			return ExecutionReportFields{}, err
		}
	}
	orderQty, err := r.dec(fixtag.TagOrderQty)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	price, err := r.dec(fixtag.TagPrice)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	lastPx, err := r.dec(fixtag.TagLastPx)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	lastQty, err := r.dec(fixtag.TagLastQty)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	leavesQty, err := r.dec(fixtag.TagLeavesQty)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	cumQty, err := r.dec(fixtag.TagCumQty)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	avgPx, err := r.dec(fixtag.TagAvgPx)
	if err != nil {
		return ExecutionReportFields{}, err
	}
	text, _ := r.str(fixtag.TagText)

	var rejReason *fixtag.OrdRejReason
	if rr, ok := r.str(fixtag.TagOrdRejReason); ok {
		parsed, err := fixtag.ParseOrdRejReason(rr)
		if err != nil {
			return ExecutionReportFields{}, err
		}
		rejReason = &parsed
	}

	return ExecutionReportFields{
		OrderID: orderID, ClOrdID: clOrdID, ExecID: execID,
		ExecType: execType, OrdStatus: ordStatus, Symbol: symbol, Side: side,
		OrderQty: orderQty, Price: price, LastPx: lastPx, LastQty: lastQty,
		LeavesQty: leavesQty, CumQty: cumQty, AvgPx: avgPx, Text: text,
		OrdRejReason:   rejReason,
		UnparsedFields: r.unparsed(),
	}, nil
}

// BuildOrderMassCancelRequest builds an Order Mass Cancel Request (35=q).
func BuildOrderMassCancelRequest(clOrdID string, massCancelRequestType string, symbol string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagClOrdID, clOrdID)
	b.str(fixtag.TagMassCancelRequestType, massCancelRequestType)
	b.strIfNotEmpty(fixtag.TagSymbol, symbol)
	return b.build(fixtag.MsgTypeOrderMassCancelRequest)
}

// OrderMassCancelReportFields is what ParseOrderMassCancelReport extracts.
type OrderMassCancelReportFields struct {
	ClOrdID              string
	MassCancelResponse   string
	MassCancelRejectReason string
	UnparsedFields       []codec.Field
}

// ParseOrderMassCancelReport extracts fields from an inbound Order Mass
// Cancel Report frame.
func ParseOrderMassCancelReport(f codec.Frame) (OrderMassCancelReportFields, error) {
	r := newFieldReader(f)
	clOrdID, _ := r.str(fixtag.TagClOrdID)
	resp, err := r.require(fixtag.TagMassCancelResponse)
	if err != nil {
		return OrderMassCancelReportFields{}, err
	}
	reason, _ := r.str(fixtag.TagMassCancelRejectReason)
	return OrderMassCancelReportFields{
		ClOrdID:                clOrdID,
		MassCancelResponse:     resp,
		MassCancelRejectReason: reason,
		UnparsedFields:         r.unparsed(),
	}, nil
}

// BuildOrderMassStatusRequest builds an Order Mass Status Request (35=AF).
func BuildOrderMassStatusRequest(massStatusReqID, massStatusReqType string) Message {
	b := newFieldBuilder()
	b.str(fixtag.TagMassStatusReqID, massStatusReqID)
	b.str(fixtag.TagMassStatusReqType, massStatusReqType)
	return b.build(fixtag.MsgTypeOrderMassStatusRequest)
}
