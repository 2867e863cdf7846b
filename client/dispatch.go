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
	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
	"github.com/joaquinbejar/deribit-fix-go/internal/session"
)

// dispatchLoop drains the engine's event stream for the lifetime of the
// session, parsing every business message and routing it to whichever
// correlation entry (or broadcast set) its ID identifies. It exits when
// Events() closes, which Engine.Run guarantees happens exactly once, on
// its way out.
func (c *Client) dispatchLoop() {
	for ev := range c.engine.Events() {
		switch e := ev.(type) {
		case session.EventBusinessMessage:
			c.dispatchFrame(e.Frame)
		case session.EventSessionError:
			c.failAllPending(e.Err)
		default:
			// EventStateChanged, EventGap, EventResendRequested,
			// EventLivenessTimeout and EventFrameTrace are already logged by
			// the engine itself; the façade has nothing further to do with
			// them.
		}
	}
}

func (c *Client) dispatchFrame(frame codec.Frame) {
	switch frame.MsgType {
	case fixtag.MsgTypeExecutionReport:
		c.dispatchExecutionReport(frame)
	case fixtag.MsgTypeOrderCancelReject:
		fields, err := message.ParseOrderCancelReject(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse OrderCancelReject")
			return
		}
		c.deliver(fields.ClOrdID, OrderUpdate{Reject: &fields})
	case fixtag.MsgTypeOrderMassCancelReport:
		fields, err := message.ParseOrderMassCancelReport(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse OrderMassCancelReport")
			return
		}
		c.deliver(fields.ClOrdID, fields)

	case fixtag.MsgTypeMarketDataRequestReject:
		fields, err := message.ParseMarketDataRequestReject(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse MarketDataRequestReject")
			return
		}
		c.deliver(fields.MDReqID, MarketDataUpdate{Reject: &fields})
	case fixtag.MsgTypeMarketDataSnapshotFullRefresh:
		fields, err := message.ParseMarketDataSnapshot(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse MarketDataSnapshot")
			return
		}
		c.deliver(fields.MDReqID, MarketDataUpdate{Snapshot: &fields})
	case fixtag.MsgTypeMarketDataIncrementalRefresh:
		fields, err := message.ParseMarketDataIncremental(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse MarketDataIncremental")
			return
		}
		c.dispatchIncremental(fields)

	case fixtag.MsgTypeSecurityList:
		fields, err := message.ParseSecurityList(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse SecurityList")
			return
		}
		c.deliver(fields.SecurityReqID, fields)
	case fixtag.MsgTypeSecurityDefinition:
		fields, err := message.ParseSecurityDefinition(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse SecurityDefinition")
			return
		}
		c.deliver(fields.SecurityReqID, fields)
	case fixtag.MsgTypeSecurityStatus:
		fields, err := message.ParseSecurityStatus(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse SecurityStatus")
			return
		}
		c.deliver(fields.SecurityStatusReqID, fields)

	case fixtag.MsgTypePositionReport:
		fields, err := message.ParsePositionReport(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse PositionReport")
			return
		}
		c.deliver(fields.PosReqID, fields)

	case fixtag.MsgTypeQuoteRequestReject:
		fields, err := message.ParseQuoteRequestReject(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse QuoteRequestReject")
			return
		}
		c.deliver(fields.QuoteReqID, QuoteUpdate{Reject: &fields})
	case fixtag.MsgTypeQuoteStatusReport:
		fields, err := message.ParseQuoteStatusReport(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse QuoteStatusReport")
			return
		}
		c.deliver(fields.QuoteReqID, QuoteUpdate{Status: &fields})
	case fixtag.MsgTypeMassQuote:
		fields, err := message.ParseMassQuote(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse MassQuote")
			return
		}
		c.deliver(fields.QuoteID, MassQuoteUpdate{Quote: &fields})
	case fixtag.MsgTypeMassQuoteAcknowledgement:
		fields, err := message.ParseMassQuoteAcknowledgement(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse MassQuoteAcknowledgement")
			return
		}
		c.deliver(fields.QuoteID, MassQuoteUpdate{Ack: &fields})
	case fixtag.MsgTypeQuoteCancel:
		fields, err := message.ParseQuoteCancel(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse QuoteCancel")
			return
		}
		c.deliver(fields.QuoteID, fields)

	case fixtag.MsgTypeRFQRequest:
		// Echo of our own RFQ request; the venue solicits quotes out of
		// band and responds with QuoteStatusReport, so there is nothing
		// further to deliver here.

	case fixtag.MsgTypeTradeCaptureReportRequestAck:
		fields, err := message.ParseTradeCaptureReportRequestAck(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse TradeCaptureReportRequestAck")
			return
		}
		c.deliver(fields.TradeRequestID, TradeCaptureUpdate{Ack: &fields})
	case fixtag.MsgTypeTradeCaptureReport:
		fields, err := message.ParseTradeCaptureReport(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse TradeCaptureReport")
			return
		}
		c.deliverTradeCaptureBroadcast(TradeCaptureUpdate{Trade: &fields})

	case fixtag.MsgTypeMMProtectionLimitsResult:
		fields, err := message.ParseMMProtectionLimitsResult(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse MMProtectionLimitsResult")
			return
		}
		c.deliver(fields.MMProtectionReqID, fields)
	case fixtag.MsgTypeMMProtectionReset:
		fields, err := message.ParseMMProtectionReset(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse MMProtectionReset")
			return
		}
		c.deliver(fields.MMProtectionReqID, fields)

	case fixtag.MsgTypeUserResponse:
		// User management has no façade surface; left for a future
		// consumer to parse off the raw frame if it ever needs one.

	case fixtag.MsgTypeBusinessReject:
		fields, err := message.ParseBusinessReject(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse BusinessReject")
			return
		}
		// BusinessRejectRefID is the venue's echo of the original
		// request's own ID field, which is exactly what every Build*
		// call above used as its correlation key.
		c.deliver(fields.BusinessRejectRefID, &fixerr.BusinessReject{
			Kind:   fields.RefMsgType,
			Reason: fields.Reason.String(),
			Text:   fields.Text,
		})
	case fixtag.MsgTypeReject:
		fields, err := message.ParseReject(frame)
		if err != nil {
			c.logger.Warn().Err(err).Msg("parse Reject")
			return
		}
		// Session-level reject (35=3) carries only RefSeqNum/RefTagID, not
		// an application request ID: there is no correlation entry to
		// deliver to, so it is surfaced as a log only.
		c.logger.Warn().
			Uint64("ref_seq_num", fields.RefSeqNum).
			Str("ref_msg_type", fields.RefMsgType).
			Str("text", fields.Text).
			Msg("session level reject")

	default:
		c.logger.Debug().Str("msg_type", frame.MsgType).Msg("unhandled message type")
	}
}

// dispatchExecutionReport tries ClOrdID correlation first (orders,
// cancels, replaces); if nothing is listening under that ID it falls
// back to the single mass-status catch-all, since a mass status
// request's reports carry the order's own ClOrdID rather than the
// request's MassStatusReqID.
func (c *Client) dispatchExecutionReport(frame codec.Frame) {
	fields, err := message.ParseExecutionReport(frame)
	if err != nil {
		c.logger.Warn().Err(err).Msg("parse ExecutionReport")
		return
	}
	c.corrMu.Lock()
	_, correlated := c.corr[fields.ClOrdID]
	c.corrMu.Unlock()
	if correlated {
		c.deliver(fields.ClOrdID, OrderUpdate{Report: &fields})
		return
	}
	c.deliverMassStatus(fields)
}

// dispatchIncremental fans the whole refresh out once per distinct entry
// symbol, since the refresh carries no MDReqID to correlate by directly.
func (c *Client) dispatchIncremental(fields message.MarketDataIncrementalFields) {
	seen := make(map[string]struct{}, len(fields.Entries))
	for _, entry := range fields.Entries {
		if _, ok := seen[entry.Symbol]; ok {
			continue
		}
		seen[entry.Symbol] = struct{}{}
		c.deliverBySymbol(entry.Symbol, MarketDataUpdate{Incremental: &fields})
	}
}
