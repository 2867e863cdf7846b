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
	"github.com/rs/zerolog"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixtag"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
	"github.com/joaquinbejar/deribit-fix-go/internal/sessionstore"
)

// Wire enums and parsed-message structs that appear in the public method
// signatures are re-exported here, for the same reason as errors.go: the
// packages that own them are internal, and client is the one import a
// caller needs.

type (
	Side                    = fixtag.Side
	OrdType                 = fixtag.OrdType
	TimeInForce             = fixtag.TimeInForce
	OrdStatus               = fixtag.OrdStatus
	ExecType                = fixtag.ExecType
	MDEntryType             = fixtag.MDEntryType
	MDUpdateAction          = fixtag.MDUpdateAction
	SecurityType            = fixtag.SecurityType
	SecurityListRequestType = fixtag.SecurityListRequestType
	PutOrCall               = fixtag.PutOrCall
	QuoteStatus             = fixtag.QuoteStatus
	QuoteCancelType         = fixtag.QuoteCancelType
	CxlRejReason            = fixtag.CxlRejReason
	OrdRejReason            = fixtag.OrdRejReason
	SecurityTradingStatus   = fixtag.SecurityTradingStatus
	PosReqType              = fixtag.PosReqType
	MMProtectionAction      = fixtag.MMProtectionAction
)

const (
	SideBuy  = fixtag.SideBuy
	SideSell = fixtag.SideSell
)

const (
	OrdTypeMarket           = fixtag.OrdTypeMarket
	OrdTypeLimit            = fixtag.OrdTypeLimit
	OrdTypeStop             = fixtag.OrdTypeStop
	OrdTypeStopLimit        = fixtag.OrdTypeStopLimit
	OrdTypePreviouslyQuoted = fixtag.OrdTypePreviouslyQuoted
)

const (
	TimeInForceDay     = fixtag.TimeInForceDay
	TimeInForceGTC     = fixtag.TimeInForceGTC
	TimeInForceOpening = fixtag.TimeInForceOpening
	TimeInForceIOC     = fixtag.TimeInForceIOC
	TimeInForceFOK     = fixtag.TimeInForceFOK
	TimeInForceGTX     = fixtag.TimeInForceGTX
	TimeInForceGTD     = fixtag.TimeInForceGTD
)

const (
	OrdStatusNew             = fixtag.OrdStatusNew
	OrdStatusPartiallyFilled = fixtag.OrdStatusPartiallyFilled
	OrdStatusFilled          = fixtag.OrdStatusFilled
	OrdStatusCanceled        = fixtag.OrdStatusCanceled
	OrdStatusReplaced        = fixtag.OrdStatusReplaced
	OrdStatusPendingCancel   = fixtag.OrdStatusPendingCancel
	OrdStatusRejected        = fixtag.OrdStatusRejected
	OrdStatusPendingNew      = fixtag.OrdStatusPendingNew
	OrdStatusExpired         = fixtag.OrdStatusExpired
	OrdStatusPendingReplace  = fixtag.OrdStatusPendingReplace
)

const (
	ExecTypeNew           = fixtag.ExecTypeNew
	ExecTypePartialFill   = fixtag.ExecTypePartialFill
	ExecTypeFilled        = fixtag.ExecTypeFilled
	ExecTypeCanceled      = fixtag.ExecTypeCanceled
	ExecTypeReplaced      = fixtag.ExecTypeReplaced
	ExecTypePendingCancel = fixtag.ExecTypePendingCancel
	ExecTypeRejected      = fixtag.ExecTypeRejected
	ExecTypePendingNew    = fixtag.ExecTypePendingNew
	ExecTypeExpired       = fixtag.ExecTypeExpired
	ExecTypeTrade         = fixtag.ExecTypeTrade
	ExecTypeOrderStatus   = fixtag.ExecTypeOrderStatus
)

const (
	MDEntryTypeBid             = fixtag.MDEntryTypeBid
	MDEntryTypeOffer           = fixtag.MDEntryTypeOffer
	MDEntryTypeTrade           = fixtag.MDEntryTypeTrade
	MDEntryTypeIndexValue      = fixtag.MDEntryTypeIndexValue
	MDEntryTypeSettlementPrice = fixtag.MDEntryTypeSettlementPrice
)

const (
	SecurityTypeFuture    = fixtag.SecurityTypeFuture
	SecurityTypeOption    = fixtag.SecurityTypeOption
	SecurityTypeSpot      = fixtag.SecurityTypeSpot
	SecurityTypePerpetual = fixtag.SecurityTypePerpetual
)

const (
	SecurityListRequestSymbol           = fixtag.SecurityListRequestSymbol
	SecurityListRequestSecurityType     = fixtag.SecurityListRequestSecurityType
	SecurityListRequestProduct          = fixtag.SecurityListRequestProduct
	SecurityListRequestTradingSessionID = fixtag.SecurityListRequestTradingSessionID
	SecurityListRequestAllSecurities    = fixtag.SecurityListRequestAllSecurities
)

const (
	PosReqTypePositions = fixtag.PosReqTypePositions
	PosReqTypeTrades    = fixtag.PosReqTypeTrades
)

const (
	QuoteCancelAllQuotes       = fixtag.QuoteCancelAllQuotes
	QuoteCancelForSymbol       = fixtag.QuoteCancelForSymbol
	QuoteCancelForSecurityType = fixtag.QuoteCancelForSecurityType
	QuoteCancelForQuoteReqID   = fixtag.QuoteCancelForQuoteReqID
)

const (
	MMProtectionActionSet    = fixtag.MMProtectionActionSet
	MMProtectionActionUpdate = fixtag.MMProtectionActionUpdate
	MMProtectionActionQuery  = fixtag.MMProtectionActionQuery
	MMProtectionActionRemove = fixtag.MMProtectionActionRemove
)

// Parsed-message structs delivered on streams and futures.
type (
	ExecutionReportFields              = message.ExecutionReportFields
	OrderCancelRejectFields            = message.OrderCancelRejectFields
	OrderMassCancelReportFields        = message.OrderMassCancelReportFields
	MarketDataSnapshotFields           = message.MarketDataSnapshotFields
	MarketDataIncrementalFields        = message.MarketDataIncrementalFields
	MarketDataRequestRejectFields      = message.MarketDataRequestRejectFields
	MDEntry                            = message.MDEntry
	MDIncrementalEntry                 = message.MDIncrementalEntry
	SecurityListEntry                  = message.SecurityListEntry
	SecurityListFields                 = message.SecurityListFields
	SecurityDefinitionFields           = message.SecurityDefinitionFields
	SecurityStatusFields               = message.SecurityStatusFields
	PositionReportFields               = message.PositionReportFields
	QuoteStatusReportFields            = message.QuoteStatusReportFields
	QuoteRequestRejectFields           = message.QuoteRequestRejectFields
	MassQuoteEntry                     = message.MassQuoteEntry
	MassQuoteFields                    = message.MassQuoteFields
	MassQuoteAckEntry                  = message.MassQuoteAckEntry
	MassQuoteAcknowledgementFields     = message.MassQuoteAcknowledgementFields
	QuoteCancelEntry                   = message.QuoteCancelEntry
	QuoteCancelFields                  = message.QuoteCancelFields
	RFQLeg                             = message.RFQLeg
	TradeCaptureReportRequestAckFields = message.TradeCaptureReportRequestAckFields
	TradeCaptureReportFields           = message.TradeCaptureReportFields
	MMProtectionLimitsResultFields     = message.MMProtectionLimitsResultFields
	MMProtectionResetFields            = message.MMProtectionResetFields
)

// SessionStore persists sequence counters and the auth timestamp across
// restarts. Assign one to Config.Store to opt in.
type SessionStore = sessionstore.Store

// PersistedState is the row a SessionStore keeps per (sender, target).
type PersistedState = sessionstore.PersistedState

// OpenSessionStore opens (creating if needed) the SQLite-backed session
// store at dbPath.
func OpenSessionStore(dbPath string, logger zerolog.Logger) (*SessionStore, error) {
	return sessionstore.Open(dbPath, logger)
}
