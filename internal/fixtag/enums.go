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

package fixtag

import "fmt"

// Side (tag 54).
type Side uint8

const (
	SideBuy Side = iota + 1
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "1"
	case SideSell:
		return "2"
	default:
		return ""
	}
}

// ParseSide converts a wire value into a Side, never silently promoting an
// unknown value.
func ParseSide(s string) (Side, error) {
	switch s {
	case "1":
		return SideBuy, nil
	case "2":
		return SideSell, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown Side %q", s)
	}
}

// OrdType (tag 40).
type OrdType uint8

const (
	OrdTypeMarket OrdType = iota + 1
	OrdTypeLimit
	OrdTypeStop
	OrdTypeStopLimit
	OrdTypePreviouslyQuoted
)

func (t OrdType) String() string {
	switch t {
	case OrdTypeMarket:
		return "1"
	case OrdTypeLimit:
		return "2"
	case OrdTypeStop:
		return "3"
	case OrdTypeStopLimit:
		return "4"
	case OrdTypePreviouslyQuoted:
		return "D"
	default:
		return ""
	}
}

func ParseOrdType(s string) (OrdType, error) {
	switch s {
	case "1":
		return OrdTypeMarket, nil
	case "2":
		return OrdTypeLimit, nil
	case "3":
		return OrdTypeStop, nil
	case "4":
		return OrdTypeStopLimit, nil
	case "D":
		return OrdTypePreviouslyQuoted, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown OrdType %q", s)
	}
}

// TimeInForce (tag 59).
type TimeInForce uint8

const (
	TimeInForceDay TimeInForce = iota
	TimeInForceGTC
	TimeInForceOpening
	TimeInForceIOC
	TimeInForceFOK
	TimeInForceGTX
	TimeInForceGTD
)

func (t TimeInForce) String() string {
	switch t {
	case TimeInForceDay:
		return "0"
	case TimeInForceGTC:
		return "1"
	case TimeInForceOpening:
		return "2"
	case TimeInForceIOC:
		return "3"
	case TimeInForceFOK:
		return "4"
	case TimeInForceGTX:
		return "5"
	case TimeInForceGTD:
		return "6"
	default:
		return ""
	}
}

func ParseTimeInForce(s string) (TimeInForce, error) {
	switch s {
	case "0":
		return TimeInForceDay, nil
	case "1":
		return TimeInForceGTC, nil
	case "2":
		return TimeInForceOpening, nil
	case "3":
		return TimeInForceIOC, nil
	case "4":
		return TimeInForceFOK, nil
	case "5":
		return TimeInForceGTX, nil
	case "6":
		return TimeInForceGTD, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown TimeInForce %q", s)
	}
}

// OrdStatus (tag 39).
type OrdStatus uint8

const (
	OrdStatusNew OrdStatus = iota
	OrdStatusPartiallyFilled
	OrdStatusFilled
	OrdStatusDoneForDay
	OrdStatusCanceled
	OrdStatusReplaced
	OrdStatusPendingCancel
	OrdStatusStopped
	OrdStatusRejected
	OrdStatusSuspended
	OrdStatusPendingNew
	OrdStatusCalculated
	OrdStatusExpired
	OrdStatusAcceptedForBidding
	OrdStatusPendingReplace
)

var ordStatusWire = map[OrdStatus]string{
	OrdStatusNew: "0", OrdStatusPartiallyFilled: "1", OrdStatusFilled: "2",
	OrdStatusDoneForDay: "3", OrdStatusCanceled: "4", OrdStatusReplaced: "5",
	OrdStatusPendingCancel: "6", OrdStatusStopped: "7", OrdStatusRejected: "8",
	OrdStatusSuspended: "9", OrdStatusPendingNew: "A", OrdStatusCalculated: "B",
	OrdStatusExpired: "C", OrdStatusAcceptedForBidding: "D", OrdStatusPendingReplace: "E",
}

var wireOrdStatus = func() map[string]OrdStatus {
	m := make(map[string]OrdStatus, len(ordStatusWire))
	for k, v := range ordStatusWire {
		m[v] = k
	}
	return m
}()

func (s OrdStatus) String() string { return ordStatusWire[s] }

func ParseOrdStatus(s string) (OrdStatus, error) {
	if v, ok := wireOrdStatus[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("fixtag: unknown OrdStatus %q", s)
}

// IsOpen reports whether the status indicates a still-live order.
func (s OrdStatus) IsOpen() bool {
	switch s {
	case OrdStatusNew, OrdStatusPartiallyFilled, OrdStatusPendingCancel,
		OrdStatusSuspended, OrdStatusPendingNew, OrdStatusPendingReplace:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is a terminal outcome for the
// order's lifecycle; completion sinks resolve on these.
func (s OrdStatus) IsTerminal() bool {
	switch s {
	case OrdStatusFilled, OrdStatusCanceled, OrdStatusRejected, OrdStatusExpired:
		return true
	default:
		return false
	}
}

// ExecType (tag 150).
type ExecType uint8

const (
	ExecTypeNew ExecType = iota
	ExecTypePartialFill
	ExecTypeFilled
	ExecTypeDoneForDay
	ExecTypeCanceled
	ExecTypeReplaced
	ExecTypePendingCancel
	ExecTypeStopped
	ExecTypeRejected
	ExecTypeSuspended
	ExecTypePendingNew
	ExecTypeCalculated
	ExecTypeExpired
	ExecTypeRestated
	ExecTypeTrade
	ExecTypeOrderStatus
)

var execTypeWire = map[ExecType]string{
	ExecTypeNew: "0", ExecTypePartialFill: "1", ExecTypeFilled: "2",
	ExecTypeDoneForDay: "3", ExecTypeCanceled: "4", ExecTypeReplaced: "5",
	ExecTypePendingCancel: "6", ExecTypeStopped: "7", ExecTypeRejected: "8",
	ExecTypeSuspended: "9", ExecTypePendingNew: "A", ExecTypeCalculated: "B",
	ExecTypeExpired: "C", ExecTypeRestated: "D", ExecTypeTrade: "F",
	ExecTypeOrderStatus: "I",
}

var wireExecType = func() map[string]ExecType {
	m := make(map[string]ExecType, len(execTypeWire))
	for k, v := range execTypeWire {
		m[v] = k
	}
	return m
}()

func (e ExecType) String() string { return execTypeWire[e] }

func ParseExecType(s string) (ExecType, error) {
	if v, ok := wireExecType[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("fixtag: unknown ExecType %q", s)
}

// IsTerminal reports whether the exec type ends the order's correlation
// entry lifecycle.
func (e ExecType) IsTerminal() bool {
	switch e {
	case ExecTypeFilled, ExecTypeCanceled, ExecTypeRejected, ExecTypeExpired:
		return true
	default:
		return false
	}
}

// MDEntryType (tag 269).
type MDEntryType uint8

const (
	MDEntryTypeBid MDEntryType = iota
	MDEntryTypeOffer
	MDEntryTypeTrade
	MDEntryTypeIndexValue
	MDEntryTypeSettlementPrice
)

var mdEntryTypeWire = map[MDEntryType]string{
	MDEntryTypeBid: "0", MDEntryTypeOffer: "1", MDEntryTypeTrade: "2",
	MDEntryTypeIndexValue: "3", MDEntryTypeSettlementPrice: "6",
}

var wireMDEntryType = func() map[string]MDEntryType {
	m := make(map[string]MDEntryType, len(mdEntryTypeWire))
	for k, v := range mdEntryTypeWire {
		m[v] = k
	}
	return m
}()

func (t MDEntryType) String() string { return mdEntryTypeWire[t] }

func ParseMDEntryType(s string) (MDEntryType, error) {
	if v, ok := wireMDEntryType[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("fixtag: unknown MDEntryType %q", s)
}

// MDUpdateAction (tag 279), for incremental refreshes.
type MDUpdateAction uint8

const (
	MDUpdateActionNew MDUpdateAction = iota
	MDUpdateActionChange
	MDUpdateActionDelete
)

func (a MDUpdateAction) String() string {
	switch a {
	case MDUpdateActionNew:
		return "0"
	case MDUpdateActionChange:
		return "1"
	case MDUpdateActionDelete:
		return "2"
	default:
		return ""
	}
}

func ParseMDUpdateAction(s string) (MDUpdateAction, error) {
	switch s {
	case "0":
		return MDUpdateActionNew, nil
	case "1":
		return MDUpdateActionChange, nil
	case "2":
		return MDUpdateActionDelete, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown MDUpdateAction %q", s)
	}
}

// SubscriptionRequestType (tag 263).
type SubscriptionRequestType uint8

const (
	SubscriptionRequestTypeSnapshot SubscriptionRequestType = iota
	SubscriptionRequestTypeSubscribe
	SubscriptionRequestTypeUnsubscribe
)

func (t SubscriptionRequestType) String() string {
	switch t {
	case SubscriptionRequestTypeSnapshot:
		return "0"
	case SubscriptionRequestTypeSubscribe:
		return "1"
	case SubscriptionRequestTypeUnsubscribe:
		return "2"
	default:
		return ""
	}
}

func ParseSubscriptionRequestType(s string) (SubscriptionRequestType, error) {
	switch s {
	case "0":
		return SubscriptionRequestTypeSnapshot, nil
	case "1":
		return SubscriptionRequestTypeSubscribe, nil
	case "2":
		return SubscriptionRequestTypeUnsubscribe, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown SubscriptionRequestType %q", s)
	}
}

// SecurityType (tag 167), the subset this venue lists.
type SecurityType uint8

const (
	SecurityTypeFuture SecurityType = iota
	SecurityTypeOption
	SecurityTypeSpot
	SecurityTypePerpetual
)

func (t SecurityType) String() string {
	switch t {
	case SecurityTypeFuture:
		return "FUT"
	case SecurityTypeOption:
		return "OPT"
	case SecurityTypeSpot:
		return "SPOT"
	case SecurityTypePerpetual:
		return "FUT_PERP"
	default:
		return ""
	}
}

func ParseSecurityType(s string) (SecurityType, error) {
	switch s {
	case "FUT":
		return SecurityTypeFuture, nil
	case "OPT":
		return SecurityTypeOption, nil
	case "SPOT":
		return SecurityTypeSpot, nil
	case "FUT_PERP":
		return SecurityTypePerpetual, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown SecurityType %q", s)
	}
}

// SecurityListRequestType (tag 559) scopes a Security List Request.
type SecurityListRequestType uint8

const (
	SecurityListRequestSymbol SecurityListRequestType = iota
	SecurityListRequestSecurityType
	SecurityListRequestProduct
	SecurityListRequestTradingSessionID
	SecurityListRequestAllSecurities
)

func (t SecurityListRequestType) String() string { return fmt.Sprintf("%d", uint8(t)) }

func ParseSecurityListRequestType(s string) (SecurityListRequestType, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil || v < 0 || v > int(SecurityListRequestAllSecurities) {
		return 0, fmt.Errorf("fixtag: unknown SecurityListRequestType %q", s)
	}
	return SecurityListRequestType(v), nil
}

// PutOrCall (tag 201).
type PutOrCall uint8

const (
	PutOption PutOrCall = iota
	CallOption
)

func (p PutOrCall) String() string {
	if p == CallOption {
		return "1"
	}
	return "0"
}

func ParsePutOrCall(s string) (PutOrCall, error) {
	switch s {
	case "0":
		return PutOption, nil
	case "1":
		return CallOption, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown PutOrCall %q", s)
	}
}

// QuoteStatus (tag 297).
type QuoteStatus uint8

const (
	QuoteStatusAccepted QuoteStatus = iota
	QuoteStatusCanceled
	QuoteStatusRejected
	QuoteStatusExpired
)

var quoteStatusWire = map[QuoteStatus]string{
	QuoteStatusAccepted: "0", QuoteStatusCanceled: "4",
	QuoteStatusRejected: "5", QuoteStatusExpired: "7",
}

func (s QuoteStatus) String() string { return quoteStatusWire[s] }

func ParseQuoteStatus(s string) (QuoteStatus, error) {
	for k, v := range quoteStatusWire {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("fixtag: unknown QuoteStatus %q", s)
}

// QuoteCancelType (tag 298).
type QuoteCancelType uint8

const (
	QuoteCancelAllQuotes QuoteCancelType = iota + 1
	QuoteCancelForSymbol
	QuoteCancelForSecurityType
	QuoteCancelForQuoteReqID
)

func (t QuoteCancelType) String() string {
	switch t {
	case QuoteCancelAllQuotes:
		return "1"
	case QuoteCancelForSymbol:
		return "2"
	case QuoteCancelForSecurityType:
		return "3"
	case QuoteCancelForQuoteReqID:
		return "4"
	default:
		return ""
	}
}

func ParseQuoteCancelType(s string) (QuoteCancelType, error) {
	switch s {
	case "1":
		return QuoteCancelAllQuotes, nil
	case "2":
		return QuoteCancelForSymbol, nil
	case "3":
		return QuoteCancelForSecurityType, nil
	case "4":
		return QuoteCancelForQuoteReqID, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown QuoteCancelType %q", s)
	}
}

// CxlRejReason (tag 102).
type CxlRejReason uint8

const (
	CxlRejReasonTooLateToCancel CxlRejReason = iota
	CxlRejReasonUnknownOrder
	CxlRejReasonBrokerOption
	CxlRejReasonOrderAlreadyInPendingCancelOrPendingReplaceStatus
)

var cxlRejReasonWire = map[CxlRejReason]string{
	CxlRejReasonTooLateToCancel: "0", CxlRejReasonUnknownOrder: "1",
	CxlRejReasonBrokerOption: "2", CxlRejReasonOrderAlreadyInPendingCancelOrPendingReplaceStatus: "3",
}

func (r CxlRejReason) String() string { return cxlRejReasonWire[r] }

func ParseCxlRejReason(s string) (CxlRejReason, error) {
	for k, v := range cxlRejReasonWire {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("fixtag: unknown CxlRejReason %q", s)
}

// SecurityTradingStatus (tag 326).
type SecurityTradingStatus uint8

const (
	TradingStatusOpen SecurityTradingStatus = iota
	TradingStatusHalt
	TradingStatusClose
	TradingStatusPreOpen
)

func (s SecurityTradingStatus) String() string {
	switch s {
	case TradingStatusOpen:
		return "17"
	case TradingStatusHalt:
		return "2"
	case TradingStatusClose:
		return "18"
	case TradingStatusPreOpen:
		return "21"
	default:
		return ""
	}
}

func ParseSecurityTradingStatus(s string) (SecurityTradingStatus, error) {
	switch s {
	case "17":
		return TradingStatusOpen, nil
	case "2":
		return TradingStatusHalt, nil
	case "18":
		return TradingStatusClose, nil
	case "21":
		return TradingStatusPreOpen, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown SecurityTradingStatus %q", s)
	}
}

// PosReqType (tag 724).
type PosReqType uint8

const (
	PosReqTypePositions PosReqType = iota
	PosReqTypeTrades
)

func (t PosReqType) String() string {
	if t == PosReqTypeTrades {
		return "1"
	}
	return "0"
}

func ParsePosReqType(s string) (PosReqType, error) {
	switch s {
	case "0":
		return PosReqTypePositions, nil
	case "1":
		return PosReqTypeTrades, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown PosReqType %q", s)
	}
}

// UserRequestType (tag 924).
type UserRequestType uint8

const (
	UserRequestLogOn UserRequestType = iota + 1
	UserRequestLogOff
	UserRequestStatus
)

func (t UserRequestType) String() string {
	switch t {
	case UserRequestLogOn:
		return "1"
	case UserRequestLogOff:
		return "2"
	case UserRequestStatus:
		return "3"
	default:
		return ""
	}
}

func ParseUserRequestType(s string) (UserRequestType, error) {
	switch s {
	case "1":
		return UserRequestLogOn, nil
	case "2":
		return UserRequestLogOff, nil
	case "3":
		return UserRequestStatus, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown UserRequestType %q", s)
	}
}

// MMProtectionAction (tag 9002).
type MMProtectionAction uint8

const (
	MMProtectionActionSet MMProtectionAction = iota + 1
	MMProtectionActionUpdate
	MMProtectionActionQuery
	MMProtectionActionRemove
)

func (a MMProtectionAction) String() string {
	switch a {
	case MMProtectionActionSet:
		return "1"
	case MMProtectionActionUpdate:
		return "2"
	case MMProtectionActionQuery:
		return "3"
	case MMProtectionActionRemove:
		return "4"
	default:
		return ""
	}
}

func ParseMMProtectionAction(s string) (MMProtectionAction, error) {
	switch s {
	case "1":
		return MMProtectionActionSet, nil
	case "2":
		return MMProtectionActionUpdate, nil
	case "3":
		return MMProtectionActionQuery, nil
	case "4":
		return MMProtectionActionRemove, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown MMProtectionAction %q", s)
	}
}

// OrdRejReason (tag 103).
type OrdRejReason uint8

const (
	OrdRejReasonBrokerOption OrdRejReason = iota
	OrdRejReasonUnknownSymbol
	OrdRejReasonExchangeClosed
	OrdRejReasonExceedsLimit
	OrdRejReasonTooLate
	OrdRejReasonUnknownOrder
	OrdRejReasonDuplicateOrder
	OrdRejReasonOther
)

var ordRejReasonWire = map[OrdRejReason]string{
	OrdRejReasonBrokerOption: "0", OrdRejReasonUnknownSymbol: "1",
	OrdRejReasonExchangeClosed: "2", OrdRejReasonExceedsLimit: "3",
	OrdRejReasonTooLate: "4", OrdRejReasonUnknownOrder: "5",
	OrdRejReasonDuplicateOrder: "6", OrdRejReasonOther: "99",
}

func (r OrdRejReason) String() string { return ordRejReasonWire[r] }

func ParseOrdRejReason(s string) (OrdRejReason, error) {
	for k, v := range ordRejReasonWire {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("fixtag: unknown OrdRejReason %q", s)
}

// SessionRejectReason (tag 373).
type SessionRejectReason uint8

const (
	SessionRejectInvalidTag SessionRejectReason = iota
	SessionRejectRequiredTagMissing
	SessionRejectTagNotDefined
	SessionRejectUndefinedTag
	SessionRejectTagWithoutValue
	SessionRejectValueOutOfRange
	SessionRejectIncorrectDataFormat
	SessionRejectDecryptionProblem
	SessionRejectSignatureProblem
	SessionRejectCompIDProblem
	SessionRejectSendingTimeAccuracy
	SessionRejectInvalidMsgType
)

func (r SessionRejectReason) String() string {
	return []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}[r]
}

func ParseSessionRejectReason(s string) (SessionRejectReason, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil || v < 0 || v > int(SessionRejectInvalidMsgType) {
		return 0, fmt.Errorf("fixtag: unknown SessionRejectReason %q", s)
	}
	return SessionRejectReason(v), nil
}

// BusinessRejectReason (tag 380).
type BusinessRejectReason uint8

const (
	BusinessRejectOther BusinessRejectReason = iota
	BusinessRejectUnknownID
	BusinessRejectUnknownSecurity
	BusinessRejectUnsupportedMsgType
	BusinessRejectApplicationNotAvailable
	BusinessRejectConditionallyRequiredFieldMissing
	BusinessRejectNotAuthorized
)

func (r BusinessRejectReason) String() string {
	return []string{"0", "1", "2", "3", "4", "5", "6"}[r]
}

func ParseBusinessRejectReason(s string) (BusinessRejectReason, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil || v < 0 || v > int(BusinessRejectNotAuthorized) {
		return 0, fmt.Errorf("fixtag: unknown BusinessRejectReason %q", s)
	}
	return BusinessRejectReason(v), nil
}

// QuoteRejectReason (tag 300).
type QuoteRejectReason uint8

const (
	QuoteRejectUnknownSymbol QuoteRejectReason = iota + 1
	QuoteRejectExchangeClosed
	QuoteRejectExceedsLimit
	_
	_
	QuoteRejectDuplicate
	_
	QuoteRejectInvalidPrice
	_
	QuoteRejectOther
)

func (r QuoteRejectReason) String() string {
	switch r {
	case QuoteRejectOther:
		return "99"
	default:
		return fmt.Sprintf("%d", uint8(r))
	}
}

func ParseQuoteRejectReason(s string) (QuoteRejectReason, error) {
	switch s {
	case "1":
		return QuoteRejectUnknownSymbol, nil
	case "2":
		return QuoteRejectExchangeClosed, nil
	case "3":
		return QuoteRejectExceedsLimit, nil
	case "6":
		return QuoteRejectDuplicate, nil
	case "8":
		return QuoteRejectInvalidPrice, nil
	case "99":
		return QuoteRejectOther, nil
	default:
		return 0, fmt.Errorf("fixtag: unknown QuoteRejectReason %q", s)
	}
}

// MDReqRejReason (tag 281).
type MDReqRejReason uint8

const (
	MDReqRejReasonUnknownSymbol MDReqRejReason = iota
	MDReqRejReasonDuplicateMDReqID
	MDReqRejReasonInsufficientBandwidth
	MDReqRejReasonInsufficientPermission
	MDReqRejReasonInvalidSubscriptionRequestType
	MDReqRejReasonInvalidMarketDepth
	MDReqRejReasonUnsupportedMDUpdateType
	MDReqRejReasonOther
	MDReqRejReasonUnsupportedMDEntryType
)

func (r MDReqRejReason) String() string { return fmt.Sprintf("%d", uint8(r)) }

func ParseMDReqRejReason(s string) (MDReqRejReason, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil || v < 0 || v > 8 {
		return 0, fmt.Errorf("fixtag: unknown MDReqRejReason %q", s)
	}
	return MDReqRejReason(v), nil
}
