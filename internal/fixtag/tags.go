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

// Package fixtag is the numeric tag and enum dictionary for the venue's FIX
// 4.4 dialect: the standard subset this client speaks, plus the venue's
// custom tags in the 5000-100091 range.
package fixtag

// Tag is a FIX field number.
type Tag uint32

// Standard header/trailer tags, fixed order per the wire spec.
const (
	TagBeginString Tag = 8
	TagBodyLength  Tag = 9
	TagMsgType     Tag = 35
	TagSenderCompID Tag = 49
	TagTargetCompID Tag = 56
	TagMsgSeqNum   Tag = 34
	TagSendingTime Tag = 52
	TagCheckSum    Tag = 10
	TagPossDupFlag Tag = 43
)

// Standard body tags used across the message set.
const (
	TagAccount        Tag = 1
	TagAvgPx          Tag = 6
	TagClOrdID        Tag = 11
	TagCommission     Tag = 12
	TagCommType       Tag = 13
	TagCumQty         Tag = 14
	TagCurrency       Tag = 15
	TagExecID         Tag = 17
	TagExecInst       Tag = 18
	TagHandlInst      Tag = 21
	TagSecurityIDTag  Tag = 48
	TagLastMkt        Tag = 30
	TagLastPx         Tag = 31
	TagLastQty        Tag = 32
	TagEncryptMethod  Tag = 98
	TagOrderID        Tag = 37
	TagOrderQty       Tag = 38
	TagOrdStatus      Tag = 39
	TagOrdType        Tag = 40
	TagOrigClOrdID    Tag = 41
	TagPrice          Tag = 44
	TagRefSeqNum      Tag = 45
	TagSecurityType   Tag = 167
	TagSenderSubID    Tag = 50
	TagSide           Tag = 54
	TagSymbol         Tag = 55
	TagText           Tag = 58
	TagTimeInForce    Tag = 59
	TagTransactTime   Tag = 60
	TagSettlDate      Tag = 64
	TagValidUntilTime Tag = 62
	TagRawDataLength  Tag = 95
	TagRawData        Tag = 96
	TagPossResend     Tag = 97
	TagStopPx         Tag = 99
	TagOrdRejReason   Tag = 103
	TagCxlRejReason   Tag = 102
	TagHeartBtInt     Tag = 108
	TagTestReqID      Tag = 112
	TagQuoteID        Tag = 117
	TagExpireTime     Tag = 126
	TagResetSeqNumFlag Tag = 141
	TagQuoteReqID     Tag = 131
	TagBidPx          Tag = 132
	TagOfferPx        Tag = 133
	TagBidSize        Tag = 134
	TagOfferSize      Tag = 135
	TagNoMiscFees     Tag = 136
	TagMiscFeeAmt     Tag = 137
	TagMiscFeeCurr    Tag = 138
	TagMiscFeeType    Tag = 139
	TagGapFillFlag    Tag = 123
	TagNewSeqNo       Tag = 36
	TagNoRelatedSym   Tag = 146
	TagExecType       Tag = 150
	TagLeavesQty      Tag = 151
	TagCashOrderQty   Tag = 152
	TagEffectiveTime  Tag = 168
	TagStrikePrice    Tag = 202
	TagPutOrCall      Tag = 201
	TagContractMultiplier Tag = 231
	TagMaxShow        Tag = 210
	TagSecurityExchange Tag = 207
	TagMinPriceIncrement Tag = 969

	// Market data tags
	TagMDReqID           Tag = 262
	TagSubscriptionRequestType Tag = 263
	TagMarketDepth       Tag = 264
	TagMDUpdateType      Tag = 265
	TagNoMDEntryTypes    Tag = 267
	TagNoMDEntries       Tag = 268
	TagMDEntryType       Tag = 269
	TagMDEntryPx         Tag = 270
	TagMDEntrySize       Tag = 271
	TagMDEntryDate       Tag = 272
	TagMDEntryTime       Tag = 273
	TagMDUpdateAction    Tag = 279
	TagMDReqRejReason    Tag = 281
	TagMDEntryPositionNo Tag = 290
	TagSecurityReqID     Tag = 320
	TagSecurityResponseID Tag = 322
	TagSecurityRequestType Tag = 321
	TagSecurityListRequestType Tag = 559
	TagSecurityStatusReqID Tag = 324
	TagSecurityTradingStatus Tag = 326
	TagNoRelatedSymSecurityList Tag = 146

	// Quote tags
	TagQuoteStatus       Tag = 297
	TagQuoteRejectReason Tag = 300
	TagQuoteCancelType   Tag = 298
	TagNoQuoteEntries    Tag = 295
	TagQuoteEntryID      Tag = 299
	TagQuoteStatusReqID  Tag = 649

	// Reject tags
	TagRefTagID             Tag = 371
	TagRefMsgType           Tag = 372
	TagSessionRejectReason  Tag = 373
	TagBusinessRejectReason Tag = 380
	TagBusinessRejectRefID  Tag = 379

	// Mass operation tags
	TagMassCancelRequestType  Tag = 530
	TagMassCancelResponse     Tag = 531
	TagMassCancelRejectReason Tag = 532
	TagMassStatusReqID        Tag = 584
	TagMassStatusReqType      Tag = 585
	TagTotNumReports          Tag = 911

	// Position tags
	TagPosReqID   Tag = 710
	TagPosReqType Tag = 724
	TagLongQty    Tag = 704
	TagShortQty   Tag = 705
	TagSettlPrice Tag = 730

	// Trade capture tags
	TagTradeRequestID   Tag = 568
	TagTradeRequestType Tag = 569
	TagTradeReportID    Tag = 571
	TagMatchStatus      Tag = 573

	// User management tags
	TagUsername        Tag = 553
	TagPassword        Tag = 554
	TagUserRequestID   Tag = 923
	TagUserRequestType Tag = 924
	TagUserStatus      Tag = 926

	TagCxlRejResponseTo  Tag = 434
	TagTargetStrategy    Tag = 847
	TagParticipationRate Tag = 849

	// Multileg tags
	TagNoLegs Tag = 555
)

// Venue custom tags, 5000-100091 reserved range.
const (
	TagSecondaryCurrency        Tag = 5544
	TagConditionTriggerMethod   Tag = 5127
	TagRFQLegSymbol             Tag = 5000
	TagRFQLegSide               Tag = 5001
	TagRFQLegQty                Tag = 5002
	TagRFQLegRatio              Tag = 5003

	TagMMProtectionReqID     Tag = 9001
	TagMMProtectionAction    Tag = 9002
	TagMMProtectionScope     Tag = 9003
	TagMMProtectionLimit     Tag = 9004
	TagMMProtectionFlag      Tag = 9008
	TagFreezeQuotes          Tag = 9031
	TagDisplayMulticastInstrumentID Tag = 9013
	TagDisplayIncrementSteps Tag = 9018
	TagMMProtectionResultCode Tag = 9044

	TagTradeID          Tag = 100009
	TagLabel            Tag = 100010
	TagAdvOrderType     Tag = 100012

	// Snapshot-only market data entry fields.
	TagMarkPrice      Tag = 100087
	TagCurrentFunding Tag = 100088
	TagIndexPrice     Tag = 100089
	TagBlockTradeID   Tag = 100090
	TagLiquidation    Tag = 100091

	TagCancelOnDisconnect Tag = 9049
	TagDeribitAppId       Tag = 9050
	TagDeribitAppSig      Tag = 9051

	// Legacy (flattened) repeating-group bases.
	TagLegacyMassQuoteEntryBase  Tag = 2000
	TagLegacyMassQuoteAckEntryBase Tag = 3000
	TagLegacyQuoteCancelEntryBase  Tag = 4000
	TagLegacyRFQLegBase            Tag = 5000
)
