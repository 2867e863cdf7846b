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

// MsgType values (tag 35) for every message kind this client speaks.
const (
	MsgTypeLogon           = "A"
	MsgTypeLogout          = "5"
	MsgTypeHeartbeat       = "0"
	MsgTypeTestRequest     = "1"
	MsgTypeResendRequest   = "2"
	MsgTypeReject          = "3"
	MsgTypeSequenceReset   = "4"
	MsgTypeBusinessReject  = "j"

	MsgTypeNewOrderSingle         = "D"
	MsgTypeOrderCancelRequest     = "F"
	MsgTypeOrderCancelReplace     = "G"
	MsgTypeOrderCancelReject      = "9"
	MsgTypeOrderMassCancelRequest = "q"
	MsgTypeOrderMassCancelReport  = "r"
	MsgTypeOrderMassStatusRequest = "AF"
	MsgTypeExecutionReport        = "8"

	MsgTypeMarketDataRequest          = "V"
	MsgTypeMarketDataRequestReject    = "Y"
	MsgTypeMarketDataSnapshotFullRefresh = "W"
	MsgTypeMarketDataIncrementalRefresh  = "X"

	MsgTypeSecurityListRequest       = "x"
	MsgTypeSecurityList              = "y"
	MsgTypeSecurityDefinitionRequest = "c"
	MsgTypeSecurityDefinition        = "d"
	MsgTypeSecurityStatusRequest     = "e"
	MsgTypeSecurityStatus            = "f"

	MsgTypeRequestForPositions = "AN"
	MsgTypePositionReport      = "AP"

	MsgTypeQuoteRequest            = "R"
	MsgTypeQuoteRequestReject      = "AG"
	MsgTypeQuoteStatusReport       = "AI"
	MsgTypeMassQuote               = "i"
	MsgTypeMassQuoteAcknowledgement = "b"
	MsgTypeQuoteCancel             = "Z"

	MsgTypeRFQRequest = "AH"

	MsgTypeTradeCaptureReportRequest    = "AD"
	MsgTypeTradeCaptureReportRequestAck = "AQ"
	MsgTypeTradeCaptureReport           = "AE"

	MsgTypeUserRequest  = "BE"
	MsgTypeUserResponse = "BF"

	MsgTypeMMProtectionLimits       = "U10"
	MsgTypeMMProtectionLimitsResult = "U11"
	MsgTypeMMProtectionReset        = "U12"
)
