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

import "github.com/joaquinbejar/deribit-fix-go/internal/fixerr"

// The error taxonomy lives in an internal package shared by every layer;
// these aliases re-export it so callers can match returned errors with
// errors.Is/errors.As without importing anything but client.
type (
	ConfigError     = fixerr.ConfigError
	ConnectionError = fixerr.ConnectionError
	ConnectionKind  = fixerr.ConnectionKind
	CodecError      = fixerr.CodecError
	CodecKind       = fixerr.CodecKind
	ProtocolError   = fixerr.ProtocolError
	ProtocolKind    = fixerr.ProtocolKind
	AuthError       = fixerr.AuthError
	AuthKind        = fixerr.AuthKind
	SessionError    = fixerr.SessionError
	SessionKind     = fixerr.SessionKind
	BusinessReject  = fixerr.BusinessReject
	RequestError    = fixerr.RequestError
	RequestKind     = fixerr.RequestKind
)

const (
	ConnTimeout = fixerr.ConnTimeout
	ConnRefused = fixerr.ConnRefused
	ConnReset   = fixerr.ConnReset
	ConnTLS     = fixerr.ConnTLS
	ConnIO      = fixerr.ConnIO
)

const (
	CodecInvalidHeader      = fixerr.CodecInvalidHeader
	CodecInvalidLength      = fixerr.CodecInvalidLength
	CodecChecksumMismatch   = fixerr.CodecChecksumMismatch
	CodecUnterminatedFrame  = fixerr.CodecUnterminatedFrame
	CodecDuplicateHeaderTag = fixerr.CodecDuplicateHeaderTag
	CodecFieldFormat        = fixerr.CodecFieldFormat
)

const (
	ProtoMissingRequiredField = fixerr.ProtoMissingRequiredField
	ProtoUnknownMsgType       = fixerr.ProtoUnknownMsgType
	ProtoSequenceMismatch     = fixerr.ProtoSequenceMismatch
	ProtoUnexpectedMessage    = fixerr.ProtoUnexpectedMessage
)

const (
	AuthRngUnavailable      = fixerr.AuthRngUnavailable
	AuthCredentialsRejected = fixerr.AuthCredentialsRejected
)

const (
	SessionLivenessTimeout = fixerr.SessionLivenessTimeout
	SessionLogonRejected   = fixerr.SessionLogonRejected
	SessionLogout          = fixerr.SessionLogout
	SessionLost            = fixerr.SessionLost
)

const (
	RequestTimeout   = fixerr.RequestTimeout
	RequestCancelled = fixerr.RequestCancelled
	RequestOrphaned  = fixerr.RequestOrphaned
)
