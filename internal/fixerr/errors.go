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

// Package fixerr defines the error taxonomy shared by every layer of the
// client: config validation, transport, codec, protocol, authentication,
// session lifetime, business rejects and per-request failures.
package fixerr

import "fmt"

// ConfigError reports an invalid or missing configuration value. Fatal
// before a session is started.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("fixerr: config: %s: %s", e.Field, e.Reason)
}

// ConnectionKind classifies a ConnectionError.
type ConnectionKind int

const (
	ConnTimeout ConnectionKind = iota
	ConnRefused
	ConnReset
	ConnTLS
	ConnIO
)

func (k ConnectionKind) String() string {
	switch k {
	case ConnTimeout:
		return "Timeout"
	case ConnRefused:
		return "Refused"
	case ConnReset:
		return "Reset"
	case ConnTLS:
		return "Tls"
	case ConnIO:
		return "Io"
	default:
		return "Unknown"
	}
}

// ConnectionError surfaces a transport-level failure during connect or I/O.
type ConnectionError struct {
	Kind ConnectionKind
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fixerr: connection: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("fixerr: connection: %s", e.Kind)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool {
	o, ok := target.(*ConnectionError)
	return ok && o.Kind == e.Kind
}

// CodecKind classifies a CodecError.
type CodecKind int

const (
	CodecInvalidHeader CodecKind = iota
	CodecInvalidLength
	CodecChecksumMismatch
	CodecUnterminatedFrame
	CodecDuplicateHeaderTag
	CodecFieldFormat
)

func (k CodecKind) String() string {
	switch k {
	case CodecInvalidHeader:
		return "InvalidHeader"
	case CodecInvalidLength:
		return "InvalidLength"
	case CodecChecksumMismatch:
		return "ChecksumMismatch"
	case CodecUnterminatedFrame:
		return "UnterminatedFrame"
	case CodecDuplicateHeaderTag:
		return "DuplicateTag"
	case CodecFieldFormat:
		return "FieldFormat"
	default:
		return "Unknown"
	}
}

// CodecError reports a frame that could not be decoded. Fatal to the frame;
// repeated occurrences demote the session to Error.
type CodecError struct {
	Kind CodecKind
	Tag  uint32 // 0 when not tag-specific
	Err  error
}

func (e *CodecError) Error() string {
	if e.Tag != 0 {
		return fmt.Sprintf("fixerr: codec: %s: tag %d: %v", e.Kind, e.Tag, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("fixerr: codec: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("fixerr: codec: %s", e.Kind)
}

func (e *CodecError) Unwrap() error { return e.Err }

func (e *CodecError) Is(target error) bool {
	o, ok := target.(*CodecError)
	return ok && o.Kind == e.Kind
}

// ProtocolKind classifies a ProtocolError.
type ProtocolKind int

const (
	ProtoMissingRequiredField ProtocolKind = iota
	ProtoUnknownMsgType
	ProtoSequenceMismatch
	ProtoUnexpectedMessage
)

func (k ProtocolKind) String() string {
	switch k {
	case ProtoMissingRequiredField:
		return "MissingRequiredField"
	case ProtoUnknownMsgType:
		return "UnknownMsgType"
	case ProtoSequenceMismatch:
		return "SequenceMismatch"
	case ProtoUnexpectedMessage:
		return "UnexpectedMessage"
	default:
		return "Unknown"
	}
}

// ProtocolError reports a semantically invalid message. May or may not be
// fatal to the session depending on Kind.
type ProtocolError struct {
	Kind     ProtocolKind
	Tag      uint32 // MissingRequiredField
	Expected uint64 // SequenceMismatch
	Received uint64 // SequenceMismatch
	State    string // UnexpectedMessage
	MsgType  string // UnexpectedMessage / UnknownMsgType
}

func (e *ProtocolError) Error() string {
	switch e.Kind {
	case ProtoMissingRequiredField:
		return fmt.Sprintf("fixerr: protocol: missing required field %d", e.Tag)
	case ProtoUnknownMsgType:
		return fmt.Sprintf("fixerr: protocol: unknown msg type %q", e.MsgType)
	case ProtoSequenceMismatch:
		return fmt.Sprintf("fixerr: protocol: sequence mismatch: expected %d, received %d", e.Expected, e.Received)
	case ProtoUnexpectedMessage:
		return fmt.Sprintf("fixerr: protocol: unexpected message %q in state %s", e.MsgType, e.State)
	default:
		return "fixerr: protocol: unknown"
	}
}

func (e *ProtocolError) Is(target error) bool {
	o, ok := target.(*ProtocolError)
	return ok && o.Kind == e.Kind
}

// AuthKind classifies an AuthError.
type AuthKind int

const (
	AuthRngUnavailable AuthKind = iota
	AuthCredentialsRejected
)

func (k AuthKind) String() string {
	if k == AuthRngUnavailable {
		return "RngUnavailable"
	}
	return "CredentialsRejected"
}

// AuthError is fatal during Logon construction or negotiation.
type AuthError struct {
	Kind AuthKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fixerr: auth: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("fixerr: auth: %s", e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

// SessionKind classifies a SessionError.
type SessionKind int

const (
	SessionLivenessTimeout SessionKind = iota
	SessionLogonRejected
	SessionLogout
	SessionLost
)

func (k SessionKind) String() string {
	switch k {
	case SessionLivenessTimeout:
		return "LivenessTimeout"
	case SessionLogonRejected:
		return "LogonRejected"
	case SessionLogout:
		return "Logout"
	case SessionLost:
		return "SessionLost"
	default:
		return "Unknown"
	}
}

// SessionError is terminal for the session.
type SessionError struct {
	Kind   SessionKind
	Reason string
}

func (e *SessionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("fixerr: session: %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("fixerr: session: %s", e.Kind)
}

func (e *SessionError) Is(target error) bool {
	o, ok := target.(*SessionError)
	return ok && o.Kind == e.Kind
}

// BusinessReject surfaces a business-level rejection to a correlated
// awaiter. Non-fatal to the session.
type BusinessReject struct {
	Kind   string // e.g. "OrderCancelReject", "QuoteRequestReject"
	Reason string
	Text   string
}

func (e *BusinessReject) Error() string {
	return fmt.Sprintf("fixerr: business reject: %s: reason=%s text=%q", e.Kind, e.Reason, e.Text)
}

// RequestKind classifies a RequestError.
type RequestKind int

const (
	RequestTimeout RequestKind = iota
	RequestCancelled
	RequestOrphaned
)

func (k RequestKind) String() string {
	switch k {
	case RequestTimeout:
		return "Timeout"
	case RequestCancelled:
		return "Cancelled"
	case RequestOrphaned:
		return "Orphaned"
	default:
		return "Unknown"
	}
}

// RequestError is non-fatal to the session; it terminates a single
// correlated request or subscription.
type RequestError struct {
	Kind RequestKind
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("fixerr: request: %s", e.Kind)
}

func (e *RequestError) Is(target error) bool {
	o, ok := target.(*RequestError)
	return ok && o.Kind == e.Kind
}
