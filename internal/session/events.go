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

package session

import (
	"github.com/rs/zerolog"

	"github.com/joaquinbejar/deribit-fix-go/internal/codec"
)

// Event is one occurrence the engine surfaces to its caller on the channel
// returned by Engine.Events. The façade drains this channel; every event
// also logs itself, state transitions and liveness trouble at Warn,
// routine traffic at Info or Debug.
type Event interface {
	logTo(log zerolog.Logger)
}

// EventStateChanged reports a state machine transition.
type EventStateChanged struct {
	From, To State
}

func (e EventStateChanged) logTo(log zerolog.Logger) {
	log.Warn().Str("from", e.From.String()).Str("to", e.To.String()).Msg("session state changed")
}

// EventGap reports an inbound sequence gap: a frame arrived with a
// sequence number above the expected one, whether or not PossDup was set.
// The frame is buffered and inbound_seq is not advanced; the caller
// decides whether to request a resend.
type EventGap struct {
	Expected, Received uint64
}

func (e EventGap) logTo(log zerolog.Logger) {
	log.Warn().Uint64("expected", e.Expected).Uint64("received", e.Received).Msg("sequence gap")
}

// EventResendRequested reports an inbound ResendRequest. The engine never
// auto-honors it; the caller decides.
type EventResendRequested struct {
	BeginSeqNo uint64
}

func (e EventResendRequested) logTo(log zerolog.Logger) {
	log.Info().Uint64("beginSeqNo", e.BeginSeqNo).Msg("resend requested")
}

// EventLivenessTimeout reports that 3x heartbeat_interval elapsed with no
// inbound traffic after a TestRequest; the session is torn down.
type EventLivenessTimeout struct{}

func (e EventLivenessTimeout) logTo(log zerolog.Logger) {
	log.Warn().Msg("liveness timeout")
}

// EventBusinessMessage reports a dispatched, in-sequence business message.
type EventBusinessMessage struct {
	Frame codec.Frame
}

func (e EventBusinessMessage) logTo(log zerolog.Logger) {
	log.Info().Str("msgType", e.Frame.MsgType).Msg("business message dispatched")
}

// EventSessionError reports a terminal session failure.
type EventSessionError struct {
	Err error
}

func (e EventSessionError) logTo(log zerolog.Logger) {
	log.Warn().Err(e.Err).Msg("session error")
}

// EventFrameTrace reports one raw inbound or outbound frame, at Debug
// level, for wire-level troubleshooting.
type EventFrameTrace struct {
	Outbound bool
	Frame    codec.Frame
}

func (e EventFrameTrace) logTo(log zerolog.Logger) {
	dir := "in"
	if e.Outbound {
		dir = "out"
	}
	log.Debug().Str("dir", dir).Str("msgType", e.Frame.MsgType).Msg("frame trace")
}
