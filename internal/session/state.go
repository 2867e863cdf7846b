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

// Package session drives the FIX session state machine over a
// transport.Conn: a writer task that is the sole authority over outbound
// sequencing, a reader task that decodes and dispatches inbound frames,
// and a heartbeat task that enforces the venue's liveness discipline.
package session

// State is one stage of the session lifecycle.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateLoggingOn
	StateLoggedOn
	StateLoggingOut
	StateLoggedOut
	StateError
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateLoggingOn:
		return "LoggingOn"
	case StateLoggedOn:
		return "LoggedOn"
	case StateLoggingOut:
		return "LoggingOut"
	case StateLoggedOut:
		return "LoggedOut"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
