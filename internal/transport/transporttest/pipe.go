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

// Package transporttest provides an in-memory fake peer for scenario tests
// that exercise the session engine without a real socket.
package transporttest

import "net"

// Peer is a connected net.Pipe pair: Client is handed to the code under
// test, Server is driven by the test to script venue responses.
type Peer struct {
	Client net.Conn
	Server net.Conn
}

// NewPeer returns a freshly connected in-memory pipe.
func NewPeer() *Peer {
	client, server := net.Pipe()
	return &Peer{Client: client, Server: server}
}

// Close tears down both ends.
func (p *Peer) Close() {
	p.Client.Close()
	p.Server.Close()
}
