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
	"context"

	"github.com/google/uuid"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
	"github.com/joaquinbejar/deribit-fix-go/internal/message"
)

// heartbeatLoop enforces the liveness discipline: a Heartbeat at or
// before one heartbeat interval of outbound silence, a TestRequest at or
// before 2x of inbound silence, and a LivenessTimeout at 3x.
// outboundActivity/inboundActivity reset the respective timers
// whenever the writer or reader tasks observe traffic, so the deadlines
// always measure time since the *last* frame, not since loop start.
func (e *Engine) heartbeatLoop(ctx context.Context) error {
	if e.cfg.HeartBtInt <= 0 {
		<-ctx.Done()
		return nil
	}

	outTimer := e.clock.NewTimer(e.cfg.HeartBtInt)
	inTimer := e.clock.NewTimer(2 * e.cfg.HeartBtInt)
	liveTimer := e.clock.NewTimer(3 * e.cfg.HeartBtInt)
	defer outTimer.Stop()
	defer inTimer.Stop()
	defer liveTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-e.outboundActivity:
			outTimer.Reset(e.cfg.HeartBtInt)

		case <-e.inboundActivity:
			inTimer.Reset(2 * e.cfg.HeartBtInt)
			liveTimer.Reset(3 * e.cfg.HeartBtInt)

		case <-outTimer.C():
			e.enqueueInternal(message.BuildHeartbeat(""))
			outTimer.Reset(e.cfg.HeartBtInt)

		case <-inTimer.C():
			id := uuid.NewString()
			e.markTestPending(id)
			e.enqueueInternal(message.BuildTestRequest(id))
			inTimer.Reset(2 * e.cfg.HeartBtInt)

		case <-liveTimer.C():
			err := &fixerr.SessionError{Kind: fixerr.SessionLivenessTimeout}
			e.emit(EventLivenessTimeout{})
			e.emit(EventSessionError{Err: err})
			e.transitionState(StateError)
			return err
		}
	}
}
