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
	"context"
	"sync"

	"github.com/joaquinbejar/deribit-fix-go/internal/fixerr"
)

// streamBufferSize bounds every subscription channel. Overflow drops
// the oldest buffered value rather than blocking the dispatcher.
const streamBufferSize = 256

// Stream is what every multi-response façade method returns: a bounded
// channel of typed updates plus the means to end the subscription early.
// Single-response methods use the same machinery internally (see
// awaitOne) so every correlated request shares one delivery path.
type Stream[T any] struct {
	id     string
	client *Client
	ch     chan T
	errCh  chan error
	done   chan struct{}
	once   sync.Once
}

func newStream[T any](c *Client, id string) *Stream[T] {
	raw := make(chan any, streamBufferSize)
	c.register(id, raw)

	s := &Stream[T]{
		id:     id,
		client: c,
		ch:     make(chan T, streamBufferSize),
		errCh:  make(chan error, 1),
		done:   make(chan struct{}),
	}
	go s.pump(raw)
	return s
}

func (s *Stream[T]) pump(raw chan any) {
	defer close(s.ch)
	for {
		select {
		case <-s.done:
			return
		case v, ok := <-raw:
			if !ok {
				return
			}
			switch tv := v.(type) {
			case error:
				select {
				case s.errCh <- tv:
				default:
				}
				return
			case T:
				select {
				case s.ch <- tv:
				default:
					select {
					case <-s.ch:
					default:
					}
					select {
					case s.ch <- tv:
					default:
					}
				}
			}
		}
	}
}

// C returns the channel of delivered updates, closed when the
// subscription ends (Unsubscribe, session loss, or a terminal event).
func (s *Stream[T]) C() <-chan T { return s.ch }

// Err returns the reason the stream ended, if any. It yields at most one
// error and is never closed, so a read blocks when the stream ended
// without one.
func (s *Stream[T]) Err() <-chan error { return s.errCh }

// Unsubscribe removes the correlation entry and stops delivery. Callers
// that also need to notify the venue (e.g. market data) send that
// message first and then call Unsubscribe; the façade does not itself
// wait for a venue acknowledgment.
func (s *Stream[T]) Unsubscribe() {
	s.client.unregister(s.id)
	s.once.Do(func() { close(s.done) })
}

// awaitOne blocks for exactly one delivered value (or the stream's
// terminal error, or ctx cancellation), then ends the subscription. This
// is how single-response façade methods present a plain (T, error)
// signature while sharing the stream/correlation plumbing every
// operation uses.
func awaitOne[T any](ctx context.Context, s *Stream[T]) (T, error) {
	defer s.Unsubscribe()
	var zero T
	select {
	case v, ok := <-s.C():
		if !ok {
			select {
			case err := <-s.Err():
				return zero, err
			default:
				return zero, &fixerr.RequestError{Kind: fixerr.RequestOrphaned}
			}
		}
		return v, nil
	case err := <-s.Err():
		return zero, err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
