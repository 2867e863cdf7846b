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
	"sync"
	"time"
)

// fakeTimer is a manually-fired Timer: tests call fire() instead of
// waiting on real wall-clock ticks.
type fakeTimer struct {
	mu       sync.Mutex
	c        chan time.Time
	duration time.Duration
	stopped  bool
}

func newFakeTimer(d time.Duration) *fakeTimer {
	return &fakeTimer{c: make(chan time.Time, 1), duration: d}
}

func (f *fakeTimer) C() <-chan time.Time { return f.c }

func (f *fakeTimer) Reset(d time.Duration) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	was := !f.stopped
	f.stopped = false
	f.duration = d
	return was
}

func (f *fakeTimer) Stop() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	was := !f.stopped
	f.stopped = true
	return was
}

// fire delivers a tick regardless of the configured duration, modelling
// "this timer's deadline has elapsed".
func (f *fakeTimer) fire() {
	select {
	case f.c <- time.Now():
	default:
	}
}

// fakeClock hands out fakeTimers and lets the test reach into the map to
// fire specific ones by the duration they were created with.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTimer(d time.Duration) Timer {
	t := newFakeTimer(d)
	c.mu.Lock()
	c.timers = append(c.timers, t)
	c.mu.Unlock()
	return t
}

// timerFor returns the most recently created timer whose configured
// duration equals d, for a test to fire directly.
func (c *fakeClock) timerFor(d time.Duration) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.timers) - 1; i >= 0; i-- {
		if c.timers[i].duration == d {
			return c.timers[i]
		}
	}
	return nil
}
