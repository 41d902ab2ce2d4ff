// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"time"
)

// epoch is the default start of a FakeClock.
var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a manually driven time source. Pass its Now method wherever
// a func() time.Time is expected, e.g. the clock of cal.
type FakeClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFakeClock returns a clock stopped at start, or at 2020-01-01 UTC when
// start is zero.
func NewFakeClock(start time.Time) *FakeClock {
	if start.IsZero() {
		start = epoch
	}
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set jumps to t, which may be in the past.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
