package clock

import (
	"sync"
	"time"
)

// ManualClock is a deterministic TimeProvider and Refresher. Time advances
// only through Advance, Step and Run, and scheduled callbacks run only from
// Step and Run, on the calling goroutine.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Time
	queue *callbackQueue
}

// NewManualClock creates a manual clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{
		now:   start,
		queue: newCallbackQueue(),
	}
}

// Now returns the manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves time forward without running callbacks.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Step advances time by d and then performs one refresh, running every
// callback scheduled before the step. It returns the number of callbacks run.
func (c *ManualClock) Step(d time.Duration) int {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()
	return c.queue.dispatch(now)
}

// Run performs refreshes every step until total time has elapsed and returns
// the number of refreshes performed.
func (c *ManualClock) Run(total, step time.Duration) int {
	if step <= 0 {
		return 0
	}
	refreshes := 0
	for elapsed := time.Duration(0); elapsed+step <= total; elapsed += step {
		c.Step(step)
		refreshes++
	}
	return refreshes
}

// ScheduleNextTick registers fn for the next Step.
func (c *ManualClock) ScheduleNextTick(fn TickFunc) TickToken {
	return c.queue.add(fn)
}

// CancelTick removes a pending callback.
func (c *ManualClock) CancelTick(token TickToken) {
	c.queue.cancel(token)
}

// Pending returns the number of callbacks waiting for the next Step.
func (c *ManualClock) Pending() int {
	return c.queue.len()
}
