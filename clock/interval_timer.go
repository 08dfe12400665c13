package clock

import (
	"sync"
	"time"
)

// IntervalTimer is a timer-driven Refresher: every scheduled callback arms a
// one-shot timer of the configured period. Unlike FrameLoop, callbacks of
// different tokens may run on different goroutines.
type IntervalTimer struct {
	period       time.Duration
	timeProvider TimeProvider

	mu     sync.Mutex
	next   TickToken
	timers map[TickToken]*time.Timer
}

// NewIntervalTimer creates a timer-driven Refresher. A non-positive period
// selects DefaultRefreshPeriod.
func NewIntervalTimer(period time.Duration, tp TimeProvider) *IntervalTimer {
	if period <= 0 {
		period = DefaultRefreshPeriod
	}
	return &IntervalTimer{
		period:       period,
		timeProvider: Resolve(tp),
		timers:       make(map[TickToken]*time.Timer),
	}
}

// Period returns the timer period.
func (t *IntervalTimer) Period() time.Duration {
	return t.period
}

// ScheduleNextTick arms a timer that runs fn once after one period.
func (t *IntervalTimer) ScheduleNextTick(fn TickFunc) TickToken {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	token := t.next
	t.timers[token] = time.AfterFunc(t.period, func() {
		t.mu.Lock()
		_, live := t.timers[token]
		delete(t.timers, token)
		t.mu.Unlock()
		if live {
			fn(t.timeProvider.Now())
		}
	})
	return token
}

// CancelTick stops the timer behind token.
func (t *IntervalTimer) CancelTick(token TickToken) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[token]; ok {
		timer.Stop()
		delete(t.timers, token)
	}
}

// Pending returns the number of armed timers.
func (t *IntervalTimer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}
