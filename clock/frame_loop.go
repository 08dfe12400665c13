package clock

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FrameLoop is a refresh-driven Refresher. It wakes once per period and runs
// every callback scheduled since the previous refresh, serially, on its own
// goroutine. No two callbacks of one FrameLoop ever run in parallel.
type FrameLoop struct {
	period       time.Duration
	timeProvider TimeProvider
	queue        *callbackQueue

	mu      sync.Mutex
	running bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewFrameLoop creates a stopped refresh loop. A non-positive period selects
// DefaultRefreshPeriod; a nil time provider selects the package default.
func NewFrameLoop(period time.Duration, tp TimeProvider) *FrameLoop {
	if period <= 0 {
		period = DefaultRefreshPeriod
	}
	return &FrameLoop{
		period:       period,
		timeProvider: Resolve(tp),
		queue:        newCallbackQueue(),
	}
}

// Period returns the refresh period.
func (l *FrameLoop) Period() time.Duration {
	return l.period
}

// Start launches the refresh goroutine.
func (l *FrameLoop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLoopClosed
	}
	if l.running {
		return ErrLoopRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running = true

	logrus.WithFields(logrus.Fields{
		"function": "FrameLoop.Start",
		"period":   l.period,
	}).Debug("Starting refresh loop")

	go l.run(ctx, l.done)
	return nil
}

func (l *FrameLoop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ran := l.queue.dispatch(l.timeProvider.Now())
			if ran > 0 {
				logrus.WithFields(logrus.Fields{
					"function":  "FrameLoop.run",
					"callbacks": ran,
				}).Trace("Refresh dispatched")
			}
		}
	}
}

// ScheduleNextTick registers fn for the next refresh. Callbacks scheduled
// before Start run on the first refresh after it.
func (l *FrameLoop) ScheduleNextTick(fn TickFunc) TickToken {
	return l.queue.add(fn)
}

// CancelTick removes a pending callback.
func (l *FrameLoop) CancelTick(token TickToken) {
	l.queue.cancel(token)
}

// Pending returns the number of callbacks waiting for the next refresh.
func (l *FrameLoop) Pending() int {
	return l.queue.len()
}

// Close stops the refresh goroutine and waits for the current refresh to
// finish. It must not be called from inside a refresh callback. Close is
// idempotent.
func (l *FrameLoop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	wasRunning := l.running
	l.running = false
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	if wasRunning {
		cancel()
		<-done
	}

	logrus.WithFields(logrus.Fields{
		"function": "FrameLoop.Close",
	}).Debug("Refresh loop closed")
	return nil
}
