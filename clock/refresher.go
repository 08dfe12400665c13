package clock

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// DefaultRefreshPeriod matches a 60 Hz display refresh.
const DefaultRefreshPeriod = time.Second / 60

var (
	// ErrLoopRunning indicates Start was called on a running FrameLoop.
	ErrLoopRunning = errors.New("refresh loop already running")

	// ErrLoopClosed indicates the FrameLoop was closed and cannot restart.
	ErrLoopClosed = errors.New("refresh loop closed")

	// ErrInvalidPeriod indicates a non-positive refresh period.
	ErrInvalidPeriod = errors.New("refresh period must be positive")
)

// TickToken identifies a scheduled refresh callback. The zero token is never
// issued.
type TickToken uint64

// TickFunc is a one-shot refresh callback. now is the refresh timestamp.
type TickFunc func(now time.Time)

// Refresher schedules callbacks for the next display refresh.
type Refresher interface {
	// ScheduleNextTick registers fn to run once on the next refresh.
	ScheduleNextTick(fn TickFunc) TickToken
	// CancelTick removes a scheduled callback. Unknown tokens are ignored.
	CancelTick(token TickToken)
}

// callbackQueue holds callbacks waiting for the next refresh plus the batch
// currently being dispatched, so a cancel issued mid-batch still applies.
type callbackQueue struct {
	mu       sync.Mutex
	next     TickToken
	pending  map[TickToken]TickFunc
	inflight map[TickToken]TickFunc
}

func newCallbackQueue() *callbackQueue {
	return &callbackQueue{
		pending:  make(map[TickToken]TickFunc),
		inflight: make(map[TickToken]TickFunc),
	}
}

func (q *callbackQueue) add(fn TickFunc) TickToken {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *callbackQueue) cancel(token TickToken) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, token)
	delete(q.inflight, token)
}

func (q *callbackQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// dispatch runs every callback that was pending when dispatch began, in
// scheduling order. Callbacks scheduled while the batch runs wait for the
// next refresh.
func (q *callbackQueue) dispatch(now time.Time) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = make(map[TickToken]TickFunc)
	tokens := make([]TickToken, 0, len(batch))
	for token, fn := range batch {
		q.inflight[token] = fn
		tokens = append(tokens, token)
	}
	q.mu.Unlock()

	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })

	ran := 0
	for _, token := range tokens {
		q.mu.Lock()
		fn, ok := q.inflight[token]
		delete(q.inflight, token)
		q.mu.Unlock()
		if !ok {
			continue
		}
		fn(now)
		ran++
	}
	return ran
}
