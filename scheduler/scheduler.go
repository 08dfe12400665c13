package scheduler

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/canvasplayer/clock"
)

var (
	// ErrInvalidRate indicates a rate that is not a positive finite number.
	ErrInvalidRate = errors.New("rate must be a positive finite number of frames per second")

	// ErrAlreadyRunning indicates Start was called on a running scheduler.
	ErrAlreadyRunning = errors.New("scheduler already running")

	// ErrNilAction indicates Start was called without an action.
	ErrNilAction = errors.New("scheduler action is nil")

	// ErrNilRefresher indicates New was called without a refresher.
	ErrNilRefresher = errors.New("scheduler requires a refresher")
)

// Action is invoked once per accepted tick.
type Action func(now time.Time)

// Scheduler fires an action at a fixed rate, driven by refresh callbacks.
type Scheduler struct {
	refresher    clock.Refresher
	timeProvider clock.TimeProvider

	mu         sync.Mutex
	fps        float64
	interval   time.Duration
	next       time.Duration
	running    bool
	token      clock.TickToken
	generation uint64
	baseline   time.Time
	action     Action
	accepted   uint64
	ticks      uint64
}

// IntervalFor converts a rate in frames per second into the interval between
// accepted ticks.
func IntervalFor(fps float64) (time.Duration, error) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, fps)
	}
	interval := time.Duration(float64(time.Second) / fps)
	if interval <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, fps)
	}
	return interval, nil
}

// New creates a stopped scheduler firing at fps.
func New(refresher clock.Refresher, tp clock.TimeProvider, fps float64) (*Scheduler, error) {
	if refresher == nil {
		return nil, ErrNilRefresher
	}
	interval, err := IntervalFor(fps)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "scheduler.New",
		"fps":      fps,
		"interval": interval,
	}).Debug("Creating scheduler")

	return &Scheduler{
		refresher:    refresher,
		timeProvider: clock.Resolve(tp),
		fps:          fps,
		interval:     interval,
		next:         interval,
	}, nil
}

// Start re-baselines the clock to now and begins the refresh chain.
func (s *Scheduler) Start(action Action) error {
	if action == nil {
		return ErrNilAction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	s.running = true
	s.generation++
	s.interval = s.next
	s.action = action
	s.baseline = s.timeProvider.Now()
	s.accepted = 0
	s.ticks = 0
	s.scheduleLocked()

	logrus.WithFields(logrus.Fields{
		"function":   "Scheduler.Start",
		"fps":        s.fps,
		"interval":   s.interval,
		"generation": s.generation,
	}).Debug("Scheduler started")

	return nil
}

func (s *Scheduler) scheduleLocked() {
	generation := s.generation
	s.token = s.refresher.ScheduleNextTick(func(now time.Time) {
		s.tick(generation, now)
	})
}

func (s *Scheduler) tick(generation uint64, now time.Time) {
	s.mu.Lock()
	if !s.running || generation != s.generation {
		s.mu.Unlock()
		return
	}

	s.scheduleLocked()
	s.ticks++

	elapsed := now.Sub(s.baseline)
	if elapsed <= s.interval {
		s.mu.Unlock()
		return
	}

	s.baseline = now.Add(-(elapsed % s.interval))
	s.accepted++
	action := s.action
	accepted := s.accepted
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Scheduler.tick",
		"elapsed":  elapsed,
		"accepted": accepted,
	}).Trace("Tick accepted")

	action(now)
}

// Stop cancels the pending refresh. Calling Stop on a stopped scheduler is a
// no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	s.generation++
	s.refresher.CancelTick(s.token)
	s.token = 0
	s.action = nil

	logrus.WithFields(logrus.Fields{
		"function": "Scheduler.Stop",
		"accepted": s.accepted,
		"ticks":    s.ticks,
	}).Debug("Scheduler stopped")
}

// SetRate changes the rate. The new interval takes effect on the next Start.
func (s *Scheduler) SetRate(fps float64) error {
	interval, err := IntervalFor(fps)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fps = fps
	s.next = interval
	if !s.running {
		s.interval = interval
	}
	return nil
}

// Rate returns the configured rate in frames per second.
func (s *Scheduler) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fps
}

// Interval returns the interval in effect.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Running reports whether the scheduler is started.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Accepted returns the number of accepted ticks since the last Start.
func (s *Scheduler) Accepted() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted
}

// Ticks returns the number of refresh callbacks handled since the last Start.
func (s *Scheduler) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}
