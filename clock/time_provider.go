package clock

import "time"

// TimeProvider is the host clock. Schedulers read it on every refresh to
// measure elapsed time, and refreshers pass its reading to their callbacks.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the wall clock.
type RealTimeProvider struct{}

// Now returns time.Now().
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

var defaultTimeProvider TimeProvider = RealTimeProvider{}

// SetDefaultTimeProvider replaces the clock used by refreshers and schedulers
// constructed without one. Nil restores the wall clock. It is meant for
// process setup and is not safe to call while refreshers are running.
func SetDefaultTimeProvider(tp TimeProvider) {
	if tp == nil {
		tp = RealTimeProvider{}
	}
	defaultTimeProvider = tp
}

// Resolve picks the clock for a component: tp itself, or the default when
// tp is nil.
func Resolve(tp TimeProvider) TimeProvider {
	if tp != nil {
		return tp
	}
	return defaultTimeProvider
}
