// Package scheduler implements a self-correcting fixed-interval scheduler on
// top of a variable-interval refresh callback.
//
// Every refresh the scheduler measures the time elapsed since its baseline.
// When the elapsed time exceeds the configured interval the action fires
// once and the baseline moves forward by a whole number of intervals:
//
//	baseline = now - (elapsed % interval)
//
// Resetting the baseline to now instead would discard the overrun on every
// firing. With a 60 Hz refresh driving a 10 Hz action that overrun is 12 ms
// per firing, and the effective rate drops to roughly 8.9 Hz. Carrying the
// overrun forward keeps the long-run rate at the configured rate for any rate
// up to the refresh rate.
//
// Example:
//
//	sched, err := scheduler.New(refresher, clock.RealTimeProvider{}, 10)
//	if err != nil {
//	    return err
//	}
//	sched.Start(func(now time.Time) {
//	    captureFrame(now)
//	})
//	defer sched.Stop()
//
// The action runs on the refresher's goroutine without the scheduler lock
// held, so it may call Stop.
package scheduler
