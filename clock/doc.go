// Package clock provides the host clock and refresh-scheduling primitives
// used by the canvas player.
//
// # Time
//
// All components read the current time through a TimeProvider so tests can
// inject deterministic time:
//
//	var tp clock.TimeProvider = clock.RealTimeProvider{}
//	now := tp.Now()
//
// # Refresh Scheduling
//
// A Refresher models the host's "run this callback on the next display
// refresh" primitive. Callbacks are one-shot: a callback that wants to keep
// running must schedule itself again.
//
//	token := refresher.ScheduleNextTick(func(now time.Time) {
//	    // one refresh worth of work
//	})
//	refresher.CancelTick(token)
//
// Three backends are provided:
//
//   - FrameLoop: a fixed-period refresh loop (60 Hz by default). All
//     callbacks due on one refresh run serially on the loop goroutine.
//   - IntervalTimer: a timer-driven backend where each scheduled callback
//     arms its own one-shot timer.
//   - ManualClock: a deterministic TimeProvider and Refresher for tests.
//     Time only moves when Step or Run is called.
//
// Cancelling a token that already ran, or was never issued, is a no-op.
package clock
