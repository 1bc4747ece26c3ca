// Package playback replays a finalized session against an external renderer
// with correct relative timing, supporting pause, seek, speed control, reset,
// and optional dead-time compression.
//
// The Scheduler is a cooperative state machine (Idle, Playing, Paused,
// Finished). While playing, a single goroutine suspends between frame
// emissions for max(minDelay, gap)/speed; every control operation wakes that
// goroutine so pause, seek, reset, and disposal take effect before the next
// emission fires. All operations are total: seeking past the end clamps to
// Finished, and there are no error returns, only state transitions.
package playback
