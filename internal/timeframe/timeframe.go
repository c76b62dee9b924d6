// Package timeframe keeps frame timing for a render loop. Time is supplied
// by the caller as raw ticks of a monotonic counter together with the
// counter's frequency, so the clock is deterministic under test.
package timeframe

import (
	"errors"
	"fmt"
)

var (
	// ErrRunning is returned by operations that require a stopped clock.
	ErrRunning = errors.New("time frame is running")

	// ErrStopped is returned by operations that require a running clock.
	ErrStopped = errors.New("time frame is not running")
)

// Error records a clock operation called in the wrong state.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("timeframe: %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

const normalTimeScale = 1.0

// TimeFrame measures time between frames. Deltas and totals are in seconds.
// The scaled values are multiplied by the time scale; the unscaled values
// track wall time.
//
// A TimeFrame is not safe for concurrent use.
type TimeFrame struct {
	frequency float64

	start uint64
	now   uint64

	timeScale float64

	time         float64
	unscaledTime float64

	delta         float64
	unscaledDelta float64

	frames uint64

	running bool
}

// New returns a stopped clock for a counter ticking frequency times per
// second. A frequency of zero is treated as one.
func New(frequency uint64) *TimeFrame {
	if frequency == 0 {
		frequency = 1
	}
	return &TimeFrame{
		frequency: float64(frequency),
		timeScale: normalTimeScale,
	}
}

// Start zeroes the accumulators and starts the clock at tick now.
func (tf *TimeFrame) Start(now uint64) error {
	if tf.running {
		return &Error{"start", ErrRunning}
	}
	tf.zero()
	tf.start = now
	tf.now = now
	tf.running = true
	return nil
}

// Update advances the clock to tick now and counts one frame.
func (tf *TimeFrame) Update(now uint64) error {
	if !tf.running {
		return &Error{"update", ErrStopped}
	}
	last := tf.now
	tf.now = now

	tf.unscaledDelta = float64(tf.now-last) / tf.frequency
	tf.unscaledTime = float64(tf.now-tf.start) / tf.frequency

	tf.delta = tf.unscaledDelta * tf.timeScale
	tf.time += tf.delta

	tf.frames++
	return nil
}

// Stop halts the clock. Accumulated values stay readable.
func (tf *TimeFrame) Stop() error {
	if !tf.running {
		return &Error{"stop", ErrStopped}
	}
	tf.running = false
	return nil
}

// Reset zeroes the clock and restores the normal time scale.
func (tf *TimeFrame) Reset() error {
	if tf.running {
		return &Error{"reset", ErrRunning}
	}
	tf.zero()
	tf.timeScale = normalTimeScale
	return nil
}

// Zero clears the accumulated times and frame count, keeping the time scale.
func (tf *TimeFrame) Zero() error {
	if tf.running {
		return &Error{"zero", ErrRunning}
	}
	tf.zero()
	return nil
}

func (tf *TimeFrame) zero() {
	tf.start, tf.now = 0, 0
	tf.time, tf.unscaledTime = 0, 0
	tf.delta, tf.unscaledDelta = 0, 0
	tf.frames = 0
}

// SetTimeScale sets the factor applied to scaled deltas. Negative values
// are clamped to zero, which pauses scaled time.
func (tf *TimeFrame) SetTimeScale(t float64) {
	tf.timeScale = max(t, 0)
}

func (tf *TimeFrame) TimeScale() float64         { return tf.timeScale }
func (tf *TimeFrame) Time() float64              { return tf.time }
func (tf *TimeFrame) UnscaledTime() float64      { return tf.unscaledTime }
func (tf *TimeFrame) DeltaTime() float64         { return tf.delta }
func (tf *TimeFrame) UnscaledDeltaTime() float64 { return tf.unscaledDelta }
func (tf *TimeFrame) FrameCount() uint64         { return tf.frames }
func (tf *TimeFrame) Running() bool              { return tf.running }
func (tf *TimeFrame) Frequency() uint64          { return uint64(tf.frequency) }

// FPS is the frame rate implied by the last unscaled delta, or 0 before the
// first measurable frame.
func (tf *TimeFrame) FPS() float64 {
	if tf.unscaledDelta <= 0 {
		return 0
	}
	return 1 / tf.unscaledDelta
}
