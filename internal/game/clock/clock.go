// Package clock paces the frame loop.
package clock

import "time"

// FrameWait returns how long to sleep after a frame that took elapsed so
// that frames last 1/targetFPS seconds. It never returns a negative
// duration; a non-positive targetFPS disables pacing.
func FrameWait(targetFPS float64, elapsed time.Duration) time.Duration {
	if targetFPS <= 0 {
		return 0
	}
	budget := time.Duration(float64(time.Second) / targetFPS)
	return max(0, budget-elapsed)
}

// Frame tracks the timing of the frame loop. Begin is when the current
// frame started, End when the previous one finished.
type Frame struct {
	Begin time.Time
	End   time.Time
	Delta time.Duration
}

// NewFrame starts timing at now.
func NewFrame(now time.Time) Frame {
	return Frame{Begin: now, End: now}
}

// Tick closes the previous frame at now and starts the next one.
func (f *Frame) Tick(now time.Time) {
	f.End = now
	f.Delta = f.End.Sub(f.Begin)
	f.Begin = now
}

// DeltaSeconds returns the last frame's duration in seconds.
func (f *Frame) DeltaSeconds() float32 {
	return float32(f.Delta.Seconds())
}

// DeltaMS returns the last frame's duration in milliseconds.
func (f *Frame) DeltaMS() int64 {
	return f.Delta.Milliseconds()
}

// Elapsed returns the time spent in the current frame so far.
func (f *Frame) Elapsed(now time.Time) time.Duration {
	return now.Sub(f.Begin)
}
