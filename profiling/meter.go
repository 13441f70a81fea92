package profiling

import "time"

// meterWindow is how often the frame rate reading is refreshed
const meterWindow = 500 * time.Millisecond

// FrameMeter counts frames and turns them into a frame rate every half second
type FrameMeter struct {
	windowStart time.Time
	frames      int
	fps         float64
}

// NewFrameMeter starts measuring at now
func NewFrameMeter(now time.Time) *FrameMeter {
	return &FrameMeter{windowStart: now}
}

// Frame records one frame at now. It reports true when a new reading is
// available.
func (m *FrameMeter) Frame(now time.Time) (fps float64, updated bool) {
	m.frames++
	elapsed := now.Sub(m.windowStart)
	if elapsed < meterWindow {
		return m.fps, false
	}
	m.fps = float64(m.frames) / elapsed.Seconds()
	m.frames = 0
	m.windowStart = now
	return m.fps, true
}

// FPS returns the latest reading
func (m *FrameMeter) FPS() float64 { return m.fps }
