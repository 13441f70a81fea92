// Package terminal is the text frontend: it draws the arena into a tcell
// screen and reads keys and the mouse from it.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/arena-games/arena/loop"
	"github.com/arena-games/arena/profiling"
	"github.com/arena-games/arena/round"
	"github.com/arena-games/arena/sound"
)

// eventBuffer bounds how many terminal events may queue between frames
const eventBuffer = 128

// Options wires a Frontend to its collaborators
type Options struct {
	TPS    int
	Sound  sound.Sink
	Logger *log.Logger

	// Profiler is optional
	Profiler *profiling.Profiler
}

// Frontend runs a round inside a terminal
type Frontend struct {
	screen   tcell.Screen
	round    *round.Round
	keys     *Keys
	sound    sound.Sink
	logger   *log.Logger
	tps      int
	showGrid bool

	profiler *profiling.Profiler
	meter    *profiling.FrameMeter
	last     time.Time
}

// New creates a frontend on an initialized screen
func New(screen tcell.Screen, r *round.Round, opts Options) *Frontend {
	if opts.Sound == nil {
		opts.Sound = sound.Silent{}
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	now := time.Now()
	return &Frontend{
		screen:   screen,
		round:    r,
		keys:     NewKeys(r.Mode()),
		sound:    opts.Sound,
		logger:   opts.Logger,
		tps:      opts.TPS,
		showGrid: r.Mode() == round.ModePursuit,
		profiler: opts.Profiler,
		meter:    profiling.NewFrameMeter(now),
		last:     now,
	}
}

// Run drives the round at the configured rate until the player quits or ctx
// is done. The caller owns the screen and finalizes it afterwards.
func (f *Frontend) Run(ctx context.Context) error {
	f.screen.EnableMouse()
	f.screen.HideCursor()

	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)
	go pump(f.screen, events, done)

	ticker := time.NewTicker(time.Second / time.Duration(f.tps))
	defer ticker.Stop()

	f.logger.Info("terminal frontend started", "mode", f.round.Mode(), "tps", f.tps)
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if !f.frame(now, events) {
				f.logger.Info("player quit", "score", f.round.Score(), "wave", f.round.Wave())
				return nil
			}
		}
	}
}

// pump forwards screen events until the screen is finalized or the loop ends
func pump(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// frame drains pending events, steps the round and redraws. It reports false
// once the player asked to quit.
func (f *Frontend) frame(now time.Time, events <-chan tcell.Event) bool {
drain:
	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				f.screen.Sync()
			}
			f.keys.Apply(ev, now)
		default:
			break drain
		}
	}
	if f.keys.Quit() {
		return false
	}
	if f.keys.TakeGridToggle() {
		f.showGrid = !f.showGrid
	}

	f.observeFrameRate(now)

	cols, rows := f.screen.Size()
	v := NewViewport(f.round.Arena(), cols, rows)
	elapsed := max(now.Sub(f.last), 0)
	f.last = now
	in := f.keys.Input(f.round.PlayerCount(), now, elapsed, v.ToArena)

	loop.Step(f.round, in, f.sound, f.logger)

	Draw(f.screen, f.round.Snapshot(), f.round.Status(), f.showGrid)
	f.screen.Show()
	return true
}

func (f *Frontend) observeFrameRate(now time.Time) {
	fps, updated := f.meter.Frame(now)
	if !updated || f.profiler == nil {
		return
	}
	f.profiler.Observe(fps, now, fmt.Sprintf("fps%.0f-wave%d", fps, f.round.Wave()))
}
