// Package game is the desktop frontend: an ebiten.Game that samples input,
// ticks the round and draws it.
package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/arena-games/arena/loop"
	"github.com/arena-games/arena/profiling"
	"github.com/arena-games/arena/round"
	"github.com/arena-games/arena/sound"
)

// Options wires a Game to its collaborators
type Options struct {
	Sound  sound.Sink
	Logger *log.Logger

	// Profiler is optional
	Profiler *profiling.Profiler
}

// Game represents the main game state
type Game struct {
	round    *round.Round
	sampler  *Sampler
	renderer *Renderer
	sound    sound.Sink
	logger   *log.Logger
	debug    *DebugState

	profiler *profiling.Profiler
	meter    *profiling.FrameMeter
}

// NewGame creates a game around an existing round
func NewGame(r *round.Round, opts Options) *Game {
	now := time.Now()
	if opts.Sound == nil {
		opts.Sound = sound.Silent{}
	}
	debug := GetDebugState()
	if r.Mode() == round.ModePursuit {
		debug.ShowGrid = true
	}
	return &Game{
		round:    r,
		sampler:  NewSampler(r.Mode(), RestartButton(r.Arena()), now),
		renderer: NewRenderer(),
		sound:    opts.Sound,
		logger:   opts.Logger,
		debug:    debug,
		profiler: opts.Profiler,
		meter:    profiling.NewFrameMeter(now),
	}
}

// Update advances the round by one frame
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.ShowGrid = !g.debug.ShowGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.debug.ShowFPS = !g.debug.ShowFPS
	}

	now := time.Now()
	g.observeFrameRate(now)

	loop.Step(g.round, g.sampler.Sample(now), g.sound, g.logger)
	return nil
}

func (g *Game) observeFrameRate(now time.Time) {
	fps, updated := g.meter.Frame(now)
	if !updated || g.profiler == nil {
		return
	}
	reason := fmt.Sprintf("fps%.0f-enemies%d-wave%d", fps, g.round.EnemyCount(), g.round.Wave())
	g.profiler.Observe(fps, now, reason)
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.round.Snapshot()
	g.renderer.Render(screen, snap, g.round.Status(), g.debug.ShowGrid)

	if g.debug.ShowFPS {
		status := fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS())
		g.renderer.drawText(screen, status, 20, snap.Arena.Height-40, textScale, textColor, text.AlignStart)
	}
}

// Layout keeps the arena's pixel space; ebiten scales it into the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	a := g.round.Arena()
	return int(a.Width), int(a.Height)
}
