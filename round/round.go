// Package round holds the frontend-free simulation shared by both arena
// variants: entities, per-round state, the update step and the collision
// resolver.
package round

import (
	"fmt"
	"math/rand"
	"time"
)

// State is the driver state of a round
type State int

const (
	Running State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game over"
	}
	return "running"
}

// Arena is the rectangular render surface players are clamped to
type Arena struct {
	Width, Height float64
}

// Clamp keeps a circle fully inside the arena
func (a Arena) Clamp(e *Entity) {
	e.X = clamp(e.X, e.Radius, a.Width-e.Radius)
	e.Y = clamp(e.Y, e.Radius, a.Height-e.Radius)
}

// Outside reports whether a circle has left the arena completely
func (a Arena) Outside(e *Entity) bool {
	return e.X+e.Radius < 0 || e.X-e.Radius > a.Width ||
		e.Y+e.Radius < 0 || e.Y-e.Radius > a.Height
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		// Arena smaller than the circle: pin to the middle
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round owns all mutable state of one game session. Only the update step and
// the collision resolver change it; renderers read a Snapshot.
type Round struct {
	rules Rules
	arena Arena
	rng   *rand.Rand

	players []*Entity
	bullets []*Entity
	enemies []*Entity

	wave  int
	score int
	state State
	frame uint64

	// Real time accumulated toward the next timed spawn
	spawnClock time.Duration

	events []Event
}

// New creates a round for the given rules and arena, seeded for reproducible
// spawns, and sets it up in the Running state
func New(rules Rules, arena Arena, seed int64) *Round {
	r := &Round{
		rules:   rules,
		arena:   arena,
		rng:     rand.New(rand.NewSource(seed)),
		bullets: make([]*Entity, 0, 64),
		enemies: make([]*Entity, 0, 64),
	}
	r.setup()
	return r
}

// setup clears everything and lets the rules lay out a fresh round
func (r *Round) setup() {
	r.players = r.players[:0]
	r.bullets = r.bullets[:0]
	r.enemies = r.enemies[:0]
	r.wave = 0
	r.score = 0
	r.state = Running
	r.frame = 0
	r.spawnClock = 0
	r.rules.Setup(r)
}

// Restart resets all collections and counters and returns to Running.
// It reports false when the rules only allow a restart after game over and
// the round is still running.
func (r *Round) Restart() bool {
	if r.state == Running && !r.rules.RestartWhileRunning() {
		return false
	}
	r.events = r.events[:0]
	r.setup()
	r.emit(Event{Kind: EventRestarted})
	return true
}

// Tick runs one frame: the update step, the collision pass, pruning and
// spawning. A finished round ignores everything except a restart request.
func (r *Round) Tick(in Input) {
	if in.Restart {
		r.Restart()
	}
	if r.state == GameOver {
		return
	}
	r.assertAlive()

	r.frame++
	r.rules.Advance(r, in)
	r.resolveCollisions()
	r.pruneBullets()
	if r.state == Running {
		r.rules.Spawn(r, max(in.Elapsed, 0))
	}
}

// assertAlive guards the invariant that health only reaches zero in the
// frame that ends the round
func (r *Round) assertAlive() {
	for _, p := range r.players {
		if p.Health <= 0 {
			panic(fmt.Sprintf("round: player %d has %d health while running", p.Slot, p.Health))
		}
	}
}

// fire spawns a bullet at the player's position and starts its cooldown
func (r *Round) fire(p *Entity, vx, vy float64, cooldown int) {
	r.bullets = append(r.bullets, &Entity{
		Kind:   KindBullet,
		X:      p.X,
		Y:      p.Y,
		Radius: BulletRadius,
		VX:     vx,
		VY:     vy,
	})
	p.Cooldown = cooldown
	r.emit(Event{Kind: EventShot, Slot: p.Slot})
}

// moveBullets advances every bullet by its velocity
func (r *Round) moveBullets() {
	for _, b := range r.bullets {
		b.X += b.VX
		b.Y += b.VY
	}
}

// pruneBullets drops bullets that have left the arena
func (r *Round) pruneBullets() {
	kept := r.bullets[:0]
	for _, b := range r.bullets {
		if !r.arena.Outside(b) {
			kept = append(kept, b)
		}
	}
	clear(r.bullets[len(kept):])
	r.bullets = kept
}

// addEnemy registers a spawned enemy
func (r *Round) addEnemy(e *Entity) {
	e.Kind = KindEnemy
	r.enemies = append(r.enemies, e)
}

func (r *Round) emit(ev Event) {
	ev.Wave = r.wave
	ev.Score = r.score
	r.events = append(r.events, ev)
}

// DrainEvents returns the events raised since the last call and forgets them
func (r *Round) DrainEvents() []Event {
	if len(r.events) == 0 {
		return nil
	}
	out := make([]Event, len(r.events))
	copy(out, r.events)
	r.events = r.events[:0]
	return out
}

// Arena returns the arena bounds
func (r *Round) Arena() Arena { return r.arena }

// Mode returns the name of the rules in play
func (r *Round) Mode() string { return r.rules.Name() }

// Wave returns the current wave number (0 when the rules have no waves)
func (r *Round) Wave() int { return r.wave }

// Score returns the current score
func (r *Round) Score() int { return r.score }

// State returns the driver state
func (r *Round) State() State { return r.state }

// Frame returns the number of update steps run since the last restart
func (r *Round) Frame() uint64 { return r.frame }

// Status formats the text readout for the current state
func (r *Round) Status() string {
	return r.rules.Status(r.Snapshot())
}

// PlayerCount returns how many players the rules set up
func (r *Round) PlayerCount() int { return len(r.players) }

// EnemyCount returns how many enemies are alive
func (r *Round) EnemyCount() int { return len(r.enemies) }
