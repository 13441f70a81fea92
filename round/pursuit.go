package round

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

// ColorPursuer is the single player's colour in the pursuit variant
var ColorPursuer = color.RGBA{0x34, 0x98, 0xdb, 0xff}

// Pursuit is the single-player variant: the player aims with the pointer and
// one enemy per second spawns at the arena edge and steers straight at them
type Pursuit struct{}

func (Pursuit) Name() string { return ModePursuit }

func (Pursuit) DefaultArena() Arena {
	return Arena{Width: PursuitArenaWidth, Height: PursuitArenaHeight}
}

func (Pursuit) ContactDamage() int { return PursuitContactDamage }

func (Pursuit) RestartWhileRunning() bool { return false }

// Setup places the player in the middle of an empty arena
func (Pursuit) Setup(r *Round) {
	r.players = append(r.players, newPlayer(0, r.arena.Width/2, r.arena.Height/2, ColorPursuer))
}

// Advance moves and aims the player, fires toward the pointer, moves bullets
// and steers every enemy toward the player's current position
func (Pursuit) Advance(r *Round, in Input) {
	p := r.players[0]
	c := in.Player(0)
	p.move(c, r.arena)
	p.AimX, p.AimY = in.AimX, in.AimY
	if p.readyToFire(c.Fire) {
		vx, vy := AimVelocity(p.X, p.Y, p.AimX, p.AimY, PursuitBulletSpeed)
		r.fire(p, vx, vy, PursuitFireCooldown)
	}

	r.moveBullets()

	for _, e := range r.enemies {
		steerToward(e, p.X, p.Y)
		e.X += e.VX
		e.Y += e.VY
	}
}

// Spawn adds one enemy for every full interval of real time, however the
// time is split across frames
func (Pursuit) Spawn(r *Round, elapsed time.Duration) {
	r.spawnClock += elapsed
	for r.spawnClock >= PursuitSpawnInterval {
		r.spawnClock -= PursuitSpawnInterval
		spawnAtEdge(r)
	}
}

// Status renders "Score: 0 | HP: 100"
func (Pursuit) Status(s Snapshot) string {
	hp := 0
	if len(s.Players) > 0 {
		hp = s.Players[0].Health
	}
	return fmt.Sprintf("Score: %d | HP: %d", s.Score, hp)
}

// AimVelocity returns a velocity of the given speed pointing from (x, y) to
// (tx, ty). Aiming at the origin itself points along +x.
func AimVelocity(x, y, tx, ty, speed float64) (float64, float64) {
	angle := math.Atan2(ty-y, tx-x)
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

// steerToward points an enemy's velocity at a target without prediction
func steerToward(e *Entity, tx, ty float64) {
	dx := tx - e.X
	dy := ty - e.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		e.VX, e.VY = 0, 0
		return
	}
	e.VX = dx / dist * e.Speed
	e.VY = dy / dist * e.Speed
}

// spawnAtEdge places an enemy just outside a random side of the arena
func spawnAtEdge(r *Round) {
	e := &Entity{
		Radius: PursuitEnemyRadius,
		Speed:  PursuitEnemyMinSpeed + r.rng.Float64()*(PursuitEnemyMaxSpeed-PursuitEnemyMinSpeed),
	}
	w, h := r.arena.Width, r.arena.Height
	switch r.rng.Intn(4) {
	case 0: // Top
		e.X, e.Y = r.rng.Float64()*w, -e.Radius
	case 1: // Right
		e.X, e.Y = w+e.Radius, r.rng.Float64()*h
	case 2: // Bottom
		e.X, e.Y = r.rng.Float64()*w, h+e.Radius
	case 3: // Left
		e.X, e.Y = -e.Radius, r.rng.Float64()*h
	}
	r.addEnemy(e)
}
