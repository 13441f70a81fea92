package round

import (
	"image/color"
	"math"
)

// Kind identifies the type of entity
type Kind int

const (
	KindPlayer Kind = iota
	KindBullet
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Entity represents a game entity (player, bullet or enemy).
// All kinds share circle geometry so one collision routine serves every pair.
type Entity struct {
	Kind Kind

	// Position in arena pixels
	X, Y float64

	// Collision radius in pixels
	Radius float64

	// Velocity in pixels per frame (bullets, pursuing enemies)
	VX, VY float64

	// Movement speed in pixels per frame (players, enemies)
	Speed float64

	// Health points, players only (0 or less ends the round)
	Health int

	// Frames left before the player may fire again
	Cooldown int

	// Player index, selects the control mapping
	Slot int

	// Fill colour for players
	Color color.RGBA

	// Where the player stands after a restart
	SpawnX, SpawnY float64

	// Aim point in arena pixels (pointer-aimed players)
	AimX, AimY float64

	// Marked for removal at the end of the collision pass
	dead bool
}

// Circle is anything with a centre and a collision radius
type Circle interface {
	Center() (x, y float64)
	CollisionRadius() float64
}

// Center returns the entity position
func (e *Entity) Center() (float64, float64) {
	return e.X, e.Y
}

// CollisionRadius returns the entity radius
func (e *Entity) CollisionRadius() float64 {
	return e.Radius
}

// DistanceTo calculates the distance to another circle
func (e *Entity) DistanceTo(other Circle) float64 {
	ox, oy := other.Center()
	return math.Hypot(e.X-ox, e.Y-oy)
}

// MarkDead marks the entity for removal once the current pass is over
func (e *Entity) MarkDead() {
	e.dead = true
}

// Dead reports whether the entity is marked for removal
func (e *Entity) Dead() bool {
	return e.dead
}

// Collides reports whether two circles overlap: the distance between centres
// is strictly less than the sum of the radii. Touching circles do not collide.
func Collides(a, b Circle) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	return math.Hypot(ax-bx, ay-by) < a.CollisionRadius()+b.CollisionRadius()
}

// newPlayer creates a player standing at its spawn point
func newPlayer(slot int, x, y float64, clr color.RGBA) *Entity {
	p := &Entity{
		Kind:   KindPlayer,
		Slot:   slot,
		Color:  clr,
		SpawnX: x,
		SpawnY: y,
	}
	p.reset()
	return p
}

// reset puts a player back into its spawn state
func (e *Entity) reset() {
	e.X = e.SpawnX
	e.Y = e.SpawnY
	e.Radius = PlayerRadius
	e.Speed = PlayerSpeed
	e.Health = InitialHealth
	e.Cooldown = 0
	e.AimX = e.SpawnX
	e.AimY = e.SpawnY
	e.dead = false
}

// move applies one frame of directional input and clamps to the arena
func (e *Entity) move(c Controls, arena Arena) {
	e.X += c.MoveX * e.Speed
	e.Y += c.MoveY * e.Speed
	arena.Clamp(e)
}

// readyToFire counts the cooldown down and reports whether a shot may leave
// this frame. A successful shot must be followed by a cooldown reset.
func (e *Entity) readyToFire(fire bool) bool {
	if e.Cooldown > 0 {
		e.Cooldown--
	}
	return fire && e.Cooldown == 0
}
