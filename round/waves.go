package round

import (
	"fmt"
	"image/color"
	"strings"
	"time"
)

// Player colours for the two-player variant
var (
	ColorPlayerOne = color.RGBA{0x34, 0x98, 0xdb, 0xff}
	ColorPlayerTwo = color.RGBA{0x2e, 0xcc, 0x71, 0xff}
)

// Waves is the two-player variant: enemies fall straight down in batches of
// 5 × wave, and clearing a batch starts the next, faster one
type Waves struct{}

func (Waves) Name() string { return ModeWaves }

func (Waves) DefaultArena() Arena {
	return Arena{Width: WaveArenaWidth, Height: WaveArenaHeight}
}

func (Waves) ContactDamage() int { return WaveContactDamage }

func (Waves) RestartWhileRunning() bool { return true }

// Setup creates both players. The arena starts empty; the first wave
// arrives at the end of the first frame like every later one.
func (Waves) Setup(r *Round) {
	a := r.arena
	r.players = append(r.players,
		newPlayer(0, a.Width*waveP1SpawnX/WaveArenaWidth, a.Height*waveSpawnY/WaveArenaHeight, ColorPlayerOne),
		newPlayer(1, a.Width*waveP2SpawnX/WaveArenaWidth, a.Height*waveSpawnY/WaveArenaHeight, ColorPlayerTwo),
	)
	for _, p := range r.players {
		a.Clamp(p)
		p.SpawnX, p.SpawnY = p.X, p.Y
	}
}

// Advance moves players, fires, moves bullets, then lets enemies fall
func (Waves) Advance(r *Round, in Input) {
	for _, p := range r.players {
		c := in.Player(p.Slot)
		p.move(c, r.arena)
		if p.readyToFire(c.Fire) {
			vx := (r.rng.Float64() - 0.5) * 2 * WaveBulletSpeed
			r.fire(p, vx, -WaveBulletSpeed, WaveFireCooldown)
		}
	}

	r.moveBullets()

	for _, e := range r.enemies {
		e.Y += e.Speed
		// An enemy that slips past the bottom comes round again from the top
		if e.Y-e.Radius > r.arena.Height {
			e.Y = WaveEnemySpawnY
		}
	}
}

// Spawn starts the next wave once the current one is cleared
func (w Waves) Spawn(r *Round, _ time.Duration) {
	if len(r.enemies) == 0 {
		w.startWave(r, r.wave+1)
	}
}

func (Waves) startWave(r *Round, wave int) {
	r.wave = wave
	speed := WaveEnemyBaseSpeed + WaveEnemySpeedStep*float64(wave)
	for i := 0; i < WaveEnemiesPerWave*wave; i++ {
		r.addEnemy(&Entity{
			X:      r.rng.Float64() * r.arena.Width,
			Y:      WaveEnemySpawnY,
			Radius: WaveEnemyRadius,
			Speed:  speed,
		})
	}
	r.emit(Event{Kind: EventWaveStarted})
}

// Status renders "Wave: 1 | Score: 0 | P1 HP: 100 | P2 HP: 100"
func (Waves) Status(s Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Wave: %d | Score: %d", s.Wave, s.Score)
	for _, p := range s.Players {
		fmt.Fprintf(&b, " | P%d HP: %d", p.Slot+1, p.Health)
	}
	return b.String()
}
