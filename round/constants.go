package round

import "time"

// Player
const (
	PlayerRadius  = 20.0
	PlayerSpeed   = 5.0 // pixels per frame per unit of input
	InitialHealth = 100
)

// Bullets
const (
	BulletRadius = 5.0
)

// Scoring
const (
	KillScore = 10
)

// Waves variant
const (
	WaveEnemyRadius     = 18.0
	WaveEnemySpawnY     = -20.0
	WaveEnemyBaseSpeed  = 2.0
	WaveEnemySpeedStep  = 0.5 // added per wave number
	WaveEnemiesPerWave  = 5   // multiplied by the wave number
	WaveBulletSpeed     = 10.0
	WaveFireCooldown    = 15 // frames
	WaveContactDamage   = 10
	WaveArenaWidth      = 1920.0
	WaveArenaHeight     = 1080.0
	// Spawn points in the default arena, scaled to other sizes
	waveP1SpawnX = 600.0
	waveP2SpawnX = 1300.0
	waveSpawnY   = 900.0
)

// Pursuit variant
const (
	PursuitEnemyRadius   = 15.0
	PursuitEnemyMinSpeed = 2.0
	PursuitEnemyMaxSpeed = 3.5 // exclusive
	PursuitBulletSpeed   = 14.0
	PursuitFireCooldown  = 8 // frames
	PursuitContactDamage = 1
	PursuitSpawnInterval = 1000 * time.Millisecond
	PursuitArenaWidth    = 1280.0
	PursuitArenaHeight   = 800.0
)
