package round

import "time"

// Controls is one player's sampled input for a frame
type Controls struct {
	// Movement axes, each roughly in [-1, 1] per device; keyboard and
	// gamepad contributions are summed by the sampler
	MoveX, MoveY float64

	// Fire is held this frame
	Fire bool
}

// Input is the snapshot an input sampler produces once per frame
type Input struct {
	// Per-player controls, indexed by player slot
	Players []Controls

	// Pointer position in arena pixels
	AimX, AimY float64

	// Real time since the previous frame
	Elapsed time.Duration

	// Restart was requested this frame
	Restart bool
}

// Player returns the controls for a slot. Missing devices contribute zero input.
func (in Input) Player(slot int) Controls {
	if slot < 0 || slot >= len(in.Players) {
		return Controls{}
	}
	return in.Players[slot]
}

// GamepadDeadZone is the stick deflection below which an axis reads as zero
const GamepadDeadZone = 0.1

// Axis turns a pair of digital directions into -1, 0 or +1
func Axis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}

// DeadZone zeroes analog readings whose magnitude is below threshold
func DeadZone(v, threshold float64) float64 {
	if v > -threshold && v < threshold {
		return 0
	}
	return v
}
