package round

import (
	"fmt"
	"time"
)

// Rules is one game variant: how a round is laid out, how its entities move
// and spawn, and what contact with an enemy costs
type Rules interface {
	// Name identifies the variant
	Name() string

	// DefaultArena is the arena the variant is tuned for
	DefaultArena() Arena

	// Setup places players and any initial enemies in a cleared round
	Setup(r *Round)

	// Advance runs the update step: players, bullets and enemies
	Advance(r *Round, in Input)

	// ContactDamage is the health a player loses per touching enemy per frame
	ContactDamage() int

	// Spawn runs after the collision pass with the real time of this frame
	Spawn(r *Round, elapsed time.Duration)

	// RestartWhileRunning allows a reset before the round is over
	RestartWhileRunning() bool

	// Status formats the text readout
	Status(s Snapshot) string
}

// Mode names accepted by RulesFor
const (
	ModeWaves   = "waves"
	ModePursuit = "pursuit"
)

// RulesFor returns the rules for a mode name
func RulesFor(mode string) (Rules, error) {
	switch mode {
	case ModeWaves:
		return Waves{}, nil
	case ModePursuit:
		return Pursuit{}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
