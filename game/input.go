package game

import (
	"image"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/arena-games/arena/round"
)

// ControlMap binds keys to one player's movement and fire. Any key of a
// list counts.
type ControlMap struct {
	Left, Right, Up, Down []ebiten.Key
	Fire                  []ebiten.Key
}

// Keyboard layouts per variant, indexed by player slot
var (
	WaveControls = []ControlMap{
		{
			Left:  []ebiten.Key{ebiten.KeyA},
			Right: []ebiten.Key{ebiten.KeyD},
			Up:    []ebiten.Key{ebiten.KeyW},
			Down:  []ebiten.Key{ebiten.KeyS},
			Fire:  []ebiten.Key{ebiten.KeySpace},
		},
		{
			Left:  []ebiten.Key{ebiten.KeyArrowLeft},
			Right: []ebiten.Key{ebiten.KeyArrowRight},
			Up:    []ebiten.Key{ebiten.KeyArrowUp},
			Down:  []ebiten.Key{ebiten.KeyArrowDown},
			Fire:  []ebiten.Key{ebiten.KeySlash},
		},
	}

	// The pursuit player fires with the mouse
	PursuitControls = []ControlMap{
		{
			Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
			Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
			Up:    []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
			Down:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		},
	}
)

// maxGamepads is how many pads join in, one per player
const maxGamepads = 2

// Sampler reads keyboard, mouse and gamepads once per frame
type Sampler struct {
	controls []ControlMap
	gamepads bool
	mouse    bool
	restart  image.Rectangle

	padIDs []ebiten.GamepadID
	last   time.Time
}

// NewSampler creates a sampler for the given variant. restart is the
// on-screen restart button in arena pixels.
func NewSampler(mode string, restart image.Rectangle, now time.Time) *Sampler {
	s := &Sampler{
		restart: restart,
		padIDs:  make([]ebiten.GamepadID, 0, 4),
		last:    now,
	}
	if mode == round.ModePursuit {
		s.controls = PursuitControls
		s.mouse = true
	} else {
		s.controls = WaveControls
		s.gamepads = true
	}
	return s
}

// Sample builds the frame's input
func (s *Sampler) Sample(now time.Time) round.Input {
	in := round.Input{
		Players: make([]round.Controls, len(s.controls)),
		Elapsed: now.Sub(s.last),
	}
	s.last = now

	for slot, m := range s.controls {
		in.Players[slot] = round.Controls{
			MoveX: round.Axis(anyPressed(m.Left), anyPressed(m.Right)),
			MoveY: round.Axis(anyPressed(m.Up), anyPressed(m.Down)),
			Fire:  anyPressed(m.Fire),
		}
	}

	if s.gamepads {
		s.padIDs = ebiten.AppendGamepadIDs(s.padIDs[:0])
		slices.Sort(s.padIDs)
		for slot, id := range s.padIDs {
			if slot >= maxGamepads || slot >= len(in.Players) {
				break
			}
			x, y, fire := readGamepad(id)
			c := &in.Players[slot]
			c.MoveX += x
			c.MoveY += y
			c.Fire = c.Fire || fire
		}
	}

	cx, cy := ebiten.CursorPosition()
	in.AimX, in.AimY = float64(cx), float64(cy)
	onButton := image.Pt(cx, cy).In(s.restart)
	if s.mouse && len(in.Players) > 0 && !onButton {
		in.Players[0].Fire = in.Players[0].Fire || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	in.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR) ||
		(onButton && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft))
	return in
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// readGamepad returns the left stick and the bottom face button, falling
// back to raw axes 0/1 and button 0 for pads without a standard layout
func readGamepad(id ebiten.GamepadID) (x, y float64, fire bool) {
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		x = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		fire = ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	} else {
		if ebiten.GamepadAxisCount(id) >= 2 {
			x = ebiten.GamepadAxisValue(id, 0)
			y = ebiten.GamepadAxisValue(id, 1)
		}
		fire = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton0)
	}
	return round.DeadZone(x, round.GamepadDeadZone), round.DeadZone(y, round.GamepadDeadZone), fire
}
