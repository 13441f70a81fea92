package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/arena-games/arena/round"
)

// keyHoldDuration is how long a key counts as held after its last press.
// Terminals report presses and auto-repeats, never releases.
const keyHoldDuration = 120 * time.Millisecond

type action int

const (
	moveLeft action = iota
	moveRight
	moveUp
	moveDown
	fire
)

type binding struct {
	slot   int
	action action
}

// Keys tracks when each binding was last pressed, plus the mouse
type Keys struct {
	mode    string
	pressed map[binding]time.Time

	mouseX, mouseY int
	mouseDown      bool

	restart    bool
	quit       bool
	toggleGrid bool
}

// NewKeys creates an empty key table for the variant
func NewKeys(mode string) *Keys {
	return &Keys{
		mode:    mode,
		pressed: make(map[binding]time.Time),
	}
}

// Apply records one terminal event
func (k *Keys) Apply(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k.applyKey(ev, now)
	case *tcell.EventMouse:
		k.mouseX, k.mouseY = ev.Position()
		k.mouseDown = ev.Buttons()&tcell.Button1 != 0
	}
}

func (k *Keys) applyKey(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.quit = true
		return
	case tcell.KeyF1:
		k.toggleGrid = true
		return
	}

	for _, b := range k.bindingsFor(ev) {
		k.pressed[b] = now
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'r', 'R':
			k.restart = true
		case 'q', 'Q':
			k.quit = true
		}
	}
}

// bindingsFor maps a key to the actions it drives in this variant
func (k *Keys) bindingsFor(ev *tcell.EventKey) []binding {
	arrowSlot := 1
	if k.mode == round.ModePursuit {
		arrowSlot = 0
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		return []binding{{arrowSlot, moveLeft}}
	case tcell.KeyRight:
		return []binding{{arrowSlot, moveRight}}
	case tcell.KeyUp:
		return []binding{{arrowSlot, moveUp}}
	case tcell.KeyDown:
		return []binding{{arrowSlot, moveDown}}
	case tcell.KeyRune:
	default:
		return nil
	}

	switch ev.Rune() {
	case 'a', 'A':
		return []binding{{0, moveLeft}}
	case 'd', 'D':
		return []binding{{0, moveRight}}
	case 'w', 'W':
		return []binding{{0, moveUp}}
	case 's', 'S':
		return []binding{{0, moveDown}}
	case ' ':
		return []binding{{0, fire}}
	case '/':
		if k.mode == round.ModeWaves {
			return []binding{{1, fire}}
		}
	}
	return nil
}

func (k *Keys) held(slot int, a action, now time.Time) bool {
	t, ok := k.pressed[binding{slot, a}]
	return ok && now.Sub(t) < keyHoldDuration
}

// Input builds the frame's input. toArena converts a cell to arena pixels.
// One-shot requests are consumed.
func (k *Keys) Input(players int, now time.Time, elapsed time.Duration, toArena func(col, row int) (float64, float64)) round.Input {
	in := round.Input{
		Players: make([]round.Controls, players),
		Elapsed: elapsed,
		Restart: k.restart,
	}
	for slot := range in.Players {
		in.Players[slot] = round.Controls{
			MoveX: round.Axis(k.held(slot, moveLeft, now), k.held(slot, moveRight, now)),
			MoveY: round.Axis(k.held(slot, moveUp, now), k.held(slot, moveDown, now)),
			Fire:  k.held(slot, fire, now),
		}
	}
	if k.mode == round.ModePursuit && players > 0 {
		in.AimX, in.AimY = toArena(k.mouseX, k.mouseY)
		in.Players[0].Fire = in.Players[0].Fire || k.mouseDown
	}
	k.restart = false
	return in
}

// TakeGridToggle reports and clears a pending grid toggle
func (k *Keys) TakeGridToggle() bool {
	t := k.toggleGrid
	k.toggleGrid = false
	return t
}

// Quit reports whether the player asked to leave
func (k *Keys) Quit() bool { return k.quit }
