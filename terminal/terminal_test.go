package terminal

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/arena-games/arena/round"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func rowText(screen tcell.Screen, row int) string {
	cols, _ := screen.Size()
	var b strings.Builder
	for col := 0; col < cols; col++ {
		r, _, _, _ := screen.GetContent(col, row)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func noArena(int, int) (float64, float64) { return 0, 0 }

func TestKeysHoldWindow(t *testing.T) {
	k := NewKeys(round.ModeWaves)
	k.Apply(key('d'), t0)

	in := k.Input(2, t0.Add(keyHoldDuration/2), 0, noArena)
	if in.Players[0].MoveX != 1 {
		t.Fatalf("MoveX inside the hold window = %f, want 1", in.Players[0].MoveX)
	}
	in = k.Input(2, t0.Add(keyHoldDuration), 0, noArena)
	if in.Players[0].MoveX != 0 {
		t.Fatalf("MoveX after the hold window = %f, want 0", in.Players[0].MoveX)
	}
}

func TestKeysWavesLayout(t *testing.T) {
	k := NewKeys(round.ModeWaves)
	k.Apply(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), t0)
	k.Apply(key('/'), t0)
	k.Apply(key('w'), t0)
	k.Apply(key(' '), t0)
	k.Apply(key('x'), t0)

	in := k.Input(2, t0, 0, noArena)
	p1, p2 := in.Players[0], in.Players[1]
	if p1.MoveY != -1 || !p1.Fire || p1.MoveX != 0 {
		t.Fatalf("player 1 = %+v, want up and fire", p1)
	}
	if p2.MoveX != -1 || !p2.Fire || p2.MoveY != 0 {
		t.Fatalf("player 2 = %+v, want left and fire", p2)
	}
}

func TestKeysPursuitArrowsAndMouse(t *testing.T) {
	k := NewKeys(round.ModePursuit)
	k.Apply(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), t0)
	k.Apply(tcell.NewEventMouse(10, 4, tcell.Button1, tcell.ModNone), t0)

	toArena := func(col, row int) (float64, float64) { return float64(col * 100), float64(row * 10) }
	in := k.Input(1, t0, 0, toArena)
	p := in.Players[0]
	if p.MoveY != 1 || !p.Fire {
		t.Fatalf("player = %+v, want down and firing", p)
	}
	if in.AimX != 1000 || in.AimY != 40 {
		t.Fatalf("aim = (%f, %f), want (1000, 40)", in.AimX, in.AimY)
	}

	k.Apply(tcell.NewEventMouse(10, 4, tcell.ButtonNone, tcell.ModNone), t0)
	if in := k.Input(1, t0, 0, toArena); in.Players[0].Fire {
		t.Fatal("still firing after the button was released")
	}
}

func TestKeysOneShotRequests(t *testing.T) {
	k := NewKeys(round.ModeWaves)
	k.Apply(key('r'), t0)
	k.Apply(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), t0)

	if in := k.Input(2, t0, 0, noArena); !in.Restart {
		t.Fatal("restart not requested")
	}
	if in := k.Input(2, t0, 0, noArena); in.Restart {
		t.Fatal("restart requested twice for one press")
	}
	if !k.TakeGridToggle() || k.TakeGridToggle() {
		t.Fatal("grid toggle must be reported exactly once")
	}
	if k.Quit() {
		t.Fatal("quit without a quit key")
	}
	k.Apply(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), t0)
	if !k.Quit() {
		t.Fatal("escape did not quit")
	}
}

func TestViewportMapping(t *testing.T) {
	v := NewViewport(round.Arena{Width: 1920, Height: 1080}, 80, 25)
	if v.Rows != 24 {
		t.Fatalf("rows = %d, want 24 with the status row reserved", v.Rows)
	}
	col, row := v.CellOf(600, 900)
	if col != 25 || row != 20 {
		t.Fatalf("CellOf(600, 900) = (%d, %d), want (25, 20)", col, row)
	}
	x, y := v.ToArena(col, row)
	if c, r := v.CellOf(x, y); c != col || r != row {
		t.Fatalf("ToArena(%d, %d) = (%f, %f) maps back to (%d, %d)", col, row, x, y, c, r)
	}
	if col, row := v.CellOf(-1, -20); col != -1 || row != -1 {
		t.Fatalf("points above and left of the arena map to (%d, %d), want (-1, -1)", col, row)
	}
}

func TestDrawWavesRound(t *testing.T) {
	screen := newScreen(t, 80, 25)
	r := round.New(round.Waves{}, round.Waves{}.DefaultArena(), 1)

	Draw(screen, r.Snapshot(), r.Status(), false)

	if got := rowText(screen, 24); got != r.Status() {
		t.Fatalf("status row = %q, want %q", got, r.Status())
	}
	if ch, _, _, _ := screen.GetContent(25, 20); ch != fillRune {
		t.Fatalf("player 1 cell holds %q, want %q", ch, fillRune)
	}
	if ch, _, _, _ := screen.GetContent(54, 20); ch != fillRune {
		t.Fatalf("player 2 cell holds %q, want %q", ch, fillRune)
	}
	if ch, _, _, _ := screen.GetContent(0, 0); ch != ' ' {
		t.Fatalf("empty cell holds %q", ch)
	}
}

func TestDrawGameOverBanner(t *testing.T) {
	screen := newScreen(t, 80, 25)
	snap := round.Snapshot{
		Mode:  round.ModePursuit,
		Arena: round.Arena{Width: 1280, Height: 800},
		State: round.GameOver,
	}

	Draw(screen, snap, "Score: 30 | HP: 0", false)

	if got := strings.TrimSpace(rowText(screen, 11)); got != "GAME OVER" {
		t.Fatalf("banner row = %q, want GAME OVER", got)
	}
}

func TestFrameStepsAndQuits(t *testing.T) {
	screen := newScreen(t, 80, 25)
	r := round.New(round.Waves{}, round.Waves{}.DefaultArena(), 1)
	f := New(screen, r, Options{Logger: log.New(io.Discard)})
	startX := r.Snapshot().Players[0].X

	events := make(chan tcell.Event, 4)
	events <- key('d')
	if !f.frame(t0, events) {
		t.Fatal("frame asked to quit")
	}
	if got, want := r.Snapshot().Players[0].X, startX+round.PlayerSpeed; got != want {
		t.Fatalf("player x = %f, want %f", got, want)
	}
	if r.Wave() != 1 {
		t.Fatalf("wave = %d, want 1 after the first frame", r.Wave())
	}
	if got := rowText(screen, 24); got != r.Status() {
		t.Fatalf("status row = %q, want %q", got, r.Status())
	}

	events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	if f.frame(t0.Add(time.Second/60), events) {
		t.Fatal("escape did not end the loop")
	}
}
