package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/arena-games/arena/round"
)

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.ColorBlack)
	gridStyle       = backgroundStyle.Foreground(tcell.NewRGBColor(40, 40, 70))
	statusStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(30, 30, 60))
	bannerStyle     = backgroundStyle.Foreground(tcell.NewRGBColor(0xe7, 0x4c, 0x3c)).Bold(true)
	bulletColor     = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
	enemyColor      = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}
)

const (
	fillRune   = '█'
	bulletRune = '•'
	gridRune   = '·'
	gridCells  = 8
)

// Viewport maps the arena onto the cell grid above the status row
type Viewport struct {
	Arena      round.Arena
	Cols, Rows int
}

// NewViewport fits the arena into a screen of cols x rows, keeping the last
// row for the status line
func NewViewport(a round.Arena, cols, rows int) Viewport {
	return Viewport{Arena: a, Cols: max(cols, 1), Rows: max(rows-1, 1)}
}

// CellOf returns the cell containing an arena point
func (v Viewport) CellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / v.Arena.Width * float64(v.Cols))), int(math.Floor(y / v.Arena.Height * float64(v.Rows)))
}

// ToArena returns the arena point at the centre of a cell
func (v Viewport) ToArena(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * v.Arena.Width / float64(v.Cols),
		(float64(row) + 0.5) * v.Arena.Height / float64(v.Rows)
}

func (v Viewport) inside(col, row int) bool {
	return col >= 0 && col < v.Cols && row >= 0 && row < v.Rows
}

// Draw renders a snapshot and its status line. The caller shows the screen.
func Draw(screen tcell.Screen, snap round.Snapshot, status string, showGrid bool) {
	cols, rows := screen.Size()
	v := NewViewport(snap.Arena, cols, rows)

	screen.Fill(' ', backgroundStyle)
	if showGrid {
		for row := 0; row < v.Rows; row += gridCells / 2 {
			for col := 0; col < v.Cols; col += gridCells {
				screen.SetContent(col, row, gridRune, nil, gridStyle)
			}
		}
	}

	for _, e := range snap.Enemies {
		drawDisc(screen, v, e, fillRune, styleFor(enemyColor))
	}
	for _, b := range snap.Bullets {
		drawDisc(screen, v, b, bulletRune, styleFor(bulletColor))
	}
	for _, p := range snap.Players {
		drawDisc(screen, v, p, fillRune, styleFor(p.Color))
	}

	drawText(screen, 0, rows-1, cols, status, statusStyle)

	if snap.State == round.GameOver {
		drawCentered(screen, v.Rows/2-1, cols, "GAME OVER", bannerStyle)
		drawCentered(screen, v.Rows/2+1, cols, "press R to restart", backgroundStyle.Foreground(tcell.ColorWhite))
	}
}

func styleFor(c color.RGBA) tcell.Style {
	return backgroundStyle.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// drawDisc fills every cell whose centre lies inside the circle, and always
// the cell holding the centre, so small entities stay visible
func drawDisc(screen tcell.Screen, v Viewport, e round.Entity, r rune, style tcell.Style) {
	minCol, minRow := v.CellOf(e.X-e.Radius, e.Y-e.Radius)
	maxCol, maxRow := v.CellOf(e.X+e.Radius, e.Y+e.Radius)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if !v.inside(col, row) {
				continue
			}
			x, y := v.ToArena(col, row)
			dx, dy := x-e.X, y-e.Y
			if dx*dx+dy*dy <= e.Radius*e.Radius {
				screen.SetContent(col, row, r, nil, style)
			}
		}
	}
	if col, row := v.CellOf(e.X, e.Y); v.inside(col, row) {
		screen.SetContent(col, row, r, nil, style)
	}
}

func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		if col >= x+width {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < x+width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}

func drawCentered(screen tcell.Screen, y, width int, s string, style tcell.Style) {
	n := len([]rune(s))
	x := max((width-n)/2, 0)
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
