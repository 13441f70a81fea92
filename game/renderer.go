package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/arena-games/arena/round"
)

// Palette
var (
	backgroundColor = color.RGBA{20, 20, 40, 255}
	gridColor       = color.RGBA{40, 40, 70, 255}
	bulletColor     = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
	enemyColor      = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}
	textColor       = color.RGBA{255, 255, 255, 255}
	buttonColor     = color.RGBA{60, 60, 100, 255}
	bannerColor     = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}
)

const (
	gridSpacing  = 64
	barrelLength = 32.0
	barrelWidth  = 6.0
	textScale    = 2.0
)

// RestartButton is the on-screen restart control, in arena pixels
func RestartButton(a round.Arena) image.Rectangle {
	w, h := 140, 40
	x := int(a.Width) - w - 20
	return image.Rect(x, 20, x+w, 20+h)
}

// Renderer draws a round snapshot
type Renderer struct {
	face *text.GoXFace
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

// Render draws the snapshot with the status line on top
func (r *Renderer) Render(screen *ebiten.Image, snap round.Snapshot, status string, showGrid bool) {
	screen.Fill(backgroundColor)
	if showGrid {
		r.drawGrid(screen, snap.Arena)
	}

	for _, e := range snap.Enemies {
		r.drawCircle(screen, e, enemyColor)
	}
	for _, b := range snap.Bullets {
		r.drawCircle(screen, b, bulletColor)
	}
	for _, p := range snap.Players {
		r.drawCircle(screen, p, p.Color)
		if snap.Mode == round.ModePursuit {
			r.drawBarrel(screen, p)
		}
	}

	r.drawText(screen, status, 20, 20, textScale, textColor, text.AlignStart)
	r.drawRestartButton(screen, snap.Arena)

	if snap.State == round.GameOver {
		cx, cy := snap.Arena.Width/2, snap.Arena.Height/2
		r.drawText(screen, "GAME OVER", cx, cy-40, 6, bannerColor, text.AlignCenter)
		r.drawText(screen, "press R or click Restart", cx, cy+50, textScale, textColor, text.AlignCenter)
	}
}

func (r *Renderer) drawCircle(screen *ebiten.Image, e round.Entity, clr color.Color) {
	radius := e.Radius
	if radius < 1 {
		radius = 1
	}
	vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), float32(radius), clr, true)
}

// drawBarrel draws the gun from the player centre toward the aim point
func (r *Renderer) drawBarrel(screen *ebiten.Image, p round.Entity) {
	angle := math.Atan2(p.AimY-p.Y, p.AimX-p.X)
	if p.AimX == p.X && p.AimY == p.Y {
		angle = 0
	}
	endX := p.X + math.Cos(angle)*barrelLength
	endY := p.Y + math.Sin(angle)*barrelLength
	vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(endX), float32(endY), barrelWidth, p.Color, true)
}

func (r *Renderer) drawGrid(screen *ebiten.Image, a round.Arena) {
	for x := 0.0; x <= a.Width; x += gridSpacing {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(a.Height), 1, gridColor, false)
	}
	for y := 0.0; y <= a.Height; y += gridSpacing {
		vector.StrokeLine(screen, 0, float32(y), float32(a.Width), float32(y), 1, gridColor, false)
	}
}

func (r *Renderer) drawRestartButton(screen *ebiten.Image, a round.Arena) {
	b := RestartButton(a)
	x, y := float32(b.Min.X), float32(b.Min.Y)
	w, h := float32(b.Dx()), float32(b.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, buttonColor, false)
	vector.StrokeRect(screen, x, y, w, h, 2, textColor, false)

	_, th := text.Measure("Restart", r.face, 0)
	r.drawText(screen, "Restart", float64(b.Min.X)+float64(b.Dx())/2, float64(b.Min.Y)+(float64(b.Dy())-th*textScale)/2, textScale, textColor, text.AlignCenter)
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}
