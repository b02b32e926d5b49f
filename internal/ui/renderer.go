package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/gomokuplay/internal/board"
)

// Layout constants.
const (
	ScreenWidth  = 920
	ScreenHeight = 640
	BoardPx      = 640
	Margin       = 40
	CellPx       = (BoardPx - 2*Margin) / (board.Size - 1)
	PanelX       = BoardPx + 20
)

// Theme defines the color scheme for the goban.
type Theme struct {
	Board      color.RGBA
	Line       color.RGBA
	BlackStone color.RGBA
	WhiteStone color.RGBA
	LastMove   color.RGBA
	Background color.RGBA
	Text       color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Board:      color.RGBA{214, 172, 112, 255}, // kaya wood
		Line:       color.RGBA{60, 40, 20, 255},
		BlackStone: color.RGBA{25, 25, 25, 255},
		WhiteStone: color.RGBA{240, 240, 235, 255},
		LastMove:   color.RGBA{220, 60, 50, 255},
		Background: color.RGBA{40, 44, 52, 255},
		Text:       color.RGBA{220, 220, 220, 255},
	}
}

// starPoints are the traditional goban marker intersections.
var starPoints = [5]board.Move{
	{3, 3}, {11, 3}, {7, 7}, {3, 11}, {11, 11},
}

// Renderer draws the goban and the side panel.
type Renderer struct {
	theme *Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{theme: DefaultTheme()}
}

// moveToScreen returns the pixel center of an intersection. Row 1 sits at
// the bottom edge, matching the text rendering.
func moveToScreen(m board.Move) (float32, float32) {
	x := float32(Margin + int(m.X)*CellPx)
	y := float32(Margin + (board.Size-1-int(m.Y))*CellPx)
	return x, y
}

// ScreenToMove maps a pixel position onto the nearest intersection, or
// NoMove if the position is outside the grid.
func ScreenToMove(px, py int) board.Move {
	x := (px - Margin + CellPx/2) / CellPx
	y := board.Size - 1 - (py-Margin+CellPx/2)/CellPx
	m := board.NewMove(x, y)
	if !m.IsValid() {
		return board.NoMove
	}
	return m
}

// DrawBoard draws the wooden board, grid lines, coordinates and star points.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	screen.Fill(r.theme.Background)
	vector.DrawFilledRect(screen, 0, 0, BoardPx, BoardPx, r.theme.Board, false)

	first := float32(Margin)
	last := float32(Margin + (board.Size-1)*CellPx)
	for i := 0; i < board.Size; i++ {
		p := float32(Margin + i*CellPx)
		vector.StrokeLine(screen, first, p, last, p, 1, r.theme.Line, true)
		vector.StrokeLine(screen, p, first, p, last, 1, r.theme.Line, true)
	}

	for _, sp := range starPoints {
		cx, cy := moveToScreen(sp)
		vector.DrawFilledCircle(screen, cx, cy, 3.5, r.theme.Line, true)
	}

	if regularFace == nil {
		return
	}
	for i := 0; i < board.Size; i++ {
		col, _ := moveToScreen(board.NewMove(i, 0))
		r.drawText(screen, fmt.Sprintf("%c", 'A'+i), float64(col)-4, float64(last)+12, regularFace)

		_, row := moveToScreen(board.NewMove(0, i))
		r.drawText(screen, fmt.Sprintf("%d", i+1), 8, float64(row)-8, regularFace)
	}
}

// DrawStones draws every stone and marks the last move.
func (r *Renderer) DrawStones(screen *ebiten.Image, b *board.Board) {
	radius := float32(CellPx) * 0.45

	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			c := b.Cell(x, y)
			if c == board.Empty {
				continue
			}
			cx, cy := moveToScreen(board.NewMove(x, y))
			if c == board.Black {
				vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.BlackStone, true)
			} else {
				vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.WhiteStone, true)
				vector.StrokeCircle(screen, cx, cy, radius, 1, r.theme.BlackStone, true)
			}
		}
	}

	hist := b.History()
	if len(hist) > 0 {
		cx, cy := moveToScreen(hist[len(hist)-1])
		vector.DrawFilledCircle(screen, cx, cy, 4, r.theme.LastMove, true)
	}
}

// DrawPanel draws the status panel to the right of the board.
func (r *Renderer) DrawPanel(screen *ebiten.Image, lines []string) {
	if regularFace == nil {
		return
	}
	y := 40.0
	for i, line := range lines {
		face := text.Face(regularFace)
		if i == 0 && boldFace != nil {
			face = boldFace
		}
		r.drawText(screen, line, PanelX, y, face)
		y += 26
	}
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y float64, face text.Face) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(r.theme.Text)
	text.Draw(screen, s, face, op)
}
