// Package board implements the 15x15 gomoku board using bitboards.
package board

import (
	"fmt"
	"strings"
)

const (
	// Size is the board edge length.
	Size = 15
	// Cells is the total number of cells.
	Cells = Size * Size
	// LegalRadius is the Chebyshev distance around played stones within
	// which empty cells count as legal moves.
	LegalRadius = 2
)

// Cell is the content of a single board cell. The two colors are
// opposite-signed so that negation switches sides.
type Cell int8

// Cell values.
const (
	Empty Cell = 0
	Black Cell = 1
	White Cell = -1
)

// Opponent returns the opposing color.
func (c Cell) Opponent() Cell {
	return -c
}

// String returns "X" for black, "O" for white and "." for empty.
func (c Cell) String() string {
	switch c {
	case Black:
		return "X"
	case White:
		return "O"
	}
	return "."
}

// Name returns the color name for display.
func (c Cell) Name() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Result is the game outcome.
type Result int

// Result values.
const (
	Ongoing Result = iota
	BlackWin
	WhiteWin
	Draw
)

// String returns a display name for the result.
func (r Result) String() string {
	switch r {
	case BlackWin:
		return "black wins"
	case WhiteWin:
		return "white wins"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

// directions are the four principal line directions.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Board holds a gomoku position: the cell array, redundant occupancy
// bitboards, the legal-move bitboard (empty cells within LegalRadius of any
// stone), the side to move, terminal status and move history.
type Board struct {
	cells    [Cells]Cell
	occupied Bitboard
	black    Bitboard
	white    Bitboard
	legal    Bitboard
	turn     Cell
	terminal bool
	result   Result
	history  []Move
}

// New creates an empty board with black to move.
func New() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset re-initializes to the empty-board state.
func (b *Board) Reset() {
	b.cells = [Cells]Cell{}
	b.occupied.Reset()
	b.black.Reset()
	b.white.Reset()
	b.legal.Reset()
	b.turn = Black
	b.terminal = false
	b.result = Ongoing
	b.history = b.history[:0]
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	c.history = make([]Move, len(b.history), cap(b.history))
	copy(c.history, b.history)
	return &c
}

// CurrentPlayer returns the side to move.
func (b *Board) CurrentPlayer() Cell {
	return b.turn
}

// Terminal returns true if the game is over.
func (b *Board) Terminal() bool {
	return b.terminal
}

// Result returns the game outcome.
func (b *Board) Result() Result {
	return b.result
}

// Winner returns the winning color, or Empty if there is none.
func (b *Board) Winner() Cell {
	switch b.result {
	case BlackWin:
		return Black
	case WhiteWin:
		return White
	}
	return Empty
}

// Cell returns the content of the cell at (x, y).
func (b *Board) Cell(x, y int) Cell {
	return b.cells[y*Size+x]
}

// History returns the moves played so far, in order.
func (b *Board) History() []Move {
	return b.history
}

// MoveCount returns the number of stones on the board.
func (b *Board) MoveCount() int {
	return len(b.history)
}

// Legal reports whether (x, y) is a legal move. On an empty board only the
// center cell is legal; afterwards a cell must be empty and within
// LegalRadius of a played stone.
func (b *Board) Legal(x, y int) bool {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return false
	}
	if len(b.history) == 0 {
		return x == Size/2 && y == Size/2
	}
	i := y*Size + x
	return b.legal.IsSet(i) && b.cells[i] == Empty
}

// LegalMoves enumerates the legal moves. On an empty board this is exactly
// the center cell.
func (b *Board) LegalMoves() []Move {
	if len(b.history) == 0 {
		return []Move{{Size / 2, Size / 2}}
	}
	moves := make([]Move, 0, b.legal.PopCount())
	b.legal.ForEach(func(i int) {
		moves = append(moves, MoveFromIndex(i))
	})
	return moves
}

// Apply places the current side's stone at m. The move must target an empty
// in-bounds cell; callers are expected to have checked Legal. The side to
// move flips even when the move ends the game.
func (b *Board) Apply(m Move) {
	i := m.Index()

	b.cells[i] = b.turn
	b.occupied.Set(i)
	if b.turn == Black {
		b.black.Set(i)
	} else {
		b.white.Set(i)
	}

	b.dilateLegal(int(m.X), int(m.Y))
	b.legal.Clear(i)
	b.history = append(b.history, m)

	if b.winsAt(int(m.X), int(m.Y), b.turn) {
		b.terminal = true
		if b.turn == Black {
			b.result = BlackWin
		} else {
			b.result = WhiteWin
		}
	} else if b.legal.Empty() {
		b.terminal = true
		b.result = Draw
	}

	b.turn = b.turn.Opponent()
}

// Undo reverses the most recent move, which must equal m. The legal mask is
// rebuilt from the remaining history; search copies boards instead of
// undoing, so the rebuild cost only matters for perft and takebacks.
func (b *Board) Undo(m Move) {
	i := m.Index()

	b.turn = b.turn.Opponent()
	b.cells[i] = Empty
	b.occupied.Clear(i)
	b.black.Clear(i)
	b.white.Clear(i)
	b.terminal = false
	b.result = Ongoing
	b.history = b.history[:len(b.history)-1]

	b.legal.Reset()
	for _, h := range b.history {
		b.dilateLegal(int(h.X), int(h.Y))
	}
}

// dilateLegal marks every empty in-bounds cell within LegalRadius of (x, y)
// as legal.
func (b *Board) dilateLegal(x, y int) {
	for dy := -LegalRadius; dy <= LegalRadius; dy++ {
		ny := y + dy
		if ny < 0 || ny >= Size {
			continue
		}
		for dx := -LegalRadius; dx <= LegalRadius; dx++ {
			nx := x + dx
			if nx < 0 || nx >= Size {
				continue
			}
			j := ny*Size + nx
			if b.cells[j] == Empty {
				b.legal.Set(j)
			}
		}
	}
}

// winsAt reports whether the stone just placed at (x, y) completes a run of
// five or more. Counting both directions of the four principal lines looks
// at no more than 32 cells.
func (b *Board) winsAt(x, y int, p Cell) bool {
	for _, d := range directions {
		run := 1 + b.countRun(x, y, d[0], d[1], p) + b.countRun(x, y, -d[0], -d[1], p)
		if run >= 5 {
			return true
		}
	}
	return false
}

// countRun counts consecutive p-stones strictly beyond (x, y) along (dx, dy).
func (b *Board) countRun(x, y, dx, dy int, p Cell) int {
	n := 0
	for {
		x += dx
		y += dy
		if x < 0 || x >= Size || y < 0 || y >= Size || b.cells[y*Size+x] != p {
			return n
		}
		n++
	}
}

// String renders the board grid with column letters A-O and 1-indexed rows,
// using X, O and . for black, white and empty.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for y := Size - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d ", y+1)
		for x := 0; x < Size; x++ {
			sb.WriteByte(' ')
			sb.WriteString(b.cells[y*Size+x].String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for x := 0; x < Size; x++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('A' + x))
	}
	sb.WriteByte('\n')
	return sb.String()
}
