package board

import "fmt"

// Move is a board coordinate: x is the column (0-14, rendered A-O) and
// y is the row (0-14, rendered 1-15).
type Move struct {
	X, Y int8
}

// NoMove represents an invalid or absent move.
var NoMove = Move{-1, -1}

// NewMove creates a move from column and row.
func NewMove(x, y int) Move {
	return Move{int8(x), int8(y)}
}

// IsValid returns true if the move lies on the board.
func (m Move) IsValid() bool {
	return m.X >= 0 && m.X < Size && m.Y >= 0 && m.Y < Size
}

// Index returns the cell index of the move (y*Size + x).
func (m Move) Index() int {
	return int(m.Y)*Size + int(m.X)
}

// MoveFromIndex creates a move from a cell index.
func MoveFromIndex(i int) Move {
	return Move{int8(i % Size), int8(i / Size)}
}

// String returns the letter-number notation of the move (e.g. "H8").
// Invalid moves render as "none".
func (m Move) String() string {
	if !m.IsValid() {
		return "none"
	}
	return fmt.Sprintf("%c%d", 'A'+m.X, m.Y+1)
}

// ParseMove parses letter-number notation (e.g. "h8", "O15") into a Move.
// The letter is case-insensitive. Anything unparseable yields NoMove.
func ParseMove(s string) Move {
	if len(s) < 2 || len(s) > 3 {
		return NoMove
	}

	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	x := int(c - 'A')

	y := 0
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return NoMove
		}
		y = y*10 + int(s[i]-'0')
	}
	y-- // rows are 1-based in notation

	m := NewMove(x, y)
	if !m.IsValid() {
		return NoMove
	}
	return m
}
