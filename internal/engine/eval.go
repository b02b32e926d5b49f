package engine

import (
	"sort"

	"github.com/hailam/gomokuplay/internal/board"
)

// Pattern scores. A line score at or above ScoreWin means the move completes
// five in a row.
const (
	ScoreWin         = 1000000
	ScoreOpenFour    = 100000
	ScoreClosedFour  = 10000
	ScoreOpenThree   = 5000
	ScoreClosedThree = 500
	ScoreOpenTwo     = 200
	ScoreClosedTwo   = 20

	neighborEmptyBonus = 10
	neighborStoneBonus = 10
)

var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// ScoredMove is a candidate move with its heuristic score. Winning means
// some line completes five for the side to move; Blocking means some
// opponent line at this cell scores at least an open four.
type ScoredMove struct {
	Move     board.Move
	Score    int
	Winning  bool
	Blocking bool
}

// Better reports whether s should sort before o: winning moves first, then
// blocking moves, then higher scores.
func (s ScoredMove) Better(o ScoredMove) bool {
	if s.Winning != o.Winning {
		return s.Winning
	}
	if s.Blocking != o.Blocking {
		return s.Blocking
	}
	return s.Score > o.Score
}

// lineScore scores placing a p-stone at m along one direction, without
// mutating the board. It counts the consecutive p-runs touching the cell,
// whether each end is open, and the runs sitting one gap beyond each open
// end, then maps the shape onto the pattern table.
func lineScore(b *board.Board, m board.Move, p board.Cell, dx, dy int) int {
	x, y := int(m.X), int(m.Y)

	fwd := countRun(b, x, y, dx, dy, p)
	bwd := countRun(b, x, y, -dx, -dy, p)
	total := fwd + bwd
	if total >= 4 {
		return ScoreWin
	}

	fwdOpen := isEmptyAt(b, x+(fwd+1)*dx, y+(fwd+1)*dy)
	bwdOpen := isEmptyAt(b, x-(bwd+1)*dx, y-(bwd+1)*dy)
	openness := 0
	if fwdOpen {
		openness++
	}
	if bwdOpen {
		openness++
	}

	gapFwd, gapBwd := 0, 0
	if fwdOpen {
		gapFwd = countRun(b, x+(fwd+1)*dx, y+(fwd+1)*dy, dx, dy, p)
	}
	if bwdOpen {
		gapBwd = countRun(b, x-(bwd+1)*dx, y-(bwd+1)*dy, -dx, -dy, p)
	}

	switch total {
	case 3:
		if openness == 2 {
			return ScoreOpenFour
		}
		if openness == 1 {
			return ScoreClosedFour
		}
	case 2:
		if (gapFwd >= 1 || gapBwd >= 1) && openness >= 1 {
			return ScoreOpenThree
		}
		if openness == 2 {
			return ScoreOpenThree
		}
		if openness == 1 {
			return ScoreClosedThree
		}
	case 1:
		// gap of two or more covers the X_XX and XX_X shapes
		if gapFwd >= 2 || gapBwd >= 2 {
			return ScoreClosedThree
		}
		if (gapFwd >= 1 || gapBwd >= 1) && openness >= 1 {
			return ScoreOpenTwo
		}
		if openness == 2 {
			return ScoreOpenTwo
		}
		if openness == 1 {
			return ScoreClosedTwo
		}
	}
	return 0
}

// countRun counts consecutive p-stones starting at (x+dx, y+dy) along
// (dx, dy).
func countRun(b *board.Board, x, y, dx, dy int, p board.Cell) int {
	n := 0
	for {
		x += dx
		y += dy
		if x < 0 || x >= board.Size || y < 0 || y >= board.Size || b.Cell(x, y) != p {
			return n
		}
		n++
	}
}

func isEmptyAt(b *board.Board, x, y int) bool {
	return x >= 0 && x < board.Size && y >= 0 && y < board.Size && b.Cell(x, y) == board.Empty
}

// neighborhoodBonus sums the locality bonuses over the 5x5 window around m:
// every empty cell adds a flat bonus, every stone of either color adds a
// bonus weighted by 3 minus its Chebyshev distance.
func neighborhoodBonus(b *board.Board, m board.Move) int {
	bonus := 0
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := int(m.X)+dx, int(m.Y)+dy
			if x < 0 || x >= board.Size || y < 0 || y >= board.Size {
				continue
			}
			if b.Cell(x, y) == board.Empty {
				bonus += neighborEmptyBonus
			} else {
				cheb := dx
				if cheb < 0 {
					cheb = -cheb
				}
				if dy > cheb {
					cheb = dy
				} else if -dy > cheb {
					cheb = -dy
				}
				bonus += neighborStoneBonus * (3 - cheb)
			}
		}
	}
	return bonus
}

// EvaluateMove scores a candidate move for the side to move: its own line
// patterns plus the opponent's patterns through the same cell weighted 1.1x,
// plus the neighborhood bonus.
func EvaluateMove(b *board.Board, m board.Move) int {
	p := b.CurrentPlayer()
	o := p.Opponent()

	offensive, defensive := 0, 0
	for _, d := range directions {
		offensive += lineScore(b, m, p, d[0], d[1])
		defensive += lineScore(b, m, o, d[0], d[1])
	}
	return offensive + defensive*11/10 + neighborhoodBonus(b, m)
}

// ScoreMove scores a candidate move and flags immediate wins and urgent
// blocks.
func ScoreMove(b *board.Board, m board.Move) ScoredMove {
	p := b.CurrentPlayer()
	o := p.Opponent()

	offensive, defensive := 0, 0
	winning, blocking := false, false
	for _, d := range directions {
		os := lineScore(b, m, p, d[0], d[1])
		ds := lineScore(b, m, o, d[0], d[1])
		if os >= ScoreWin {
			winning = true
		}
		if ds >= ScoreOpenFour {
			blocking = true
		}
		offensive += os
		defensive += ds
	}

	return ScoredMove{
		Move:     m,
		Score:    offensive + defensive*11/10 + neighborhoodBonus(b, m),
		Winning:  winning,
		Blocking: blocking,
	}
}

// ScoredMoves scores every legal move and returns them best first.
func ScoredMoves(b *board.Board) []ScoredMove {
	legal := b.LegalMoves()
	scored := make([]ScoredMove, len(legal))
	for i, m := range legal {
		scored[i] = ScoreMove(b, m)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Better(scored[j])
	})
	return scored
}

// FindWinningMove returns a legal move that immediately completes five for
// the side to move, or NoMove.
func FindWinningMove(b *board.Board) board.Move {
	return findFive(b, b.CurrentPlayer())
}

// FindBlockingMove returns a move that stops an imminent opponent win:
// first any cell where the opponent would complete five, otherwise the cell
// carrying the opponent's strongest line if that line is at least an open
// four. Returns NoMove when no threat of that size exists.
func FindBlockingMove(b *board.Board) board.Move {
	o := b.CurrentPlayer().Opponent()

	if m := findFive(b, o); m.IsValid() {
		return m
	}

	best := board.NoMove
	bestScore := 0
	for _, m := range b.LegalMoves() {
		for _, d := range directions {
			if s := lineScore(b, m, o, d[0], d[1]); s > bestScore {
				bestScore = s
				best = m
			}
		}
	}
	if bestScore >= ScoreOpenFour {
		return best
	}
	return board.NoMove
}

// findFive returns the first legal move where placing a p-stone completes a
// run of five, scanning in legal-move order.
func findFive(b *board.Board, p board.Cell) board.Move {
	for _, m := range b.LegalMoves() {
		x, y := int(m.X), int(m.Y)
		for _, d := range directions {
			if countRun(b, x, y, d[0], d[1], p)+countRun(b, x, y, -d[0], -d[1], p) >= 4 {
				return m
			}
		}
	}
	return board.NoMove
}
