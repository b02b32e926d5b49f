package engine

import "github.com/hailam/gomokuplay/internal/board"

// Perft counts the leaf positions reachable from b in exactly depth plies,
// using apply/undo. Terminal positions above the target depth count as
// leaves. This exercises move generation and the legal-mask rebuild on undo.
func Perft(b *board.Board, depth int) int64 {
	if depth == 0 || b.Terminal() {
		return 1
	}

	moves := b.LegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		b.Apply(m)
		nodes += Perft(b, depth-1)
		b.Undo(m)
	}
	return nodes
}
