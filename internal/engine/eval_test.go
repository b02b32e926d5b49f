package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/gomokuplay/internal/board"
)

// position applies space-separated letter-number moves directly, bypassing
// radius legality so scripted positions can place stones anywhere.
func position(t *testing.T, moves string) *board.Board {
	t.Helper()
	b := board.New()
	for _, text := range strings.Fields(moves) {
		m := board.ParseMove(text)
		require.True(t, m.IsValid(), "bad move text %q", text)
		b.Apply(m)
	}
	return b
}

func TestFindWinningMoveFourInARow(t *testing.T) {
	// black F8-I8, black to move: E8 or J8 completes five
	b := position(t, "F8 F9 G8 G9 H8 H9 I8 I9")
	require.Equal(t, board.Black, b.CurrentPlayer())

	m := FindWinningMove(b)
	assert.Contains(t, []board.Move{board.ParseMove("E8"), board.ParseMove("J8")}, m)
}

func TestFindWinningMoveNone(t *testing.T) {
	b := position(t, "D8 D9 E8 E9 F8 F9 G8")
	require.Equal(t, board.White, b.CurrentPlayer())

	assert.Equal(t, board.NoMove, FindWinningMove(b))
}

func TestFindBlockingMoveOpenFour(t *testing.T) {
	// black has the open four D8-G8; white must take C8 or H8
	b := position(t, "D8 D9 E8 E9 F8 F9 G8")
	require.Equal(t, board.White, b.CurrentPlayer())

	m := FindBlockingMove(b)
	assert.Contains(t, []board.Move{board.ParseMove("C8"), board.ParseMove("H8")}, m)
}

func TestFindBlockingMoveOpenThree(t *testing.T) {
	// black has only an open three; the second pass still blocks an end
	b := position(t, "D8 N14 E8 N13 F8")
	require.Equal(t, board.White, b.CurrentPlayer())

	m := FindBlockingMove(b)
	assert.Contains(t, []board.Move{board.ParseMove("C8"), board.ParseMove("G8")}, m)
}

func TestFindBlockingMoveNoThreat(t *testing.T) {
	b := position(t, "H8 I9 J10")
	assert.Equal(t, board.NoMove, FindBlockingMove(b))
}

func TestScoreMoveWinningFlag(t *testing.T) {
	b := position(t, "D8 D9 E8 E9 F8 F9 G8 G9")
	require.Equal(t, board.Black, b.CurrentPlayer())

	win := ScoreMove(b, board.ParseMove("H8"))
	assert.True(t, win.Winning, "H8 completes five for black")
	assert.GreaterOrEqual(t, win.Score, ScoreWin)

	quiet := ScoreMove(b, board.ParseMove("H12"))
	assert.False(t, quiet.Winning)
	assert.False(t, quiet.Winning && quiet.Blocking)
}

func TestScoreMoveBlockingFlag(t *testing.T) {
	// white to move against the black open four: H8 carries a defensive
	// line worth at least an open four
	b := position(t, "D8 D9 E8 E9 F8 F9 G8")
	require.Equal(t, board.White, b.CurrentPlayer())

	sm := ScoreMove(b, board.ParseMove("H8"))
	assert.True(t, sm.Blocking)
}

func TestEvaluateMoveOpenPatterns(t *testing.T) {
	// black G7-H8 on the long diagonal; F6 extends to an open three
	b := position(t, "H8 A1 G7 B1")
	require.Equal(t, board.Black, b.CurrentPlayer())

	score := EvaluateMove(b, board.ParseMove("F6"))
	assert.GreaterOrEqual(t, score, ScoreOpenThree)
	assert.Less(t, score, ScoreClosedFour)
}

func TestLineScoreGappedShapes(t *testing.T) {
	// black H8 and J8, K8 with the gap at I8: placing G8 sees the XX_X
	// shape and scores a closed three on the row
	b := position(t, "H8 A1 J8 B1 K8 C1")
	require.Equal(t, board.Black, b.CurrentPlayer())

	got := lineScore(b, board.ParseMove("G8"), board.Black, 1, 0)
	assert.Equal(t, ScoreClosedThree, got)
}

func TestLineScoreWin(t *testing.T) {
	b := position(t, "D8 D9 E8 E9 F8 F9 G8 G9")
	got := lineScore(b, board.ParseMove("H8"), board.Black, 1, 0)
	assert.Equal(t, ScoreWin, got)
}

func TestScoredMovesSorted(t *testing.T) {
	b := position(t, "H8 I9 G7 J10 F6")
	scored := ScoredMoves(b)
	require.NotEmpty(t, scored)
	require.Len(t, scored, len(b.LegalMoves()))

	for i := 1; i < len(scored); i++ {
		assert.False(t, scored[i].Better(scored[i-1]),
			"scored[%d] ranks above scored[%d]", i, i-1)
	}
}

func TestScoredMovesWinningFirst(t *testing.T) {
	b := position(t, "F8 F9 G8 G9 H8 H9 I8 I9")
	scored := ScoredMoves(b)
	require.NotEmpty(t, scored)

	assert.True(t, scored[0].Winning, "winning move must sort first")
}
