package board

import (
	"strings"
	"testing"
)

// applyAll applies space-separated letter-number moves directly, bypassing
// radius legality the way scripted test positions require.
func applyAll(t *testing.T, b *Board, moves string) {
	t.Helper()
	for _, text := range strings.Fields(moves) {
		m := ParseMove(text)
		if !m.IsValid() {
			t.Fatalf("bad move text %q", text)
		}
		b.Apply(m)
	}
}

// checkInvariants verifies the universal board invariants.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()

	for i := 0; i < Cells; i++ {
		switch {
		case b.occupied.IsSet(i):
			if b.cells[i] == Empty {
				t.Fatalf("cell %d occupied but empty", i)
			}
			if b.black.IsSet(i) == b.white.IsSet(i) {
				t.Fatalf("cell %d not exactly one color mask", i)
			}
			if (b.cells[i] == Black) != b.black.IsSet(i) {
				t.Fatalf("cell %d color mask mismatch", i)
			}
			if b.legal.IsSet(i) {
				t.Fatalf("cell %d both legal and occupied", i)
			}
		default:
			if b.cells[i] != Empty {
				t.Fatalf("cell %d has stone but occupancy bit clear", i)
			}
			if b.black.IsSet(i) || b.white.IsSet(i) {
				t.Fatalf("cell %d color mask set on empty cell", i)
			}
		}
	}

	if got := b.occupied.PopCount(); got != len(b.history) {
		t.Fatalf("popcount %d != history %d", got, len(b.history))
	}
	if b.MoveCount() != len(b.history) {
		t.Fatalf("MoveCount mismatch")
	}

	wantTurn := Black
	if len(b.history)%2 == 1 {
		wantTurn = White
	}
	if b.turn != wantTurn {
		t.Fatalf("turn = %v, want %v after %d moves", b.turn, wantTurn, len(b.history))
	}
}

func TestFirstMoveCenter(t *testing.T) {
	b := New()

	moves := b.LegalMoves()
	if len(moves) != 1 || moves[0] != (Move{7, 7}) {
		t.Fatalf("LegalMoves on empty board = %v, want [H8]", moves)
	}
	if !b.Legal(7, 7) {
		t.Error("center must be legal on empty board")
	}
	if b.Legal(0, 0) || b.Legal(7, 8) {
		t.Error("non-center cells must be illegal on empty board")
	}
}

func TestLegalRadius(t *testing.T) {
	b := New()
	b.Apply(Move{7, 7}) // H8
	checkInvariants(t, b)

	cases := []struct {
		text  string
		legal bool
	}{
		{"F6", true},
		{"J10", true},
		{"G7", true},
		{"K8", false},
		{"E8", false},
		{"H8", false}, // occupied
	}
	for _, tc := range cases {
		m := ParseMove(tc.text)
		if got := b.Legal(int(m.X), int(m.Y)); got != tc.legal {
			t.Errorf("Legal(%s) = %v, want %v", tc.text, got, tc.legal)
		}
	}

	if got := len(b.LegalMoves()); got != 24 {
		t.Errorf("legal move count = %d, want 24", got)
	}
}

func TestHorizontalWin(t *testing.T) {
	b := New()
	applyAll(t, b, "D8 D9 E8 E9 F8 F9 G8 G9 H8")
	checkInvariants(t, b)

	if !b.Terminal() {
		t.Fatal("board must be terminal")
	}
	if b.Winner() != Black || b.Result() != BlackWin {
		t.Errorf("winner = %v result = %v, want black win", b.Winner(), b.Result())
	}
	// side still flips after the winning stone
	if b.CurrentPlayer() != White {
		t.Errorf("current player = %v, want white", b.CurrentPlayer())
	}
}

func TestVerticalWin(t *testing.T) {
	b := New()
	applyAll(t, b, "H4 I4 H5 I5 H6 I6 H7 I7 H8")

	if !b.Terminal() || b.Winner() != Black {
		t.Errorf("terminal = %v winner = %v, want black win", b.Terminal(), b.Winner())
	}
}

func TestDiagonalWin(t *testing.T) {
	b := New()
	applyAll(t, b, "D4 D5 E5 E6 F6 F7 G7 G8 H8")

	if !b.Terminal() || b.Winner() != Black {
		t.Errorf("terminal = %v winner = %v, want black win", b.Terminal(), b.Winner())
	}
}

func TestNoFalseWin(t *testing.T) {
	b := New()
	applyAll(t, b, "D8 D9 E8 E9 F8 F9 G8")

	if b.Terminal() {
		t.Error("four in a row must not be terminal")
	}
	if b.Winner() != Empty {
		t.Errorf("winner = %v, want none", b.Winner())
	}
}

func TestUndoRoundTrip(t *testing.T) {
	seqs := []string{
		"H8",
		"H8 I9 J10 G7",
		"D8 D9 E8 E9 F8 F9 G8 G9 H8", // ends terminal
	}

	for _, seq := range seqs {
		b := New()
		applyAll(t, b, seq)

		hist := append([]Move(nil), b.History()...)
		for i := len(hist) - 1; i >= 0; i-- {
			b.Undo(hist[i])
			checkInvariants(t, b)
		}

		fresh := New()
		if b.cells != fresh.cells {
			t.Errorf("%q: cells differ after full undo", seq)
		}
		if b.occupied != fresh.occupied || b.black != fresh.black ||
			b.white != fresh.white || b.legal != fresh.legal {
			t.Errorf("%q: masks differ after full undo", seq)
		}
		if b.turn != Black || b.terminal || b.result != Ongoing || len(b.history) != 0 {
			t.Errorf("%q: state differs after full undo", seq)
		}
	}
}

func TestUndoRestoresLegalMask(t *testing.T) {
	b := New()
	applyAll(t, b, "H8 I9 J10")

	want := len(b.LegalMoves())
	b.Apply(Move{11, 11}) // L12
	b.Undo(Move{11, 11})

	if got := len(b.LegalMoves()); got != want {
		t.Errorf("legal move count after undo = %d, want %d", got, want)
	}
	checkInvariants(t, b)
}

func TestRenderDeterministic(t *testing.T) {
	a, b := New(), New()
	applyAll(t, a, "H8 I9 J10")
	applyAll(t, b, "H8 I9 J10")

	if a.String() != b.String() {
		t.Error("identical cells must render identically")
	}

	s := New().String()
	// the column header's letter O is the only O on an empty board
	if strings.Contains(s, "X") || strings.Count(s, "O") != 1 {
		t.Error("empty board render must contain no stones")
	}
	if !strings.Contains(s, "A B C D E F G H I J K L M N O") {
		t.Error("render must label columns A-O")
	}
}

func TestReset(t *testing.T) {
	b := New()
	applyAll(t, b, "D8 D9 E8 E9 F8 F9 G8 G9 H8")
	b.Reset()

	checkInvariants(t, b)
	if b.Terminal() || b.MoveCount() != 0 || b.CurrentPlayer() != Black {
		t.Error("reset must restore the empty-board state")
	}
}

func TestParseMove(t *testing.T) {
	cases := []struct {
		text string
		want Move
	}{
		{"H8", Move{7, 7}},
		{"h8", Move{7, 7}},
		{"A1", Move{0, 0}},
		{"O15", Move{14, 14}},
		{"a15", Move{0, 14}},
		{"P1", NoMove},
		{"A0", NoMove},
		{"A16", NoMove},
		{"", NoMove},
		{"8H", NoMove},
		{"none", NoMove},
	}
	for _, tc := range cases {
		if got := ParseMove(tc.text); got != tc.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestMoveString(t *testing.T) {
	if got := (Move{7, 7}).String(); got != "H8" {
		t.Errorf("H8 string = %q", got)
	}
	if got := (Move{14, 14}).String(); got != "O15" {
		t.Errorf("O15 string = %q", got)
	}
	if got := NoMove.String(); got != "none" {
		t.Errorf("NoMove string = %q, want none", got)
	}
}
