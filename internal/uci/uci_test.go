package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
)

func newTestUCI() (*UCI, *bytes.Buffer) {
	cfg := engine.DefaultConfig()
	cfg.Seed = 42
	out := &bytes.Buffer{}
	return &UCI{
		engine: engine.NewEngine(cfg),
		board:  board.New(),
		out:    out,
	}, out
}

func run(t *testing.T, script string) string {
	t.Helper()
	u, out := newTestUCI()
	u.Run(strings.NewReader(script))
	return out.String()
}

func TestHandshake(t *testing.T) {
	got := run(t, "uci\nisready\nquit\n")

	for _, want := range []string{"id name GomokuPlay", "uciok", "readyok"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPositionAndDisplay(t *testing.T) {
	got := run(t, "position startpos moves h8 i9\nd\nquit\n")

	if !strings.Contains(got, "Side to move: black") {
		t.Errorf("expected black to move after two stones:\n%s", got)
	}
	if !strings.Contains(got, "Moves played: 2") {
		t.Errorf("expected two moves played:\n%s", got)
	}
}

func TestPositionRejectsIllegalTail(t *testing.T) {
	// A1 is outside the legal radius of H8; it and everything after drop
	got := run(t, "position startpos moves h8 a1 i9\nd\nquit\n")

	if !strings.Contains(got, "Moves played: 1") {
		t.Errorf("expected the illegal tail to be dropped:\n%s", got)
	}
}

func TestGoMovetime(t *testing.T) {
	got := run(t, "position startpos moves h8 i9\ngo movetime 100\nquit\n")

	if !strings.Contains(got, "bestmove ") {
		t.Errorf("expected a bestmove line:\n%s", got)
	}
	if strings.Contains(got, "bestmove none") {
		t.Errorf("expected a real move:\n%s", got)
	}
}

func TestGoMovetimeForcedWin(t *testing.T) {
	script := "position startpos moves h8 h9 i8 i9 j8 j9 k8 k9\ngo movetime 100\nquit\n"
	got := run(t, script)

	if !strings.Contains(got, "bestmove G8") && !strings.Contains(got, "bestmove L8") {
		t.Errorf("expected the immediate win G8 or L8:\n%s", got)
	}
}

func TestGoNodesConfiguresIterations(t *testing.T) {
	u, out := newTestUCI()
	u.Run(strings.NewReader("position startpos moves h8 i9\ngo nodes 75\nquit\n"))

	if !strings.Contains(out.String(), "bestmove ") {
		t.Fatalf("expected a bestmove line:\n%s", out.String())
	}
	if got := u.engine.Config().MaxIterations; got != 75 {
		t.Errorf("MaxIterations = %d, want 75", got)
	}
	if got := u.engine.Iterations(); got > 75 {
		t.Errorf("search ran %d iterations, cap was 75", got)
	}
}

func TestPerftCommand(t *testing.T) {
	got := run(t, "position startpos\nperft 2\nquit\n")

	if !strings.Contains(got, "Nodes: 24") {
		t.Errorf("perft 2 from the start must count 24 leaves:\n%s", got)
	}
}

func TestSetOption(t *testing.T) {
	u, _ := newTestUCI()
	u.Run(strings.NewReader(
		"setoption name MaxIterations value 500\n" +
			"setoption name Exploration value 0.7\n" +
			"setoption name RandomRollout value false\nquit\n"))

	cfg := u.engine.Config()
	if cfg.MaxIterations != 500 {
		t.Errorf("MaxIterations = %d, want 500", cfg.MaxIterations)
	}
	if cfg.Exploration != 0.7 {
		t.Errorf("Exploration = %v, want 0.7", cfg.Exploration)
	}
	if cfg.RandomRollout {
		t.Error("RandomRollout should be disabled")
	}
}

func TestUcinewgameResets(t *testing.T) {
	got := run(t, "position startpos moves h8 i9\nucinewgame\nd\nquit\n")

	if !strings.Contains(got, "Moves played: 0") {
		t.Errorf("ucinewgame must reset the board:\n%s", got)
	}
}
