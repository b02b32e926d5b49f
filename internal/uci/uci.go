// Package uci implements the line-oriented text protocol of the engine, in
// the style of the chess UCI dialogue.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
)

// UCI implements the text protocol front-end. The search runs synchronously
// on the protocol loop; "stop" is a no-op because a search always returns
// within its budget.
type UCI struct {
	engine *engine.Engine
	board  *board.Board
	out    io.Writer
}

// New creates a protocol handler writing to stdout.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		engine: eng,
		board:  board.New(),
		out:    os.Stdout,
	}
}

// Run reads commands from r until "quit", "exit" or EOF.
func (u *UCI) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.board.Reset()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// search is synchronous, nothing to stop
		case "setoption":
			u.handleSetOption(args)
		case "d", "display":
			u.handleDisplay()
		case "perft":
			u.handlePerft(args)
		case "quit", "exit":
			return
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name GomokuPlay")
	fmt.Fprintln(u.out, "id author GomokuPlay Team")
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, "option name Exploration type string default 1.2")
	fmt.Fprintln(u.out, "option name MaxIterations type spin default 10000 min 1 max 10000000")
	fmt.Fprintln(u.out, "option name Seed type spin default 0 min 0 max 2147483647")
	fmt.Fprintln(u.out, "option name HeuristicRollout type check default true")
	fmt.Fprintln(u.out, "option name RandomRollout type check default true")
	fmt.Fprintln(u.out, "uciok")
}

// handlePosition parses "position startpos [moves ...]". Moves come in
// letter-number form; the first unparseable or illegal move aborts the
// remainder of the list.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 || args[0] != "startpos" {
		return
	}

	u.board.Reset()

	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i + 1
			break
		}
	}

	for _, text := range args[moveStart:] {
		m := board.ParseMove(text)
		if !m.IsValid() {
			fmt.Fprintf(os.Stderr, "info string invalid move: %s\n", text)
			return
		}
		if !u.board.Legal(int(m.X), int(m.Y)) {
			fmt.Fprintf(os.Stderr, "info string illegal move: %s\n", text)
			return
		}
		u.board.Apply(m)
	}
}

// handleGo runs a search. "movetime <ms>" bounds the clock; "nodes <n>" and
// "depth <d>" configure the iteration cap (d is scaled by 1000) and run
// clock-free so the cap bounds the work.
func (u *UCI) handleGo(args []string) {
	limit := u.engine.Config().MoveTime

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limit = time.Duration(ms) * time.Millisecond
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				n, _ := strconv.Atoi(args[i+1])
				if n > 0 {
					u.setMaxIterations(n)
					limit = engine.NoTimeLimit
				}
				i++
			}
		case "depth":
			if i+1 < len(args) {
				d, _ := strconv.Atoi(args[i+1])
				if d > 0 {
					u.setMaxIterations(d * 1000)
					limit = engine.NoTimeLimit
				}
				i++
			}
		case "infinite":
			limit = engine.NoTimeLimit
		}
	}

	best := u.engine.BestMoveTime(u.board, limit)
	fmt.Fprintf(u.out, "bestmove %s\n", best)
}

func (u *UCI) setMaxIterations(n int) {
	cfg := u.engine.Config()
	cfg.MaxIterations = n
	u.engine.SetConfig(cfg)
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	reading := ""
	for _, arg := range args {
		switch arg {
		case "name":
			reading = "name"
		case "value":
			reading = "value"
		default:
			switch reading {
			case "name":
				if name != "" {
					name += " "
				}
				name += arg
			case "value":
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	cfg := u.engine.Config()
	switch strings.ToLower(name) {
	case "exploration":
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			cfg.Exploration = f
		}
	case "maxiterations":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			cfg.MaxIterations = n
		}
	case "seed":
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			cfg.Seed = n
		}
	case "heuristicrollout":
		cfg.HeuristicRollout = strings.EqualFold(value, "true")
	case "randomrollout":
		cfg.RandomRollout = strings.EqualFold(value, "true")
	default:
		return
	}
	u.engine.SetConfig(cfg)
}

// handleDisplay renders the board plus the side to move, the move count and
// the result once the game is over.
func (u *UCI) handleDisplay() {
	fmt.Fprint(u.out, u.board)
	fmt.Fprintf(u.out, "Side to move: %s\n", u.board.CurrentPlayer().Name())
	fmt.Fprintf(u.out, "Moves played: %d\n", u.board.MoveCount())
	if u.board.Terminal() {
		fmt.Fprintf(u.out, "Result: %s\n", u.board.Result())
	}
}

func (u *UCI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d >= 0 {
			depth = d
		}
	}

	start := time.Now()
	nodes := engine.Perft(u.board, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(u.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
