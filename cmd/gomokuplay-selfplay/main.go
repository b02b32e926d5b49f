// Command gomokuplay-selfplay plays the engine against itself, printing each
// position and archiving finished games.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/config"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
)

var (
	games      = flag.Int("games", 1, "number of games to play")
	moveTime   = flag.Int("movetime", 250, "milliseconds per move")
	iterations = flag.Int("iterations", 0, "iteration cap per move (0 = config default)")
	seed       = flag.Int64("seed", 0, "search RNG seed (0 = clock)")
	quiet      = flag.Bool("quiet", false, "only print game results")
	store      = flag.Bool("store", false, "archive finished games in storage")
	cpuprofile = flag.Bool("cpuprofile", false, "write a CPU profile to the working directory")
)

var (
	blackStone = color.New(color.FgHiRed, color.Bold)
	whiteStone = color.New(color.FgHiCyan, color.Bold)
	gridDot    = color.New(color.FgHiBlack)
)

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if *cpuprofile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	cfg := config.Default()
	searchCfg := cfg.EngineConfig()
	searchCfg.Seed = *seed
	if *iterations > 0 {
		searchCfg.MaxIterations = *iterations
	}

	var db *storage.Storage
	if *store {
		var err error
		db, err = storage.NewStorage()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open storage")
		}
		defer db.Close()
	}

	searcher := engine.NewSearcher(searchCfg)
	limit := time.Duration(*moveTime) * time.Millisecond

	var blackWins, whiteWins, draws int
	for g := 1; g <= *games; g++ {
		rec := playGame(searcher, limit, logger)

		switch rec.Result {
		case board.BlackWin.String():
			blackWins++
		case board.WhiteWin.String():
			whiteWins++
		default:
			draws++
		}
		logger.Info().Int("game", g).Str("result", rec.Result).
			Int("moves", len(rec.Moves)).Msg("game finished")

		if db != nil {
			id, err := db.SaveGame(rec)
			if err != nil {
				logger.Error().Err(err).Msg("failed to archive game")
			} else {
				logger.Info().Str("id", id).Msg("game archived")
			}
		}
	}

	fmt.Printf("\n%d games: black %d, white %d, draws %d\n",
		*games, blackWins, whiteWins, draws)
}

func playGame(s *engine.Searcher, limit time.Duration, logger zerolog.Logger) *storage.GameRecord {
	b := board.New()
	var moves []string

	for !b.Terminal() {
		m := s.SearchTime(b, limit)
		if !m.IsValid() {
			logger.Error().Msg("search returned no move")
			break
		}
		b.Apply(m)
		moves = append(moves, m.String())

		if !*quiet {
			printBoard(b)
			fmt.Printf("move %d: %s plays %s (%d iterations)\n\n",
				b.MoveCount(), b.CurrentPlayer().Opponent().Name(), m, s.Iterations())
		}
	}

	return &storage.GameRecord{Moves: moves, Result: b.Result().String()}
}

// printBoard renders the position with colored stones.
func printBoard(b *board.Board) {
	for y := board.Size - 1; y >= 0; y-- {
		fmt.Printf("%2d ", y+1)
		for x := 0; x < board.Size; x++ {
			switch b.Cell(x, y) {
			case board.Black:
				blackStone.Print(" X")
			case board.White:
				whiteStone.Print(" O")
			default:
				gridDot.Print(" .")
			}
		}
		fmt.Println()
	}
	fmt.Print("   ")
	for x := 0; x < board.Size; x++ {
		fmt.Printf(" %c", 'A'+x)
	}
	fmt.Println()
}
