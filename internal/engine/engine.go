// Package engine implements the gomoku playing engine: a pattern heuristic
// over board positions and a Monte-Carlo tree search driven by it.
package engine

import (
	"time"

	"github.com/hailam/gomokuplay/internal/board"
)

// Difficulty represents the AI difficulty level.
type Difficulty int

// Difficulty levels.
const (
	Easy Difficulty = iota
	Medium
	Hard
)

// difficultySetting bounds a search per difficulty level.
type difficultySetting struct {
	MoveTime   time.Duration
	Iterations int
}

// DifficultySettings maps difficulty to search budgets.
var DifficultySettings = map[Difficulty]difficultySetting{
	Easy:   {MoveTime: 500 * time.Millisecond, Iterations: 2000},
	Medium: {MoveTime: time.Second, Iterations: 10000},
	Hard:   {MoveTime: 3 * time.Second, Iterations: 50000},
}

// Engine wraps the searcher with difficulty presets. The UCI front-end
// drives explicit budgets instead; the desktop UI uses the presets.
type Engine struct {
	searcher   *Searcher
	difficulty Difficulty
}

// NewEngine creates an engine with the given search configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		searcher:   NewSearcher(cfg),
		difficulty: Medium,
	}
}

// SetDifficulty sets the preset used by BestMove.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current preset.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Config returns the searcher configuration.
func (e *Engine) Config() Config {
	return e.searcher.Config()
}

// SetConfig replaces the searcher configuration between searches.
func (e *Engine) SetConfig(cfg Config) {
	e.searcher.SetConfig(cfg)
}

// Iterations returns the simulation count of the most recent search.
func (e *Engine) Iterations() int {
	return e.searcher.Iterations()
}

// BestMove searches under the current difficulty preset.
func (e *Engine) BestMove(b *board.Board) board.Move {
	setting := DifficultySettings[e.difficulty]
	cfg := e.searcher.Config()
	cfg.MaxIterations = setting.Iterations
	e.searcher.SetConfig(cfg)
	return e.searcher.SearchTime(b, setting.MoveTime)
}

// BestMoveTime searches under an explicit wall-clock budget.
func (e *Engine) BestMoveTime(b *board.Board, limit time.Duration) board.Move {
	return e.searcher.SearchTime(b, limit)
}
