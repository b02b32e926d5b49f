package ui

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hailam/gomokuplay/internal/board"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
)

// Game implements ebiten.Game: a human against the engine on a goban. The
// engine search runs on its own goroutine and delivers the reply on a
// channel so the render loop never blocks.
type Game struct {
	board      *board.Board
	engine     *engine.Engine
	humanColor board.Cell

	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats

	renderer *Renderer

	aiThinking bool
	aiMove     chan board.Move

	gameOver bool
	recorded bool
}

// NewGame creates the game with stored preferences applied.
func NewGame(eng *engine.Engine) *Game {
	g := &Game{
		board:      board.New(),
		engine:     eng,
		humanColor: board.Black,
		renderer:   NewRenderer(),
		aiMove:     make(chan board.Move, 1),
	}

	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: failed to initialize storage: %v", err)
		g.prefs = storage.DefaultPreferences()
		return g
	}

	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}
	g.applyPreferences()

	g.stats, err = g.storage.LoadStats()
	if err != nil {
		log.Printf("Warning: failed to load stats: %v", err)
		g.stats = &storage.GameStats{}
	}
	return g
}

func (g *Game) applyPreferences() {
	if g.prefs.HumanColor == "white" {
		g.humanColor = board.White
	} else {
		g.humanColor = board.Black
	}
	switch g.prefs.Difficulty {
	case "easy":
		g.engine.SetDifficulty(engine.Easy)
	case "hard":
		g.engine.SetDifficulty(engine.Hard)
	default:
		g.engine.SetDifficulty(engine.Medium)
	}
}

// Close releases storage.
func (g *Game) Close() {
	if g.storage != nil {
		if err := g.storage.SavePreferences(g.prefs); err != nil {
			log.Printf("Warning: failed to save preferences: %v", err)
		}
		g.storage.Close()
	}
}

// Update advances the game state one tick.
func (g *Game) Update() error {
	g.handleKeys()

	// Collect a finished engine search, if any.
	select {
	case m := <-g.aiMove:
		g.aiThinking = false
		if m.IsValid() && !g.board.Terminal() && g.board.Legal(int(m.X), int(m.Y)) {
			g.board.Apply(m)
		}
	default:
	}

	if g.board.Terminal() {
		g.finishGame()
		return nil
	}

	if g.board.CurrentPlayer() == g.humanColor {
		g.handleHumanMove()
	} else if !g.aiThinking {
		g.startEngine()
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.newGame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.undoRound()
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.setDifficulty(engine.Easy, "easy")
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.setDifficulty(engine.Medium, "medium")
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		g.setDifficulty(engine.Hard, "hard")
	}
}

func (g *Game) setDifficulty(d engine.Difficulty, name string) {
	if g.aiThinking {
		return
	}
	g.engine.SetDifficulty(d)
	g.prefs.Difficulty = name
}

func (g *Game) newGame() {
	if g.aiThinking {
		return
	}
	g.board.Reset()
	g.gameOver = false
	g.recorded = false
}

// undoRound takes back the last engine reply and the human move before it.
func (g *Game) undoRound() {
	if g.aiThinking {
		return
	}
	hist := g.board.History()
	for i := 0; i < 2 && len(hist) > 0; i++ {
		g.board.Undo(hist[len(hist)-1])
		hist = g.board.History()
	}
	g.gameOver = false
	g.recorded = false
}

func (g *Game) handleHumanMove() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	m := ScreenToMove(ebiten.CursorPosition())
	if m.IsValid() && g.board.Legal(int(m.X), int(m.Y)) {
		g.board.Apply(m)
	}
}

func (g *Game) startEngine() {
	g.aiThinking = true
	snapshot := g.board.Copy()
	go func() {
		g.aiMove <- g.engine.BestMove(snapshot)
	}()
}

// finishGame records the result and archives the game once.
func (g *Game) finishGame() {
	g.gameOver = true
	if g.recorded || g.storage == nil {
		return
	}
	g.recorded = true

	won := g.board.Winner() == g.humanColor
	draw := g.board.Result() == board.Draw
	if err := g.storage.RecordResult(won, draw); err != nil {
		log.Printf("Warning: failed to record result: %v", err)
	}
	if stats, err := g.storage.LoadStats(); err == nil {
		g.stats = stats
	}

	hist := g.board.History()
	moves := make([]string, len(hist))
	for i, m := range hist {
		moves[i] = m.String()
	}
	rec := &storage.GameRecord{Moves: moves, Result: g.board.Result().String()}
	if _, err := g.storage.SaveGame(rec); err != nil {
		log.Printf("Warning: failed to archive game: %v", err)
	}
}

// Draw renders the goban and panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.DrawBoard(screen)
	g.renderer.DrawStones(screen, g.board)
	g.renderer.DrawPanel(screen, g.panelLines())
}

func (g *Game) panelLines() []string {
	lines := []string{"GomokuPlay"}

	switch {
	case g.board.Terminal():
		lines = append(lines, fmt.Sprintf("Game over: %s", g.board.Result()))
	case g.aiThinking:
		lines = append(lines, "Engine is thinking...")
	default:
		lines = append(lines, fmt.Sprintf("%s to move", g.board.CurrentPlayer().Name()))
	}

	lines = append(lines,
		fmt.Sprintf("Moves: %d", g.board.MoveCount()),
		fmt.Sprintf("Difficulty: %s", g.prefs.Difficulty),
		"",
		"N: new game",
		"U: undo round",
		"1/2/3: difficulty",
	)

	if g.stats != nil && g.stats.GamesPlayed > 0 {
		lines = append(lines, "",
			fmt.Sprintf("Games: %d", g.stats.GamesPlayed),
			fmt.Sprintf("Won: %d (%.0f%%)", g.stats.Wins, g.stats.WinRate()),
		)
	}
	return lines
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
