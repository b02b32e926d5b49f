// GomokuPlay - a gomoku playing engine with an Ebitengine front-end.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/gomokuplay/internal/config"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
	"github.com/hailam/gomokuplay/internal/ui"
)

var configPath = flag.String("config", "", "path to config.toml (default: platform data dir)")

func main() {
	flag.Parse()

	path := *configPath
	if path == "" {
		if p, err := storage.GetConfigPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("Warning: bad config %s: %v (using defaults)", path, err)
		cfg = config.Default()
	}

	eng := engine.NewEngine(cfg.EngineConfig())
	eng.SetDifficulty(cfg.Difficulty())

	game := ui.NewGame(eng)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("GomokuPlay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
