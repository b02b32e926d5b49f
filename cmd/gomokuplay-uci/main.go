package main

import (
	"flag"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/gomokuplay/internal/config"
	"github.com/hailam/gomokuplay/internal/engine"
	"github.com/hailam/gomokuplay/internal/storage"
	"github.com/hailam/gomokuplay/internal/uci"
)

var (
	configPath = flag.String("config", "", "path to config.toml (default: platform data dir)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		logger.Info().Str("path", *cpuprofile).Msg("CPU profiling enabled")
	}

	path := *configPath
	if path == "" {
		if p, err := storage.GetConfigPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("bad config, using defaults")
		cfg = config.Default()
	}

	eng := engine.NewEngine(cfg.EngineConfig())
	uci.New(eng).Run(os.Stdin)
}
