// Package cli holds the command-line flags shared by the local and SSH front ends.
package cli

import (
	"flag"
	"fmt"
	"time"

	"github.com/Mshel/loong/internal/game"
	"github.com/Mshel/loong/internal/ui"
	"github.com/charmbracelet/log"
)

const greedyAutopilot = "greedy"

type Settings struct {
	Width          uint
	Height         uint
	InitialLength  uint
	WrapAround     bool
	AutoFood       bool
	FailOnReversal bool
	Tick           time.Duration

	// Autopilot is empty, "greedy" or the path of a Lua script.
	Autopilot string
	LogLevel  string
}

// Register binds s to fs with defaults from game.DefaultConfig.
func Register(fs *flag.FlagSet) *Settings {
	def := game.DefaultConfig()
	s := &Settings{}

	fs.UintVar(&s.Width, "width", uint(def.Width), "grid width in cells")
	fs.UintVar(&s.Height, "height", uint(def.Height), "grid height in cells")
	fs.UintVar(&s.InitialLength, "length", uint(def.InitialLength), "initial creature length")
	fs.BoolVar(&s.WrapAround, "wrap", def.WrapAround, "wrap around the edges instead of dying on walls")
	fs.BoolVar(&s.AutoFood, "auto-food", def.AutoFood, "respawn food after it is eaten")
	fs.BoolVar(&s.FailOnReversal, "strict", def.FailOnReversal, "end the round on a 180 degree turn")
	fs.DurationVar(&s.Tick, "tick", game.GameTickDuration, "time between ticks")
	fs.StringVar(&s.Autopilot, "autopilot", "", `steer automatically: "greedy" or a Lua script path`)
	fs.StringVar(&s.LogLevel, "log-level", "info", "debug, info, warn or error")

	return s
}

// Config converts the numeric flags, rejecting values a grid cannot hold.
func (s *Settings) Config() (game.Config, error) {
	for name, v := range map[string]uint{"width": s.Width, "height": s.Height, "length": s.InitialLength} {
		if v > 0xFFFF {
			return game.Config{}, fmt.Errorf("%w: -%s %d is too large", game.ErrInvalidConfig, name, v)
		}
	}
	if s.Width > ui.MaxGridSide || s.Height > ui.MaxGridSide {
		return game.Config{}, fmt.Errorf("%w: grid %dx%d is larger than %dx%d", game.ErrInvalidConfig, s.Width, s.Height, ui.MaxGridSide, ui.MaxGridSide)
	}

	cfg := game.Config{
		Width:          uint16(s.Width),
		Height:         uint16(s.Height),
		InitialLength:  uint16(s.InitialLength),
		WrapAround:     s.WrapAround,
		AutoFood:       s.AutoFood,
		FailOnReversal: s.FailOnReversal,
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// Strategy loads the autopilot named by the -autopilot flag, nil when unset.
func (s *Settings) Strategy() (game.Strategy, error) {
	switch s.Autopilot {
	case "":
		return nil, nil
	case greedyAutopilot:
		return game.GreedyStrategy{}, nil
	default:
		strategy, err := game.LoadScriptStrategy(s.Autopilot)
		if err != nil {
			return nil, fmt.Errorf("autopilot: %w", err)
		}
		return strategy, nil
	}
}

// Options builds the UI options for one program.
func (s *Settings) Options(logger *log.Logger) (ui.Options, error) {
	cfg, err := s.Config()
	if err != nil {
		return ui.Options{}, err
	}
	strategy, err := s.Strategy()
	if err != nil {
		return ui.Options{}, err
	}

	return ui.Options{
		Config:    cfg,
		Autopilot: strategy,
		TickEvery: s.Tick,
		Logger:    logger,
	}, nil
}

// Level parses the -log-level flag.
func (s *Settings) Level() (log.Level, error) {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
