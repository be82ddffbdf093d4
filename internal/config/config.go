// Package config provides YAML-based configuration loading and named board
// presets for t2048.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/engine"
)

// Config is the full application configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	History HistoryConfig `yaml:"history"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the rules a new game is created with.
type BoardConfig struct {
	Size          int                  `yaml:"size"`
	StartingTiles int                  `yaml:"starting_tiles"`
	Target        int                  `yaml:"target"`
	SpawnWeights  []engine.SpawnWeight `yaml:"spawn_weights"`
}

// HistoryConfig bounds the undo history kept per save slot.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the logger verbosity: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the values the engine and storage depend on.
func (c Config) Validate() error {
	if c.Board.Size < 2 || c.Board.Size > 16 {
		return fmt.Errorf("%w: board.size %d (want 2-16)", ErrInvalid, c.Board.Size)
	}
	if c.Board.StartingTiles < 1 || c.Board.StartingTiles > c.Board.Size*c.Board.Size {
		return fmt.Errorf("%w: board.starting_tiles %d", ErrInvalid, c.Board.StartingTiles)
	}
	if c.Board.Target < 4 || c.Board.Target&(c.Board.Target-1) != 0 {
		return fmt.Errorf("%w: board.target %d is not a power of two", ErrInvalid, c.Board.Target)
	}
	if len(c.Board.SpawnWeights) == 0 {
		return fmt.Errorf("%w: board.spawn_weights is empty", ErrInvalid)
	}
	total := 0.0
	for _, w := range c.Board.SpawnWeights {
		if w.Value < 2 || w.Value&(w.Value-1) != 0 || w.Weight < 0 {
			return fmt.Errorf("%w: board.spawn_weights entry %+v", ErrInvalid, w)
		}
		total += w.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: board.spawn_weights sum to zero", ErrInvalid)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("%w: history.limit %d", ErrInvalid, c.History.Limit)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is empty", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// EngineOptions converts the board section into engine options.
// newID may be nil to use the engine's default.
func (c Config) EngineOptions(random func() float64, newID func() string) engine.Options {
	weights := make([]engine.SpawnWeight, len(c.Board.SpawnWeights))
	copy(weights, c.Board.SpawnWeights)
	return engine.Options{
		Size:              c.Board.Size,
		StartingTileCount: c.Board.StartingTiles,
		TargetValue:       c.Board.Target,
		SpawnWeights:      weights,
		Random:            random,
		NewID:             newID,
	}
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
