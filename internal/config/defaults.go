package config

import (
	_ "embed"

	"github.com/vovakirdan/t2048/internal/codec"
	"github.com/vovakirdan/t2048/internal/engine"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultDBPath is where scores and saves live unless configured otherwise.
const DefaultDBPath = "~/.t2048/games.db"

// Default returns the built-in configuration: classic 4x4 to 2048.
func Default() Config {
	weights := make([]engine.SpawnWeight, len(engine.DefaultSpawnWeights))
	copy(weights, engine.DefaultSpawnWeights)
	return Config{
		Board: BoardConfig{
			Size:          engine.DefaultSize,
			StartingTiles: engine.DefaultStartingTiles,
			Target:        engine.DefaultTargetValue,
			SpawnWeights:  weights,
		},
		History: HistoryConfig{
			Limit: codec.DefaultHistoryLimit,
		},
		Storage: StorageConfig{
			Path: DefaultDBPath,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
