package config

import (
	"fmt"

	"github.com/vovakirdan/t2048/internal/engine"
)

// Preset is a named set of board rules.
type Preset struct {
	Name   string
	Title  string
	Size   int
	Target int     // Tile value that wins the game
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// DefaultPreset is used when no preset is named.
const DefaultPreset = "classic"

// Presets lists the built-in board rules.
// Targets are realistic for each grid size; Spawn4 rises on the larger boards.
var Presets = []Preset{
	{Name: "mini", Title: "Mini 3x3", Size: 3, Target: 256, Spawn4: 0.10},
	{Name: "quick", Title: "Quick 512", Size: 4, Target: 512, Spawn4: 0.10},
	{Name: "classic", Title: "Classic 2048", Size: 4, Target: 2048, Spawn4: 0.10},
	{Name: "large", Title: "Large 5x5", Size: 5, Target: 4096, Spawn4: 0.12},
	{Name: "huge", Title: "Huge 6x6", Size: 6, Target: 8192, Spawn4: 0.15},
}

// PresetNames returns the names of all presets.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

// GetPreset returns the preset with the given name.
// Returns nil if there is no such preset.
func GetPreset(name string) *Preset {
	for i := range Presets {
		if Presets[i].Name == name {
			return &Presets[i]
		}
	}
	return nil
}

// SpawnWeights returns the 2/4 spawn weights for the preset.
func (p Preset) SpawnWeights() []engine.SpawnWeight {
	return []engine.SpawnWeight{
		{Value: 2, Weight: 1 - p.Spawn4},
		{Value: 4, Weight: p.Spawn4},
	}
}

// ApplyPreset overwrites the board section of cfg with the named preset.
func ApplyPreset(cfg *Config, name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("config: unknown preset %q", name)
	}
	cfg.Board.Size = p.Size
	cfg.Board.Target = p.Target
	cfg.Board.SpawnWeights = p.SpawnWeights()
	if cfg.Board.StartingTiles > p.Size*p.Size {
		cfg.Board.StartingTiles = engine.DefaultStartingTiles
	}
	return nil
}

// MatchPreset returns the name of the preset whose rules equal the board
// section, or "custom".
func MatchPreset(b BoardConfig) string {
	for _, p := range Presets {
		if p.Size != b.Size || p.Target != b.Target || len(b.SpawnWeights) != 2 {
			continue
		}
		w := p.SpawnWeights()
		if b.SpawnWeights[0] == w[0] && b.SpawnWeights[1] == w[1] {
			return p.Name
		}
	}
	return "custom"
}
