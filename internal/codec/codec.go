// Package codec converts engine game states to and from the minimal
// persistable snapshot form, and validates snapshots on load.
package codec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/t2048/internal/engine"
)

// TileSnapshot is the persisted part of a tile.
type TileSnapshot struct {
	ID       string          `json:"id" yaml:"id"`
	Value    int             `json:"value" yaml:"value"`
	Position engine.Position `json:"position" yaml:"position"`
}

// Snapshot is the persisted form of an engine.GameState.
type Snapshot struct {
	Size      int            `json:"size" yaml:"size"`
	Score     int            `json:"score" yaml:"score"`
	MoveCount int            `json:"moveCount" yaml:"move_count"`
	Status    engine.Status  `json:"status" yaml:"status"`
	Tiles     []TileSnapshot `json:"tiles" yaml:"tiles"`
}

// Serialize projects a state onto its persisted fields.
func Serialize(state engine.GameState) Snapshot {
	tiles := make([]TileSnapshot, len(state.Tiles))
	for i, t := range state.Tiles {
		tiles[i] = TileSnapshot{ID: t.ID, Value: t.Value, Position: t.Position}
	}
	return Snapshot{
		Size:      state.Size,
		Score:     state.Score,
		MoveCount: state.MoveCount,
		Status:    state.Status,
		Tiles:     tiles,
	}
}

// Deserialize rebuilds a quiescent state. The snapshot is assumed valid;
// run Validate first on anything read from storage.
func Deserialize(snap Snapshot) engine.GameState {
	tiles := make([]engine.Tile, len(snap.Tiles))
	for i, t := range snap.Tiles {
		tiles[i] = engine.Tile{ID: t.ID, Value: t.Value, Position: t.Position}
	}
	return engine.GameState{
		Size:      snap.Size,
		Tiles:     tiles,
		Score:     snap.Score,
		MoveCount: snap.MoveCount,
		Status:    snap.Status,
	}
}

// Encode serializes state to JSON.
func Encode(state engine.GameState) ([]byte, error) {
	data, err := json.Marshal(Serialize(state))
	if err != nil {
		return nil, fmt.Errorf("codec: cannot encode state: %w", err)
	}
	return data, nil
}

// Decode parses JSON, validates it and rebuilds the state.
func Decode(data []byte) (engine.GameState, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return engine.GameState{}, fmt.Errorf("codec: cannot parse snapshot: %w", err)
	}
	if err := Validate(snap); err != nil {
		return engine.GameState{}, err
	}
	return Deserialize(snap), nil
}

// Format selects the text encoding used by Marshal.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Marshal encodes any codec value (Snapshot, Save) in the given format.
func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("codec: cannot encode json: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: cannot encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("codec: unknown format %q", format)
	}
}
