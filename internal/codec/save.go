package codec

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/t2048/internal/engine"
)

// DefaultHistoryLimit is how many undo snapshots a save keeps.
const DefaultHistoryLimit = 16

// Rules records how a saved game judges wins and spawns tiles, so a slot
// keeps its rules when the configuration changes between runs.
type Rules struct {
	Preset       string               `json:"preset,omitempty" yaml:"preset,omitempty"`
	TargetValue  int                  `json:"targetValue,omitempty" yaml:"target_value,omitempty"`
	SpawnWeights []engine.SpawnWeight `json:"spawnWeights,omitempty" yaml:"spawn_weights,omitempty"`
}

// Save is the persisted payload for one game slot: the current game, its
// undo history (oldest first) and the best score seen in the slot.
type Save struct {
	Game      Snapshot   `json:"game" yaml:"game"`
	History   []Snapshot `json:"history,omitempty" yaml:"history,omitempty"`
	BestScore int        `json:"bestScore,omitempty" yaml:"best_score,omitempty"`
	Rules     Rules      `json:"rules" yaml:"rules"`
}

// NewSave builds a payload from a live state and its history.
func NewSave(state engine.GameState, history []Snapshot, best, limit int, rules Rules) Save {
	return Save{
		Game:      Serialize(state),
		History:   ClampHistory(history, limit),
		BestScore: best,
		Rules:     rules,
	}
}

// ClampHistory keeps the newest limit entries. A non-positive limit uses
// DefaultHistoryLimit. The result never aliases history.
func ClampHistory(history []Snapshot, limit int) []Snapshot {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	out := make([]Snapshot, len(history))
	copy(out, history)
	return out
}

// EncodeSave serializes a payload to JSON.
func EncodeSave(s Save) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("codec: cannot encode save: %w", err)
	}
	return data, nil
}

// DecodeSave parses a payload and validates the game and every history entry.
// History is clamped to limit.
func DecodeSave(data []byte, limit int) (Save, error) {
	var s Save
	if err := json.Unmarshal(data, &s); err != nil {
		return Save{}, fmt.Errorf("codec: cannot parse save: %w", err)
	}
	if err := Validate(s.Game); err != nil {
		return Save{}, fmt.Errorf("codec: game: %w", err)
	}
	for i, h := range s.History {
		if err := Validate(h); err != nil {
			return Save{}, fmt.Errorf("codec: history[%d]: %w", i, err)
		}
	}
	if s.Rules.TargetValue < 0 {
		return Save{}, invalid(CodeBadCounter, "target value %d", s.Rules.TargetValue)
	}
	if s.BestScore < s.Game.Score {
		s.BestScore = s.Game.Score
	}
	s.History = ClampHistory(s.History, limit)
	return s, nil
}
