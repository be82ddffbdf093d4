// Package session hosts one running game: the current state, its undo
// history and the best score reached in the slot.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/codec"
	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/engine"
)

// ErrNoRNG is returned when a session is built without a random source.
var ErrNoRNG = errors.New("session: rng is required")

// Session owns a game between moves. It is not safe for concurrent use.
type Session struct {
	state        engine.GameState
	history      []codec.Snapshot // oldest first
	historyLimit int
	bestScore    int
	lastSummary  engine.MoveSummary
	rules        codec.Rules
	opts         engine.Options

	rng    *rand.Rand
	logger *log.Logger
}

// New starts a fresh game with the board rules from cfg.
func New(cfg config.Config, rng *rand.Rand, logger *log.Logger) (*Session, error) {
	rules := codec.Rules{
		Preset:       config.MatchPreset(cfg.Board),
		TargetValue:  cfg.Board.Target,
		SpawnWeights: cfg.Board.SpawnWeights,
	}
	s, err := build(cfg, rules, rng, logger)
	if err != nil {
		return nil, err
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restore resumes a saved game. Rules stored in the save take precedence
// over cfg so a slot keeps playing by the rules it was started with.
func Restore(save codec.Save, cfg config.Config, rng *rand.Rand, logger *log.Logger) (*Session, error) {
	if err := codec.Validate(save.Game); err != nil {
		return nil, err
	}
	for i, h := range save.History {
		if err := codec.Validate(h); err != nil {
			return nil, fmt.Errorf("session: history[%d]: %w", i, err)
		}
	}

	rules := save.Rules
	if rules.TargetValue == 0 {
		rules.TargetValue = cfg.Board.Target
	}
	if len(rules.SpawnWeights) == 0 {
		rules.SpawnWeights = cfg.Board.SpawnWeights
	}
	if rules.Preset == "" {
		rules.Preset = config.MatchPreset(cfg.Board)
	}

	cfg.Board.Size = save.Game.Size
	s, err := build(cfg, rules, rng, logger)
	if err != nil {
		return nil, err
	}

	s.state = codec.Deserialize(save.Game)
	s.history = codec.ClampHistory(save.History, s.historyLimit)
	s.bestScore = max(save.BestScore, s.state.Score)

	s.logger.Debug("session restored",
		"size", s.state.Size,
		"score", s.state.Score,
		"moves", s.state.MoveCount,
		"history", len(s.history))
	return s, nil
}

func build(cfg config.Config, rules codec.Rules, rng *rand.Rand, logger *log.Logger) (*Session, error) {
	if rng == nil {
		return nil, ErrNoRNG
	}
	if logger == nil {
		logger = log.New(io.Discard)
		logger.SetLevel(log.FatalLevel)
	}

	cfg.Board.Target = rules.TargetValue
	cfg.Board.SpawnWeights = rules.SpawnWeights

	limit := cfg.History.Limit
	if limit <= 0 {
		limit = codec.DefaultHistoryLimit
	}

	return &Session{
		historyLimit: limit,
		rules:        rules,
		opts:         cfg.EngineOptions(rng.Float64, nil),
		rng:          rng,
		logger:       logger,
	}, nil
}

// Move applies dir. History grows only when the board changed; an unmoved
// result keeps the board and only picks up a status change.
func (s *Session) Move(dir engine.Direction) (engine.MoveResult, error) {
	before := codec.Serialize(s.state)

	result, err := engine.Move(s.state, dir, s.opts)
	if err != nil {
		return engine.MoveResult{}, err
	}
	s.lastSummary = result.Summary

	if !result.Summary.Moved {
		// A stuck board still reports its status, e.g. a full board that
		// was saved as playing comes back lost.
		if result.State.Status != s.state.Status {
			s.logger.Info("status changed", "from", s.state.Status, "to", result.State.Status, "score", s.state.Score)
			s.state.Status = result.State.Status
		}
		s.logger.Debug("move had no effect", "dir", dir, "status", s.state.Status)
		return result, nil
	}

	s.history = append(s.history, before)
	if len(s.history) > s.historyLimit {
		s.history = codec.ClampHistory(s.history, s.historyLimit)
	}

	prevStatus := s.state.Status
	s.state = result.State
	s.bestScore = max(s.bestScore, s.state.Score)

	s.logger.Debug("move",
		"dir", dir,
		"score", s.state.Score,
		"delta", result.Summary.ScoreDelta,
		"merged", result.Summary.MergedValues)
	if s.state.Status != prevStatus {
		s.logger.Info("status changed", "from", prevStatus, "to", s.state.Status, "score", s.state.Score)
	}
	return result, nil
}

// Undo restores the most recent snapshot. Returns false if there is none.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.state = codec.Deserialize(last)
	s.lastSummary = engine.MoveSummary{}
	return true
}

// Reset starts a new game under the same rules. The best score survives.
func (s *Session) Reset() error {
	state, err := engine.NewGame(s.opts)
	if err != nil {
		return err
	}
	s.state = state
	s.history = nil
	s.lastSummary = engine.MoveSummary{}
	s.logger.Debug("new game", "size", state.Size, "target", s.opts.TargetValue, "preset", s.rules.Preset)
	return nil
}

// CanUndo reports whether history holds a snapshot.
func (s *Session) CanUndo() bool { return len(s.history) > 0 }

// CanAcceptInput is false once the game is lost.
func (s *Session) CanAcceptInput() bool { return s.state.Status != engine.StatusLost }

// State returns a copy of the current game.
func (s *Session) State() engine.GameState { return s.state.Clone() }

func (s *Session) BestScore() int { return s.bestScore }

// CarryBestScore raises the best score to v, e.g. when a new game replaces
// an older one in the same slot.
func (s *Session) CarryBestScore(v int) {
	s.bestScore = max(s.bestScore, v)
}

func (s *Session) LastSummary() engine.MoveSummary { return s.lastSummary }

func (s *Session) Rules() codec.Rules { return s.rules }

// History returns a copy of the undo snapshots, oldest first.
func (s *Session) History() []codec.Snapshot {
	return codec.ClampHistory(s.history, s.historyLimit)
}

// Save builds the persisted payload for the session.
func (s *Session) Save() codec.Save {
	return codec.NewSave(s.state, s.history, s.bestScore, s.historyLimit, s.rules)
}
