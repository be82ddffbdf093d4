package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/t2048/internal/codec"
	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/engine"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := New(config.Default(), rand.New(rand.NewSource(seed)), nil)
	require.NoError(t, err)
	return s
}

// moveUntilMoved tries every direction until one changes the board.
func moveUntilMoved(t *testing.T, s *Session) engine.MoveResult {
	t.Helper()
	for _, dir := range engine.Directions {
		res, err := s.Move(dir)
		require.NoError(t, err)
		if res.Summary.Moved {
			return res
		}
	}
	t.Fatal("no direction moved")
	return engine.MoveResult{}
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, 1)

	state := s.State()
	assert.Equal(t, 4, state.Size)
	assert.Len(t, state.Tiles, 2)
	assert.Equal(t, engine.StatusPlaying, state.Status)
	assert.False(t, s.CanUndo())
	assert.True(t, s.CanAcceptInput())
	assert.Equal(t, "classic", s.Rules().Preset)

	_, err := New(config.Default(), nil, nil)
	assert.ErrorIs(t, err, ErrNoRNG)
}

func TestMoveRecordsHistory(t *testing.T) {
	s := newTestSession(t, 2)
	before := s.State()

	res := moveUntilMoved(t, s)
	assert.True(t, s.CanUndo())
	require.Len(t, s.History(), 1)
	assert.Equal(t, codec.Serialize(before), s.History()[0])
	assert.Equal(t, res.State, s.State())
	assert.Equal(t, res.Summary, s.LastSummary())
	assert.GreaterOrEqual(t, s.BestScore(), s.State().Score)
}

func TestUnmovedMoveKeepsState(t *testing.T) {
	cfg := config.Default()
	s, err := Restore(codec.Save{Game: codec.Serialize(engine.GameState{
		Size: 4,
		Tiles: []engine.Tile{
			{ID: "a", Value: 2, Position: engine.P(0, 0)},
			{ID: "b", Value: 4, Position: engine.P(0, 1)},
		},
		Status: engine.StatusPlaying,
	})}, cfg, rand.New(rand.NewSource(3)), nil)
	require.NoError(t, err)

	before := s.State()
	res, err := s.Move(engine.DirUp)
	require.NoError(t, err)
	assert.False(t, res.Summary.Moved)
	assert.Equal(t, before, s.State())
	assert.False(t, s.CanUndo())
}

func TestUndo(t *testing.T) {
	s := newTestSession(t, 4)
	assert.False(t, s.Undo(), "nothing to undo on a fresh game")

	start := s.State()
	moveUntilMoved(t, s)
	moveUntilMoved(t, s)
	require.Len(t, s.History(), 2)

	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.Equal(t, start, s.State())
	assert.False(t, s.Undo())
}

func TestHistoryIsBounded(t *testing.T) {
	cfg := config.Default()
	cfg.History.Limit = 3
	s, err := New(cfg, rand.New(rand.NewSource(5)), nil)
	require.NoError(t, err)

	for i := 0; i < 10 && s.CanAcceptInput(); i++ {
		moveUntilMoved(t, s)
	}
	assert.LessOrEqual(t, len(s.History()), 3)
	assert.Len(t, s.Save().History, len(s.History()))
}

func TestResetKeepsBestScore(t *testing.T) {
	s := newTestSession(t, 6)
	for i := 0; i < 30 && s.CanAcceptInput(); i++ {
		moveUntilMoved(t, s)
	}
	best := s.BestScore()
	require.Positive(t, best)

	require.NoError(t, s.Reset())
	assert.Equal(t, 0, s.State().Score)
	assert.Equal(t, best, s.BestScore())
	assert.False(t, s.CanUndo())
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	s := newTestSession(t, 7)
	for i := 0; i < 5; i++ {
		moveUntilMoved(t, s)
	}

	data, err := codec.EncodeSave(s.Save())
	require.NoError(t, err)
	save, err := codec.DecodeSave(data, 0)
	require.NoError(t, err)

	restored, err := Restore(save, config.Default(), rand.New(rand.NewSource(8)), nil)
	require.NoError(t, err)
	assert.Equal(t, s.State(), restored.State())
	assert.Equal(t, s.History(), restored.History())
	assert.Equal(t, s.BestScore(), restored.BestScore())
	assert.Equal(t, s.Rules(), restored.Rules())
}

func TestRestoreKeepsSavedRules(t *testing.T) {
	// Two 2s next to each other win immediately under a target of 4.
	save := codec.Save{
		Game: codec.Serialize(engine.GameState{
			Size: 3,
			Tiles: []engine.Tile{
				{ID: "a", Value: 2, Position: engine.P(0, 0)},
				{ID: "b", Value: 2, Position: engine.P(0, 1)},
			},
			Status: engine.StatusPlaying,
		}),
		Rules: codec.Rules{Preset: "tiny", TargetValue: 4},
	}

	s, err := Restore(save, config.Default(), rand.New(rand.NewSource(9)), nil)
	require.NoError(t, err)
	assert.Equal(t, "tiny", s.Rules().Preset)
	assert.Equal(t, engine.DefaultSpawnWeights, s.Rules().SpawnWeights, "missing weights come from config")

	_, err = s.Move(engine.DirLeft)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusWon, s.State().Status)
	assert.Equal(t, 4, s.BestScore())
}

func TestRestoreRejectsInvalidGame(t *testing.T) {
	save := codec.Save{Game: codec.Snapshot{Size: 0, Status: engine.StatusPlaying}}
	_, err := Restore(save, config.Default(), rand.New(rand.NewSource(1)), nil)
	var verr codec.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLostGameRejectsInput(t *testing.T) {
	lost := engine.GameState{
		Size: 2,
		Tiles: []engine.Tile{
			{ID: "a", Value: 2, Position: engine.P(0, 0)},
			{ID: "b", Value: 4, Position: engine.P(0, 1)},
			{ID: "c", Value: 4, Position: engine.P(1, 0)},
			{ID: "d", Value: 2, Position: engine.P(1, 1)},
		},
		Status: engine.StatusLost,
	}
	s, err := Restore(codec.Save{Game: codec.Serialize(lost)}, config.Default(), rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	assert.False(t, s.CanAcceptInput())

	res, err := s.Move(engine.DirLeft)
	require.NoError(t, err)
	assert.False(t, res.Summary.Moved)
	assert.Equal(t, lost, s.State())
}

func TestCarryBestScore(t *testing.T) {
	s := newTestSession(t, 10)
	s.CarryBestScore(500)
	assert.Equal(t, 500, s.BestScore())
	s.CarryBestScore(100)
	assert.Equal(t, 500, s.BestScore(), "best score never decreases")
	assert.Equal(t, 500, s.Save().BestScore)
}

func TestStuckBoardBecomesLost(t *testing.T) {
	// A full board saved as playing, e.g. from starting_tiles = size*size.
	stuck := engine.GameState{
		Size: 2,
		Tiles: []engine.Tile{
			{ID: "a", Value: 2, Position: engine.P(0, 0)},
			{ID: "b", Value: 4, Position: engine.P(0, 1)},
			{ID: "c", Value: 4, Position: engine.P(1, 0)},
			{ID: "d", Value: 2, Position: engine.P(1, 1)},
		},
		Status: engine.StatusPlaying,
	}
	s, err := Restore(codec.Save{Game: codec.Serialize(stuck)}, config.Default(), rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	require.True(t, s.CanAcceptInput())

	res, err := s.Move(engine.DirUp)
	require.NoError(t, err)
	assert.False(t, res.Summary.Moved)
	assert.Equal(t, engine.StatusLost, s.State().Status)
	assert.False(t, s.CanAcceptInput())
	assert.False(t, s.CanUndo(), "an unmoved board adds no history")

	want := stuck
	want.Status = engine.StatusLost
	assert.Equal(t, want, s.State(), "tiles are unchanged")
}

func TestRestoreRejectsInvalidHistory(t *testing.T) {
	state := engine.GameState{
		Size:   2,
		Tiles:  []engine.Tile{{ID: "a", Value: 2, Position: engine.P(0, 0)}},
		Status: engine.StatusPlaying,
	}
	save := codec.Save{
		Game: codec.Serialize(state),
		History: []codec.Snapshot{
			codec.Serialize(state),
			{Size: 2, Status: engine.StatusPlaying, Tiles: []codec.TileSnapshot{
				{ID: "x", Value: 3, Position: engine.P(0, 0)},
			}},
		},
	}

	_, err := Restore(save, config.Default(), rand.New(rand.NewSource(1)), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history[1]")
	var verr codec.ValidationError
	assert.ErrorAs(t, err, &verr)
}
