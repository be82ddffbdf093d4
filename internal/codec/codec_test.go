package codec

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/t2048/internal/engine"
)

// playedState returns a state several moves into a seeded game.
func playedState(t *testing.T) engine.GameState {
	t.Helper()
	r := rand.New(rand.NewSource(3))
	n := 0
	opts := engine.Options{
		Random: r.Float64,
		NewID: func() string {
			n++
			return fmt.Sprintf("id%d", n)
		},
	}
	state, err := engine.NewGame(opts)
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		res, err := engine.Move(state, engine.Directions[i%4], opts)
		require.NoError(t, err)
		state = res.State
	}
	return state
}

func TestRoundTrip(t *testing.T) {
	state := playedState(t)

	got := Deserialize(Serialize(state))

	assert.Equal(t, state.Size, got.Size)
	assert.Equal(t, state.Score, got.Score)
	assert.Equal(t, state.MoveCount, got.MoveCount)
	assert.Equal(t, state.Status, got.Status)
	assert.ElementsMatch(t, state.Tiles, got.Tiles)
}

func TestSerializeDoesNotAlias(t *testing.T) {
	state := playedState(t)
	snap := Serialize(state)
	snap.Tiles[0].Value = 1 << 20

	assert.NotEqual(t, snap.Tiles[0].Value, state.Tiles[0].Value)

	back := Deserialize(snap)
	back.Tiles[0].ID = "changed"
	assert.NotEqual(t, "changed", snap.Tiles[0].ID)
}

func TestEncodeDecode(t *testing.T) {
	state := playedState(t)

	data, err := Encode(state)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"moveCount"`)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"size":`))
	require.Error(t, err)

	_, err = Decode([]byte(`{"size":2,"status":"playing","tiles":[
		{"id":"a","value":2,"position":{"row":0,"col":0}},
		{"id":"b","value":4,"position":{"row":0,"col":0}}]}`))
	var verr ValidationError
	require.True(t, errors.As(err, &verr), "err = %v", err)
	assert.Equal(t, CodeOverlap, verr.Code)
}

func TestValidate(t *testing.T) {
	base := func() Snapshot {
		return Snapshot{
			Size:   2,
			Status: engine.StatusPlaying,
			Tiles: []TileSnapshot{
				{ID: "a", Value: 2, Position: engine.P(0, 0)},
				{ID: "b", Value: 4, Position: engine.P(1, 1)},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Snapshot)
		code   string
	}{
		{"zero size", func(s *Snapshot) { s.Size = 0 }, CodeBadSize},
		{"negative score", func(s *Snapshot) { s.Score = -1 }, CodeBadCounter},
		{"unknown status", func(s *Snapshot) { s.Status = "paused" }, CodeBadStatus},
		{"out of bounds", func(s *Snapshot) { s.Tiles[1].Position = engine.P(2, 0) }, CodeOutOfBounds},
		{"overlap", func(s *Snapshot) { s.Tiles[1].Position = engine.P(0, 0) }, CodeOverlap},
		{"duplicate id", func(s *Snapshot) { s.Tiles[1].ID = "a" }, CodeBadID},
		{"empty id", func(s *Snapshot) { s.Tiles[0].ID = "" }, CodeBadID},
		{"odd value", func(s *Snapshot) { s.Tiles[0].Value = 6 }, CodeBadValue},
		{"too many tiles", func(s *Snapshot) {
			for i := 0; i < 4; i++ {
				s.Tiles = append(s.Tiles, TileSnapshot{ID: fmt.Sprint(i), Value: 2, Position: engine.P(i/2, i%2)})
			}
		}, CodeTooMany},
	}

	require.NoError(t, Validate(base()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base()
			tt.mutate(&snap)
			err := Validate(snap)
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "err = %v", err)
			assert.Equal(t, tt.code, verr.Code)
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	snap := Serialize(playedState(t))

	data, err := Marshal(snap, FormatYAML)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, snap, back)

	_, err = Marshal(snap, "xml")
	assert.Error(t, err)
}
