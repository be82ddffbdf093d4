package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/t2048/internal/engine"
)

func TestRenderPlainBoard(t *testing.T) {
	state := engine.GameState{
		Size: 2,
		Tiles: []engine.Tile{
			{ID: "a", Value: 2, Position: engine.P(0, 0)},
			{ID: "b", Value: 16, Position: engine.P(1, 1)},
		},
		Score:     20,
		MoveCount: 3,
		Status:    engine.StatusPlaying,
	}

	got := renderBoard(state, 40, nil, false)
	want := "Score: 20  Best: 40  Moves: 3\n" +
		"   2    .\n" +
		"   .   16\n"
	if got != want {
		t.Errorf("renderBoard() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderBoardSummaryAndStatus(t *testing.T) {
	state := engine.GameState{
		Size: 2,
		Tiles: []engine.Tile{
			{ID: "a", Value: 2048, Position: engine.P(0, 0)},
		},
		Score:  2048,
		Status: engine.StatusWon,
	}
	summary := &engine.MoveSummary{Moved: true, ScoreDelta: 2052, MergedValues: []int{2048, 4}}

	got := renderBoard(state, 2048, summary, false)
	if !strings.Contains(got, "+2052 (merged 2048, 4)") {
		t.Errorf("missing merge line in %q", got)
	}
	if !strings.Contains(got, "You win!") {
		t.Errorf("missing win line in %q", got)
	}

	state.Status = engine.StatusLost
	if got := renderBoard(state, 0, nil, false); !strings.Contains(got, "Game over") {
		t.Errorf("missing game over line in %q", got)
	}
}

func TestCellWidth(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{2, 4},
		{1024, 4},
		{16384, 5},
		{131072, 6},
	}

	for _, tt := range tests {
		state := engine.GameState{Size: 1, Tiles: []engine.Tile{{ID: "x", Value: tt.value}}}
		if got := cellWidth(state); got != tt.want {
			t.Errorf("cellWidth(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestRenderStyledBoardHasEveryValue(t *testing.T) {
	state := engine.GameState{
		Size: 3,
		Tiles: []engine.Tile{
			{ID: "a", Value: 8, Position: engine.P(0, 2)},
			{ID: "b", Value: 128, Position: engine.P(2, 0)},
		},
		Status: engine.StatusPlaying,
	}

	got := renderStyledGrid(state)
	for _, want := range []string{"8", "128"} {
		if !strings.Contains(got, want) {
			t.Errorf("styled board missing %q:\n%s", want, got)
		}
	}
	if lines := strings.Count(got, "\n") + 1; lines != state.Size+2 {
		t.Errorf("styled board has %d lines, want %d", lines, state.Size+2)
	}
}
