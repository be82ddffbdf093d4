package engine

import "fmt"

// NewGame builds an empty board and spawns the starting tiles one after
// another, each spawn seeing the earlier ones as occupied.
func NewGame(opts Options) (GameState, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return GameState{}, err
	}

	tiles := make([]Tile, 0, opts.StartingTileCount)
	for i := 0; i < opts.StartingTileCount; i++ {
		tile, ok := GenerateTile(opts.Size, tiles, opts.Random, opts.SpawnWeights, opts.NewID)
		if !ok {
			break
		}
		tiles = append(tiles, tile)
	}

	return GameState{
		Size:   opts.Size,
		Tiles:  tiles,
		Status: StatusPlaying,
	}, nil
}

// Move slides every tile toward dir, merging equal pairs at most once each,
// then spawns one tile if anything changed. state is never modified.
//
// Moving a lost game is a no-op: the same state comes back with an empty
// summary and no error.
func Move(state GameState, dir Direction, opts Options) (MoveResult, error) {
	if !dir.Valid() {
		return MoveResult{}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	if state.Status == StatusLost {
		return MoveResult{
			State:       state,
			Summary:     MoveSummary{MergedValues: []int{}},
			Annotations: Annotations{},
		}, nil
	}

	opts = opts.withDefaults()
	if err := opts.validateRules(); err != nil {
		return MoveResult{}, err
	}
	if err := ValidateState(state); err != nil {
		return MoveResult{}, err
	}

	grid := NewGrid(state.Size, state.Tiles)
	notes := Annotations{}
	summary := MoveSummary{MergedValues: []int{}}

	for _, pos := range TraversalOrder(state.Size, dir) {
		tile, ok := grid.At(pos)
		if !ok {
			continue
		}

		farthest, next := FarthestPosition(grid, pos, dir)
		target, hit := grid.At(next)

		if hit && target.Value == tile.Value && !grid.locked(pos) && !grid.locked(next) {
			// Snapshots record where each source tile started this move.
			targetFrom := target
			if note, seen := notes[target.ID]; seen && note.PreviousPosition != nil {
				targetFrom.Position = *note.PreviousPosition
			}
			delete(notes, target.ID)

			merged := Tile{ID: opts.NewID(), Value: tile.Value * 2, Position: next}
			grid.clear(pos)
			grid.set(merged, true)

			from := pos
			notes[merged.ID] = Annotation{
				PreviousPosition: &from,
				MergedFrom:       &[2]Tile{tile, targetFrom},
				IsMergedResult:   true,
			}

			summary.ScoreDelta += merged.Value
			summary.MergedValues = append(summary.MergedValues, merged.Value)
			summary.Moved = true
			continue
		}

		if farthest != pos {
			grid.clear(pos)
			tile.Position = farthest
			grid.set(tile, false)
			summary.Moved = true
		}
		from := pos
		notes[tile.ID] = Annotation{PreviousPosition: &from}
	}

	tiles := grid.Tiles()

	if summary.Moved {
		if spawned, ok := GenerateTile(state.Size, tiles, opts.Random, opts.SpawnWeights, opts.NewID); ok {
			tiles = append(tiles, spawned)
			notes[spawned.ID] = Annotation{IsNew: true}
			summary.SpawnedTile = &spawned
		}
	}

	next := GameState{
		Size:      state.Size,
		Tiles:     tiles,
		Score:     state.Score + summary.ScoreDelta,
		MoveCount: state.MoveCount,
	}
	if summary.Moved {
		next.MoveCount++
	}
	next.Status = evaluateStatus(state.Status, next, opts.TargetValue)

	return MoveResult{State: next, Summary: summary, Annotations: notes}, nil
}

// evaluateStatus keeps a win sticky; otherwise a tile at or above target wins
// and a board with no available move is lost.
func evaluateStatus(prev Status, s GameState, target int) Status {
	if prev == StatusWon {
		return StatusWon
	}
	if MaxTile(s) >= target {
		return StatusWon
	}
	if HasAvailableMoves(s) {
		return StatusPlaying
	}
	return StatusLost
}

// HasAvailableMoves returns true if any cell is empty or any two
// 4-adjacent cells hold equal values.
func HasAvailableMoves(s GameState) bool {
	g := NewGrid(s.Size, s.Tiles)
	for row := 0; row < s.Size; row++ {
		for col := 0; col < s.Size; col++ {
			tile, ok := g.At(P(row, col))
			if !ok {
				return true
			}
			// Right and down cover every adjacent pair once.
			if right, ok := g.At(P(row, col+1)); ok && right.Value == tile.Value {
				return true
			}
			if below, ok := g.At(P(row+1, col)); ok && below.Value == tile.Value {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the highest tile value on the board, or 0 if it is empty.
func MaxTile(s GameState) int {
	maxVal := 0
	for _, t := range s.Tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}
