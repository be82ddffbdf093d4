package engine

import "fmt"

// sequence returns a random source that cycles through values.
func sequence(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

// counterIDs returns a deterministic ID source: t1, t2, ...
func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

// boardFromRows builds a playing state from a value grid; 0 is empty.
// Tile IDs are "row-col".
func boardFromRows(rows [][]int) GameState {
	s := GameState{Size: len(rows), Status: StatusPlaying}
	for r, row := range rows {
		for c, v := range row {
			if v == 0 {
				continue
			}
			s.Tiles = append(s.Tiles, Tile{ID: fmt.Sprintf("%d-%d", r, c), Value: v, Position: P(r, c)})
		}
	}
	return s
}

// rowsOf renders a state back to a value grid, leaving out the tile with
// skipID (usually the spawned one).
func rowsOf(s GameState, skipID string) [][]int {
	rows := make([][]int, s.Size)
	for r := range rows {
		rows[r] = make([]int, s.Size)
	}
	for _, t := range s.Tiles {
		if t.ID == skipID {
			continue
		}
		rows[t.Position.Row][t.Position.Col] = t.Value
	}
	return rows
}

func spawnedID(res MoveResult) string {
	if res.Summary.SpawnedTile == nil {
		return ""
	}
	return res.Summary.SpawnedTile.ID
}

func testOptions(random func() float64) Options {
	return Options{Random: random, NewID: counterIDs()}
}
