package engine

// GenerateTile picks an empty cell and a value for a new tile.
// random is called exactly twice: once for the cell, then once for the value.
// Returns false if the board is full; that is not an error.
func GenerateTile(size int, occupied []Tile, random func() float64, weights []SpawnWeight, newID func() string) (Tile, bool) {
	empty := NewGrid(size, occupied).EmptyCells()
	if len(empty) == 0 {
		return Tile{}, false
	}

	idx := int(random() * float64(len(empty)))
	if idx >= len(empty) {
		idx = len(empty) - 1
	}
	if idx < 0 {
		idx = 0
	}

	return Tile{
		ID:       newID(),
		Value:    chooseValue(weights, random),
		Position: empty[idx],
	}, true
}

// chooseValue makes a weighted random choice. Weights need not sum to 1.
// The last option is returned when floating-point rounding leaves the
// threshold above every cumulative weight.
func chooseValue(weights []SpawnWeight, random func() float64) int {
	total := 0.0
	for _, w := range weights {
		total += w.Weight
	}

	threshold := random() * total
	cumulative := 0.0
	for _, w := range weights {
		cumulative += w.Weight
		if threshold <= cumulative {
			return w.Value
		}
	}
	return weights[len(weights)-1].Value
}
