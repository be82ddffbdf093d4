package engine

// Grid is a size×size board indexed by position.
// Cells are stored in row-major order: index = row*Size + col.
type Grid struct {
	Size  int
	cells []cell
}

type cell struct {
	tile   Tile
	filled bool
	locked bool // merged this pass; cannot merge again
}

// NewGrid places tiles onto an empty board. Tiles are assumed to satisfy
// ValidateState; a later tile on an occupied cell overwrites the earlier one.
func NewGrid(size int, tiles []Tile) *Grid {
	g := &Grid{
		Size:  size,
		cells: make([]cell, size*size),
	}
	for _, t := range tiles {
		g.set(t, false)
	}
	return g
}

func (g *Grid) index(p Position) int {
	return p.Row*g.Size + p.Col
}

// InBounds returns true if the position is on the board.
func (g *Grid) InBounds(p Position) bool {
	return p.InBounds(g.Size)
}

// At returns the tile at p. Out-of-bounds positions are reported empty.
func (g *Grid) At(p Position) (Tile, bool) {
	if !g.InBounds(p) {
		return Tile{}, false
	}
	c := g.cells[g.index(p)]
	return c.tile, c.filled
}

// Empty reports whether p is on the board and unoccupied.
func (g *Grid) Empty(p Position) bool {
	return g.InBounds(p) && !g.cells[g.index(p)].filled
}

func (g *Grid) locked(p Position) bool {
	return g.InBounds(p) && g.cells[g.index(p)].locked
}

func (g *Grid) set(t Tile, locked bool) {
	g.cells[g.index(t.Position)] = cell{tile: t, filled: true, locked: locked}
}

func (g *Grid) clear(p Position) {
	g.cells[g.index(p)] = cell{}
}

// Tiles flattens the board back to a tile list in row-major order.
func (g *Grid) Tiles() []Tile {
	tiles := make([]Tile, 0, len(g.cells))
	for _, c := range g.cells {
		if c.filled {
			tiles = append(tiles, c.tile)
		}
	}
	return tiles
}

// EmptyCells returns every unoccupied position in row-major order.
func (g *Grid) EmptyCells() []Position {
	var empty []Position
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			p := P(row, col)
			if !g.cells[g.index(p)].filled {
				empty = append(empty, p)
			}
		}
	}
	return empty
}

// TraversalOrder visits every cell once so that tiles nearest the edge the
// move pushes toward are resolved first.
func TraversalOrder(size int, dir Direction) []Position {
	v := dir.Vector()
	order := make([]Position, 0, size*size)
	for i := 0; i < size; i++ {
		row := i
		if v.DRow == 1 {
			row = size - 1 - i
		}
		for j := 0; j < size; j++ {
			col := j
			if v.DCol == 1 {
				col = size - 1 - j
			}
			order = append(order, P(row, col))
		}
	}
	return order
}

// FarthestPosition walks from start along dir while the next cell is empty.
// farthest is the last empty cell reached (start itself if blocked at once);
// next is one step beyond it and may be occupied or off the board.
func FarthestPosition(g *Grid, start Position, dir Direction) (farthest, next Position) {
	v := dir.Vector()
	farthest = start
	next = start.Add(v)
	for g.Empty(next) {
		farthest = next
		next = next.Add(v)
	}
	return farthest, next
}
