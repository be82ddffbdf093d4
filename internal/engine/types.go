// Package engine implements the deterministic grid-merge rules of a 2048-style
// sliding-tile puzzle. Every function is pure over its explicit inputs: the
// caller's GameState is never mutated and the only nondeterminism is the
// injected random source.
package engine

import (
	"fmt"
	"strings"
)

// Position is a cell on the board. Row grows downward, Col grows rightward.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns the position offset by v.
func (p Position) Add(v Vector) Position {
	return Position{Row: p.Row + v.DRow, Col: p.Col + v.DCol}
}

// InBounds reports whether p lies on a size×size board.
func (p Position) InBounds(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// Tile is a single numbered piece. Only persistent identity lives here;
// per-move animation hints are returned separately as Annotations.
type Tile struct {
	ID       string   `json:"id" yaml:"id"`
	Value    int      `json:"value" yaml:"value"`
	Position Position `json:"position" yaml:"position"`
}

// Status is the game's terminal-state evaluation.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPlaying, StatusWon, StatusLost:
		return true
	}
	return false
}

// GameState is an immutable snapshot of one game.
// At most one tile occupies a cell and len(Tiles) <= Size*Size.
type GameState struct {
	Size      int
	Tiles     []Tile
	Score     int
	MoveCount int
	Status    Status
}

// Clone returns a copy of the state that shares no memory with s.
func (s GameState) Clone() GameState {
	out := s
	out.Tiles = make([]Tile, len(s.Tiles))
	copy(out.Tiles, s.Tiles)
	return out
}

// TileAt returns the tile occupying pos, if any.
func (s GameState) TileAt(pos Position) (Tile, bool) {
	for _, t := range s.Tiles {
		if t.Position == pos {
			return t, true
		}
	}
	return Tile{}, false
}

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a fixed order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Vector is a unit step on the board.
type Vector struct {
	DRow int
	DCol int
}

// Vector returns the unit step for d.
func (d Direction) Vector() Vector {
	switch d {
	case DirUp:
		return Vector{DRow: -1}
	case DirDown:
		return Vector{DRow: 1}
	case DirLeft:
		return Vector{DCol: -1}
	case DirRight:
		return Vector{DCol: 1}
	default:
		return Vector{}
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection accepts "up", "down", "left", "right" and their first letters.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// MoveSummary describes what one call to Move did.
type MoveSummary struct {
	Moved        bool
	ScoreDelta   int
	MergedValues []int // in traversal order
	SpawnedTile  *Tile
}

// Annotation holds one-shot rendering hints for a tile after a move.
type Annotation struct {
	PreviousPosition *Position
	MergedFrom       *[2]Tile // moving tile first, then the tile it merged into
	IsNew            bool
	IsMergedResult   bool
}

// Annotations maps tile IDs in the resulting state to their hints.
type Annotations map[string]Annotation

// MoveResult is returned by Move.
type MoveResult struct {
	State       GameState
	Summary     MoveSummary
	Annotations Annotations
}
