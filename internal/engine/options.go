package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Defaults used when an Options field is left zero.
const (
	DefaultSize          = 4
	DefaultStartingTiles = 2
	DefaultTargetValue   = 2048
)

// Precondition errors. The engine is total over well-formed input; these are
// returned instead of silently corrupting state.
var (
	ErrInvalidOptions   = errors.New("engine: invalid options")
	ErrInvalidState     = errors.New("engine: invalid state")
	ErrInvalidDirection = errors.New("engine: invalid direction")
	ErrNoRandom         = errors.New("engine: no random source")
)

// SpawnWeight is one weighted choice for a newly spawned tile's value.
type SpawnWeight struct {
	Value  int     `yaml:"value" json:"value"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// DefaultSpawnWeights spawns a 2 nine times out of ten and a 4 otherwise.
var DefaultSpawnWeights = []SpawnWeight{
	{Value: 2, Weight: 0.9},
	{Value: 4, Weight: 0.1},
}

// Options configures NewGame and Move.
// Size and StartingTileCount are only read by NewGame.
//
// Zero values select the defaults. StartingTileCount 0 therefore means
// DefaultStartingTiles; pass a negative count to start with an empty board.
type Options struct {
	Size              int
	StartingTileCount int
	TargetValue       int
	SpawnWeights      []SpawnWeight

	// Random returns a float in [0,1). It is required: it is called exactly
	// twice per spawned tile, position first, then value.
	Random func() float64

	// NewID returns a fresh tile ID. Defaults to a random UUID.
	NewID func() string
}

// withDefaults fills zero fields. A negative StartingTileCount means zero.
func (o Options) withDefaults() Options {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.StartingTileCount == 0 {
		o.StartingTileCount = DefaultStartingTiles
	} else if o.StartingTileCount < 0 {
		o.StartingTileCount = 0
	}
	if o.TargetValue == 0 {
		o.TargetValue = DefaultTargetValue
	}
	if len(o.SpawnWeights) == 0 {
		o.SpawnWeights = DefaultSpawnWeights
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

func (o Options) validate() error {
	if o.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrInvalidOptions, o.Size)
	}
	if o.StartingTileCount > o.Size*o.Size {
		return fmt.Errorf("%w: %d starting tiles on a %dx%d board",
			ErrInvalidOptions, o.StartingTileCount, o.Size, o.Size)
	}
	return o.validateRules()
}

// validateRules checks the fields Move reads.
func (o Options) validateRules() error {
	if o.TargetValue < 2 {
		return fmt.Errorf("%w: target %d", ErrInvalidOptions, o.TargetValue)
	}
	total := 0.0
	for _, w := range o.SpawnWeights {
		if !isPowerOfTwo(w.Value) || w.Weight < 0 {
			return fmt.Errorf("%w: spawn weight %+v", ErrInvalidOptions, w)
		}
		total += w.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: spawn weights sum to %v", ErrInvalidOptions, total)
	}
	if o.Random == nil {
		return ErrNoRandom
	}
	return nil
}

// isPowerOfTwo reports whether v is a power of two no smaller than 2.
func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// ValidateState checks the board invariants: positive size, tiles in bounds,
// one tile per cell, unique IDs and power-of-two values.
func ValidateState(s GameState) error {
	if s.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrInvalidState, s.Size)
	}
	if s.Score < 0 || s.MoveCount < 0 {
		return fmt.Errorf("%w: score %d, move count %d", ErrInvalidState, s.Score, s.MoveCount)
	}
	if !s.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidState, s.Status)
	}
	if len(s.Tiles) > s.Size*s.Size {
		return fmt.Errorf("%w: %d tiles on a %dx%d board", ErrInvalidState, len(s.Tiles), s.Size, s.Size)
	}
	cells := make(map[Position]string, len(s.Tiles))
	ids := make(map[string]struct{}, len(s.Tiles))
	for _, t := range s.Tiles {
		if !t.Position.InBounds(s.Size) {
			return fmt.Errorf("%w: tile %s out of bounds at %s", ErrInvalidState, t.ID, t.Position)
		}
		if other, taken := cells[t.Position]; taken {
			return fmt.Errorf("%w: tiles %s and %s share %s", ErrInvalidState, other, t.ID, t.Position)
		}
		if _, dup := ids[t.ID]; dup {
			return fmt.Errorf("%w: duplicate tile id %q", ErrInvalidState, t.ID)
		}
		if !isPowerOfTwo(t.Value) {
			return fmt.Errorf("%w: tile %s has value %d", ErrInvalidState, t.ID, t.Value)
		}
		cells[t.Position] = t.ID
		ids[t.ID] = struct{}{}
	}
	return nil
}
