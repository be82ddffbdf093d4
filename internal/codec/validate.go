package codec

import (
	"fmt"

	"github.com/vovakirdan/t2048/internal/engine"
)

// Validation error codes.
const (
	CodeBadSize     = "BAD_SIZE"
	CodeBadCounter  = "BAD_COUNTER"
	CodeBadStatus   = "BAD_STATUS"
	CodeTooMany     = "TOO_MANY_TILES"
	CodeOutOfBounds = "OUT_OF_BOUNDS"
	CodeOverlap     = "OVERLAP"
	CodeBadID       = "BAD_ID"
	CodeBadValue    = "BAD_VALUE"
)

// ValidationError contains details about a snapshot that cannot be loaded.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("codec: [%s] %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that a snapshot describes a well-formed game.
func Validate(snap Snapshot) error {
	if snap.Size < 1 {
		return invalid(CodeBadSize, "board size %d", snap.Size)
	}
	if snap.Score < 0 || snap.MoveCount < 0 {
		return invalid(CodeBadCounter, "score %d, move count %d", snap.Score, snap.MoveCount)
	}
	if !snap.Status.Valid() {
		return invalid(CodeBadStatus, "unknown status %q", snap.Status)
	}
	if len(snap.Tiles) > snap.Size*snap.Size {
		return invalid(CodeTooMany, "%d tiles on a %dx%d board", len(snap.Tiles), snap.Size, snap.Size)
	}

	cells := make(map[engine.Position]string, len(snap.Tiles))
	ids := make(map[string]struct{}, len(snap.Tiles))
	for _, t := range snap.Tiles {
		if t.ID == "" {
			return invalid(CodeBadID, "tile at %s has no id", t.Position)
		}
		if _, dup := ids[t.ID]; dup {
			return invalid(CodeBadID, "duplicate tile id %q", t.ID)
		}
		if !t.Position.InBounds(snap.Size) {
			return invalid(CodeOutOfBounds, "tile %s at %s", t.ID, t.Position)
		}
		if other, taken := cells[t.Position]; taken {
			return invalid(CodeOverlap, "tiles %s and %s share %s", other, t.ID, t.Position)
		}
		if t.Value < 2 || t.Value&(t.Value-1) != 0 {
			return invalid(CodeBadValue, "tile %s has value %d", t.ID, t.Value)
		}
		ids[t.ID] = struct{}{}
		cells[t.Position] = t.ID
	}
	return nil
}
