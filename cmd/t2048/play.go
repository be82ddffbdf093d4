package main

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/session"
	"github.com/vovakirdan/t2048/internal/storage"
)

var flagPreset string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new game in the slot",
	Long: `Start a new game, replacing whatever is in the slot. The slot's best
score is kept.

Without --preset the board rules come from the configuration.

Examples:
  t2048 new
  t2048 new --preset large
  t2048 new --slot work --seed 42`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

var moveCmd = &cobra.Command{
	Use:   "move <dir>...",
	Short: "Slide the tiles",
	Long: `Apply one or more moves in order. Directions are up, down, left and
right, or their first letters.

Examples:
  t2048 move left
  t2048 move u l l d r`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMove,
}

var undoCmd = &cobra.Command{
	Use:   "undo [n]",
	Short: "Take back moves",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUndo,
}

func init() {
	newCmd.Flags().StringVar(&flagPreset, "preset", "", "Board preset (see 't2048 presets')")
}

func runNew(_ *cobra.Command, _ []string) error {
	gameCfg := cfg
	if flagPreset != "" {
		if err := config.ApplyPreset(&gameCfg, flagPreset); err != nil {
			return err
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := startGame(store, flagSlot, gameCfg, newRNG())
	if err != nil {
		return err
	}
	printBoard(sess.State(), sess.BestScore(), nil)
	return nil
}

// startGame replaces the slot with a new game. The slot's best score is
// carried over when the old save is readable.
func startGame(store *storage.Store, slot string, gameCfg config.Config, rng *rand.Rand) (*session.Session, error) {
	sess, err := session.New(gameCfg, rng, logger)
	if err != nil {
		return nil, err
	}

	if old, err := store.LoadGame(slot, gameCfg.History.Limit); err != nil {
		logger.Warn("ignoring unreadable save", "slot", slot, "err", err)
	} else if old != nil {
		sess.CarryBestScore(old.BestScore)
	}

	if err := saveSession(store, slot, sess); err != nil {
		return nil, err
	}
	logger.Info("new game", "slot", slot, "preset", sess.Rules().Preset)
	return sess, nil
}

func runMove(_ *cobra.Command, args []string) error {
	dirs := make([]engine.Direction, len(args))
	for i, arg := range args {
		dir, err := engine.ParseDirection(arg)
		if err != nil {
			return err
		}
		dirs[i] = dir
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := loadSession(store)
	if err != nil {
		return err
	}

	last, err := applyMoves(store, sess, dirs)
	if err != nil {
		return err
	}
	if err := saveSession(store, flagSlot, sess); err != nil {
		return err
	}

	printBoard(sess.State(), sess.BestScore(), last)
	if !sess.CanAcceptInput() {
		fmt.Println("Start a new game with 't2048 new'.")
	}
	return nil
}

// applyMoves plays dirs in order until the game is lost, recording a score
// on every finishing transition. It returns the summary of the last move
// played, or nil if none was.
func applyMoves(store *storage.Store, sess *session.Session, dirs []engine.Direction) (*engine.MoveSummary, error) {
	var last *engine.MoveSummary
	for _, dir := range dirs {
		if !sess.CanAcceptInput() {
			break
		}

		prev := sess.State().Status
		res, err := sess.Move(dir)
		if err != nil {
			return last, err
		}
		summary := res.Summary
		last = &summary
		if !summary.Moved {
			logger.Debug("nothing moved", "dir", dir)
		}

		// Checked after unmoved results too: a stuck board turns lost
		// without anything moving.
		if err := recordFinish(store, sess, prev); err != nil {
			return last, err
		}
	}
	return last, nil
}

// recordFinish stores a score when the game is lost, or the first time it
// is won. A win is sticky, so a won game never records a loss.
func recordFinish(store *storage.Store, sess *session.Session, prev engine.Status) error {
	state := sess.State()
	if state.Status == prev || state.Status == engine.StatusPlaying {
		return nil
	}

	id, err := store.SaveScore(storage.ScoreEntry{
		Preset:  sess.Rules().Preset,
		Score:   state.Score,
		MaxTile: engine.MaxTile(state),
		Moves:   state.MoveCount,
		Status:  string(state.Status),
	})
	if err != nil {
		return err
	}
	logger.Info("score recorded", "id", id, "status", state.Status, "score", state.Score)
	return nil
}

func runUndo(_ *cobra.Command, args []string) error {
	n := 1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid move count %q", args[0])
		}
		n = v
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := loadSession(store)
	if err != nil {
		return err
	}

	undone := undoMoves(sess, n)
	if undone == 0 {
		fmt.Println("Nothing to undo.")
		return nil
	}

	if err := saveSession(store, flagSlot, sess); err != nil {
		return err
	}
	fmt.Printf("Undid %d move(s).\n", undone)
	printBoard(sess.State(), sess.BestScore(), nil)
	return nil
}

// undoMoves takes back up to n moves and returns how many were undone.
func undoMoves(sess *session.Session, n int) int {
	undone := 0
	for undone < n && sess.Undo() {
		undone++
	}
	return undone
}
