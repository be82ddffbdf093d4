// t2048 plays the 2048 sliding-tile game one command at a time.
// Games live in named save slots in a SQLite database, so a game can be
// continued across invocations.
//
// Usage:
//
//	t2048 new [--preset name]   - Start a new game in the slot
//	t2048 move <dir>...         - Slide tiles (up, down, left, right or u/d/l/r)
//	t2048 undo [n]              - Take back the last n moves
//	t2048 show                  - Print the board
//	t2048 export [--format]     - Dump the save as JSON or YAML
//	t2048 scores [preset]       - Show high scores
//	t2048 presets               - List board presets
//	t2048 slots                 - List save slots
//	t2048 delete [slot]         - Delete a save slot
//
// Global flags:
//
//	--db <path>         - Database path (default from config: ~/.t2048/games.db)
//	--config <path>     - Custom config YAML
//	--slot <name>       - Save slot (default: default)
//	--seed <value>      - RNG seed for reproducible spawns (0 = time based)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/session"
	"github.com/vovakirdan/t2048/internal/storage"
)

const defaultSlot = "default"

var (
	// Global flags
	flagDBPath   string
	flagConfig   string
	flagSlot     string
	flagSeed     int64
	flagLogLevel string

	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal, one move at a time",
	Long: `t2048 is a command-line 2048. Each invocation loads the game from its
save slot, applies the command and saves it again.

Examples:
  t2048 new --preset mini
  t2048 move left up up right
  t2048 undo
  t2048 show
  t2048 scores classic`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to games database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSlot, "slot", defaultSlot, "Save slot name")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(deleteCmd)
}

// setup loads the configuration and builds the logger before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	logger.SetLevel(cfg.LogLevel())
	if flagLogLevel != "" {
		lvl, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q", flagLogLevel)
		}
		logger.SetLevel(lvl)
	}

	logger.Debug("config loaded", "size", cfg.Board.Size, "target", cfg.Board.Target, "db", cfg.Storage.Path)
	return nil
}

func newRNG() *rand.Rand {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("rng seeded", "seed", seed)
	return rand.New(rand.NewSource(seed))
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// loadSession restores the game in the current slot.
func loadSession(store *storage.Store) (*session.Session, error) {
	save, err := store.LoadGame(flagSlot, cfg.History.Limit)
	if err != nil {
		return nil, err
	}
	if save == nil {
		return nil, fmt.Errorf("no game in slot %q (start one with 't2048 new')", flagSlot)
	}
	return session.Restore(*save, cfg, newRNG(), logger)
}

func saveSession(store *storage.Store, slot string, sess *session.Session) error {
	if err := store.SaveGame(slot, sess.Save()); err != nil {
		return err
	}
	logger.Debug("game saved", "slot", slot)
	return nil
}
