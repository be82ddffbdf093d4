package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show high scores for a preset",
	Long: `Display the top 10 scores for a preset. Without an argument the preset
matching the configured board is used; boards that match no preset are
listed under "custom".

Examples:
  t2048 scores
  t2048 scores mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List board presets",
	Args:  cobra.NoArgs,
	Run:   runPresets,
}

func runScores(_ *cobra.Command, args []string) error {
	preset := config.MatchPreset(cfg.Board)
	if len(args) == 1 {
		preset = args[0]
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores(preset, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", preset)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Moves", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-6s  %s\n",
			i+1, e.Score, e.MaxTile, e.Moves, e.Status, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(preset); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}

func runPresets(_ *cobra.Command, _ []string) {
	current := config.MatchPreset(cfg.Board)

	fmt.Printf("  %-8s  %-14s  %-5s  %-6s  %s\n", "Name", "Title", "Size", "Target", "4-chance")
	for _, p := range config.Presets {
		marker := " "
		if p.Name == current {
			marker = "*"
		}
		fmt.Printf("%s %-8s  %-14s  %dx%-3d  %-6d  %.0f%%\n",
			marker, p.Name, p.Title, p.Size, p.Size, p.Target, p.Spawn4*100)
	}
}
