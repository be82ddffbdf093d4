package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	RunE:  runSlots,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [slot]",
	Short: "Delete a save slot (default: the --slot flag)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDelete,
}

func runSlots(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	slots, err := store.Slots()
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		fmt.Println("No saved games.")
		return nil
	}

	for _, slot := range slots {
		save, err := store.LoadGame(slot, cfg.History.Limit)
		if err != nil {
			fmt.Printf("  %-16s  (unreadable: %v)\n", slot, err)
			continue
		}
		if save == nil {
			continue
		}
		g := save.Game
		fmt.Printf("  %-16s  %dx%d  score %-6d  moves %-5d  %s\n",
			slot, g.Size, g.Size, g.Score, g.MoveCount, g.Status)
	}
	return nil
}

func runDelete(_ *cobra.Command, args []string) error {
	slot := flagSlot
	if len(args) == 1 {
		slot = args[0]
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteGame(slot); err != nil {
		return err
	}
	logger.Info("slot deleted", "slot", slot)
	return nil
}
