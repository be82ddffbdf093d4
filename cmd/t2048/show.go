package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/codec"
)

var flagFormat string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the board",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the slot's save payload",
	Long: `Print the save payload (game, undo history, best score and rules) of
the slot to stdout.

Examples:
  t2048 export > game.json
  t2048 export --format yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagFormat, "format", string(codec.FormatJSON), "Output format: json or yaml")
}

func runShow(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := loadSession(store)
	if err != nil {
		return err
	}

	printBoard(sess.State(), sess.BestScore(), nil)
	if sess.CanUndo() {
		fmt.Printf("%d move(s) can be undone.\n", len(sess.History()))
	}
	return nil
}

func runExport(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := loadSession(store)
	if err != nil {
		return err
	}

	return writeExport(os.Stdout, sess.Save(), codec.Format(flagFormat))
}

// writeExport encodes save in format and writes it to w with a trailing newline.
func writeExport(w io.Writer, save codec.Save, format codec.Format) error {
	data, err := codec.Marshal(save, format)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("cannot write export: %w", err)
	}
	return nil
}
