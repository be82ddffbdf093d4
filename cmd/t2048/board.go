package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/engine"
)

// tileColors maps tile values to 256-color backgrounds; larger values
// reuse the last entry.
var tileColors = []struct {
	value int
	bg    string
	fg    string
}{
	{2, "255", "235"},
	{4, "230", "235"},
	{8, "215", "255"},
	{16, "209", "255"},
	{32, "203", "255"},
	{64, "196", "255"},
	{128, "229", "235"},
	{256, "228", "235"},
	{512, "227", "235"},
	{1024, "226", "235"},
	{2048, "220", "235"},
	{4096, "135", "255"},
}

var (
	emptyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	boardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245"))
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	wonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	lostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func tileStyle(value int, width int) lipgloss.Style {
	c := tileColors[len(tileColors)-1]
	for _, tc := range tileColors {
		if value <= tc.value {
			c = tc
			break
		}
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		Bold(true).
		Background(lipgloss.Color(c.bg)).
		Foreground(lipgloss.Color(c.fg))
}

// printBoard writes the board to stdout, styled when stdout is a terminal.
func printBoard(state engine.GameState, best int, summary *engine.MoveSummary) {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Print(renderBoard(state, best, summary, styled))
}

// cellWidth fits the widest value on the board, at least four characters.
func cellWidth(state engine.GameState) int {
	return max(4, len(strconv.Itoa(engine.MaxTile(state))))
}

func renderBoard(state engine.GameState, best int, summary *engine.MoveSummary, styled bool) string {
	var b strings.Builder

	hud := fmt.Sprintf("Score: %d  Best: %d  Moves: %d", state.Score, best, state.MoveCount)
	if styled {
		hud = hudStyle.Render(hud)
	}
	b.WriteString(hud)
	b.WriteString("\n")

	if styled {
		b.WriteString(renderStyledGrid(state))
	} else {
		b.WriteString(renderPlainGrid(state))
	}
	b.WriteString("\n")

	if summary != nil && summary.Moved && len(summary.MergedValues) > 0 {
		merged := make([]string, len(summary.MergedValues))
		for i, v := range summary.MergedValues {
			merged[i] = strconv.Itoa(v)
		}
		line := fmt.Sprintf("+%d (merged %s)", summary.ScoreDelta, strings.Join(merged, ", "))
		if styled {
			line = mergedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if msg := statusLine(state.Status); msg != "" {
		if styled {
			if state.Status == engine.StatusWon {
				msg = wonStyle.Render(msg)
			} else {
				msg = lostStyle.Render(msg)
			}
		}
		b.WriteString(msg)
		b.WriteString("\n")
	}
	return b.String()
}

func statusLine(s engine.Status) string {
	switch s {
	case engine.StatusWon:
		return "You win! Keep going for a higher score."
	case engine.StatusLost:
		return "Game over: no moves left."
	}
	return ""
}

// renderPlainGrid prints one row per line with "." for empty cells.
func renderPlainGrid(state engine.GameState) string {
	width := cellWidth(state)
	var b strings.Builder
	for row := 0; row < state.Size; row++ {
		cells := make([]string, state.Size)
		for col := 0; col < state.Size; col++ {
			text := "."
			if tile, ok := state.TileAt(engine.P(row, col)); ok {
				text = strconv.Itoa(tile.Value)
			}
			cells[col] = fmt.Sprintf("%*s", width, text)
		}
		b.WriteString(strings.Join(cells, " "))
		if row < state.Size-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderStyledGrid(state engine.GameState) string {
	width := cellWidth(state) + 2
	rows := make([]string, state.Size)
	for row := 0; row < state.Size; row++ {
		cells := make([]string, state.Size)
		for col := 0; col < state.Size; col++ {
			tile, ok := state.TileAt(engine.P(row, col))
			if !ok {
				cells[col] = emptyCellStyle.Width(width).Align(lipgloss.Right).Render("· ")
				continue
			}
			cells[col] = tileStyle(tile.Value, width).Render(strconv.Itoa(tile.Value) + " ")
		}
		rows[row] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
