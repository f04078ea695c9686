package main

import (
	"fmt"
	"strings"

	"bookreview/internal/fallback"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the Notion connection and the loaded data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src := newSource(cfg)
		var lines []string

		status := src.CheckConnection(ctx)
		if status.Success {
			lines = append(lines, okStyle.Render("✓ ")+status.Message)
		} else {
			msg := status.Message
			if status.Code != "" {
				msg += mutedStyle.Render(" (" + status.Code + ")")
			}
			lines = append(lines, errStyle.Render("✗ ")+msg)
		}

		books := src.Books(ctx)
		valid := fallback.ValidateCollection(books)
		state := fallback.DataState(valid)
		lines = append(lines, "", styleFor(state.Type).Render(state.Title), state.Message)
		for _, d := range state.Details {
			lines = append(lines, mutedStyle.Render("  • "+d))
		}
		if dropped := len(books) - len(valid); dropped > 0 {
			lines = append(lines, warnStyle.Render(fmt.Sprintf("%d records failed validation", dropped)))
		}

		bookmarks := src.Bookmarks(ctx)
		lines = append(lines, "", fmt.Sprintf("Bookmarks: %d", len(bookmarks)))

		fmt.Fprintln(cmd.OutOrStdout(), boxStyle.Render(strings.Join(lines, "\n")))
		if !status.Success {
			return fmt.Errorf("connection check failed: %s", status.Message)
		}
		return nil
	},
}

func styleFor(kind string) lipgloss.Style {
	switch kind {
	case fallback.StateSuccess:
		return okStyle
	case fallback.StateWarning:
		return warnStyle
	default:
		return errStyle
	}
}
