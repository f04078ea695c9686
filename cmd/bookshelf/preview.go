package main

import (
	"fmt"

	"bookreview/internal/render"
	"bookreview/internal/site"

	"github.com/spf13/cobra"
)

var (
	previewWidth int
	previewStyle string
)

var previewCmd = &cobra.Command{
	Use:   "preview <slug>",
	Short: "Render a book review in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		props := site.DetailProps(cmd.Context(), newSource(cfg), args[0])
		if props.Book == nil {
			return fmt.Errorf("book not found: %s", args[0])
		}

		out, err := render.Terminal(props.Page, previewWidth, previewStyle)
		if err != nil {
			return err
		}
		b := props.Book
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s · %s · %s\n", b.Name, b.Author, render.FormatDate(b.Date), render.Stars(b.Rating))
		fmt.Fprint(cmd.OutOrStdout(), out)
		if props.Page == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Review content is not available for this book yet.")
		}
		for _, m := range props.MoreBooks {
			fmt.Fprintf(cmd.OutOrStdout(), "→ %s (/%s)\n", m.Name, site.SlugOf(m))
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewWidth, "width", 80, "word wrap width")
	previewCmd.Flags().StringVar(&previewStyle, "style", "", "glamour style (dark, light, notty); detected when empty")
}
