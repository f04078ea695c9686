package main

import (
	"fmt"
	"log"
	"os"

	"bookreview/internal/config"
	"bookreview/internal/content"
	"bookreview/internal/notion"

	"github.com/spf13/cobra"
)

var (
	v   = config.New()
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Book review site backed by a Notion database",
	Long: `bookshelf serves a personal book review site whose books, bookmarks and
review pages live in Notion databases. It can run as a server that
regenerates pages on a fixed interval, or export the site as static files.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load(v)
		if missing := cfg.Missing(); len(missing) > 0 {
			log.Printf("[WARN] Missing configuration %v, serving sample data", missing)
		}
	},
}

func init() {
	config.LoadEnvFiles()
	rootCmd.AddCommand(serveCmd, buildCmd, checkCmd, previewCmd)
}

// bindFlag ties a flag to a config key so flags override the environment.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// newSource builds the content source. Without a credential there is no
// client and every fetch serves fallback data.
func newSource(c config.Config) *content.Source {
	var client content.Client
	if c.APIKey != "" {
		client = notion.NewClient(c.APIKey,
			notion.WithBaseURL(c.BaseURL),
			notion.WithVersion(c.APIVersion),
			notion.WithRateLimit(c.RequestsPerSec),
		)
	}
	return content.New(c, client)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
