package main

import (
	"fmt"

	"bookreview/internal/config"
	"bookreview/internal/export"
	"bookreview/internal/profile"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := export.Build(cmd.Context(), newSource(cfg), export.Options{
			OutDir:    cfg.OutDir,
			StaticDir: "static",
			Profile:   profile.LoadOrDefault(cfg.ProfilePath),
		})
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		for _, path := range written {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().String("out", "", "output directory (env OUT_DIR)")
	bindFlag(buildCmd, config.KeyOutDir, "out")
}
