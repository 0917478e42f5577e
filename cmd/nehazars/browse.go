package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DiasStein2/NeHazars/internal/config"
	"github.com/DiasStein2/NeHazars/internal/identity"
	"github.com/DiasStein2/NeHazars/internal/scan"
	"github.com/DiasStein2/NeHazars/internal/stats"
	"github.com/DiasStein2/NeHazars/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the computed statistics in an interactive terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			dir, _, err := scan.ResolveSource(cfg.DataDir, cfg.UploadDir)
			if err != nil {
				return err
			}

			resolver := identity.NewResolver(cfg.Aliases())
			result, err := stats.Analyze(dir, resolver, stats.Options{ExtraStopwords: cfg.ExtraStopwords})
			if err != nil {
				return err
			}

			return tui.Run(result)
		},
	}
}
