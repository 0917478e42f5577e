package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/DiasStein2/NeHazars/internal/config"
	"github.com/DiasStein2/NeHazars/internal/identity"
	"github.com/DiasStein2/NeHazars/internal/report"
	"github.com/DiasStein2/NeHazars/internal/scan"
	"github.com/DiasStein2/NeHazars/internal/stats"
	"github.com/DiasStein2/NeHazars/internal/store"
)

func analyzeCmd() *cobra.Command {
	var dataDir string
	var skipReports bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the stats pipeline over the chat exports and write reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
				cfg.UploadDir = ""
			}

			dir, files, err := scan.ResolveSource(cfg.DataDir, cfg.UploadDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Analyzing %d export file(s) in %s\n", len(files), dir)

			resolver := identity.NewResolver(cfg.Aliases())
			result, err := stats.Analyze(dir, resolver, stats.Options{ExtraStopwords: cfg.ExtraStopwords})
			if err != nil {
				return err
			}

			opts := report.Options{}
			if term.IsTerminal(int(os.Stdout.Fd())) {
				opts.Color = true
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					opts.Width = w
				}
			}
			fmt.Print(report.Summary(result, opts))

			if !skipReports {
				if err := report.WriteAll(cfg.OutputDir, result); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Reports written to %s\n", cfg.OutputDir)
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			payload := result.Payload()
			data, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}
			if err := st.SaveResult(data, payload.Meta.TotalMessages, payload.Meta.UserMessages); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "override the export directory")
	cmd.Flags().BoolVar(&skipReports, "no-reports", false, "skip CSV/JSON report files")
	return cmd
}
