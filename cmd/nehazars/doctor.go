package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DiasStein2/NeHazars/internal/config"
	"github.com/DiasStein2/NeHazars/internal/scan"
	"github.com/DiasStein2/NeHazars/internal/store"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify export directories, scan counts, and the result store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Directories ===")
			checkDir("Data", cfg.DataDir)
			checkDir("Uploads", cfg.UploadDir)
			checkDir("Outputs", cfg.OutputDir)

			fmt.Println("\n=== Export Scan ===")
			dir, files, err := scan.ResolveSource(cfg.DataDir, cfg.UploadDir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  Source: %s\n", dir)
				fmt.Printf("  Export files: %d\n", len(files))
				for _, f := range files {
					fmt.Printf("    %s\n", f)
				}
			}

			fmt.Println("\n=== Result Store ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'nehazars analyze' first)")
				return nil
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			count, err := st.ResultCount()
			if err != nil {
				return fmt.Errorf("count results: %w", err)
			}
			fmt.Printf("  Cached results: %d\n", count)

			if last, err := st.LastComputedAt(); err == nil && last != "" {
				fmt.Printf("  Last computed: %s\n", last)
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if path == "" {
		fmt.Printf("  %s: (not configured)\n", name)
		return
	}
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
