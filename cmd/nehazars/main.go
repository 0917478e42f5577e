package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "nehazars",
		Short:   "Telegram chat export statistics - parse exports and serve the aggregated stats",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
