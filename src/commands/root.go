package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/username/bigmacindex/src/config"
	"github.com/username/bigmacindex/src/logger"
)

var (
	// Global flags
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "bigmacindex",
	Short: "Big Mac Index API server and tools",
	Long: `bigmacindex serves the Big Mac Index dataset over a JSON API.

Commands:
  serve   - Run the HTTP API
  import  - Load the Big Mac Index CSV into the database
  token   - Issue a bearer token for the write endpoints`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		if dbPath != "" {
			config.Cfg.DatabasePath = dbPath
		}
		if logLevel != "" {
			config.Cfg.LogLevel = logLevel
		}
		logger.InitLogger(config.Cfg.LogLevel)
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DATABASE_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(tokenCmd)
}
