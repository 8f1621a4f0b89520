package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karim/itqan/internal/config"
	"github.com/karim/itqan/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "itqan",
	Short: "Adaptive mastery engine for Arabic self-study",
	Long: "Itqan — the mastery and credit-propagation engine behind a " +
		"self-study Arabic course: per-item strength scoring with time " +
		"decay, a weighted encompassing graph, and the retry practice protocol.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ITQAN_DB env var)")
	rootCmd.PersistentFlags().String("config", "itqan.yaml", "Path to config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(decayCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newLogger builds the CLI logger; --verbose enables debug output.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// openStore resolves the database path (--db flag, then config file,
// then ITQAN_DB / XDG default) and opens the store.
func openStore(cmd *cobra.Command, cfg config.Config, log *zap.Logger) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.Open(path, log)
}
