// Command hexsim generates hex worlds and plays their tile economy turn by
// turn.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/hexecon/internal/config"
)

var (
	configPath string // YAML settings file
	logLevel   string // overrides the configured level
	seed       int64  // overrides the configured world seed
)

var rootCmd = &cobra.Command{
	Use:           "hexsim",
	Short:         "Hex-grid tile economy simulation",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "World seed, 0 keeps the configured one")

	rootCmd.AddCommand(runCmd, tilesCmd, worldCmd)
}

// setup loads the settings, applies the flags and installs the logger.
func setup(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log") {
		cfg.LogLevel = logLevel
	}
	if seed != 0 {
		cfg.World.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("hexsim failed", "error", err)
		os.Exit(1)
	}
}
