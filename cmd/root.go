package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/killallgit/practitioners-pod/pkg/config"
	"github.com/killallgit/practitioners-pod/pkg/logging"
	"github.com/spf13/cobra"
)

// appConfig is loaded by the root pre-run hook for every command that needs it
var appConfig *config.Config

// closeLog releases the log file sink, if one was opened
var closeLog = func() error { return nil }

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "podsite",
	Short: "The Practitioners Pod API server",
	Long: `The Practitioners Pod API - backend for the podcast website

Serves the episode directory, guest listings and site statistics,
accepts contact, newsletter and guest application forms, and exposes
a token-protected admin API for reviewing submissions.

Features:
  • Episode directory with search, topic filter and sort orders
  • Episode sync from the show's YouTube channel
  • Contact, newsletter and guest application forms
  • Admin dashboard behind HS256 bearer tokens`,
	SilenceUsage:       true,
	PersistentPostRunE: teardown,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// assigned here rather than in the literal to avoid an initialization cycle
	// (setup -> skipsConfig -> rootCmd)
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().String("config", "", "settings file (default ./config/settings.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// skipsConfig reports whether cmd runs without configuration
func skipsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return cmd == rootCmd
}

// setup loads configuration and installs the logger before a command runs
func setup(cmd *cobra.Command, _ []string) error {
	if skipsConfig(cmd) {
		return nil
	}

	path, _ := cmd.Flags().GetString("config")
	config.SetConfigFile(path)
	if err := config.Load(); err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts := logging.Options{
		Level:    cfg.Logging.Level,
		JSON:     cfg.Logging.Format == "json",
		FilePath: cfg.Logging.FilePath,
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		opts.Level = f.Value.String()
	}
	if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
		opts.JSON = true
	}

	_, cleanup, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	closeLog = cleanup
	appConfig = cfg

	slog.Debug("configuration loaded", "environment", cfg.Environment, "database", cfg.Database.Path)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	err := closeLog()
	closeLog = func() error { return nil }
	return err
}
