package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/trustguard/internal/config"
	tglog "github.com/nao1215/trustguard/internal/log"
)

// NewRootCmd creates the root command for TrustGuard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trustguard",
		Short: "Trust scoring for job postings",
		Long: `TrustGuard estimates how trustworthy a job posting is.

It checks the posting text for common recruitment scam patterns, rates the
reputation of the application link, asks a local language model for a second
opinion and, when a company website is given, verifies the company itself.
The result is a 0-100 trust score, a label, the reasons behind it and a
recommended action.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .trustguard.yaml or $XDG_CONFIG_HOME/trustguard/config.yaml)")
	cmd.PersistentFlags().String("db-dir", "",
		"Directory of the history database (default: $XDG_DATA_HOME/trustguard)")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewAuthCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the secure structured logger on stderr.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	asJSON, err := cmd.Flags().GetBool("log-json")
	if err == nil && asJSON {
		return tglog.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return tglog.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}

// loadConfig builds the configuration from defaults and the configuration
// file, then applies the global flags. Command specific flags are applied
// by the caller.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if cmd.Flags().Changed("db-dir") {
		if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
