// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package cli

import (
	"fmt"
	"os"

	"github.com/jeremyhahn/go-quorum/internal/config"
	"github.com/jeremyhahn/go-quorum/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Global configuration
	globalConfig *config.Config
	configFile   string
	outputFlag   string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quorum",
	Short: "go-quorum CLI - Threshold secret sharing and sealed ballots",
	Long: `go-quorum CLI splits a master secret into transcribable share tokens,
reconstructs it from a quorum of tokens, and seals/opens authenticated
payloads under the shared secret.

A share token is self-describing and checksum-protected; a single
mistyped character is always detected before reconstruction is
attempted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("output") {
			cfg.OutputFormat = outputFlag
		}
		if verbose {
			cfg.Debug = true
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		globalConfig = cfg
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is built-in defaults plus QUORUM_* environment)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(combineCmd)
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(demoCmd)
}

// getConfig returns the global configuration
func getConfig() *config.Config {
	return globalConfig
}

// getLogger returns a logger honoring the debug setting
func getLogger() *logging.Logger {
	return logging.NewLogger(getConfig().Debug)
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(getConfig().OutputFormat, os.Stderr)
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
	os.Exit(1)
}

// printVerbose prints a message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] "+format+"\n", args...)
	}
}
