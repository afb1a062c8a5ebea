package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/shipquote/pkg/cli"
	"mercator-hq/shipquote/pkg/config"
)

var (
	// Global flags
	cfgFile string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "shipquote",
	Short: "Shipquote - shipping price calculator",
	Long: `Shipquote calculates shipping prices for packages.

A quote is computed from the package dimensions, weight, destination and
speed against a rules document that defines:
  - Pricing coefficients and multipliers
  - Alert thresholds for heavy, oversized and bulky packages
  - Delivery time estimates per destination and speed

The service exposes the calculator over HTTP (shipquote serve) and on the
command line (shipquote quote).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the
// returned error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults only when empty)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the dotenv file and the configuration once per process
// and returns the result.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return nil, cli.WrapConfigError("env-file", "failed to load environment file", err)
		}
	}
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.WrapConfigError("config", "failed to load config", err)
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, cli.NewConfigError("config", "configuration not initialized")
	}
	return cfg, nil
}

// rulesPath resolves the rules file: the flag wins over the configuration.
func rulesPath(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Rules.Path
}
