// Package cli wires the graphcal commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helmsley-labs/graphcal/internal/config"
	"github.com/helmsley-labs/graphcal/internal/logger"
)

var (
	// version is set by goreleaser ldflags.
	version = "dev"

	// verbose enables debug logging.
	verbose bool

	// cfgFile is the config file path when set with --config.
	cfgFile string
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "graphcal",
	Short: "Teams calendar in your browser and terminal",
	Long: `Graphcal links a Microsoft account and serves your Teams calendar as a
web page, with month, week and day views, Teams meeting links, and a
terminal UI over the synced snapshot.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

// loadConfig reads the configuration, honouring --config when given.
func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile, true)
	}
	return config.Load(config.DefaultPath(), false)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the graphcal version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "graphcal "+version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}
