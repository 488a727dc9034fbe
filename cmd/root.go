// Package cmd implements the playoffsim CLI: loading a region's RunConfig,
// executing the Monte Carlo engine, and printing or exporting the resulting
// odds table.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verbose switches the constructed logger from production to development
// mode, set via the --verbose persistent flag.
var verbose bool

// rootCmd is the top-level cobra command for the playoffsim CLI.
var rootCmd = &cobra.Command{
	Use:   "playoffsim",
	Short: "Region-finish Monte Carlo playoff-odds engine",
	Long:  "Simulate completions of a region's remaining football games and report each school's playoff odds.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode structured logging")
	rootCmd.AddCommand(runCmd)
}

// newLogger constructs a zap.Logger matching the --verbose flag, falling
// back to zap.NewNop() if construction itself fails.
func newLogger() *zap.Logger {
	var l *zap.Logger
	var err error
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}
