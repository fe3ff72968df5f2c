// Package cmd implements forestdemo's cobra command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "forestdemo",
	Short: "Drives a synthetic workload through an adaptive spatial forest",
	Long: `forestdemo constructs an AdaptiveForest, inserts a configurable
number of randomly-placed entities into it, runs one adaptation pass that
may subdivide and merge trees by density, and prints forest statistics
and counts of the subdivision, merge and migration events that result.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a forestdemo YAML config file")
	rootCmd.AddCommand(runCmd)
}
