// Package cmd provides the command-line interface for memlat.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "memlat",
	Short: "Memlat measures the average per-access penalty of strided " +
		"access patterns over a simulated memory hierarchy.",
	Long: `Memlat simulates a chain of fully-associative caches over a ` +
		`flat-latency backing memory and sweeps synthetic strided access ` +
		`patterns through it, estimating the average per-access penalty ` +
		`for each stride.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
