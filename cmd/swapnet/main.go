// Package main implements the swapnet CLI, a resource-report tool for
// swap-network operators.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swapnet",
	Short: "Swap-network construction and resource estimation",
	Long: `swapnet builds parametrized swap-network operators (approximate
controlled swaps, swap-with-zero selection networks, multiplexed swaps)
and reports their non-Clifford resource costs via call-graph expansion.`,
}

func main() {
	rootCmd.AddCommand(reportCmd)

	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
