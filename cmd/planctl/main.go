// Command planctl runs the allocation engine against a portfolio file.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Capacity planning from the command line",
	Long: `planctl loads a portfolio YAML file (teams, projects, holidays, PTO and
scenarios) and runs the allocation engine locally, without a database.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(estimateCmd)
}
