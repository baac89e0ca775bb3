package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mvpctl",
	Short:         "Pipeline tooling for the MVP build platform",
	Long:          `mvpctl fetches job records into build-agent inputs and reports pipeline progress back to the jobs table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
