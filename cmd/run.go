package cmd

import (
	"github.com/spf13/cobra"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the registered tests",
		Long:  "Run the registered tests. This is what faultline does when no command is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
