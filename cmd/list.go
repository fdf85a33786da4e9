package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/faultline/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered suites and tests",
		Long:  "List registered suites and tests, marking which of them the --test and --suite filters select.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := prepare(cmd)
			if err != nil {
				return err
			}

			return workflow.List(domain.ListArgs{
				Plan:    plan,
				Options: domain.OptionsFromConfig(cfg),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
