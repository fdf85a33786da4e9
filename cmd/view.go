package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/faultline/internal/domain"
	m "github.com/mouse-blink/faultline/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [dir]",
		Short: "View previously saved test reports",
		Long:  "View previously saved test reports from dir, or from the --reports directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := prepare(cmd)
			if err != nil {
				return err
			}

			dir := cfg.Reports
			if len(args) == 1 {
				dir = args[0]
			}

			if dir == "" {
				return errors.New("no reports directory given: pass it as argument or with --reports")
			}

			return workflow.View(domain.ViewArgs{Reports: m.Path(dir)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
