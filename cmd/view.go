package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"owngrep.dev/pkg/owngrep/internal/controller"
	m "owngrep.dev/pkg/owngrep/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously generated audit reports",
		Long:  "View previously generated audit reports from a results directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := m.Path(viper.GetString(outFlagName))

			manifest, reports, err := auditWorkflow.View(out)
			if err != nil {
				return err
			}

			ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout))

			return ui.DisplaySummary(manifest, reports)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
