// Package dashboardcmder provides the dashboard command.
package dashboardcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/pkg/cogniz"
)

const dashboardShortDesc string = "Print the Cogniz dashboard URL"

func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: dashboardShortDesc,
		Long:  "Print the URL of the Cogniz web dashboard, where projects, API keys and skills are managed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cogniz.DashboardURL)
			return err
		},
	}

	return cmd
}
