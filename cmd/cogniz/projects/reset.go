package projectscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/connection"
)

const resetShortDesc string = "Go back to the connection's default project"

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: resetShortDesc,
		Long:  resetShortDesc + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Client.SelectProject(connection.SelectedProject{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n  %s Project selection cleared.\n\n", cliui.SuccessMark)
			return nil
		},
	}

	return cmd
}
