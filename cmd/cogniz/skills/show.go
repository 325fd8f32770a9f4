package skillscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
)

const showShortDesc string = "Show one skill"

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <skill-id>",
		Short: showShortDesc,
		Long:  showShortDesc + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			skill, err := s.Client.GetSkill(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w)
			cliui.KeyValue(w, "ID:", skill.ID, "<none>")
			cliui.KeyValue(w, "Name:", skill.Name, "<none>")
			cliui.KeyValue(w, "Category:", skill.Category, "<none>")
			cliui.KeyValue(w, "Access level:", skill.AccessLevel, "<none>")
			if skill.Description != "" {
				fmt.Fprintf(w, "\n  %s\n", skill.Description)
			}
			fmt.Fprintln(w)
			return nil
		},
	}

	return cmd
}
