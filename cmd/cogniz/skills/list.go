package skillscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
)

const listShortDesc string = "List available skills"

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listShortDesc + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			skills, err := s.Client.ListSkills(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(skills) == 0 {
				fmt.Fprintf(w, "\n  %s No skills available.\n\n", cliui.DimStyle.Render("●"))
				return nil
			}

			maxLen := 0
			for _, sk := range skills {
				maxLen = max(maxLen, len(sk.ID))
			}

			fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render("Skills"))
			for _, sk := range skills {
				fmt.Fprintf(w, "  %s  %s", cliui.IDStyle.Render(fmt.Sprintf("%-*s", maxLen, sk.ID)), cliui.NameStyle.Render(sk.Name))
				if sk.AccessLevel != "" {
					fmt.Fprintf(w, "  %s", cliui.TagStyle.Render(sk.AccessLevel))
				}
				fmt.Fprintln(w)
				if sk.Description != "" {
					fmt.Fprintf(w, "  %*s  %s\n", maxLen, "", cliui.DimStyle.Render(sk.Description))
				}
			}
			fmt.Fprintln(w)
			return nil
		},
	}

	return cmd
}
