package projectscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
)

const listLongDesc string = `List the projects available to the stored API key.

The active project is marked with a check mark.

Examples:
  cogniz projects list`

const listShortDesc string = "List Cogniz projects"

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	s, err := session.FromCommand(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	projects, err := s.Client.ListProjects(cmd.Context())
	if err != nil {
		return err
	}

	active, err := s.Client.ActiveProject("", "")
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render("Projects"))
	for _, p := range projects {
		mark := " "
		if p.ID == active.ProjectID {
			mark = cliui.SuccessMark
		}
		line := fmt.Sprintf("  %s  %s  %s", mark, cliui.IDStyle.Render(p.ID), cliui.NameStyle.Render(p.DisplayName()))
		if p.Description != "" {
			line += "  " + cliui.DimStyle.Render(p.Description)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	return nil
}
