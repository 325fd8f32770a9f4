package projectscmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

const useLongDesc string = `Select the project used by later commands.

The project must be one of those listed by 'cogniz projects'.

Examples:
  cogniz projects use 12`

const useShortDesc string = "Select the active project"

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <project-id>",
		Short: useShortDesc,
		Long:  useLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUse(cmd, strings.TrimSpace(args[0]))
		},
	}

	return cmd
}

func runUse(cmd *cobra.Command, id string) error {
	s, err := session.FromCommand(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	projects, err := s.Client.ListProjects(cmd.Context())
	if err != nil {
		return err
	}

	for _, p := range projects {
		if p.ID != id {
			continue
		}

		if err := s.Client.SelectProject(connection.SelectedProject{ProjectID: p.ID, ProjectName: p.Name}); err != nil {
			return err
		}
		s.Tracker.Track(cmd.Context(), telemetry.EventSelectProject, map[string]any{
			"hasProjectName": p.Name != "",
		})

		fmt.Fprintf(cmd.OutOrStdout(), "\n  %s Using project %s %s\n\n",
			cliui.SuccessMark,
			cliui.NameStyle.Render(p.DisplayName()),
			cliui.DimStyle.Render("("+p.ID+")"),
		)
		return nil
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return fmt.Errorf("unknown project: %q\n\nAvailable projects: %s", id, strings.Join(ids, ", "))
}
