// Package projectscmder provides the projects command for listing Cogniz
// projects and choosing the one memories are saved to and read from.
package projectscmder

import (
	"github.com/spf13/cobra"
)

const projectsLongDesc string = `List and select Cogniz projects.

The selected project is stored in the [session] section of config.toml and
is used by save, search, recent, browse and serve until another project is
selected. Without a selection the connection's default project is used.

Examples:
  cogniz projects
  cogniz projects use 12
  cogniz projects reset`

const projectsShortDesc string = "List and select Cogniz projects"

func NewProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: projectsShortDesc,
		Long:  projectsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newUseCmd())
	cmd.AddCommand(newResetCmd())

	return cmd
}
