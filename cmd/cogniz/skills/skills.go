// Package skillscmder provides the skills command for listing and running
// Cogniz skills.
package skillscmder

import (
	"github.com/spf13/cobra"
)

const skillsLongDesc string = `List, inspect and run Cogniz skills.

Skills are server-side operations such as memory-optimizer,
api-doc-generator or usage-analytics that run against a project.

Examples:
  cogniz skills list
  cogniz skills show memory-optimizer
  cogniz skills run memory-optimizer "Optimize all memories in current project"
  cogniz skills run usage-analytics "Generate usage report for last 30 days" --context period="Last 30 days"`

const skillsShortDesc string = "List, inspect and run Cogniz skills"

func NewSkillsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: skillsShortDesc,
		Long:  skillsLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}
