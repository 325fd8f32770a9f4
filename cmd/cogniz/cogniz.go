// Package cognizcmder
package cognizcmder

import (
	"github.com/spf13/cobra"

	browsecmder "github.com/papercomputeco/cogniz/cmd/cogniz/browse"
	configcmder "github.com/papercomputeco/cogniz/cmd/cogniz/config"
	configurecmder "github.com/papercomputeco/cogniz/cmd/cogniz/configure"
	dashboardcmder "github.com/papercomputeco/cogniz/cmd/cogniz/dashboard"
	projectscmder "github.com/papercomputeco/cogniz/cmd/cogniz/projects"
	recentcmder "github.com/papercomputeco/cogniz/cmd/cogniz/recent"
	savecmder "github.com/papercomputeco/cogniz/cmd/cogniz/save"
	searchcmder "github.com/papercomputeco/cogniz/cmd/cogniz/search"
	servecmder "github.com/papercomputeco/cogniz/cmd/cogniz/serve"
	skillscmder "github.com/papercomputeco/cogniz/cmd/cogniz/skills"
	statuscmder "github.com/papercomputeco/cogniz/cmd/cogniz/status"
	versioncmder "github.com/papercomputeco/cogniz/cmd/version"
)

const cognizLongDesc string = `Cogniz is a memory client for your editor and agents.

Get started:
  cogniz configure     Connect to a Cogniz server
  cogniz save          Save a selection, file or clipboard as a memory
  cogniz search        Search memories
  cogniz browse        Browse memories interactively
  cogniz serve         Run the local bridge server for editors and agents`

const cognizShortDesc string = "Cogniz - memory for your editor and agents"

func NewCognizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cogniz",
		Short:        cognizShortDesc,
		Long:         cognizLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .cogniz/ config directory")

	// Add subcommands
	cmd.AddCommand(configurecmder.NewConfigureCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(savecmder.NewSaveCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(recentcmder.NewRecentCmd())
	cmd.AddCommand(projectscmder.NewProjectsCmd())
	cmd.AddCommand(skillscmder.NewSkillsCmd())
	cmd.AddCommand(browsecmder.NewBrowseCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(dashboardcmder.NewDashboardCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
