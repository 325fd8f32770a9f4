// Package statuscmder provides the status command for displaying the stored
// Cogniz connection.
package statuscmder

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/cogniz"
)

const statusLongDesc string = `Show the stored Cogniz connection.

Reads the .cogniz/ directory (local ./.cogniz/ or ~/.cogniz/) and shows the
base URL, default project, selected project and whether an API key is stored.
The API key itself is never printed.

Examples:
  cogniz status`

const statusShortDesc string = "Show the stored Cogniz connection"

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return runStatus(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}

	return cmd
}

func runStatus(ctx context.Context, w io.Writer, s *session.Session) error {
	conn, err := s.Connection.Connection()
	if err != nil {
		return fmt.Errorf("loading connection: %w", err)
	}

	fmt.Fprintln(w)
	cliui.KeyValue(w, "Configured:", strconv.FormatBool(s.Connection.IsConfigured()), "")

	if conn == nil {
		cliui.KeyValue(w, "Connection:", "", "<not set>")
	} else {
		cliui.KeyValue(w, "Base URL:", conn.BaseURL, "<empty>")
		cliui.KeyValue(w, "Project ID:", conn.ProjectID, "<empty>")
		cliui.KeyValue(w, "Project Name:", conn.ProjectName, "<none>")
	}

	hasKey := "no"
	if s.Connection.HasAPIKey() {
		hasKey = "yes"
	}
	cliui.KeyValue(w, "API key stored:", hasKey, "")

	if conn != nil {
		active, err := s.Client.ActiveProject("", "")
		if err != nil {
			return err
		}
		name := active.ProjectName
		if name == "" {
			name = active.ProjectID
		}
		cliui.KeyValue(w, "Active project:", name, "<none>")
	}

	fmt.Fprintf(w, "\n  %s %s\n\n",
		cliui.KeyStyle.Render("Config file:"),
		cliui.DimStyle.Render(s.Connection.ConfigPath()),
	)

	if !s.Client.HasConfiguration(ctx) {
		fmt.Fprintf(w, "  %s %s\n\n", cliui.WarnStyle.Render("!"), cogniz.ErrConfigurationMissing)
	}
	return nil
}
