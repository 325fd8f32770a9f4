// Package configurecmder provides the configure command for storing the
// Cogniz connection and API key.
package configurecmder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/connection"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

const configureLongDesc string = `Configure the Cogniz connection.

Stores the base URL and default project in config.toml and the API key in
credentials.toml (mode 0600) under the .cogniz/ directory.

Values not passed as flags are prompted for, with the stored value offered
as the default. The API key is read with hidden input; leave it blank to keep
the stored key. When stdin is not a terminal each prompt reads one line.

Examples:
  cogniz configure
  cogniz configure --base-url https://cogniz.online --project-id 42
  echo $COGNIZ_KEY | cogniz configure --base-url https://cogniz.online --project-id 42 --project-name Notes
  cogniz configure --clear`

const configureShortDesc string = "Configure the Cogniz connection"

type configureCommander struct {
	baseURL     string
	projectID   string
	projectName string
	clear       bool

	in    *bufio.Reader
	out   io.Writer
	stdin *os.File
}

func NewConfigureCmd() *cobra.Command {
	cmder := &configureCommander{}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: configureShortDesc,
		Long:  configureLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.out = cmd.OutOrStdout()
			cmder.in = bufio.NewReader(cmd.InOrStdin())
			if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				cmder.stdin = f
			}

			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if cmder.clear {
				return cmder.runClear(s)
			}
			return cmder.run(cmd, s)
		},
	}

	cmd.Flags().StringVar(&cmder.baseURL, "base-url", "", "Cogniz base URL (e.g. https://cogniz.online)")
	cmd.Flags().StringVar(&cmder.projectID, "project-id", "", "Default Cogniz project ID")
	cmd.Flags().StringVar(&cmder.projectName, "project-name", "", "Optional project name shown in listings")
	cmd.Flags().BoolVar(&cmder.clear, "clear", false, "Remove the stored connection, selected project and API key")

	return cmd
}

func (c *configureCommander) run(cmd *cobra.Command, s *session.Session) error {
	existing, err := s.Connection.Connection()
	if err != nil {
		return err
	}
	if existing == nil {
		existing = &connection.Connection{}
	}

	baseURL := c.baseURL
	if !cmd.Flags().Changed("base-url") {
		baseURL, err = c.prompt("Cogniz base URL (e.g. https://cogniz.online)", existing.BaseURL)
		if err != nil {
			return err
		}
	}
	baseURL = connection.NormalizeBaseURL(baseURL)
	if err := validateBaseURL(baseURL); err != nil {
		return err
	}

	// Keys are stored per server, so a new base URL needs a new key.
	hasKey := baseURL == existing.BaseURL && s.Connection.HasAPIKey()

	projectID := c.projectID
	if !cmd.Flags().Changed("project-id") {
		projectID, err = c.prompt("Default project ID", existing.ProjectID)
		if err != nil {
			return err
		}
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return errors.New("project ID is required")
	}

	projectName := c.projectName
	if !cmd.Flags().Changed("project-name") {
		projectName, err = c.prompt("Optional project name (for display)", existing.ProjectName)
		if err != nil {
			return err
		}
	}
	projectName = strings.TrimSpace(projectName)

	apiKey, err := c.readAPIKey(hasKey)
	if err != nil {
		return err
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" && !hasKey {
		return errors.New("API key is required")
	}

	if err := s.Connection.UpdateConnection(connection.Update{
		BaseURL:     &baseURL,
		ProjectID:   &projectID,
		ProjectName: &projectName,
	}); err != nil {
		return err
	}

	if apiKey != "" {
		if err := s.Connection.SetAPIKey(apiKey); err != nil {
			return err
		}
	}

	s.Client.ForceRefresh()
	s.Tracker.Track(cmd.Context(), telemetry.EventConfigureConnection, map[string]any{
		"hasProjectName": projectName != "",
	})

	fmt.Fprintf(c.out, "\n  %s Cogniz connection saved.\n", cliui.SuccessMark)
	fmt.Fprintf(c.out, "  %s\n\n", cliui.DimStyle.Render(s.Connection.ConfigPath()))
	return nil
}

func (c *configureCommander) runClear(s *session.Session) error {
	if err := s.Connection.ClearConnection(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\n  %s Cogniz connection cleared.\n\n", cliui.SuccessMark)
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL: %q", raw)
	}
	return nil
}

// prompt reads one line, returning def when the line is blank.
func (c *configureCommander) prompt(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(c.out, "%s: ", label)
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if c.stdin == nil {
		fmt.Fprintln(c.out)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// readAPIKey reads the key with hidden input on a terminal, otherwise the
// next line of input.
func (c *configureCommander) readAPIKey(hasKey bool) (string, error) {
	label := "Cogniz API key"
	if hasKey {
		label += " (leave blank to keep existing)"
	}

	if c.stdin == nil {
		return c.prompt(label, "")
	}

	fmt.Fprintf(c.out, "%s: ", label)
	keyBytes, err := term.ReadPassword(int(c.stdin.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	return string(keyBytes), nil
}
