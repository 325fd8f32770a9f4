// Package browsecmder provides the interactive Cogniz memory browser.
package browsecmder

import (
	"io"
	"time"

	"github.com/atotto/clipboard"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

const browseLongDesc string = `Browse Cogniz memories in the terminal.

Shows the recent memories of the selected project as cards. Switch projects,
refresh, read a memory in full or copy it to the clipboard.

Keys:
  j/k     move            enter   read memory
  p       switch project  r       refresh
  c       copy content    esc     back
  q       quit

Set NO_COLOR to disable colors.`

const browseShortDesc string = "Browse Cogniz memories interactively"

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: browseShortDesc,
		Long:  browseLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			s.Tracker.Track(ctx, telemetry.EventActivate, map[string]any{"surface": "browse"})

			out := cmd.OutOrStdout()
			model := newBrowseModel(ctx, s.Client, s.Tracker, newBrowseStyles(newRenderer(out)), time.Now)
			program := bubbletea.NewProgram(model,
				bubbletea.WithContext(ctx),
				bubbletea.WithAltScreen(),
				bubbletea.WithOutput(out),
				bubbletea.WithInput(cmd.InOrStdin()),
			)
			_, err = program.Run()
			return err
		},
	}

	return cmd
}

// newRenderer detects the color profile of w, honoring NO_COLOR.
func newRenderer(w io.Writer) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w, termenv.WithColorCache(true))
	if termenv.EnvNoColor() {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return renderer
}
