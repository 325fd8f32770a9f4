// Package savecmder provides the save command for capturing text, files and
// the clipboard as Cogniz memories.
package savecmder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/capture"
	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

const saveLongDesc string = `Save a memory to Cogniz.

The memory text comes from, in order of precedence:
  --clipboard        the system clipboard, labelled with --source
  [text...]          the arguments, joined by spaces
  --file             the contents of a file
  stdin              piped input

With --file the file path is recorded as the memory source, and --language
(default: the file extension) is stored alongside it. The memory is saved
to the selected project unless --project is given.

Examples:
  cogniz save "Use pgx pools, not database/sql, for the ingest service"
  cogniz save --file notes/decision.md
  git diff | cogniz save --file HEAD.diff --language diff
  cogniz save --clipboard --source "browser note"`

const saveShortDesc string = "Save a memory to Cogniz"

// readClipboard is replaced in tests.
var readClipboard = clipboard.ReadAll

type saveCommander struct {
	file      string
	language  string
	clipboard bool
	source    string
	category  string
	project   string

	now func() time.Time
}

func NewSaveCmd() *cobra.Command {
	cmder := &saveCommander{now: time.Now}

	cmd := &cobra.Command{
		Use:   "save [text...]",
		Short: saveShortDesc,
		Long:  saveLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := cmder.payload(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return cmder.run(cmd, s, payload)
		},
	}

	cmd.Flags().StringVarP(&cmder.file, "file", "f", "", "File to capture, or the source to record for the given text")
	cmd.Flags().StringVar(&cmder.language, "language", "", "Language of the captured text (default: file extension)")
	cmd.Flags().BoolVarP(&cmder.clipboard, "clipboard", "c", false, "Save the clipboard contents")
	cmd.Flags().StringVar(&cmder.source, "source", "", "Label for a clipboard capture (default: Clipboard)")
	cmd.Flags().StringVar(&cmder.category, "category", "", "Category stored with the memory")
	cmd.Flags().StringVarP(&cmder.project, "project", "p", "", "Project ID to save to (default: selected project)")

	return cmd
}

func (c *saveCommander) payload(in io.Reader, args []string) (capture.Payload, error) {
	now := c.now()

	if c.clipboard {
		text, err := readClipboard()
		if err != nil {
			return capture.Payload{}, fmt.Errorf("reading clipboard: %w", err)
		}
		return capture.FromClipboard(text, c.source, now)
	}

	text := strings.Join(args, " ")
	if text == "" && c.file != "" {
		data, err := os.ReadFile(c.file)
		if err != nil {
			return capture.Payload{}, fmt.Errorf("reading %s: %w", c.file, err)
		}
		text = string(data)
	}
	if text == "" && !isTerminal(in) {
		data, err := io.ReadAll(in)
		if err != nil {
			return capture.Payload{}, fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	language := c.language
	if language == "" && c.file != "" {
		language = strings.TrimPrefix(filepath.Ext(c.file), ".")
	}

	return capture.FromSelection(capture.Selection{
		Text:     text,
		File:     c.file,
		Language: language,
	}, now)
}

func (c *saveCommander) run(cmd *cobra.Command, s *session.Session, payload capture.Payload) error {
	w := cmd.OutOrStdout()

	var id string
	err := cliui.Step(w, "Saving memory", func() error {
		var err error
		id, err = s.Client.Store(cmd.Context(), payload.Content, cogniz.StoreOptions{
			Category:  c.category,
			Metadata:  payload.Metadata,
			ProjectID: c.project,
		})
		return err
	})
	if err != nil {
		return err
	}

	event := telemetry.EventStoreMemory
	if payload.Origin == capture.OriginClipboard {
		event = telemetry.EventStoreClipboard
	}
	s.Tracker.Track(cmd.Context(), event, map[string]any{
		"hasMemoryId": id != "",
		"origin":      payload.Origin,
	})

	if id != "" {
		fmt.Fprintf(w, "\n  %s Saved to Cogniz %s.\n\n", cliui.SuccessMark, cliui.IDStyle.Render("(#"+id+")"))
	} else {
		fmt.Fprintf(w, "\n  %s Saved to Cogniz.\n\n", cliui.SuccessMark)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
