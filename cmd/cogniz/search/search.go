// Package searchcmder provides the search command for querying Cogniz
// memories.
package searchcmder

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/cogniz"
	"github.com/papercomputeco/cogniz/pkg/memory"
	"github.com/papercomputeco/cogniz/pkg/render"
	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

const searchLongDesc string = `Search Cogniz memories.

Searches the selected project (or --project) for memories matching the
query. Without a query the most recent memories are listed instead.

Use --copy to put the full content of one result on the clipboard, ready to
paste into an editor or agent prompt.

Examples:
  cogniz search "connection pool"
  cogniz search retry policy --limit 5
  cogniz search deploy --copy 1
  cogniz search`

const searchShortDesc string = "Search Cogniz memories"

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

type searchCommander struct {
	limit   uint
	project string
	copy    int

	now func() time.Time
}

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{now: time.Now}

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return cmder.run(cmd, s, strings.TrimSpace(strings.Join(args, " ")))
		},
	}

	cmd.Flags().UintVarP(&cmder.limit, "limit", "n", 0, "Maximum number of memories to return (default: client.recent_limit)")
	cmd.Flags().StringVarP(&cmder.project, "project", "p", "", "Project ID to search (default: selected project)")
	cmd.Flags().IntVar(&cmder.copy, "copy", 0, "Copy the content of the Nth result to the clipboard")

	return cmd
}

func (c *searchCommander) run(cmd *cobra.Command, s *session.Session, query string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	limit := s.Limit(c.limit)

	var (
		records []memory.Record
		err     error
	)
	if query == "" {
		records, err = s.Client.ListRecent(ctx, limit, c.project)
	} else {
		records, err = s.Client.Search(ctx, query, cogniz.SearchOptions{Limit: limit, ProjectID: c.project})
	}
	if err != nil {
		return err
	}

	s.Tracker.Track(ctx, telemetry.EventSearchMemories, map[string]any{
		"queryLength": len(query),
		"results":     len(records),
	})

	if len(records) == 0 {
		fmt.Fprintf(w, "\n  %s No Cogniz memories were found.\n\n", cliui.DimStyle.Render("●"))
		return nil
	}

	now := c.now()
	cards := make([]render.Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, render.NewCard(rec, now, render.ListLimits))
	}

	fmt.Fprintln(w)
	cliui.PrintCards(w, cards)
	fmt.Fprintln(w)

	if c.copy == 0 {
		return nil
	}
	if c.copy < 0 || c.copy > len(records) {
		return fmt.Errorf("--copy must be between 1 and %d", len(records))
	}

	if err := writeClipboard(records[c.copy-1].Content); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	s.Tracker.Track(ctx, telemetry.EventInsertMemory, map[string]any{
		"queryLength": len(query),
	})
	fmt.Fprintf(w, "  %s Memory %d copied to the clipboard.\n\n", cliui.SuccessMark, c.copy)
	return nil
}
