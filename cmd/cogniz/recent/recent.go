// Package recentcmder provides the recent command for listing the latest
// memories of a project.
package recentcmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/cogniz/cmd/cogniz/session"
	"github.com/papercomputeco/cogniz/pkg/cliui"
	"github.com/papercomputeco/cogniz/pkg/render"
)

const recentLongDesc string = `List recent Cogniz memories.

Lists the latest memories of the selected project (or --project). Listings
are cached for cache.ttl_seconds; --refresh always asks Cogniz.

Examples:
  cogniz recent
  cogniz recent --limit 25
  cogniz recent --project 12 --refresh`

const recentShortDesc string = "List recent Cogniz memories"

type recentCommander struct {
	limit   uint
	project string
	refresh bool

	now func() time.Time
}

func NewRecentCmd() *cobra.Command {
	cmder := &recentCommander{now: time.Now}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: recentShortDesc,
		Long:  recentLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := session.FromCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return cmder.run(cmd, s)
		},
	}

	cmd.Flags().UintVarP(&cmder.limit, "limit", "n", 0, "Maximum number of memories to list (default: client.recent_limit)")
	cmd.Flags().StringVarP(&cmder.project, "project", "p", "", "Project ID to list (default: selected project)")
	cmd.Flags().BoolVar(&cmder.refresh, "refresh", false, "Bypass the listing cache")

	return cmd
}

func (c *recentCommander) run(cmd *cobra.Command, s *session.Session) error {
	w := cmd.OutOrStdout()

	if c.refresh {
		s.Client.ForceRefresh()
	}

	records, err := s.Client.ListRecent(cmd.Context(), s.Limit(c.limit), c.project)
	if err != nil {
		return err
	}

	active, err := s.Client.ActiveProject(c.project, "")
	if err != nil {
		return err
	}
	name := active.ProjectName
	if name == "" {
		name = active.ProjectID
	}

	fmt.Fprintf(w, "\n  %s %s\n\n",
		cliui.HeaderStyle.Render("Recent memories"),
		cliui.DimStyle.Render("("+name+")"),
	)

	if len(records) == 0 {
		fmt.Fprintf(w, "  %s No memories yet. Save one with 'cogniz save'.\n\n", cliui.DimStyle.Render("●"))
		return nil
	}

	now := c.now()
	cards := make([]render.Card, 0, len(records))
	for _, rec := range records {
		cards = append(cards, render.NewCard(rec, now, render.ListLimits))
	}
	cliui.PrintCards(w, cards)
	fmt.Fprintln(w)
	return nil
}
