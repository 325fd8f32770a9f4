package cliui

import (
	"fmt"
	"io"
	"strings"

	"github.com/papercomputeco/cogniz/pkg/render"
)

// PrintCards prints a numbered memory listing.
func PrintCards(w io.Writer, cards []render.Card) {
	for i, card := range cards {
		fmt.Fprintf(w, "  %s %s\n",
			DimStyle.Render(fmt.Sprintf("%2d.", i+1)),
			NameStyle.Render(card.Title),
		)
		if card.Snippet != "" && card.Snippet != card.Title {
			fmt.Fprintf(w, "      %s\n", ValueStyle.Render(card.Snippet))
		}

		meta := make([]string, 0, len(card.Tags)+1)
		for _, tag := range card.Tags {
			meta = append(meta, TagStyle.Render(tag))
		}
		if card.ID != "" && card.ID != card.Content {
			meta = append(meta, IDStyle.Render("#"+card.ID))
		}
		if len(meta) > 0 {
			fmt.Fprintf(w, "      %s\n", strings.Join(meta, DimStyle.Render(" · ")))
		}
		if card.PageURL != "" {
			fmt.Fprintf(w, "      %s\n", DimStyle.Render(card.PageURL))
		}
	}
}
