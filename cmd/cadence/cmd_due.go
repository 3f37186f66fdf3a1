package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/sky-flux/cadence"
)

func dueCmd() *cobra.Command {
	var (
		cardsPath string
		now       string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Print the cards that are due, most overdue first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseNow(now)
			if err != nil {
				return fmt.Errorf("due: %w", err)
			}
			var cards []cadence.Card
			if err := readJSON(cmd, cardsPath, &cards); err != nil {
				return fmt.Errorf("due: reading cards: %w", err)
			}

			due := dueCards(cards, t)
			if limit > 0 && len(due) > limit {
				due = due[:limit]
			}
			return writeJSON(cmd, due)
		},
	}

	cmd.Flags().StringVar(&cardsPath, "cards", "-", "JSON array of cards, - for stdin")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of cards (0 = all)")
	addNowFlag(cmd, &now)
	return cmd
}

// dueCards returns the cards due at now ordered by due time.
func dueCards(cards []cadence.Card, now time.Time) []cadence.Card {
	due := make([]cadence.Card, 0, len(cards))
	for _, c := range cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	slices.SortStableFunc(due, func(a, b cadence.Card) int {
		return a.Due.Compare(b.Due)
	})
	return due
}
