package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sky-flux/cadence"
)

type deckStats struct {
	Total   int                   `json:"total"`
	Due     int                   `json:"due"`
	ByState map[cadence.State]int `json:"by_state"`
	Lapses  int                   `json:"lapses"`
	// MeanRetrievability averages over reviewed cards only.
	MeanRetrievability float64 `json:"mean_retrievability"`
}

func statsCmd() *cobra.Command {
	var (
		cardsPath string
		now       string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a collection of cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr())

			t, err := parseNow(now)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			var cards []cadence.Card
			if err := readJSON(cmd, cardsPath, &cards); err != nil {
				return fmt.Errorf("stats: reading cards: %w", err)
			}
			s, err := newScheduler(logger)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			st, err := collectStats(s, cards, t)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			return writeJSON(cmd, st)
		},
	}

	cmd.Flags().StringVar(&cardsPath, "cards", "-", "JSON array of cards, - for stdin")
	addNowFlag(cmd, &now)
	return cmd
}

func collectStats(s *cadence.Scheduler, cards []cadence.Card, now time.Time) (deckStats, error) {
	st := deckStats{
		Total:   len(cards),
		ByState: make(map[cadence.State]int),
	}
	var sumR float64
	var reviewed int
	for _, c := range cards {
		st.ByState[c.State]++
		st.Lapses += c.Lapses
		if c.IsDue(now) {
			st.Due++
		}
		if c.State == cadence.New {
			continue
		}
		r, err := s.Retrievability(c, now)
		if err != nil {
			return deckStats{}, err
		}
		sumR += r
		reviewed++
	}
	if reviewed > 0 {
		st.MeanRetrievability = sumR / float64(reviewed)
	}
	return st, nil
}
