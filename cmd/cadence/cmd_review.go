package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sky-flux/cadence"
)

type reviewResult struct {
	Card cadence.Card      `json:"card"`
	Log  cadence.ReviewLog `json:"log"`
}

func reviewCmd() *cobra.Command {
	var (
		cardPath string
		rating   string
		now      string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Apply a rating to a card and print the updated card and review log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr())

			r, err := cadence.ParseRating(rating)
			if err != nil {
				return fmt.Errorf("review: %w", err)
			}
			t, err := parseNow(now)
			if err != nil {
				return fmt.Errorf("review: %w", err)
			}
			var card cadence.Card
			if err := readJSON(cmd, cardPath, &card); err != nil {
				return fmt.Errorf("review: reading card: %w", err)
			}

			s, err := newScheduler(logger)
			if err != nil {
				return fmt.Errorf("review: %w", err)
			}
			next, log, err := s.ReviewCard(card, r, t)
			if err != nil {
				return fmt.Errorf("review: %w", err)
			}
			return writeJSON(cmd, reviewResult{Card: next, Log: log})
		},
	}

	cmd.Flags().StringVar(&cardPath, "card", "-", "card JSON file, - for stdin")
	cmd.Flags().StringVarP(&rating, "rating", "r", "", "again, hard, good or easy (or 1-4)")
	_ = cmd.MarkFlagRequired("rating")
	addNowFlag(cmd, &now)
	return cmd
}
