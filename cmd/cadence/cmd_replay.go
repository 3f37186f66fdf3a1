package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sky-flux/cadence"
)

func replayCmd() *cobra.Command {
	var (
		cardPath string
		logsPath string
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild a card's schedule from its review logs under the current parameters",
		Long: "Replay applies every review log, oldest first, to the card. Without --card " +
			"the replay starts from a new card created at the first review.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr())

			var logs []cadence.ReviewLog
			if err := readJSON(cmd, logsPath, &logs); err != nil {
				return fmt.Errorf("replay: reading logs: %w", err)
			}
			if len(logs) == 0 {
				return errors.New("replay: no review logs")
			}

			var card cadence.Card
			if cardPath != "" {
				if err := readJSON(cmd, cardPath, &card); err != nil {
					return fmt.Errorf("replay: reading card: %w", err)
				}
			} else {
				first := slices.MinFunc(logs, func(a, b cadence.ReviewLog) int {
					return a.ReviewedAt.Compare(b.ReviewedAt)
				})
				card = cadence.NewCard(first.CardID, first.ReviewedAt)
			}

			s, err := newScheduler(logger)
			if err != nil {
				return fmt.Errorf("replay: %w", err)
			}
			card, err = s.RescheduleCard(card, logs)
			if err != nil {
				return fmt.Errorf("replay: %w", err)
			}
			logger.Info("replayed reviews", "card_id", card.CardID, "reviews", len(logs), "state", card.State)
			return writeJSON(cmd, card)
		},
	}

	cmd.Flags().StringVar(&cardPath, "card", "", "starting card JSON file (default a new card)")
	cmd.Flags().StringVar(&logsPath, "logs", "-", "JSON array of review logs, - for stdin")
	return cmd
}
