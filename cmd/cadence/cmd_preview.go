package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sky-flux/cadence"
)

func previewCmd() *cobra.Command {
	var (
		cardPath string
		now      string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the outcome of every rating without committing any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr())

			t, err := parseNow(now)
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			var card cadence.Card
			if err := readJSON(cmd, cardPath, &card); err != nil {
				return fmt.Errorf("preview: reading card: %w", err)
			}

			s, err := newScheduler(logger)
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			p, err := s.PreviewCard(card, t)
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			return writeJSON(cmd, p)
		},
	}

	cmd.Flags().StringVar(&cardPath, "card", "-", "card JSON file, - for stdin")
	addNowFlag(cmd, &now)
	return cmd
}
