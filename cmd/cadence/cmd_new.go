package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sky-flux/cadence"
)

func newCmd() *cobra.Command {
	var (
		id  string
		now string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print a new, never-reviewed card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseNow(now)
			if err != nil {
				return fmt.Errorf("new: %w", err)
			}
			if id == "" {
				id = uuid.NewString()
			}
			return writeJSON(cmd, cadence.NewCard(id, t))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "card id (default random UUID)")
	addNowFlag(cmd, &now)
	return cmd
}
