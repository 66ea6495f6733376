package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendsense/internal/scheduler"
)

func watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the background due-check loop",
		Long: `Keep checking for due time-driven reminders until interrupted, so
weekly and monthly reminders fire even when no purchase arrives.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, _, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			scheduler.New(eng, interval).Start(cmd.Context())
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", scheduler.DefaultInterval, "how often to check for due reminders")
	return cmd
}
