package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/spendsense/internal/cli"
	"github.com/Veraticus/spendsense/internal/model"
)

func evaluateCmd() *cobra.Command {
	var (
		merchant    string
		category    string
		amount      float64
		description string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run a purchase event through the reminder rules",
		Long: `Feed one purchase event to the engine and report which reminders
fired. Behavior-driven rules match on merchant and category; due
time-driven rules fire as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, _, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			purchase := model.PurchaseEvent{
				ID:           uuid.New().String(),
				MerchantName: merchant,
				Category:     category,
				Amount:       amount,
				Description:  description,
				OccurredAt:   time.Now(),
			}

			fired, err := eng.Evaluate(cmd.Context(), purchase)
			if err != nil {
				return fmt.Errorf("failed to evaluate purchase: %w", err)
			}

			if len(fired) == 0 {
				fmt.Println(cli.FormatSubtle("No reminders fired.")) //nolint:forbidigo // User-facing output
				return nil
			}
			for _, reminder := range fired {
				fmt.Println(cli.FormatFired(fmt.Sprintf("%s: %s", reminder.Title, reminder.Message))) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name of the purchase")
	cmd.Flags().StringVar(&category, "category", "", "spending category of the purchase")
	cmd.Flags().Float64Var(&amount, "amount", 0, "purchase amount in dollars")
	cmd.Flags().StringVar(&description, "description", "", "free-form purchase description")
	_ = cmd.MarkFlagRequired("merchant")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
