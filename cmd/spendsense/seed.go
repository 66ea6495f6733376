package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/spendsense/internal/cli"
	"github.com/Veraticus/spendsense/internal/model"
)

// seedIssues are the sample problems loaded into an empty database so the
// list and stats commands have something to show.
var seedIssues = []struct {
	issueType   model.IssueType
	description string
	severity    int
}{
	{model.IssueOverBudget, "Dining out went $120 over this month's budget", 4},
	{model.IssueImpulseSpending, "Late-night gadget purchase, regretted next morning", 3},
	{model.IssueSubscriptionForgotten, "Streaming service unused for three months", 2},
	{model.IssueDuplicateCharge, "Charged twice for the same coffee order", 3},
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample issues and reminders into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if len(ruleStore.ListIssues()) > 0 || len(ruleStore.ListReminders()) > 0 {
				fmt.Println(cli.FormatSubtle("Database already has data; seed skipped.")) //nolint:forbidigo // User-facing output
				return nil
			}

			for _, sample := range seedIssues {
				_, _, err := eng.RecordIssue(cmd.Context(), uuid.New().String(), sample.issueType, sample.description, sample.severity)
				if err != nil {
					return fmt.Errorf("failed to seed issue: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Seeded %d sample issues with suggested reminders", len(seedIssues)))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
