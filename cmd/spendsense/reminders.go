package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendsense/internal/cli"
	"github.com/Veraticus/spendsense/internal/model"
)

func remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Manage reminder rules",
		Long:  `Create, list, toggle, and delete the standing rules that fire on new purchases.`,
	}
	cmd.AddCommand(remindersListCmd())
	cmd.AddCommand(remindersAddCmd())
	cmd.AddCommand(remindersToggleCmd())
	cmd.AddCommand(remindersDeleteCmd())
	cmd.AddCommand(remindersHistoryCmd())
	return cmd
}

func remindersHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show a reminder's firing history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID(args[0], reminderIDs(ruleStore.ListReminders()))
			if err != nil {
				return err
			}
			reminder, err := ruleStore.GetReminder(id)
			if err != nil {
				return err
			}

			entries := ruleStore.HistoryForReminder(id)
			if len(entries) == 0 {
				fmt.Println(cli.FormatSubtle(fmt.Sprintf("%q has never fired.", reminder.Title))) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle(cli.BellIcon + " " + reminder.Title)) //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer flushTable(w)

			fmt.Fprintln(w, cli.HeaderStyle.Render("Fired At")+"\t"+cli.HeaderStyle.Render("Context"))
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\n", entry.TriggeredAt.Format("2006-01-02 15:04"), entry.TriggerContext)
			}
			return nil
		},
	}
}

func remindersListCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminder rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			reminders := ruleStore.ListReminders()
			if activeOnly {
				reminders = ruleStore.ActiveReminders()
			}
			if len(reminders) == 0 {
				fmt.Println(cli.FormatSubtle("No reminders yet. Use 'spendsense reminders add' or flag an issue.")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle(cli.BellIcon + " Reminder Rules")) //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer flushTable(w)

			fmt.Fprintln(w, cli.HeaderStyle.Render("ID")+"\t"+
				cli.HeaderStyle.Render("Title")+"\t"+
				cli.HeaderStyle.Render("Frequency")+"\t"+
				cli.HeaderStyle.Render("Condition")+"\t"+
				cli.HeaderStyle.Render("Active")+"\t"+
				cli.HeaderStyle.Render("Fired")+"\t"+
				cli.HeaderStyle.Render("Next Due"))

			for _, reminder := range reminders {
				active := cli.SuccessIcon
				if !reminder.IsActive {
					active = cli.ErrorIcon
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					shortID(reminder.ID),
					reminder.Title,
					reminder.Frequency.DisplayName(),
					formatTrigger(reminder.Trigger),
					active,
					reminder.ReminderCount,
					formatOptionalTime(reminder.NextReminderDate))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "show only active reminders")
	return cmd
}

func remindersAddCmd() *cobra.Command {
	var (
		title     string
		message   string
		issueType string
		frequency string
		merchant  string
		category  string
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a reminder rule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedType, err := parseIssueType(issueType)
			if err != nil {
				return err
			}
			parsedFrequency, err := parseFrequency(frequency)
			if err != nil {
				return err
			}

			trigger := model.Trigger{}
			if merchant != "" {
				trigger.MerchantName = &merchant
			}
			if category != "" {
				trigger.Category = &category
			}
			if threshold > 0 {
				trigger.AmountThreshold = &threshold
			}

			eng, _, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			reminder := model.NewReminder(title, message, parsedType, parsedFrequency, trigger, time.Now())
			stored, err := eng.AddReminder(cmd.Context(), reminder)
			if err != nil {
				return fmt.Errorf("failed to add reminder: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added reminder %s: %q (%s)",
				shortID(stored.ID), stored.Title, stored.Frequency.DisplayName()))) //nolint:forbidigo // User-facing output
			if stored.NextReminderDate != nil {
				fmt.Println(cli.FormatSubtle("Next due " + stored.NextReminderDate.Format("2006-01-02 15:04"))) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "reminder title")
	cmd.Flags().StringVar(&message, "message", "", "reminder message")
	cmd.Flags().StringVar(&issueType, "type", "", "issue type the rule relates to")
	cmd.Flags().StringVar(&frequency, "frequency", "", "once, weekly, monthly, before_similar, before_merchant, or before_category")
	cmd.Flags().StringVar(&merchant, "merchant", "", "match purchases at this merchant")
	cmd.Flags().StringVar(&category, "category", "", "match purchases in this category")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "amount threshold for the condition")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("message")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("frequency")
	return cmd
}

func remindersToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Activate or deactivate a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID(args[0], reminderIDs(ruleStore.ListReminders()))
			if err != nil {
				return err
			}
			toggled, err := eng.ToggleReminder(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to toggle reminder: %w", err)
			}

			state := "deactivated"
			if toggled.IsActive {
				state = "activated"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reminder %q %s", toggled.Title, state))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func remindersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID(args[0], reminderIDs(ruleStore.ListReminders()))
			if err != nil {
				return err
			}
			if err := eng.DeleteReminder(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete reminder: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Reminder deleted")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func reminderIDs(reminders []model.Reminder) []string {
	ids := make([]string, len(reminders))
	for i, reminder := range reminders {
		ids[i] = reminder.ID
	}
	return ids
}

// formatTrigger summarizes a reminder's match condition for table output.
func formatTrigger(trigger model.Trigger) string {
	var parts []string
	if trigger.MerchantName != nil {
		parts = append(parts, "merchant="+*trigger.MerchantName)
	}
	if trigger.Category != nil {
		parts = append(parts, "category="+*trigger.Category)
	}
	if trigger.AmountThreshold != nil {
		parts = append(parts, "amount>="+formatMoney(*trigger.AmountThreshold))
	}
	if len(parts) == 0 {
		return "any"
	}
	result := parts[0]
	for _, p := range parts[1:] {
		result += ", " + p
	}
	return result
}
