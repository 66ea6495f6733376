package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendsense/internal/cli"
	"github.com/Veraticus/spendsense/internal/engine"
	"github.com/Veraticus/spendsense/internal/model"
)

func issuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Manage spending issues",
		Long:  `Flag problems on past purchases, resolve them, and list them.`,
	}
	cmd.AddCommand(issuesListCmd())
	cmd.AddCommand(issuesAddCmd())
	cmd.AddCommand(issuesResolveCmd())
	cmd.AddCommand(issuesDeleteCmd())
	cmd.AddCommand(issuesSuggestCmd())
	return cmd
}

func issuesSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <type>",
		Short: "Preview the reminder suggested for an issue type",
		Long:  `Show the reminder rule that would be suggested for an issue type, without recording anything.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			parsedType, err := parseIssueType(args[0])
			if err != nil {
				return err
			}

			issue := model.NewIssue("", parsedType, "", 3, time.Now())
			suggestion := engine.SuggestReminder(issue, time.Now())

			fmt.Println(cli.FormatTitle(cli.BellIcon + " " + suggestion.Title))            //nolint:forbidigo // User-facing output
			fmt.Println(suggestion.Message)                                                //nolint:forbidigo // User-facing output
			fmt.Println(cli.FormatSubtle("Frequency: " + suggestion.Frequency.DisplayName())) //nolint:forbidigo // User-facing output
			if suggestion.NextReminderDate != nil {
				fmt.Println(cli.FormatSubtle("First due " + suggestion.NextReminderDate.Format("2006-01-02"))) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}
}

func issuesListCmd() *cobra.Command {
	var unresolvedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List spending issues",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			issues := ruleStore.ListIssues()
			if unresolvedOnly {
				issues = ruleStore.UnresolvedIssues()
			}
			if len(issues) == 0 {
				fmt.Println(cli.FormatSubtle("No issues recorded. Use 'spendsense issues add' to flag one.")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle(cli.FlagIcon + " Spending Issues")) //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer flushTable(w)

			fmt.Fprintln(w, cli.HeaderStyle.Render("ID")+"\t"+
				cli.HeaderStyle.Render("Type")+"\t"+
				cli.HeaderStyle.Render("Severity")+"\t"+
				cli.HeaderStyle.Render("Status")+"\t"+
				cli.HeaderStyle.Render("Description"))

			for _, issue := range issues {
				status := "open"
				if issue.IsResolved {
					status = cli.ResolvedIcon + " resolved"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					shortID(issue.ID),
					issue.IssueType.DisplayName(),
					issue.Severity,
					status,
					issue.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unresolvedOnly, "unresolved", false, "show only unresolved issues")
	return cmd
}

func issuesAddCmd() *cobra.Command {
	var (
		purchaseID  string
		issueType   string
		description string
		severity    int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Flag a purchase with an issue",
		Long: `Record a problem on a past purchase. A matching reminder rule is
suggested and added automatically; edit or delete it afterwards with
'spendsense reminders'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedType, err := parseIssueType(issueType)
			if err != nil {
				return err
			}

			eng, _, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			issue, suggestion, err := eng.RecordIssue(cmd.Context(), purchaseID, parsedType, description, severity)
			if err != nil {
				return fmt.Errorf("failed to record issue: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s issue %s (severity %d)",
				issue.IssueType.DisplayName(), shortID(issue.ID), issue.Severity))) //nolint:forbidigo // User-facing output
			fmt.Println(cli.FormatSubtle(fmt.Sprintf("Suggested reminder %s: %q (%s)",
				shortID(suggestion.ID), suggestion.Title, suggestion.Frequency.DisplayName()))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&purchaseID, "purchase", "", "id of the purchase the issue is about")
	cmd.Flags().StringVar(&issueType, "type", "", "issue type (e.g. over_budget, impulse, subscription)")
	cmd.Flags().StringVar(&description, "description", "", "what went wrong")
	cmd.Flags().IntVar(&severity, "severity", 3, "severity from 1 to 5")
	_ = cmd.MarkFlagRequired("purchase")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func issuesResolveCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark an issue as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID(args[0], issueIDs(ruleStore.ListIssues()))
			if err != nil {
				return err
			}
			if err := ruleStore.ResolveIssue(cmd.Context(), id, note); err != nil {
				return fmt.Errorf("failed to resolve issue: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Issue resolved")) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "optional note about how it was resolved")
	return cmd
}

func issuesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an issue record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID(args[0], issueIDs(ruleStore.ListIssues()))
			if err != nil {
				return err
			}
			if err := ruleStore.DeleteIssue(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete issue: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Issue deleted")) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func issueIDs(issues []model.Issue) []string {
	ids := make([]string, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID
	}
	return ids
}
