package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendsense/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate reminder and savings statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ruleStore, cleanup, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			stats := ruleStore.Stats()

			fmt.Println(cli.FormatTitle(cli.ChartIcon + " Spending Stats")) //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer flushTable(w)

			fmt.Fprintf(w, "Total reminders\t%d\n", stats.TotalReminders)
			fmt.Fprintf(w, "Active reminders\t%d\n", stats.ActiveReminders)
			fmt.Fprintf(w, "Triggered today\t%d\n", stats.TriggeredToday)
			fmt.Fprintf(w, "Problems solved\t%d\n", stats.ProblemsSolved)
			fmt.Fprintf(w, "%s Estimated savings\t%s\n", cli.PiggyIcon, formatMoney(stats.MoneySaved))
			return nil
		},
	}
}
