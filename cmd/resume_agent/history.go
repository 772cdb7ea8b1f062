package main

import (
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored customizations (requires database.url)",
	RunE:  runHistory,
}

var (
	historyProfileID string
	historyJobID     string
	historyCompany   string
	historyLimit     int
	historyAnalytics bool
)

func init() {
	historyCmd.Flags().StringVar(&historyProfileID, "profile-id", "", "Only customizations of this profile")
	historyCmd.Flags().StringVar(&historyJobID, "job-id", "", "Only customizations for this job")
	historyCmd.Flags().StringVar(&historyCompany, "company", "", "Company name contains (case-insensitive)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", db.DefaultListLimit, "Maximum number of results")
	historyCmd.Flags().BoolVar(&historyAnalytics, "analytics", false, "Show aggregate statistics instead of the list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	if historyAnalytics {
		analytics, err := a.svc.Analytics(cmd.Context())
		if err != nil {
			return describeError(err)
		}
		if jsonOutput {
			return printJSON(out, analytics)
		}
		printer.PrintAnalytics(analytics)
		return nil
	}

	records, err := a.svc.ListCustomizations(cmd.Context(), db.CustomizationFilter{
		ProfileID: historyProfileID,
		JobID:     historyJobID,
		Company:   historyCompany,
		Limit:     historyLimit,
	})
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(out, records)
	}
	printer.PrintCustomizations(records)
	return nil
}
