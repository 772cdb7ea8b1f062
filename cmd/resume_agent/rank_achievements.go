package main

import (
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var rankAchievementsCmd = &cobra.Command{
	Use:   "rank-achievements",
	Short: "Rank a profile's achievements against a job description",
	RunE:  runRankAchievements,
}

var (
	rankAchievementsProfileFile string
	rankAchievementsJobFile     string
	rankAchievementsTop         int
)

func init() {
	rankAchievementsCmd.Flags().StringVarP(&rankAchievementsProfileFile, "profile", "p", "", "Path to profile file (JSON or markdown)")
	rankAchievementsCmd.Flags().StringVarP(&rankAchievementsJobFile, "job", "j", "", "Path to job description file (JSON or markdown)")
	rankAchievementsCmd.Flags().IntVar(&rankAchievementsTop, "top", 0, "Only show the best N achievements (0 shows all)")
	_ = rankAchievementsCmd.MarkFlagRequired("profile")
	_ = rankAchievementsCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(rankAchievementsCmd)
}

func runRankAchievements(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	profile, err := a.svc.LoadProfileFile(ctx, rankAchievementsProfileFile)
	if err != nil {
		return describeError(err)
	}
	job, err := a.svc.LoadJobFile(ctx, rankAchievementsJobFile)
	if err != nil {
		return describeError(err)
	}
	ranked, err := a.svc.RankAchievements(ctx, profile.ProfileID, job.JobID)
	if err != nil {
		return describeError(err)
	}
	if rankAchievementsTop > 0 && len(ranked) > rankAchievementsTop {
		ranked = ranked[:rankAchievementsTop]
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), ranked)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRankedAchievements(ranked)
	return nil
}
