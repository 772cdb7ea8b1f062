package main

import (
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var rankJobsCmd = &cobra.Command{
	Use:   "rank-jobs",
	Short: "Rank several job descriptions by how well a profile matches them",
	RunE:  runRankJobs,
}

var (
	rankJobsProfileFile string
	rankJobsJobFiles    []string
)

func init() {
	rankJobsCmd.Flags().StringVarP(&rankJobsProfileFile, "profile", "p", "", "Path to profile file (JSON or markdown)")
	rankJobsCmd.Flags().StringArrayVarP(&rankJobsJobFiles, "job", "j", nil, "Path to a job description file, JSON or markdown (repeatable)")
	_ = rankJobsCmd.MarkFlagRequired("profile")
	_ = rankJobsCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(rankJobsCmd)
}

func runRankJobs(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	profile, err := a.svc.LoadProfileFile(ctx, rankJobsProfileFile)
	if err != nil {
		return describeError(err)
	}
	jobIDs := make([]string, 0, len(rankJobsJobFiles))
	for _, path := range rankJobsJobFiles {
		var job *types.JobDescription
		job, err = a.svc.LoadJobFile(ctx, path)
		if err != nil {
			return describeError(err)
		}
		jobIDs = append(jobIDs, job.JobID)
	}

	rankings, err := a.svc.AnalyzeJobs(ctx, profile.ProfileID, jobIDs)
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), rankings)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintJobRankings(rankings)
	return nil
}
