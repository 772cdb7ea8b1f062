package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a profile against a job description",
	Long:  "Loads a profile and a job description, then prints the match score, its breakdown, missing skills, gaps and suggestions.",
	RunE:  runAnalyze,
}

var (
	analyzeProfileFile string
	analyzeJobFile     string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeProfileFile, "profile", "p", "", "Path to profile file (JSON or markdown)")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to job description file (JSON or markdown)")
	_ = analyzeCmd.MarkFlagRequired("profile")
	_ = analyzeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	match, err := a.loadAndAnalyze(cmd.Context(), analyzeProfileFile, analyzeJobFile)
	if err != nil {
		return describeError(err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), match)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintMatch(match)
	return nil
}

// loadAndAnalyze loads both files and analyzes them
func (a *app) loadAndAnalyze(ctx context.Context, profilePath, jobPath string) (*types.MatchResult, error) {
	profile, err := a.svc.LoadProfileFile(ctx, profilePath)
	if err != nil {
		return nil, err
	}
	job, err := a.svc.LoadJobFile(ctx, jobPath)
	if err != nil {
		return nil, err
	}
	match, err := a.svc.Analyze(ctx, profile.ProfileID, job.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze match: %w", err)
	}
	return match, nil
}
