package main

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/service"
	"github.com/spf13/cobra"
)

var customizeCmd = &cobra.Command{
	Use:   "customize",
	Short: "Build a customized resume for a job description",
	Long: `Analyzes the profile against the job, then selects the most relevant
achievements and skills. Content is only selected and reordered, never
rewritten. With --out the resume is also rendered as Markdown and LaTeX.

Preferences override the configured defaults, e.g.
  --pref achievements_per_role=2 --pref max_skills=10 --pref include_summary=false`,
	RunE: runCustomize,
}

var (
	customizeProfileFile string
	customizeJobFile     string
	customizePrefs       []string
	customizeTemplate    string
	customizeOutDir      string
)

func init() {
	customizeCmd.Flags().StringVarP(&customizeProfileFile, "profile", "p", "", "Path to profile file (JSON or markdown)")
	customizeCmd.Flags().StringVarP(&customizeJobFile, "job", "j", "", "Path to job description file (JSON or markdown)")
	customizeCmd.Flags().StringArrayVar(&customizePrefs, "pref", nil, "Preference override as key=value (repeatable)")
	customizeCmd.Flags().StringVarP(&customizeTemplate, "template", "t", "", "Template: modern, classic or ats")
	customizeCmd.Flags().StringVarP(&customizeOutDir, "out", "o", "", "Directory to write the rendered resume files to")
	_ = customizeCmd.MarkFlagRequired("profile")
	_ = customizeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(customizeCmd)
}

func runCustomize(cmd *cobra.Command, _ []string) error {
	overrides, err := config.ParseKeyValues(customizePrefs)
	if err != nil {
		return err
	}
	if customizeTemplate != "" {
		overrides["template"] = customizeTemplate
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	match, err := a.loadAndAnalyze(ctx, customizeProfileFile, customizeJobFile)
	if err != nil {
		return describeError(err)
	}
	result, err := a.svc.Customize(ctx, service.CustomizeRequest{MatchID: match.MatchID, Overrides: overrides})
	if err != nil {
		return describeError(err)
	}

	var files []string
	if customizeOutDir != "" {
		files, err = a.svc.GenerateFiles(ctx, result.Resume.ID(), customizeOutDir, "")
		if err != nil {
			return describeError(err)
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, struct {
			*service.CustomizeResult
			Files []string `json:"files,omitempty"`
		}{result, files})
	}
	observability.NewPrinter(out).PrintCustomization(result.Summary)
	for _, f := range files {
		_, _ = fmt.Fprintf(out, "Wrote %s\n", f)
	}
	return nil
}
