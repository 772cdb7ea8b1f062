package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/service"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_agent",
	Short: "Match resumes to job descriptions and tailor them truthfully",
	Long: `resume_agent scores a candidate profile against job descriptions, ranks
achievements by relevance and produces customized resumes that only select
and reorder the candidate's own content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	debugMode  bool
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results and logs as JSON")
}

// loadConfig merges defaults, the config file, RESUME_* variables and the
// persistent flags
func loadConfig() (*config.Config, error) {
	v := config.NewViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}
	if err := v.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		return nil, err
	}
	return config.FromViper(v)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// describeError adds the suggestion for known error kinds
func describeError(err error) error {
	desc := service.Describe(err)
	if desc.Suggestion == "" {
		return err
	}
	return fmt.Errorf("%w\n  hint: %s", err, desc.Suggestion)
}
