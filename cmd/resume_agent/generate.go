package main

import (
	"fmt"
	"io"

	"github.com/jonathan/resume-matcher/internal/rendering"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a stored customization",
	Long: `Renders a customization created earlier by "customize" or the HTTP API.
The customization must still be in the session store (redis backend) or in
the database. Without --out the document is printed in --format.`,
	RunE: runGenerate,
}

var (
	generateID       string
	generateFormat   string
	generateTemplate string
	generateOutDir   string
)

func init() {
	generateCmd.Flags().StringVar(&generateID, "id", "", "Customization ID")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", string(rendering.FormatMarkdown), "Output format: markdown or latex")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "", "Template override: modern, classic or ats")
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", "", "Directory to write every format to")
	_ = generateCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	format, err := rendering.ParseFormat(generateFormat)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if generateOutDir != "" {
		files, err := a.svc.GenerateFiles(ctx, generateID, generateOutDir, generateTemplate)
		if err != nil {
			return describeError(err)
		}
		if jsonOutput {
			return printJSON(out, map[string]any{"customization_id": generateID, "files": files})
		}
		for _, f := range files {
			_, _ = fmt.Fprintf(out, "Wrote %s\n", f)
		}
		return nil
	}

	doc, err := a.svc.Generate(ctx, generateID, format, generateTemplate)
	if err != nil {
		return describeError(err)
	}
	if jsonOutput {
		return printJSON(out, map[string]any{"customization_id": generateID, "format": format, "content": doc})
	}
	_, err = io.WriteString(out, doc)
	return err
}
