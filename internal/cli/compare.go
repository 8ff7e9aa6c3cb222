package cli

import (
	"fmt"

	"resumecrafter/internal/common"
	"resumecrafter/internal/diff"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [original-resume-file] [optimized-resume-file]",
	Short: "Compare an optimized resume against the original",
	Long: `Compare an optimized resume against the original to flag fabricated
content. The command takes two arguments: the path to the original resume
file and the path to the optimized resume file, both in structured JSON.

The comparison is deterministic and runs entirely offline. It checks for
invented sections, skills, certifications, and projects, and produces a
side-by-side section view for manual review.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if compareConfig.OutputFormat == "" {
			compareConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(compareConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runCompare,
}

var compareConfig common.CommandConfig

func init() {
	compareCmd.Flags().StringVarP(&compareConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	compareCmd.Flags().StringVar(&compareConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = compareCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	outputHandler := common.NewOutputHandler(logger)

	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	logger.Info("Starting resume comparison",
		"original", args[0],
		"optimized", args[1],
		"output_format", compareConfig.OutputFormat)

	report, err := diff.Compare([]byte(contents[0]), []byte(contents[1]))
	if err != nil {
		return fmt.Errorf("failed to compare resumes: %w", err)
	}

	if report.HasWarnings() {
		logger.Warn("Comparison found potential fabrications",
			"warnings", len(report.Warnings()))
	}

	if err := outputHandler.HandleOutput(report, compareConfig); err != nil {
		return err
	}
	logger.Info("Resume comparison completed successfully")
	return nil
}
