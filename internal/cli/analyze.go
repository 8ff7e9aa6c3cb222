package cli

import (
	"context"
	"fmt"

	"resumecrafter/internal/ai"
	"resumecrafter/internal/common"
	"resumecrafter/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [document-file] [job-description-file]",
	Short: "Analyze a resume or cover letter for ATS compliance",
	Long: `Analyze a resume or cover letter against a job description for ATS
(applicant tracking system) compliance. The command takes two arguments:
the path to the document file and the path to the job description file.

The report covers keyword coverage, formatting pitfalls, and concrete
suggestions for improving the document's pass rate. Use --kind to select
whether the document is a resume or a cover letter.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if analyzeKind != string(types.AnalysisResume) && analyzeKind != string(types.AnalysisCoverLetter) {
			return fmt.Errorf("invalid kind %q (must be 'resume' or 'coverletter')", analyzeKind)
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig common.CommandConfig
	analyzeKind   string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&analyzeKind, "kind", string(types.AnalysisResume), "Document kind: resume or coverletter")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = analyzeCmd.RegisterFlagCompletionFunc("kind", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(types.AnalysisResume), string(types.AnalysisCoverLetter)}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the analyze operation
	analyzeAIConfig := cfg.GetAnalyzeConfig()
	aiService, err := ai.NewService(&analyzeAIConfig, "analyze", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.AnalyzeInput, error) {
		if len(contents) != 2 {
			return types.AnalyzeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.AnalyzeInput{
			Kind:           types.AnalysisKind(analyzeKind),
			Document:       contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.AnalyzeInput, cfg common.CommandConfig) {
		logger.Info("Starting ATS compliance analysis",
			"kind", string(input.Kind),
			"document_chars", len(input.Document),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	analyzeOperation := func(ctx context.Context, input types.AnalyzeInput) (types.AnalyzeOutput, *ai.TokenUsage, error) {
		return aiService.Provider.AnalyzeCompliance(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze document: %w", err)
	}
	logger.Info("ATS compliance analysis completed successfully")
	return nil
}
