package cli

import (
	"context"
	"fmt"

	"resumecrafter/internal/ai"
	"resumecrafter/internal/common"
	"resumecrafter/internal/resume"
	"resumecrafter/internal/types"

	"github.com/spf13/cobra"
)

var prepCmd = &cobra.Command{
	Use:   "prep [resume-file] [job-description-file]",
	Short: "Generate an interview preparation guide",
	Long: `Generate interview preparation material for a specific role using AI.
The command takes two arguments: the path to your resume file (structured
JSON) and the path to the job description file. The guide covers likely
questions, suggested talking points from your own history, and topics
worth researching before the interview.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if prepConfig.OutputFormat == "" {
			prepConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(prepConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runPrep,
}

var (
	prepConfig     common.CommandConfig
	prepTargetRole string
)

func init() {
	prepCmd.Flags().StringVarP(&prepConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	prepCmd.Flags().StringVar(&prepConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	prepCmd.Flags().StringVar(&prepTargetRole, "target-role", "", "Target role to prepare for (required)")
	_ = prepCmd.MarkFlagRequired("target-role")

	// Add completion for format flag
	_ = prepCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runPrep(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the prep operation
	prepAIConfig := cfg.GetPrepConfig()
	aiService, err := ai.NewService(&prepAIConfig, "prep", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.InterviewPrepInput, error) {
		if len(contents) != 2 {
			return types.InterviewPrepInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		rec, err := resume.ParseRecord([]byte(contents[0]))
		if err != nil {
			return types.InterviewPrepInput{}, err
		}
		return types.InterviewPrepInput{
			Resume:         rec,
			JobDescription: contents[1],
			TargetRole:     prepTargetRole,
		}, nil
	}

	logDetails := func(input types.InterviewPrepInput, cfg common.CommandConfig) {
		logger.Info("Starting interview prep generation",
			"target_role", input.TargetRole,
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	prepOperation := func(ctx context.Context, input types.InterviewPrepInput) (types.InterviewPrepOutput, *ai.TokenUsage, error) {
		return aiService.Provider.InterviewPrep(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		prepConfig,
		args,
		createInput,
		prepOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate interview prep guide: %w", err)
	}
	logger.Info("Interview prep generation completed successfully")
	return nil
}
