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

var letterCmd = &cobra.Command{
	Use:   "letter [resume-file] [job-description-file]",
	Short: "Generate a cover letter for a specific job description",
	Long: `Generate a cover letter tailored to a specific job description using AI.
The command takes two arguments: the path to your resume file (structured
JSON) and the path to the job description file. The output carries the
letter body; salutation and closing are added when the letter is rendered.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if letterConfig.OutputFormat == "" {
			letterConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(letterConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runLetter,
}

var (
	letterConfig  common.CommandConfig
	letterCompany string
)

func init() {
	letterCmd.Flags().StringVarP(&letterConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	letterCmd.Flags().StringVar(&letterConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	letterCmd.Flags().StringVar(&letterCompany, "company", "", "Company name to address the letter to")

	// Add completion for format flag
	_ = letterCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runLetter(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the cover letter operation
	letterAIConfig := cfg.GetCoverLetterConfig()
	aiService, err := ai.NewService(&letterAIConfig, "coverletter", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.CoverLetterInput, error) {
		if len(contents) != 2 {
			return types.CoverLetterInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		rec, err := resume.ParseRecord([]byte(contents[0]))
		if err != nil {
			return types.CoverLetterInput{}, err
		}
		return types.CoverLetterInput{
			Resume:         rec,
			JobDescription: contents[1],
			Company:        letterCompany,
		}, nil
	}

	logDetails := func(input types.CoverLetterInput, cfg common.CommandConfig) {
		logger.Info("Starting cover letter generation",
			"company", input.Company,
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	letterOperation := func(ctx context.Context, input types.CoverLetterInput) (types.CoverLetterOutput, *ai.TokenUsage, error) {
		return aiService.Provider.GenerateCoverLetter(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		letterConfig,
		args,
		createInput,
		letterOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate cover letter: %w", err)
	}
	logger.Info("Cover letter generation completed successfully")
	return nil
}
