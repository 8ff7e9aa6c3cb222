package cli

import (
	"context"
	"fmt"
	"strings"

	"resumecrafter/internal/ai"
	"resumecrafter/internal/common"
	"resumecrafter/internal/resume"
	"resumecrafter/internal/types"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Optimize a resume for a specific job description",
	Long: `Optimize your resume for a specific job description using AI.
The command takes two arguments: the path to your resume file (structured
JSON) and the path to the job description file (plain text). The optimized
resume keeps your factual history and reworks summaries, bullet points,
and keyword emphasis for the target role.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var (
	optimizeConfig     common.CommandConfig
	optimizeTargetRole string
	optimizeSections   []string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	optimizeCmd.Flags().StringVar(&optimizeTargetRole, "target-role", "", "Target role to optimize for (required)")
	optimizeCmd.Flags().StringSliceVar(&optimizeSections, "sections", nil,
		"Sections to optimize (default: all), e.g. professional_summary,skills")
	_ = optimizeCmd.MarkFlagRequired("target-role")

	// Add completion for format flag
	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the optimize operation
	optimizeAIConfig := cfg.GetOptimizeConfig()
	aiService, err := ai.NewService(&optimizeAIConfig, "optimize", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.OptimizeInput, error) {
		if len(contents) != 2 {
			return types.OptimizeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		rec, err := resume.ParseRecord([]byte(contents[0]))
		if err != nil {
			return types.OptimizeInput{}, err
		}
		if strings.TrimSpace(rec.ContactInfo.Name) == "" {
			return types.OptimizeInput{}, fmt.Errorf("resume is missing a candidate name")
		}
		if len(optimizeSections) > 0 {
			if err := resume.ValidateSectionKeys(optimizeSections); err != nil {
				return types.OptimizeInput{}, err
			}
			rec = rec.FilterSections(optimizeSections)
		}
		return types.OptimizeInput{
			Resume:         rec,
			JobDescription: contents[1],
			TargetRole:     optimizeTargetRole,
		}, nil
	}

	logDetails := func(input types.OptimizeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume optimization",
			"target_role", input.TargetRole,
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	optimizeOperation := func(ctx context.Context, input types.OptimizeInput) (types.OptimizeOutput, *ai.TokenUsage, error) {
		return aiService.Provider.OptimizeResume(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		args,
		createInput,
		optimizeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	logger.Info("Resume optimization completed successfully")
	return nil
}
