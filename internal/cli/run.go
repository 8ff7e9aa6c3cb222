package cli

import (
	"fmt"
	"strings"

	"resumecrafter/internal/ai"
	"resumecrafter/internal/common"
	"resumecrafter/internal/config"
	"resumecrafter/internal/errors"
	"resumecrafter/internal/resume"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [resume-file] [job-description-file]",
	Short: "Run the full optimization pipeline",
	Long: `Run the full optimization pipeline: optimize the resume, generate a
cover letter, check both documents for ATS compliance, produce an interview
prep guide, and compare the optimized resume against the original.

Only the optimize step is fatal. If a later step fails, the pipeline keeps
going and reports the failure alongside the results that were produced.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if runConfig.OutputFormat == "" {
			runConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(runConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runPipeline,
}

var (
	runConfig     common.CommandConfig
	runTargetRole string
	runCompany    string
)

func init() {
	runCmd.Flags().StringVarP(&runConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	runCmd.Flags().StringVar(&runConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	runCmd.Flags().StringVar(&runTargetRole, "target-role", "", "Target role to optimize for (required)")
	runCmd.Flags().StringVar(&runCompany, "company", "", "Company name for the cover letter")
	_ = runCmd.MarkFlagRequired("target-role")
}

// buildPipelineServices creates one AI service per pipeline operation.
func buildPipelineServices(cfg *config.Config, logger *errors.Logger) (ai.PipelineServices, error) {
	newService := func(opConfig config.OperationAIConfig, name string) (*ai.Service, error) {
		service, err := ai.NewService(&opConfig, name, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s service: %w", name, err)
		}
		return service, nil
	}

	var services ai.PipelineServices
	var err error

	if services.Optimize, err = newService(cfg.GetOptimizeConfig(), "optimize"); err != nil {
		return ai.PipelineServices{}, err
	}
	if services.CoverLetter, err = newService(cfg.GetCoverLetterConfig(), "coverletter"); err != nil {
		return ai.PipelineServices{}, err
	}
	if services.Analyze, err = newService(cfg.GetAnalyzeConfig(), "analyze"); err != nil {
		return ai.PipelineServices{}, err
	}
	if services.Prep, err = newService(cfg.GetPrepConfig(), "prep"); err != nil {
		return ai.PipelineServices{}, err
	}

	return services, nil
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	outputHandler := common.NewOutputHandler(logger)

	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	rec, err := resume.ParseRecord([]byte(contents[0]))
	if err != nil {
		return err
	}
	if strings.TrimSpace(rec.ContactInfo.Name) == "" {
		return fmt.Errorf("resume is missing a candidate name")
	}

	services, err := buildPipelineServices(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting optimization pipeline",
		"target_role", runTargetRole,
		"company", runCompany,
		"job_chars", len(contents[1]))

	pipeline := ai.NewPipeline(services, logger)
	result, err := pipeline.Run(cmd.Context(), ai.PipelineInput{
		Resume:         rec,
		JobDescription: contents[1],
		TargetRole:     runTargetRole,
		Company:        runCompany,
	})
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	for step, usage := range result.TokenUsage {
		if usage != nil {
			logger.Info("AI token usage", "step", step,
				"input_tokens", usage.InputTokens,
				"output_tokens", usage.OutputTokens,
				"total_tokens", usage.TotalTokens)
		}
	}

	if result.Degraded() {
		for _, failure := range result.Failures {
			logger.Warn("Pipeline step did not produce output",
				"step", failure.Step, "error", failure.Err)
		}
	}

	if err := outputHandler.HandleOutput(result, runConfig); err != nil {
		return err
	}

	logger.Info("Optimization pipeline completed",
		"degraded", result.Degraded())
	return nil
}
