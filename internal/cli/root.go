package cli

import (
	"context"

	"resumecrafter/internal/config"
	"resumecrafter/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "resumecrafter",
	Short: "An AI-powered resume builder and optimizer",
	Long: `ResumeCrafter optimizes structured resumes for specific job descriptions
using AI, generates cover letters and interview prep guides, checks documents
for ATS compliance, renders finished PDF and DOCX documents, and compares
original and optimized resumes to flag fabricated content.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(letterCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(prepCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
