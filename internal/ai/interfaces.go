package ai

import (
	"context"

	"resumecrafter/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	OptimizeResume(ctx context.Context, input types.OptimizeInput) (types.OptimizeOutput, *TokenUsage, error)
	GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (types.CoverLetterOutput, *TokenUsage, error)
	AnalyzeCompliance(ctx context.Context, input types.AnalyzeInput) (types.AnalyzeOutput, *TokenUsage, error)
	InterviewPrep(ctx context.Context, input types.InterviewPrepInput) (types.InterviewPrepOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// PromptBuilder interface for building AI prompts
type PromptBuilder interface {
	BuildOptimizePrompt(resumeJSON, targetRole, jobDescription string) string
	BuildCoverLetterPrompt(company, resumeJSON, jobDescription string) string
}
