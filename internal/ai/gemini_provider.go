package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"resumecrafter/internal/config"
	crafterrors "resumecrafter/internal/errors"
	"resumecrafter/internal/resume"
	"resumecrafter/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	httpClient     *http.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *crafterrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *crafterrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, crafterrors.NewAIError(crafterrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	circuitBreaker := NewAICircuitBreaker(operationType, cfg, logger)
	modelBreaker := NewModelCircuitBreaker(operationType, cfg, logger)

	return &GeminiProvider{
		client: client,
		httpClient: &http.Client{
			Timeout: *cfg.Timeout,
		},
		config:         cfg,
		circuitBreaker: circuitBreaker,
		modelBreaker:   modelBreaker,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	timeout := getAIModelCheckTimeout()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// classifyProviderError maps a provider failure onto an error code by the
// HTTP status carried in the error, never by message text.
func classifyProviderError(operationName string, err error) *crafterrors.AppError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return crafterrors.NewAIError(crafterrors.ErrCodeInvalidAPIKey,
				"API key rejected for "+operationName, err)
		case http.StatusTooManyRequests:
			return crafterrors.NewAIError(crafterrors.ErrCodeQuotaExceeded,
				"Quota exceeded for "+operationName, err)
		}
	}
	return crafterrors.NewAIError(crafterrors.ErrCodeAIServiceFailed,
		"Failed to generate content for "+operationName, err)
}

// generateContent runs one AI call with common tracing, circuit breaker and
// retry logic, returning the raw response for the caller to decode.
func (g *GeminiProvider) generateContent(
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (*genai.GenerateContentResponse, *TokenUsage, error) {
	tracer := otel.Tracer("resumecrafter.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, classifyProviderError(operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return result, tokenUsage, nil
}

// executeTextOperation runs an AI call whose result is consumed as plain text.
func (g *GeminiProvider) executeTextOperation(
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	spanAttributes ...attribute.KeyValue,
) (string, *TokenUsage, error) {
	result, tokenUsage, err := g.generateContent(ctx, operationName, userPrompt, systemPrompt,
		g.buildTextConfig(), spanAttributes...)
	if err != nil {
		return "", nil, err
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", nil, crafterrors.NewAIError(crafterrors.ErrCodeMalformedResponse,
			"Empty response for "+operationName, nil)
	}
	return text, tokenUsage, nil
}

// OptimizeResume implements AIProvider interface for resume optimization.
// The response must be a JSON document in the resume schema with contact
// info present; anything else is a malformed response.
func (g *GeminiProvider) OptimizeResume(ctx context.Context, input types.OptimizeInput) (types.OptimizeOutput, *TokenUsage, error) {
	resumeJSON, err := marshalResume(input.Resume)
	if err != nil {
		return types.OptimizeOutput{}, nil, err
	}
	systemPrompt, userPrompt := g.getPromptsForOptimize(resumeJSON, input.TargetRole, input.JobDescription)

	result, tokenUsage, err := g.generateContent(ctx, "optimize_resume", userPrompt, systemPrompt,
		g.buildOptimizeConfig(),
		attribute.Int("input.resume_length", len(resumeJSON)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)
	if err != nil {
		return types.OptimizeOutput{}, nil, err
	}

	raw := stripCodeFence(result.Text())
	optimized, err := resume.ParseRecord([]byte(raw))
	if err != nil {
		return types.OptimizeOutput{}, nil, crafterrors.NewAIError(crafterrors.ErrCodeMalformedResponse,
			"Failed to parse the optimized resume", err)
	}
	if !optimized.HasSection(resume.SectionContactInfo) {
		return types.OptimizeOutput{}, nil, crafterrors.NewAIError(crafterrors.ErrCodeMalformedResponse,
			"Optimization failed - unexpected response format", nil)
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.resume_length", len(raw)),
			attribute.Int("output.section_count", len(optimized.SectionKeys())),
		)
	}

	return types.OptimizeOutput{Resume: optimized, Raw: raw}, tokenUsage, nil
}

// GenerateCoverLetter implements AIProvider interface for cover letter generation
func (g *GeminiProvider) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (types.CoverLetterOutput, *TokenUsage, error) {
	resumeJSON, err := marshalResume(input.Resume)
	if err != nil {
		return types.CoverLetterOutput{}, nil, err
	}

	company := strings.TrimSpace(input.Company)
	if company == "" {
		company = "the company"
	}
	systemPrompt, userPrompt := g.getPromptsForCoverLetter(company, resumeJSON, input.JobDescription)

	body, tokenUsage, err := g.executeTextOperation(ctx, "generate_cover_letter", userPrompt, systemPrompt,
		attribute.Int("input.resume_length", len(resumeJSON)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)
	if err != nil {
		return types.CoverLetterOutput{}, nil, err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Int("output.body_length", len(body)))
	}

	return types.CoverLetterOutput{Body: body}, tokenUsage, nil
}

// AnalyzeCompliance implements AIProvider interface for ATS compliance analysis
func (g *GeminiProvider) AnalyzeCompliance(ctx context.Context, input types.AnalyzeInput) (types.AnalyzeOutput, *TokenUsage, error) {
	systemPrompt, userPrompt, err := g.getPromptsForAnalyze(input)
	if err != nil {
		return types.AnalyzeOutput{}, nil, err
	}

	report, tokenUsage, err := g.executeTextOperation(ctx, "analyze_compliance", userPrompt, systemPrompt,
		attribute.String("input.kind", string(input.Kind)),
		attribute.Int("input.document_length", len(input.Document)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)
	if err != nil {
		return types.AnalyzeOutput{}, nil, err
	}

	return types.AnalyzeOutput{Report: report}, tokenUsage, nil
}

// InterviewPrep implements AIProvider interface for interview preparation material
func (g *GeminiProvider) InterviewPrep(ctx context.Context, input types.InterviewPrepInput) (types.InterviewPrepOutput, *TokenUsage, error) {
	resumeJSON, err := marshalResume(input.Resume)
	if err != nil {
		return types.InterviewPrepOutput{}, nil, err
	}
	systemPrompt, userPrompt := g.getPromptsForPrep(resumeJSON, input.JobDescription)

	guide, tokenUsage, err := g.executeTextOperation(ctx, "interview_prep", userPrompt, systemPrompt,
		attribute.Int("input.resume_length", len(resumeJSON)),
		attribute.Int("input.job_length", len(input.JobDescription)),
	)
	if err != nil {
		return types.InterviewPrepOutput{}, nil, err
	}

	return types.InterviewPrepOutput{Guide: guide}, tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - both breakers must be healthy
	aiHealthy := g.circuitBreaker.IsHealthy()
	modelHealthy := g.modelBreaker.IsModelHealthy()
	stats["overall_healthy"] = aiHealthy && modelHealthy

	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// buildOptimizeConfig creates the generation config for optimize requests.
// The response is requested as JSON without a rigid schema because the
// skills section legitimately takes two shapes.
func (g *GeminiProvider) buildOptimizeConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// buildTextConfig creates the generation config for free-text operations
func (g *GeminiProvider) buildTextConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if *g.config.Temperature > 0 {
		config.Temperature = g.config.Temperature
	}

	return config
}

// marshalResume renders a resume record as indented JSON for prompt interpolation
func marshalResume(rec *resume.Record) (string, error) {
	if rec == nil {
		return "", crafterrors.NewValidationError(crafterrors.ErrCodeInvalidRequest,
			"No resume provided", nil)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", crafterrors.NewValidationError(crafterrors.ErrCodeInvalidFormat,
			"Failed to encode resume data", err)
	}
	return string(data), nil
}

// stripCodeFence removes a leading markdown code fence from a model response
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), "`"))
}

// getPromptsForOptimize returns system and user prompts for optimization
func (g *GeminiProvider) getPromptsForOptimize(resumeJSON, targetRole, jobDescription string) (string, string) {
	systemPrompt := g.getSystemPrompt("optimize")
	userPrompt := g.getUserPrompt("optimize")

	return systemPrompt, fmt.Sprintf(userPrompt, resumeJSON, targetRole, jobDescription)
}

// getPromptsForCoverLetter returns system and user prompts for cover letter generation
func (g *GeminiProvider) getPromptsForCoverLetter(company, resumeJSON, jobDescription string) (string, string) {
	systemPrompt := g.getSystemPrompt("coverletter")
	userPrompt := g.getUserPrompt("coverletter")

	return systemPrompt, fmt.Sprintf(userPrompt, company, resumeJSON, jobDescription)
}

// getPromptsForAnalyze returns system and user prompts for a compliance analysis
func (g *GeminiProvider) getPromptsForAnalyze(input types.AnalyzeInput) (string, string, error) {
	systemPrompt := g.getSystemPrompt("analyze")

	var userPrompt string
	switch input.Kind {
	case types.AnalysisResume:
		userPrompt = g.getUserPrompt("analyze-resume")
	case types.AnalysisCoverLetter:
		userPrompt = g.getUserPrompt("analyze-coverletter")
	default:
		return "", "", crafterrors.NewValidationError(crafterrors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unknown analysis kind: %q", input.Kind), nil)
	}

	return systemPrompt, fmt.Sprintf(userPrompt, input.Document, input.JobDescription), nil
}

// getPromptsForPrep returns system and user prompts for interview preparation
func (g *GeminiProvider) getPromptsForPrep(resumeJSON, jobDescription string) (string, string) {
	systemPrompt := g.getSystemPrompt("prep")
	userPrompt := g.getUserPrompt("prep")

	return systemPrompt, fmt.Sprintf(userPrompt, resumeJSON, jobDescription)
}

// getSystemPrompt returns the appropriate system prompt
func (g *GeminiProvider) getSystemPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configSystemPrompts *config.SystemPrompts
	if configPrompts != nil {
		configSystemPrompts = &configPrompts.SystemPrompts
	} else {
		configSystemPrompts = &config.SystemPrompts{}
	}

	switch promptType {
	case "optimize":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.Optimize,
			configSystemPrompts.Optimize,
			DefaultSystemPrompts.Optimize,
		)
	case "coverletter":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.CoverLetter,
			configSystemPrompts.CoverLetter,
			DefaultSystemPrompts.CoverLetter,
		)
	case "analyze":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.Analyze,
			configSystemPrompts.Analyze,
			DefaultSystemPrompts.Analyze,
		)
	case "prep":
		return resolvePrompt(
			loadedPrompts.SystemPrompts.InterviewPrep,
			configSystemPrompts.InterviewPrep,
			DefaultSystemPrompts.InterviewPrep,
		)
	default:
		return ""
	}
}

// getUserPrompt returns the appropriate user prompt template
func (g *GeminiProvider) getUserPrompt(promptType string) string {
	loadedPrompts, configPrompts := g.getPrompts(promptType)
	var configUserPrompts *config.UserPrompts
	if configPrompts != nil {
		configUserPrompts = &configPrompts.UserPrompts
	} else {
		configUserPrompts = &config.UserPrompts{}
	}

	switch promptType {
	case "optimize":
		return resolvePrompt(
			loadedPrompts.UserPrompts.Optimize,
			configUserPrompts.Optimize,
			DefaultUserPrompts.Optimize,
		)
	case "coverletter":
		return resolvePrompt(
			loadedPrompts.UserPrompts.CoverLetter,
			configUserPrompts.CoverLetter,
			DefaultUserPrompts.CoverLetter,
		)
	case "analyze-resume":
		return resolvePrompt(
			loadedPrompts.UserPrompts.AnalyzeResume,
			configUserPrompts.AnalyzeResume,
			DefaultUserPrompts.AnalyzeResume,
		)
	case "analyze-coverletter":
		return resolvePrompt(
			loadedPrompts.UserPrompts.AnalyzeCoverLetter,
			configUserPrompts.AnalyzeCoverLetter,
			DefaultUserPrompts.AnalyzeCoverLetter,
		)
	case "prep":
		return resolvePrompt(
			loadedPrompts.UserPrompts.InterviewPrep,
			configUserPrompts.InterviewPrep,
			DefaultUserPrompts.InterviewPrep,
		)
	default:
		return ""
	}
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// getAIModelCheckTimeout returns the configured AI model check timeout
func getAIModelCheckTimeout() time.Duration {
	return 10 * time.Second
}

// getPrompts returns the appropriate prompts for the operation, prioritizing loaded content over config
func (g *GeminiProvider) getPrompts(promptType string) (config.OperationLoadedPrompts, *config.PromptConfig) {
	operationType := promptType
	switch promptType {
	case "analyze-resume", "analyze-coverletter":
		operationType = "analyze"
	}

	loadedPrompts := config.GetPromptsForOperation(operationType)
	configPrompts := &g.config.CustomPrompts
	return loadedPrompts, configPrompts
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
