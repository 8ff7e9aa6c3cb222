package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resumecrafter/internal/ai"
	"resumecrafter/internal/diff"
	"resumecrafter/internal/document"
	"resumecrafter/internal/observability"
	"resumecrafter/internal/render"
	"resumecrafter/internal/resume"
	"resumecrafter/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createOptimizeHandler wraps the optimize handler with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecrafter.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		// Parse request
		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		rec, err := parseResumeField(req.Resume)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.TargetRole) == "" {
			err := fmt.Errorf("missing target role")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing target role", "targetRole field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(rec.ContactInfo.Name) == "" {
			err := fmt.Errorf("missing candidate name")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid resume", "resume must include a candidate name", http.StatusBadRequest)
			return
		}
		if len(req.Sections) > 0 {
			if err := resume.ValidateSectionKeys(req.Sections); err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "validation"))
				writeErrorResponse(w, "Invalid sections", err.Error(), http.StatusBadRequest)
				return
			}
			rec = rec.FilterSections(req.Sections)
		}

		// Size validation
		if len(req.Resume) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume too large: %d bytes", len(req.Resume))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume too large", fmt.Sprintf("resume exceeds recommended size limit of %d bytes", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("jobDescription exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.Resume)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("request.target_role", req.TargetRole),
			attribute.String("operation", "optimize"),
		)

		input := types.OptimizeInput{
			Resume:         rec,
			JobDescription: req.JobDescription,
			TargetRole:     req.TargetRole,
		}

		// Create AI service for the optimize operation
		optimizeConfig := s.AppConfig.GetOptimizeConfig()
		aiService, err := ai.NewService(&optimizeConfig, "optimize", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		// Track AI operation with observability and token usage
		metrics := om.GetMetrics()
		var result types.OptimizeOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "optimize", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Provider.OptimizeResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_optimized", false,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to optimize resume", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_optimized", true,
			attribute.String("target_role", req.TargetRole))

		span.SetAttributes(attribute.Bool("success", true))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createCoverLetterHandler wraps the cover letter handler with observability
func (s *Server) createCoverLetterHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecrafter.api")
		ctx, span := tracer.Start(ctx, "api.coverletter")
		defer span.End()

		var req CoverLetterRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		rec, err := parseResumeField(req.Resume)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.Resume)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "coverletter"),
		)

		input := types.CoverLetterInput{
			Resume:         rec,
			JobDescription: req.JobDescription,
			Company:        req.Company,
		}

		// Create AI service for the cover letter operation
		coverLetterConfig := s.AppConfig.GetCoverLetterConfig()
		aiService, err := ai.NewService(&coverLetterConfig, "coverletter", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.CoverLetterOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "coverletter", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Provider.GenerateCoverLetter(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		})

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "cover_letter_generated", false)
			writeErrorResponse(w, "Failed to generate cover letter", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "cover_letter_generated", true,
			attribute.Int("body_length", len(result.Body)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.body_length", len(result.Body)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createAnalyzeHandler wraps the compliance analysis handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecrafter.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		kind := types.AnalysisKind(req.Kind)
		if kind != types.AnalysisResume && kind != types.AnalysisCoverLetter {
			err := fmt.Errorf("invalid analysis kind: %q", req.Kind)
			span.RecordError(err)
			writeErrorResponse(w, "Invalid analysis kind", "kind must be 'resume' or 'coverletter'", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Document) == "" {
			err := fmt.Errorf("missing document")
			span.RecordError(err)
			writeErrorResponse(w, "Missing document", "document field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.kind", req.Kind),
			attribute.Int("request.document_length", len(req.Document)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		input := types.AnalyzeInput{
			Kind:           kind,
			Document:       req.Document,
			JobDescription: req.JobDescription,
		}

		// Create AI service for the analyze operation
		analyzeConfig := s.AppConfig.GetAnalyzeConfig()
		aiService, err := ai.NewService(&analyzeConfig, "analyze", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.AnalyzeOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Provider.AnalyzeCompliance(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		})

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "document_analyzed", false,
				attribute.String("kind", req.Kind))
			writeErrorResponse(w, "Failed to analyze document", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "document_analyzed", true,
			attribute.String("kind", req.Kind))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.report_length", len(result.Report)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createPrepHandler wraps the interview prep handler with observability
func (s *Server) createPrepHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecrafter.api")
		ctx, span := tracer.Start(ctx, "api.prep")
		defer span.End()

		var req PrepRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		rec, err := parseResumeField(req.Resume)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.TargetRole) == "" {
			err := fmt.Errorf("missing target role")
			span.RecordError(err)
			writeErrorResponse(w, "Missing target role", "targetRole field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.Resume)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "prep"),
		)

		input := types.InterviewPrepInput{
			Resume:         rec,
			JobDescription: req.JobDescription,
			TargetRole:     req.TargetRole,
		}

		// Create AI service for the prep operation
		prepConfig := s.AppConfig.GetPrepConfig()
		aiService, err := ai.NewService(&prepConfig, "prep", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.InterviewPrepOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "prep", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Provider.InterviewPrep(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		})

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "prep_guide_generated", false)
			writeErrorResponse(w, "Failed to generate interview prep guide", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "prep_guide_generated", true)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.guide_length", len(result.Guide)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createCompareHandler wraps the comparison handler with observability.
// Comparison is deterministic and never calls the AI provider.
func (s *Server) createCompareHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecrafter.api")
		ctx, span := tracer.Start(ctx, "api.compare")
		defer span.End()

		var req CompareRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if len(req.Original) == 0 {
			err := fmt.Errorf("missing original resume")
			span.RecordError(err)
			writeErrorResponse(w, "Missing original resume", "original field is required", http.StatusBadRequest)
			return
		}
		if len(req.Optimized) == 0 {
			err := fmt.Errorf("missing optimized resume")
			span.RecordError(err)
			writeErrorResponse(w, "Missing optimized resume", "optimized field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.original_length", len(req.Original)),
			attribute.Int("request.optimized_length", len(req.Optimized)),
			attribute.String("operation", "compare"),
		)

		report, err := diff.Compare(req.Original, req.Optimized)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			om.GetMetrics().RecordBusinessMetric(ctx, "resume_compared", false)
			writeErrorResponse(w, "Failed to compare resumes", err.Error(), http.StatusBadRequest)
			return
		}

		om.GetMetrics().RecordBusinessMetric(ctx, "resume_compared", true,
			attribute.Int("warnings", len(report.Warnings())))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("has_warnings", report.HasWarnings()),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRenderHandler wraps the document render handler with observability.
// The response body is the rendered document, not JSON.
func (s *Server) createRenderHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumecrafter.api")
		ctx, span := tracer.Start(ctx, "api.render")
		defer span.End()

		var req RenderRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		rec, err := parseResumeField(req.Resume)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid resume", err.Error(), http.StatusBadRequest)
			return
		}

		variant := document.VariantFull
		switch req.Variant {
		case "", "full":
		case "plain":
			variant = document.VariantPlain
		default:
			err := fmt.Errorf("invalid variant: %q", req.Variant)
			span.RecordError(err)
			writeErrorResponse(w, "Invalid variant", "variant must be 'full' or 'plain'", http.StatusBadRequest)
			return
		}

		var blocks []render.Block
		switch req.Kind {
		case "", "resume":
			blocks = document.BuildResume(rec)
		case "coverletter":
			if strings.TrimSpace(req.Body) == "" {
				err := fmt.Errorf("missing cover letter body")
				span.RecordError(err)
				writeErrorResponse(w, "Missing cover letter body", "body field is required for cover letters", http.StatusBadRequest)
				return
			}
			blocks = document.BuildCoverLetter(rec, req.Body, req.Company, time.Now())
		default:
			err := fmt.Errorf("invalid document kind: %q", req.Kind)
			span.RecordError(err)
			writeErrorResponse(w, "Invalid document kind", "kind must be 'resume' or 'coverletter'", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.kind", req.Kind),
			attribute.String("request.format", req.Format),
			attribute.String("operation", "render"),
		)

		var data []byte
		var contentType string
		switch req.Format {
		case "pdf":
			data, err = document.RenderPDF(blocks, document.Styles(variant))
			contentType = "application/pdf"
		case "docx":
			data, err = document.RenderDOCX(blocks, document.Styles(variant))
			contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		default:
			err := fmt.Errorf("invalid format: %q", req.Format)
			span.RecordError(err)
			writeErrorResponse(w, "Invalid format", "format must be 'pdf' or 'docx'", http.StatusBadRequest)
			return
		}
		if err != nil {
			span.RecordError(err)
			om.GetMetrics().RecordBusinessMetric(ctx, "document_rendered", false,
				attribute.String("format", req.Format))
			writeErrorResponse(w, "Failed to render document", err.Error(), http.StatusInternalServerError)
			return
		}

		om.GetMetrics().RecordBusinessMetric(ctx, "document_rendered", true,
			attribute.String("format", req.Format),
			attribute.Int("size_bytes", len(data)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.size_bytes", len(data)),
		)

		w.Header().Set("Content-Type", contentType)
		if _, err := w.Write(data); err != nil {
			span.RecordError(err)
		}
	}
}

// parseResumeField decodes the structured resume carried in a request body.
func parseResumeField(raw json.RawMessage) (*resume.Record, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("resume field is required")
	}
	return resume.ParseRecord(raw)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
