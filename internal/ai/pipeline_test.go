package ai

import (
	"context"
	goerrors "errors"
	"log/slog"
	"testing"

	"resumecrafter/internal/errors"
	"resumecrafter/internal/resume"
	"resumecrafter/internal/types"
)

// fakeProvider implements AIProvider with canned responses per operation.
type fakeProvider struct {
	optimizeErr    error
	coverLetterErr error
	analyzeErr     error
	prepErr        error

	analyzeCalls []types.AnalysisKind
}

func (f *fakeProvider) OptimizeResume(_ context.Context, input types.OptimizeInput) (types.OptimizeOutput, *TokenUsage, error) {
	if f.optimizeErr != nil {
		return types.OptimizeOutput{}, nil, f.optimizeErr
	}
	optimized := *input.Resume
	optimized.ProfessionalSummary = "Optimized summary for " + input.TargetRole
	return types.OptimizeOutput{Resume: &optimized}, &TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}, nil
}

func (f *fakeProvider) GenerateCoverLetter(_ context.Context, input types.CoverLetterInput) (types.CoverLetterOutput, *TokenUsage, error) {
	if f.coverLetterErr != nil {
		return types.CoverLetterOutput{}, nil, f.coverLetterErr
	}
	return types.CoverLetterOutput{Body: "Dear Hiring Manager,"}, &TokenUsage{TotalTokens: 80}, nil
}

func (f *fakeProvider) AnalyzeCompliance(_ context.Context, input types.AnalyzeInput) (types.AnalyzeOutput, *TokenUsage, error) {
	f.analyzeCalls = append(f.analyzeCalls, input.Kind)
	if f.analyzeErr != nil {
		return types.AnalyzeOutput{}, nil, f.analyzeErr
	}
	return types.AnalyzeOutput{Report: "ATS report"}, &TokenUsage{TotalTokens: 60}, nil
}

func (f *fakeProvider) InterviewPrep(_ context.Context, input types.InterviewPrepInput) (types.InterviewPrepOutput, *TokenUsage, error) {
	if f.prepErr != nil {
		return types.InterviewPrepOutput{}, nil, f.prepErr
	}
	return types.InterviewPrepOutput{Guide: "Interview guide"}, &TokenUsage{TotalTokens: 120}, nil
}

func (f *fakeProvider) GetModelInfo(_ context.Context) *ModelInfo { return nil }

func (f *fakeProvider) Close() error { return nil }

func newFakePipeline(provider AIProvider) *Pipeline {
	service := &Service{Provider: provider}
	return NewPipeline(PipelineServices{
		Optimize:    service,
		CoverLetter: service,
		Analyze:     service,
		Prep:        service,
	}, errors.NewLogger(slog.LevelError))
}

func validPipelineInput() PipelineInput {
	return PipelineInput{
		Resume:         resume.SampleRecord(),
		JobDescription: "Build distributed systems in Go.",
		TargetRole:     "Backend Engineer",
		Company:        "Initech",
	}
}

func TestValidatePipelineInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PipelineInput)
		wantErr bool
	}{
		{"valid input", func(*PipelineInput) {}, false},
		{"nil resume", func(in *PipelineInput) { in.Resume = nil }, true},
		{"missing name", func(in *PipelineInput) { in.Resume.ContactInfo.Name = "  " }, true},
		{"missing target role", func(in *PipelineInput) { in.TargetRole = "" }, true},
		{"missing job description", func(in *PipelineInput) { in.JobDescription = "" }, true},
		{"missing company is fine", func(in *PipelineInput) { in.Company = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validPipelineInput()
			tt.mutate(&input)

			err := ValidatePipelineInput(input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected validation error, got nil")
				}
				if errors.Code(err) != errors.ErrCodeInvalidRequest {
					t.Errorf("Expected code %s, got %s", errors.ErrCodeInvalidRequest, errors.Code(err))
				}
			} else if err != nil {
				t.Fatalf("Expected input to validate, got: %v", err)
			}
		})
	}
}

func TestPipelineRunAllStepsSucceed(t *testing.T) {
	provider := &fakeProvider{}
	pipeline := newFakePipeline(provider)

	result, err := pipeline.Run(context.Background(), validPipelineInput())
	if err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	if result.Optimized == nil {
		t.Fatal("Expected optimized resume in result")
	}
	if result.CoverLetterBody == "" {
		t.Error("Expected cover letter body in result")
	}
	if result.ResumeATS == "" || result.CoverLetterATS == "" {
		t.Error("Expected both ATS reports in result")
	}
	if result.InterviewGuide == "" {
		t.Error("Expected interview guide in result")
	}
	if result.Comparison == nil {
		t.Error("Expected comparison report in result")
	}
	if result.Degraded() {
		t.Errorf("Expected no failures, got %v", result.Failures)
	}

	// Both analysis kinds should have been requested.
	if len(provider.analyzeCalls) != 2 {
		t.Fatalf("Expected 2 analyze calls, got %d", len(provider.analyzeCalls))
	}
	if provider.analyzeCalls[0] != types.AnalysisCoverLetter || provider.analyzeCalls[1] != types.AnalysisResume {
		t.Errorf("Unexpected analyze order: %v", provider.analyzeCalls)
	}

	// Token usage should be recorded per step.
	for _, step := range []string{StepOptimize, StepCoverLetter, StepCoverLetterATS, StepResumeATS, StepInterviewPrep} {
		if result.TokenUsage[step] == nil {
			t.Errorf("Expected token usage for step %s", step)
		}
	}
}

func TestPipelineRunOptimizeFailureIsFatal(t *testing.T) {
	provider := &fakeProvider{
		optimizeErr: errors.NewAIError(errors.ErrCodeAIServiceFailed, "Failed to generate content for optimize", nil),
	}
	pipeline := newFakePipeline(provider)

	result, err := pipeline.Run(context.Background(), validPipelineInput())
	if err == nil {
		t.Fatal("Expected pipeline to fail when optimization fails")
	}
	if result != nil {
		t.Error("Expected nil result on fatal failure")
	}
	if len(provider.analyzeCalls) != 0 {
		t.Error("Expected no analysis calls after fatal optimization failure")
	}
}

func TestPipelineRunDegradesOnCoverLetterFailure(t *testing.T) {
	provider := &fakeProvider{
		coverLetterErr: goerrors.New("transient failure"),
	}
	pipeline := newFakePipeline(provider)

	result, err := pipeline.Run(context.Background(), validPipelineInput())
	if err != nil {
		t.Fatalf("Pipeline should continue after cover letter failure, got: %v", err)
	}

	if !result.Degraded() {
		t.Fatal("Expected a degraded result")
	}
	if result.CoverLetterBody != "" {
		t.Error("Expected empty cover letter body after failure")
	}
	if result.CoverLetterATS != "" {
		t.Error("Expected cover letter analysis to be skipped without a letter")
	}

	// Only the cover letter step should be recorded as failed; the dependent
	// analysis is skipped, not failed.
	if len(result.Failures) != 1 || result.Failures[0].Step != StepCoverLetter {
		t.Errorf("Unexpected failures: %v", result.Failures)
	}

	// The rest of the run still happens.
	if result.ResumeATS == "" {
		t.Error("Expected resume ATS report despite cover letter failure")
	}
	if result.InterviewGuide == "" {
		t.Error("Expected interview guide despite cover letter failure")
	}
	if result.Comparison == nil {
		t.Error("Expected comparison report despite cover letter failure")
	}
	if len(provider.analyzeCalls) != 1 || provider.analyzeCalls[0] != types.AnalysisResume {
		t.Errorf("Expected a single resume analysis call, got %v", provider.analyzeCalls)
	}
}

func TestPipelineRunDegradesOnAnalyzeFailure(t *testing.T) {
	provider := &fakeProvider{
		analyzeErr: goerrors.New("analysis backend down"),
	}
	pipeline := newFakePipeline(provider)

	result, err := pipeline.Run(context.Background(), validPipelineInput())
	if err != nil {
		t.Fatalf("Pipeline should continue after analysis failures, got: %v", err)
	}

	if len(result.Failures) != 2 {
		t.Fatalf("Expected both analysis steps to fail, got %v", result.Failures)
	}
	steps := map[string]bool{}
	for _, f := range result.Failures {
		steps[f.Step] = true
	}
	if !steps[StepCoverLetterATS] || !steps[StepResumeATS] {
		t.Errorf("Expected coverletter-ats and resume-ats failures, got %v", result.Failures)
	}
	if result.InterviewGuide == "" {
		t.Error("Expected interview guide despite analysis failures")
	}
}

func TestPipelineRunRejectsInvalidInput(t *testing.T) {
	pipeline := newFakePipeline(&fakeProvider{})

	input := validPipelineInput()
	input.TargetRole = ""

	_, err := pipeline.Run(context.Background(), input)
	if err == nil {
		t.Fatal("Expected validation error for missing target role")
	}
}
