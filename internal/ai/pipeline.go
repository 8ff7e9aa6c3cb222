package ai

import (
	"context"
	"strings"

	"resumecrafter/internal/diff"
	"resumecrafter/internal/errors"
	"resumecrafter/internal/resume"
	"resumecrafter/internal/types"
)

// Pipeline step names, in execution order.
const (
	StepOptimize       = "optimize"
	StepCoverLetter    = "coverletter"
	StepCoverLetterATS = "coverletter-ats"
	StepResumeATS      = "resume-ats"
	StepInterviewPrep  = "prep"
)

// PipelineServices bundles the per-operation AI services a full run uses.
type PipelineServices struct {
	Optimize    *Service
	CoverLetter *Service
	Analyze     *Service
	Prep        *Service
}

// PipelineInput is the input for a full optimization run.
type PipelineInput struct {
	Resume         *resume.Record
	JobDescription string
	TargetRole     string
	Company        string
}

// StepFailure records a non-fatal step that could not produce output.
type StepFailure struct {
	Step string `json:"step"`
	Err  error  `json:"error"`
}

// PipelineResult carries everything a full run produced. Fields for failed
// steps are zero; Failures explains which and why.
type PipelineResult struct {
	Optimized       *resume.Record
	CoverLetterBody string
	ResumeATS       string
	CoverLetterATS  string
	InterviewGuide  string
	Comparison      *diff.Report
	TokenUsage      map[string]*TokenUsage
	Failures        []StepFailure
}

// Degraded reports whether any non-fatal step failed.
func (r *PipelineResult) Degraded() bool {
	return len(r.Failures) > 0
}

// Pipeline runs the AI operations of a full optimization strictly in
// sequence. Only the optimize step is fatal; every later step degrades to a
// recorded failure so one flaky call does not throw away the rest.
type Pipeline struct {
	services PipelineServices
	logger   *errors.Logger
}

// NewPipeline creates a pipeline over per-operation services.
func NewPipeline(services PipelineServices, logger *errors.Logger) *Pipeline {
	return &Pipeline{services: services, logger: logger}
}

// ValidatePipelineInput enforces the preconditions of a full run.
func ValidatePipelineInput(input PipelineInput) error {
	if input.Resume == nil || strings.TrimSpace(input.Resume.ContactInfo.Name) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Please provide your name in the resume contact info", nil)
	}
	if strings.TrimSpace(input.TargetRole) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Please specify a target role", nil)
	}
	if strings.TrimSpace(input.JobDescription) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Please provide a job description", nil)
	}
	return nil
}

// Run executes the full sequence: optimize, cover letter, cover letter ATS
// analysis, resume ATS analysis, interview prep, then the local comparison
// of original versus optimized.
func (p *Pipeline) Run(ctx context.Context, input PipelineInput) (*PipelineResult, error) {
	if err := ValidatePipelineInput(input); err != nil {
		return nil, err
	}

	result := &PipelineResult{
		TokenUsage: make(map[string]*TokenUsage),
	}

	optimized, usage, err := p.services.Optimize.Provider.OptimizeResume(ctx, types.OptimizeInput{
		Resume:         input.Resume,
		JobDescription: input.JobDescription,
		TargetRole:     input.TargetRole,
	})
	if err != nil {
		p.logger.LogError(err, "Resume optimization failed, aborting run",
			"step", StepOptimize)
		return nil, err
	}
	result.Optimized = optimized.Resume
	result.TokenUsage[StepOptimize] = usage
	p.logger.Info("Pipeline step completed", "step", StepOptimize)

	letter, usage, err := p.services.CoverLetter.Provider.GenerateCoverLetter(ctx, types.CoverLetterInput{
		Resume:         result.Optimized,
		JobDescription: input.JobDescription,
		Company:        input.Company,
	})
	if err != nil {
		p.recordFailure(result, StepCoverLetter, err)
	} else {
		result.CoverLetterBody = letter.Body
		result.TokenUsage[StepCoverLetter] = usage
		p.logger.Info("Pipeline step completed", "step", StepCoverLetter)
	}

	// The cover letter analysis needs the letter, so it inherits the failure.
	if result.CoverLetterBody != "" {
		analysis, usage, err := p.services.Analyze.Provider.AnalyzeCompliance(ctx, types.AnalyzeInput{
			Kind:           types.AnalysisCoverLetter,
			Document:       result.CoverLetterBody,
			JobDescription: input.JobDescription,
		})
		if err != nil {
			p.recordFailure(result, StepCoverLetterATS, err)
		} else {
			result.CoverLetterATS = analysis.Report
			result.TokenUsage[StepCoverLetterATS] = usage
			p.logger.Info("Pipeline step completed", "step", StepCoverLetterATS)
		}
	}

	resumeDoc, err := marshalResume(result.Optimized)
	if err == nil {
		analysis, usage, err := p.services.Analyze.Provider.AnalyzeCompliance(ctx, types.AnalyzeInput{
			Kind:           types.AnalysisResume,
			Document:       resumeDoc,
			JobDescription: input.JobDescription,
		})
		if err != nil {
			p.recordFailure(result, StepResumeATS, err)
		} else {
			result.ResumeATS = analysis.Report
			result.TokenUsage[StepResumeATS] = usage
			p.logger.Info("Pipeline step completed", "step", StepResumeATS)
		}
	} else {
		p.recordFailure(result, StepResumeATS, err)
	}

	prep, usage, err := p.services.Prep.Provider.InterviewPrep(ctx, types.InterviewPrepInput{
		Resume:         result.Optimized,
		JobDescription: input.JobDescription,
		TargetRole:     input.TargetRole,
	})
	if err != nil {
		p.recordFailure(result, StepInterviewPrep, err)
	} else {
		result.InterviewGuide = prep.Guide
		result.TokenUsage[StepInterviewPrep] = usage
		p.logger.Info("Pipeline step completed", "step", StepInterviewPrep)
	}

	result.Comparison = diff.CompareRecords(input.Resume, result.Optimized)

	return result, nil
}

func (p *Pipeline) recordFailure(result *PipelineResult, step string, err error) {
	p.logger.LogError(err, "Pipeline step failed, continuing with remaining steps",
		"step", step)
	result.Failures = append(result.Failures, StepFailure{Step: step, Err: err})
}
