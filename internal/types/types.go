// Package types defines the input and output payloads for the AI
// operations. They are shared between the CLI, the HTTP server, and the
// provider implementations.
package types

import "resumecrafter/internal/resume"

// AnalysisKind selects which document an ATS compliance analysis targets.
type AnalysisKind string

const (
	AnalysisResume      AnalysisKind = "resume"
	AnalysisCoverLetter AnalysisKind = "coverletter"
)

// OptimizeInput is the input for the resume optimization operation.
type OptimizeInput struct {
	Resume         *resume.Record `json:"resume"`
	JobDescription string         `json:"jobDescription"`
	TargetRole     string         `json:"targetRole"`
}

// OptimizeOutput is the optimized resume returned by the AI provider.
// Raw carries the provider's response text before decoding, for callers
// that want to persist or inspect it.
type OptimizeOutput struct {
	Resume *resume.Record `json:"resume"`
	Raw    string         `json:"-"`
}

// CoverLetterInput is the input for cover letter generation.
type CoverLetterInput struct {
	Resume         *resume.Record `json:"resume"`
	JobDescription string         `json:"jobDescription"`
	Company        string         `json:"company,omitempty"`
}

// CoverLetterOutput carries the generated letter body. The body holds
// only the middle paragraphs; salutation and closing are added at
// document assembly time.
type CoverLetterOutput struct {
	Body string `json:"body"`
}

// AnalyzeInput is the input for an ATS compliance analysis of either a
// resume or a cover letter.
type AnalyzeInput struct {
	Kind           AnalysisKind `json:"kind"`
	Document       string       `json:"document"`
	JobDescription string       `json:"jobDescription"`
}

// AnalyzeOutput is the free-text compliance report.
type AnalyzeOutput struct {
	Report string `json:"report"`
}

// InterviewPrepInput is the input for interview preparation material.
type InterviewPrepInput struct {
	Resume         *resume.Record `json:"resume"`
	JobDescription string         `json:"jobDescription"`
	TargetRole     string         `json:"targetRole"`
}

// InterviewPrepOutput is the generated preparation guide.
type InterviewPrepOutput struct {
	Guide string `json:"guide"`
}
