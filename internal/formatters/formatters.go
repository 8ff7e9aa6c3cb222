package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumecrafter/internal/diff"
	"resumecrafter/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ComparisonReport", &ComparisonTextFormatter{})
	registry.RegisterFormatter("markdown", "ComparisonReport", &ComparisonMarkdownFormatter{})
	registry.RegisterFormatter("text", "AnalyzeOutput", &AnalyzeTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalyzeOutput", &AnalyzeMarkdownFormatter{})
	registry.RegisterFormatter("text", "CoverLetterOutput", &CoverLetterTextFormatter{})
	registry.RegisterFormatter("markdown", "CoverLetterOutput", &CoverLetterMarkdownFormatter{})
	registry.RegisterFormatter("text", "InterviewPrepOutput", &InterviewPrepTextFormatter{})
	registry.RegisterFormatter("markdown", "InterviewPrepOutput", &InterviewPrepMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case *diff.Report, diff.Report:
		return "ComparisonReport"
	case types.AnalyzeOutput:
		return "AnalyzeOutput"
	case types.CoverLetterOutput:
		return "CoverLetterOutput"
	case types.InterviewPrepOutput:
		return "InterviewPrepOutput"
	default:
		return "any"
	}
}

func asReport(data any) (*diff.Report, error) {
	switch v := data.(type) {
	case *diff.Report:
		return v, nil
	case diff.Report:
		return &v, nil
	}
	return nil, fmt.Errorf("expected comparison report, got %T", data)
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ComparisonTextFormatter handles text formatting for comparison reports
type ComparisonTextFormatter struct{}

func (ctf *ComparisonTextFormatter) Format(data any) (string, error) {
	report, err := asReport(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== FABRICATION CHECKS ===\n\n")
	for _, check := range report.Checks {
		output.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(string(check.Status)), check.Name))
		output.WriteString("   ")
		output.WriteString(check.Message)
		output.WriteString("\n")
	}
	output.WriteString("\n")

	for _, section := range report.Sections {
		output.WriteString(fmt.Sprintf("=== %s ===\n\n", strings.ToUpper(section.Title)))
		for i, row := range section.Rows {
			if len(section.Rows) > 1 {
				output.WriteString(fmt.Sprintf("--- Entry %d ---\n", i+1))
			}
			output.WriteString("Original:\n")
			output.WriteString(row.Original)
			output.WriteString("\n\n")
			output.WriteString("Optimized:\n")
			output.WriteString(row.Optimized)
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (ctf *ComparisonTextFormatter) SupportedType() string {
	return "ComparisonReport"
}

// ComparisonMarkdownFormatter handles markdown formatting for comparison reports
type ComparisonMarkdownFormatter struct{}

func (cmf *ComparisonMarkdownFormatter) Format(data any) (string, error) {
	report, err := asReport(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# Resume Comparison\n\n")

	output.WriteString("## Fabrication Checks\n\n")
	for _, check := range report.Checks {
		marker := "✅"
		if check.Status == diff.StatusWarning {
			marker = "⚠️"
		}
		output.WriteString(fmt.Sprintf("- %s **%s**: %s\n", marker, check.Name, check.Message))
	}
	output.WriteString("\n")

	for _, section := range report.Sections {
		output.WriteString(fmt.Sprintf("## %s\n\n", section.Title))
		output.WriteString("| Original | Optimized |\n")
		output.WriteString("| --- | --- |\n")
		for _, row := range section.Rows {
			output.WriteString(fmt.Sprintf("| %s | %s |\n",
				markdownCell(row.Original), markdownCell(row.Optimized)))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

// markdownCell flattens multi-line cell text so the table stays intact.
func markdownCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	return strings.ReplaceAll(text, "\n", "<br>")
}

func (cmf *ComparisonMarkdownFormatter) SupportedType() string {
	return "ComparisonReport"
}

// AnalyzeTextFormatter handles text formatting for ATS analysis results
type AnalyzeTextFormatter struct{}

func (atf *AnalyzeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS COMPLIANCE ANALYSIS ===\n\n")
	output.WriteString(result.Report)
	output.WriteString("\n")

	return output.String(), nil
}

func (atf *AnalyzeTextFormatter) SupportedType() string {
	return "AnalyzeOutput"
}

// AnalyzeMarkdownFormatter handles markdown formatting for ATS analysis results
type AnalyzeMarkdownFormatter struct{}

func (amf *AnalyzeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Compliance Analysis\n\n")
	output.WriteString(result.Report)
	output.WriteString("\n")

	return output.String(), nil
}

func (amf *AnalyzeMarkdownFormatter) SupportedType() string {
	return "AnalyzeOutput"
}

// CoverLetterTextFormatter handles text formatting for cover letters
type CoverLetterTextFormatter struct{}

func (cltf *CoverLetterTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverLetterOutput)
	if !ok {
		return "", fmt.Errorf("expected CoverLetterOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== COVER LETTER ===\n\n")
	output.WriteString(result.Body)
	output.WriteString("\n")

	return output.String(), nil
}

func (cltf *CoverLetterTextFormatter) SupportedType() string {
	return "CoverLetterOutput"
}

// CoverLetterMarkdownFormatter handles markdown formatting for cover letters
type CoverLetterMarkdownFormatter struct{}

func (clmf *CoverLetterMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverLetterOutput)
	if !ok {
		return "", fmt.Errorf("expected CoverLetterOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Cover Letter\n\n")
	output.WriteString(result.Body)
	output.WriteString("\n")

	return output.String(), nil
}

func (clmf *CoverLetterMarkdownFormatter) SupportedType() string {
	return "CoverLetterOutput"
}

// InterviewPrepTextFormatter handles text formatting for interview prep guides
type InterviewPrepTextFormatter struct{}

func (iptf *InterviewPrepTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewPrepOutput)
	if !ok {
		return "", fmt.Errorf("expected InterviewPrepOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== INTERVIEW PREPARATION GUIDE ===\n\n")
	output.WriteString(result.Guide)
	output.WriteString("\n")

	return output.String(), nil
}

func (iptf *InterviewPrepTextFormatter) SupportedType() string {
	return "InterviewPrepOutput"
}

// InterviewPrepMarkdownFormatter handles markdown formatting for interview prep guides
type InterviewPrepMarkdownFormatter struct{}

func (ipmf *InterviewPrepMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewPrepOutput)
	if !ok {
		return "", fmt.Errorf("expected InterviewPrepOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Interview Preparation Guide\n\n")
	output.WriteString(result.Guide)
	output.WriteString("\n")

	return output.String(), nil
}

func (ipmf *InterviewPrepMarkdownFormatter) SupportedType() string {
	return "InterviewPrepOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
