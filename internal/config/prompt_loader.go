package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// PromptSource represents where a prompt was loaded from
type PromptSource struct {
	Source    string // "file", "operation-config", "global-config", or "default"
	FilePath  string // Set if Source is "file"
	Operation string // The operation this prompt is for
	Type      string // "system" or "user"
}

// GetLoadedPrompts returns the loaded prompt content in a thread-safe way
func GetLoadedPrompts() *AllLoadedPrompts {
	return &loadedPrompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	operations := []struct {
		name   string
		source *PromptConfig
		target *OperationLoadedPrompts
	}{
		{"optimize", &c.AI.Optimize.CustomPrompts, &loadedPrompts.Optimize},
		{"coverletter", &c.AI.CoverLetter.CustomPrompts, &loadedPrompts.CoverLetter},
		{"analyze", &c.AI.Analyze.CustomPrompts, &loadedPrompts.Analyze},
		{"prep", &c.AI.Prep.CustomPrompts, &loadedPrompts.Prep},
	}
	for _, op := range operations {
		if err := c.loadSystemPromptsFromFiles(&op.source.SystemPrompts, &op.target.SystemPrompts); err != nil {
			return fmt.Errorf("failed to load %s system prompts: %w", op.name, err)
		}
		if err := c.loadUserPromptsFromFiles(&op.source.UserPrompts, &op.target.UserPrompts); err != nil {
			return fmt.Errorf("failed to load %s user prompts: %w", op.name, err)
		}
	}

	// Log summary of prompt sources after loading
	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	fields := []struct {
		file      string
		target    *string
		operation string
	}{
		{prompts.OptimizeFile, &target.Optimize, "optimize"},
		{prompts.CoverLetterFile, &target.CoverLetter, "coverLetter"},
		{prompts.AnalyzeFile, &target.Analyze, "analyze"},
		{prompts.InterviewPrepFile, &target.InterviewPrep, "interviewPrep"},
	}

	for _, f := range fields {
		if f.file == "" {
			continue
		}
		content, err := c.loadPromptFromFile(f.file, "system", f.operation)
		if err != nil {
			return err
		}
		*f.target = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	fields := []struct {
		file      string
		target    *string
		operation string
	}{
		{prompts.OptimizeFile, &target.Optimize, "optimize"},
		{prompts.CoverLetterFile, &target.CoverLetter, "coverLetter"},
		{prompts.AnalyzeResumeFile, &target.AnalyzeResume, "analyzeResume"},
		{prompts.AnalyzeCoverLetterFile, &target.AnalyzeCoverLetter, "analyzeCoverLetter"},
		{prompts.InterviewPrepFile, &target.InterviewPrep, "interviewPrep"},
	}

	for _, f := range fields {
		if f.file == "" {
			continue
		}
		content, err := c.loadPromptFromFile(f.file, "user", f.operation)
		if err != nil {
			return err
		}
		*f.target = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	// Helper function to validate a file path
	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	validatePromptConfig := func(scope string, prompts *PromptConfig) {
		validateFile(prompts.SystemPrompts.OptimizeFile, scope+" system", "optimize")
		validateFile(prompts.SystemPrompts.CoverLetterFile, scope+" system", "coverLetter")
		validateFile(prompts.SystemPrompts.AnalyzeFile, scope+" system", "analyze")
		validateFile(prompts.SystemPrompts.InterviewPrepFile, scope+" system", "interviewPrep")
		validateFile(prompts.UserPrompts.OptimizeFile, scope+" user", "optimize")
		validateFile(prompts.UserPrompts.CoverLetterFile, scope+" user", "coverLetter")
		validateFile(prompts.UserPrompts.AnalyzeResumeFile, scope+" user", "analyzeResume")
		validateFile(prompts.UserPrompts.AnalyzeCoverLetterFile, scope+" user", "analyzeCoverLetter")
		validateFile(prompts.UserPrompts.InterviewPrepFile, scope+" user", "interviewPrep")
	}

	validatePromptConfig("global", &c.AI.CustomPrompts)
	validatePromptConfig("optimize", &c.AI.Optimize.CustomPrompts)
	validatePromptConfig("coverletter", &c.AI.CoverLetter.CustomPrompts)
	validatePromptConfig("analyze", &c.AI.Analyze.CustomPrompts)
	validatePromptConfig("prep", &c.AI.Prep.CustomPrompts)

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptCount := 0
	promptChecks := []struct {
		content string
		message string
	}{
		{loadedPrompts.Global.SystemPrompts.Optimize, "[CONFIG] Global system optimize prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.CoverLetter, "[CONFIG] Global system cover letter prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.Analyze, "[CONFIG] Global system analyze prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.InterviewPrep, "[CONFIG] Global system interview prep prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.Optimize, "[CONFIG] Global user optimize prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.CoverLetter, "[CONFIG] Global user cover letter prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.AnalyzeResume, "[CONFIG] Global user resume analysis prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.AnalyzeCoverLetter, "[CONFIG] Global user cover letter analysis prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.InterviewPrep, "[CONFIG] Global user interview prep prompt: loaded from config/file"},
		{loadedPrompts.Optimize.SystemPrompts.Optimize, "[CONFIG] Optimize-specific system prompt: loaded from config/file"},
		{loadedPrompts.Optimize.UserPrompts.Optimize, "[CONFIG] Optimize-specific user prompt: loaded from config/file"},
		{loadedPrompts.CoverLetter.SystemPrompts.CoverLetter, "[CONFIG] Cover-letter-specific system prompt: loaded from config/file"},
		{loadedPrompts.CoverLetter.UserPrompts.CoverLetter, "[CONFIG] Cover-letter-specific user prompt: loaded from config/file"},
		{loadedPrompts.Analyze.SystemPrompts.Analyze, "[CONFIG] Analyze-specific system prompt: loaded from config/file"},
		{loadedPrompts.Analyze.UserPrompts.AnalyzeResume, "[CONFIG] Analyze-specific resume user prompt: loaded from config/file"},
		{loadedPrompts.Analyze.UserPrompts.AnalyzeCoverLetter, "[CONFIG] Analyze-specific cover letter user prompt: loaded from config/file"},
		{loadedPrompts.Prep.SystemPrompts.InterviewPrep, "[CONFIG] Prep-specific system prompt: loaded from config/file"},
		{loadedPrompts.Prep.UserPrompts.InterviewPrep, "[CONFIG] Prep-specific user prompt: loaded from config/file"},
	}

	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
