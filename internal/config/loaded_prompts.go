package config

import (
	"sync"
)

var (
	loadedPrompts     AllLoadedPrompts
	loadedPromptsOnce sync.Once
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	Optimize      string
	CoverLetter   string
	Analyze       string
	InterviewPrep string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	Optimize           string
	CoverLetter        string
	AnalyzeResume      string
	AnalyzeCoverLetter string
	InterviewPrep      string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global      LoadedPrompts
	Optimize    OperationLoadedPrompts
	CoverLetter OperationLoadedPrompts
	Analyze     OperationLoadedPrompts
	Prep        OperationLoadedPrompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	switch operationType {
	case "optimize":
		return loadedPrompts.Optimize
	case "coverletter":
		return loadedPrompts.CoverLetter
	case "analyze":
		return loadedPrompts.Analyze
	case "prep":
		return loadedPrompts.Prep
	default:
		return OperationLoadedPrompts{
			SystemPrompts: loadedPrompts.Global.SystemPrompts,
			UserPrompts:   loadedPrompts.Global.UserPrompts,
		}
	}
}
