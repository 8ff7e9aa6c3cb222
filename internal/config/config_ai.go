package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetOptimizeConfig returns the AI configuration for optimize operations with fallback to global config
func (c *Config) GetOptimizeConfig() OperationAIConfig {
	config := c.AI.Optimize

	c.applyOperationDefaults(&config)

	// Apply optimize-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.Optimize == "" {
		config.CustomPrompts.SystemPrompts.Optimize = c.AI.CustomPrompts.SystemPrompts.Optimize
	}
	if config.CustomPrompts.UserPrompts.Optimize == "" {
		config.CustomPrompts.UserPrompts.Optimize = c.AI.CustomPrompts.UserPrompts.Optimize
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.OptimizeFile == "" {
		config.CustomPrompts.SystemPrompts.OptimizeFile = c.AI.CustomPrompts.SystemPrompts.OptimizeFile
	}
	if config.CustomPrompts.UserPrompts.OptimizeFile == "" {
		config.CustomPrompts.UserPrompts.OptimizeFile = c.AI.CustomPrompts.UserPrompts.OptimizeFile
	}

	return config
}

// GetCoverLetterConfig returns the AI configuration for cover letter operations with fallback to global config
func (c *Config) GetCoverLetterConfig() OperationAIConfig {
	config := c.AI.CoverLetter

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.CoverLetter == "" {
		config.CustomPrompts.SystemPrompts.CoverLetter = c.AI.CustomPrompts.SystemPrompts.CoverLetter
	}
	if config.CustomPrompts.UserPrompts.CoverLetter == "" {
		config.CustomPrompts.UserPrompts.CoverLetter = c.AI.CustomPrompts.UserPrompts.CoverLetter
	}
	if config.CustomPrompts.SystemPrompts.CoverLetterFile == "" {
		config.CustomPrompts.SystemPrompts.CoverLetterFile = c.AI.CustomPrompts.SystemPrompts.CoverLetterFile
	}
	if config.CustomPrompts.UserPrompts.CoverLetterFile == "" {
		config.CustomPrompts.UserPrompts.CoverLetterFile = c.AI.CustomPrompts.UserPrompts.CoverLetterFile
	}

	return config
}

// GetAnalyzeConfig returns the AI configuration for analyze operations with fallback to global config
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.Analyze == "" {
		config.CustomPrompts.SystemPrompts.Analyze = c.AI.CustomPrompts.SystemPrompts.Analyze
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResume == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResume = c.AI.CustomPrompts.UserPrompts.AnalyzeResume
	}
	if config.CustomPrompts.UserPrompts.AnalyzeCoverLetter == "" {
		config.CustomPrompts.UserPrompts.AnalyzeCoverLetter = c.AI.CustomPrompts.UserPrompts.AnalyzeCoverLetter
	}
	if config.CustomPrompts.SystemPrompts.AnalyzeFile == "" {
		config.CustomPrompts.SystemPrompts.AnalyzeFile = c.AI.CustomPrompts.SystemPrompts.AnalyzeFile
	}
	if config.CustomPrompts.UserPrompts.AnalyzeResumeFile == "" {
		config.CustomPrompts.UserPrompts.AnalyzeResumeFile = c.AI.CustomPrompts.UserPrompts.AnalyzeResumeFile
	}
	if config.CustomPrompts.UserPrompts.AnalyzeCoverLetterFile == "" {
		config.CustomPrompts.UserPrompts.AnalyzeCoverLetterFile = c.AI.CustomPrompts.UserPrompts.AnalyzeCoverLetterFile
	}

	return config
}

// GetPrepConfig returns the AI configuration for interview prep operations with fallback to global config
func (c *Config) GetPrepConfig() OperationAIConfig {
	config := c.AI.Prep

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.InterviewPrep == "" {
		config.CustomPrompts.SystemPrompts.InterviewPrep = c.AI.CustomPrompts.SystemPrompts.InterviewPrep
	}
	if config.CustomPrompts.UserPrompts.InterviewPrep == "" {
		config.CustomPrompts.UserPrompts.InterviewPrep = c.AI.CustomPrompts.UserPrompts.InterviewPrep
	}
	if config.CustomPrompts.SystemPrompts.InterviewPrepFile == "" {
		config.CustomPrompts.SystemPrompts.InterviewPrepFile = c.AI.CustomPrompts.SystemPrompts.InterviewPrepFile
	}
	if config.CustomPrompts.UserPrompts.InterviewPrepFile == "" {
		config.CustomPrompts.UserPrompts.InterviewPrepFile = c.AI.CustomPrompts.UserPrompts.InterviewPrepFile
	}

	return config
}

// GetLoadedOptimizePrompts returns a copy of the loaded prompts for the optimize operation
func (c *Config) GetLoadedOptimizePrompts() OperationLoadedPrompts {
	return loadedPrompts.Optimize
}

// GetLoadedCoverLetterPrompts returns a copy of the loaded prompts for the cover letter operation
func (c *Config) GetLoadedCoverLetterPrompts() OperationLoadedPrompts {
	return loadedPrompts.CoverLetter
}

// GetLoadedAnalyzePrompts returns a copy of the loaded prompts for the analyze operation
func (c *Config) GetLoadedAnalyzePrompts() OperationLoadedPrompts {
	return loadedPrompts.Analyze
}

// GetLoadedPrepPrompts returns a copy of the loaded prompts for the interview prep operation
func (c *Config) GetLoadedPrepPrompts() OperationLoadedPrompts {
	return loadedPrompts.Prep
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}
