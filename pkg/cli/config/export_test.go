package config

import "github.com/secmon-lab/scribe/pkg/domain/model"

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewSupabaseForTest creates a Supabase config for testing purposes
func NewSupabaseForTest(url, anonKey string, verifyJWKS bool) *Supabase {
	return &Supabase{
		url:        url,
		anonKey:    anonKey,
		verifyJWKS: verifyJWKS,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewProvidersForTest creates a Providers config for testing purposes
func NewProvidersForTest(openAIAPIKey, anthropicAPIKey string, azure model.AzureConfig, ollamaAPIURL string) *Providers {
	return &Providers{
		openAIAPIKey:    openAIAPIKey,
		anthropicAPIKey: anthropicAPIKey,
		azure:           azure,
		ollamaAPIURL:    ollamaAPIURL,
	}
}

// NewPolicyForTest creates a Policy config for testing purposes
func NewPolicyForTest(path string) *Policy {
	return &Policy{path: path}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}
