package model

import (
	"slices"

	"github.com/secmon-lab/scribe/pkg/domain/types"
)

// DefaultAzureAPIVersion is used when no Azure OpenAI API version is configured
const DefaultAzureAPIVersion = "2024-08-01-preview"

// DefaultOllamaAPIURL is used when no Ollama endpoint is configured
const DefaultOllamaAPIURL = "http://host.docker.internal:11434"

// Credentials are the provider secrets and endpoints resolved once at startup
type Credentials struct {
	OpenAIAPIKey    string `masq:"secret"`
	AnthropicAPIKey string `masq:"secret"`
	FireworksAPIKey string `masq:"secret"`
	GoogleAPIKey    string `masq:"secret"`
	Azure           AzureConfig
	OllamaAPIURL    string
}

// AzureConfig holds Azure OpenAI deployment settings
type AzureConfig struct {
	APIKey         string `json:"azureOpenAIApiKey,omitempty" masq:"secret"`
	InstanceName   string `json:"azureOpenAIApiInstanceName,omitempty"`
	DeploymentName string `json:"azureOpenAIApiDeploymentName,omitempty"`
	APIVersion     string `json:"azureOpenAIApiVersion,omitempty"`
	BasePath       string `json:"azureOpenAIBasePath,omitempty"`
}

// ResolvedModelConfig is the provider, credentials and options derived from a model name
type ResolvedModelConfig struct {
	ModelName     string             `json:"modelName"`
	ModelProvider types.Provider     `json:"modelProvider"`
	ModelConfig   *CustomModelConfig `json:"modelConfig,omitempty"`
	AzureConfig   *AzureConfig       `json:"azureConfig,omitempty"`
	APIKey        string             `json:"apiKey,omitempty" masq:"secret"`
	BaseURL       string             `json:"baseUrl,omitempty"`
}

// Redacted returns a copy without secrets, suitable for responses and logs
func (c *ResolvedModelConfig) Redacted() *ResolvedModelConfig {
	copied := *c
	if copied.APIKey != "" {
		copied.APIKey = redactedValue
	}
	if c.AzureConfig != nil {
		azure := *c.AzureConfig
		if azure.APIKey != "" {
			azure.APIKey = redactedValue
		}
		copied.AzureConfig = &azure
	}
	return &copied
}

const redactedValue = "[REDACTED]"

// ModelPolicy lists per-model restrictions applied when constructing a chat model
type ModelPolicy struct {
	RestrictedModels          []string `toml:"restricted_models"`
	TemperatureExcludedModels []string `toml:"temperature_excluded_models"`
	PrivilegedEmailSuffix     string   `toml:"privileged_email_suffix"`
}

// DefaultModelPolicy returns the built-in model policy
func DefaultModelPolicy() ModelPolicy {
	return ModelPolicy{
		RestrictedModels: []string{
			"o1-preview",
			"o1-mini",
			"gpt-4o",
			"claude-3-5-sonnet-20240620",
		},
		TemperatureExcludedModels: []string{
			"o1-mini",
			"o3-mini",
			"o1",
		},
		PrivilegedEmailSuffix: "@langchain.dev",
	}
}

// IsRestricted reports whether modelName requires a privileged user
func (p ModelPolicy) IsRestricted(modelName string) bool {
	return slices.Contains(p.RestrictedModels, modelName)
}

// ExcludesTemperature reports whether modelName rejects the temperature parameter
func (p ModelPolicy) ExcludesTemperature(modelName string) bool {
	return slices.Contains(p.TemperatureExcludedModels, modelName)
}

// ChatModelParams is the complete parameter bundle handed to a chat model loader
type ChatModelParams struct {
	ModelName           string         `json:"modelName"`
	ModelProvider       types.Provider `json:"modelProvider"`
	Temperature         *float64       `json:"temperature,omitempty"`
	MaxTokens           *int           `json:"maxTokens,omitempty"`
	MaxCompletionTokens *int           `json:"max_completion_tokens,omitempty"`
	Streaming           bool           `json:"streaming"`
	BaseURL             string         `json:"baseUrl,omitempty"`
	APIKey              string         `json:"apiKey,omitempty" masq:"secret"`
	Azure               *AzureConfig   `json:"azure,omitempty"`
}

// Redacted returns a copy without secrets
func (p *ChatModelParams) Redacted() *ChatModelParams {
	copied := *p
	if copied.APIKey != "" {
		copied.APIKey = redactedValue
	}
	if p.Azure != nil {
		azure := *p.Azure
		if azure.APIKey != "" {
			azure.APIKey = redactedValue
		}
		copied.Azure = &azure
	}
	return &copied
}
