package types

import "fmt"

// Provider identifies the backend that serves a chat model
type Provider string

const (
	ProviderAzureOpenAI Provider = "azure_openai"
	ProviderOpenAI      Provider = "openai"
	ProviderAnthropic   Provider = "anthropic"
	ProviderFireworks   Provider = "fireworks"
	ProviderGoogleGenAI Provider = "google-genai"
	ProviderOllama      Provider = "ollama"
)

// AllProviders returns all supported providers in resolution order
func AllProviders() []Provider {
	return []Provider{
		ProviderAzureOpenAI,
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderFireworks,
		ProviderGoogleGenAI,
		ProviderOllama,
	}
}

// IsValid checks if the provider is supported
func (p Provider) IsValid() bool {
	switch p {
	case ProviderAzureOpenAI,
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderFireworks,
		ProviderGoogleGenAI,
		ProviderOllama:
		return true
	default:
		return false
	}
}

// OpenAICompatible reports whether the provider speaks the OpenAI chat completions protocol
func (p Provider) OpenAICompatible() bool {
	switch p {
	case ProviderOpenAI, ProviderAzureOpenAI, ProviderFireworks, ProviderOllama:
		return true
	default:
		return false
	}
}

// String returns the string representation of the provider
func (p Provider) String() string {
	return string(p)
}

// ParseProvider parses a string into a Provider
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid provider: %s", s)
	}
	return p, nil
}
