package usecase

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/domain/types"
)

// toolCallingFallbackModel replaces o1 models when tools are required, since o1 cannot call tools
const toolCallingFallbackModel = "gpt-4o"

const (
	azurePrefix  = "azure/"
	ollamaPrefix = "ollama-"
)

// ModelConfigResolver maps a requested model name to its provider and credentials
type ModelConfigResolver struct {
	creds model.Credentials
}

// NewModelConfigResolver creates a resolver over credentials loaded at startup
func NewModelConfigResolver(creds model.Credentials) *ModelConfigResolver {
	return &ModelConfigResolver{creds: creds}
}

type resolveOptions struct {
	toolCalling bool
}

// ResolveOption customizes a single resolution
type ResolveOption func(*resolveOptions)

// WithToolCalling resolves a model that must support tool calling
func WithToolCalling() ResolveOption {
	return func(o *resolveOptions) {
		o.toolCalling = true
	}
}

// providerRule is one row of the dispatch table. Rules are tested in order and the first
// match wins, so prefix rules must stay ahead of the broader substring rules.
type providerRule struct {
	match func(name string) bool
	build func(r *ModelConfigResolver, name string, cfg *model.CustomModelConfig, opts resolveOptions) *model.ResolvedModelConfig
}

var providerRules = []providerRule{
	{
		match: func(name string) bool { return strings.HasPrefix(name, azurePrefix) },
		build: (*ModelConfigResolver).buildAzure,
	},
	{
		match: func(name string) bool {
			return strings.Contains(name, "gpt-") || strings.Contains(name, "o1")
		},
		build: (*ModelConfigResolver).buildOpenAI,
	},
	{
		match: func(name string) bool { return strings.Contains(name, "claude-") },
		build: func(r *ModelConfigResolver, name string, cfg *model.CustomModelConfig, _ resolveOptions) *model.ResolvedModelConfig {
			return r.withAPIKey(name, types.ProviderAnthropic, cfg, r.creds.AnthropicAPIKey)
		},
	},
	{
		match: func(name string) bool { return strings.Contains(name, "fireworks/") },
		build: func(r *ModelConfigResolver, name string, cfg *model.CustomModelConfig, _ resolveOptions) *model.ResolvedModelConfig {
			return r.withAPIKey(name, types.ProviderFireworks, cfg, r.creds.FireworksAPIKey)
		},
	},
	{
		match: func(name string) bool { return strings.Contains(name, "gemini-") },
		build: func(r *ModelConfigResolver, name string, cfg *model.CustomModelConfig, _ resolveOptions) *model.ResolvedModelConfig {
			return r.withAPIKey(name, types.ProviderGoogleGenAI, cfg, r.creds.GoogleAPIKey)
		},
	},
	{
		match: func(name string) bool { return strings.HasPrefix(name, ollamaPrefix) },
		build: (*ModelConfigResolver).buildOllama,
	},
}

// Resolve derives the provider, credentials and options for cfg.CustomModelName
func (r *ModelConfigResolver) Resolve(cfg *model.RunConfig, opts ...ResolveOption) (*model.ResolvedModelConfig, error) {
	if cfg == nil || cfg.CustomModelName == "" {
		return nil, goerr.Wrap(ErrMissingConfig, "customModelName is required")
	}

	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	name := cfg.CustomModelName
	for _, rule := range providerRules {
		if rule.match(name) {
			return rule.build(r, name, cfg.ModelConfig, o), nil
		}
	}

	return nil, goerr.Wrap(ErrUnknownProvider, "no provider matches model name", goerr.V(ModelNameKey, name))
}

func (r *ModelConfigResolver) withAPIKey(name string, provider types.Provider, cfg *model.CustomModelConfig, apiKey string) *model.ResolvedModelConfig {
	return &model.ResolvedModelConfig{
		ModelName:     name,
		ModelProvider: provider,
		ModelConfig:   cfg,
		APIKey:        apiKey,
	}
}

func (r *ModelConfigResolver) buildAzure(name string, cfg *model.CustomModelConfig, opts resolveOptions) *model.ResolvedModelConfig {
	actual := strings.TrimPrefix(name, azurePrefix)
	if opts.toolCalling && strings.Contains(actual, "o1") {
		actual = toolCallingFallbackModel
	}

	azure := r.creds.Azure
	if azure.APIVersion == "" {
		azure.APIVersion = model.DefaultAzureAPIVersion
	}

	return &model.ResolvedModelConfig{
		ModelName:     actual,
		ModelProvider: types.ProviderAzureOpenAI,
		ModelConfig:   cfg,
		AzureConfig:   &azure,
	}
}

func (r *ModelConfigResolver) buildOpenAI(name string, cfg *model.CustomModelConfig, opts resolveOptions) *model.ResolvedModelConfig {
	actual := name
	if opts.toolCalling && strings.Contains(actual, "o1") {
		actual = toolCallingFallbackModel
	}
	return r.withAPIKey(actual, types.ProviderOpenAI, cfg, r.creds.OpenAIAPIKey)
}

func (r *ModelConfigResolver) buildOllama(name string, cfg *model.CustomModelConfig, _ resolveOptions) *model.ResolvedModelConfig {
	baseURL := r.creds.OllamaAPIURL
	if baseURL == "" {
		baseURL = model.DefaultOllamaAPIURL
	}
	return &model.ResolvedModelConfig{
		ModelName:     strings.TrimPrefix(name, ollamaPrefix),
		ModelProvider: types.ProviderOllama,
		ModelConfig:   cfg,
		BaseURL:       baseURL,
	}
}
