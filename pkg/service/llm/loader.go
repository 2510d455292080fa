package llm

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/domain/types"
)

const (
	fireworksBaseURL = "https://api.fireworks.ai/inference/v1"
	azureHostSuffix  = ".openai.azure.com"
)

var (
	ErrUnsupportedProvider = goerr.New("unsupported model provider")
	ErrMissingCredential   = goerr.New("model provider credential is missing")
)

// Loader builds gollem clients for every supported provider. OpenAI compatible providers
// (Azure OpenAI, Fireworks, Ollama) go through the OpenAI client with their own base URL.
type Loader struct {
	geminiProject  string
	geminiLocation string
}

var _ interfaces.ChatModelLoader = &Loader{}

// Option is a functional option for Loader
type Option func(*Loader)

// WithGeminiProject sets the Vertex AI project and location used for Gemini models
func WithGeminiProject(projectID, location string) Option {
	return func(l *Loader) {
		l.geminiProject = projectID
		l.geminiLocation = location
	}
}

// New creates a new Loader instance
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load creates the chat model client described by params
func (l *Loader) Load(ctx context.Context, params *model.ChatModelParams) (gollem.LLMClient, error) {
	if params == nil {
		return nil, goerr.New("chat model params are required")
	}

	switch params.ModelProvider {
	case types.ProviderOpenAI, types.ProviderAzureOpenAI, types.ProviderFireworks, types.ProviderOllama:
		return l.loadOpenAI(ctx, params)
	case types.ProviderAnthropic:
		return l.loadClaude(ctx, params)
	case types.ProviderGoogleGenAI:
		return l.loadGemini(ctx, params)
	default:
		return nil, goerr.Wrap(ErrUnsupportedProvider, "no loader for provider",
			goerr.V("provider", params.ModelProvider),
			goerr.V("model", params.ModelName),
		)
	}
}

func (l *Loader) loadOpenAI(ctx context.Context, params *model.ChatModelParams) (gollem.LLMClient, error) {
	endpoint, err := openAIEndpoint(params)
	if err != nil {
		return nil, err
	}

	opts := []openai.Option{
		openai.WithModel(endpoint.model),
	}
	if endpoint.baseURL != "" {
		opts = append(opts, openai.WithBaseURL(endpoint.baseURL))
	}
	if params.Temperature != nil {
		opts = append(opts, openai.WithTemperature(float32(*params.Temperature)))
	}
	if n := maxTokens(params); n != nil {
		opts = append(opts, openai.WithMaxTokens(*n))
	}

	client, err := openai.New(ctx, endpoint.apiKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OpenAI client",
			goerr.V("provider", params.ModelProvider),
			goerr.V("model", endpoint.model),
		)
	}
	return client, nil
}

func (l *Loader) loadClaude(ctx context.Context, params *model.ChatModelParams) (gollem.LLMClient, error) {
	if params.APIKey == "" {
		return nil, goerr.Wrap(ErrMissingCredential, "Anthropic API key is not configured", goerr.V("model", params.ModelName))
	}

	opts := []claude.Option{
		claude.WithModel(params.ModelName),
	}
	if params.Temperature != nil {
		opts = append(opts, claude.WithTemperature(*params.Temperature))
	}
	if n := maxTokens(params); n != nil {
		opts = append(opts, claude.WithMaxTokens(int64(*n)))
	}

	client, err := claude.New(ctx, params.APIKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Claude client", goerr.V("model", params.ModelName))
	}
	return client, nil
}

func (l *Loader) loadGemini(ctx context.Context, params *model.ChatModelParams) (gollem.LLMClient, error) {
	if l.geminiProject == "" {
		return nil, goerr.Wrap(ErrMissingCredential, "Gemini project is not configured", goerr.V("model", params.ModelName))
	}

	opts := []gemini.Option{
		gemini.WithModel(params.ModelName),
	}
	if params.Temperature != nil {
		opts = append(opts, gemini.WithTemperature(float32(*params.Temperature)))
	}
	if n := maxTokens(params); n != nil {
		opts = append(opts, gemini.WithMaxTokens(int32(*n)))
	}

	client, err := gemini.New(ctx, l.geminiProject, l.geminiLocation, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("model", params.ModelName),
			goerr.V("project", l.geminiProject),
			goerr.V("location", l.geminiLocation),
		)
	}
	return client, nil
}

type endpoint struct {
	model   string
	apiKey  string
	baseURL string
}

// openAIEndpoint maps OpenAI compatible providers onto a model name, key and base URL
func openAIEndpoint(params *model.ChatModelParams) (*endpoint, error) {
	switch params.ModelProvider {
	case types.ProviderOpenAI:
		if params.APIKey == "" {
			return nil, goerr.Wrap(ErrMissingCredential, "OpenAI API key is not configured", goerr.V("model", params.ModelName))
		}
		return &endpoint{model: params.ModelName, apiKey: params.APIKey}, nil

	case types.ProviderFireworks:
		if params.APIKey == "" {
			return nil, goerr.Wrap(ErrMissingCredential, "Fireworks API key is not configured", goerr.V("model", params.ModelName))
		}
		return &endpoint{model: params.ModelName, apiKey: params.APIKey, baseURL: fireworksBaseURL}, nil

	case types.ProviderOllama:
		// Ollama ignores the key but the client requires one
		return &endpoint{
			model:   params.ModelName,
			apiKey:  "ollama",
			baseURL: strings.TrimRight(params.BaseURL, "/") + "/v1",
		}, nil

	case types.ProviderAzureOpenAI:
		if params.Azure == nil || params.Azure.APIKey == "" {
			return nil, goerr.Wrap(ErrMissingCredential, "Azure OpenAI API key is not configured", goerr.V("model", params.ModelName))
		}
		baseURL, err := azureBaseURL(params.Azure)
		if err != nil {
			return nil, err
		}
		name := params.Azure.DeploymentName
		if name == "" {
			name = params.ModelName
		}
		return &endpoint{model: name, apiKey: params.Azure.APIKey, baseURL: baseURL}, nil

	default:
		return nil, goerr.Wrap(ErrUnsupportedProvider, "provider is not OpenAI compatible", goerr.V("provider", params.ModelProvider))
	}
}

// azureBaseURL returns the OpenAI compatible v1 endpoint of an Azure OpenAI resource
func azureBaseURL(cfg *model.AzureConfig) (string, error) {
	if cfg.BasePath != "" {
		return strings.TrimRight(cfg.BasePath, "/"), nil
	}
	if cfg.InstanceName == "" {
		return "", goerr.Wrap(ErrMissingCredential, "Azure OpenAI instance name is not configured")
	}
	return "https://" + cfg.InstanceName + azureHostSuffix + "/openai/v1", nil
}

// maxTokens returns the token limit whichever field carries it
func maxTokens(params *model.ChatModelParams) *int {
	if params.MaxCompletionTokens != nil {
		return params.MaxCompletionTokens
	}
	return params.MaxTokens
}
