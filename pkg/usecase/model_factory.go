package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/utils/logging"
)

// DefaultTemperature applies when neither the caller nor the model config sets one
const DefaultTemperature = 0.5

// ModelExtra overrides generation settings for a single model construction
type ModelExtra struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	MaxTokens     *int     `json:"maxTokens,omitempty"`
	IsToolCalling bool     `json:"isToolCalling,omitempty"`
}

// ModelFactory builds chat model clients from run configurations
type ModelFactory struct {
	resolver *ModelConfigResolver
	policy   model.ModelPolicy
	loader   interfaces.ChatModelLoader
	verifier interfaces.SessionVerifier
}

// ModelFactoryOption is a functional option for ModelFactory
type ModelFactoryOption func(*ModelFactory)

// WithModelSessionVerifier sets the verifier used to authorize restricted models
func WithModelSessionVerifier(verifier interfaces.SessionVerifier) ModelFactoryOption {
	return func(f *ModelFactory) {
		f.verifier = verifier
	}
}

// NewModelFactory creates a new ModelFactory instance
func NewModelFactory(resolver *ModelConfigResolver, policy model.ModelPolicy, loader interfaces.ChatModelLoader, opts ...ModelFactoryOption) *ModelFactory {
	f := &ModelFactory{
		resolver: resolver,
		policy:   policy,
		loader:   loader,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BuildParams resolves cfg and produces the parameter bundle for the model loader.
// Restricted models are authorized against the session carried in cfg.
func (f *ModelFactory) BuildParams(ctx context.Context, cfg *model.RunConfig, extra *ModelExtra) (*model.ChatModelParams, error) {
	if extra == nil {
		extra = &ModelExtra{}
	}

	var resolveOpts []ResolveOption
	if extra.IsToolCalling {
		resolveOpts = append(resolveOpts, WithToolCalling())
	}

	resolved, err := f.resolver.Resolve(cfg, resolveOpts...)
	if err != nil {
		return nil, err
	}

	temperature, maxTokens := generationSettings(resolved.ModelConfig, extra)

	if f.policy.IsRestricted(resolved.ModelName) {
		if err := f.authorize(ctx, cfg, resolved.ModelName); err != nil {
			return nil, err
		}
	}

	params := &model.ChatModelParams{
		ModelName:     resolved.ModelName,
		ModelProvider: resolved.ModelProvider,
		BaseURL:       resolved.BaseURL,
		APIKey:        resolved.APIKey,
		Azure:         resolved.AzureConfig,
	}

	if f.policy.ExcludesTemperature(resolved.ModelName) {
		params.MaxCompletionTokens = maxTokens
		params.Streaming = false
	} else {
		params.Temperature = &temperature
		params.MaxTokens = maxTokens
		params.Streaming = true
	}

	logging.From(ctx).Debug("built chat model params", "params", params.Redacted())
	return params, nil
}

// New builds the chat model client for cfg
func (f *ModelFactory) New(ctx context.Context, cfg *model.RunConfig, extra *ModelExtra) (gollem.LLMClient, error) {
	params, err := f.BuildParams(ctx, cfg, extra)
	if err != nil {
		return nil, err
	}

	if f.loader == nil {
		return nil, goerr.New("chat model loader is not configured")
	}

	client, err := f.loader.Load(ctx, params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load chat model",
			goerr.V(ModelNameKey, params.ModelName),
			goerr.V(ProviderKey, params.ModelProvider),
		)
	}
	return client, nil
}

// generationSettings picks temperature and max tokens. Caller overrides win over the model
// config, and temperature falls back to DefaultTemperature.
func generationSettings(cfg *model.CustomModelConfig, extra *ModelExtra) (float64, *int) {
	temperature := DefaultTemperature
	var maxTokens *int

	if cfg != nil {
		if cfg.TemperatureRange.Current != nil {
			temperature = *cfg.TemperatureRange.Current
		}
		if cfg.MaxTokens.Current != nil {
			v := *cfg.MaxTokens.Current
			maxTokens = &v
		}
	}

	if extra.Temperature != nil {
		temperature = *extra.Temperature
	}
	if extra.MaxTokens != nil {
		v := *extra.MaxTokens
		maxTokens = &v
	}

	return temperature, maxTokens
}

func (f *ModelFactory) authorize(ctx context.Context, cfg *model.RunConfig, modelName string) error {
	user := f.lookupUser(ctx, cfg)
	if user == nil {
		return goerr.Wrap(ErrUnauthorized, "restricted model requires an authenticated user",
			goerr.V(ModelNameKey, modelName),
		)
	}

	if !strings.HasSuffix(user.Email, f.policy.PrivilegedEmailSuffix) {
		return goerr.Wrap(ErrUnauthorized, "restricted model requires a privileged email domain",
			goerr.V(ModelNameKey, modelName),
			goerr.V(EmailKey, user.Email),
		)
	}

	return nil
}

// lookupUser returns nil when no verifier, session or user is available. Verifier failures
// are logged and treated as an absent user.
func (f *ModelFactory) lookupUser(ctx context.Context, cfg *model.RunConfig) *model.User {
	if f.verifier == nil || cfg.SupabaseSession == nil || cfg.SupabaseSession.AccessToken == "" {
		return nil
	}

	user, err := f.verifier.GetUser(ctx, cfg.SupabaseSession.AccessToken)
	if err != nil {
		logging.From(ctx).Warn("failed to verify session", "error", err.Error())
		return nil
	}
	return user
}
