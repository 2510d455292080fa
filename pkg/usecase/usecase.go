package usecase

import (
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/domain/model"
)

type UseCases struct {
	repo      interfaces.Repository
	creds     model.Credentials
	policy    model.ModelPolicy
	loader    interfaces.ChatModelLoader
	verifier  interfaces.SessionVerifier
	extractor interfaces.TextExtractor

	Resolver   *ModelConfigResolver
	Models     *ModelFactory
	Documents  *DocumentContextBuilder
	Reflection *ReflectionUseCase
}

type Option func(*UseCases)

func WithCredentials(creds model.Credentials) Option {
	return func(uc *UseCases) {
		uc.creds = creds
	}
}

func WithModelPolicy(policy model.ModelPolicy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

func WithChatModelLoader(loader interfaces.ChatModelLoader) Option {
	return func(uc *UseCases) {
		uc.loader = loader
	}
}

func WithSessionVerifier(verifier interfaces.SessionVerifier) Option {
	return func(uc *UseCases) {
		uc.verifier = verifier
	}
}

func WithTextExtractor(extractor interfaces.TextExtractor) Option {
	return func(uc *UseCases) {
		uc.extractor = extractor
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		policy: model.DefaultModelPolicy(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Resolver = NewModelConfigResolver(uc.creds)
	uc.Models = NewModelFactory(uc.Resolver, uc.policy, uc.loader, WithModelSessionVerifier(uc.verifier))
	uc.Documents = NewDocumentContextBuilder(uc.Resolver, uc.extractor)
	uc.Reflection = NewReflectionUseCase(repo)

	return uc
}
