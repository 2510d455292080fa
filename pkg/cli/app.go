package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/cli/config"
	"github.com/secmon-lab/scribe/pkg/service/llm"
	"github.com/secmon-lab/scribe/pkg/service/pdf"
	"github.com/secmon-lab/scribe/pkg/usecase"
	"github.com/secmon-lab/scribe/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// appConfig bundles the configuration shared by every command that builds use cases
type appConfig struct {
	providers  config.Providers
	policy     config.Policy
	repository config.Repository
	supabase   config.Supabase
	gemini     config.Gemini
}

func (a *appConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, a.providers.Flags()...)
	flags = append(flags, a.policy.Flags()...)
	flags = append(flags, a.repository.Flags()...)
	flags = append(flags, a.supabase.Flags()...)
	flags = append(flags, a.gemini.Flags()...)
	return flags
}

// Configure builds the use cases. The returned function closes the repository.
func (a *appConfig) Configure(ctx context.Context) (*usecase.UseCases, func(), error) {
	policy, err := a.policy.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load model policy")
	}

	verifier, err := a.supabase.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to configure session verifier")
	}
	if verifier == nil {
		logging.Default().Warn("Supabase is not configured, restricted models will be rejected")
	}

	repo, err := a.repository.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}
	closer := func() {
		if err := repo.Close(); err != nil {
			logging.Default().Error("failed to close repository", "error", err.Error())
		}
	}

	logging.Default().Info("Configured scribe",
		slog.Group("providers", attrsToAny(a.providers.LogAttrs())...),
		slog.Group("policy", attrsToAny(a.policy.LogAttrs())...),
		slog.Group("repository", attrsToAny(a.repository.LogAttrs())...),
		slog.Group("supabase", attrsToAny(a.supabase.LogAttrs())...),
		slog.Group("gemini", attrsToAny(a.gemini.LogAttrs())...),
	)

	uc := usecase.New(repo,
		usecase.WithCredentials(a.providers.Configure()),
		usecase.WithModelPolicy(policy),
		usecase.WithChatModelLoader(llm.New(a.gemini.Configure()...)),
		usecase.WithSessionVerifier(verifier),
		usecase.WithTextExtractor(pdf.New()),
	)

	return uc, closer, nil
}
