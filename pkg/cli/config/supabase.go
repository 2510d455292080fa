package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/service/supabase"
	"github.com/urfave/cli/v3"
)

// Supabase holds CLI flags for session verification against Supabase Auth
type Supabase struct {
	url        string
	anonKey    string
	verifyJWKS bool
}

// Flags returns CLI flags for Supabase configuration
func (s *Supabase) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "supabase-url",
			Usage:       "Supabase project URL",
			Category:    "Authentication",
			Sources:     cli.EnvVars("NEXT_PUBLIC_SUPABASE_URL"),
			Destination: &s.url,
		},
		&cli.StringFlag{
			Name:        "supabase-anon-key",
			Usage:       "Supabase anonymous API key",
			Category:    "Authentication",
			Sources:     cli.EnvVars("NEXT_PUBLIC_SUPABASE_ANON_KEY"),
			Destination: &s.anonKey,
		},
		&cli.BoolFlag{
			Name:        "supabase-jwks",
			Usage:       "Verify access token signatures with the project JWKS before looking up the user",
			Category:    "Authentication",
			Sources:     cli.EnvVars("SCRIBE_SUPABASE_JWKS"),
			Destination: &s.verifyJWKS,
		},
	}
}

// IsConfigured returns true if both the Supabase URL and anon key are set
func (s *Supabase) IsConfigured() bool {
	return s.url != "" && s.anonKey != ""
}

// LogAttrs returns log attributes for the Supabase configuration
func (s *Supabase) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("url", s.url),
		slog.Bool("jwks", s.verifyJWKS),
	}
}

// Configure creates the session verifier.
// Returns nil if Supabase is not configured (restricted models will be rejected).
func (s *Supabase) Configure() (interfaces.SessionVerifier, error) {
	if !s.IsConfigured() {
		return nil, nil
	}

	var opts []supabase.Option
	if s.verifyJWKS {
		opts = append(opts, supabase.WithJWKSVerification())
	}

	client, err := supabase.New(s.url, s.anonKey, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Supabase client")
	}
	return client, nil
}
