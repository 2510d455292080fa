package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/cli/config"
)

func TestSupabase_Configure(t *testing.T) {
	t.Run("returns nil verifier when URL is empty", func(t *testing.T) {
		cfg := config.NewSupabaseForTest("", "anon", false)
		gt.Bool(t, cfg.IsConfigured()).False()

		verifier, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Value(t, verifier).Nil()
	})

	t.Run("returns nil verifier when anon key is empty", func(t *testing.T) {
		cfg := config.NewSupabaseForTest("https://example.supabase.co", "", false)
		verifier, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Value(t, verifier).Nil()
	})

	t.Run("returns verifier when configured", func(t *testing.T) {
		cfg := config.NewSupabaseForTest("https://example.supabase.co", "anon", true)
		gt.Bool(t, cfg.IsConfigured()).True()

		verifier, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, verifier).NotNil()
	})
}
