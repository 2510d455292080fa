package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/cli/config"
)

func TestGemini_Configure(t *testing.T) {
	t.Run("returns no options when project ID is empty", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "us-central1")
		gt.A(t, cfg.Configure()).Length(0)
	})

	t.Run("returns project option", func(t *testing.T) {
		cfg := config.NewGeminiForTest("my-project", "us-central1")
		gt.A(t, cfg.Configure()).Length(1)
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "")
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(2)
	})
}
