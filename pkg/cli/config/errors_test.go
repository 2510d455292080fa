package config_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/cli/config"
)

func TestConfigErrors_SentinelIdentification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		sentinelError error
		wantMatch     bool
	}{
		{
			name:          "ErrConfigNotFound can be identified",
			err:           goerr.Wrap(config.ErrConfigNotFound, "failed to load config"),
			sentinelError: config.ErrConfigNotFound,
			wantMatch:     true,
		},
		{
			name:          "ErrInvalidConfig can be identified",
			err:           goerr.Wrap(config.ErrInvalidConfig, "validation failed"),
			sentinelError: config.ErrInvalidConfig,
			wantMatch:     true,
		},
		{
			name:          "Different sentinel errors do not match",
			err:           goerr.Wrap(config.ErrConfigNotFound, "failed to load config"),
			sentinelError: config.ErrInvalidConfig,
			wantMatch:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, errors.Is(tt.err, tt.sentinelError)).Equal(tt.wantMatch)
		})
	}
}

func TestConfigErrors_ContextValues(t *testing.T) {
	err := goerr.Wrap(config.ErrInvalidConfig, "invalid policy",
		goerr.V(config.ConfigPathKey, "/path/to/policy.toml"),
		goerr.V(config.ModelIndexKey, 2),
	)

	var ge *goerr.Error
	gt.Bool(t, errors.As(err, &ge)).True()
	values := ge.Values()
	gt.Value(t, values[config.ConfigPathKey]).Equal(any("/path/to/policy.toml"))
	gt.Value(t, values[config.ModelIndexKey]).Equal(any(2))
}
