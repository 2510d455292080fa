package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Policy holds the path of the model policy file
type Policy struct {
	path string
}

// Flags returns CLI flags for model policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "model-policy",
			Usage:       "Path to a TOML file overriding restricted and temperature-excluded models",
			Sources:     cli.EnvVars("SCRIBE_MODEL_POLICY"),
			Destination: &p.path,
		},
	}
}

// LogAttrs returns log attributes for the policy configuration
func (p *Policy) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("path", p.path),
	}
}

// Configure returns the model policy. Built-in defaults apply without a file.
func (p *Policy) Configure() (model.ModelPolicy, error) {
	if p.path == "" {
		return model.DefaultModelPolicy(), nil
	}
	return LoadModelPolicy(p.path)
}

// LoadModelPolicy loads a model policy from a TOML file. Keys missing from the file keep
// their built-in defaults.
func LoadModelPolicy(path string) (model.ModelPolicy, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.ModelPolicy{}, goerr.Wrap(ErrConfigNotFound, "model policy file not found", goerr.V(ConfigPathKey, path))
		}
		return model.ModelPolicy{}, goerr.Wrap(err, "failed to read model policy file", goerr.V(ConfigPathKey, path))
	}

	policy := model.DefaultModelPolicy()
	if err := toml.Unmarshal(data, &policy); err != nil {
		return model.ModelPolicy{}, goerr.Wrap(err, "failed to parse TOML model policy", goerr.V(ConfigPathKey, path))
	}

	if err := validatePolicy(&policy); err != nil {
		return model.ModelPolicy{}, goerr.Wrap(err, "model policy validation failed", goerr.V(ConfigPathKey, path))
	}

	return policy, nil
}

func validatePolicy(policy *model.ModelPolicy) error {
	for i, name := range policy.RestrictedModels {
		if strings.TrimSpace(name) == "" {
			return goerr.Wrap(ErrInvalidConfig, "restricted model name is empty", goerr.V(ModelIndexKey, i))
		}
	}
	for i, name := range policy.TemperatureExcludedModels {
		if strings.TrimSpace(name) == "" {
			return goerr.Wrap(ErrInvalidConfig, "temperature excluded model name is empty", goerr.V(ModelIndexKey, i))
		}
	}
	if len(policy.RestrictedModels) > 0 && policy.PrivilegedEmailSuffix == "" {
		return goerr.Wrap(ErrInvalidConfig, "privileged_email_suffix is required when restricted_models is set")
	}
	return nil
}
