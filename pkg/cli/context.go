package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/usecase"
	"github.com/secmon-lab/scribe/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type contextOutput struct {
	Reflections *string                `json:"reflections,omitempty"`
	Messages    []model.ContextMessage `json:"messages"`
}

func cmdContext() *cli.Command {
	var configPath string
	var only string
	var appCfg appConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a run configuration JSON file",
			Required:    true,
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "only",
			Usage:       "Render only one reflection block (style or content)",
			Destination: &only,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:  "context",
		Usage: "Print the reflections and document messages assembled for a run configuration",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadRunConfig(configPath)
			if err != nil {
				return err
			}

			var opts []usecase.ReflectionOption
			switch only {
			case "":
			case "style":
				opts = append(opts, usecase.WithOnlyStyle())
			case "content":
				opts = append(opts, usecase.WithOnlyContent())
			default:
				return goerr.Wrap(usecase.ErrInvalidArgument, "only must be style or content", goerr.V("only", only))
			}

			uc, closer, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closer()

			var out contextOutput
			if cfg.AssistantID != "" {
				reflections, err := uc.Reflection.GetFormattedReflections(ctx, cfg, opts...)
				if err != nil {
					return err
				}
				out.Reflections = &reflections
			}

			out.Messages, err = uc.Documents.Build(ctx, cfg)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal context")
			}
			safe.Write(ctx, c.Root().Writer, append(data, '\n'))
			return nil
		},
	}
}

func loadRunConfig(path string) (*model.RunConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read run config", goerr.V("path", path))
	}

	var cfg model.RunConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse run config", goerr.V("path", path))
	}
	return &cfg, nil
}
