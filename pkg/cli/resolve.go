package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/secmon-lab/scribe/pkg/cli/config"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdResolve() *cli.Command {
	var modelName string
	var toolCalling bool
	var providers config.Providers

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "model",
			Aliases:     []string{"m"},
			Usage:       "Model name to resolve (e.g. gpt-4o, azure/gpt-4, ollama-llama3.3)",
			Required:    true,
			Destination: &modelName,
		},
		&cli.BoolFlag{
			Name:        "tool-calling",
			Usage:       "Resolve a model that supports tool calling",
			Destination: &toolCalling,
		},
	}
	flags = append(flags, providers.Flags()...)

	return &cli.Command{
		Name:    "resolve",
		Aliases: []string{"r"},
		Usage:   "Show the provider and credentials a model name resolves to",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			resolver := usecase.NewModelConfigResolver(providers.Configure())

			var opts []usecase.ResolveOption
			if toolCalling {
				opts = append(opts, usecase.WithToolCalling())
			}

			resolved, err := resolver.Resolve(&model.RunConfig{CustomModelName: modelName}, opts...)
			if err != nil {
				return err
			}

			printResolved(c.Root().Writer, resolved.Redacted())
			return nil
		},
	}
}

func printResolved(w io.Writer, resolved *model.ResolvedModelConfig) {
	label := color.New(color.FgCyan).SprintFunc()
	value := color.New(color.Bold).SprintFunc()
	missing := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", label("provider:"), value(resolved.ModelProvider))
	fmt.Fprintf(w, "%s %s\n", label("model:   "), value(resolved.ModelName))

	switch {
	case resolved.AzureConfig != nil:
		fmt.Fprintf(w, "%s %s\n", label("instance:"), resolved.AzureConfig.InstanceName)
		fmt.Fprintf(w, "%s %s\n", label("deploy:  "), resolved.AzureConfig.DeploymentName)
		fmt.Fprintf(w, "%s %s\n", label("version: "), resolved.AzureConfig.APIVersion)
		printCredential(w, label("api key: "), resolved.AzureConfig.APIKey, missing)
	case resolved.BaseURL != "":
		fmt.Fprintf(w, "%s %s\n", label("base url:"), resolved.BaseURL)
	default:
		printCredential(w, label("api key: "), resolved.APIKey, missing)
	}
}

func printCredential(w io.Writer, label, apiKey string, missing func(a ...any) string) {
	if apiKey == "" {
		fmt.Fprintf(w, "%s %s\n", label, missing("not configured"))
		return
	}
	fmt.Fprintf(w, "%s %s\n", label, apiKey)
}
