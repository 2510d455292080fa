package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdReflection() *cli.Command {
	return &cli.Command{
		Name:  "reflection",
		Usage: "Manage stored reflections",
		Commands: []*cli.Command{
			cmdReflectionPut(),
			cmdReflectionGet(),
		},
	}
}

func cmdReflectionPut() *cli.Command {
	var assistantID string
	var filePath string
	var appCfg appConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "assistant-id",
			Aliases:     []string{"a"},
			Usage:       "Assistant ID owning the reflections",
			Required:    true,
			Destination: &assistantID,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Path to a reflections JSON file ({\"styleRules\": [...], \"content\": [...]})",
			Required:    true,
			Destination: &filePath,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:  "put",
		Usage: "Store reflections for an assistant",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// #nosec G304 - path is expected to be provided by CLI argument
			data, err := os.ReadFile(filePath)
			if err != nil {
				return goerr.Wrap(err, "failed to read reflections file", goerr.V("path", filePath))
			}

			var reflections model.Reflections
			if err := json.Unmarshal(data, &reflections); err != nil {
				return goerr.Wrap(err, "failed to parse reflections file", goerr.V("path", filePath))
			}
			if !reflections.StyleRules.Valid() || !reflections.Content.Valid() {
				return goerr.New("reflections file must contain styleRules and content lists", goerr.V("path", filePath))
			}

			uc, closer, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if err := uc.Reflection.PutReflections(ctx, assistantID, &reflections); err != nil {
				return err
			}

			logging.Default().Info("Stored reflections",
				"assistant_id", assistantID,
				"style_rules", len(reflections.StyleRules.Items()),
				"content", len(reflections.Content.Items()),
			)
			return nil
		},
	}
}

func cmdReflectionGet() *cli.Command {
	var assistantID string
	var appCfg appConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "assistant-id",
			Aliases:     []string{"a"},
			Usage:       "Assistant ID owning the reflections",
			Required:    true,
			Destination: &assistantID,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:  "get",
		Usage: "Print the formatted reflections of an assistant",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := appCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closer()

			out, err := uc.Reflection.GetFormattedReflections(ctx, &model.RunConfig{AssistantID: assistantID})
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, out)
			return nil
		},
	}
}
