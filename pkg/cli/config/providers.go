package config

import (
	"log/slog"

	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Providers holds model provider credentials and endpoints
type Providers struct {
	openAIAPIKey    string
	anthropicAPIKey string
	fireworksAPIKey string
	googleAPIKey    string
	azure           model.AzureConfig
	ollamaAPIURL    string
}

// Flags returns CLI flags for provider credentials
func (p *Providers) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Category:    "Providers",
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
			Destination: &p.openAIAPIKey,
		},
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key",
			Category:    "Providers",
			Sources:     cli.EnvVars("ANTHROPIC_API_KEY"),
			Destination: &p.anthropicAPIKey,
		},
		&cli.StringFlag{
			Name:        "fireworks-api-key",
			Usage:       "Fireworks AI API key",
			Category:    "Providers",
			Sources:     cli.EnvVars("FIREWORKS_API_KEY"),
			Destination: &p.fireworksAPIKey,
		},
		&cli.StringFlag{
			Name:        "google-api-key",
			Usage:       "Google Generative AI API key",
			Category:    "Providers",
			Sources:     cli.EnvVars("GOOGLE_API_KEY"),
			Destination: &p.googleAPIKey,
		},
		&cli.StringFlag{
			Name:        "azure-openai-api-key",
			Usage:       "Azure OpenAI API key",
			Category:    "Azure OpenAI",
			Sources:     cli.EnvVars("_AZURE_OPENAI_API_KEY"),
			Destination: &p.azure.APIKey,
		},
		&cli.StringFlag{
			Name:        "azure-openai-instance-name",
			Usage:       "Azure OpenAI resource instance name",
			Category:    "Azure OpenAI",
			Sources:     cli.EnvVars("_AZURE_OPENAI_API_INSTANCE_NAME"),
			Destination: &p.azure.InstanceName,
		},
		&cli.StringFlag{
			Name:        "azure-openai-deployment-name",
			Usage:       "Azure OpenAI deployment name",
			Category:    "Azure OpenAI",
			Sources:     cli.EnvVars("_AZURE_OPENAI_API_DEPLOYMENT_NAME"),
			Destination: &p.azure.DeploymentName,
		},
		&cli.StringFlag{
			Name:        "azure-openai-api-version",
			Usage:       "Azure OpenAI API version",
			Category:    "Azure OpenAI",
			Value:       model.DefaultAzureAPIVersion,
			Sources:     cli.EnvVars("_AZURE_OPENAI_API_VERSION"),
			Destination: &p.azure.APIVersion,
		},
		&cli.StringFlag{
			Name:        "azure-openai-base-path",
			Usage:       "Azure OpenAI base path (overrides the instance name endpoint)",
			Category:    "Azure OpenAI",
			Sources:     cli.EnvVars("_AZURE_OPENAI_API_BASE_PATH"),
			Destination: &p.azure.BasePath,
		},
		&cli.StringFlag{
			Name:        "ollama-api-url",
			Usage:       "Ollama API URL",
			Category:    "Providers",
			Value:       model.DefaultOllamaAPIURL,
			Sources:     cli.EnvVars("OLLAMA_API_URL"),
			Destination: &p.ollamaAPIURL,
		},
	}
}

// LogAttrs reports which providers are configured without exposing credentials
func (p *Providers) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("openai", p.openAIAPIKey != ""),
		slog.Bool("anthropic", p.anthropicAPIKey != ""),
		slog.Bool("fireworks", p.fireworksAPIKey != ""),
		slog.Bool("google_genai", p.googleAPIKey != ""),
		slog.Bool("azure_openai", p.azure.APIKey != ""),
		slog.String("ollama_api_url", p.ollamaAPIURL),
	}
}

// Configure returns the credentials for the model resolver
func (p *Providers) Configure() model.Credentials {
	return model.Credentials{
		OpenAIAPIKey:    p.openAIAPIKey,
		AnthropicAPIKey: p.anthropicAPIKey,
		FireworksAPIKey: p.fireworksAPIKey,
		GoogleAPIKey:    p.googleAPIKey,
		Azure:           p.azure,
		OllamaAPIURL:    p.ollamaAPIURL,
	}
}
