package config

import (
	"log/slog"

	"github.com/secmon-lab/scribe/pkg/service/llm"
	"github.com/urfave/cli/v3"
)

// Gemini holds the Vertex AI project used for Gemini models
type Gemini struct {
	projectID string
	location  string
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("SCRIBE_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("SCRIBE_GEMINI_LOCATION"),
			Destination: &g.location,
		},
	}
}

// LogAttrs returns log attributes for the Gemini configuration
func (g *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
	}
}

// Configure returns loader options for Gemini.
// Returns no options if projectID is not configured (Gemini models cannot be loaded).
func (g *Gemini) Configure() []llm.Option {
	if g.projectID == "" {
		return nil
	}
	return []llm.Option{llm.WithGeminiProject(g.projectID, g.location)}
}
