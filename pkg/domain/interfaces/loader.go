package interfaces

import (
	"context"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/scribe/pkg/domain/model"
)

// ChatModelLoader constructs a chat model client from resolved parameters
type ChatModelLoader interface {
	Load(ctx context.Context, params *model.ChatModelParams) (gollem.LLMClient, error)
}
