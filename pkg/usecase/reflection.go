package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/utils/logging"
)

const (
	noStyleGuidelines = "No style guidelines found."
	noUserFacts       = "No memories/facts found."

	// NoReflectionsFound is returned when the store holds no reflections for an assistant
	NoReflectionsFound = "No reflections found."

	reflectionItemSeparator = "\n- "

	styleGuidelinesTemplate = "The following is a list of style guidelines previously generated by you:\n<style-guidelines>\n- %s\n</style-guidelines>"
	userFactsTemplate       = "The following is a list of memories/facts you previously generated about the user:\n<user-facts>\n- %s\n</user-facts>"
)

type reflectionOptions struct {
	onlyStyle   bool
	onlyContent bool
}

// ReflectionOption selects which reflection blocks are rendered
type ReflectionOption func(*reflectionOptions)

// WithOnlyStyle renders only the style guidelines block
func WithOnlyStyle() ReflectionOption {
	return func(o *reflectionOptions) {
		o.onlyStyle = true
	}
}

// WithOnlyContent renders only the user facts block
func WithOnlyContent() ReflectionOption {
	return func(o *reflectionOptions) {
		o.onlyContent = true
	}
}

// FormatReflections renders reflections into prompt text. Lists that could not be decoded are
// logged and replaced by a placeholder rather than failing.
func FormatReflections(ctx context.Context, reflections *model.Reflections, opts ...ReflectionOption) (string, error) {
	var o reflectionOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.onlyStyle && o.onlyContent {
		return "", goerr.Wrap(ErrInvalidArgument, "cannot specify both onlyStyle and onlyContent")
	}

	if reflections == nil {
		reflections = &model.Reflections{}
	}

	styleRules := joinRuleList(ctx, reflections.StyleRules, noStyleGuidelines, "style rules")
	userFacts := joinRuleList(ctx, reflections.Content, noUserFacts, "content rules")

	styleBlock := fmt.Sprintf(styleGuidelinesTemplate, styleRules)
	contentBlock := fmt.Sprintf(userFactsTemplate, userFacts)

	switch {
	case o.onlyStyle:
		return styleBlock, nil
	case o.onlyContent:
		return contentBlock, nil
	default:
		return styleBlock + "\n\n" + contentBlock, nil
	}
}

func joinRuleList(ctx context.Context, list model.RuleList, placeholder, name string) string {
	if !list.Valid() {
		logging.From(ctx).Error("failed to parse reflection list",
			"list", name,
			"raw", list.Raw(),
		)
		return placeholder
	}
	return strings.Join(list.Items(), reflectionItemSeparator)
}

// ReflectionUseCase reads stored reflections for prompt assembly
type ReflectionUseCase struct {
	repo interfaces.Repository
}

// NewReflectionUseCase creates a new ReflectionUseCase instance
func NewReflectionUseCase(repo interfaces.Repository) *ReflectionUseCase {
	return &ReflectionUseCase{repo: repo}
}

// GetFormattedReflections loads the reflections of cfg.AssistantID and renders them.
// Returns NoReflectionsFound when nothing is stored.
func (uc *ReflectionUseCase) GetFormattedReflections(ctx context.Context, cfg *model.RunConfig, opts ...ReflectionOption) (string, error) {
	if cfg == nil || cfg.AssistantID == "" {
		return "", goerr.Wrap(ErrMissingAssistantID, "assistant_id is required to load reflections")
	}

	item, err := uc.repo.Store().Get(ctx, model.ReflectionNamespace(cfg.AssistantID), model.ReflectionKey)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get reflections", goerr.V(AssistantIDKey, cfg.AssistantID))
	}
	if item == nil || isEmptyJSON(item.Value) {
		return NoReflectionsFound, nil
	}

	var reflections model.Reflections
	if err := json.Unmarshal(item.Value, &reflections); err != nil {
		logging.From(ctx).Error("failed to decode reflections",
			"error", err.Error(),
			AssistantIDKey, cfg.AssistantID,
		)
		reflections = model.Reflections{}
	}

	return FormatReflections(ctx, &reflections, opts...)
}

// PutReflections stores reflections for an assistant
func (uc *ReflectionUseCase) PutReflections(ctx context.Context, assistantID string, reflections *model.Reflections) error {
	if assistantID == "" {
		return goerr.Wrap(ErrMissingAssistantID, "assistant_id is required to store reflections")
	}

	data, err := json.Marshal(reflections)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal reflections", goerr.V(AssistantIDKey, assistantID))
	}

	if _, err := uc.repo.Store().Put(ctx, model.ReflectionNamespace(assistantID), model.ReflectionKey, data); err != nil {
		return goerr.Wrap(err, "failed to put reflections", goerr.V(AssistantIDKey, assistantID))
	}
	return nil
}

func isEmptyJSON(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
