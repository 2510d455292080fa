package usecase

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// contextDocumentsInstruction leads every context document message
const contextDocumentsInstruction = "Use the file(s) and/or text below as context when generating your response."

// anthropicNativePDFModel marks Anthropic models that accept PDF documents directly
const anthropicNativePDFModel = "3-5-sonnet"

// DocumentContextBuilder converts uploaded documents into a provider-shaped context message
type DocumentContextBuilder struct {
	resolver  *ModelConfigResolver
	extractor interfaces.TextExtractor
}

// NewDocumentContextBuilder creates a new DocumentContextBuilder instance
func NewDocumentContextBuilder(resolver *ModelConfigResolver, extractor interfaces.TextExtractor) *DocumentContextBuilder {
	return &DocumentContextBuilder{
		resolver:  resolver,
		extractor: extractor,
	}
}

// Build returns zero or one user message carrying cfg.Documents for the resolved provider.
// No message is produced without documents or for providers without a converter.
func (b *DocumentContextBuilder) Build(ctx context.Context, cfg *model.RunConfig) ([]model.ContextMessage, error) {
	if cfg == nil || len(cfg.Documents) == 0 {
		return []model.ContextMessage{}, nil
	}

	resolved, err := b.resolver.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	var parts []model.ContentPart
	switch resolved.ModelProvider {
	case types.ProviderOpenAI:
		parts, err = b.OpenAI(ctx, cfg.Documents)
	case types.ProviderAnthropic:
		nativeSupport := strings.Contains(resolved.ModelName, anthropicNativePDFModel)
		parts, err = b.Anthropic(ctx, cfg.Documents, nativeSupport)
	case types.ProviderGoogleGenAI:
		parts, err = b.Gemini(cfg.Documents)
	default:
		return []model.ContextMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return []model.ContextMessage{}, nil
	}

	content := make([]model.ContentPart, 0, len(parts)+1)
	content = append(content, model.TextPart(contextDocumentsInstruction))
	content = append(content, parts...)

	return []model.ContextMessage{
		{Role: model.RoleUser, Content: content},
	}, nil
}

// OpenAI converts every document into a text fragment. Unsupported types yield empty text.
func (b *DocumentContextBuilder) OpenAI(ctx context.Context, docs []model.ContextDocument) ([]model.ContentPart, error) {
	return convertDocuments(ctx, docs, func(ctx context.Context, doc *model.ContextDocument) (model.ContentPart, error) {
		text, err := b.documentText(ctx, doc)
		if err != nil {
			return model.ContentPart{}, err
		}
		return model.TextPart(text), nil
	})
}

// Anthropic converts documents into text fragments, passing PDFs through as native
// documents when nativeSupport is set.
func (b *DocumentContextBuilder) Anthropic(ctx context.Context, docs []model.ContextDocument, nativeSupport bool) ([]model.ContentPart, error) {
	return convertDocuments(ctx, docs, func(ctx context.Context, doc *model.ContextDocument) (model.ContentPart, error) {
		if nativeSupport && doc.IsPDF() {
			return model.DocumentPart(doc.Type, doc.Data), nil
		}
		text, err := b.documentText(ctx, doc)
		if err != nil {
			return model.ContentPart{}, err
		}
		return model.TextPart(text), nil
	})
}

// Gemini passes PDFs through as inline data and decodes text documents.
// Any other document type fails the whole conversion.
func (b *DocumentContextBuilder) Gemini(docs []model.ContextDocument) ([]model.ContentPart, error) {
	parts := make([]model.ContentPart, len(docs))
	for i := range docs {
		doc := &docs[i]
		switch {
		case doc.IsPDF():
			parts[i] = model.InlineDataPart(doc.Type, doc.Data)
		case doc.IsText():
			text, err := decodeBase64Text(doc.Data)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to decode text document",
					goerr.V(DocumentIdxKey, i),
					goerr.V(DocumentTypeKey, doc.Type),
				)
			}
			parts[i] = model.TextPart(text)
		default:
			return nil, goerr.Wrap(ErrUnsupportedDocumentType, "document type is not supported by gemini",
				goerr.V(DocumentIdxKey, i),
				goerr.V(DocumentTypeKey, doc.Type),
			)
		}
	}
	return parts, nil
}

// documentText extracts PDF text, decodes text/* documents and returns empty text otherwise
func (b *DocumentContextBuilder) documentText(ctx context.Context, doc *model.ContextDocument) (string, error) {
	switch {
	case doc.IsPDF():
		return b.extractPDF(ctx, doc)
	case doc.IsText():
		text, err := decodeBase64Text(doc.Data)
		if err != nil {
			return "", goerr.Wrap(err, "failed to decode text document", goerr.V(DocumentTypeKey, doc.Type))
		}
		return text, nil
	default:
		return "", nil
	}
}

func (b *DocumentContextBuilder) extractPDF(ctx context.Context, doc *model.ContextDocument) (string, error) {
	if b.extractor == nil {
		return "", goerr.New("text extractor is not configured", goerr.V(DocumentTypeKey, doc.Type))
	}

	data, err := decodeBase64(doc.Data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to decode PDF document", goerr.V(DocumentTypeKey, doc.Type))
	}

	text, err := b.extractor.ExtractText(ctx, data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to extract text from PDF", goerr.V(DocumentTypeKey, doc.Type))
	}
	return text, nil
}

// convertDocuments runs convert for every document concurrently. Output keeps input order;
// the first failure cancels the remaining conversions.
func convertDocuments(ctx context.Context, docs []model.ContextDocument, convert func(ctx context.Context, doc *model.ContextDocument) (model.ContentPart, error)) ([]model.ContentPart, error) {
	parts := make([]model.ContentPart, len(docs))

	eg, ctx := errgroup.WithContext(ctx)
	for i := range docs {
		eg.Go(func() error {
			part, err := convert(ctx, &docs[i])
			if err != nil {
				return goerr.Wrap(err, "failed to convert document", goerr.V(DocumentIdxKey, i))
			}
			parts[i] = part
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

func decodeBase64(data string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			return -1
		}
		return r
	}, data)

	if len(cleaned)%4 == 0 {
		return base64.StdEncoding.DecodeString(cleaned)
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(cleaned, "="))
}

func decodeBase64Text(data string) (string, error) {
	decoded, err := decodeBase64(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
