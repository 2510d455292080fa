package model

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ContextDocument is a user-supplied file attached to a request. Data is base64 encoded.
type ContextDocument struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// IsPDF reports whether the document MIME type denotes a PDF
func (d *ContextDocument) IsPDF() bool {
	return strings.Contains(d.Type, "pdf")
}

// IsText reports whether the document MIME type is a text/* type
func (d *ContextDocument) IsText() bool {
	return strings.HasPrefix(d.Type, "text/")
}

// ContentPartKind selects the wire shape of a ContentPart
type ContentPartKind int

const (
	ContentPartText ContentPartKind = iota
	ContentPartDocument
	ContentPartInlineData
)

// ContentPart is one provider-shaped fragment of a chat message
type ContentPart struct {
	Kind      ContentPartKind
	Text      string
	MediaType string
	Data      string
}

// TextPart creates a plain text fragment
func TextPart(text string) ContentPart {
	return ContentPart{Kind: ContentPartText, Text: text}
}

// DocumentPart creates an Anthropic native document fragment carrying base64 data
func DocumentPart(mediaType, data string) ContentPart {
	return ContentPart{Kind: ContentPartDocument, MediaType: mediaType, Data: data}
}

// InlineDataPart creates a Gemini inline data fragment carrying base64 data
func InlineDataPart(mimeType, data string) ContentPart {
	return ContentPart{Kind: ContentPartInlineData, MediaType: mimeType, Data: data}
}

type textPartJSON struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type documentSourceJSON struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type documentPartJSON struct {
	Type   string             `json:"type"`
	Source documentSourceJSON `json:"source"`
}

type inlineDataPartJSON struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// MarshalJSON implements json.Marshaler
func (p ContentPart) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case ContentPartText:
		return json.Marshal(textPartJSON{Type: "text", Text: p.Text})
	case ContentPartDocument:
		return json.Marshal(documentPartJSON{
			Type: "document",
			Source: documentSourceJSON{
				Type:      "base64",
				MediaType: p.MediaType,
				Data:      p.Data,
			},
		})
	case ContentPartInlineData:
		return json.Marshal(inlineDataPartJSON{MimeType: p.MediaType, Data: p.Data})
	default:
		return nil, goerr.New("unknown content part kind", goerr.V("kind", int(p.Kind)))
	}
}

// RoleUser is the chat role of caller-provided messages
const RoleUser = "user"

// ContextMessage is a chat message carrying context for the model
type ContextMessage struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}
