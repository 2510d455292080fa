package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// Configuration errors
	ErrMissingConfig      = goerr.New("model name is missing in config")
	ErrUnknownProvider    = goerr.New("unknown model provider")
	ErrMissingAssistantID = goerr.New("assistant_id not found in configurable")

	// Access control errors
	ErrUnauthorized = goerr.New("unauthorized to use restricted model")

	// Input errors
	ErrInvalidArgument         = goerr.New("invalid argument")
	ErrUnsupportedDocumentType = goerr.New("unsupported document type")
	ErrArtifactNotFound        = goerr.New("no artifact found")
)

// Context keys for error values
const (
	ModelNameKey    = "model_name"
	ProviderKey     = "provider"
	AssistantIDKey  = "assistant_id"
	DocumentTypeKey = "document_type"
	DocumentIdxKey  = "document_index"
	EmailKey        = "email"
)
