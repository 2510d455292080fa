package interfaces

import "context"

// TextExtractor converts a binary document into plain text
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}
