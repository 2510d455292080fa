package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
)

// Extractor reads the plain text of PDF documents
type Extractor struct{}

var _ interfaces.TextExtractor = &Extractor{}

// New creates a new Extractor instance
func New() *Extractor {
	return &Extractor{}
}

// ExtractText returns the text of every page, pages separated by a newline
func (x *Extractor) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", goerr.New("PDF data is empty")
	}

	// The parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New("failed to parse PDF", goerr.V("panic", fmt.Sprint(r)))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to open PDF", goerr.V("size", len(data)))
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", goerr.Wrap(err, "PDF extraction canceled", goerr.V("page", i))
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", goerr.Wrap(err, "failed to extract page text", goerr.V("page", i))
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}
