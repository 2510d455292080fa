package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/service/pdf"
)

// buildPDF assembles a single page PDF showing text with a standard font
func buildPDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func TestExtractor_ExtractText(t *testing.T) {
	extractor := pdf.New()

	text, err := extractor.ExtractText(context.Background(), buildPDF("Hello Scribe"))
	gt.NoError(t, err).Required()
	gt.String(t, text).Contains("Hello Scribe")
}

func TestExtractor_InvalidInput(t *testing.T) {
	extractor := pdf.New()

	t.Run("empty data", func(t *testing.T) {
		_, err := extractor.ExtractText(context.Background(), nil)
		gt.Error(t, err)
	})

	t.Run("not a pdf", func(t *testing.T) {
		_, err := extractor.ExtractText(context.Background(), []byte("this is plain text, not a PDF"))
		gt.Error(t, err)
	})
}

func TestExtractor_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.New().ExtractText(ctx, buildPDF("Hello"))
	gt.Error(t, err)
}
