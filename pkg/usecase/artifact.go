package usecase

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/model"
)

const (
	// shortenedContentLength is the number of characters kept when content is shortened
	shortenedContentLength = 500

	artifactPlaceholder = "{artifact}"
)

// FormatArtifactContent renders an artifact revision for a prompt. A nil revision renders as
// an empty string.
func FormatArtifactContent(content *model.ArtifactContent, shorten bool) string {
	if content == nil {
		return ""
	}

	var body string
	if model.IsCodeContent(content) {
		body = content.Code
	} else {
		body = content.FullMarkdown
	}

	if shorten {
		body = truncateRunes(body, shortenedContentLength)
	}

	return fmt.Sprintf("Title: %s\nArtifact type: %s\nContent: %s", content.Title, content.Type, body)
}

// FormatArtifactContentWithTemplate substitutes the first {artifact} placeholder in tmpl
func FormatArtifactContentWithTemplate(tmpl string, content *model.ArtifactContent, shorten bool) string {
	return strings.Replace(tmpl, artifactPlaceholder, FormatArtifactContent(content, shorten), 1)
}

// GetArtifactContent returns the revision at the artifact's current index, or the latest
// revision when the index does not match any.
func GetArtifactContent(artifact *model.Artifact) (*model.ArtifactContent, error) {
	if artifact == nil || len(artifact.Contents) == 0 {
		return nil, goerr.Wrap(ErrArtifactNotFound, "artifact has no contents")
	}

	for i := range artifact.Contents {
		if artifact.Contents[i].Index == artifact.CurrentIndex {
			return &artifact.Contents[i], nil
		}
	}
	return &artifact.Contents[len(artifact.Contents)-1], nil
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
