package model

// ArtifactTypeCode marks the code variant of ArtifactContent
const ArtifactTypeCode = "code"

// ArtifactTypeText marks the markdown variant of ArtifactContent
const ArtifactTypeText = "text"

// ArtifactContent is one revision of an artifact. Type selects the variant: "code" carries
// Code (and Language), any other type carries FullMarkdown.
type ArtifactContent struct {
	Index        int    `json:"index"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Language     string `json:"language,omitempty"`
	Code         string `json:"code,omitempty"`
	FullMarkdown string `json:"fullMarkdown,omitempty"`
}

// IsCodeContent reports whether c is the code variant
func IsCodeContent(c *ArtifactContent) bool {
	return c != nil && c.Type == ArtifactTypeCode
}

// Artifact is the document or program the assistant is editing, with its revision history
type Artifact struct {
	CurrentIndex int               `json:"currentIndex"`
	Contents     []ArtifactContent `json:"contents"`
}
