package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/usecase"
)

func TestFormatArtifactContent(t *testing.T) {
	t.Run("code artifact", func(t *testing.T) {
		content := &model.ArtifactContent{
			Index:    1,
			Type:     model.ArtifactTypeCode,
			Title:    "hello",
			Language: "go",
			Code:     "package main",
		}
		out := usecase.FormatArtifactContent(content, false)
		gt.Value(t, out).Equal("Title: hello\nArtifact type: code\nContent: package main")
	})

	t.Run("text artifact", func(t *testing.T) {
		content := &model.ArtifactContent{
			Index:        1,
			Type:         model.ArtifactTypeText,
			Title:        "essay",
			FullMarkdown: "# Heading",
		}
		out := usecase.FormatArtifactContent(content, false)
		gt.Value(t, out).Equal("Title: essay\nArtifact type: text\nContent: # Heading")
	})

	t.Run("shortened to 500 characters", func(t *testing.T) {
		content := &model.ArtifactContent{
			Type:         model.ArtifactTypeText,
			Title:        "long",
			FullMarkdown: strings.Repeat("a", 600),
		}
		out := usecase.FormatArtifactContent(content, true)
		gt.Value(t, out).Equal("Title: long\nArtifact type: text\nContent: " + strings.Repeat("a", 500))

		full := usecase.FormatArtifactContent(content, false)
		gt.String(t, full).Contains(strings.Repeat("a", 600))
	})

	t.Run("short content is kept", func(t *testing.T) {
		content := &model.ArtifactContent{Type: model.ArtifactTypeCode, Title: "t", Code: "x := 1"}
		out := usecase.FormatArtifactContent(content, true)
		gt.Value(t, out).Equal("Title: t\nArtifact type: code\nContent: x := 1")
	})
}

func TestFormatArtifactContent_Nil(t *testing.T) {
	gt.Value(t, usecase.FormatArtifactContent(nil, true)).Equal("")
	gt.Value(t, usecase.FormatArtifactContentWithTemplate("<a>{artifact}</a>", nil, false)).Equal("<a></a>")
}

func TestFormatArtifactContentWithTemplate(t *testing.T) {
	content := &model.ArtifactContent{Type: model.ArtifactTypeCode, Title: "t", Code: "c"}

	t.Run("first placeholder is replaced", func(t *testing.T) {
		out := usecase.FormatArtifactContentWithTemplate("<artifact>\n{artifact}\n</artifact> {artifact}", content, false)
		gt.Value(t, out).Equal("<artifact>\nTitle: t\nArtifact type: code\nContent: c\n</artifact> {artifact}")
	})

	t.Run("no placeholder", func(t *testing.T) {
		out := usecase.FormatArtifactContentWithTemplate("nothing here", content, false)
		gt.Value(t, out).Equal("nothing here")
	})
}

func TestGetArtifactContent(t *testing.T) {
	artifact := &model.Artifact{
		CurrentIndex: 2,
		Contents: []model.ArtifactContent{
			{Index: 1, Type: model.ArtifactTypeText, Title: "first"},
			{Index: 2, Type: model.ArtifactTypeText, Title: "second"},
			{Index: 3, Type: model.ArtifactTypeText, Title: "third"},
		},
	}

	t.Run("current index", func(t *testing.T) {
		content, err := usecase.GetArtifactContent(artifact)
		gt.NoError(t, err).Required()
		gt.Value(t, content.Title).Equal("second")
	})

	t.Run("falls back to last content", func(t *testing.T) {
		a := *artifact
		a.CurrentIndex = 10
		content, err := usecase.GetArtifactContent(&a)
		gt.NoError(t, err).Required()
		gt.Value(t, content.Title).Equal("third")
	})

	t.Run("empty artifact", func(t *testing.T) {
		_, err := usecase.GetArtifactContent(&model.Artifact{})
		gt.Error(t, err).Is(usecase.ErrArtifactNotFound)
	})

	t.Run("nil artifact", func(t *testing.T) {
		_, err := usecase.GetArtifactContent(nil)
		gt.Error(t, err).Is(usecase.ErrArtifactNotFound)
	})
}

func TestTruncateRunes(t *testing.T) {
	gt.Value(t, usecase.TruncateRunes("héllo", 2)).Equal("hé")
	gt.Value(t, usecase.TruncateRunes("abc", 3)).Equal("abc")
	gt.Value(t, usecase.TruncateRunes("abc", 5)).Equal("abc")
	gt.Value(t, usecase.TruncateRunes("abc", 0)).Equal("")
}
