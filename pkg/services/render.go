package services

import (
	"bytes"
	"html"
	"strings"

	"minedicas/pkg/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const resumoMaxRunes = 200

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithXHTML()),
	)
	sanitizer  = bluemonday.UGCPolicy()
	textPolicy = bluemonday.StrictPolicy()
)

// renderMarkdown converte o corpo da dica em HTML seguro.
func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// gerarResumo tira as tags do HTML e corta o texto em resumoMaxRunes.
func gerarResumo(contentHTML string) string {
	text := html.UnescapeString(textPolicy.Sanitize(contentHTML))
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > resumoMaxRunes {
		return strings.TrimSpace(string(runes[:resumoMaxRunes])) + "..."
	}
	return text
}

// withRendering preenche content_html e summary. Se o markdown falhar a dica
// segue sem os derivados.
func withRendering(t models.Tip) models.Tip {
	out, err := renderMarkdown(t.ContentBody)
	if err != nil {
		return t
	}
	t.ContentHTML = out
	t.Summary = gerarResumo(out)
	return t
}

func withRenderingAll(tips []models.Tip) []models.Tip {
	for i := range tips {
		tips[i] = withRendering(tips[i])
	}
	return tips
}
