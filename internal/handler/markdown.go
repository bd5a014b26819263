package handler

import (
	"bytes"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips unsafe HTML from rendered article content.
// UGCPolicy allows the safe formatting tags while removing scripts and
// event handlers.
var htmlSanitizer = bluemonday.UGCPolicy()

// renderMarkdown converts article markdown to sanitized HTML.
// On a rendering error the raw content is sanitized and returned as-is.
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		slog.Error("failed to render markdown", "error", err)
		return htmlSanitizer.Sanitize(content)
	}
	return htmlSanitizer.Sanitize(buf.String())
}
