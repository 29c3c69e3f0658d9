package markdown

import (
	"bytes"
	"html"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// renderer never passes raw HTML through; embedded tags are omitted.
var renderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// ToHTML renders Markdown source. On failure the escaped source is returned.
func ToHTML(source string) string {
	var buf bytes.Buffer

	if err := renderer.Convert([]byte(source), &buf); err != nil {
		log.Warn().Err(err).Msg("failed to render markdown")

		return html.EscapeString(source)
	}

	return buf.String()
}
