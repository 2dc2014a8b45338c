package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

const markdownExtensions = blackfriday.CommonExtensions | blackfriday.Tables | blackfriday.Footnotes

var htmlPolicy = bluemonday.UGCPolicy()

// RenderMarkdown converts article markdown into sanitized HTML.
func RenderMarkdown(md string) string {
	out := blackfriday.Run([]byte(md), blackfriday.WithExtensions(markdownExtensions))
	return string(htmlPolicy.SanitizeBytes(out))
}

// Preview returns the first n runes of md with whitespace collapsed,
// followed by an ellipsis when truncated.
func Preview(md string, n int) string {
	text := strings.Join(strings.Fields(md), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}
