package util

import (
	"strings"

	"golang.org/x/net/html"
)

// Removes HTML markup from status content or an account note, keeping only
// the text. Entities are decoded. Line breaks and paragraph boundaries become
// newlines, so words from adjacent paragraphs are not glued together.
func StripHTML(content string) string {
	if content == "" {
		return ""
	}
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or malformed input: keep what we have
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br":
				sb.WriteByte('\n')
			case "p":
				if sb.Len() > 0 {
					sb.WriteByte('\n')
				}
			}
		}
	}
}
