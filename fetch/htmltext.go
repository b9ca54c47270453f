package fetch

import (
	"strings"

	"golang.org/x/net/html"
)

// Elements whose subtrees carry no readable content.
var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"nav": true, "header": true, "footer": true, "aside": true,
	"form": true, "iframe": true, "svg": true, "button": true,
}

// Elements that end a text run; their boundaries become spaces so words
// from adjacent blocks never fuse.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "td": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"article": true, "section": true, "blockquote": true, "pre": true,
}

// extractText walks a parsed document and returns its readable text with
// boilerplate subtrees removed and whitespace collapsed.
func extractText(doc *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] {
				return
			}
			if blockElements[n.Data] {
				sb.WriteByte(' ')
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}
