package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeText joins the text nodes below node with single spaces, the way a
// browser's innerText separates block content. Every kind of Unicode
// whitespace, including NBSP and ideographic space, collapses to one space.
func nodeText(node *html.Node) string {
	var parts []string
	collectText(node, &parts)
	return normalizeSpace(strings.Join(parts, " "))
}

func collectText(node *html.Node, parts *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if text := strings.TrimSpace(node.Data); text != "" {
			*parts = append(*parts, text)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, parts)
	}
}

// normalizeSpace trims s and collapses internal whitespace runs.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
