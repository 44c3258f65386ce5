package display

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PlainText converts a recipe summary (provider HTML with <b>, <a>, <br>
// and paragraphs) to readable text. Markup is dropped, block elements
// become line breaks, and runs of whitespace collapse to one space.
// Unparseable input is returned unchanged.
func PlainText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}

	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithNodes(newline())
	})
	doc.Find("p, li, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendNodes(newline())
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func newline() *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n"}
}
