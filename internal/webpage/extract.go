package webpage

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// elements whose text must never reach the index
var strippedElements = map[string]bool{
	"script": true,
	"style":  true,
	"link":   true,
}

// Extract flattens an HTML document into its title and visible body text.
// script, style and link subtrees are dropped before text collection.
func Extract(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	page := &Page{}
	var title, body strings.Builder
	var walk func(n *html.Node, inTitle, inBody bool)
	walk = func(n *html.Node, inTitle, inBody bool) {
		switch n.Type {
		case html.ElementNode:
			if strippedElements[n.Data] {
				return
			}
			switch n.Data {
			case "title":
				inTitle = true
			case "body":
				inBody = true
			}
		case html.TextNode:
			if inTitle {
				title.WriteString(n.Data)
			} else if inBody {
				body.WriteString(n.Data)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inTitle, inBody)
		}
	}
	walk(doc, false, false)

	page.Title = strings.TrimSpace(title.String())
	page.Body = strings.TrimSpace(body.String())
	return page, nil
}

// Truncate cuts s to at most max runes, appending a marker when anything was
// cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
