package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser handles result pages published as HTML. Block elements and
// table rows end a line; table cells are separated by a space.
type HTMLParser struct{}

func (p *HTMLParser) Text(r io.Reader, filename string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	lineBreak := func() {
		s := buf.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			buf.WriteString("\n")
		}
	}
	space := func() {
		s := buf.String()
		if s != "" && !strings.HasSuffix(s, "\n") && !strings.HasSuffix(s, " ") {
			buf.WriteString(" ")
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.Join(strings.Fields(n.Data), " "); t != "" {
				space()
				buf.WriteString(t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head", "nav", "footer":
				return
			case "br":
				lineBreak()
				return
			}
		}

		block := n.Type == html.ElementNode && isBlock(n.Data)
		if block {
			lineBreak()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			lineBreak()
		} else if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
			space()
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return strings.TrimRight(buf.String(), " "), nil
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "tr", "li", "table", "pre", "section", "article",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "ul", "ol":
		return true
	}
	return false
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
