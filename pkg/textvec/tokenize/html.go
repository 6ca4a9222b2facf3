package tokenize

import (
	"strings"

	"golang.org/x/net/html"
)

// HTML strips markup from documents before tokenizing them like Unicode.
// Script and style elements are ignored entirely.
type HTML struct {
	inner *Unicode
}

// NewHTML creates an HTML-stripping tokenizer with the given options.
func NewHTML(opts Options) *HTML {
	return &HTML{inner: NewUnicode(opts)}
}

// Tokenize extracts the text content of each document and tokenizes it.
func (t *HTML) Tokenize(docs []string) [][]string {
	plain := make([]string, len(docs))
	for i, doc := range docs {
		plain[i] = ExtractText(doc)
	}
	return t.inner.Tokenize(plain)
}

// ExtractText returns the visible text content of an HTML fragment.
// If parsing fails the input is returned unchanged.
func ExtractText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}
