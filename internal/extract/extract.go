package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is the visible text of a page plus the metadata shown in the
// report header.
type Document struct {
	Title       string
	Author      string
	Description string
	URL         string
	// Text holds the visible text, one block element per line.
	Text string
}

// Lines returns Text split on line breaks.
func (d Document) Lines() []string {
	if d.Text == "" {
		return nil
	}
	return strings.Split(d.Text, "\n")
}

// FromHTML parses input and extracts visible text and metadata. Script,
// style and similar non-rendered elements are dropped; block elements and
// <br> become line breaks.
func FromHTML(input []byte) (Document, error) {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	doc := scrapeMeta(goquery.NewDocumentFromNode(root))

	var b strings.Builder
	if body := findFirst(root, "body"); body != nil {
		collectText(&b, body, false)
	} else {
		collectText(&b, root, false)
	}
	doc.Text = normalizeWhitespace(b.String())
	return doc, nil
}

func scrapeMeta(q *goquery.Document) Document {
	var d Document
	d.Title = metaProperty(q, "og:title")
	if d.Title == "" {
		d.Title = collapseSpaces(q.Find("head title").First().Text())
	}
	d.Author = collapseSpaces(q.Find("span.author").First().Text())
	d.Description = metaProperty(q, "og:description")
	d.URL = metaProperty(q, "og:url")
	return d
}

func metaProperty(q *goquery.Document, property string) string {
	v, _ := q.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(v)
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, tag); res != nil {
			return res
		}
	}
	return nil
}

// blockElements start and end on their own line.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "nav": true, "aside": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"table": true, "tr": true, "blockquote": true, "pre": true, "figure": true,
	"figcaption": true, "form": true, "hr": true,
}

// sourceWrap maps source formatting whitespace to spaces; outside <pre>
// only block elements and <br> start a new line.
var sourceWrap = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func collectText(b *strings.Builder, n *html.Node, pre bool) {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return
	case html.TextNode:
		if pre {
			b.WriteString(n.Data)
		} else {
			b.WriteString(sourceWrap.Replace(n.Data))
		}
		return
	case html.ElementNode:
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "template", "head", "svg", "iframe":
			return
		case "br":
			b.WriteString("\n")
			return
		}
	}
	block := n.Type == html.ElementNode && blockElements[strings.ToLower(n.Data)]
	if block {
		b.WriteString("\n")
	}
	pre = pre || (n.Type == html.ElementNode && strings.EqualFold(n.Data, "pre"))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, pre)
	}
	if block {
		b.WriteString("\n")
	}
}

// normalizeWhitespace collapses whitespace runs inside each line and drops
// blank lines.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if c := collapseSpaces(line); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
