// Package htmlutil extracts readable text from HTML documents.
package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/happyhackingspace/textvec/internal/textutil"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LoadHTML parses HTML from r into a goquery Document.
func LoadHTML(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// LoadHTMLString parses an HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// hidden elements never contribute text.
var hidden = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
	atom.Svg:      true,
}

// VisibleText returns the text a reader would see in sel: text nodes in
// document order, with whitespace normalized and runs of text separated by a
// single space. Scripts, styles and the document head are skipped.
func VisibleText(sel *goquery.Selection) string {
	var parts []string
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				parts = append(parts, textutil.NormalizeWhitespaces(trimmed))
			}
			return
		case html.ElementNode:
			if hidden[n.DataAtom] {
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range sel.Nodes {
		visit(n)
	}
	return strings.Join(parts, " ")
}

// Title returns the trimmed content of the first <title> element.
func Title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// ExtractText parses HTML from r and returns its title and visible text.
func ExtractText(r io.Reader) (title, text string, err error) {
	doc, err := LoadHTML(r)
	if err != nil {
		return "", "", err
	}
	return Title(doc), VisibleText(doc.Selection), nil
}
