package parsing

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// page is a parsed advertisement with its elements indexed in document order,
// so "the next matching element" lookups can continue past the current
// subtree into the rest of the document.
type page struct {
	doc   *goquery.Document
	order []*html.Node
	pos   map[*html.Node]int
}

func newPage(markup string) (*page, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse markup", Cause: err}
	}
	p := &page{
		doc: goquery.NewDocumentFromNode(root),
		pos: make(map[*html.Node]int),
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			p.pos[n] = len(p.order)
			p.order = append(p.order, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return p, nil
}

// find returns every element matching the CSS selector, in document order.
func (p *page) find(selector string) []*html.Node {
	return p.doc.Find(selector).Nodes
}

// first returns the first element matching the selector, or nil.
func (p *page) first(selector string) *html.Node {
	nodes := p.find(selector)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// findNext returns the first element after n in document order, descendants
// of n included, that matches sel.
func (p *page) findNext(n *html.Node, sel matcher) *html.Node {
	i, ok := p.pos[n]
	if !ok {
		return nil
	}
	for _, c := range p.order[i+1:] {
		if sel.Match(c) {
			return c
		}
	}
	return nil
}

func isDescendant(n, ancestor *html.Node) bool {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// descendants returns the elements below n in document order.
func descendants(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// textStrings collects the text nodes under n, skipping script and style bodies.
func textStrings(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		switch cur.Type {
		case html.TextNode:
			out = append(out, cur.Data)
			return
		case html.ElementNode:
			if cur.Data == "script" || cur.Data == "style" {
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// nodeText concatenates every text node under n.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.Join(textStrings(n), "")
}

// nodeTextSep joins the text nodes under n with sep, so adjacent block
// elements do not run their words together.
func nodeTextSep(n *html.Node, sep string) string {
	if n == nil {
		return ""
	}
	return strings.Join(textStrings(n), sep)
}

func attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// charCount measures text length in characters rather than bytes.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

type matcher interface {
	Match(n *html.Node) bool
}

func mustSel(selector string) matcher {
	return cascadia.MustCompile(selector)
}
