package parsing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// minDescriptionLength filters out boilerplate blocks (navigation, contact
// lines) when guessing which text is the advertisement body.
const minDescriptionLength = 150

var legacyDescription = []textStrategy{
	longestSection,
	firstBlock("div#job-description"),
	firstBlock("div#rightcol"),
	contentBlockText,
	jobPostParagraphs,
	longParagraphs,
}

var enhancedDescription = []textStrategy{
	firstBlock("div.section:not([id])"),
	firstBlock("div#enhanced-right"),
	firstBlock("div#enhanced-content"),
}

func firstBlock(selector string) textStrategy {
	return func(p *page) (string, bool) {
		n := p.first(selector)
		if n == nil {
			return "", false
		}
		return nodeTextSep(n, " "), true
	}
}

// longestSection picks the longest anonymous div.section, provided it is
// long enough to be a description.
func longestSection(p *page) (string, bool) {
	best := ""
	for _, n := range p.find("div.section:not([id])") {
		if text := nodeTextSep(n, " "); charCount(text) >= charCount(best) {
			best = text
		}
	}
	if charCount(best) <= minDescriptionLength {
		return "", false
	}
	return best, true
}

// contentBlockText collects the text of div.col-lg-12 starting at its first
// paragraph. Elements nested in an already collected element are skipped.
func contentBlockText(p *page) (string, bool) {
	block := p.first("div.col-lg-12")
	if block == nil {
		return "", false
	}
	var parts []string
	var collected []*html.Node
	started := false
	for _, n := range descendants(block) {
		if !started && n.Data == "p" {
			started = true
		}
		if !started || insideAny(n, collected) {
			continue
		}
		collected = append(collected, n)
		parts = append(parts, nodeText(n))
	}
	return strings.Join(parts, " "), started
}

func insideAny(n *html.Node, ancestors []*html.Node) bool {
	for _, a := range ancestors {
		if isDescendant(n, a) {
			return true
		}
	}
	return false
}

// jobPostParagraphs reads div.jobPost, whose first two paragraphs hold the
// location, salary and hours and whose last one is the footer.
func jobPostParagraphs(p *page) (string, bool) {
	post := p.first("div.jobPost")
	if post == nil {
		return "", false
	}
	paras := paragraphTexts(goquery.NewDocumentFromNode(post).Find("p").Nodes)
	if len(paras) <= 3 {
		return "", false
	}
	var kept []string
	for _, para := range paras[2 : len(paras)-1] {
		if charCount(para) > minDescriptionLength {
			kept = append(kept, para)
		}
	}
	return strings.Join(kept, "\n"), true
}

// longParagraphs is the last resort: every long paragraph on the page that
// does not look like contact details.
func longParagraphs(p *page) (string, bool) {
	var kept []string
	for _, para := range paragraphTexts(p.find("p")) {
		if charCount(para) > minDescriptionLength && !strings.Contains(para, "@") {
			kept = append(kept, para)
		}
	}
	return strings.Join(kept, "\n"), true
}

func paragraphTexts(nodes []*html.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeTextSep(n, " "))
	}
	return out
}
