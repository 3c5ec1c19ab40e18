package parsing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/jobad-parser/internal/types"
)

// maxInlineLabelLength bounds how long a bold "Label:" may be before it is
// treated as body text instead of an attribute label.
const maxInlineLabelLength = 30

var detailFormats = []pairStrategy{
	labelledPairs("td.detail-heading", "td"),
	labelledPairs("th.j-advert-details__table-header", "td"),
	labelledPairs("dt", "dd"),
	inlineLabelPairs,
}

// labelledPairs pairs every label element with the next value element in
// document order. One label without a value discards the whole format.
func labelledPairs(labelSelector, valueSelector string) pairStrategy {
	valueSel := mustSel(valueSelector)
	return func(p *page) []detailPair {
		labels := p.find(labelSelector)
		pairs := make([]detailPair, 0, len(labels))
		for _, label := range labels {
			value := p.findNext(label, valueSel)
			if value == nil {
				return nil
			}
			pairs = append(pairs, detailPair{
				label: nodeText(label),
				value: types.Text(nodeText(value)),
			})
		}
		return pairs
	}
}

// inlineLabelPairs handles "<strong>Salary:</strong> £30,000" where the
// value is whatever node follows the label.
func inlineLabelPairs(p *page) []detailPair {
	var pairs []detailPair
	for _, label := range p.find("strong") {
		text := nodeText(label)
		if charCount(text) >= maxInlineLabelLength || !strings.Contains(text, ":") {
			continue
		}
		pairs = append(pairs, detailPair{
			label: text,
			value: types.Text(siblingText(label.NextSibling)),
		})
	}
	return pairs
}

func siblingText(n *html.Node) string {
	switch {
	case n == nil:
		return ""
	case n.Type == html.TextNode:
		return n.Data
	}
	return nodeText(n)
}

// legacyExtraDetails reads the div.inlineBox tag lists at the foot of older
// pages. Each box has a label paragraph followed by either a list of links or
// plain text.
func legacyExtraDetails(p *page) []detailPair {
	pSel, divSel := mustSel("p"), mustSel("div")
	var pairs []detailPair
	for _, box := range p.find("div.inlineBox") {
		keyNodes := goquery.NewDocumentFromNode(box).Find("p").Nodes
		if len(keyNodes) == 0 {
			continue
		}
		key := keyNodes[0]
		content := p.findNext(key, pSel)
		if content == nil {
			continue
		}
		value := types.Text(nodeText(content))
		if links := linkTexts(content); len(links) > 0 {
			value = types.List(links...)
		} else if pills := p.findNext(box, divSel); pills != nil {
			if links := linkTexts(pills); len(links) > 0 {
				value = types.List(links...)
			}
		}
		pairs = append(pairs, detailPair{
			label: "extra_" + Slug(nodeText(key)),
			value: value,
		})
	}
	return pairs
}

// enhancedExtraDetails reads the detail table of enhanced pages.
func enhancedExtraDetails(p *page) []detailPair {
	tdSel := mustSel("td")
	var pairs []detailPair
	for _, heading := range p.find("td.detail-heading") {
		value := p.findNext(heading, tdSel)
		if value == nil {
			continue
		}
		pairs = append(pairs, detailPair{
			label: nodeText(heading),
			value: types.Text(nodeText(value)),
		})
	}
	return pairs
}

func linkTexts(n *html.Node) []string {
	var out []string
	for _, a := range goquery.NewDocumentFromNode(n).Find("a").Nodes {
		out = append(out, nodeText(a))
	}
	return out
}
