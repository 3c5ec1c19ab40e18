// Package parsing turns raw jobs.ac.uk advertisement pages into flat field
// mappings. It recognises the JSON-LD, enhanced and legacy page templates and
// falls back through an ordered list of strategies for each field group.
package parsing

import (
	"strings"

	"github.com/jonathan/jobad-parser/internal/types"
)

// Extract detects the page layout and returns the raw, uncleaned fields.
// A page that matches no known structure yields a sparse mapping, not an
// error; the error return is reserved for markup that cannot be read at all.
func Extract(markup string) (*types.FieldMapping, error) {
	p, err := newPage(markup)
	if err != nil {
		return nil, err
	}
	var m *types.FieldMapping
	switch data, ok := p.structuredData(); {
	case ok:
		m = extractStructured(p, data)
	case p.first("div#enhanced-content") != nil:
		m = extractHTML(p, types.LayoutEnhanced)
	default:
		m = extractHTML(p, types.LayoutLegacy)
	}
	m.PageText = pageText(p)
	return m, nil
}

// pageText is the visible text of the page body, one text node per line.
func pageText(p *page) string {
	body := p.first("body")
	if body == nil {
		return ""
	}
	var lines []string
	for _, s := range textStrings(body) {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

func extractHTML(p *page, layout types.Layout) *types.FieldMapping {
	description, extras := legacyDescription, legacyExtraDetails
	if layout == types.LayoutEnhanced {
		description, extras = enhancedDescription, enhancedExtraDetails
	}

	m := types.NewFieldMapping(layout)
	if text, ok := firstText(p, description...); ok {
		m.Set(types.FieldDescription, types.Text(text))
	}
	m.Set(types.FieldEmployer, employer(p))
	m.Set(types.FieldJobTitle, tagText(p, "h1"))
	m.Set(types.FieldLocation, tagText(p, "h3"))

	// Extra details come last so their list values replace the plain text
	// read from the attribute table under the same name.
	setPairs(m, firstPairs(p, detailFormats...))
	setPairs(m, extras(p))
	return m
}

func setPairs(m *types.FieldMapping, pairs []detailPair) {
	for _, pair := range pairs {
		if key := NormalizeFieldName(pair.label); key != "" {
			m.Set(key, pair.value)
		}
	}
}

// employer is the h3 heading, or failing that the first link to an employer
// profile page.
func employer(p *page) types.Value {
	if v := tagText(p, "h3"); !v.IsNull() {
		return v
	}
	if a := p.first(`a[href^="/employer/"]`); a != nil {
		return types.Text(nodeText(a))
	}
	return types.Null
}

func tagText(p *page, tag string) types.Value {
	n := p.first(tag)
	if n == nil {
		return types.Null
	}
	return types.Text(nodeText(n))
}
