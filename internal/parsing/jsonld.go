package parsing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"

	"github.com/jonathan/jobad-parser/internal/types"
)

// structuredData returns the application/ld+json JobPosting block, or the
// first block holding a JSON object when none is typed as a JobPosting.
// Blocks that fail to parse are skipped.
func (p *page) structuredData() (gjson.Result, bool) {
	var first gjson.Result
	found := false
	for _, script := range p.find(`script[type="application/ld+json"]`) {
		body := strings.TrimSpace(scriptBody(script))
		if !gjson.Valid(body) {
			continue
		}
		data := gjson.Parse(body)
		if !data.IsObject() {
			continue
		}
		if isJobPosting(data) {
			return data, true
		}
		if !found {
			first, found = data, true
		}
	}
	return first, found
}

// isJobPosting reports whether @type names JobPosting, either alone or in a
// list of types.
func isJobPosting(data gjson.Result) bool {
	typ := data.Get("@type")
	if typ.IsArray() {
		for _, t := range typ.Array() {
			if t.String() == "JobPosting" {
				return true
			}
		}
		return false
	}
	return typ.String() == "JobPosting"
}

func scriptBody(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// extractStructured reads a JSON-LD block, normally a JobPosting. Subject areas, type/role and
// the extra location are not part of the payload and come from the search
// form controls rendered on the same page.
func extractStructured(p *page, data gjson.Result) *types.FieldMapping {
	m := types.NewFieldMapping(types.LayoutJSON)
	m.StructuredData = json.RawMessage(data.Raw)

	m.Set(types.FieldJobTitle, jsonValue(data.Get("title")))
	m.Set(types.FieldEmployer, jsonValue(data.Get("hiringOrganization.name")))
	m.Set(types.FieldDepartment, jsonValue(data.Get("hiringOrganization.department.name")))
	m.Set(types.FieldSalary, jsonValue(data.Get("baseSalary.value")))
	m.Set(types.FieldPlacedOn, jsonValue(data.Get("datePosted")))
	m.Set(types.FieldCloses, jsonValue(data.Get("validThrough")))

	description := types.Null
	if d := data.Get("description"); d.Type == gjson.String {
		description = types.Text(htmlText(d.Str))
	}
	m.Set(types.FieldDescription, description)

	location := data.Get("jobLocation")
	if location.IsArray() {
		location = location.Get("0")
	}
	m.Set(types.FieldLocation, jsonValue(location.Get("address.addressLocality")))
	m.Set(types.FieldRegion, jsonValue(location.Get("address.addressRegion")))

	// employmentType packs the hours and the contract together, e.g.
	// "Full Time, Part Time, Permanent": the contract is always last.
	if segments := employmentSegments(data.Get("employmentType")); len(segments) > 0 {
		m.Set(types.FieldHours, types.List(segments[:len(segments)-1]...))
		m.Set(types.FieldContract, types.Text(segments[len(segments)-1]))
	}

	m.Set(types.FieldSubjectArea, formControlList(p, "Subject Area(s):", "categoryId[]"))
	m.Set(types.FieldExtraLocation, formControlValue(p, "input.j-form-input__location"))
	m.Set(types.FieldTypeRole, formControlList(p, "Type / Role:", "jobTypeId[]"))
	return m
}

// jsonValue converts a scalar to text. Missing keys, nulls and nested
// structures become Null.
func jsonValue(r gjson.Result) types.Value {
	switch r.Type {
	case gjson.String:
		return types.Text(r.Str)
	case gjson.Number:
		return types.Text(r.Raw)
	}
	return types.Null
}

func employmentSegments(r gjson.Result) []string {
	var parts []string
	switch {
	case r.Type == gjson.String:
		parts = strings.Split(r.Str, ",")
	case r.IsArray():
		for _, item := range r.Array() {
			parts = append(parts, strings.Split(item.String(), ",")...)
		}
	}
	if len(parts) == 1 && strings.TrimSpace(parts[0]) == "" {
		return nil
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// formControlList collects the values of the search form checkboxes that
// follow a bold heading. Each marker input is followed by the input holding
// the human-readable value. A missing heading yields Null.
func formControlList(p *page, heading, markerName string) types.Value {
	var start *html.Node
	for _, b := range p.find("b") {
		if strings.Contains(nodeText(b), heading) {
			start = b
			break
		}
	}
	if start == nil {
		return types.Null
	}
	marker := mustSel(fmt.Sprintf("input[name=%q]", markerName))
	input := mustSel("input")
	items := []string{}
	for cur := p.findNext(start, marker); cur != nil; cur = p.findNext(cur, marker) {
		valueInput := p.findNext(cur, input)
		if valueInput == nil {
			break
		}
		value, _ := attr(valueInput, "value")
		items = append(items, value)
	}
	return types.List(items...)
}

func formControlValue(p *page, selector string) types.Value {
	value, ok := attr(p.first(selector), "value")
	if !ok {
		return types.Null
	}
	return types.Text(value)
}

// htmlText strips markup from an HTML fragment.
func htmlText(fragment string) string {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return nodeText(root)
}
