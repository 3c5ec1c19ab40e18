package types

import "encoding/json"

// Canonical field names.
const (
	FieldJobID         = "jobid"
	FieldDescription   = "description"
	FieldJobTitle      = "job_title"
	FieldEmployer      = "employer"
	FieldLocation      = "location"
	FieldSalary        = "salary"
	FieldFundingAmount = "funding_amount"
	FieldHours         = "hours"
	FieldContract      = "contract"
	FieldPlacedOn      = "placed_on"
	FieldCloses        = "closes"
	FieldSubjectArea   = "subject_area"
	FieldTypeRole      = "type_role"
	FieldExtraLocation = "extra_location"
	FieldDepartment    = "department"
	FieldRegion        = "region"
)

// Derived field names written by the cleaner.
const (
	FieldEnhanced       = "enhanced"
	FieldInvalidCode    = "invalid_code"
	FieldSalaryMin      = "salary_min"
	FieldSalaryMax      = "salary_max"
	FieldSalaryMedian   = "salary_median"
	FieldDurationAdDays = "duration_ad_days"
	FieldDate           = "date"
	FieldUKUniversity   = "uk_university"
	FieldUKPostcode     = "uk_postcode"
	FieldInUK           = "in_uk"
	FieldNotStudent     = "not_student"
)

// KnownFields lists the canonical vocabulary in record order.
var KnownFields = []string{
	FieldJobID,
	FieldDescription,
	FieldJobTitle,
	FieldEmployer,
	FieldLocation,
	FieldSalary,
	FieldFundingAmount,
	FieldHours,
	FieldContract,
	FieldPlacedOn,
	FieldCloses,
	FieldSubjectArea,
	FieldTypeRole,
	FieldExtraLocation,
	FieldDepartment,
	FieldRegion,
}

// DerivedFields lists the names the cleaner writes. They are reserved and
// never taken from a page.
var DerivedFields = []string{
	FieldEnhanced,
	FieldInvalidCode,
	FieldSalaryMin,
	FieldSalaryMax,
	FieldSalaryMedian,
	FieldDurationAdDays,
	FieldDate,
	FieldUKUniversity,
	FieldUKPostcode,
	FieldInUK,
	FieldNotStudent,
}

var (
	knownFieldSet   = toSet(KnownFields)
	derivedFieldSet = toSet(DerivedFields)
)

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, f := range names {
		m[f] = true
	}
	return m
}

// IsKnownField reports whether name is part of the canonical vocabulary.
func IsKnownField(name string) bool { return knownFieldSet[name] }

// IsDerivedField reports whether name is reserved for a derived value.
func IsDerivedField(name string) bool { return derivedFieldSet[name] }

// Layout identifies which page template the extractor recognised.
type Layout string

const (
	// LayoutLegacy is the plain HTML table template.
	LayoutLegacy Layout = "legacy"
	// LayoutEnhanced is the template wrapped in div#enhanced-content.
	LayoutEnhanced Layout = "enhanced"
	// LayoutJSON is a page carrying an application/ld+json JobPosting block.
	LayoutJSON Layout = "json"
)

// Valid reports whether l is one of the known layouts.
func (l Layout) Valid() bool {
	switch l {
	case LayoutLegacy, LayoutEnhanced, LayoutJSON:
		return true
	}
	return false
}

// FieldMapping is the ordered, uncleaned output of the extractor. Keys are
// canonical field names or, for labels outside the vocabulary, their slug.
type FieldMapping struct {
	Layout Layout
	// StructuredData holds the raw JSON-LD payload when Layout is LayoutJSON.
	StructuredData json.RawMessage
	// PageText is the visible text of the whole page. It is not part of the
	// serialized mapping.
	PageText string

	keys   []string
	values map[string]Value
}

// NewFieldMapping creates an empty mapping for the given layout.
func NewFieldMapping(layout Layout) *FieldMapping {
	return &FieldMapping{Layout: layout, values: make(map[string]Value)}
}

// Set stores a value. A key set twice keeps its first position and its latest value.
func (m *FieldMapping) Set(key string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value for key, or the absent Value.
func (m *FieldMapping) Get(key string) Value {
	if m == nil {
		return Value{}
	}
	return m.values[key]
}

// Has reports whether key was set.
func (m *FieldMapping) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Keys returns keys in insertion order.
func (m *FieldMapping) Keys() []string {
	if m == nil {
		return nil
	}
	cp := make([]string, len(m.keys))
	copy(cp, m.keys)
	return cp
}

// Len returns the number of keys.
func (m *FieldMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns an independent copy.
func (m *FieldMapping) Clone() *FieldMapping {
	out := NewFieldMapping(m.Layout)
	out.StructuredData = append(json.RawMessage(nil), m.StructuredData...)
	out.PageText = m.PageText
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// MarshalJSON writes the mapping as a flat object plus the layout marker.
func (m *FieldMapping) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(m.keys)+1)
	for _, k := range m.keys {
		doc[k] = m.values[k].Interface()
	}
	doc[FieldEnhanced] = string(m.Layout)
	return json.Marshal(doc)
}
