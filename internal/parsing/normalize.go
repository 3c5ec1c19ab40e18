package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/jobad-parser/internal/types"
)

// fieldNameSubstitutions maps label variants seen across page revisions to
// canonical field names. Keys are matched against both the lower-cased label
// and its slug.
var fieldNameSubstitutions = map[string]string{
	"contract_type":        types.FieldContract,
	"contract type":        types.FieldContract,
	"contract":             types.FieldContract,
	"expires":              types.FieldCloses,
	"closes":               types.FieldCloses,
	"closing_date":         types.FieldCloses,
	"placed on":            types.FieldPlacedOn,
	"placed_on":            types.FieldPlacedOn,
	"name":                 types.FieldJobTitle,
	"type___role":          types.FieldTypeRole,
	"type_role":            types.FieldTypeRole,
	"extra_type___role":    types.FieldTypeRole,
	"extra_type_role":      types.FieldTypeRole,
	"subject_area_s":       types.FieldSubjectArea,
	"subject_area":         types.FieldSubjectArea,
	"extra_subject_area":   types.FieldSubjectArea,
	"extra_subject_area_s": types.FieldSubjectArea,
	"location_s":           types.FieldLocation,
	"location":             types.FieldLocation,
	"extra_location_s":     types.FieldExtraLocation,
}

// Slug lower-cases a label, turns every punctuation or symbol character into
// a space, collapses whitespace and joins the remaining words with underscores.
//
//	"Type / Role:"    -> "type_role"
//	"Subject Area(s)" -> "subject_area_s"
func Slug(label string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, label)
	return strings.Join(strings.Fields(mapped), "_")
}

// NormalizeFieldName maps a raw label to its canonical field name. Labels
// with no known variant are returned as their slug.
func NormalizeFieldName(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := fieldNameSubstitutions[lower]; ok {
		return canonical
	}
	slug := Slug(label)
	if canonical, ok := fieldNameSubstitutions[slug]; ok {
		return canonical
	}
	return slug
}
