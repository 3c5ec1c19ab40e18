package cleaning

import (
	"strings"

	"github.com/jonathan/jobad-parser/internal/types"
)

// ukRegions are the extra_location labels that place a post in the UK or
// Ireland.
var ukRegions = map[string]bool{
	"Northern England":    true,
	"London":              true,
	"Midlands of England": true,
	"Scotland":            true,
	"South West England":  true,
	"South East England":  true,
	"Wales":               true,
	"Republic of Ireland": true,
	"Northern Ireland":    true,
}

// studentRoles mark studentships rather than jobs.
var studentRoles = map[string]bool{
	"phd":     true,
	"masters": true,
}

func enrich(rec types.Record, opts Options) (types.Record, error) {
	if !opts.Enrich {
		return rec, nil
	}
	if !rec.Employer.Blank() {
		if name, ok := opts.Directory.University(rec.Employer.String(), opts.UniversityThreshold); ok && name != "" {
			rec.UKUniversity = &name
		}
	}
	if rec.UKUniversity != nil {
		if code, ok := opts.Directory.Postcode(*rec.UKUniversity, opts.PostcodeThreshold); ok && code != "" {
			rec.UKPostcode = &code
		}
	}
	rec.InUK = inUK(rec.ExtraLocation)
	rec.NotStudent = notStudent(rec.TypeRole)
	return rec, nil
}

// inUK is unknown (nil) when the page gave no extra location.
func inUK(location types.Value) *bool {
	if !location.Present() || location.IsNull() {
		return nil
	}
	found := false
	for _, item := range location.Items() {
		if ukRegions[strings.TrimSpace(item)] {
			found = true
			break
		}
	}
	return &found
}

// notStudent is unknown (nil) when the page gave no type/role, false when
// any role is a studentship and true otherwise.
func notStudent(roles types.Value) *bool {
	if !roles.Present() || roles.IsNull() {
		return nil
	}
	result := true
	for _, role := range roles.Items() {
		if studentRoles[strings.ToLower(strings.TrimSpace(role))] {
			result = false
			break
		}
	}
	return &result
}
