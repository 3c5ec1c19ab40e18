package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Salary", "salary"},
		{"trailing colon", "Salary:", "salary"},
		{"two words", "Placed On", "placed_on"},
		{"slash", "Type / Role:", "type_role"},
		{"parentheses", "Subject Area(s)", "subject_area_s"},
		{"surrounding whitespace", "  Closes  \n", "closes"},
		{"pound sign", "Salary (£)", "salary"},
		{"underscore", "job_ref", "job_ref"},
		{"empty", "", ""},
		{"punctuation only", ":::", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.input))
		})
	}
}

func TestNormalizeFieldName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"contract type label", "Contract Type", "contract"},
		{"contract type slug", "contract_type", "contract"},
		{"contract type with colon", "Contract Type:", "contract"},
		{"expires", "Expires", "closes"},
		{"closing date", "Closing Date:", "closes"},
		{"placed on", "Placed On:", "placed_on"},
		{"name", "name", "job_title"},
		{"type role", "Type / Role:", "type_role"},
		{"raw triple underscore", "type___role", "type_role"},
		{"extra type role", "extra_type___role", "type_role"},
		{"subject areas", "Subject Area(s):", "subject_area"},
		{"extra subject area", "extra_subject_area", "subject_area"},
		{"location s", "Location(s):", "location"},
		{"extra location", "extra_location_s", "extra_location"},
		{"unknown passes through as slug", "Job Ref:", "job_ref"},
		{"hours unchanged", "Hours:", "hours"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFieldName(tt.input))
		})
	}
}
