package cleaning

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// EpochYear is the earliest year accepted for a date found in free page text.
const EpochYear = 2014

var ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)

// dayFirstLayouts are tried in order after ordinal suffixes are removed.
// Month names match case-insensitively.
var dayFirstLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"Monday 2 January 2006",
	"Monday, 2 January 2006",
	"2/1/2006",
}

// ParseDate reads an advertisement date: "5th January 2024", "2024-01-05"
// or an ISO timestamp with an offset. The offset is discarded and the wall
// date kept; the result is midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.Join(strings.Fields(ordinalSuffix.ReplaceAllString(raw, "$1")), " ")
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), nil
		}
	}
	if t, err := time.Parse("2006-01-02", strings.ReplaceAll(s, " ", "")); err == nil {
		return midnight(t), nil
	}
	if !hasDayMonthYear(s) {
		return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
	}
	t, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q: %w", raw, err)
	}
	return midnight(t), nil
}

var (
	digitRun  = regexp.MustCompile(`\d+`)
	monthName = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
)

// hasDayMonthYear rejects partial dates such as "Spring 2024", which the
// general parser would otherwise complete with defaults.
func hasDayMonthYear(s string) bool {
	runs := len(digitRun.FindAllString(s, -1))
	return runs >= 3 || (runs >= 2 && monthName.MatchString(s))
}

// midnight keeps the wall-clock calendar date of t.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// textDate matches the date spellings that appear in advertisement prose.
var textDate = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4}\b` +
	`|\b\d{1,2}/\d{1,2}/\d{4}\b` +
	`|\b\d{4}-\d{2}-\d{2}\b`)

// EarliestDateInText returns the earliest date written in text whose year is
// at least EpochYear.
func EarliestDateInText(text string) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, candidate := range textDate.FindAllString(text, -1) {
		t, err := ParseDate(candidate)
		if err != nil || t.Year() < EpochYear {
			continue
		}
		if !found || t.Before(earliest) {
			earliest, found = t, true
		}
	}
	return earliest, found
}
