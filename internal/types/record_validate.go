package types

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	recordValidator     *validator.Validate
	recordValidatorOnce sync.Once
)

func getRecordValidator() *validator.Validate {
	recordValidatorOnce.Do(func() {
		recordValidator = validator.New()
		recordValidator.RegisterStructValidation(recordStructLevel, Record{})
	})
	return recordValidator
}

// Validate checks the structural invariants every cleaned record must hold.
// It does not re-run field cleaning; a record with invalid codes is still valid.
func (r *Record) Validate() error {
	return getRecordValidator().Struct(r)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b DateValue) int {
	return int((dayStart(b.Date) - dayStart(a.Date)) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// dayStart is the Unix time of midnight UTC on t's calendar date.
func dayStart(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

func recordStructLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(Record)

	if strings.TrimSpace(r.JobID) == "" {
		sl.ReportError(r.JobID, "JobID", "JobID", "required", "")
	}

	if (r.SalaryMin == nil) != (r.SalaryMax == nil) {
		sl.ReportError(r.SalaryMax, "SalaryMax", "SalaryMax", "required_with", "SalaryMin")
	}
	if r.SalaryMin != nil && r.SalaryMax != nil {
		if *r.SalaryMin > *r.SalaryMax {
			sl.ReportError(r.SalaryMax, "SalaryMax", "SalaryMax", "gtefield", "SalaryMin")
		}
		want := float64(*r.SalaryMin+*r.SalaryMax) / 2
		if r.SalaryMedian == nil || *r.SalaryMedian != want {
			sl.ReportError(r.SalaryMedian, "SalaryMedian", "SalaryMedian", "median", "")
		}
	} else if r.SalaryMedian != nil {
		sl.ReportError(r.SalaryMedian, "SalaryMedian", "SalaryMedian", "excluded_without", "SalaryMin")
	}
	if r.InvalidCodes.Has(FieldSalary) && r.SalaryMin != nil {
		sl.ReportError(r.SalaryMin, "SalaryMin", "SalaryMin", "excluded_with", "invalid_code")
	}

	for _, d := range []struct {
		name string
		val  DateValue
	}{{FieldPlacedOn, r.PlacedOn}, {FieldCloses, r.Closes}} {
		if r.InvalidCodes.Has(d.name) && d.val.Parsed {
			sl.ReportError(d.val.Date, d.name, d.name, "excluded_with", "invalid_code")
		}
	}

	if r.DurationAdDays != nil {
		bothParsed := r.PlacedOn.Parsed && r.Closes.Parsed &&
			!r.InvalidCodes.Has(FieldPlacedOn) && !r.InvalidCodes.Has(FieldCloses)
		if !bothParsed || *r.DurationAdDays != DaysBetween(r.PlacedOn, r.Closes) {
			sl.ReportError(r.DurationAdDays, "DurationAdDays", "DurationAdDays", "duration", "")
		}
	}
}
