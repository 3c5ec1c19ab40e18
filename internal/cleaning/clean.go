// Package cleaning turns an extracted field mapping into a typed Record,
// tagging unusable fields with invalid codes instead of rejecting the
// advertisement.
package cleaning

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobad-parser/internal/matching"
	"github.com/jonathan/jobad-parser/internal/salary"
	"github.com/jonathan/jobad-parser/internal/types"
)

// Options controls the optional enrichment steps.
type Options struct {
	// Enrich adds uk_university, uk_postcode, in_uk and not_student.
	Enrich bool
	// Directory holds the reference universities. A nil Directory still
	// allows keyword-based university detection.
	Directory           *matching.Directory
	UniversityThreshold float64
	PostcodeThreshold   float64

	// pageText is the mapping's page text, read by the date fallback.
	pageText string
}

// DefaultOptions returns options with enrichment off and the standard
// matching thresholds.
func DefaultOptions() Options {
	return Options{
		UniversityThreshold: matching.UniversityThreshold,
		PostcodeThreshold:   matching.PostcodeThreshold,
	}
}

func (o Options) withDefaults() Options {
	if o.UniversityThreshold <= 0 {
		o.UniversityThreshold = matching.UniversityThreshold
	}
	if o.PostcodeThreshold <= 0 {
		o.PostcodeThreshold = matching.PostcodeThreshold
	}
	return o
}

// neededFields are filled with empty text when the page did not supply them.
var neededFields = []string{
	types.FieldDescription,
	types.FieldJobTitle,
	types.FieldEmployer,
	types.FieldLocation,
	types.FieldSalary,
	types.FieldFundingAmount,
	types.FieldHours,
	types.FieldContract,
	types.FieldPlacedOn,
	types.FieldCloses,
	types.FieldSubjectArea,
}

// requiredFields are tagged invalid when blank.
var requiredFields = []string{
	types.FieldContract,
	types.FieldDescription,
	types.FieldEmployer,
	types.FieldHours,
	types.FieldJobTitle,
	types.FieldLocation,
	types.FieldSubjectArea,
}

// step is one cleaning rule. Each step receives the record produced by the
// previous one and returns a new record; steps never share state.
type step struct {
	name  string
	apply func(types.Record, Options) (types.Record, error)
}

// steps run in this order; later rules read what earlier ones produced.
var steps = []step{
	{"fill_needed", fillNeeded},
	{"check_required", checkRequired},
	{"parse_dates", parseDates},
	{"duration", addDuration},
	{"salary", extractSalaries},
	{"cross_field", correctCrossField},
	{"median", addMedian},
	{"date", addDate},
	{"enrich", enrich},
	{"trim", trimText},
}

// Clean converts an extracted mapping into a Record. The mapping must carry
// a jobid. Field-level problems end up in the record's invalid codes; an
// error is returned only for a missing jobid or a salary that violates the
// progression ordering.
func Clean(m *types.FieldMapping, opts Options) (*types.Record, error) {
	rec, err := fromMapping(m)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	opts.pageText = m.PageText
	for _, s := range steps {
		if rec, err = s.apply(rec, opts); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("cleaned record %s failed validation: %w", rec.JobID, err)
	}
	return &rec, nil
}

func fromMapping(m *types.FieldMapping) (types.Record, error) {
	if m == nil {
		return types.Record{}, &ContractViolationError{Field: types.FieldJobID, Message: "no field mapping"}
	}
	rec := types.Record{Layout: m.Layout}
	for _, key := range m.Keys() {
		v := m.Get(key)
		if key == types.FieldJobID {
			rec.JobID = strings.TrimSpace(v.String())
			continue
		}
		if types.IsDerivedField(key) {
			continue
		}
		if field := rec.TextField(key); field != nil {
			*field = v
		} else if date := rec.DateField(key); date != nil {
			date.Raw = v
		} else {
			rec.Extras = append(rec.Extras, types.Extra{Key: key, Value: v})
		}
	}
	if rec.JobID == "" {
		return types.Record{}, &ContractViolationError{Field: types.FieldJobID, Message: "advertisement has no jobid"}
	}
	return rec, nil
}

func fillNeeded(rec types.Record, _ Options) (types.Record, error) {
	for _, name := range neededFields {
		if field := rec.TextField(name); field != nil && !field.Present() {
			*field = types.Text("")
		}
		if date := rec.DateField(name); date != nil && !date.Present() {
			date.Raw = types.Text("")
		}
	}
	return rec, nil
}

func checkRequired(rec types.Record, _ Options) (types.Record, error) {
	for _, name := range requiredFields {
		if rec.Get(name).Blank() {
			rec.InvalidCodes = rec.InvalidCodes.With(name)
		}
	}
	return rec, nil
}

// parseDates types placed_on and closes. A date that cannot be read is
// tagged and keeps its raw text.
func parseDates(rec types.Record, _ Options) (types.Record, error) {
	for _, name := range []string{types.FieldPlacedOn, types.FieldCloses} {
		date := rec.DateField(name)
		if date.Raw.Blank() || !date.Raw.IsText() {
			rec.InvalidCodes = rec.InvalidCodes.With(name)
			continue
		}
		t, err := ParseDate(date.Raw.String())
		if err != nil {
			rec.InvalidCodes = rec.InvalidCodes.With(name)
			continue
		}
		*date = types.ParsedDate(date.Raw, t)
	}
	return rec, nil
}

func addDuration(rec types.Record, _ Options) (types.Record, error) {
	if rec.InvalidCodes.Has(types.FieldPlacedOn) || rec.InvalidCodes.Has(types.FieldCloses) {
		return rec, nil
	}
	if !rec.PlacedOn.Parsed || !rec.Closes.Parsed {
		return rec, nil
	}
	days := types.DaysBetween(rec.PlacedOn, rec.Closes)
	rec.DurationAdDays = &days
	return rec, nil
}

// extractSalaries reads salary and funding_amount independently. The range
// from salary takes precedence; funding only fills it when salary had none.
func extractSalaries(rec types.Record, _ Options) (types.Record, error) {
	for _, name := range []string{types.FieldSalary, types.FieldFundingAmount} {
		res, err := salary.Extract(*rec.TextField(name))
		if err != nil {
			return rec, &ContractViolationError{Field: name, Message: "unexpected salary figures", Cause: err}
		}
		if res.Invalid {
			rec.InvalidCodes = rec.InvalidCodes.With(name)
		}
		if res.Found && rec.SalaryMin == nil {
			lo, hi := res.Min, res.Max
			rec.SalaryMin, rec.SalaryMax = &lo, &hi
		}
	}
	return rec, nil
}

// correctCrossField reconciles contract and salary codes:
//
//  1. a funded post with no contract type gets contract "funding"
//  2. any usable salary range clears both salary codes
//  3. a remaining funding_amount code is reported as salary
func correctCrossField(rec types.Record, _ Options) (types.Record, error) {
	codes := rec.InvalidCodes
	if !rec.FundingAmount.Blank() && codes.Has(types.FieldContract) {
		codes = codes.Without(types.FieldContract)
		rec.Contract = types.Text("funding")
	}
	if rec.SalaryMin != nil || rec.SalaryMax != nil {
		codes = codes.Without(types.FieldSalary).Without(types.FieldFundingAmount)
	}
	if codes.Has(types.FieldFundingAmount) {
		codes = codes.Without(types.FieldFundingAmount).With(types.FieldSalary)
	}
	rec.InvalidCodes = codes
	return rec, nil
}

func addMedian(rec types.Record, _ Options) (types.Record, error) {
	if rec.SalaryMin != nil && rec.SalaryMax != nil {
		median := salary.Result{Min: *rec.SalaryMin, Max: *rec.SalaryMax}.Median()
		rec.SalaryMedian = &median
	}
	return rec, nil
}

// addDate picks the advertisement's reference date from its own content,
// never from the clock: placed_on, then closes, then the earliest date
// written in the page text.
func addDate(rec types.Record, opts Options) (types.Record, error) {
	for _, d := range []types.DateValue{rec.PlacedOn, rec.Closes} {
		if d.Parsed {
			t := d.Date
			rec.Date = &t
			return rec, nil
		}
	}
	if t, ok := EarliestDateInText(opts.pageText); ok {
		rec.Date = &t
	}
	return rec, nil
}

func trimText(rec types.Record, _ Options) (types.Record, error) {
	for _, name := range types.KnownFields {
		if field := rec.TextField(name); field != nil {
			*field = field.Trimmed()
		}
		if date := rec.DateField(name); date != nil && !date.Parsed {
			date.Raw = date.Raw.Trimmed()
		}
	}
	if len(rec.Extras) > 0 {
		extras := make([]types.Extra, len(rec.Extras))
		for i, e := range rec.Extras {
			extras[i] = types.Extra{Key: e.Key, Value: e.Value.Trimmed()}
		}
		rec.Extras = extras
	}
	return rec, nil
}
