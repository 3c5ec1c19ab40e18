package types

import (
	"time"
)

// DateLayout is the ISO-8601 calendar date format used in documents.
const DateLayout = "2006-01-02"

// DateValue is a date field: the raw text as extracted and, when parsing
// succeeded, the calendar date (UTC midnight).
type DateValue struct {
	Raw    Value
	Date   time.Time
	Parsed bool
}

// ParsedDate returns a DateValue for a successfully parsed date.
func ParsedDate(raw Value, d time.Time) DateValue {
	return DateValue{
		Raw:    raw,
		Date:   time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Parsed: true,
	}
}

// Present reports whether the field was supplied.
func (d DateValue) Present() bool { return d.Parsed || d.Raw.Present() }

// Interface returns the ISO date when parsed, otherwise the raw value.
func (d DateValue) Interface() any {
	if d.Parsed {
		return d.Date.Format(DateLayout)
	}
	return d.Raw.Interface()
}

// Extra is a field outside the canonical vocabulary, kept under its slug.
type Extra struct {
	Key   string
	Value Value
}

// Record is the cleaned, typed representation of one advertisement.
type Record struct {
	JobID  string `validate:"required"`
	Layout Layout `validate:"required,oneof=legacy enhanced json"`

	Description   Value
	JobTitle      Value
	Employer      Value
	Location      Value
	Salary        Value
	FundingAmount Value
	Hours         Value
	Contract      Value
	PlacedOn      DateValue
	Closes        DateValue
	SubjectArea   Value
	TypeRole      Value
	ExtraLocation Value
	Department    Value
	Region        Value
	Extras        []Extra

	SalaryMin      *int     `validate:"omitempty,gte=8000"`
	SalaryMax      *int     `validate:"omitempty,gte=8000"`
	SalaryMedian   *float64 `validate:"omitempty,gte=8000"`
	DurationAdDays *int
	Date           *time.Time

	UKUniversity *string `validate:"omitempty,min=1"`
	UKPostcode   *string `validate:"omitempty,min=1"`
	InUK         *bool
	NotStudent   *bool

	InvalidCodes InvalidCodes
}

// TextField returns a pointer to the Value backing a canonical text field,
// or nil for date fields and names outside the vocabulary.
func (r *Record) TextField(name string) *Value {
	switch name {
	case FieldDescription:
		return &r.Description
	case FieldJobTitle:
		return &r.JobTitle
	case FieldEmployer:
		return &r.Employer
	case FieldLocation:
		return &r.Location
	case FieldSalary:
		return &r.Salary
	case FieldFundingAmount:
		return &r.FundingAmount
	case FieldHours:
		return &r.Hours
	case FieldContract:
		return &r.Contract
	case FieldSubjectArea:
		return &r.SubjectArea
	case FieldTypeRole:
		return &r.TypeRole
	case FieldExtraLocation:
		return &r.ExtraLocation
	case FieldDepartment:
		return &r.Department
	case FieldRegion:
		return &r.Region
	}
	return nil
}

// DateField returns a pointer to placed_on or closes, nil otherwise.
func (r *Record) DateField(name string) *DateValue {
	switch name {
	case FieldPlacedOn:
		return &r.PlacedOn
	case FieldCloses:
		return &r.Closes
	}
	return nil
}

// Get returns the raw value of any input field, including jobid and extras.
// Date fields return their raw text.
func (r *Record) Get(name string) Value {
	if name == FieldJobID {
		if r.JobID == "" {
			return Value{}
		}
		return Text(r.JobID)
	}
	if v := r.TextField(name); v != nil {
		return *v
	}
	if d := r.DateField(name); d != nil {
		return d.Raw
	}
	for _, e := range r.Extras {
		if e.Key == name {
			return e.Value
		}
	}
	return Value{}
}

// Clone returns a deep copy; pointers to derived values are duplicated.
func (r Record) Clone() Record {
	out := r
	out.Extras = append([]Extra(nil), r.Extras...)
	out.SalaryMin = cloneInt(r.SalaryMin)
	out.SalaryMax = cloneInt(r.SalaryMax)
	out.DurationAdDays = cloneInt(r.DurationAdDays)
	if r.SalaryMedian != nil {
		m := *r.SalaryMedian
		out.SalaryMedian = &m
	}
	if r.Date != nil {
		d := *r.Date
		out.Date = &d
	}
	out.UKUniversity = cloneString(r.UKUniversity)
	out.UKPostcode = cloneString(r.UKPostcode)
	out.InUK = cloneBool(r.InUK)
	out.NotStudent = cloneBool(r.NotStudent)
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
