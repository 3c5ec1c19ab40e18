package cleaning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobad-parser/internal/matching"
	"github.com/jonathan/jobad-parser/internal/salary"
	"github.com/jonathan/jobad-parser/internal/types"
)

func completeMapping() *types.FieldMapping {
	m := types.NewFieldMapping(types.LayoutLegacy)
	m.Set(types.FieldJobID, types.Text("ABC123"))
	m.Set(types.FieldDescription, types.Text("We are looking for a lecturer in experimental physics."))
	m.Set(types.FieldEmployer, types.Text("University of Leeds"))
	m.Set(types.FieldJobTitle, types.Text("  Lecturer in Physics  "))
	m.Set(types.FieldLocation, types.Text("Leeds"))
	m.Set(types.FieldSalary, types.Text("£30,000 to £35,000 per annum"))
	m.Set(types.FieldHours, types.Text("Full Time"))
	m.Set(types.FieldContract, types.Text("Permanent"))
	m.Set(types.FieldPlacedOn, types.Text("5th January 2024"))
	m.Set(types.FieldCloses, types.Text("4th February 2024"))
	m.Set(types.FieldSubjectArea, types.List("Physics"))
	m.Set("extra_job_ref", types.Text(" JR-1 "))
	return m
}

func TestClean_CompleteAdvertisement(t *testing.T) {
	rec, err := Clean(completeMapping(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "ABC123", rec.JobID)
	assert.Equal(t, types.LayoutLegacy, rec.Layout)
	assert.True(t, rec.InvalidCodes.Empty(), "codes: %v", rec.InvalidCodes.Sorted())
	assert.Equal(t, "Lecturer in Physics", rec.JobTitle.String())

	require.NotNil(t, rec.SalaryMin)
	assert.Equal(t, 30000, *rec.SalaryMin)
	assert.Equal(t, 35000, *rec.SalaryMax)
	assert.Equal(t, 32500.0, *rec.SalaryMedian)

	require.NotNil(t, rec.DurationAdDays)
	assert.Equal(t, 30, *rec.DurationAdDays)
	require.NotNil(t, rec.Date)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *rec.Date)

	// Funding was not supplied and is filled in as empty text.
	assert.True(t, rec.FundingAmount.IsText())
	assert.Equal(t, "", rec.FundingAmount.String())

	require.Len(t, rec.Extras, 1)
	assert.Equal(t, types.Extra{Key: "extra_job_ref", Value: types.Text("JR-1")}, rec.Extras[0])

	assert.Nil(t, rec.UKUniversity)
	assert.Nil(t, rec.InUK)
	assert.Nil(t, rec.NotStudent)
}

func TestClean_MissingFieldsAreTagged(t *testing.T) {
	m := types.NewFieldMapping(types.LayoutEnhanced)
	m.Set(types.FieldJobID, types.Text("X1"))
	m.Set(types.FieldEmployer, types.Null)
	m.Set(types.FieldHours, types.Text("Not specified"))

	rec, err := Clean(m, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		types.FieldCloses,
		types.FieldContract,
		types.FieldDescription,
		types.FieldEmployer,
		types.FieldHours,
		types.FieldJobTitle,
		types.FieldLocation,
		types.FieldPlacedOn,
		types.FieldSalary,
		types.FieldSubjectArea,
	}, rec.InvalidCodes.Sorted())
	assert.True(t, rec.Employer.IsNull())
	assert.Nil(t, rec.SalaryMin)
	assert.Nil(t, rec.DurationAdDays)
	assert.Nil(t, rec.Date)
}

func TestClean_MissingJobID(t *testing.T) {
	for _, id := range []types.Value{{}, types.Null, types.Text("   ")} {
		m := completeMapping()
		m.Set(types.FieldJobID, id)

		_, err := Clean(m, DefaultOptions())
		var cv *ContractViolationError
		require.ErrorAs(t, err, &cv)
		assert.Equal(t, types.FieldJobID, cv.Field)
	}

	_, err := Clean(nil, DefaultOptions())
	assert.Error(t, err)
}

func TestClean_Dates(t *testing.T) {
	tests := []struct {
		name         string
		placedOn     types.Value
		closes       types.Value
		pageText     string
		wantCodes    []string
		wantDuration *int
		wantDate     *time.Time
	}{
		{
			name:         "negative duration is kept",
			placedOn:     types.Text("10 February 2024"),
			closes:       types.Text("1 February 2024"),
			wantDuration: intPtr(-9),
			wantDate:     datePtr(2024, 2, 10),
		},
		{
			name:      "unreadable placed_on falls back to closes for date",
			placedOn:  types.Text("as soon as possible"),
			closes:    types.Text("2024-03-01"),
			wantCodes: []string{types.FieldPlacedOn},
			wantDate:  datePtr(2024, 3, 1),
		},
		{
			name:      "list values cannot be dates",
			placedOn:  types.List("1 March 2024"),
			closes:    types.Null,
			wantCodes: []string{types.FieldCloses, types.FieldPlacedOn},
		},
		{
			name:         "iso timestamps keep the wall date",
			placedOn:     types.Text("2024-03-01T23:30:00+01:00"),
			closes:       types.Text("Friday 15 March 2024"),
			wantDuration: intPtr(14),
			wantDate:     datePtr(2024, 3, 1),
		},
		{
			name:      "page text supplies the date when neither field parses",
			placedOn:  types.Text("TBC"),
			closes:    types.Null,
			pageText:  "Founded 1 May 1998\nInterviews 20th March 2024\nPosted 2 March 2024",
			wantCodes: []string{types.FieldCloses, types.FieldPlacedOn},
			wantDate:  datePtr(2024, 3, 2),
		},
		{
			name:         "page text is ignored when placed_on parses",
			placedOn:     types.Text("10 March 2024"),
			closes:       types.Text("2024-04-09"),
			pageText:     "Posted 2 March 2024",
			wantDuration: intPtr(30),
			wantDate:     datePtr(2024, 3, 10),
		},
		{
			name:      "page text dates before 2014 are ignored",
			placedOn:  types.Null,
			closes:    types.Null,
			pageText:  "Established 2 May 1998",
			wantCodes: []string{types.FieldCloses, types.FieldPlacedOn},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := completeMapping()
			m.Set(types.FieldPlacedOn, tt.placedOn)
			m.Set(types.FieldCloses, tt.closes)
			m.PageText = tt.pageText

			rec, err := Clean(m, DefaultOptions())
			require.NoError(t, err)

			assert.Equal(t, tt.wantCodes, rec.InvalidCodes.Sorted())
			assert.Equal(t, tt.wantDuration, rec.DurationAdDays)
			assert.Equal(t, tt.wantDate, rec.Date)
		})
	}
}

func TestClean_UnparsedDateKeepsRawText(t *testing.T) {
	m := completeMapping()
	m.Set(types.FieldCloses, types.Text(" until filled "))

	rec, err := Clean(m, DefaultOptions())
	require.NoError(t, err)

	assert.False(t, rec.Closes.Parsed)
	assert.Equal(t, "until filled", rec.Closes.Raw.String())
	assert.True(t, rec.InvalidCodes.Has(types.FieldCloses))
}

func TestClean_Salaries(t *testing.T) {
	tests := []struct {
		name         string
		salary       types.Value
		funding      types.Value
		contract     types.Value
		wantMin      *int
		wantMax      *int
		wantCodes    []string
		wantContract string
	}{
		{
			name:         "funded post without contract becomes funding",
			salary:       types.Value{},
			funding:      types.Text("£1,000"),
			contract:     types.Value{},
			wantCodes:    []string{types.FieldSalary},
			wantContract: "funding",
		},
		{
			name:         "funding fills the range when salary has no figures",
			salary:       types.Text("Competitive"),
			funding:      types.Text("£15,000 per year"),
			contract:     types.Text("Fixed Term"),
			wantMin:      intPtr(15000),
			wantMax:      intPtr(15000),
			wantContract: "Fixed Term",
		},
		{
			name:         "salary range wins over funding",
			salary:       types.Text("£40,000 - £32,000"),
			funding:      types.Text("£20,000"),
			contract:     types.Text("Permanent"),
			wantMin:      intPtr(32000),
			wantMax:      intPtr(40000),
			wantContract: "Permanent",
		},
		{
			name:         "range clears a bad funding figure",
			salary:       types.Text("£30,000"),
			funding:      types.Text("up to 3 years"),
			contract:     types.Text("Permanent"),
			wantMin:      intPtr(30000),
			wantMax:      intPtr(30000),
			wantContract: "Permanent",
		},
		{
			name:         "too many figures",
			salary:       types.Text("£30,000 £31,000 £32,000 £33,000"),
			funding:      types.Value{},
			contract:     types.Text("Permanent"),
			wantCodes:    []string{types.FieldSalary},
			wantContract: "Permanent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := completeMapping()
			m.Set(types.FieldSalary, tt.salary)
			m.Set(types.FieldFundingAmount, tt.funding)
			m.Set(types.FieldContract, tt.contract)

			rec, err := Clean(m, DefaultOptions())
			require.NoError(t, err)

			assert.Equal(t, tt.wantMin, rec.SalaryMin)
			assert.Equal(t, tt.wantMax, rec.SalaryMax)
			assert.Equal(t, tt.wantCodes, rec.InvalidCodes.Sorted())
			assert.Equal(t, tt.wantContract, rec.Contract.String())
			if tt.wantMin != nil {
				require.NotNil(t, rec.SalaryMedian)
				assert.Equal(t, float64(*tt.wantMin+*tt.wantMax)/2, *rec.SalaryMedian)
			} else {
				assert.Nil(t, rec.SalaryMedian)
			}
		})
	}
}

func TestClean_SalaryProgressionError(t *testing.T) {
	m := completeMapping()
	m.Set(types.FieldSalary, types.Text("£30,000 - £35,000 rising to £20,000"))

	_, err := Clean(m, DefaultOptions())
	var cv *ContractViolationError
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, types.FieldSalary, cv.Field)

	var pe *salary.ProgressionError
	assert.True(t, errors.As(err, &pe))
}

func TestClean_DropsDerivedKeys(t *testing.T) {
	m := completeMapping()
	m.Set(types.FieldSalaryMin, types.Text("1"))
	m.Set(types.FieldInvalidCode, types.List(types.FieldJobTitle))

	rec, err := Clean(m, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 30000, *rec.SalaryMin)
	assert.True(t, rec.InvalidCodes.Empty())
	assert.Len(t, rec.Extras, 1)
}

func TestClean_Idempotent(t *testing.T) {
	m := completeMapping()
	m.Set(types.FieldContract, types.Value{})
	m.Set(types.FieldFundingAmount, types.Text("£1,000"))
	m.Set(types.FieldCloses, types.Text("whenever"))

	first, err := Clean(m, DefaultOptions())
	require.NoError(t, err)

	again := types.NewFieldMapping(first.Layout)
	again.Set(types.FieldJobID, types.Text(first.JobID))
	for _, name := range types.KnownFields {
		if v := first.Get(name); v.Present() {
			again.Set(name, v)
		}
	}
	for _, e := range first.Extras {
		again.Set(e.Key, e.Value)
	}

	second, err := Clean(again, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first.Document(), second.Document())
}

func TestClean_Enrichment(t *testing.T) {
	dir := matching.NewDirectory(
		[]string{"University of Leeds", "Royal Holloway"},
		[]matching.Provider{
			{Name: "University of Leeds", Postcode: "LS2 9JT"},
			{Name: "Royal Holloway", Postcode: "TW20 0EX"},
		},
	)
	opts := DefaultOptions()
	opts.Enrich = true
	opts.Directory = dir

	tests := []struct {
		name           string
		employer       types.Value
		extraLocation  types.Value
		typeRole       types.Value
		wantUniversity *string
		wantPostcode   *string
		wantInUK       *bool
		wantNotStudent *bool
	}{
		{
			name:           "keyword employer",
			employer:       types.Text("University of Leeds - Faculty of Engineering"),
			extraLocation:  types.List("Northern England"),
			typeRole:       types.List("Academic or Research", "Lecturers"),
			wantUniversity: strPtr("University of Leeds - Faculty of Engineering"),
			wantInUK:       boolPtr(true),
			wantNotStudent: boolPtr(true),
		},
		{
			name:           "matched against directory",
			employer:       types.Text("Royal Holloway, London"),
			extraLocation:  types.List("Overseas"),
			typeRole:       types.List("PhD"),
			wantUniversity: strPtr("Royal Holloway"),
			wantPostcode:   strPtr("TW20 0EX"),
			wantInUK:       boolPtr(false),
			wantNotStudent: boolPtr(false),
		},
		{
			name:     "unknown employer and missing lists",
			employer: types.Text("Acme Widgets Ltd"),
		},
		{
			name:          "null lists stay unknown",
			employer:      types.Text("Acme Widgets Ltd"),
			extraLocation: types.Null,
			typeRole:      types.Null,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := completeMapping()
			m.Set(types.FieldEmployer, tt.employer)
			if tt.extraLocation.Present() {
				m.Set(types.FieldExtraLocation, tt.extraLocation)
			}
			if tt.typeRole.Present() {
				m.Set(types.FieldTypeRole, tt.typeRole)
			}

			rec, err := Clean(m, opts)
			require.NoError(t, err)

			assert.Equal(t, tt.wantUniversity, rec.UKUniversity)
			assert.Equal(t, tt.wantPostcode, rec.UKPostcode)
			assert.Equal(t, tt.wantInUK, rec.InUK)
			assert.Equal(t, tt.wantNotStudent, rec.NotStudent)
		})
	}
}

func TestClean_EnrichmentWithoutDirectory(t *testing.T) {
	opts := Options{Enrich: true}
	rec, err := Clean(completeMapping(), opts)
	require.NoError(t, err)

	require.NotNil(t, rec.UKUniversity)
	assert.Equal(t, "University of Leeds", *rec.UKUniversity)
	assert.Nil(t, rec.UKPostcode)
}

func TestClean_EnrichmentSkipsBlankPostcode(t *testing.T) {
	dir := matching.NewDirectory(
		[]string{"University of Leeds"},
		[]matching.Provider{{Name: "University of Leeds", Postcode: ""}},
	)
	opts := Options{Enrich: true, Directory: dir}

	rec, err := Clean(completeMapping(), opts)
	require.NoError(t, err)

	require.NotNil(t, rec.UKUniversity)
	assert.Equal(t, "University of Leeds", *rec.UKUniversity)
	assert.Nil(t, rec.UKPostcode)
	assert.NotContains(t, rec.Document(), types.FieldUKPostcode)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
