package db

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobad-parser/internal/types"
)

func TestRunStatusConstants(t *testing.T) {
	for _, status := range []string{RunStatusRunning, RunStatusCompleted, RunStatusFailed} {
		assert.NotEmpty(t, status, "status constant should not be empty")
	}
}

func TestNewRecordRow(t *testing.T) {
	lo, hi, median := 30000, 35000, 32500.0
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	rec := &types.Record{
		JobID:        "ABC123",
		Layout:       types.LayoutEnhanced,
		JobTitle:     types.Text("Lecturer"),
		SalaryMin:    &lo,
		SalaryMax:    &hi,
		SalaryMedian: &median,
		Date:         &date,
		InvalidCodes: types.NewInvalidCodes(types.FieldHours, types.FieldContract),
	}
	runID := uuid.New()

	row, err := newRecordRow(runID, rec)
	require.NoError(t, err)

	assert.Equal(t, "ABC123", row.JobID)
	assert.Equal(t, runID, row.RunID)
	assert.Equal(t, "enhanced", row.Layout)
	assert.Equal(t, []string{types.FieldContract, types.FieldHours}, row.InvalidCodes)
	assert.Equal(t, &lo, row.SalaryMin)
	assert.Equal(t, &date, row.AdDate)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(row.Document, &doc))
	assert.Equal(t, "Lecturer", doc["job_title"])
	assert.Equal(t, 32500.0, doc["salary_median"])
}

func TestNewRecordRow_EmptyCodes(t *testing.T) {
	row, err := newRecordRow(uuid.New(), &types.Record{JobID: "A1", Layout: types.LayoutLegacy})
	require.NoError(t, err)
	assert.NotNil(t, row.InvalidCodes)
	assert.Empty(t, row.InvalidCodes)
	assert.Nil(t, row.SalaryMin)
	assert.Nil(t, row.AdDate)
}

func TestNewRecordRow_RequiresJobID(t *testing.T) {
	_, err := newRecordRow(uuid.New(), nil)
	assert.Error(t, err)

	_, err = newRecordRow(uuid.New(), &types.Record{Layout: types.LayoutLegacy})
	assert.Error(t, err)
}

func TestIsNoRows(t *testing.T) {
	assert.False(t, isNoRows(nil))
	assert.False(t, isNoRows(fmt.Errorf("boom")))
}
