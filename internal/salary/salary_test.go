package salary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobad-parser/internal/types"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    types.Value
		expected Result
	}{
		{"single amount", types.Text("£37,394"), Result{Min: 37394, Max: 37394, Found: true}},
		{"range", types.Text("£30,000 - £35,000"), Result{Min: 30000, Max: 35000, Found: true}},
		{"reversed range", types.Text("£35,000 to £30,000"), Result{Min: 30000, Max: 35000, Found: true}},
		{"six figures", types.Text("£100,000 - £120,000 per annum"), Result{Min: 100000, Max: 120000, Found: true}},
		{
			"progression point ignored",
			types.Text("£20,000 - £25,000 - £30,000 (progression)"),
			Result{Min: 20000, Max: 25000, Found: true},
		},
		{"progression equal to max", types.Text("£20,000 - £25,000 rising to £25,000"), Result{Min: 20000, Max: 25000, Found: true}},
		{"text only", types.Text("Competitive salary"), Result{}},
		{"below floor", types.Text("£5,000"), Result{Invalid: true}},
		{"digits without currency pattern", types.Text("Salary: negotiable, approx 40k"), Result{Invalid: true}},
		{"too many amounts", types.Text("£20,000 £21,000 £22,000 £23,000"), Result{Invalid: true}},
		{"not specified", types.Text(" Not specified "), Result{Invalid: true}},
		{"empty", types.Text(""), Result{Invalid: true}},
		{"null", types.Null, Result{Invalid: true}},
		{"absent", types.Value{}, Result{Invalid: true}},
		{"collapses whitespace", types.Text("£30,000\n\t -   £32,500"), Result{Min: 30000, Max: 32500, Found: true}},
		{"list joined", types.List("£30,000", "£31,000"), Result{Min: 30000, Max: 31000, Found: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtract_ProgressionBelowMaximum(t *testing.T) {
	_, err := Extract(types.Text("£20,000 - £30,000 progression to £25,000"))
	require.Error(t, err)

	var progression *ProgressionError
	require.True(t, errors.As(err, &progression))
	assert.Equal(t, []int{20000, 30000, 25000}, progression.Amounts)
	assert.Contains(t, err.Error(), "25000")
}

func TestResult_Median(t *testing.T) {
	assert.Equal(t, 32500.0, Result{Min: 30000, Max: 35000}.Median())
	assert.Equal(t, 30000.5, Result{Min: 30000, Max: 30001}.Median())
}
