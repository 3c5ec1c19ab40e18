// Package salary reads pay ranges out of free-text salary and funding fields.
package salary

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/jobad-parser/internal/types"
)

// Floor is the lowest annual figure accepted as a genuine salary. Lower
// amounts are placeholders or malformed entries.
const Floor = 8000

var (
	amountPattern = regexp.MustCompile(`£[0-9]?[0-9][0-9],[0-9]{3}`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// Result is the outcome of reading one field. Invalid means the field should
// be recorded as an invalid code; Found means Min and Max hold a range.
// Both false means the field is plain text with no figures in it.
type Result struct {
	Min     int
	Max     int
	Found   bool
	Invalid bool
}

// Median is the midpoint of the range.
func (r Result) Median() float64 {
	return float64(r.Min+r.Max) / 2
}

// ProgressionError reports a three-figure salary whose trailing progression
// figure is lower than the top of the range. Listings are expected to quote
// the progression point last, so this signals markup the reader does not
// understand.
type ProgressionError struct {
	Amounts []int
}

func (e *ProgressionError) Error() string {
	return fmt.Sprintf("salary progression %d is lower than range maximum %d", e.Amounts[2], e.Amounts[1])
}

// Extract applies the salary rules to a field value:
//
//   - blank, null or "not specified": invalid
//   - no £nn,nnn amounts: invalid if the text has any digit, otherwise nothing
//   - one amount: min = max
//   - two amounts: sorted into min and max
//   - three amounts: the first two form the range, the third is a progression
//     point that must not be lower than the second
//   - more than three amounts: invalid
//
// A minimum below Floor is invalid whatever the count.
func Extract(v types.Value) (Result, error) {
	if v.Blank() {
		return Result{Invalid: true}, nil
	}
	text := strings.Join(strings.Fields(v.String()), " ")

	matches := amountPattern.FindAllString(text, -1)
	amounts := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(strings.NewReplacer("£", "", ",", "").Replace(m))
		if err != nil {
			return Result{}, fmt.Errorf("salary amount %q: %w", m, err)
		}
		amounts = append(amounts, n)
	}

	var bounds []int
	switch len(amounts) {
	case 0:
		return Result{Invalid: digitPattern.MatchString(text)}, nil
	case 1:
		bounds = []int{amounts[0], amounts[0]}
	case 2:
		bounds = []int{amounts[0], amounts[1]}
	case 3:
		if amounts[2] < amounts[1] {
			return Result{}, &ProgressionError{Amounts: amounts}
		}
		bounds = []int{amounts[0], amounts[1]}
	default:
		return Result{Invalid: true}, nil
	}

	sort.Ints(bounds)
	if bounds[0] < Floor {
		return Result{Invalid: true}, nil
	}
	return Result{Min: bounds[0], Max: bounds[1], Found: true}, nil
}
