// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobad-parser/internal/pipeline"
	"github.com/jonathan/jobad-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-fills s with spaces to n runes. Width verbs in fmt count bytes,
// which misaligns pound signs.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// PrintFieldMapping outputs the raw fields found by extraction, in the
// order they were found.
func (p *Printer) PrintFieldMapping(jobID string, m *types.FieldMapping) {
	if m == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Job ID:  %s\n", jobID)
	fmt.Fprintf(&sb, "Layout:  %s\n", m.Layout)
	fmt.Fprintf(&sb, "Fields:  %d\n", m.Len())
	sb.WriteString("\n")
	for _, key := range m.Keys() {
		fmt.Fprintf(&sb, "%-15s %s\n", key+":", describeValue(m.Get(key)))
	}

	p.printBox("EXTRACTED FIELDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecord outputs a human-readable summary of a cleaned record.
func (p *Printer) PrintRecord(rec *types.Record) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Job ID:    %s (%s)\n", rec.JobID, rec.Layout)
	fmt.Fprintf(&sb, "Title:     %s\n", describeValue(rec.JobTitle))
	fmt.Fprintf(&sb, "Employer:  %s\n", describeValue(rec.Employer))
	fmt.Fprintf(&sb, "Location:  %s\n", describeValue(rec.Location))
	if rec.SalaryMin != nil && rec.SalaryMax != nil {
		fmt.Fprintf(&sb, "Salary:    £%d - £%d (median £%.0f)\n", *rec.SalaryMin, *rec.SalaryMax, *rec.SalaryMedian)
	} else {
		fmt.Fprintf(&sb, "Salary:    %s\n", describeValue(rec.Salary))
	}
	if rec.PlacedOn.Parsed || rec.Closes.Parsed {
		fmt.Fprintf(&sb, "Dates:     %s → %s", describeDate(rec.PlacedOn), describeDate(rec.Closes))
		if rec.DurationAdDays != nil {
			fmt.Fprintf(&sb, " (%d days)", *rec.DurationAdDays)
		}
		sb.WriteString("\n")
	}
	if rec.UKUniversity != nil {
		fmt.Fprintf(&sb, "University: %s", *rec.UKUniversity)
		if rec.UKPostcode != nil {
			fmt.Fprintf(&sb, " [%s]", *rec.UKPostcode)
		}
		sb.WriteString("\n")
	}

	if subjects := rec.SubjectArea.Items(); len(subjects) > 0 {
		sb.WriteString("\nSubject Areas:\n")
		count := min(len(subjects), maxItemsToShow)
		for i := 0; i < count; i++ {
			fmt.Fprintf(&sb, "  • %s\n", subjects[i])
		}
		if len(subjects) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(subjects)-maxItemsToShow)
		}
	}

	sb.WriteString("\n")
	if codes := rec.InvalidCodes.Sorted(); len(codes) > 0 {
		fmt.Fprintf(&sb, "Invalid:   %s\n", strings.Join(codes, ", "))
	} else {
		sb.WriteString("Invalid:   none\n")
	}

	p.printBox("CLEANED RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the totals of a batch run and lists the failed
// documents.
func (p *Printer) PrintBatchSummary(summary pipeline.Summary, results []pipeline.Result) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run:      %s\n", summary.RunID)
	fmt.Fprintf(&sb, "Total:    %d\n", summary.Total)
	fmt.Fprintf(&sb, "Parsed:   %d\n", summary.Parsed)
	fmt.Fprintf(&sb, "Flagged:  %d\n", summary.Flagged)
	fmt.Fprintf(&sb, "Failed:   %d\n", summary.Failed)

	var failed []pipeline.Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(failed), maxItemsToShow)
		for i := 0; i < count; i++ {
			fmt.Fprintf(&sb, "  • %s: %v\n", failed[i].JobID, failed[i].Err)
		}
		if len(failed) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(failed)-maxItemsToShow)
		}
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func describeValue(v types.Value) string {
	switch {
	case !v.Present():
		return "(absent)"
	case v.IsNull():
		return "(null)"
	case v.IsList():
		return "[" + strings.Join(v.Items(), ", ") + "]"
	}
	s := strings.Join(strings.Fields(v.String()), " ")
	if s == "" {
		return `""`
	}
	return s
}

func describeDate(d types.DateValue) string {
	if d.Parsed {
		return d.Date.Format(types.DateLayout)
	}
	return "?"
}
