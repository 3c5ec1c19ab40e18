package cleaning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"5th January 2024", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"21st  March 2023", time.Date(2023, 3, 21, 0, 0, 0, 0, time.UTC)},
		{"2 Sep 2022", time.Date(2022, 9, 2, 0, 0, 0, 0, time.UTC)},
		{"Monday, 3 June 2024", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
		{"14/02/2024", time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024 - 01 - 05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05T00:00:00Z", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05T23:59:00-05:00", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:00:00+0100", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:00:00.123Z", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:00:00", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05T10:00:00-0500", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05T22:30:00-0800", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05 10:00:00+01:00", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"January 5, 2024", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05 10:00:00", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "ASAP", "32 January 2024", "Spring 2024", "March 2024", "2024"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestEarliestDateInText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "earliest of several",
			text:   "Interviews on 12th March 2024.\nApply by 1 March 2024 (posted 2024-02-10).",
			want:   time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "numeric day first",
			text:   "Closing date: 05/03/2024",
			want:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "years before the floor ignored",
			text:   "Founded 1 October 1909. Deadline 30 June 2023.",
			want:   time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name: "only old dates",
			text: "Established 2 May 1998",
		},
		{
			name: "no dates",
			text: "Apply online as soon as possible.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EarliestDateInText(tt.text)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}
