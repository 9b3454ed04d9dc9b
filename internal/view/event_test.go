package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name string
		in   DateTimeZone
		want time.Time
	}{
		{
			name: "naive seconds precision",
			in:   DateTimeZone{DateTime: "2024-06-10T09:00:00", TimeZone: "UTC"},
			want: time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "graph fractional seconds",
			in:   DateTimeZone{DateTime: "2024-06-10T09:30:00.0000000", TimeZone: "UTC"},
			want: time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "minute precision",
			in:   DateTimeZone{DateTime: "2024-06-10T09:00", TimeZone: "UTC"},
			want: time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "existing UTC marker not doubled",
			in:   DateTimeZone{DateTime: "2024-06-10T09:00:00Z", TimeZone: "UTC"},
			want: time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "upstream zone marker ignored",
			in:   DateTimeZone{DateTime: "2024-06-10T09:00:00", TimeZone: "Pacific Standard Time"},
			want: time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInstant(tt.in)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseInstant_Malformed(t *testing.T) {
	got := ParseInstant(DateTimeZone{DateTime: "not-a-date"})
	assert.True(t, got.IsZero())
}

func TestDisplaySubject(t *testing.T) {
	assert.Equal(t, "Standup", Event{Subject: "Standup"}.DisplaySubject())
	assert.Equal(t, PlaceholderSubject, Event{}.DisplaySubject())
}
