package core

import (
	"strings"
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	aest := time.FixedZone("AEST", 10*60*60)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, aest)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date", "2025-03-14", time.Date(2025, 3, 14, 0, 0, 0, 0, aest)},
		{"rfc3339", "2025-03-14T17:30:00Z", time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)},
		{"rfc3339 millis", "2025-03-14T17:30:00.250Z", time.Date(2025, 3, 14, 17, 30, 0, 250e6, time.UTC)},
		{"days", "+3d", now.AddDate(0, 0, 3)},
		{"hours", "+4h", now.Add(4 * time.Hour)},
		{"minutes", "+30m", now.Add(30 * time.Minute)},
		{"zero offset", "+0d", now},
		{"surrounding space", "  +1d ", now.AddDate(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.input, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDueDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDueDate_Invalid(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"", "must not be empty"},
		{"tomorrow", "unsupported due date"},
		{"2025-13-01", "unsupported due date"},
		{"+3w", "unsupported due date offset unit"},
		{"+d", "invalid due date offset"},
		{"+xd", "invalid due date offset"},
		{"+-2d", "invalid due date offset"},
	}
	for _, tt := range tests {
		_, err := ParseDueDate(tt.input, now)
		if err == nil {
			t.Errorf("ParseDueDate(%q): expected error", tt.input)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantMsg) {
			t.Errorf("ParseDueDate(%q) error %q should contain %q", tt.input, err.Error(), tt.wantMsg)
		}
	}
}
