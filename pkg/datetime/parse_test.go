package datetime

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestMustParseDate(t *testing.T) {
	got := MustParseDate("2025-01-15")
	want := civil.Date{Year: 2025, Month: time.January, Day: 15}
	if got != want {
		t.Errorf("MustParseDate() = %v, expected %v", got, want)
	}
}

func TestMustParseDatePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseDate to panic with invalid date")
		}
	}()

	MustParseDate("invalid-date")
}

func TestParseDate(t *testing.T) {
	fixed := time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Explicit date", "2025-06-30", "2025-06-30", false},
		{"Surrounding whitespace", "  2025-06-30 ", "2025-06-30", false},
		{"Empty uses fallback", "", "2026-03-10", false},
		{"Month only is rejected", "2025-06", "", true},
		{"Garbage is rejected", "tomorrow", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, fixed)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if Format(got) != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, Format(got), tt.expected)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{"One month", "2025-01-15", 1, "2025-02-15"},
		{"Year rollover", "2025-12-05", 1, "2026-01-05"},
		{"Twelve months", "2025-03-01", 12, "2026-03-01"},
		{"Twenty four months", "2025-03-01", 24, "2027-03-01"},
		{"Month end overflow", "2025-01-31", 1, "2025-03-03"},
		{"Leap year overflow", "2024-01-31", 1, "2024-03-02"},
		{"Zero months", "2025-07-20", 0, "2025-07-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(MustParseDate(tt.date), tt.months)
			if Format(got) != tt.expected {
				t.Errorf("AddMonths(%s, %d) = %s, expected %s", tt.date, tt.months, Format(got), tt.expected)
			}
		})
	}
}
