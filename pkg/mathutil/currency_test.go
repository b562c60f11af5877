package mathutil

import (
	"math"
	"testing"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Binary midpoint rounds up", 1.005, "1.01"},
		{"Half rounds away from zero", 2.675, "2.68"},
		{"Negative half", -1.005, "-1.01"},
		{"Whole amount", 90000, "90000"},
		{"Thirds", 80000.0 / 12.0, "6666.67"},
		{"NaN", math.NaN(), "0"},
		{"Infinity", math.Inf(1), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundMoney(tt.input)
			if result.String() != tt.expected {
				t.Errorf("RoundMoney(%v) = %s, expected %s", tt.input, result.String(), tt.expected)
			}
		})
	}
}

func TestCentsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		cents int64
	}{
		{"Zero", 0, 0},
		{"One cent", 0.01, 1},
		{"Midpoint", 10.005, 1001},
		{"Installment", 6666.666666, 666667},
		{"Negative", -12.34, -1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents := ToCents(tt.input)
			if cents != tt.cents {
				t.Fatalf("ToCents(%v) = %d, expected %d", tt.input, cents, tt.cents)
			}
			back := FromCents(cents)
			expected := RoundMoney(tt.input).InexactFloat64()
			if back != expected {
				t.Errorf("FromCents(%d) = %v, expected %v", cents, back, expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Error("expected 1.5 to be finite")
	}
	if IsFinite(math.NaN()) {
		t.Error("expected NaN to be non-finite")
	}
	if IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Error("expected infinities to be non-finite")
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a         float64
		b         float64
		tolerance float64
		expected  bool
	}{
		{"Exact", 1.5, 1.5, 0, true},
		{"Within a cent", 100.0, 100.005, 0.01, true},
		{"Negative difference", 100.0, 99.995, 0.01, true},
		{"Two cents apart", 100.0, 100.02, 0.01, false},
		{"NaN never matches", math.NaN(), math.NaN(), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tolerance); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tolerance, got, tt.expected)
			}
		})
	}
}

func TestMax(t *testing.T) {
	if Max(-5, 0) != 0 {
		t.Errorf("Max(-5, 0) = %v, expected 0", Max(-5, 0))
	}
	if Max(3, 2) != 3 {
		t.Errorf("Max(3, 2) = %v, expected 3", Max(3, 2))
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Ten percent discount", 100000, 10, 10000},
		{"Twenty percent down", 120000, 20, 24000},
		{"Zero percent", 50000, 0, 0},
		{"Full amount", 50000, 100, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if result != tt.expected {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}
