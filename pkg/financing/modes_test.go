package financing

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/iwvelando/financing-sim/pkg/datetime"
	"github.com/iwvelando/financing-sim/pkg/mathutil"
)

func TestCash(t *testing.T) {
	tests := []struct {
		name             string
		price            float64
		discount         float64
		expectedDiscount float64
		expectedFinal    float64
	}{
		{"Ten percent off", 100000, 10, 10000, 90000},
		{"No discount", 250000, 0, 0, 250000},
		{"Fractional discount", 315000, 7.5, 23625, 291375},
		{"Full discount", 80000, 100, 80000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Cash(CashConfig{OriginalPrice: tt.price, DiscountPercent: tt.discount})
			if result.DiscountAmount != tt.expectedDiscount {
				t.Errorf("DiscountAmount = %v, expected %v", result.DiscountAmount, tt.expectedDiscount)
			}
			if result.FinalPrice != tt.expectedFinal {
				t.Errorf("FinalPrice = %v, expected %v", result.FinalPrice, tt.expectedFinal)
			}
			if result.OriginalPrice != tt.price || result.DiscountPercent != tt.discount {
				t.Errorf("inputs not echoed: %+v", result)
			}
		})
	}
}

func TestShortTerm(t *testing.T) {
	tests := []struct {
		name                string
		price               float64
		down                float64
		count               int
		expectedDown        float64
		expectedInstallment float64
		expectedTotal       float64
	}{
		{"Twelve installments", 120000, 20, 12, 24000, 8000, 120000},
		{"No installments", 120000, 20, 0, 24000, 0, 24000},
		{"Negative count treated as none", 120000, 20, -3, 24000, 0, 24000},
		{"Everything down", 90000, 100, 6, 90000, 0, 90000},
		{"No down payment", 60000, 0, 10, 0, 6000, 60000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShortTerm(ShortTermConfig{OriginalPrice: tt.price, DownPercent: tt.down, InstallmentCount: tt.count})
			if result.DownAmount != tt.expectedDown {
				t.Errorf("DownAmount = %v, expected %v", result.DownAmount, tt.expectedDown)
			}
			if result.InstallmentAmount != tt.expectedInstallment {
				t.Errorf("InstallmentAmount = %v, expected %v", result.InstallmentAmount, tt.expectedInstallment)
			}
			if result.TotalPaid != tt.expectedTotal {
				t.Errorf("TotalPaid = %v, expected %v", result.TotalPaid, tt.expectedTotal)
			}
		})
	}
}

func TestFinancedZeroRateIsPlainDivision(t *testing.T) {
	result, err := Financed(FinancedConfig{
		OriginalPrice:     100000,
		DownPercent:       20,
		TermMonths:        12,
		AnnualRatePercent: 0,
		StartDate:         datetime.MustParseDate("2025-01-10"),
	})
	if err != nil {
		t.Fatalf("Financed() unexpected error: %v", err)
	}

	if result.InstallmentAmount != 80000.0/12 {
		t.Errorf("InstallmentAmount = %v, expected %v", result.InstallmentAmount, 80000.0/12)
	}
	if !mathutil.WithinTolerance(result.TotalCost, 100000, 1e-6) {
		t.Errorf("TotalCost = %v, expected 100000", result.TotalCost)
	}
	if result.MonthlyRate != 0 {
		t.Errorf("MonthlyRate = %v, expected 0", result.MonthlyRate)
	}
	if result.DownAmount+result.FinancedBalance != result.OriginalPrice {
		t.Errorf("down %v + balance %v != price %v", result.DownAmount, result.FinancedBalance, result.OriginalPrice)
	}
	if len(result.Schedule) != 12 {
		t.Fatalf("schedule has %d lines, expected 12", len(result.Schedule))
	}
}

func TestFinancedWithBalloons(t *testing.T) {
	result, err := Financed(FinancedConfig{
		OriginalPrice:     100000,
		DownPercent:       20,
		TermMonths:        24,
		AnnualRatePercent: 12,
		IncludeBalloons:   true,
		BalloonAmount:     10000,
		StartDate:         datetime.MustParseDate("2025-01-10"),
	})
	if err != nil {
		t.Fatalf("Financed() unexpected error: %v", err)
	}

	if result.BalloonCount != 2 {
		t.Errorf("BalloonCount = %d, expected 2", result.BalloonCount)
	}
	expectedPV := 10000/1.12 + 10000/(1.12*1.12)
	if math.Abs(result.BalloonsPresentValue-expectedPV) > 1e-6 {
		t.Errorf("BalloonsPresentValue = %v, expected %v", result.BalloonsPresentValue, expectedPV)
	}
	if !mathutil.WithinTolerance(result.InstallmentAmount, 2952.27, 0.005) {
		t.Errorf("InstallmentAmount = %v, expected ~2952.27", result.InstallmentAmount)
	}
	if !mathutil.WithinTolerance(result.TotalCost, 110854.43, 0.005) {
		t.Errorf("TotalCost = %v, expected ~110854.43", result.TotalCost)
	}

	for _, line := range result.Schedule {
		wantBalloon := 0.0
		if line.Index == 12 || line.Index == 24 {
			wantBalloon = 10000
		}
		if line.BalloonAmount != wantBalloon {
			t.Errorf("line %d balloon = %v, expected %v", line.Index, line.BalloonAmount, wantBalloon)
		}
		if line.TotalAmount != line.InstallmentAmount+line.BalloonAmount {
			t.Errorf("line %d total = %v, expected installment + balloon", line.Index, line.TotalAmount)
		}
	}
}

func TestFinancedBalloonsIgnoredUnderOneYear(t *testing.T) {
	withBalloons, err := Financed(FinancedConfig{
		OriginalPrice:     100000,
		DownPercent:       10,
		TermMonths:        11,
		AnnualRatePercent: 8,
		IncludeBalloons:   true,
		BalloonAmount:     20000,
		StartDate:         datetime.MustParseDate("2025-01-10"),
	})
	if err != nil {
		t.Fatalf("Financed() unexpected error: %v", err)
	}
	without, err := Financed(FinancedConfig{
		OriginalPrice:     100000,
		DownPercent:       10,
		TermMonths:        11,
		AnnualRatePercent: 8,
		StartDate:         datetime.MustParseDate("2025-01-10"),
	})
	if err != nil {
		t.Fatalf("Financed() unexpected error: %v", err)
	}

	if withBalloons.BalloonCount != 0 {
		t.Errorf("BalloonCount = %d, expected 0", withBalloons.BalloonCount)
	}
	if withBalloons.InstallmentAmount != without.InstallmentAmount {
		t.Errorf("installment with balloons %v differs from %v", withBalloons.InstallmentAmount, without.InstallmentAmount)
	}
	if withBalloons.TotalCost != without.TotalCost {
		t.Errorf("total with balloons %v differs from %v", withBalloons.TotalCost, without.TotalCost)
	}
	for _, line := range withBalloons.Schedule {
		if line.BalloonAmount != 0 {
			t.Errorf("line %d carries balloon %v", line.Index, line.BalloonAmount)
		}
	}
}

func TestFinancedBalloonsExceedingBalance(t *testing.T) {
	result, err := Financed(FinancedConfig{
		OriginalPrice:   100000,
		DownPercent:     90,
		TermMonths:      36,
		IncludeBalloons: true,
		BalloonAmount:   50000,
		StartDate:       datetime.MustParseDate("2025-01-10"),
	})
	if err != nil {
		t.Fatalf("Financed() unexpected error: %v", err)
	}

	if result.InstallmentAmount != 0 {
		t.Errorf("InstallmentAmount = %v, expected 0 when balloons cover the balance", result.InstallmentAmount)
	}
	if result.TotalCost != 90000+150000 {
		t.Errorf("TotalCost = %v, expected 240000", result.TotalCost)
	}
}

func TestFinancedTotalCostIndependentOfSchedule(t *testing.T) {
	configs := []FinancedConfig{
		{OriginalPrice: 500000, DownPercent: 20, TermMonths: 360, AnnualRatePercent: 10},
		{OriginalPrice: 500000, DownPercent: 30, TermMonths: 120, AnnualRatePercent: 9.5, IncludeBalloons: true, BalloonAmount: 15000},
		{OriginalPrice: 320000, DownPercent: 15, TermMonths: 25, AnnualRatePercent: 0, IncludeBalloons: true, BalloonAmount: 5000},
	}

	for _, cfg := range configs {
		cfg.StartDate = datetime.MustParseDate("2026-02-01")
		result, err := Financed(cfg)
		if err != nil {
			t.Fatalf("Financed(%+v) unexpected error: %v", cfg, err)
		}

		expected := result.DownAmount + result.InstallmentAmount*float64(result.TermMonths) +
			result.BalloonAmount*float64(result.BalloonCount)
		if result.TotalCost != expected {
			t.Errorf("TotalCost = %v, expected %v", result.TotalCost, expected)
		}

		if len(result.Schedule) != 24 {
			t.Fatalf("schedule has %d lines, expected 24", len(result.Schedule))
		}
		scheduled := 0.0
		for _, line := range result.Schedule {
			scheduled += line.TotalAmount
		}
		if scheduled >= result.TotalCost-result.DownAmount {
			t.Errorf("schedule sum %v should be below financed cost %v", scheduled, result.TotalCost-result.DownAmount)
		}
	}
}

func TestFinancedInvalidTerm(t *testing.T) {
	for _, term := range []int{0, -12} {
		_, err := Financed(FinancedConfig{OriginalPrice: 100000, DownPercent: 20, TermMonths: term, AnnualRatePercent: 10})
		if !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("Financed(term=%d) error = %v, expected ErrInvalidTerm", term, err)
		}
	}
}

func TestModeCalculatorsAreDeterministic(t *testing.T) {
	cfg := FinancedConfig{
		OriginalPrice:     437250.55,
		DownPercent:       17.3,
		TermMonths:        180,
		AnnualRatePercent: 11.25,
		IncludeBalloons:   true,
		BalloonAmount:     12345.67,
		StartDate:         datetime.MustParseDate("2025-08-31"),
	}

	first, err := Financed(cfg)
	if err != nil {
		t.Fatalf("Financed() unexpected error: %v", err)
	}
	second, err := Financed(cfg)
	if err != nil {
		t.Fatalf("Financed() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Financed() returned different results for identical inputs")
	}

	if Cash(CashConfig{OriginalPrice: 1e6 / 3, DiscountPercent: 3.3}) != Cash(CashConfig{OriginalPrice: 1e6 / 3, DiscountPercent: 3.3}) {
		t.Error("Cash() returned different results for identical inputs")
	}
	if ShortTerm(ShortTermConfig{OriginalPrice: 1e6 / 7, DownPercent: 12.5, InstallmentCount: 9}) !=
		ShortTerm(ShortTermConfig{OriginalPrice: 1e6 / 7, DownPercent: 12.5, InstallmentCount: 9}) {
		t.Error("ShortTerm() returned different results for identical inputs")
	}
}

func TestSimulateDispatch(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ModeConfig
		expected Mode
		paid     float64
	}{
		{"Cash", CashConfig{OriginalPrice: 100000, DiscountPercent: 10}, ModeCash, 90000},
		{"Short term", ShortTermConfig{OriginalPrice: 120000, DownPercent: 20, InstallmentCount: 12}, ModeShortTerm, 120000},
		{"Financed", FinancedConfig{OriginalPrice: 100000, DownPercent: 100, TermMonths: 12}, ModeFinanced, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Simulate(tt.cfg)
			if err != nil {
				t.Fatalf("Simulate() unexpected error: %v", err)
			}
			if result.Mode() != tt.expected {
				t.Errorf("Mode() = %s, expected %s", result.Mode(), tt.expected)
			}
			if result.AmountPaid() != tt.paid {
				t.Errorf("AmountPaid() = %v, expected %v", result.AmountPaid(), tt.paid)
			}
			if result.ListPrice() != 100000 && result.ListPrice() != 120000 {
				t.Errorf("ListPrice() = %v", result.ListPrice())
			}
		})
	}
}

type bogusConfig struct{}

func (bogusConfig) Mode() Mode { return "barter" }

func TestSimulateUnknownMode(t *testing.T) {
	if _, err := Simulate(bogusConfig{}); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Simulate() error = %v, expected ErrUnknownMode", err)
	}
	if _, err := Simulate(FinancedConfig{OriginalPrice: 1, TermMonths: 0}); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("Simulate() error = %v, expected ErrInvalidTerm", err)
	}
}

func TestFinancedExtremeInputsStayFinite(t *testing.T) {
	tests := []struct {
		name string
		cfg  FinancedConfig
	}{
		{"Very long term", FinancedConfig{OriginalPrice: 500000, DownPercent: 20, TermMonths: 100000, AnnualRatePercent: 12}},
		{"Huge rate", FinancedConfig{OriginalPrice: 500000, DownPercent: 20, TermMonths: 360, AnnualRatePercent: 1e60}},
		{"Huge rate with balloons", FinancedConfig{OriginalPrice: 500000, DownPercent: 20, TermMonths: 360, AnnualRatePercent: 1e60, IncludeBalloons: true, BalloonAmount: 10000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Financed(tt.cfg)
			if err != nil {
				t.Fatalf("Financed() unexpected error: %v", err)
			}
			if !mathutil.IsFinite(result.InstallmentAmount) || !mathutil.IsFinite(result.TotalCost) {
				t.Errorf("Financed() installment = %v, total = %v, expected finite values", result.InstallmentAmount, result.TotalCost)
			}
			if result.InstallmentAmount <= 0 {
				t.Errorf("InstallmentAmount = %v, expected a positive payment", result.InstallmentAmount)
			}
		})
	}
}

func TestSimulateRejectsOverflow(t *testing.T) {
	tests := []struct {
		name string
		cfg  ModeConfig
	}{
		{"Cash discount overflow", CashConfig{OriginalPrice: 1e308, DiscountPercent: 200}},
		{"Short-term down payment overflow", ShortTermConfig{OriginalPrice: 1e308, DownPercent: 300, InstallmentCount: 2}},
		{"Financed total overflow", FinancedConfig{OriginalPrice: 1e308, DownPercent: 50, TermMonths: 360, AnnualRatePercent: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Simulate(tt.cfg)
			if !errors.Is(err, ErrNotFinite) {
				t.Errorf("Simulate() = %v, %v, expected ErrNotFinite", result, err)
			}
		})
	}
}
