// Package financing computes and compares the ways a buyer may pay for a
// property unit: cash with a discount, short-term interest-free installments,
// and long-term Price-table financing with optional annual balloons.
//
// Every function in this package is pure and safe for concurrent use.
package financing

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/iwvelando/financing-sim/pkg/mathutil"
)

// ModeConfig is the input of one mode calculator. It is implemented by
// CashConfig, ShortTermConfig and FinancedConfig.
type ModeConfig interface {
	Mode() Mode
}

// CashConfig holds the inputs for a cash purchase.
type CashConfig struct {
	OriginalPrice   float64
	DiscountPercent float64
}

// ShortTermConfig holds the inputs for interest-free installments.
type ShortTermConfig struct {
	OriginalPrice    float64
	DownPercent      float64
	InstallmentCount int
}

// FinancedConfig holds the inputs for long-term financing.
type FinancedConfig struct {
	OriginalPrice     float64
	DownPercent       float64
	TermMonths        int
	AnnualRatePercent float64
	IncludeBalloons   bool
	BalloonAmount     float64
	StartDate         civil.Date
}

func (CashConfig) Mode() Mode { return ModeCash }

func (ShortTermConfig) Mode() Mode { return ModeShortTerm }

func (FinancedConfig) Mode() Mode { return ModeFinanced }

// Cash applies the discount to the original price.
func Cash(cfg CashConfig) CashResult {
	discount := mathutil.ApplyPercentage(cfg.OriginalPrice, cfg.DiscountPercent)
	return CashResult{
		OriginalPrice:   cfg.OriginalPrice,
		DiscountPercent: cfg.DiscountPercent,
		DiscountAmount:  discount,
		FinalPrice:      cfg.OriginalPrice - discount,
	}
}

// ShortTerm splits what remains after the down payment into equal
// installments with no interest.
func ShortTerm(cfg ShortTermConfig) ShortTermResult {
	down := mathutil.ApplyPercentage(cfg.OriginalPrice, cfg.DownPercent)
	remaining := cfg.OriginalPrice - down

	installment := 0.0
	if cfg.InstallmentCount > 0 {
		installment = remaining / float64(cfg.InstallmentCount)
	}

	return ShortTermResult{
		OriginalPrice:     cfg.OriginalPrice,
		DownPercent:       cfg.DownPercent,
		DownAmount:        down,
		InstallmentCount:  cfg.InstallmentCount,
		InstallmentAmount: installment,
		TotalPaid:         down + installment*float64(cfg.InstallmentCount),
	}
}

// Financed amortizes the balance left after the down payment. When balloons
// are included, one balloon falls due every full year of the term and their
// present value is taken off the amortized base before solving for the
// installment. Terms under a year therefore carry no balloons.
func Financed(cfg FinancedConfig) (FinancedResult, error) {
	if cfg.TermMonths < 1 {
		return FinancedResult{}, fmt.Errorf("financed term of %d months: %w", cfg.TermMonths, ErrInvalidTerm)
	}

	down := mathutil.ApplyPercentage(cfg.OriginalPrice, cfg.DownPercent)
	balance := cfg.OriginalPrice - down
	rateMonthly := AnnualToMonthly(cfg.AnnualRatePercent)

	balloonCount := 0
	balloonsPV := 0.0
	if cfg.IncludeBalloons {
		balloonCount = cfg.TermMonths / constants.MonthsPerYear
		balloonsPV = PresentValueOfBalloons(cfg.BalloonAmount, balloonCount, rateMonthly)
	}

	base := mathutil.Max(0, balance-balloonsPV)
	installment, err := PMT(base, rateMonthly, cfg.TermMonths)
	if err != nil {
		return FinancedResult{}, err
	}

	totalCost := down + installment*float64(cfg.TermMonths) + cfg.BalloonAmount*float64(balloonCount)
	if !mathutil.IsFinite(totalCost) {
		return FinancedResult{}, fmt.Errorf("financed total cost: %w", ErrNotFinite)
	}

	shown := cfg.TermMonths
	if shown > constants.MaxScheduleLines {
		shown = constants.MaxScheduleLines
	}

	return FinancedResult{
		OriginalPrice:        cfg.OriginalPrice,
		DownPercent:          cfg.DownPercent,
		DownAmount:           down,
		FinancedBalance:      balance,
		TermMonths:           cfg.TermMonths,
		AnnualRate:           cfg.AnnualRatePercent,
		MonthlyRate:          rateMonthly,
		IncludeBalloons:      cfg.IncludeBalloons,
		BalloonAmount:        cfg.BalloonAmount,
		BalloonCount:         balloonCount,
		BalloonsPresentValue: balloonsPV,
		InstallmentAmount:    installment,
		TotalCost:            totalCost,
		Schedule:             GenerateSchedule(installment, cfg.BalloonAmount, cfg.StartDate, shown, cfg.IncludeBalloons),
	}, nil
}

// Simulate dispatches cfg to the matching mode calculator. A result whose
// amount paid is out of float64 range is reported as ErrNotFinite.
func Simulate(cfg ModeConfig) (SimulationResult, error) {
	var result SimulationResult
	switch c := cfg.(type) {
	case CashConfig:
		result = Cash(c)
	case ShortTermConfig:
		result = ShortTerm(c)
	case FinancedConfig:
		financed, err := Financed(c)
		if err != nil {
			return nil, err
		}
		result = financed
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownMode, cfg)
	}

	if !mathutil.IsFinite(result.AmountPaid()) {
		return nil, fmt.Errorf("%s amount paid: %w", result.Mode(), ErrNotFinite)
	}
	return result, nil
}
