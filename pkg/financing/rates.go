package financing

import (
	"fmt"
	"math"

	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/iwvelando/financing-sim/pkg/mathutil"
)

// AnnualToMonthly converts an annual percentage rate into the equivalent
// monthly compound rate expressed as a fraction, e.g. 12.68 -> ~0.01.
func AnnualToMonthly(rateAnnualPercent float64) float64 {
	if rateAnnualPercent == 0 {
		return 0
	}
	return math.Pow(1+rateAnnualPercent/constants.PercentageMultiplier, 1.0/constants.MonthsPerYear) - 1
}

// PresentValueOfBalloons discounts count annual balloons of balloonAmount,
// the i-th due at month 12*i, back to month zero at rateMonthly.
func PresentValueOfBalloons(balloonAmount float64, count int, rateMonthly float64) float64 {
	if count <= 0 || balloonAmount == 0 {
		return 0
	}

	pv := 0.0
	for i := 1; i <= count; i++ {
		month := i * constants.BalloonFrequency
		pv += balloonAmount / math.Pow(1+rateMonthly, float64(month))
	}
	return pv
}

// PMT returns the level payment that amortizes presentValue over termMonths
// at rateMonthly using the Price (French) method. The discount form is used
// so that long terms converge on presentValue*rateMonthly instead of
// overflowing.
func PMT(presentValue, rateMonthly float64, termMonths int) (float64, error) {
	if termMonths < 1 {
		return 0, ErrInvalidTerm
	}
	if presentValue == 0 {
		return 0, nil
	}
	if rateMonthly == 0 {
		return presentValue / float64(termMonths), nil
	}

	payment := presentValue * rateMonthly / (1 - math.Pow(1+rateMonthly, -float64(termMonths)))
	if !mathutil.IsFinite(payment) {
		return 0, fmt.Errorf("installment for %d months at %g a month: %w", termMonths, rateMonthly, ErrNotFinite)
	}
	return payment, nil
}
