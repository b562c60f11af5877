package financing

import (
	"cloud.google.com/go/civil"
	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/iwvelando/financing-sim/pkg/mathutil"
)

// CashTerms are the cash-mode parameters of a unit.
type CashTerms struct {
	DiscountPercent float64
}

// ShortTermTerms are the short-term-mode parameters of a unit.
type ShortTermTerms struct {
	DownPercent      float64
	InstallmentCount int
}

// FinancedTerms are the financed-mode parameters of a unit.
type FinancedTerms struct {
	DownPercent       float64
	TermMonths        int
	AnnualRatePercent float64
	IncludeBalloons   bool
	BalloonAmount     float64
}

// Unit is a property unit with the payment modes offered for it. A nil terms
// pointer means the mode is not offered.
type Unit struct {
	Name      string
	Price     float64
	StartDate civil.Date
	Cash      *CashTerms
	ShortTerm *ShortTermTerms
	Financed  *FinancedTerms
}

// Comparison holds the results of every mode offered for one unit, in the
// order of Modes.
type Comparison struct {
	Unit     string
	Results  []SimulationResult
	Cheapest Mode
}

// Configs returns the mode configurations offered for the unit.
func (u Unit) Configs() []ModeConfig {
	var configs []ModeConfig
	if u.Cash != nil {
		configs = append(configs, CashConfig{
			OriginalPrice:   u.Price,
			DiscountPercent: u.Cash.DiscountPercent,
		})
	}
	if u.ShortTerm != nil {
		configs = append(configs, ShortTermConfig{
			OriginalPrice:    u.Price,
			DownPercent:      u.ShortTerm.DownPercent,
			InstallmentCount: u.ShortTerm.InstallmentCount,
		})
	}
	if u.Financed != nil {
		configs = append(configs, FinancedConfig{
			OriginalPrice:     u.Price,
			DownPercent:       u.Financed.DownPercent,
			TermMonths:        u.Financed.TermMonths,
			AnnualRatePercent: u.Financed.AnnualRatePercent,
			IncludeBalloons:   u.Financed.IncludeBalloons,
			BalloonAmount:     u.Financed.BalloonAmount,
			StartDate:         u.StartDate,
		})
	}
	return configs
}

// Compare simulates every mode offered for the unit. Cheapest is the mode
// with the lowest nominal amount paid. Amounts within a cent of each other
// tie, and ties keep the earlier mode.
func Compare(u Unit) (Comparison, error) {
	comparison := Comparison{Unit: u.Name}
	for _, cfg := range u.Configs() {
		result, err := Simulate(cfg)
		if err != nil {
			return Comparison{}, err
		}
		if len(comparison.Results) == 0 || cheaper(result, Find(comparison.Results, comparison.Cheapest)) {
			comparison.Cheapest = result.Mode()
		}
		comparison.Results = append(comparison.Results, result)
	}
	return comparison, nil
}

func cheaper(candidate, best SimulationResult) bool {
	paid, bestPaid := candidate.AmountPaid(), best.AmountPaid()
	return paid < bestPaid && !mathutil.WithinTolerance(paid, bestPaid, constants.CurrencyTolerance)
}

// Find returns the result for mode, or nil if it is absent.
func Find(results []SimulationResult, mode Mode) SimulationResult {
	for _, result := range results {
		if result.Mode() == mode {
			return result
		}
	}
	return nil
}
