// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/financing-sim/pkg/constants"
)

// ValidatePercent warns when a percentage lies outside [0, 100].
func ValidatePercent(owner, field string, value float64) string {
	if value < 0 || value > constants.PercentageMultiplier {
		return fmt.Sprintf("%s: %s %.2f%% is outside 0-100%%", owner, field, value)
	}
	return ""
}

// ValidateRate rejects annual rates at or below -100%, which have no monthly
// equivalent, and warns on other negative rates.
func ValidateRate(owner string, annualRatePercent float64) (string, error) {
	if annualRatePercent <= -constants.PercentageMultiplier {
		return "", fmt.Errorf("%s: annual rate %.2f%% must be greater than -100%%", owner, annualRatePercent)
	}
	if annualRatePercent < 0 {
		return fmt.Sprintf("%s: negative annual rate %.2f%%", owner, annualRatePercent), nil
	}
	return "", nil
}

// ValidateBalloons warns about balloon settings that silently have no effect.
func ValidateBalloons(owner string, includeBalloons bool, balloonAmount float64, termMonths int) []string {
	if !includeBalloons {
		return nil
	}

	var warnings []string
	if termMonths < constants.MonthsPerYear {
		warnings = append(warnings, fmt.Sprintf("%s: balloons included but a %d-month term is under a year, no balloon will apply",
			owner, termMonths))
	}
	if balloonAmount <= 0 {
		warnings = append(warnings, fmt.Sprintf("%s: balloons included with non-positive amount %.2f", owner, balloonAmount))
	}
	return warnings
}

// ConfigValidator holds the offer terms to check for every active unit.
type ConfigValidator struct {
	Units []UnitConfig
}

type UnitConfig struct {
	Name      string
	Price     float64
	Cash      *CashConfig
	ShortTerm *ShortTermConfig
	Financed  *FinancedConfig
}

type CashConfig struct {
	DiscountPercent float64
}

type ShortTermConfig struct {
	DownPercent      float64
	InstallmentCount int
}

type FinancedConfig struct {
	DownPercent       float64
	TermMonths        int
	AnnualRatePercent float64
	IncludeBalloons   bool
	BalloonAmount     float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string
	add := func(w string) {
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	if len(cv.Units) == 0 {
		add("no active units configured")
	}

	for _, unit := range cv.Units {
		owner := fmt.Sprintf("Unit '%s'", unit.Name)
		if unit.Price <= 0 {
			add(fmt.Sprintf("%s: price %.2f is not positive", owner, unit.Price))
		}
		if unit.Cash == nil && unit.ShortTerm == nil && unit.Financed == nil {
			add(fmt.Sprintf("%s: no payment mode offered", owner))
		}

		if c := unit.Cash; c != nil {
			add(ValidatePercent(owner+" cash", "discount", c.DiscountPercent))
		}

		if s := unit.ShortTerm; s != nil {
			add(ValidatePercent(owner+" short-term", "down payment", s.DownPercent))
			if s.InstallmentCount <= 0 {
				add(fmt.Sprintf("%s short-term: %d installments, remaining balance is never paid", owner, s.InstallmentCount))
			}
		}

		if f := unit.Financed; f != nil {
			add(ValidatePercent(owner+" financed", "down payment", f.DownPercent))
			if w, err := ValidateRate(owner+" financed", f.AnnualRatePercent); err == nil {
				add(w)
			}
			for _, w := range ValidateBalloons(owner+" financed", f.IncludeBalloons, f.BalloonAmount, f.TermMonths) {
				add(w)
			}
			if f.TermMonths > constants.MaxScheduleLines {
				add(fmt.Sprintf("%s financed: schedule lists the first %d of %d months",
					owner, constants.MaxScheduleLines, f.TermMonths))
			}
		}
	}

	return warnings
}
