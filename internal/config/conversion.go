package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/financing-sim/pkg/datetime"
	"github.com/iwvelando/financing-sim/pkg/financing"
	"github.com/iwvelando/financing-sim/pkg/validation"
)

// ParseAmount parses a money string from the configuration. With StrictInput
// unset, malformed amounts silently become zero.
func (conf *Configuration) ParseAmount(value string) (float64, error) {
	if conf.StrictInput {
		return financing.ParseDecimalInputStrict(value)
	}
	return financing.ParseDecimalInput(value), nil
}

// FinancingUnits converts every active unit into a financing.Unit. Units
// without a start date start on the date of now.
func (conf *Configuration) FinancingUnits(now time.Time) ([]financing.Unit, error) {
	active := conf.ActiveUnits()
	units := make([]financing.Unit, 0, len(active))
	for _, unit := range active {
		converted, err := conf.FinancingUnit(unit, now)
		if err != nil {
			return nil, err
		}
		units = append(units, converted)
	}
	return units, nil
}

// FinancingUnit converts one configured unit, applying defaults.
func (conf *Configuration) FinancingUnit(unit Unit, now time.Time) (financing.Unit, error) {
	price, err := conf.ParseAmount(unit.Price)
	if err != nil {
		return financing.Unit{}, fmt.Errorf("unit '%s': price: %w", unit.Name, err)
	}

	start, err := datetime.ParseDate(unit.StartDate, now)
	if err != nil {
		return financing.Unit{}, fmt.Errorf("unit '%s': startDate: %w", unit.Name, err)
	}

	result := financing.Unit{
		Name:      unit.Name,
		Price:     price,
		StartDate: start,
	}

	offer := conf.EffectiveOffer(unit)
	if c := offer.Cash; c != nil {
		result.Cash = &financing.CashTerms{DiscountPercent: c.DiscountPercent}
	}
	if s := offer.ShortTerm; s != nil {
		result.ShortTerm = &financing.ShortTermTerms{
			DownPercent:      s.DownPercent,
			InstallmentCount: s.InstallmentCount,
		}
	}
	if f := offer.Financed; f != nil {
		if f.TermMonths < 1 {
			return financing.Unit{}, fmt.Errorf("unit '%s': financed termMonths %d: %w", unit.Name, f.TermMonths, financing.ErrInvalidTerm)
		}
		if _, err := validation.ValidateRate(fmt.Sprintf("unit '%s' financed", unit.Name), f.AnnualRate); err != nil {
			return financing.Unit{}, err
		}
		balloon := 0.0
		if f.BalloonAmount != "" {
			balloon, err = conf.ParseAmount(f.BalloonAmount)
			if err != nil {
				return financing.Unit{}, fmt.Errorf("unit '%s': balloonAmount: %w", unit.Name, err)
			}
		}
		result.Financed = &financing.FinancedTerms{
			DownPercent:       f.DownPercent,
			TermMonths:        f.TermMonths,
			AnnualRatePercent: f.AnnualRate,
			IncludeBalloons:   f.IncludeBalloons,
			BalloonAmount:     balloon,
		}
	}

	return result, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if err := validation.ValidateLogLevel(conf.Logging.Level); err != nil {
		warnings = append(warnings, err.Error())
	}
	if err := validation.ValidateLogFormat(conf.Logging.Format); err != nil {
		warnings = append(warnings, err.Error())
	}

	validator := validation.ConfigValidator{}
	for _, unit := range conf.ActiveUnits() {
		// Unparseable amounts are reported by FinancingUnit.
		price, _ := conf.ParseAmount(unit.Price)
		unitConfig := validation.UnitConfig{Name: unit.Name, Price: price}

		offer := conf.EffectiveOffer(unit)
		if c := offer.Cash; c != nil {
			unitConfig.Cash = &validation.CashConfig{DiscountPercent: c.DiscountPercent}
		}
		if s := offer.ShortTerm; s != nil {
			unitConfig.ShortTerm = &validation.ShortTermConfig{
				DownPercent:      s.DownPercent,
				InstallmentCount: s.InstallmentCount,
			}
		}
		if f := offer.Financed; f != nil {
			balloon, _ := conf.ParseAmount(f.BalloonAmount)
			unitConfig.Financed = &validation.FinancedConfig{
				DownPercent:       f.DownPercent,
				TermMonths:        f.TermMonths,
				AnnualRatePercent: f.AnnualRate,
				IncludeBalloons:   f.IncludeBalloons,
				BalloonAmount:     balloon,
			}
		}
		validator.Units = append(validator.Units, unitConfig)
	}

	return append(warnings, validator.ValidateAll()...)
}
