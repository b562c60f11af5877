// Package datetime provides date utility functions for installment due dates.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/iwvelando/financing-sim/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseDate parses a YYYY-MM-DD date and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(date string) civil.Date {
	d, err := civil.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a YYYY-MM-DD date. An empty string resolves to the date of
// fallback so callers can inject a fixed clock.
func ParseDate(date string, fallback time.Time) (civil.Date, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return civil.DateOf(fallback), nil
	}
	d, err := civil.ParseDate(trimmed)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q, expected %s: %w", date, DateLayout, err)
	}
	return d, nil
}

// AddMonths returns the date offset by the given number of calendar months.
// Day overflow normalizes the way time.AddDate does, so Jan 31 + 1 month is
// Mar 3 (or Mar 2 in leap years).
func AddMonths(date civil.Date, months int) civil.Date {
	return civil.DateOf(date.In(time.UTC).AddDate(0, months, 0))
}

// Format renders a date using DateLayout.
func Format(date civil.Date) string {
	return date.In(time.UTC).Format(DateLayout)
}
