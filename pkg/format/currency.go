// Package format renders money amounts for display.
package format

import (
	"strconv"
	"strings"

	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/iwvelando/financing-sim/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Locale describes how a currency amount is written in one locale.
type Locale struct {
	Tag          language.Tag
	Symbol       string
	SymbolSpaced bool
	// SymbolAfter writes the symbol after the amount, as in "12,50 €".
	SymbolAfter bool
	Group       string
	Decimal     string
	// MinGroupDigits is the shortest integer part that gets separators.
	// Zero means 4, so "1.234" is grouped.
	MinGroupDigits int
}

var locales = []Locale{
	{Tag: language.BrazilianPortuguese, Symbol: "R$", SymbolSpaced: true, Group: ".", Decimal: ","},
	{Tag: language.AmericanEnglish, Symbol: "$", Group: ",", Decimal: "."},
	{Tag: language.EuropeanPortuguese, Symbol: "€", SymbolSpaced: true, SymbolAfter: true, Group: " ", Decimal: ",", MinGroupDigits: 5},
	{Tag: language.EuropeanSpanish, Symbol: "€", SymbolSpaced: true, SymbolAfter: true, Group: ".", Decimal: ",", MinGroupDigits: 5},
}

var matcher = language.NewMatcher(localeTags())

func localeTags() []language.Tag {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.Tag
	}
	return tags
}

// LocaleFor returns the closest supported locale for tag, falling back to
// Brazilian Portuguese.
func LocaleFor(tag language.Tag) Locale {
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return locales[0]
	}
	return locales[index]
}

// ParseLocale resolves a BCP 47 string such as "pt-BR" or "en-US". An empty
// string selects the default locale.
func ParseLocale(value string) (Locale, error) {
	if strings.TrimSpace(value) == "" {
		value = constants.DefaultLocale
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Locale{}, err
	}
	return LocaleFor(tag), nil
}

// Currency returns amount in the default locale, e.g. "R$ 1.234,56".
func Currency(amount float64) string {
	return locales[0].Currency(amount)
}

// NumericCurrency returns amount in the default locale without a symbol, e.g. "-1.234,56".
func NumericCurrency(amount float64) string {
	return locales[0].Numeric(amount)
}

// Currency returns amount with the locale's symbol and separators. Amounts
// are rounded half away from zero to two places. NaN and infinities are
// written as "NaN", "+Inf" and "-Inf".
func (l Locale) Currency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	rounded := decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	formatted := l.group(rounded.Abs())

	space := ""
	if l.SymbolSpaced {
		space = " "
	}
	if l.SymbolAfter {
		return sign + formatted + space + l.Symbol
	}
	return sign + l.Symbol + space + formatted
}

// Numeric returns amount with the locale's separators and no symbol.
func (l Locale) Numeric(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	rounded := decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces)
	formatted := l.group(rounded.Abs())
	if rounded.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

func (l Locale) group(value decimal.Decimal) string {
	parts := strings.SplitN(value.StringFixed(constants.CurrencyPlaces), ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	minDigits := l.MinGroupDigits
	if minDigits == 0 {
		minDigits = 4
	}
	if len(intPart) >= minDigits {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteString(l.Group)
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + l.Decimal + decPart
}
