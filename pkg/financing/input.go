package financing

import (
	"strconv"
	"strings"

	"github.com/iwvelando/financing-sim/pkg/mathutil"
)

// ParseDecimalInput parses a decimal typed with either "," or "." as the
// decimal separator. Input that does not parse to a finite number yields 0.
func ParseDecimalInput(text string) float64 {
	value, err := ParseDecimalInputStrict(text)
	if err != nil {
		return 0
	}
	return value
}

// ParseDecimalInputStrict is ParseDecimalInput with the failure surfaced as a
// *ParseError instead of a zero value.
func ParseDecimalInputStrict(text string) (float64, error) {
	normalized := normalizeDecimal(text)
	if normalized == "" {
		return 0, &ParseError{Input: text, Err: strconv.ErrSyntax}
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, &ParseError{Input: text, Err: err}
	}
	if !mathutil.IsFinite(value) {
		return 0, &ParseError{Input: text, Err: ErrNotFinite}
	}
	return value, nil
}

// normalizeDecimal rewrites text into the form strconv expects. When both
// separators are present the right-most one is the decimal separator and the
// other is dropped as a thousands separator. A separator repeated between
// groups of three digits, as in "1.500.000", is a thousands separator.
func normalizeDecimal(text string) string {
	s := strings.Join(strings.Fields(text), "")

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if grouped(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case lastDot >= 0 && grouped(s, "."):
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}

// grouped reports whether sep occurs more than once and every group after the
// first is exactly three digits.
func grouped(s, sep string) bool {
	groups := strings.Split(s, sep)
	if len(groups) < 3 {
		return false
	}
	for _, group := range groups[1:] {
		if len(group) != 3 || strings.Trim(group, "0123456789") != "" {
			return false
		}
	}
	return true
}
