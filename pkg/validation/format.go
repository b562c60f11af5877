package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/financing-sim/pkg/constants"
)

var (
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	logFormats = []string{"json", "console"}
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateLogLevel accepts an empty level, meaning the default.
func ValidateLogLevel(level string) error {
	return oneOf("log level", level, logLevels)
}

// ValidateLogFormat accepts an empty format, meaning the default.
func ValidateLogFormat(format string) error {
	return oneOf("log format", format, logFormats)
}

func oneOf(what, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %s (expected one of %s)", what, value, strings.Join(allowed, ", "))
}
