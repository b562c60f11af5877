// Package constants provides shared constants for the financing simulator.
package constants

// DateLayout is the format expected for unit start dates in config files and
// is also the due date format used in schedule output.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// BalloonFrequency is the number of months between balloon payments
	BalloonFrequency = 12

	// MaxScheduleLines caps the installment schedule returned for display
	MaxScheduleLines = 24

	// CurrencyPlaces is the number of decimal places shown for money
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// DefaultLocale is the BCP 47 tag used when formatting currency.
const DefaultLocale = "pt-BR"

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultWorkers bounds how many units are simulated concurrently
	DefaultWorkers = 4

	// DefaultServiceName is reported on traces
	DefaultServiceName = "financing-sim"
)
