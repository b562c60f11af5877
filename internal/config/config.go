// Package config defines the data structures related to configuration and
// includes functions for loading the config and converting it into units to
// simulate.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FINSIM_OUTPUT_FORMAT.
const EnvPrefix = "FINSIM"

// DefaultEnvFile is read by LoadEnv when no path is given.
const DefaultEnvFile = ".env"

// Configuration holds all configuration for financing-sim.
type Configuration struct {
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
	StrictInput bool          `yaml:"strictInput,omitempty"`
	Defaults    Offer         `yaml:"defaults,omitempty"`
	Units       []Unit        `yaml:"units"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
	Locale string `yaml:"locale,omitempty"` // BCP 47, defaults to pt-BR
}

// Offer groups the payment modes offered for a unit. A nil block means the
// mode is not offered, unless Defaults supplies one.
type Offer struct {
	Cash      *Cash      `yaml:"cash,omitempty"`
	ShortTerm *ShortTerm `yaml:"shortTerm,omitempty"`
	Financed  *Financed  `yaml:"financed,omitempty"`
}

// Unit is one property unit to simulate.
type Unit struct {
	Name      string `yaml:"name"`
	Active    bool   `yaml:"active"`
	Price     string `yaml:"price"`
	StartDate string `yaml:"startDate,omitempty"`
	Offer     `yaml:",inline" mapstructure:",squash"`
}

// Cash configures the cash mode.
type Cash struct {
	DiscountPercent float64 `yaml:"discountPercent"`
}

// ShortTerm configures interest-free installments.
type ShortTerm struct {
	DownPercent      float64 `yaml:"downPercent"`
	InstallmentCount int     `yaml:"installmentCount"`
}

// Financed configures long-term financing. BalloonAmount is a decimal string
// parsed the same way as Unit.Price.
type Financed struct {
	DownPercent     float64 `yaml:"downPercent"`
	TermMonths      int     `yaml:"termMonths"`
	AnnualRate      float64 `yaml:"annualRate"`
	IncludeBalloons bool    `yaml:"includeBalloons"`
	BalloonAmount   string  `yaml:"balloonAmount,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// LoadEnv copies the variables of a dotenv file into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading env file, %s", err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if configuration.Output.Locale == "" {
		configuration.Output.Locale = constants.DefaultLocale
	}
	return &configuration, nil
}

// ActiveUnits returns the units marked active, in configuration order.
func (conf *Configuration) ActiveUnits() []Unit {
	var units []Unit
	for _, unit := range conf.Units {
		if unit.Active {
			units = append(units, unit)
		}
	}
	return units
}

// EffectiveOffer fills each mode the unit leaves unset from the defaults.
func (conf *Configuration) EffectiveOffer(unit Unit) Offer {
	offer := unit.Offer
	if offer.Cash == nil {
		offer.Cash = conf.Defaults.Cash
	}
	if offer.ShortTerm == nil {
		offer.ShortTerm = conf.Defaults.ShortTerm
	}
	if offer.Financed == nil {
		offer.Financed = conf.Defaults.Financed
	}
	return offer
}
