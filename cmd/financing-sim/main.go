package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/financing-sim/internal/config"
	"github.com/iwvelando/financing-sim/internal/logging"
	"github.com/iwvelando/financing-sim/internal/simulation"
	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/iwvelando/financing-sim/pkg/format"
	"github.com/iwvelando/financing-sim/pkg/output"
	"github.com/iwvelando/financing-sim/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	envFile := flag.String("env-file", config.DefaultEnvFile, "dotenv file with FINSIM_* overrides")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	localeFlag := flag.String("locale", "", "currency locale override, e.g. pt-BR or en-US")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	workers := flag.Int("workers", constants.DefaultWorkers, "number of units compared concurrently")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file %s\", \"error\": \"%v\"}\n", *envFile, err)
		return
	}

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	localeName := conf.Output.Locale
	if *localeFlag != "" {
		localeName = *localeFlag
	}
	locale, err := format.ParseLocale(localeName)
	if err != nil {
		logger.Fatal("invalid locale",
			zap.String("op", "main"),
			zap.String("locale", localeName),
			zap.Error(err),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Compare every active unit.
	results, err := simulation.GetComparisons(ctx, logger, *conf, time.Now(), *workers)
	if err != nil {
		logger.Fatal("failed to compare units",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, results, locale)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, results)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
