package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/financing-sim/internal/config"
	"github.com/iwvelando/financing-sim/internal/metrics"
	"github.com/iwvelando/financing-sim/internal/simulation"
	"github.com/iwvelando/financing-sim/internal/tracing"
	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/iwvelando/financing-sim/pkg/financing"
	"github.com/iwvelando/financing-sim/pkg/format"
	"github.com/iwvelando/financing-sim/pkg/output"
	"github.com/iwvelando/financing-sim/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	endpointSimulate = "/api/simulate"
	endpointCompare  = "/api/compare"
	endpointUpload   = "/api/compare/upload"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	workers       int
	locale        format.Locale
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the simulation API,
// health and Prometheus endpoints. A nil cfg selects the defaults.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg, _ = LoadConfig("")
	}

	maxUploadSize := cfg.UploadSizeBytes()
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	locale, err := format.ParseLocale(cfg.Locale)
	if err != nil {
		logger.Warn("invalid server locale, using default",
			zap.String("op", "server.NewHandler"),
			zap.String("locale", cfg.Locale),
			zap.Error(err),
		)
		locale, _ = format.ParseLocale("")
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		workers:       cfg.Workers,
		locale:        locale,
		now:           time.Now,
	}

	mux := http.NewServeMux()

	// Single mode simulation
	mux.HandleFunc(endpointSimulate, h.handleSimulate)

	// Side-by-side comparison of units sent as JSON
	mux.HandleFunc(endpointCompare, h.handleCompare)

	// Side-by-side comparison of a YAML configuration upload
	mux.HandleFunc(endpointUpload, h.handleUpload)

	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type simulateResponse struct {
	Mode     financing.Mode             `json:"mode"`
	Summary  summaryView                `json:"summary"`
	Result   financing.SimulationResult `json:"result"`
	Totals   *financing.ScheduleTotals  `json:"scheduleTotals,omitempty"`
	Warnings []string                   `json:"warnings,omitempty"`
	Duration string                     `json:"duration"`
}

type compareResponse struct {
	Units    []comparisonView `json:"units"`
	CSV      string           `json:"csv"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration string           `json:"duration"`
}

type comparisonView struct {
	Unit     string         `json:"unit"`
	Cheapest financing.Mode `json:"cheapest"`
	Results  []resultView   `json:"results"`
}

type resultView struct {
	Mode    financing.Mode             `json:"mode"`
	Summary summaryView                `json:"summary"`
	Detail  financing.SimulationResult `json:"detail"`
}

// summaryView carries display strings in the requested locale.
type summaryView struct {
	ListPrice    string   `json:"listPrice"`
	Upfront      string   `json:"upfront"`
	Installments int      `json:"installments"`
	Installment  string   `json:"installment,omitempty"`
	AmountPaid   string   `json:"amountPaid"`
	Notes        []string `json:"notes,omitempty"`
}

func summarize(result financing.SimulationResult, locale format.Locale) summaryView {
	row := output.Summarize(result, locale)
	view := summaryView{
		ListPrice:    locale.Currency(result.ListPrice()),
		Upfront:      locale.Currency(row.Upfront),
		Installments: row.InstallmentCount,
		AmountPaid:   locale.Currency(row.AmountPaid),
		Notes:        row.Notes,
	}
	if row.InstallmentCount > 0 {
		view.Installment = locale.Currency(row.Installment)
	}
	return view
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	ctx, span := tracing.Tracer.Start(r.Context(), "server.handleSimulate")
	defer span.End()
	op := "server.handleSimulate"

	var req simulateRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		h.fail(ctx, w, endpointSimulate, start, http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err), op)
		return
	}
	span.SetAttributes(attribute.String("mode", string(req.Mode)))

	locale, err := h.resolveLocale(req.Locale)
	if err != nil {
		h.fail(ctx, w, endpointSimulate, start, http.StatusBadRequest, err, op)
		return
	}

	unit, err := req.unit(h.now())
	if err != nil {
		metrics.ObserveSimulation(string(req.Mode), err)
		h.fail(ctx, w, endpointSimulate, start, http.StatusBadRequest, err, op)
		return
	}
	warnings, err := validateUnits([]financing.Unit{unit})
	if err != nil {
		metrics.ObserveSimulation(string(req.Mode), err)
		h.fail(ctx, w, endpointSimulate, start, http.StatusBadRequest, err, op)
		return
	}

	result, err := financing.Simulate(unit.Configs()[0])
	metrics.ObserveSimulation(string(req.Mode), err)
	if err != nil {
		h.fail(ctx, w, endpointSimulate, start, statusFor(err), err, op)
		return
	}

	response := simulateResponse{
		Mode:     result.Mode(),
		Summary:  summarize(result, locale),
		Result:   result,
		Warnings: warnings,
		Duration: time.Since(start).String(),
	}
	if financed, ok := result.(financing.FinancedResult); ok {
		totals := financing.SumSchedule(financed.Schedule)
		response.Totals = &totals
	}

	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.String("mode", string(result.Mode())),
		zap.Float64("amountPaid", result.AmountPaid()),
	)
	metrics.ObserveRequest(endpointSimulate, metrics.StatusSuccess, start)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	ctx, span := tracing.Tracer.Start(r.Context(), "server.handleCompare")
	defer span.End()
	op := "server.handleCompare"

	var req compareRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		h.fail(ctx, w, endpointCompare, start, http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err), op)
		return
	}

	locale, err := h.resolveLocale(req.Locale)
	if err != nil {
		h.fail(ctx, w, endpointCompare, start, http.StatusBadRequest, err, op)
		return
	}

	now := h.now()
	units := make([]financing.Unit, 0, len(req.Units))
	for i, unitReq := range req.Units {
		unit, err := unitReq.unit(now)
		if err != nil {
			h.fail(ctx, w, endpointCompare, start, http.StatusBadRequest, fmt.Errorf("units[%d]: %w", i, err), op)
			return
		}
		units = append(units, unit)
	}

	warnings, err := validateUnits(units)
	if err != nil {
		h.fail(ctx, w, endpointCompare, start, http.StatusBadRequest, err, op)
		return
	}

	h.compare(ctx, w, endpointCompare, start, units, warnings, locale, op)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	ctx, span := tracing.Tracer.Start(r.Context(), "server.handleUpload")
	defer span.End()
	op := "server.handleUpload"

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.fail(ctx, w, endpointUpload, start, http.StatusRequestEntityTooLarge,
				fmt.Errorf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.fail(ctx, w, endpointUpload, start, http.StatusBadRequest, fmt.Errorf("failed to parse upload: %w", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.fail(ctx, w, endpointUpload, start, http.StatusBadRequest, errors.New("missing configuration file"), op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.fail(ctx, w, endpointUpload, start, http.StatusInternalServerError, fmt.Errorf("failed to read configuration: %w", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.fail(ctx, w, endpointUpload, start, http.StatusBadRequest, err, op)
		return
	}

	locale, err := h.resolveLocale(cfg.Output.Locale)
	if err != nil {
		h.fail(ctx, w, endpointUpload, start, http.StatusBadRequest, err, op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	units, err := cfg.FinancingUnits(h.now())
	if err != nil {
		h.fail(ctx, w, endpointUpload, start, http.StatusBadRequest, err, op)
		return
	}

	h.compare(ctx, w, endpointUpload, start, units, warnings, locale, op)
}

func (h *handler) compare(ctx context.Context, w http.ResponseWriter, endpoint string, start time.Time,
	units []financing.Unit, warnings []string, locale format.Locale, op string) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("units", len(units)))

	comparisons, err := simulation.CompareAll(ctx, h.logger, units, h.workers)
	if err != nil {
		h.fail(ctx, w, endpoint, start, statusFor(err), err, op)
		return
	}

	response := compareResponse{
		Units:    make([]comparisonView, 0, len(comparisons)),
		CSV:      output.CsvString(comparisons),
		Warnings: warnings,
	}
	for _, comparison := range comparisons {
		view := comparisonView{
			Unit:     comparison.Unit,
			Cheapest: comparison.Cheapest,
			Results:  make([]resultView, 0, len(comparison.Results)),
		}
		for _, result := range comparison.Results {
			metrics.ObserveSimulation(string(result.Mode()), nil)
			view.Results = append(view.Results, resultView{
				Mode:    result.Mode(),
				Summary: summarize(result, locale),
				Detail:  result,
			})
		}
		response.Units = append(response.Units, view)
	}
	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("comparison computed",
		zap.String("op", op),
		zap.Int("units", len(response.Units)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)
	metrics.ObserveRequest(endpoint, metrics.StatusSuccess, start)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) resolveLocale(value string) (format.Locale, error) {
	if strings.TrimSpace(value) == "" {
		return h.locale, nil
	}
	locale, err := format.ParseLocale(value)
	if err != nil {
		return format.Locale{}, fmt.Errorf("invalid locale %q: %w", value, err)
	}
	return locale, nil
}

// validateUnits rejects rates without a monthly equivalent and returns
// warnings for terms that are accepted but suspicious.
func validateUnits(units []financing.Unit) ([]string, error) {
	validator := validation.ConfigValidator{}
	for _, unit := range units {
		unitConfig := validation.UnitConfig{Name: unit.Name, Price: unit.Price}
		if c := unit.Cash; c != nil {
			unitConfig.Cash = &validation.CashConfig{DiscountPercent: c.DiscountPercent}
		}
		if s := unit.ShortTerm; s != nil {
			unitConfig.ShortTerm = &validation.ShortTermConfig{
				DownPercent:      s.DownPercent,
				InstallmentCount: s.InstallmentCount,
			}
		}
		if f := unit.Financed; f != nil {
			if _, err := validation.ValidateRate(fmt.Sprintf("Unit '%s' financed", unit.Name), f.AnnualRatePercent); err != nil {
				return nil, err
			}
			unitConfig.Financed = &validation.FinancedConfig{
				DownPercent:       f.DownPercent,
				TermMonths:        f.TermMonths,
				AnnualRatePercent: f.AnnualRatePercent,
				IncludeBalloons:   f.IncludeBalloons,
				BalloonAmount:     f.BalloonAmount,
			}
		}
		validator.Units = append(validator.Units, unitConfig)
	}
	return validator.ValidateAll(), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, financing.ErrInvalidTerm), errors.Is(err, financing.ErrUnknownMode),
		errors.Is(err, financing.ErrNotFinite):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) fail(ctx context.Context, w http.ResponseWriter, endpoint string, start time.Time, status int, err error, op string) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	outcome := metrics.StatusInvalid
	if status >= http.StatusInternalServerError {
		outcome = metrics.StatusError
	}
	metrics.ObserveRequest(endpoint, outcome, start)

	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Error(err),
	)

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
