package report

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/adapters"
	"github.com/de-tools/cost-atlas/pkg/export"
	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

const (
	defaultDays = 30
	maxDays     = 366
)

// Generator is the slice of the report service the handler depends on.
type Generator interface {
	Generate(ctx context.Context, window domain.Window) *domain.CostReport
	Providers() []domain.Provider
}

type Handler struct {
	generator Generator
}

func NewHandler(generator Generator) *Handler {
	return &Handler{generator: generator}
}

// GetReport serves GET /api/v1/report?days=N.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	days, ok := daysParam(w, r)
	if !ok {
		return
	}

	report := h.generator.Generate(ctx, domain.LastDays(days))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapCostReportDomainToApi(report)); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode cost report")
	}
}

// GetExport serves GET /api/v1/report/export?days=N as CSV.
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	days, ok := daysParam(w, r)
	if !ok {
		return
	}

	report := h.generator.Generate(ctx, domain.LastDays(days))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		"attachment; filename=cost_report_"+time.Now().UTC().Format("2006-01-02")+".csv")

	if err := export.WriteCSV(w, report.Records); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to write cost export")
	}
}

func daysParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultDays, true
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > maxDays {
		http.Error(w, "days must be an integer between 1 and 366", http.StatusBadRequest)
		return 0, false
	}
	return days, true
}

// ListProviders serves GET /api/v1/providers.
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	names := make([]string, 0)
	for _, p := range h.generator.Providers() {
		names = append(names, string(p))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.ProviderList{Providers: names}); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode providers")
	}
}
