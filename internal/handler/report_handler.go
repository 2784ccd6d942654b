package handler

import (
	"net/http"
	"time"

	"aquaflow/internal/model"
	"aquaflow/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler serves the vendor revenue reports.
type ReportHandler struct {
	reports service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// Monthly handles GET /api/v1/reports/monthly?year=&month= requests. The
// year defaults to the current one; the month is required.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}

	year, err := queryInt(r, "year", time.Now().Year())
	if err != nil {
		writeBadRequest(w, "invalid year")
		return
	}
	month, err := queryInt(r, "month", 0)
	if err != nil || month == 0 {
		writeBadRequest(w, "month query parameter is required")
		return
	}

	report, svcErr := h.reports.Monthly(r.Context(), user.ID, year, month)
	if svcErr != nil {
		writeError(w, svcErr, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Yearly handles GET /api/v1/reports/yearly?year= requests.
func (h *ReportHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	user, ok := requireRole(w, r, model.UserTypeVendor, h.logger)
	if !ok {
		return
	}

	year, err := queryInt(r, "year", time.Now().Year())
	if err != nil {
		writeBadRequest(w, "invalid year")
		return
	}

	reports, svcErr := h.reports.Yearly(r.Context(), user.ID, year)
	if svcErr != nil {
		writeError(w, svcErr, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
