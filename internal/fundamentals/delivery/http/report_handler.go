package http

import (
	"net/http"
	"time"

	"golang-stock-fundamentals/internal/fundamentals/service"
	"golang-stock-fundamentals/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportHandler handles HTTP requests for completeness reports.
type ReportHandler struct {
	completenessService service.CompletenessService
	logger              *logger.Logger
	windowDays          int
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(completenessService service.CompletenessService, log *logger.Logger, windowDays int) *ReportHandler {
	if windowDays <= 0 {
		windowDays = 365
	}
	return &ReportHandler{completenessService: completenessService, logger: log, windowDays: windowDays}
}

// RegisterRoutes registers the report routes to the Echo group.
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/completeness", h.GetCompleteness)
	g.GET("/completeness/latest", h.GetLatestCompleteness)
}

// GetCompleteness generates a completeness report for the requested window.
// start_date and end_date are optional YYYY-MM-DD query parameters; the
// window defaults to the configured number of days ending today.
func (h *ReportHandler) GetCompleteness(c echo.Context) error {
	end := time.Now()
	start := end.AddDate(0, 0, -h.windowDays)

	if v := c.QueryParam("start_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid start_date, expected YYYY-MM-DD"})
		}
		start = parsed
	}
	if v := c.QueryParam("end_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid end_date, expected YYYY-MM-DD"})
		}
		end = parsed
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must not precede start_date"})
	}

	report, err := h.completenessService.GenerateReport(c.Request().Context(), start, end)
	if err != nil {
		h.logger.Error("Failed to generate completeness report", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate report"})
	}

	return c.JSON(http.StatusOK, report)
}

// GetLatestCompleteness returns the most recently cached report.
func (h *ReportHandler) GetLatestCompleteness(c echo.Context) error {
	report, err := h.completenessService.LatestReport(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to read cached completeness report", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read cached report"})
	}
	if report == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No cached report available"})
	}

	return c.JSON(http.StatusOK, report)
}
