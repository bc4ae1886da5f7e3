package http

import (
	"context"
	"net/http"

	"golang-stock-fundamentals/internal/fundamentals/service"
	"golang-stock-fundamentals/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RunHandler triggers derivation and ingestion runs over HTTP.
type RunHandler struct {
	computeService service.ComputeService
	ingestService  service.IngestService
	logger         *logger.Logger
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(computeService service.ComputeService, ingestService service.IngestService, log *logger.Logger) *RunHandler {
	return &RunHandler{computeService: computeService, ingestService: ingestService, logger: log}
}

// RegisterRoutes registers the run routes to the Echo group.
func (h *RunHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/compute", h.TriggerCompute)
	g.POST("/ingest", h.TriggerIngest)
}

// TriggerCompute starts a derivation run in the background and returns
// immediately. Runs can take minutes on a full symbol universe.
func (h *RunHandler) TriggerCompute(c echo.Context) error {
	go func() {
		if _, err := h.computeService.ComputeAll(context.Background()); err != nil {
			h.logger.Error("Background compute run failed", logger.ErrorField(err))
		}
	}()

	return c.JSON(http.StatusAccepted, echo.Map{"status": "compute run started"})
}

// TriggerIngest starts an ingestion run in the background.
func (h *RunHandler) TriggerIngest(c echo.Context) error {
	go func() {
		if _, err := h.ingestService.IngestAll(context.Background()); err != nil {
			h.logger.Error("Background ingestion run failed", logger.ErrorField(err))
		}
	}()

	return c.JSON(http.StatusAccepted, echo.Map{"status": "ingestion run started"})
}
