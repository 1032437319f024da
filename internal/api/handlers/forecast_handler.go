package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/andresuchdata/autopo-forecast/internal/service"
	"github.com/andresuchdata/autopo-forecast/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	maxHorizonDays  = 365
	maxLookbackDays = 730
	maxBatchSKUs    = 500
)

// Forecaster is the part of service.ForecastService the handlers call.
type Forecaster interface {
	ForecastOne(ctx context.Context, skuID string, horizonDays, lookbackDays int) (*domain.DemandForecast, bool, error)
	ForecastBatch(ctx context.Context, horizonDays, maxSkus int) (*domain.BatchForecast, error)
}

// ReorderReporter is the part of service.ReportService the handlers call.
type ReorderReporter interface {
	GetReorderList(ctx context.Context, refresh bool) ([]domain.ReorderRecommendation, error)
	PublishReorderReport(ctx context.Context) (string, int, error)
	ListPublishedReports(ctx context.Context) ([]storage.ObjectInfo, error)
}

type ForecastHandler struct {
	forecasts Forecaster
	reports   ReorderReporter
}

// NewForecastHandler builds the handler for the /forecast route group.
func NewForecastHandler(forecasts Forecaster, reports ReorderReporter) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts, reports: reports}
}

// GetSKUForecast handles GET /skus/:sku_id?horizon=&lookback=
func (h *ForecastHandler) GetSKUForecast(c *gin.Context) {
	skuID := strings.TrimSpace(c.Param("sku_id"))
	if skuID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku_id is required"})
		return
	}

	horizon, err := parseBoundedInt(c.Query("horizon"), maxHorizonDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid horizon", "details": err.Error()})
		return
	}
	lookback, err := parseBoundedInt(c.Query("lookback"), maxLookbackDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lookback", "details": err.Error()})
		return
	}

	result, ok, err := h.forecasts.ForecastOne(c.Request.Context(), skuID, horizon, lookback)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to forecast sku", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sku not found", "sku_id": skuID})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBatchForecast handles GET /batch?horizon=&max_skus=
func (h *ForecastHandler) GetBatchForecast(c *gin.Context) {
	horizon, err := parseBoundedInt(c.Query("horizon"), maxHorizonDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid horizon", "details": err.Error()})
		return
	}
	maxSkus, err := parseBoundedInt(c.Query("max_skus"), maxBatchSKUs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_skus", "details": err.Error()})
		return
	}

	batch, err := h.forecasts.ForecastBatch(c.Request.Context(), horizon, maxSkus)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to run batch forecast", err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// GetReorderList handles GET /reorder?refresh=true&urgency=CRITICAL
func (h *ForecastHandler) GetReorderList(c *gin.Context) {
	recs, ok := h.loadReorderList(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": recs,
		"total": len(recs),
	})
}

// ExportReorderList streams the reorder list as a CSV download.
func (h *ForecastHandler) ExportReorderList(c *gin.Context) {
	recs, ok := h.loadReorderList(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="reorder.csv"`)
	c.Status(http.StatusOK)
	if err := service.WriteReorderCSV(c.Writer, recs); err != nil {
		log.Error().Err(err).Msg("failed to write reorder csv")
	}
}

// PublishReorderReport handles POST /reorder/publish. It answers 503 when no object storage is configured.
func (h *ForecastHandler) PublishReorderReport(c *gin.Context) {
	key, rows, err := h.reports.PublishReorderReport(c.Request.Context())
	if errors.Is(err, service.ErrStorageDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to publish reorder report", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"key": key, "rows": rows})
}

// ListReorderReports handles GET /reorder/reports.
func (h *ForecastHandler) ListReorderReports(c *gin.Context) {
	reports, err := h.reports.ListPublishedReports(c.Request.Context())
	if errors.Is(err, service.ErrStorageDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list reorder reports", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// loadReorderList fetches the reorder list and applies the optional urgency filter.
// It writes the error response itself and reports false on failure.
func (h *ForecastHandler) loadReorderList(c *gin.Context) ([]domain.ReorderRecommendation, bool) {
	var filter domain.Urgency
	if label := strings.TrimSpace(c.Query("urgency")); label != "" {
		u, ok := domain.ParseUrgency(label)
		if !ok || !u.NeedsReorder() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid urgency", "details": "expected CRITICAL or LOW"})
			return nil, false
		}
		filter = u
	}

	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	recs, err := h.reports.GetReorderList(c.Request.Context(), refresh)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to build reorder list", err)
		return nil, false
	}

	if filter == "" {
		return recs, true
	}

	filtered := make([]domain.ReorderRecommendation, 0, len(recs))
	for _, r := range recs {
		if r.Urgency == filter {
			filtered = append(filtered, r)
		}
	}
	return filtered, true
}

// parseBoundedInt returns 0 for an empty value so the service applies its default.
func parseBoundedInt(value string, upper int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", value)
	}
	if n < 0 || n > upper {
		return 0, fmt.Errorf("must be between 0 and %d", upper)
	}
	return n, nil
}

func respondError(c *gin.Context, status int, message string, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
