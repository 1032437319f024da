package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/andresuchdata/autopo-forecast/internal/service"
	"github.com/andresuchdata/autopo-forecast/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubForecaster struct {
	forecast *domain.DemandForecast
	found    bool
	batch    *domain.BatchForecast
	err      error

	gotSKU      string
	gotHorizon  int
	gotLookback int
	gotMaxSkus  int
}

func (s *stubForecaster) ForecastOne(ctx context.Context, skuID string, horizonDays, lookbackDays int) (*domain.DemandForecast, bool, error) {
	s.gotSKU, s.gotHorizon, s.gotLookback = skuID, horizonDays, lookbackDays
	return s.forecast, s.found, s.err
}

func (s *stubForecaster) ForecastBatch(ctx context.Context, horizonDays, maxSkus int) (*domain.BatchForecast, error) {
	s.gotHorizon, s.gotMaxSkus = horizonDays, maxSkus
	return s.batch, s.err
}

type stubReporter struct {
	recs       []domain.ReorderRecommendation
	reports    []storage.ObjectInfo
	err        error
	gotRefresh bool
}

func (s *stubReporter) GetReorderList(ctx context.Context, refresh bool) ([]domain.ReorderRecommendation, error) {
	s.gotRefresh = refresh
	return s.recs, s.err
}

func (s *stubReporter) PublishReorderReport(ctx context.Context) (string, int, error) {
	if s.err != nil {
		return "", 0, s.err
	}
	return "reorder/20261019.csv", len(s.recs), nil
}

func (s *stubReporter) ListPublishedReports(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.reports, s.err
}

func newTestRouter(f Forecaster, r ReorderReporter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewForecastHandler(f, r)

	router := gin.New()
	group := router.Group("/forecast")
	group.GET("/skus/:sku_id", h.GetSKUForecast)
	group.GET("/batch", h.GetBatchForecast)
	group.GET("/reorder", h.GetReorderList)
	group.GET("/reorder/export", h.ExportReorderList)
	group.POST("/reorder/publish", h.PublishReorderReport)
	group.GET("/reorder/reports", h.ListReorderReports)
	return router
}

func perform(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func sampleRecs() []domain.ReorderRecommendation {
	return []domain.ReorderRecommendation{{
		SKU:                 domain.SKU{ID: "42", Code: "SKU-42", Name: "Face Wash"},
		Urgency:             domain.UrgencyCritical,
		CurrentStock:        5,
		AvailableStock:      5,
		ReorderPoint:        60,
		SuggestedReorderQty: 75,
		ExpectedDemand:      90,
	}}
}

func TestGetSKUForecast(t *testing.T) {
	f := &stubForecaster{
		forecast: &domain.DemandForecast{SKU: domain.SKU{ID: "42"}, GeneratedAt: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		found:    true,
	}
	router := newTestRouter(f, &stubReporter{})

	rec := perform(router, http.MethodGet, "/forecast/skus/42?horizon=14&lookback=60")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", f.gotSKU)
	assert.Equal(t, 14, f.gotHorizon)
	assert.Equal(t, 60, f.gotLookback)

	var body domain.DemandForecast
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "42", body.SKU.ID)
}

func TestGetSKUForecast_DefaultsWhenParamsMissing(t *testing.T) {
	f := &stubForecaster{forecast: &domain.DemandForecast{}, found: true}
	router := newTestRouter(f, &stubReporter{})

	rec := perform(router, http.MethodGet, "/forecast/skus/42")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, f.gotHorizon)
	assert.Zero(t, f.gotLookback)
}

func TestGetSKUForecast_NotFound(t *testing.T) {
	router := newTestRouter(&stubForecaster{}, &stubReporter{})

	rec := perform(router, http.MethodGet, "/forecast/skus/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "sku not found")
}

func TestGetSKUForecast_InvalidParams(t *testing.T) {
	router := newTestRouter(&stubForecaster{}, &stubReporter{})

	cases := []string{
		"/forecast/skus/42?horizon=abc",
		"/forecast/skus/42?horizon=-1",
		"/forecast/skus/42?horizon=366",
		"/forecast/skus/42?lookback=1000",
	}
	for _, target := range cases {
		t.Run(target, func(t *testing.T) {
			rec := perform(router, http.MethodGet, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetSKUForecast_ServiceError(t *testing.T) {
	router := newTestRouter(&stubForecaster{err: errors.New("db down")}, &stubReporter{})

	rec := perform(router, http.MethodGet, "/forecast/skus/42")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "db down")
}

func TestGetBatchForecast(t *testing.T) {
	f := &stubForecaster{batch: &domain.BatchForecast{
		Forecasts: []*domain.DemandForecast{},
		Summary:   domain.BatchSummary{TotalSKUs: 3, Critical: 1},
	}}
	router := newTestRouter(f, &stubReporter{})

	rec := perform(router, http.MethodGet, "/forecast/batch?horizon=7&max_skus=5")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, f.gotHorizon)
	assert.Equal(t, 5, f.gotMaxSkus)
	assert.Contains(t, rec.Body.String(), `"total_skus":3`)
}

func TestGetReorderList(t *testing.T) {
	r := &stubReporter{recs: sampleRecs()}
	router := newTestRouter(&stubForecaster{}, r)

	rec := perform(router, http.MethodGet, "/forecast/reorder?refresh=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, r.gotRefresh)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"urgency":"CRITICAL"`)
}

func TestGetReorderList_UrgencyFilter(t *testing.T) {
	recs := append(sampleRecs(), domain.ReorderRecommendation{
		SKU:     domain.SKU{ID: "7"},
		Urgency: domain.UrgencyLow,
	})
	router := newTestRouter(&stubForecaster{}, &stubReporter{recs: recs})

	rec := perform(router, http.MethodGet, "/forecast/reorder?urgency=low")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"urgency":"LOW"`)

	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodGet, "/forecast/reorder?urgency=excess").Code)
	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodGet, "/forecast/reorder/export?urgency=soon").Code)
}

func TestExportReorderList(t *testing.T) {
	router := newTestRouter(&stubForecaster{}, &stubReporter{recs: sampleRecs()})

	rec := perform(router, http.MethodGet, "/forecast/reorder/export")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "reorder.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "sku_id,sku_code,sku_name,urgency,current_stock,available_stock,reorder_point,suggested_reorder_qty,expected_demand", lines[0])
	assert.Equal(t, "42,SKU-42,Face Wash,CRITICAL,5,5,60,75,90", lines[1])
}

func TestPublishReorderReport(t *testing.T) {
	router := newTestRouter(&stubForecaster{}, &stubReporter{recs: sampleRecs()})

	rec := perform(router, http.MethodPost, "/forecast/reorder/publish")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "reorder/20261019.csv")
}

func TestPublishReorderReport_StorageDisabled(t *testing.T) {
	router := newTestRouter(&stubForecaster{}, &stubReporter{err: service.ErrStorageDisabled})

	assert.Equal(t, http.StatusServiceUnavailable, perform(router, http.MethodPost, "/forecast/reorder/publish").Code)
	assert.Equal(t, http.StatusServiceUnavailable, perform(router, http.MethodGet, "/forecast/reorder/reports").Code)
}

func TestListReorderReports(t *testing.T) {
	r := &stubReporter{reports: []storage.ObjectInfo{{Key: "reorder/20261018.csv", Size: 120}}}
	router := newTestRouter(&stubForecaster{}, r)

	rec := perform(router, http.MethodGet, "/forecast/reorder/reports")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reorder/20261018.csv")
}
