package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/andresuchdata/autopo-forecast/internal/cache"
	"github.com/andresuchdata/autopo-forecast/internal/domain"
	"github.com/andresuchdata/autopo-forecast/internal/storage"
	"github.com/rs/zerolog/log"
)

const reorderReportPrefix = "reorder/"

// ErrStorageDisabled is returned by publishing operations when no object storage is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

var reorderCSVHeader = []string{
	"sku_id", "sku_code", "sku_name", "urgency", "current_stock", "available_stock",
	"reorder_point", "suggested_reorder_qty", "expected_demand",
}

// ReportService serves reorder lists to the API, with optional caching and export.
type ReportService struct {
	forecasts *ForecastService
	cache     cache.ReorderCache
	store     storage.ObjectStorage
}

// NewReportService wires the report service. store may be nil when exports are not published.
func NewReportService(forecasts *ForecastService, cacheImpl cache.ReorderCache, store storage.ObjectStorage) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReorderCache()
	}
	return &ReportService{forecasts: forecasts, cache: cacheImpl, store: store}
}

// GetReorderList returns the current reorder recommendations. refresh drops every
// cached list before recomputing, so no stale list survives a forced rebuild.
func (s *ReportService) GetReorderList(ctx context.Context, refresh bool) ([]domain.ReorderRecommendation, error) {
	key := s.cacheKey()

	if refresh {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("reorder report: cache invalidation failed")
		}
	} else {
		if recs, ok, err := s.cache.GetRecommendations(ctx, key); err == nil && ok {
			return recs, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("reorder report: cache get failed")
		}
	}

	recs, err := s.forecasts.ReorderRecommendations(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetRecommendations(ctx, key, recs); err != nil {
		log.Warn().Err(err).Msg("reorder report: cache set failed")
	}

	return recs, nil
}

// PublishReorderReport recomputes the reorder list, replacing any cached copy, and
// uploads it as CSV under reorder/YYYYMMDD.csv. It returns the object key and row count.
func (s *ReportService) PublishReorderReport(ctx context.Context) (string, int, error) {
	if s.store == nil {
		return "", 0, ErrStorageDisabled
	}

	recs, err := s.GetReorderList(ctx, true)
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	if err := WriteReorderCSV(&buf, recs); err != nil {
		return "", 0, fmt.Errorf("failed to render reorder report: %w", err)
	}

	key := fmt.Sprintf("%s%s.csv", reorderReportPrefix, s.forecasts.now().Format("20060102"))
	if err := s.store.UploadObject(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		return "", 0, err
	}

	log.Info().Str("key", key).Int("rows", len(recs)).Msg("reorder report published")

	return key, len(recs), nil
}

// ListPublishedReports lists previously published reorder reports.
func (s *ReportService) ListPublishedReports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	return s.store.ListObjects(ctx, reorderReportPrefix)
}

func (s *ReportService) cacheKey() cache.ReorderKey {
	return cache.ReorderKey{
		HorizonDays:   s.forecasts.cfg.HorizonDays,
		CandidatePool: s.forecasts.cfg.ReorderCandidatePool,
	}
}

// WriteReorderCSV renders recommendations as CSV with a fixed column order.
func WriteReorderCSV(w io.Writer, recs []domain.ReorderRecommendation) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(reorderCSVHeader); err != nil {
		return err
	}

	for _, r := range recs {
		record := []string{
			r.SKU.ID,
			r.SKU.Code,
			r.SKU.Name,
			string(r.Urgency),
			strconv.Itoa(r.CurrentStock),
			strconv.Itoa(r.AvailableStock),
			strconv.Itoa(r.ReorderPoint),
			strconv.Itoa(r.SuggestedReorderQty),
			strconv.Itoa(r.ExpectedDemand),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
