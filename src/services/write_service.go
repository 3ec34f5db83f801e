package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/metrics"
	"github.com/username/bigmacindex/src/store"
	"github.com/username/bigmacindex/src/utils"
)

type writeServiceImpl struct {
	store       store.RecordStore
	resultCache *ResultCache
	now         func() time.Time
}

// NewWriteService wires the write operations. now supplies "today"; nil means
// time.Now. Successful writes flush resultCache.
func NewWriteService(st store.RecordStore, resultCache *ResultCache, now func() time.Time) WriteService {
	if now == nil {
		now = time.Now
	}
	return &writeServiceImpl{store: st, resultCache: resultCache, now: now}
}

func (s *writeServiceImpl) UpdateLocalPrice(ctx context.Context, name string, localPrice *float64) (string, error) {
	price, ok := utils.FiniteValue(localPrice)
	if name == "" || !ok {
		metrics.RecordWrite("update_local_price", true, ErrInvalidInput)
		return "", fmt.Errorf("%w: name and a numeric local_price are required", ErrInvalidInput)
	}

	today := utils.Today(s.now())
	previous, err := s.store.UpdateLocalPrice(ctx, name, price, today)
	switch {
	case errors.Is(err, store.ErrNoRecord):
		metrics.RecordWrite("update_local_price", true, err)
		return "", fmt.Errorf("%w: %s", ErrNameNotFound, name)
	case errors.Is(err, store.ErrNotNewer):
		metrics.RecordWrite("update_local_price", true, err)
		return "", fmt.Errorf("%w: stored %s, requested %s", ErrStaleDate, previous, today)
	case err != nil:
		metrics.RecordWrite("update_local_price", false, err)
		return "", fmt.Errorf("failed to update local price for %s: %w", name, err)
	}

	metrics.RecordWrite("update_local_price", false, nil)
	s.invalidate()
	logger.FromContext(ctx).Info("Local price updated", "name", name, "localPrice", price, "previousDate", previous, "date", today)
	return today, nil
}

func (s *writeServiceImpl) InsertRecord(ctx context.Context, date string, localPrice *float64) (int64, error) {
	price, ok := utils.FiniteValue(localPrice)
	if date == "" || !ok {
		metrics.RecordWrite("insert", true, ErrInvalidInput)
		return 0, fmt.Errorf("%w: date and a numeric local_price are required", ErrInvalidInput)
	}

	id, err := s.store.InsertRecord(ctx, date, price)
	metrics.RecordWrite("insert", false, err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	s.invalidate()
	logger.FromContext(ctx).Info("Record inserted", "id", id, "date", date, "localPrice", price)
	return id, nil
}

func (s *writeServiceImpl) invalidate() {
	s.resultCache.Invalidate()
}
