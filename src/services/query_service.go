package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/metrics"
	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/store"
	"github.com/username/bigmacindex/src/utils"
	"github.com/username/bigmacindex/src/valuation"
)

const (
	ckNames          = "names"
	ckLatestAdjusted = "latest_usd_adjusted"
	ckGlobalStats    = "global_stats"
	ckGlobalSummary  = "global_summary"
	ckClassification = "currency_classification_%s"
)

type queryServiceImpl struct {
	store       store.RecordStore
	resultCache *ResultCache
}

func NewQueryService(st store.RecordStore, resultCache *ResultCache) QueryService {
	return &queryServiceImpl{store: st, resultCache: resultCache}
}

// cached returns the value stored under key or loads and stores it. query
// names the lookup in metrics. A load that overlaps a write is returned but
// not stored.
func cached[T any](c *ResultCache, query, key string, load func() (T, error)) (T, error) {
	if c != nil {
		if v, found := c.get(key); found {
			if typed, ok := v.(T); ok {
				metrics.RecordCacheLookup(query, true)
				return typed, nil
			}
		}
		metrics.RecordCacheLookup(query, false)
	}

	gen := c.currentGeneration()
	v, err := load()
	if err != nil {
		return v, err
	}
	c.storeIfCurrent(key, v, gen)
	return v, nil
}

// timed runs one store call and records its duration.
func timed[T any](query string, call func() (T, error)) (T, error) {
	start := time.Now()
	v, err := call()
	metrics.RecordStoreQuery(query, time.Since(start), err)
	return v, err
}

func (s *queryServiceImpl) ListDistinctNames(ctx context.Context) ([]string, error) {
	return cached(s.resultCache, "names", ckNames, func() ([]string, error) {
		names, err := timed("distinct_names", func() ([]string, error) { return s.store.DistinctNames(ctx) })
		if err != nil {
			return nil, fmt.Errorf("failed to list names: %w", err)
		}
		return names, nil
	})
}

func (s *queryServiceImpl) FindRecords(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	for field, year := range map[string]string{"year": filter.Year, "startYear": filter.StartYear, "endYear": filter.EndYear} {
		if year != "" && !utils.IsYear(year) {
			return nil, fmt.Errorf("%w: %s must be a 4-digit year, got %q", ErrInvalidInput, field, year)
		}
	}

	records, err := timed("find_records", func() ([]models.Record, error) { return s.store.FindRecords(ctx, filter) })
	if err != nil {
		return nil, fmt.Errorf("failed to find records: %w", err)
	}
	return records, nil
}

type latestResult struct {
	snapshot models.LatestSnapshot
	found    bool
}

func (s *queryServiceImpl) LatestUSDAdjusted(ctx context.Context) (models.LatestSnapshot, bool, error) {
	res, err := cached(s.resultCache, "latest_usd_adjusted", ckLatestAdjusted, func() (latestResult, error) {
		presence := store.Presence{USDAdjusted: true}
		date, ok, err := timedLatest(ctx, s.store, presence)
		if err != nil || !ok {
			return latestResult{}, err
		}

		records, err := timed("records_at_date", func() ([]models.Record, error) {
			return s.store.RecordsAtDate(ctx, date, presence, store.OrderByName)
		})
		if err != nil {
			return latestResult{}, fmt.Errorf("failed to load records at %s: %w", date, err)
		}
		if len(records) == 0 {
			return latestResult{}, nil
		}
		return latestResult{
			snapshot: models.LatestSnapshot{Date: date, Data: records, Count: len(records)},
			found:    true,
		}, nil
	})
	if err != nil {
		return models.LatestSnapshot{}, false, err
	}
	return res.snapshot, res.found, nil
}

func (s *queryServiceImpl) GlobalStats(ctx context.Context) (models.GlobalStats, error) {
	return cached(s.resultCache, "global_stats", ckGlobalStats, func() (models.GlobalStats, error) {
		presence := store.Presence{USDAdjusted: true, DollarPrice: true}
		date, ok, err := timedLatest(ctx, s.store, presence)
		if err != nil {
			return models.GlobalStats{}, err
		}
		if !ok {
			return models.GlobalStats{}, fmt.Errorf("%w: no date has both dollar_price and USD_adjusted", ErrNotFound)
		}

		records, err := timed("records_at_date", func() ([]models.Record, error) {
			return s.store.RecordsAtDate(ctx, date, presence, store.OrderByID)
		})
		if err != nil {
			return models.GlobalStats{}, fmt.Errorf("failed to load records at %s: %w", date, err)
		}
		if len(records) == 0 {
			return models.GlobalStats{}, fmt.Errorf("%w: no records at %s", ErrNotFound, date)
		}

		// Strict comparisons keep the first row on ties.
		mostExpensive, cheapest, bestValue := records[0], records[0], records[0]
		for _, r := range records[1:] {
			if *r.DollarPrice > *mostExpensive.DollarPrice {
				mostExpensive = r
			}
			if *r.DollarPrice < *cheapest.DollarPrice {
				cheapest = r
			}
			if *r.USDAdjusted < *bestValue.USDAdjusted {
				bestValue = r
			}
		}

		return models.GlobalStats{
			HasData:        true,
			Date:           date,
			MostExpensive:  models.NewStatEntry(mostExpensive),
			Cheapest:       models.NewStatEntry(cheapest),
			BestValue:      models.NewStatEntry(bestValue),
			TotalCountries: len(records),
		}, nil
	})
}

func (s *queryServiceImpl) GlobalSummary(ctx context.Context) (models.GlobalSummary, error) {
	return cached(s.resultCache, "global_summary", ckGlobalSummary, func() (models.GlobalSummary, error) {
		summary, err := timed("summary", func() (models.GlobalSummary, error) { return s.store.Summary(ctx) })
		if err != nil {
			return models.GlobalSummary{}, fmt.Errorf("failed to compute global summary: %w", err)
		}
		return summary, nil
	})
}

func (s *queryServiceImpl) CountryTrend(ctx context.Context, name string, limit int) (models.CountryTrend, error) {
	if name == "" {
		return models.CountryTrend{}, fmt.Errorf("%w: country name is required", ErrInvalidInput)
	}
	records, err := timed("country_trend", func() ([]models.Record, error) { return s.store.CountryTrend(ctx, name, limit) })
	if err != nil {
		return models.CountryTrend{}, fmt.Errorf("failed to load trend for %s: %w", name, err)
	}
	return models.CountryTrend{Country: name, Data: records, Count: len(records)}, nil
}

func (s *queryServiceImpl) CompareCountries(ctx context.Context, names []string, date string) (models.Comparison, error) {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return models.Comparison{}, fmt.Errorf("%w: at least one country is required", ErrInvalidInput)
	}

	records, err := timed("compare_countries", func() ([]models.Record, error) {
		return s.store.CompareCountries(ctx, cleaned, date)
	})
	if err != nil {
		return models.Comparison{}, fmt.Errorf("failed to compare countries: %w", err)
	}
	return models.Comparison{Countries: cleaned, Data: records, Count: len(records)}, nil
}

func (s *queryServiceImpl) CurrencyClassification(ctx context.Context, date string) (models.CurrencyClassification, error) {
	key := fmt.Sprintf(ckClassification, date)
	return cached(s.resultCache, "currency_classification", key, func() (models.CurrencyClassification, error) {
		presence := store.Presence{USDAdjusted: true}
		empty := models.CurrencyClassification{Data: []models.ClassifiedRecord{}}

		if date == "" {
			latest, ok, err := timedLatest(ctx, s.store, presence)
			if err != nil {
				return empty, err
			}
			if !ok {
				return empty, nil
			}
			date = latest
		}

		records, err := timed("records_at_date", func() ([]models.Record, error) {
			return s.store.RecordsAtDate(ctx, date, presence, store.OrderByUSDAdjusted)
		})
		if err != nil {
			return empty, fmt.Errorf("failed to load records at %s: %w", date, err)
		}

		result := models.CurrencyClassification{Data: make([]models.ClassifiedRecord, 0, len(records))}
		for _, r := range records {
			category := valuation.ClassifyRatio(*r.USDAdjusted)
			switch category {
			case valuation.Undervalued:
				result.Statistics.Undervalued++
			case valuation.Overvalued:
				result.Statistics.Overvalued++
			default:
				result.Statistics.Neutral++
			}
			result.Data = append(result.Data, models.ClassifiedRecord{
				Name:           r.Name,
				USDAdjusted:    *r.USDAdjusted,
				Classification: string(category),
			})
		}
		result.Total = len(result.Data)
		logger.FromContext(ctx).Debug("Currency classification computed", "date", date, "total", result.Total)
		return result, nil
	})
}
