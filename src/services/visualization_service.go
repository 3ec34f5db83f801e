package services

import (
	"context"
	"fmt"

	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/metrics"
	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/series"
	"github.com/username/bigmacindex/src/store"
	"github.com/username/bigmacindex/src/valuation"
)

type visualizationServiceImpl struct {
	store      store.RecordStore
	classifier *valuation.Classifier
}

func NewVisualizationService(st store.RecordStore, classifier *valuation.Classifier) VisualizationService {
	return &visualizationServiceImpl{store: st, classifier: classifier}
}

func (s *visualizationServiceImpl) pricePoints(ctx context.Context, name string) ([]series.PricePoint, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: country name is required", ErrInvalidInput)
	}
	records, err := timed("country_trend", func() ([]models.Record, error) { return s.store.CountryTrend(ctx, name, 0) })
	if err != nil {
		return nil, fmt.Errorf("failed to load prices for %s: %w", name, err)
	}
	return series.FromRecords(records), nil
}

func (s *visualizationServiceImpl) GrowthChart(ctx context.Context, name string) (series.Chart, error) {
	points, err := s.pricePoints(ctx, name)
	if err != nil {
		return series.Chart{}, err
	}
	return series.PrepareGrowthChart(points), nil
}

func (s *visualizationServiceImpl) RelativePriceChart(ctx context.Context, name string) (series.Chart, error) {
	points, err := s.pricePoints(ctx, name)
	if err != nil {
		return series.Chart{}, err
	}
	return series.PrepareRelativePriceChart(points), nil
}

func (s *visualizationServiceImpl) PriceTrendChart(ctx context.Context, name string) (series.TrendChart, error) {
	points, err := s.pricePoints(ctx, name)
	if err != nil {
		return series.TrendChart{}, err
	}
	return series.PreparePriceTrendChart(points), nil
}

// ValuationMap classifies every record at date, or at the latest date with
// USD_adjusted when date is empty. Records without USD_adjusted are included
// so they show up as invalid in the report.
func (s *visualizationServiceImpl) ValuationMap(ctx context.Context, date string) (ValuationMap, error) {
	if date == "" {
		latest, ok, err := timedLatest(ctx, s.store, store.Presence{USDAdjusted: true})
		if err != nil {
			return ValuationMap{}, err
		}
		if !ok {
			return s.build("", nil)
		}
		date = latest
	}

	records, err := timed("records_at_date", func() ([]models.Record, error) {
		return s.store.RecordsAtDate(ctx, date, store.Presence{}, store.OrderByName)
	})
	if err != nil {
		return ValuationMap{}, fmt.Errorf("failed to load records at %s: %w", date, err)
	}

	vm, err := s.build(date, records)
	if err != nil {
		return ValuationMap{}, err
	}
	if n := vm.Statistics.NoCoordinates; n > 0 {
		logger.FromContext(ctx).Warn("Countries missing coordinates", "date", date, "count", n, "names", vm.Report.Issues.MissingCountries)
	}
	return vm, nil
}

func (s *visualizationServiceImpl) build(date string, records []models.Record) (ValuationMap, error) {
	result := s.classifier.Preprocess(records)
	markers, err := s.classifier.Markers(result)
	if err != nil {
		return ValuationMap{}, err
	}

	st := result.Statistics
	metrics.RecordValuation(string(valuation.Undervalued), st.Undervalued)
	metrics.RecordValuation(string(valuation.Neutral), st.Neutral)
	metrics.RecordValuation(string(valuation.Overvalued), st.Overvalued)
	metrics.RecordValuation("no_coordinates", st.NoCoordinates)
	metrics.RecordValuation("invalid_value", st.InvalidValue)

	return ValuationMap{
		Date:       date,
		HasData:    result.HasData,
		Markers:    markers,
		Statistics: st,
		Report:     valuation.NewReport(result),
		Invalid:    result.Invalid,
	}, nil
}

func timedLatest(ctx context.Context, st store.RecordStore, p store.Presence) (string, bool, error) {
	type latest struct {
		date string
		ok   bool
	}
	res, err := timed("latest_date", func() (latest, error) {
		date, ok, err := st.LatestDate(ctx, p)
		return latest{date: date, ok: ok}, err
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to determine latest date: %w", err)
	}
	return res.date, res.ok, nil
}
