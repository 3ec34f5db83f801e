package services

import (
	"context"

	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/series"
	"github.com/username/bigmacindex/src/valuation"
)

// QueryService answers the read-only API queries.
type QueryService interface {
	ListDistinctNames(ctx context.Context) ([]string, error)
	FindRecords(ctx context.Context, filter models.RecordFilter) ([]models.Record, error)
	// LatestUSDAdjusted reports found=false when no record has USD_adjusted.
	LatestUSDAdjusted(ctx context.Context) (snapshot models.LatestSnapshot, found bool, err error)
	GlobalStats(ctx context.Context) (models.GlobalStats, error)
	GlobalSummary(ctx context.Context) (models.GlobalSummary, error)
	CountryTrend(ctx context.Context, name string, limit int) (models.CountryTrend, error)
	CompareCountries(ctx context.Context, names []string, date string) (models.Comparison, error)
	CurrencyClassification(ctx context.Context, date string) (models.CurrencyClassification, error)
}

// WriteService holds the two authenticated write operations.
type WriteService interface {
	// UpdateLocalPrice stamps the latest record for name with today's date and
	// the new price. It returns the new date.
	UpdateLocalPrice(ctx context.Context, name string, localPrice *float64) (string, error)
	InsertRecord(ctx context.Context, date string, localPrice *float64) (int64, error)
}

// ValuationMap is the map-ready view of one date.
type ValuationMap struct {
	Date       string               `json:"date"`
	HasData    bool                 `json:"hasData"`
	Markers    []valuation.Marker   `json:"markers"`
	Statistics valuation.Statistics `json:"statistics"`
	Report     valuation.Report     `json:"report"`
	Invalid    []valuation.Rejected `json:"invalid"`
}

// VisualizationService runs the chart and map transforms over stored records.
type VisualizationService interface {
	GrowthChart(ctx context.Context, name string) (series.Chart, error)
	RelativePriceChart(ctx context.Context, name string) (series.Chart, error)
	PriceTrendChart(ctx context.Context, name string) (series.TrendChart, error)
	ValuationMap(ctx context.Context, date string) (ValuationMap, error)
}
