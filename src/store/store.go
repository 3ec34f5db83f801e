package store

import (
	"context"
	"errors"

	"github.com/username/bigmacindex/src/models"
)

var (
	// ErrNoRecord is returned when no row exists for the requested name.
	ErrNoRecord = errors.New("no record for name")
	// ErrNotNewer is returned when an update's date is not after the stored date.
	ErrNotNewer = errors.New("date is not after the stored date")
)

// Presence selects rows whose listed columns are non-null.
type Presence struct {
	USDAdjusted bool
	DollarPrice bool
}

type Order int

const (
	OrderByName Order = iota
	OrderByID
	OrderByUSDAdjusted
)

type RecordStore interface {
	DistinctNames(ctx context.Context) ([]string, error)
	FindRecords(ctx context.Context, filter models.RecordFilter) ([]models.Record, error)
	// LatestDate returns the greatest date among rows matching p; ok is false when none match.
	LatestDate(ctx context.Context, p Presence) (date string, ok bool, err error)
	RecordsAtDate(ctx context.Context, date string, p Presence, order Order) ([]models.Record, error)
	Summary(ctx context.Context) (models.GlobalSummary, error)
	// CountryTrend returns rows for name ascending by date. limit <= 0 means all rows,
	// otherwise only the most recent limit rows.
	CountryTrend(ctx context.Context, name string, limit int) ([]models.Record, error)
	CompareCountries(ctx context.Context, names []string, date string) ([]models.Record, error)
	// UpdateLocalPrice sets local_price and date on the latest row for name, inside one
	// transaction, only when date is strictly after that row's date. It returns the
	// previous date.
	UpdateLocalPrice(ctx context.Context, name string, localPrice float64, date string) (string, error)
	InsertRecord(ctx context.Context, date string, localPrice float64) (int64, error)
	InsertRecords(ctx context.Context, records []models.Record) (int, error)
	Ping(ctx context.Context) error
	Close() error
}
