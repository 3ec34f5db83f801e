package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Store, records ...models.Record) {
	t.Helper()
	n, err := s.InsertRecords(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, len(records), n)
}

func rec(name, date string, dollarPrice, usdAdjusted *float64) models.Record {
	return models.Record{
		Name:         name,
		Date:         date,
		CurrencyCode: "XXX",
		LocalPrice:   models.Float(10),
		DollarPrice:  dollarPrice,
		USDAdjusted:  usdAdjusted,
	}
}

func names(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name+"@"+r.Date)
	}
	return out
}

func TestDistinctNames(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		rec("Japan", "2020-01-01", nil, nil),
		rec("Brazil", "2020-01-01", nil, nil),
		rec("Japan", "2021-01-01", nil, nil),
	)
	_, err := s.InsertRecord(context.Background(), "2022-01-01", 3)
	require.NoError(t, err)

	got, err := s.DistinctNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Brazil", "Japan"}, got)
}

func TestFindRecords_Filters(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		rec("Japan", "2021-07-01", nil, nil),
		rec("Japan", "2019-01-01", nil, nil),
		rec("Japan", "2020-01-01", nil, nil),
		rec("Brazil", "2020-07-01", nil, nil),
	)
	ctx := context.Background()

	all, err := s.FindRecords(ctx, models.RecordFilter{Name: "Japan"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2019-01-01", "Japan@2020-01-01", "Japan@2021-07-01"}, names(all))

	year, err := s.FindRecords(ctx, models.RecordFilter{Year: "2020"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2020-01-01", "Brazil@2020-07-01"}, names(year))

	ranged, err := s.FindRecords(ctx, models.RecordFilter{Name: "Japan", StartYear: "2020", EndYear: "2021"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2020-01-01", "Japan@2021-07-01"}, names(ranged))

	from, err := s.FindRecords(ctx, models.RecordFilter{Name: "Japan", StartYear: "2021"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2021-07-01"}, names(from))

	until, err := s.FindRecords(ctx, models.RecordFilter{Name: "Japan", EndYear: "2019"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2019-01-01"}, names(until))
}

func TestLatestDateAndRecordsAtDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.LatestDate(ctx, store.Presence{USDAdjusted: true})
	require.NoError(t, err)
	assert.False(t, ok)

	seed(t, s,
		rec("Japan", "2021-01-01", models.Float(3), models.Float(-20)),
		rec("Brazil", "2021-01-01", models.Float(5), models.Float(5)),
		rec("Chile", "2022-01-01", nil, models.Float(1)),
		rec("Peru", "2023-01-01", models.Float(4), nil),
	)

	latest, ok, err := s.LatestDate(ctx, store.Presence{USDAdjusted: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2022-01-01", latest)

	both, ok, err := s.LatestDate(ctx, store.Presence{USDAdjusted: true, DollarPrice: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2021-01-01", both)

	byName, err := s.RecordsAtDate(ctx, "2021-01-01", store.Presence{USDAdjusted: true}, store.OrderByName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brazil@2021-01-01", "Japan@2021-01-01"}, names(byName))

	byID, err := s.RecordsAtDate(ctx, "2021-01-01", store.Presence{USDAdjusted: true}, store.OrderByID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2021-01-01", "Brazil@2021-01-01"}, names(byID))

	byValue, err := s.RecordsAtDate(ctx, "2021-01-01", store.Presence{}, store.OrderByUSDAdjusted)
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2021-01-01", "Brazil@2021-01-01"}, names(byValue))
}

func TestSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalCountries)
	assert.Nil(t, empty.LatestDate)
	assert.Nil(t, empty.AvgUSDAdjusted)

	seed(t, s,
		rec("Japan", "2020-01-01", nil, models.Float(-20)),
		rec("Japan", "2021-01-01", nil, models.Float(-10)),
		rec("Brazil", "2021-01-01", nil, models.Float(30)),
		rec("Chile", "2022-01-01", nil, nil),
	)

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalCountries)
	assert.Equal(t, 2, summary.TotalDates)
	require.NotNil(t, summary.EarliestDate)
	require.NotNil(t, summary.LatestDate)
	assert.Equal(t, "2020-01-01", *summary.EarliestDate)
	assert.Equal(t, "2021-01-01", *summary.LatestDate)
	require.NotNil(t, summary.AvgUSDAdjusted)
	assert.InDelta(t, 0, *summary.AvgUSDAdjusted, 1e-9)
	assert.Equal(t, -20.0, *summary.MinUSDAdjusted)
	assert.Equal(t, 30.0, *summary.MaxUSDAdjusted)
}

func TestCountryTrend_Limit(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		rec("Japan", "2022-01-01", nil, nil),
		rec("Japan", "2020-01-01", nil, nil),
		rec("Japan", "2021-01-01", nil, nil),
		rec("Brazil", "2021-01-01", nil, nil),
	)
	ctx := context.Background()

	all, err := s.CountryTrend(ctx, "Japan", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2020-01-01", "Japan@2021-01-01", "Japan@2022-01-01"}, names(all))

	recent, err := s.CountryTrend(ctx, "Japan", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan@2021-01-01", "Japan@2022-01-01"}, names(recent))

	none, err := s.CountryTrend(ctx, "Nowhere", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCompareCountries(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		rec("Japan", "2021-01-01", nil, nil),
		rec("Brazil", "2021-01-01", nil, nil),
		rec("Brazil", "2020-01-01", nil, nil),
		rec("Chile", "2021-01-01", nil, nil),
	)
	ctx := context.Background()

	got, err := s.CompareCountries(ctx, []string{"Japan", "Brazil"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Brazil@2020-01-01", "Brazil@2021-01-01", "Japan@2021-01-01"}, names(got))

	dated, err := s.CompareCountries(ctx, []string{"Japan", "Brazil"}, "2021-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"Brazil@2021-01-01", "Japan@2021-01-01"}, names(dated))

	empty, err := s.CompareCountries(ctx, nil, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateLocalPrice(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		rec("X", "2023-06-01", nil, nil),
		rec("X", "2024-01-01", nil, nil),
	)
	ctx := context.Background()

	prev, err := s.UpdateLocalPrice(ctx, "X", 12.5, "2024-01-01")
	assert.ErrorIs(t, err, store.ErrNotNewer)
	assert.Equal(t, "2024-01-01", prev)

	prev, err = s.UpdateLocalPrice(ctx, "X", 12.5, "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", prev)

	rows, err := s.CountryTrend(ctx, "X", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2023-06-01", rows[0].Date)
	assert.Equal(t, 10.0, *rows[0].LocalPrice)
	assert.Equal(t, "2024-02-01", rows[1].Date)
	assert.Equal(t, 12.5, *rows[1].LocalPrice)

	_, err = s.UpdateLocalPrice(ctx, "Nobody", 1, "2030-01-01")
	assert.ErrorIs(t, err, store.ErrNoRecord)
}

func TestInsertRecord_NullColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.InsertRecord(ctx, "2024-03-01", 4.2)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.FindRecords(ctx, models.RecordFilter{Year: "2024"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "", got[0].Name)
	assert.Nil(t, got[0].USDAdjusted)
	require.NotNil(t, got[0].LocalPrice)
	assert.Equal(t, 4.2, *got[0].LocalPrice)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
