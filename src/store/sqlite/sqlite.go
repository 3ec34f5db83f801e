package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/username/bigmacindex/src/database"
	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/store"
)

// recordColumns reads NULL text as "" so records scan into plain strings.
const recordColumns = `id,
	COALESCE(date, '') AS date,
	COALESCE(iso_a3, '') AS iso_a3,
	COALESCE(currency_code, '') AS currency_code,
	COALESCE(name, '') AS name,
	local_price, dollar_ex, dollar_price,
	USD_raw, EUR_raw, GBP_raw, JPY_raw, CNY_raw,
	GDP_bigmac, adj_price,
	USD_adjusted, EUR_adjusted, GBP_adjusted, JPY_adjusted, CNY_adjusted`

type Store struct {
	db *sqlx.DB
}

var _ store.RecordStore = (*Store)(nil)

// New opens the database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) DistinctNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.SelectContext(ctx, &names,
		`SELECT DISTINCT name FROM big_mac_index WHERE name IS NOT NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying distinct names: %w", err)
	}
	return names, nil
}

func (s *Store) FindRecords(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM big_mac_index WHERE 1=1`
	var args []interface{}

	if filter.Name != "" {
		query += ` AND name = ?`
		args = append(args, filter.Name)
	}
	if filter.Year != "" {
		query += ` AND substr(date, 1, 4) = ?`
		args = append(args, filter.Year)
	}
	switch {
	case filter.StartYear != "" && filter.EndYear != "":
		query += ` AND substr(date, 1, 4) BETWEEN ? AND ?`
		args = append(args, filter.StartYear, filter.EndYear)
	case filter.StartYear != "":
		query += ` AND substr(date, 1, 4) >= ?`
		args = append(args, filter.StartYear)
	case filter.EndYear != "":
		query += ` AND substr(date, 1, 4) <= ?`
		args = append(args, filter.EndYear)
	}
	query += ` ORDER BY date, id`

	return s.selectRecords(ctx, "error querying records", query, args...)
}

func presenceClause(p store.Presence) string {
	var clause string
	if p.USDAdjusted {
		clause += ` AND USD_adjusted IS NOT NULL`
	}
	if p.DollarPrice {
		clause += ` AND dollar_price IS NOT NULL`
	}
	return clause
}

func (s *Store) LatestDate(ctx context.Context, p store.Presence) (string, bool, error) {
	var latest sql.NullString
	err := s.db.GetContext(ctx, &latest,
		`SELECT MAX(date) FROM big_mac_index WHERE date IS NOT NULL`+presenceClause(p))
	if err != nil {
		return "", false, fmt.Errorf("error querying latest date: %w", err)
	}
	if !latest.Valid || latest.String == "" {
		return "", false, nil
	}
	return latest.String, true, nil
}

func (s *Store) RecordsAtDate(ctx context.Context, date string, p store.Presence, order store.Order) ([]models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM big_mac_index WHERE date = ?` + presenceClause(p)
	switch order {
	case store.OrderByID:
		query += ` ORDER BY id`
	case store.OrderByUSDAdjusted:
		query += ` ORDER BY USD_adjusted, id`
	default:
		query += ` ORDER BY name, id`
	}
	return s.selectRecords(ctx, "error querying records at date "+date, query, date)
}

func (s *Store) Summary(ctx context.Context) (models.GlobalSummary, error) {
	var summary models.GlobalSummary
	err := s.db.GetContext(ctx, &summary, `
		SELECT
			COUNT(DISTINCT name) AS total_countries,
			COUNT(DISTINCT date) AS total_dates,
			MIN(date) AS earliest_date,
			MAX(date) AS latest_date,
			AVG(USD_adjusted) AS avg_usd_adjusted,
			MIN(USD_adjusted) AS min_usd_adjusted,
			MAX(USD_adjusted) AS max_usd_adjusted
		FROM big_mac_index
		WHERE USD_adjusted IS NOT NULL`)
	if err != nil {
		return models.GlobalSummary{}, fmt.Errorf("error querying global summary: %w", err)
	}
	return summary, nil
}

func (s *Store) CountryTrend(ctx context.Context, name string, limit int) ([]models.Record, error) {
	if limit <= 0 {
		return s.selectRecords(ctx, "error querying country trend",
			`SELECT `+recordColumns+` FROM big_mac_index WHERE name = ? ORDER BY date, id`, name)
	}

	records, err := s.selectRecords(ctx, "error querying country trend",
		`SELECT `+recordColumns+` FROM big_mac_index WHERE name = ? ORDER BY date DESC, id DESC LIMIT ?`, name, limit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (s *Store) CompareCountries(ctx context.Context, names []string, date string) ([]models.Record, error) {
	if len(names) == 0 {
		return []models.Record{}, nil
	}
	query := `SELECT ` + recordColumns + ` FROM big_mac_index WHERE name IN (?)`
	args := []interface{}{names}
	if date != "" {
		query += ` AND date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY name, date, id`

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error building compare query: %w", err)
	}
	return s.selectRecords(ctx, "error querying countries", s.db.Rebind(query), expanded...)
}

func (s *Store) UpdateLocalPrice(ctx context.Context, name string, localPrice float64, date string) (previous string, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var latest struct {
		ID   int64  `db:"id"`
		Date string `db:"date"`
	}
	err = tx.GetContext(ctx, &latest,
		`SELECT id, COALESCE(date, '') AS date FROM big_mac_index WHERE name = ? ORDER BY date DESC, id DESC LIMIT 1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNoRecord
	}
	if err != nil {
		return "", fmt.Errorf("error looking up latest record for %s: %w", name, err)
	}

	if date <= latest.Date {
		return latest.Date, store.ErrNotNewer
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE big_mac_index SET local_price = ?, date = ? WHERE id = ?`, localPrice, date, latest.ID); err != nil {
		return latest.Date, fmt.Errorf("error updating local price for %s: %w", name, err)
	}
	if err = tx.Commit(); err != nil {
		return latest.Date, fmt.Errorf("error committing local price update: %w", err)
	}
	return latest.Date, nil
}

func (s *Store) InsertRecord(ctx context.Context, date string, localPrice float64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO big_mac_index (date, local_price) VALUES (?, ?)`, date, localPrice)
	if err != nil {
		return 0, fmt.Errorf("error inserting record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading inserted id: %w", err)
	}
	return id, nil
}

func (s *Store) InsertRecords(ctx context.Context, records []models.Record) (inserted int, err error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	columns := append(database.TextColumns(), database.NumericColumns()...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO big_mac_index (`+strings.Join(columns, ", ")+`) VALUES (`+placeholders+`)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			nullString(r.Date), nullString(r.ISOA3), nullString(r.CurrencyCode), nullString(r.Name),
			r.LocalPrice, r.DollarEx, r.DollarPrice,
			r.USDRaw, r.EURRaw, r.GBPRaw, r.JPYRaw, r.CNYRaw,
			r.GDPBigmac, r.AdjPrice,
			r.USDAdjusted, r.EURAdjusted, r.GBPAdjusted, r.JPYAdjusted, r.CNYAdjusted,
		)
		if err != nil {
			return inserted, fmt.Errorf("error inserting record (name: %s, date: %s): %w", r.Name, r.Date, err)
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing records: %w", err)
	}
	return inserted, nil
}

func (s *Store) selectRecords(ctx context.Context, errContext, query string, args ...interface{}) ([]models.Record, error) {
	records := []models.Record{}
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", errContext, err)
	}
	return records, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
