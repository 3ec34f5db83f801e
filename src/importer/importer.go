// Package importer loads the published Big Mac index CSV into the record store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/username/bigmacindex/src/database"
	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/metrics"
	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/utils"
)

// RecordInserter is the part of the store the importer writes through.
type RecordInserter interface {
	InsertRecords(ctx context.Context, records []models.Record) (int, error)
}

type Stats struct {
	Rows     int
	Inserted int
	Skipped  int
	// NullCells counts numeric cells that did not parse and were stored as NULL.
	NullCells int
}

// Parse reads the CSV header and maps each following row to a record by
// column name, so column order does not matter and unknown columns are
// ignored. Rows shorter than the header are skipped.
func Parse(r io.Reader) ([]models.Record, Stats, error) {
	var stats Stats
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, errors.New("CSV file is empty")
		}
		return nil, stats, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		index[col] = i
	}
	if _, ok := index["date"]; !ok {
		return nil, stats, fmt.Errorf("CSV header has no date column: %v", header)
	}

	var records []models.Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		stats.Rows++

		if len(row) < len(header) {
			stats.Skipped++
			logger.L.Warn("Skipping short CSV row", "line", line, "cells", len(row), "expected", len(header))
			continue
		}

		text := func(col string) string {
			if i, ok := index[col]; ok {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		number := func(col string) *float64 {
			i, ok := index[col]
			if !ok {
				return nil
			}
			cell := strings.TrimSpace(row[i])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || !utils.IsFinite(v) {
				if cell != "" {
					stats.NullCells++
				}
				return nil
			}
			return &v
		}

		records = append(records, models.Record{
			Date:         text("date"),
			ISOA3:        text("iso_a3"),
			CurrencyCode: text("currency_code"),
			Name:         text("name"),
			LocalPrice:   number("local_price"),
			DollarEx:     number("dollar_ex"),
			DollarPrice:  number("dollar_price"),
			USDRaw:       number("USD_raw"),
			EURRaw:       number("EUR_raw"),
			GBPRaw:       number("GBP_raw"),
			JPYRaw:       number("JPY_raw"),
			CNYRaw:       number("CNY_raw"),
			GDPBigmac:    number("GDP_bigmac"),
			AdjPrice:     number("adj_price"),
			USDAdjusted:  number("USD_adjusted"),
			EURAdjusted:  number("EUR_adjusted"),
			GBPAdjusted:  number("GBP_adjusted"),
			JPYAdjusted:  number("JPY_adjusted"),
			CNYAdjusted:  number("CNY_adjusted"),
		})
	}

	unknown := 0
	known := make(map[string]bool)
	for _, col := range append(database.TextColumns(), database.NumericColumns()...) {
		known[col] = true
	}
	for col := range index {
		if !known[col] {
			unknown++
		}
	}
	if unknown > 0 {
		logger.L.Info("Ignoring CSV columns not in big_mac_index", "count", unknown)
	}
	return records, stats, nil
}

// Import parses r and inserts every record in one transaction.
func Import(ctx context.Context, r io.Reader, st RecordInserter) (Stats, error) {
	records, stats, err := Parse(r)
	if err != nil {
		return stats, err
	}

	inserted, err := st.InsertRecords(ctx, records)
	if err != nil {
		return stats, fmt.Errorf("failed to insert imported records: %w", err)
	}
	stats.Inserted = inserted
	metrics.RecordImport(stats.Inserted, stats.Skipped)

	logger.L.Info("CSV import finished",
		"rows", stats.Rows,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
		"nullCells", stats.NullCells)
	return stats, nil
}
