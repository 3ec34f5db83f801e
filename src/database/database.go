package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/username/bigmacindex/src/logger"
	_ "modernc.org/sqlite"
)

const TableName = "big_mac_index"

// numericColumns lists the REAL columns in table order. Migrations and the
// importer both rely on it.
var numericColumns = []string{
	"local_price", "dollar_ex", "dollar_price",
	"USD_raw", "EUR_raw", "GBP_raw", "JPY_raw", "CNY_raw",
	"GDP_bigmac", "adj_price",
	"USD_adjusted", "EUR_adjusted", "GBP_adjusted", "JPY_adjusted", "CNY_adjusted",
}

var textColumns = []string{"date", "iso_a3", "currency_code", "name"}

// NumericColumns returns a copy of the REAL column names in table order.
func NumericColumns() []string {
	return append([]string(nil), numericColumns...)
}

// TextColumns returns a copy of the TEXT column names in table order.
func TextColumns() []string {
	return append([]string(nil), textColumns...)
}

// Open opens (creating if needed) the SQLite file at databasePath and makes
// sure big_mac_index has every expected column.
func Open(databasePath string) (*sqlx.DB, error) {
	if databasePath == "" {
		return nil, errors.New("database: path is required")
	}
	if databasePath != ":memory:" {
		if dir := filepath.Dir(databasePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	db, err := sqlx.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	db.SetMaxOpenConns(1)

	logger.L.Info("Checking database migrations", "databasePath", databasePath)
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.L.Info("Database tables ensured/created.")
	return db, nil
}

// Migrate creates big_mac_index when missing and adds any column an older
// file lacks.
func Migrate(db *sqlx.DB) error {
	exists, err := tableExists(db)
	if err != nil {
		return err
	}

	if !exists {
		if _, err := db.Exec(createTableStatement()); err != nil {
			logger.L.Error("failed to create tables", "error", err)
			return fmt.Errorf("failed to create %s: %w", TableName, err)
		}
	} else if err := addMissingColumns(db); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_big_mac_index_name_date ON big_mac_index (name, date)`,
		`CREATE INDEX IF NOT EXISTS idx_big_mac_index_date ON big_mac_index (date)`,
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

func createTableStatement() string {
	stmt := "CREATE TABLE IF NOT EXISTS " + TableName + " (\n\tid INTEGER PRIMARY KEY AUTOINCREMENT"
	for _, col := range textColumns {
		stmt += ",\n\t" + col + " TEXT"
	}
	for _, col := range numericColumns {
		stmt += ",\n\t" + col + " REAL"
	}
	return stmt + "\n)"
}

func tableExists(db *sqlx.DB) (bool, error) {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", TableName).Scan(&tableName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.L.Info("big_mac_index table does not exist, no migration needed as table will be created.")
			return false, nil
		}
		logger.L.Error("Error checking for big_mac_index table", "error", err)
		return false, fmt.Errorf("error checking for %s table: %w", TableName, err)
	}
	return true, nil
}

func addMissingColumns(db *sqlx.DB) error {
	rows, err := db.Query("PRAGMA table_info(" + TableName + ")")
	if err != nil {
		return fmt.Errorf("error querying table schema for %s: %w", TableName, err)
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, notnull, pk int
		var name, dataType string
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("error scanning column info for %s: %w", TableName, err)
		}
		columnExists[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating over column info for %s: %w", TableName, err)
	}
	rows.Close()

	add := func(col, colType string) error {
		if columnExists[col] {
			return nil
		}
		if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", TableName, col, colType)); err != nil {
			logger.L.Error("Error adding column", "table", TableName, "column", col, "error", err)
			return fmt.Errorf("error adding column %s: %w", col, err)
		}
		logger.L.Info("Added column", "table", TableName, "column", col)
		return nil
	}

	for _, col := range textColumns {
		if err := add(col, "TEXT"); err != nil {
			return err
		}
	}
	for _, col := range numericColumns {
		if err := add(col, "REAL"); err != nil {
			return err
		}
	}
	return nil
}
