package database

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func columnNames(t *testing.T, db *sqlx.DB) map[string]bool {
	t.Helper()
	rows, err := db.Query("PRAGMA table_info(big_mac_index)")
	require.NoError(t, err)
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var cid, notnull, pk int
		var name, dataType string
		var dflt interface{}
		require.NoError(t, rows.Scan(&cid, &name, &dataType, &notnull, &dflt, &pk))
		cols[name] = true
	}
	require.NoError(t, rows.Err())
	return cols
}

func TestOpen_CreatesTableAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sqlite.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	cols := columnNames(t, db)
	assert.True(t, cols["id"])
	for _, col := range append(TextColumns(), NumericColumns()...) {
		assert.True(t, cols[col], "missing column %s", col)
	}
}

func TestMigrate_AddsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	raw, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE big_mac_index (id INTEGER PRIMARY KEY AUTOINCREMENT, date TEXT, name TEXT, local_price REAL)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO big_mac_index (date, name, local_price) VALUES ('2020-01-01', 'Japan', 390)`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	cols := columnNames(t, db)
	assert.True(t, cols["USD_adjusted"])
	assert.True(t, cols["currency_code"])

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM big_mac_index"))
	assert.Equal(t, 1, count)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
