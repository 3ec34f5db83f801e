package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/security"
	"github.com/username/bigmacindex/src/store/sqlite"
)

func TestRunToken(t *testing.T) {
	auth := security.NewAuthService("test-secret-that-is-at-least-32-bytes-long", time.Hour)

	var out bytes.Buffer
	require.NoError(t, runToken(&out, auth, "price-bot"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	subject, err := auth.ValidateToken(lines[0])
	require.NoError(t, err)
	assert.Equal(t, "price-bot", subject)
	assert.Contains(t, lines[1], "from now")

	short := security.NewAuthService("short", time.Hour)
	assert.Error(t, runToken(&out, short, "price-bot"))
}

func TestRunImport(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "index.csv")
	dbFile := filepath.Join(dir, "index.db")
	csv := "name,iso_a3,currency_code,local_price,dollar_ex,dollar_price,USD_raw,date,USD_adjusted\n" +
		"Japan,JPN,JPY,450,150,3.0,-0.4,2024-01-01,-0.45\n" +
		"Brazil,BRA,BRL,22.9,4.9,4.67,-0.1,2024-01-01,\n"
	require.NoError(t, os.WriteFile(csvFile, []byte(csv), 0o644))

	var out bytes.Buffer
	require.NoError(t, runImport(context.Background(), &out, dbFile, csvFile, 5*time.Minute))
	assert.Contains(t, out.String(), "Imported 2 of 2 rows")
	assert.Contains(t, out.String(), "CACHE_TTL (5m0s)")

	st, err := sqlite.New(dbFile)
	require.NoError(t, err)
	defer st.Close()

	records, err := st.FindRecords(context.Background(), models.RecordFilter{Name: "Brazil"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].USDAdjusted)
	assert.Equal(t, "BRL", records[0].CurrencyCode)
}

func TestRunImport_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := runImport(context.Background(), &out, filepath.Join(t.TempDir(), "x.db"), "does-not-exist.csv", time.Minute)
	assert.Error(t, err)
}
