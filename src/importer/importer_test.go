package importer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/store/sqlite"
)

const sample = `date,iso_a3,currency_code,name,local_price,dollar_ex,dollar_price,USD_raw,EUR_raw,GBP_raw,JPY_raw,CNY_raw,GDP_bigmac,adj_price,USD_adjusted,EUR_adjusted,GBP_adjusted,JPY_adjusted,CNY_adjusted
2000-04-01,ARG,ARS,Argentina,2.5,1,2.5,-0.00398,0.05007,-0.16722,-0.09864,1.09091,,,,,,,
2024-01-01,JPN,JPY,Japan,450,146.9,3.06,-0.45,-0.4,-0.42,0,0.1,33000,4.6,-33.5,-30.1,-31.2,-12.3,5.5
2024-01-01,CHE,CHF,Switzerland,n/a,0.85
`

func TestParse(t *testing.T) {
	records, stats, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1, stats.Skipped)
	require.Len(t, records, 2)

	arg := records[0]
	assert.Equal(t, "Argentina", arg.Name)
	assert.Equal(t, "ARS", arg.CurrencyCode)
	assert.Equal(t, 2.5, *arg.LocalPrice)
	assert.Nil(t, arg.GDPBigmac)
	assert.Nil(t, arg.USDAdjusted)

	jpn := records[1]
	assert.Equal(t, "JPN", jpn.ISOA3)
	assert.Equal(t, -33.5, *jpn.USDAdjusted)
	assert.Equal(t, 5.5, *jpn.CNYAdjusted)
}

func TestParse_ColumnOrderAndBadCells(t *testing.T) {
	input := "\ufeffname,USD_adjusted,date,extra\nJapan,abc,2024-01-01,x\nBrazil,NaN,2024-01-01,y\n"
	records, stats, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Japan", records[0].Name)
	assert.Equal(t, "2024-01-01", records[0].Date)
	assert.Nil(t, records[0].USDAdjusted)
	assert.Nil(t, records[1].USDAdjusted)
	assert.Nil(t, records[0].LocalPrice)
	assert.Equal(t, 2, stats.NullCells)
}

func TestParse_Errors(t *testing.T) {
	_, _, err := Parse(strings.NewReader(""))
	assert.Error(t, err)

	_, _, err = Parse(strings.NewReader("name,local_price\nJapan,1\n"))
	assert.Error(t, err)
}

func TestImport_IntoSQLite(t *testing.T) {
	st, err := sqlite.New(filepath.Join(t.TempDir(), "import.db"))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	stats, err := Import(ctx, strings.NewReader(sample), st)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Inserted)

	names, err := st.DistinctNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Argentina", "Japan"}, names)

	rows, err := st.FindRecords(ctx, models.RecordFilter{Name: "Japan"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 146.9, *rows[0].DollarEx)
}

type failingInserter struct{}

func (failingInserter) InsertRecords(context.Context, []models.Record) (int, error) {
	return 0, errors.New("disk full")
}

func TestImport_InsertError(t *testing.T) {
	_, err := Import(context.Background(), strings.NewReader(sample), failingInserter{})
	assert.ErrorContains(t, err, "disk full")
}
