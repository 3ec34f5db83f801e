package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticTable_Lookup(t *testing.T) {
	table := NewStaticTable()

	c, ok := table.Coordinates("Japan")
	require.True(t, ok)
	assert.Equal(t, Coordinates{Lat: 36.2048, Lng: 138.2529}, c)

	_, ok = table.Coordinates("japan")
	assert.False(t, ok, "names match exactly")

	_, ok = table.Coordinates("Euro area")
	assert.False(t, ok)
	assert.Greater(t, table.Len(), 100)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coords.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Euro area", "lat": 50.1109, "lng": 8.6821},
		{"name": "Japan", "lat": 35.6762, "lng": 139.6503}
	]`), 0o600))

	table := NewStaticTable()
	before := table.Len()
	require.NoError(t, table.LoadOverrides(path))

	c, ok := table.Coordinates("Euro area")
	require.True(t, ok)
	assert.Equal(t, 50.1109, c.Lat)

	c, ok = table.Coordinates("Japan")
	require.True(t, ok)
	assert.Equal(t, 139.6503, c.Lng)
	assert.Equal(t, before+1, table.Len())

	fresh := NewStaticTable()
	c, _ = fresh.Coordinates("Japan")
	assert.Equal(t, 138.2529, c.Lng, "overrides do not leak into new tables")
}

func TestLoadOverrides_Errors(t *testing.T) {
	dir := t.TempDir()
	table := NewStaticTable()

	assert.Error(t, table.LoadOverrides(filepath.Join(dir, "missing.json")))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o600))
	assert.Error(t, table.LoadOverrides(bad))

	noName := filepath.Join(dir, "noname.json")
	require.NoError(t, os.WriteFile(noName, []byte(`[{"lat": 1, "lng": 2}]`), 0o600))
	assert.Error(t, table.LoadOverrides(noName))

	outOfRange := filepath.Join(dir, "range.json")
	require.NoError(t, os.WriteFile(outOfRange, []byte(`[{"name": "Mars", "lat": 120, "lng": 2}]`), 0o600))
	assert.Error(t, table.LoadOverrides(outOfRange))
}
