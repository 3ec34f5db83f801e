// Package geo maps country display names to map coordinates.
package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/username/bigmacindex/src/logger"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Lookup resolves a display name to coordinates. Names are matched exactly.
type Lookup interface {
	Coordinates(name string) (Coordinates, bool)
}

type entry struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Table is a fixed name to coordinate mapping. It is not safe to call
// LoadOverrides while lookups are in flight; load everything at startup.
type Table struct {
	entries map[string]Coordinates
}

var _ Lookup = (*Table)(nil)

// NewStaticTable returns a table holding the built-in coordinates.
func NewStaticTable() *Table {
	entries := make(map[string]Coordinates, len(builtin))
	for name, c := range builtin {
		entries[name] = c
	}
	return &Table{entries: entries}
}

func (t *Table) Coordinates(name string) (Coordinates, bool) {
	c, ok := t.entries[name]
	return c, ok
}

func (t *Table) Len() int {
	return len(t.entries)
}

// LoadOverrides merges a JSON array of {"name", "lat", "lng"} objects into
// the table, replacing built-in entries with the same name.
func (t *Table) LoadOverrides(filePath string) error {
	logger.L.Info("Loading coordinate overrides", "path", filePath)
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		logger.L.Error("Failed to read coordinate file", "path", filePath, "error", err)
		return fmt.Errorf("failed to read coordinate file '%s': %w", filePath, err)
	}

	var overrides []entry
	if err := json.Unmarshal(fileData, &overrides); err != nil {
		logger.L.Error("Failed to unmarshal coordinate file", "path", filePath, "error", err)
		return fmt.Errorf("failed to unmarshal coordinates from '%s': %w", filePath, err)
	}

	for i, o := range overrides {
		if o.Name == "" {
			return fmt.Errorf("coordinate entry %d in '%s' has no name", i, filePath)
		}
		if o.Lat < -90 || o.Lat > 90 || o.Lng < -180 || o.Lng > 180 {
			return fmt.Errorf("coordinate entry %q in '%s' is out of range", o.Name, filePath)
		}
		t.entries[o.Name] = Coordinates{Lat: o.Lat, Lng: o.Lng}
	}
	logger.L.Info("Coordinate overrides loaded.", "path", filePath, "overrides", len(overrides), "countryCount", len(t.entries))
	return nil
}

var builtin = map[string]Coordinates{
	"United States":        {Lat: 39.8283, Lng: -98.5795},
	"China":                {Lat: 35.8617, Lng: 104.1954},
	"Japan":                {Lat: 36.2048, Lng: 138.2529},
	"United Kingdom":       {Lat: 55.3781, Lng: -3.4360},
	"Germany":              {Lat: 51.1657, Lng: 10.4515},
	"France":               {Lat: 46.6034, Lng: 1.8883},
	"Canada":               {Lat: 56.1304, Lng: -106.3468},
	"Australia":            {Lat: -25.2744, Lng: 133.7751},
	"Brazil":               {Lat: -14.2350, Lng: -51.9253},
	"India":                {Lat: 20.5937, Lng: 78.9629},
	"Russia":               {Lat: 61.5240, Lng: 105.3188},
	"Italy":                {Lat: 41.8719, Lng: 12.5674},
	"South Korea":          {Lat: 35.9078, Lng: 127.7669},
	"Thailand":             {Lat: 15.8700, Lng: 100.9925},
	"Malaysia":             {Lat: 4.2105, Lng: 101.9758},
	"Singapore":            {Lat: 1.3521, Lng: 103.8198},
	"Indonesia":            {Lat: -0.7893, Lng: 113.9213},
	"Philippines":          {Lat: 12.8797, Lng: 121.7740},
	"Taiwan":               {Lat: 23.6978, Lng: 120.9605},
	"Hong Kong":            {Lat: 22.3193, Lng: 114.1694},
	"Switzerland":          {Lat: 46.8182, Lng: 8.2275},
	"Sweden":               {Lat: 60.1282, Lng: 18.6435},
	"Norway":               {Lat: 60.4720, Lng: 8.4689},
	"Denmark":              {Lat: 56.2639, Lng: 9.5018},
	"Netherlands":          {Lat: 52.1326, Lng: 5.2913},
	"Belgium":              {Lat: 50.5039, Lng: 4.4699},
	"Austria":              {Lat: 47.5162, Lng: 14.5501},
	"Spain":                {Lat: 40.4637, Lng: -3.7492},
	"Portugal":             {Lat: 39.3999, Lng: -8.2245},
	"Poland":               {Lat: 51.9194, Lng: 19.1451},
	"Czech Republic":       {Lat: 49.8175, Lng: 15.4730},
	"Hungary":              {Lat: 47.1625, Lng: 19.5033},
	"Finland":              {Lat: 61.9241, Lng: 25.7482},
	"Ireland":              {Lat: 53.1424, Lng: -7.6921},
	"Greece":               {Lat: 39.0742, Lng: 21.8243},
	"Mexico":               {Lat: 23.6345, Lng: -102.5528},
	"Argentina":            {Lat: -38.4161, Lng: -63.6167},
	"Chile":                {Lat: -35.6751, Lng: -71.5430},
	"Colombia":             {Lat: 4.5709, Lng: -74.2973},
	"Peru":                 {Lat: -9.1900, Lng: -75.0152},
	"Venezuela":            {Lat: 6.4238, Lng: -66.5897},
	"Uruguay":              {Lat: -32.5228, Lng: -55.7658},
	"Ecuador":              {Lat: -1.8312, Lng: -78.1834},
	"Bolivia":              {Lat: -16.2902, Lng: -63.5887},
	"Paraguay":             {Lat: -23.4425, Lng: -58.4438},
	"Turkey":               {Lat: 38.9637, Lng: 35.2433},
	"Israel":               {Lat: 31.0461, Lng: 34.8516},
	"Saudi Arabia":         {Lat: 23.8859, Lng: 45.0792},
	"United Arab Emirates": {Lat: 23.4241, Lng: 53.8478},
	"South Africa":         {Lat: -30.5595, Lng: 22.9375},
	"Egypt":                {Lat: 26.0975, Lng: 30.0444},
	"Morocco":              {Lat: 31.7917, Lng: -7.0926},
	"Nigeria":              {Lat: 9.0820, Lng: 8.6753},
	"Kenya":                {Lat: -0.0236, Lng: 37.9062},
	"Ghana":                {Lat: 7.9465, Lng: -1.0232},
	"New Zealand":          {Lat: -40.9006, Lng: 174.8860},
	"Ukraine":              {Lat: 48.3794, Lng: 31.1656},
	"Romania":              {Lat: 45.9432, Lng: 24.9668},
	"Bulgaria":             {Lat: 42.7339, Lng: 25.4858},
	"Croatia":              {Lat: 45.1000, Lng: 15.2000},
	"Serbia":               {Lat: 44.0165, Lng: 21.0059},
	"Moldova":              {Lat: 47.4116, Lng: 28.3699},
	"Azerbaijan":           {Lat: 40.1431, Lng: 47.5769},
	"Georgia":              {Lat: 42.3154, Lng: 43.3569},
	"Lebanon":              {Lat: 33.8547, Lng: 35.8623},
	"Jordan":               {Lat: 30.5852, Lng: 36.2384},
	"Pakistan":             {Lat: 30.3753, Lng: 69.3451},
	"Sri Lanka":            {Lat: 7.8731, Lng: 80.7718},
	"Bangladesh":           {Lat: 23.6850, Lng: 90.3563},
	"Vietnam":              {Lat: 14.0583, Lng: 108.2772},
	"Guatemala":            {Lat: 15.7835, Lng: -90.2308},
	"Honduras":             {Lat: 15.2000, Lng: -86.2419},
	"Nicaragua":            {Lat: 12.2650, Lng: -85.2072},
	"Costa Rica":           {Lat: 9.7489, Lng: -83.7534},
	"Panama":               {Lat: 8.4380, Lng: -80.9821},
	"Estonia":              {Lat: 58.5953, Lng: 25.0136},
	"Latvia":               {Lat: 56.8796, Lng: 24.6032},
	"Lithuania":            {Lat: 55.1694, Lng: 23.8813},
	"Slovenia":             {Lat: 46.1512, Lng: 14.9955},
	"Slovakia":             {Lat: 48.6690, Lng: 19.6990},
	"Iceland":              {Lat: 64.9631, Lng: -19.0208},
	"Luxembourg":           {Lat: 49.8153, Lng: 6.1296},
	"Cyprus":               {Lat: 35.1264, Lng: 33.4299},
	"Malta":                {Lat: 35.9375, Lng: 14.3754},
	"Belarus":              {Lat: 53.7098, Lng: 27.9534},
	"Armenia":              {Lat: 40.0691, Lng: 45.0382},
	"Kazakhstan":           {Lat: 48.0196, Lng: 66.9237},
	"Uzbekistan":           {Lat: 41.3775, Lng: 64.5853},
	"Mongolia":             {Lat: 47.1164, Lng: 106.9057},
	"Cambodia":             {Lat: 12.5657, Lng: 104.9910},
	"Laos":                 {Lat: 19.8563, Lng: 102.4955},
	"Myanmar":              {Lat: 21.9162, Lng: 95.9560},
	"Nepal":                {Lat: 28.3949, Lng: 84.1240},
	"Bhutan":               {Lat: 27.5142, Lng: 90.4336},
	"Maldives":             {Lat: 3.2028, Lng: 73.2207},
	"Brunei":               {Lat: 4.5353, Lng: 114.7277},
	"Tunisia":              {Lat: 33.8869, Lng: 9.5375},
	"Algeria":              {Lat: 28.0339, Lng: 1.6596},
	"Libya":                {Lat: 26.3351, Lng: 17.2283},
	"Sudan":                {Lat: 12.8628, Lng: 30.2176},
	"Ethiopia":             {Lat: 9.1450, Lng: 40.4897},
	"Tanzania":             {Lat: -6.3690, Lng: 34.8888},
	"Uganda":               {Lat: 1.3733, Lng: 32.2903},
	"Rwanda":               {Lat: -1.9403, Lng: 29.8739},
	"Botswana":             {Lat: -22.3285, Lng: 24.6849},
	"Namibia":              {Lat: -22.9576, Lng: 18.4904},
	"Zambia":               {Lat: -13.1339, Lng: 27.8493},
	"Zimbabwe":             {Lat: -19.0154, Lng: 29.1549},
	"Madagascar":           {Lat: -18.7669, Lng: 46.8691},
	"Mauritius":            {Lat: -20.3484, Lng: 57.5522},
	"Seychelles":           {Lat: -4.6796, Lng: 55.4920},
}
