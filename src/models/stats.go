package models

// LatestSnapshot is every record with USD_adjusted at the most recent such date.
type LatestSnapshot struct {
	Date  string   `json:"date"`
	Data  []Record `json:"data"`
	Count int      `json:"count"`
}

type StatEntry struct {
	Name                string   `json:"name"`
	DollarPrice         *float64 `json:"dollar_price"`
	LocalPrice          *float64 `json:"local_price"`
	CurrencyCode        string   `json:"currency_code"`
	USDAdjusted         *float64 `json:"USD_adjusted"`
	PercentageDeviation *float64 `json:"percentageDeviation"`
}

// NewStatEntry projects r. USD_adjusted is already a percentage, so the
// deviation is the same value.
func NewStatEntry(r Record) StatEntry {
	return StatEntry{
		Name:                r.Name,
		DollarPrice:         r.DollarPrice,
		LocalPrice:          r.LocalPrice,
		CurrencyCode:        r.CurrencyCode,
		USDAdjusted:         r.USDAdjusted,
		PercentageDeviation: r.USDAdjusted,
	}
}

type GlobalStats struct {
	HasData        bool      `json:"hasData"`
	Date           string    `json:"date"`
	MostExpensive  StatEntry `json:"mostExpensive"`
	Cheapest       StatEntry `json:"cheapest"`
	BestValue      StatEntry `json:"bestValue"`
	TotalCountries int       `json:"totalCountries"`
}

type GlobalSummary struct {
	TotalCountries int      `db:"total_countries" json:"total_countries"`
	TotalDates     int      `db:"total_dates" json:"total_dates"`
	EarliestDate   *string  `db:"earliest_date" json:"earliest_date"`
	LatestDate     *string  `db:"latest_date" json:"latest_date"`
	AvgUSDAdjusted *float64 `db:"avg_usd_adjusted" json:"avg_usd_adjusted"`
	MinUSDAdjusted *float64 `db:"min_usd_adjusted" json:"min_usd_adjusted"`
	MaxUSDAdjusted *float64 `db:"max_usd_adjusted" json:"max_usd_adjusted"`
}

type CountryTrend struct {
	Country string   `json:"country"`
	Data    []Record `json:"data"`
	Count   int      `json:"count"`
}

type Comparison struct {
	Countries []string `json:"countries"`
	Data      []Record `json:"data"`
	Count     int      `json:"count"`
}

type ClassifiedRecord struct {
	Name           string  `json:"name"`
	USDAdjusted    float64 `json:"USD_adjusted"`
	Classification string  `json:"classification"`
}

type ClassificationCounts struct {
	Undervalued int `json:"undervalued"`
	Neutral     int `json:"neutral"`
	Overvalued  int `json:"overvalued"`
}

type CurrencyClassification struct {
	Data       []ClassifiedRecord   `json:"data"`
	Statistics ClassificationCounts `json:"statistics"`
	Total      int                  `json:"total"`
}
