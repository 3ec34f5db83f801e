package models

// Record is one row of the big_mac_index table.
// Nullable numeric columns are pointers so they serialize as null.
type Record struct {
	ID           int64    `db:"id" json:"id"`
	Date         string   `db:"date" json:"date"`
	ISOA3        string   `db:"iso_a3" json:"iso_a3"`
	CurrencyCode string   `db:"currency_code" json:"currency_code"`
	Name         string   `db:"name" json:"name"`
	LocalPrice   *float64 `db:"local_price" json:"local_price"`
	DollarEx     *float64 `db:"dollar_ex" json:"dollar_ex"`
	DollarPrice  *float64 `db:"dollar_price" json:"dollar_price"`
	USDRaw       *float64 `db:"USD_raw" json:"USD_raw"`
	EURRaw       *float64 `db:"EUR_raw" json:"EUR_raw"`
	GBPRaw       *float64 `db:"GBP_raw" json:"GBP_raw"`
	JPYRaw       *float64 `db:"JPY_raw" json:"JPY_raw"`
	CNYRaw       *float64 `db:"CNY_raw" json:"CNY_raw"`
	GDPBigmac    *float64 `db:"GDP_bigmac" json:"GDP_bigmac"`
	AdjPrice     *float64 `db:"adj_price" json:"adj_price"`
	USDAdjusted  *float64 `db:"USD_adjusted" json:"USD_adjusted"`
	EURAdjusted  *float64 `db:"EUR_adjusted" json:"EUR_adjusted"`
	GBPAdjusted  *float64 `db:"GBP_adjusted" json:"GBP_adjusted"`
	JPYAdjusted  *float64 `db:"JPY_adjusted" json:"JPY_adjusted"`
	CNYAdjusted  *float64 `db:"CNY_adjusted" json:"CNY_adjusted"`
}

// RecordFilter narrows FindRecords. Empty fields are ignored.
// Year, StartYear and EndYear are 4-digit years matched against the first
// four characters of the date.
type RecordFilter struct {
	Name      string
	Year      string
	StartYear string
	EndYear   string
}

// Float returns a pointer to v. Handy for building records in tests and the importer.
func Float(v float64) *float64 {
	return &v
}
