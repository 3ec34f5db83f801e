// Package series turns a country's price history into normalized chart
// series: period-over-period growth, price relative to the first period and
// a price-trend index rebased to 1.
package series

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/utils"
)

// PricePoint is the only slice of a record the transforms need.
type PricePoint struct {
	Date       string
	LocalPrice *float64
}

type GrowthPoint struct {
	Date       string `json:"date"`
	GrowthRate string `json:"growthRate"`
}

type RelativePricePoint struct {
	Date          string `json:"date"`
	RelativePrice string `json:"relativePrice"`
}

type TrendPoint struct {
	Date               string `json:"date"`
	RelativePriceIndex string `json:"relativePriceIndex"`
	OriginalPrice      string `json:"originalPrice"`
	ChangePercentage   string `json:"changePercentage"`
}

// FromRecords keeps date and local_price of each record, in input order.
func FromRecords(records []models.Record) []PricePoint {
	points := make([]PricePoint, len(records))
	for i, r := range records {
		points[i] = PricePoint{Date: r.Date, LocalPrice: r.LocalPrice}
	}
	return points
}

// sortByDate returns a copy of points ordered by calendar date. Points whose
// date does not parse keep their relative order after every dated point.
func sortByDate(points []PricePoint) []PricePoint {
	type keyed struct {
		point PricePoint
		unix  int64
		ok    bool
	}
	tmp := make([]keyed, len(points))
	for i, p := range points {
		t, ok := utils.ParseDate(p.Date)
		tmp[i] = keyed{point: p, unix: t.Unix(), ok: ok}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		if tmp[i].ok != tmp[j].ok {
			return tmp[i].ok
		}
		return tmp[i].ok && tmp[i].unix < tmp[j].unix
	})

	sorted := make([]PricePoint, len(tmp))
	for i, k := range tmp {
		sorted[i] = k.point
	}
	return sorted
}

// fixed formats v half away from zero with the given number of decimals.
func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// GrowthRate computes the percentage change between consecutive points.
// A pair is skipped when either price is missing or the earlier one is zero.
func GrowthRate(points []PricePoint) []GrowthPoint {
	sorted := sortByDate(points)
	growth := []GrowthPoint{}

	for i := 1; i < len(sorted); i++ {
		current, okCurrent := utils.FiniteValue(sorted[i].LocalPrice)
		previous, okPrevious := utils.FiniteValue(sorted[i-1].LocalPrice)
		if !okCurrent || !okPrevious || previous == 0 {
			continue
		}
		rate := (current - previous) / previous * 100
		if !utils.IsFinite(rate) {
			continue
		}
		growth = append(growth, GrowthPoint{Date: sorted[i].Date, GrowthRate: fixed(rate, 2)})
	}
	return growth
}

// base returns the price of the earliest point. The earliest point is used
// even when a later one would be usable.
func base(sorted []PricePoint, transform string) (float64, bool) {
	if len(sorted) == 0 {
		return 0, false
	}
	first, ok := utils.FiniteValue(sorted[0].LocalPrice)
	if !ok || first == 0 {
		logger.L.Warn("First price is missing or zero, series not computed",
			"transform", transform, "date", sorted[0].Date)
		return 0, false
	}
	return first, true
}

// RelativePrice expresses every price as a percentage above or below the
// earliest price.
func RelativePrice(points []PricePoint) []RelativePricePoint {
	sorted := sortByDate(points)
	relative := []RelativePricePoint{}

	first, ok := base(sorted, "relativePrice")
	if !ok {
		return relative
	}
	for _, p := range sorted {
		current, ok := utils.FiniteValue(p.LocalPrice)
		if !ok {
			continue
		}
		v := (current - first) / first * 100
		if !utils.IsFinite(v) {
			continue
		}
		relative = append(relative, RelativePricePoint{Date: p.Date, RelativePrice: fixed(v, 2)})
	}
	return relative
}

// PriceTrend rebases the series so the earliest price is 1.
func PriceTrend(points []PricePoint) []TrendPoint {
	sorted := sortByDate(points)
	trend := []TrendPoint{}

	first, ok := base(sorted, "priceTrend")
	if !ok {
		return trend
	}
	for _, p := range sorted {
		current, ok := utils.FiniteValue(p.LocalPrice)
		if !ok {
			continue
		}
		index := current / first
		if !utils.IsFinite(index) {
			continue
		}
		// changePercentage uses the unrounded index.
		change := (index - 1) * 100
		trend = append(trend, TrendPoint{
			Date:               p.Date,
			RelativePriceIndex: fixed(index, 4),
			OriginalPrice:      fixed(current, 2),
			ChangePercentage:   fixed(change, 2),
		})
	}
	return trend
}
