package series

import "github.com/shopspring/decimal"

// Chart holds parallel arrays ready for a line chart.
type Chart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type TrendChart struct {
	Chart
	OriginalPrices    []string `json:"originalPrices"`
	ChangePercentages []string `json:"changePercentages"`
}

func toFloat(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

func PrepareGrowthChart(points []PricePoint) Chart {
	growth := GrowthRate(points)
	chart := Chart{Labels: make([]string, len(growth)), Data: make([]float64, len(growth))}
	for i, g := range growth {
		chart.Labels[i] = g.Date
		chart.Data[i] = toFloat(g.GrowthRate)
	}
	return chart
}

func PrepareRelativePriceChart(points []PricePoint) Chart {
	relative := RelativePrice(points)
	chart := Chart{Labels: make([]string, len(relative)), Data: make([]float64, len(relative))}
	for i, r := range relative {
		chart.Labels[i] = r.Date
		chart.Data[i] = toFloat(r.RelativePrice)
	}
	return chart
}

func PreparePriceTrendChart(points []PricePoint) TrendChart {
	trend := PriceTrend(points)
	n := len(trend)
	chart := TrendChart{
		Chart:             Chart{Labels: make([]string, n), Data: make([]float64, n)},
		OriginalPrices:    make([]string, n),
		ChangePercentages: make([]string, n),
	}
	for i, t := range trend {
		chart.Labels[i] = t.Date
		chart.Data[i] = toFloat(t.RelativePriceIndex)
		chart.OriginalPrices[i] = t.OriginalPrice
		chart.ChangePercentages[i] = t.ChangePercentage
	}
	return chart
}
