package valuation

type Locale string

const (
	LocaleEN   Locale = "en"
	LocaleZhTW Locale = "zh-TW"
)

// ParseLocale falls back to English for anything it does not know.
func ParseLocale(s string) Locale {
	switch Locale(s) {
	case LocaleZhTW:
		return LocaleZhTW
	default:
		return LocaleEN
	}
}

type labels struct {
	category map[Category]string

	severelyUndervalued string
	undervalued         string
	severelyOvervalued  string
	overvalued          string
	fair                string

	adjusted    string
	deviation   string
	localPrice  string
	dollarPrice string
}

var localized = map[Locale]labels{
	LocaleEN: {
		category: map[Category]string{
			Undervalued: "Currency undervalued",
			Neutral:     "Fair value",
			Overvalued:  "Currency overvalued",
		},
		severelyUndervalued: "🔽 Currency severely undervalued, a Big Mac is very cheap here",
		undervalued:         "📉 Currency undervalued, prices are an advantage",
		severelyOvervalued:  "🔺 Currency severely overvalued, a Big Mac is very expensive here",
		overvalued:          "📈 Currency overvalued, prices run high",
		fair:                "⚖️ Currency value is within a fair range",
		adjusted:            "USD adjusted",
		deviation:           "Deviation",
		localPrice:          "Local price",
		dollarPrice:         "Dollar price",
	},
	LocaleZhTW: {
		category: map[Category]string{
			Undervalued: "貨幣被低估",
			Neutral:     "價值合理",
			Overvalued:  "貨幣被高估",
		},
		severelyUndervalued: "🔽 貨幣嚴重被低估，大麥克價格相對非常便宜",
		undervalued:         "📉 貨幣被低估，具有價格優勢",
		severelyOvervalued:  "🔺 貨幣嚴重被高估，大麥克價格相對非常昂貴",
		overvalued:          "📈 貨幣被高估，價格偏高",
		fair:                "⚖️ 貨幣價值在合理範圍內",
		adjusted:            "USD 調整值",
		deviation:           "偏差程度",
		localPrice:          "當地價格",
		dollarPrice:         "美元價格",
	},
}

func (l labels) explanation(deviation float64) string {
	switch {
	case deviation <= -severeThreshold:
		return l.severelyUndervalued
	case deviation <= UndervaluedThreshold:
		return l.undervalued
	case deviation >= severeThreshold:
		return l.severelyOvervalued
	case deviation >= OvervaluedThreshold:
		return l.overvalued
	default:
		return l.fair
	}
}
