package valuation

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/bigmacindex/src/geo"
	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/utils"
)

const (
	ReasonInvalidValue  = "invalid value"
	ReasonNoCoordinates = "no coordinates"
)

// Classified is a record that can be placed on the map.
type Classified struct {
	Name                string          `json:"name"`
	Date                string          `json:"date"`
	Coordinates         geo.Coordinates `json:"coordinates"`
	USDAdjusted         float64         `json:"USD_adjusted"`
	PercentageDeviation float64         `json:"percentageDeviation"`
	LocalPrice          *float64        `json:"local_price"`
	CurrencyCode        string          `json:"currency_code"`
	DollarPrice         *float64        `json:"dollar_price"`
	Category            Category        `json:"category"`
	Color               string          `json:"color"`
	Radius              float64         `json:"radius"`
	CategoryEmoji       string          `json:"categoryEmoji"`
	CategoryText        string          `json:"categoryText"`
	Explanation         string          `json:"explanation"`
}

// Rejected is a record left off the map and why.
type Rejected struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	USDAdjusted *float64 `json:"USD_adjusted"`
	Reason      string   `json:"reason"`
}

type Statistics struct {
	Total         int `json:"total"`
	Undervalued   int `json:"undervalued"`
	Neutral       int `json:"neutral"`
	Overvalued    int `json:"overvalued"`
	NoCoordinates int `json:"noCoordinates"`
	InvalidValue  int `json:"invalidValue"`
}

type Result struct {
	Valid      []Classified `json:"valid"`
	Invalid    []Rejected   `json:"invalid"`
	Statistics Statistics   `json:"statistics"`
	HasData    bool         `json:"hasData"`
}

type Classifier struct {
	lookup geo.Lookup
	locale Locale
	labels labels
}

func NewClassifier(lookup geo.Lookup, locale Locale) *Classifier {
	l, ok := localized[locale]
	if !ok {
		locale = LocaleEN
		l = localized[LocaleEN]
	}
	return &Classifier{lookup: lookup, locale: locale, labels: l}
}

func (c *Classifier) Locale() Locale {
	return c.locale
}

func (c *Classifier) Label(cat Category) string {
	return c.labels.category[cat]
}

// Explanation describes a deviation in words, with a stronger wording past ±20.
func (c *Classifier) Explanation(deviation float64) string {
	return c.labels.explanation(deviation)
}

// Classify checks a single record. It reports the rejection reason when the
// record cannot be placed on the map.
func (c *Classifier) Classify(r models.Record) (Classified, string) {
	deviation, ok := utils.FiniteValue(r.USDAdjusted)
	if !ok {
		return Classified{}, ReasonInvalidValue
	}
	coords, ok := c.lookup.Coordinates(r.Name)
	if !ok {
		return Classified{}, ReasonNoCoordinates
	}

	cat := Classify(deviation)
	return Classified{
		Name:                r.Name,
		Date:                r.Date,
		Coordinates:         coords,
		USDAdjusted:         deviation,
		PercentageDeviation: deviation,
		LocalPrice:          r.LocalPrice,
		CurrencyCode:        r.CurrencyCode,
		DollarPrice:         r.DollarPrice,
		Category:            cat,
		Color:               Color(cat),
		Radius:              Radius(deviation),
		CategoryEmoji:       Emoji(cat),
		CategoryText:        c.Label(cat),
		Explanation:         c.Explanation(deviation),
	}, ""
}

// Preprocess splits records into those that can be drawn and those that
// cannot, counting each category along the way.
func (c *Classifier) Preprocess(records []models.Record) Result {
	result := Result{
		Valid:      []Classified{},
		Invalid:    []Rejected{},
		Statistics: Statistics{Total: len(records)},
	}

	for _, r := range records {
		item, reason := c.Classify(r)
		switch reason {
		case ReasonInvalidValue:
			result.Statistics.InvalidValue++
		case ReasonNoCoordinates:
			result.Statistics.NoCoordinates++
		}
		if reason != "" {
			result.Invalid = append(result.Invalid, Rejected{
				Name:        r.Name,
				Date:        r.Date,
				USDAdjusted: r.USDAdjusted,
				Reason:      reason,
			})
			continue
		}

		switch item.Category {
		case Undervalued:
			result.Statistics.Undervalued++
		case Overvalued:
			result.Statistics.Overvalued++
		default:
			result.Statistics.Neutral++
		}
		result.Valid = append(result.Valid, item)
	}

	result.HasData = len(result.Valid) > 0
	return result
}

type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

type Distribution struct {
	Undervalued int `json:"undervalued"`
	Neutral     int `json:"neutral"`
	Overvalued  int `json:"overvalued"`
}

type Issues struct {
	NoCoordinates    int      `json:"noCoordinates"`
	InvalidValue     int      `json:"invalidValue"`
	MissingCountries []string `json:"missingCountries"`
}

type Report struct {
	Summary      Summary      `json:"summary"`
	Distribution Distribution `json:"distribution"`
	Issues       Issues       `json:"issues"`
}

// NewReport summarizes r for data-quality checks. MissingCountries lists the
// names rejected for lack of coordinates, in input order.
func NewReport(r Result) Report {
	s := r.Statistics
	missing := []string{}
	for _, item := range r.Invalid {
		if item.Reason == ReasonNoCoordinates {
			missing = append(missing, item.Name)
		}
	}
	return Report{
		Summary: Summary{
			Total:   s.Total,
			Valid:   s.Undervalued + s.Neutral + s.Overvalued,
			Invalid: s.InvalidValue + s.NoCoordinates,
		},
		Distribution: Distribution{
			Undervalued: s.Undervalued,
			Neutral:     s.Neutral,
			Overvalued:  s.Overvalued,
		},
		Issues: Issues{
			NoCoordinates:    s.NoCoordinates,
			InvalidValue:     s.InvalidValue,
			MissingCountries: missing,
		},
	}
}

// Marker is everything a map widget needs to draw one circle.
type Marker struct {
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Category Category `json:"category"`
	Color    string   `json:"color"`
	Radius   float64  `json:"radius"`
	Popup    string   `json:"popup"`
}

func (c *Classifier) Markers(r Result) ([]Marker, error) {
	markers := make([]Marker, 0, len(r.Valid))
	for _, item := range r.Valid {
		popup, err := c.Popup(item)
		if err != nil {
			return nil, err
		}
		markers = append(markers, Marker{
			Name:     item.Name,
			Lat:      item.Coordinates.Lat,
			Lng:      item.Coordinates.Lng,
			Category: item.Category,
			Color:    item.Color,
			Radius:   item.Radius,
			Popup:    popup,
		})
	}
	return markers, nil
}

var popupTemplate = template.Must(template.New("popup").Parse(`<div class="map-popup">
  <h4>{{.Emoji}} {{.Name}}</h4>
  <div class="popup-content">
    <div class="status-badge status-{{.Category}}">{{.CategoryText}}</div>
    <table class="popup-table">
      <tr><td><strong>{{.AdjustedLabel}}:</strong></td><td>{{.Adjusted}}</td></tr>
      <tr><td><strong>{{.DeviationLabel}}:</strong></td><td>{{.Deviation}}%</td></tr>
{{- if .LocalPrice}}
      <tr><td><strong>{{.LocalPriceLabel}}:</strong></td><td>{{.LocalPrice}} {{.CurrencyCode}}</td></tr>
{{- end}}
{{- if .DollarPrice}}
      <tr><td><strong>{{.DollarPriceLabel}}:</strong></td><td>${{.DollarPrice}}</td></tr>
{{- end}}
    </table>
    <div class="explanation">{{.Explanation}}</div>
  </div>
</div>`))

type popupView struct {
	Emoji            string
	Name             string
	Category         Category
	CategoryText     string
	AdjustedLabel    string
	Adjusted         string
	DeviationLabel   string
	Deviation        template.HTML
	LocalPriceLabel  string
	LocalPrice       string
	CurrencyCode     string
	DollarPriceLabel string
	DollarPrice      string
	Explanation      string
}

// toFixed rounds half away from zero and keeps the minus sign on negatives
// that round to zero, so -0.04 prints as -0.0.
func toFixed(v float64, places int32) string {
	s := decimal.NewFromFloat(v).StringFixed(places)
	if v < 0 && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

// shortest prints v the way a browser would, without trailing zeros.
func shortest(p *float64) string {
	v, ok := utils.FiniteValue(p)
	if !ok || v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Popup renders the HTML shown when a marker is clicked. Text values are
// escaped.
func (c *Classifier) Popup(item Classified) (string, error) {
	// Only digits and a sign, so it is passed through unescaped to keep the
	// leading plus readable.
	deviation := toFixed(item.PercentageDeviation, 1)
	if item.PercentageDeviation >= 0 {
		deviation = "+" + deviation
	}

	view := popupView{
		Emoji:            item.CategoryEmoji,
		Name:             item.Name,
		Category:         item.Category,
		CategoryText:     item.CategoryText,
		AdjustedLabel:    c.labels.adjusted,
		Adjusted:         toFixed(item.USDAdjusted, 3),
		DeviationLabel:   c.labels.deviation,
		Deviation:        template.HTML(deviation),
		LocalPriceLabel:  c.labels.localPrice,
		LocalPrice:       shortest(item.LocalPrice),
		CurrencyCode:     item.CurrencyCode,
		DollarPriceLabel: c.labels.dollarPrice,
		DollarPrice:      shortest(item.DollarPrice),
		Explanation:      item.Explanation,
	}

	var buf bytes.Buffer
	if err := popupTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render popup for %s: %w", item.Name, err)
	}
	return buf.String(), nil
}
