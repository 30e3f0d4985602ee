// Package render turns the ticker table into a single bar line.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/franco-grobler/tickerbar/internal/color"
	"github.com/franco-grobler/tickerbar/internal/market"
)

type unitRule struct {
	contains string
	prefix   string
}

// Checked in order, first match wins. Quotes matching none are suffixed.
var unitRules = []unitRule{
	{contains: "EUR", prefix: "€"},
	{contains: "USD", prefix: "$"},
	{contains: "BRL", prefix: "R$"},
}

// Presenter renders a table in a fixed render mode.
type Presenter struct {
	mode color.Mode
}

// NewPresenter creates a presenter for mode.
func NewPresenter(mode color.Mode) *Presenter {
	return &Presenter{mode: mode}
}

// Render returns the bar line for t, without a line terminator.
//
// Each group is written as its title-styled base followed by
// "<value> (<change>) " for every member, in table order.
func (p *Presenter) Render(t *market.Table) string {
	var sb strings.Builder

	for _, g := range t.Groups() {
		sb.WriteString(color.Render(" "+g.Base+" ", color.Title, p.mode))
		sb.WriteByte(' ')

		for i := range g.Members {
			m := &g.Members[i]
			sb.WriteString(FormatAverage(m.Average, m.Definition.Quote))
			sb.WriteString(" (")
			sb.WriteString(color.Render(FormatChange(m.Change), Tone(m.Direction), p.mode))
			sb.WriteString(") ")
		}
	}

	return sb.String()
}

// FormatAverage formats a price with magnitude-aware precision and the
// currency sign or unit of quote. Anything at or above 0.01 gets two
// decimals, so 0.45 EUR is "€0.45".
func FormatAverage(average float64, quote string) string {
	number := strconv.FormatFloat(average, 'f', int(market.Precision(average)), 64)

	for _, rule := range unitRules {
		if strings.Contains(quote, rule.contains) {
			return rule.prefix + number
		}
	}
	return number + " " + quote
}

// FormatChange formats a percent change with one decimal.
func FormatChange(change float64) string {
	return fmt.Sprintf("%.1f%%", change)
}

// Tone maps the sign of direction to a color role. Zero and NaN are neutral.
func Tone(direction float64) color.Role {
	switch {
	case math.IsNaN(direction):
		return color.Neutral
	case direction > 0:
		return color.Positive
	case direction < 0:
		return color.Negative
	default:
		return color.Neutral
	}
}
