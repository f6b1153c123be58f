// Package chart renders the per-category breakdown as a PNG bar chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"fintrack/internal/services"
)

// ErrNoData means there is nothing to plot for the requested breakdown.
var ErrNoData = errors.New("no data for chart")

// BreakdownPNG plots one bar per category share, labeled with the
// category and its dollar amount.
func BreakdownPNG(title string, shares []services.CategoryShare) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrNoData
	}

	values := make([]chart.Value, 0, len(shares))
	var maxDollars float64
	for _, s := range shares {
		dollars := float64(s.Cents) / 100
		if dollars > maxDollars {
			maxDollars = dollars
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", s.Category, s.Percent),
			Value: dollars,
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    900,
		Height:   480,
		BarWidth: 64,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 24, Right: 24, Bottom: 24},
		},
		YAxis: chart.YAxis{
			// Bars anchor at zero. An explicit range also keeps the
			// chart renderable when every bar carries the same value,
			// which would otherwise collapse the derived range.
			Range: &chart.ContinuousRange{Min: 0, Max: maxDollars},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("$%.0f", v.(float64))
			},
		},
		Bars: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
