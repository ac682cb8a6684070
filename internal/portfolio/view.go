// Package portfolio derives display values from a user's ledger state:
// pie-chart series with an uninvested remainder slice, percentage strings
// and deterministic slice colors.
package portfolio

import (
	"errors"
	"fmt"
	"math"
)

// UninvestedLabel is the trailing slice for unallocated points.
const UninvestedLabel = "Uninvested Points"

var (
	ErrDivisionUndefined = errors.New("percentage undefined for zero ceiling")
	ErrOverCeiling       = errors.New("entries exceed budget ceiling")
)

// Slice is one invested position for chart purposes.
type Slice struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Series is chart-ready: parallel labels, values and colors.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// palette for invested slices, in slice-index order.
var palette = []string{
	"#3b82f6", // blue
	"#10b981", // green
	"#6366f1", // indigo
	"#ec4899", // pink
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#06b6d4", // cyan
	"#f97316", // orange
}

// uninvestedColor is always the slate slice, whatever the index.
const uninvestedColor = "#64748b"

// goldenAngle spreads overflow hues so consecutive generated colors stay
// far apart.
const goldenAngle = 137.508

// SliceColor maps a slice index to a color. Indexes beyond the fixed
// palette rotate the hue deterministically; no randomness, so renders and
// tests are reproducible.
func SliceColor(index int) string {
	if index < 0 {
		index = 0
	}
	if index < len(palette) {
		return palette[index]
	}
	hue := math.Mod(float64(index-len(palette))*goldenAngle, 360)
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", int(hue))
}

// ChartSeries builds the pie series: one label/value per entry plus the
// uninvested remainder when there is one. An empty ledger is a single
// full-ceiling uninvested slice. Entries summing past the ceiling are an
// invariant violation and error out rather than rendering a bogus chart.
func ChartSeries(entries []Slice, ceiling float64) (Series, error) {
	if len(entries) == 0 {
		return Series{
			Labels: []string{UninvestedLabel},
			Values: []float64{ceiling},
			Colors: []string{uninvestedColor},
		}, nil
	}

	var invested float64
	for _, e := range entries {
		invested += e.Amount
	}
	remaining := ceiling - invested
	if remaining < 0 {
		return Series{}, ErrOverCeiling
	}

	s := Series{
		Labels: make([]string, 0, len(entries)+1),
		Values: make([]float64, 0, len(entries)+1),
		Colors: make([]string, 0, len(entries)+1),
	}
	for i, e := range entries {
		s.Labels = append(s.Labels, e.Name)
		s.Values = append(s.Values, e.Amount)
		s.Colors = append(s.Colors, SliceColor(i))
	}
	if remaining > 0 {
		s.Labels = append(s.Labels, UninvestedLabel)
		s.Values = append(s.Values, remaining)
		s.Colors = append(s.Colors, uninvestedColor)
	}
	return s, nil
}

// Percentage formats amount as a share of ceiling with one decimal place,
// e.g. Percentage(25, 100) = "25.0". A zero ceiling is undefined, not
// NaN/Inf.
func Percentage(amount, ceiling float64) (string, error) {
	if ceiling == 0 {
		return "", ErrDivisionUndefined
	}
	return fmt.Sprintf("%.1f", amount/ceiling*100), nil
}
