package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SalaryRange is the expected band for a position.
type SalaryRange struct {
	Min float64
	Max float64
}

// DefaultSalaryRange applies to positions without an entry in SalaryRanges.
var DefaultSalaryRange = SalaryRange{Min: 500000, Max: 1000000}

// SalaryRanges is keyed by the position as entered, before normalization.
var SalaryRanges = map[string]SalaryRange{
	"Software Engineer":   {Min: 50000, Max: 120000},
	"Engineer":            {Min: 45000, Max: 100000},
	"Senior Developer":    {Min: 80000, Max: 1800000},
	"HR Executive":        {Min: 40000, Max: 700000},
	"Sales Executive":     {Min: 35000, Max: 800000},
	"Support Staff":       {Min: 25000, Max: 500000},
	"Marketing Executive": {Min: 40000, Max: 850000},
	"Consulting Engineer": {Min: 70000, Max: 1300000},
	"Accountant":          {Min: 50000, Max: 950000},
}

// RangeFor returns the band for position.
func RangeFor(position string) SalaryRange {
	if r, ok := SalaryRanges[position]; ok {
		return r
	}
	return DefaultSalaryRange
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders v as rupees without decimals.
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("₹%.0f", v)
}

// RenderSalaryChart draws the position's minimum, the prediction and the
// position's maximum as horizontal bars scaled to width columns.
func RenderSalaryChart(position string, predicted float64, width int) string {
	if width < 10 {
		width = 10
	}
	r := RangeFor(position)

	bars := []struct {
		color lipgloss.Color
		label string
		value float64
	}{
		{label: "Minimum", value: r.Min, color: MinimumColor},
		{label: "Predicted", value: predicted, color: PredictedColor},
		{label: "Maximum", value: r.Max, color: MaximumColor},
	}

	peak := math.Max(r.Max, predicted)
	lines := make([]string, 0, len(bars)+1)
	lines = append(lines, BoldStyle.Render(ChartIcon+" Salary range for "+position))
	for _, b := range bars {
		n := barLength(b.value, peak, width)
		bar := lipgloss.NewStyle().Foreground(b.color).Render(strings.Repeat("█", n))
		lines = append(lines, LabelStyle.Render(b.label)+" "+bar+" "+SubtleStyle.Render(FormatAmount(b.value)))
	}

	return strings.Join(lines, "\n")
}

func barLength(value, peak float64, width int) int {
	if peak <= 0 || value <= 0 || math.IsNaN(value) {
		return 0
	}
	n := int(math.Round(value / peak * float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}
