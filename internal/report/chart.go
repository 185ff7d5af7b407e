package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"ledger/internal/core"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no category totals to chart")

const (
	chartWidth    = 1024
	chartHeight   = 512
	chartBarWidth = 60
)

// CategoryChart draws totals as a PNG bar chart, one bar per category in the
// order given. Values are plotted in minor units.
func CategoryChart(w io.Writer, title string, totals []core.CategoryTotal) error {
	if len(totals) == 0 {
		return ErrNoChartData
	}

	bars := make([]chart.Value, 0, len(totals))
	var top float64
	for _, ct := range totals {
		v := float64(ct.Total)
		if v > top {
			top = v
		}
		bars = append(bars, chart.Value{Label: ct.Category, Value: v})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: chartBarWidth,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			// A single bar would otherwise give a zero-height range.
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render category chart: %w", err)
	}
	return nil
}
