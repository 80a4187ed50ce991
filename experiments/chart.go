package experiments

import (
	"fmt"
	"io"

	"football/experiments/metrics"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is one swept parameter with its solver runs in sweep order.
type Series struct {
	Name    string // Swept parameter, "p" or "q"
	Title   string
	Records []metrics.SolveRecord
}

func (s Series) x(record metrics.SolveRecord) float64 {
	if s.Name == "p" {
		return record.P
	}
	return record.Q
}

func (s Series) lineChart() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.Name}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Probability of Goal"}),
	)

	xs := make([]string, 0, len(s.Records))
	items := make([]opts.LineData, 0, len(s.Records))
	for _, record := range s.Records {
		xs = append(xs, fmt.Sprintf("%.1f", s.x(record)))
		items = append(items, opts.LineData{Value: record.Value})
	}
	line.SetXAxis(xs).AddSeries("goal probability", items)
	return line
}

// RenderCharts writes an HTML page with one line chart per series.
func RenderCharts(w io.Writer, series ...Series) error {
	page := components.NewPage()
	for _, s := range series {
		page.AddCharts(s.lineChart())
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}
