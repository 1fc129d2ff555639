// Package report renders a computed feature vector into human-readable
// artifacts: an HTML page with charts and a PNG plot of the input series.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tsfeat/tsfeat/internal/catalog"
	"github.com/tsfeat/tsfeat/internal/engine"
)

// WriteHTML renders a quality-code breakdown and a per-operation value
// scatter for one run.
func WriteHTML(w io.Writer, seriesName string, ops []catalog.Operation, res *engine.Result) error {
	if len(ops) != len(res.Values) {
		return fmt.Errorf("operation list and result length mismatch: %d vs %d", len(ops), len(res.Values))
	}

	qualityOrder := []engine.Quality{
		engine.QualityOK, engine.QualityFatal, engine.QualityNaN,
		engine.QualityPosInf, engine.QualityNegInf, engine.QualityComplex,
	}
	counts := make(map[engine.Quality]int)
	for _, q := range res.Quality {
		counts[q]++
	}

	labels := make([]string, 0, len(qualityOrder))
	bars := make([]opts.BarData, 0, len(qualityOrder))
	for _, q := range qualityOrder {
		labels = append(labels, q.String())
		bars = append(bars, opts.BarData{Value: counts[q]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Output quality",
			Subtitle: fmt.Sprintf("series=%s operations=%d", seriesName, len(ops)),
		}),
	)
	bar.SetXAxis(labels).AddSeries("operations", bars)

	points := make([]opts.ScatterData, 0, len(ops))
	for i := range ops {
		if res.Quality[i] != engine.QualityOK {
			continue
		}
		points = append(points, opts.ScatterData{
			Name:  ops[i].Name,
			Value: []interface{}{i, res.Values[i]},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Feature values",
			Subtitle: fmt.Sprintf("finite outputs=%d", len(points)),
		}),
	)
	scatter.AddSeries("features", points,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	page := components.NewPage()
	page.AddCharts(bar, scatter)
	return page.Render(w)
}
