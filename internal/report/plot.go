package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tsfeat/tsfeat/internal/series"
)

// SaveSeriesPlot writes a PNG of the raw series and its standardized
// companion to path. Useful when eyeballing why a run produced unexpected
// quality codes.
func SaveSeriesPlot(path string, x *series.Series, y *series.Standardized) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Series %s (n=%d)", x.Name, len(x.Data))
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "value"

	rawLine, err := plotter.NewLine(toXYs(x.Data))
	if err != nil {
		return fmt.Errorf("raw line: %w", err)
	}
	p.Add(rawLine)
	p.Legend.Add("raw", rawLine)

	if y != nil {
		stdLine, err := plotter.NewLine(toXYs(y.Data))
		if err != nil {
			return fmt.Errorf("standardized line: %w", err)
		}
		stdLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(stdLine)
		p.Legend.Add("standardized", stdLine)
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func toXYs(data []float64) plotter.XYs {
	xys := make(plotter.XYs, len(data))
	for i, v := range data {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	return xys
}
