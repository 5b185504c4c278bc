package report

import (
	"fmt"
	"image/color"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteChart renders a bar chart of the mean prediction per method as PNG.
func WriteChart(path string, outcome model.Outcome) error {
	summaries := Summaries(outcome)
	if outcome.NoMatch || len(summaries) == 0 {
		return ErrNoMatch
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Prediksi Prevalensi Stunting: %s, %s",
		outcome.Selection.RegionLabel(), outcome.Selection.YearLabel())
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Metode"
	p.Y.Label.Text = "Prevalensi (%)"

	values := make(plotter.Values, len(summaries))
	labels := make([]string, len(summaries))
	maxValue := 0.0
	for i, s := range summaries {
		values[i] = s.MeanPrediction
		labels[i] = s.Method
		maxValue = max(maxValue, s.MeanPrediction)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 124, G: 58, B: 237, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	p.Y.Min = 0
	p.Y.Max = maxValue * 1.15
	if p.Y.Max == 0 {
		p.Y.Max = 1
	}

	xys := make([]plotter.XY, len(values))
	texts := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v + maxValue*0.02}
		texts[i] = fmt.Sprintf("%.2f%%", v)
	}
	valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("failed to build labels: %w", err)
	}
	p.Add(valueLabels)

	width := vg.Length(len(summaries)+2) * 1.5 * vg.Inch
	if err := p.Save(max(width, 6*vg.Inch), 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}
