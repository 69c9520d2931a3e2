package report

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/i474232898/temperature-trend/internal/climate"
	"github.com/i474232898/temperature-trend/internal/common"
)

var (
	minColor = color.RGBA{R: 220, A: 255}
	maxColor = color.RGBA{B: 220, A: 255}
)

// SavePlot draws both series with their trend lines and writes the image to
// path. The format follows the file extension (png, svg, pdf...). A series
// too short to fit is drawn without its trend line; an empty series is left
// out. It fails with ErrInsufficientData only when both series are empty.
func SavePlot(path string, avg climate.YearlyAverages) error {
	if len(avg.Min) == 0 && len(avg.Max) == 0 {
		return ErrInsufficientData
	}

	p := plot.New()
	p.X.Label.Text = "Years"
	p.Y.Label.Text = "Temp (C)"
	p.Legend.Top = true

	if err := addSeries(p, avg.Min, "Yearly Avg. Min. Temps", minColor); err != nil {
		return fmt.Errorf("min series: %w", err)
	}
	if err := addSeries(p, avg.Max, "Yearly Avg. Max. Temps", maxColor); err != nil {
		return fmt.Errorf("max series: %w", err)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

func addSeries(p *plot.Plot, series map[int]float64, name string, c color.Color) error {
	if len(series) == 0 {
		return nil
	}

	years := common.SortedYears(series)
	points := make(plotter.XYs, len(years))
	for i, y := range years {
		points[i].X = float64(y)
		points[i].Y = series[y]
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = c
	p.Add(scatter)
	p.Legend.Add(name, scatter)

	line, err := Fit(series)
	if errors.Is(err, ErrInsufficientData) {
		return nil
	}
	if err != nil {
		return err
	}

	trend := make(plotter.XYs, len(years))
	for i, y := range years {
		trend[i].X = float64(y)
		trend[i].Y = line.At(float64(y))
	}

	fit, err := plotter.NewLine(trend)
	if err != nil {
		return err
	}
	fit.LineStyle.Color = c
	fit.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(fit)
	p.Legend.Add(line.Label(), fit)
	return nil
}
