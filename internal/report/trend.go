package report

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/i474232898/temperature-trend/internal/climate"
	"github.com/i474232898/temperature-trend/internal/common"
)

// ErrInsufficientData is returned when a series has fewer than two points.
var ErrInsufficientData = errors.New("at least two points are needed for a trend")

// Line is a first-degree least-squares fit: y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Points    int     `json:"points"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Label formats the line the way it appears in the plot legend.
func (l Line) Label() string {
	return fmt.Sprintf("y=%0.3f x%+0.3f", l.Slope, l.Intercept)
}

// Fit fits a straight line through a year-indexed series.
func Fit(series map[int]float64) (Line, error) {
	if len(series) < 2 {
		return Line{}, ErrInsufficientData
	}

	years := common.SortedYears(series)
	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y)
		ys[i] = series[y]
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Line{Slope: beta, Intercept: alpha, Points: len(years)}, nil
}

// Prediction holds both fitted lines and their value at Year.
type Prediction struct {
	Year    int     `json:"year"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	MinLine Line    `json:"minLine"`
	MaxLine Line    `json:"maxLine"`
}

// Predict fits the min and max series and evaluates both at year.
func Predict(avg climate.YearlyAverages, year int) (Prediction, error) {
	minLine, err := Fit(avg.Min)
	if err != nil {
		return Prediction{}, fmt.Errorf("min series: %w", err)
	}
	maxLine, err := Fit(avg.Max)
	if err != nil {
		return Prediction{}, fmt.Errorf("max series: %w", err)
	}

	return Prediction{
		Year:    year,
		Min:     minLine.At(float64(year)),
		Max:     maxLine.At(float64(year)),
		MinLine: minLine,
		MaxLine: maxLine,
	}, nil
}

// PrintPredictions writes both predictions in a human readable form.
func PrintPredictions(w io.Writer, p Prediction) error {
	_, err := fmt.Fprintf(w, "Predicted avg. min. temp for %d = %v C\nPredicted avg. max. temp for %d = %v C\n",
		p.Year, p.Min, p.Year, p.Max)
	return err
}
