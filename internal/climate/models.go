package climate

import (
	"time"
)

// DailyRecord is one day of observations as returned by the daily endpoint.
// Metrics are nil when the station reported nothing for that day.
type DailyRecord struct {
	Date string   `json:"date"`
	TAvg *float64 `json:"tavg"`
	TMin *float64 `json:"tmin"`
	TMax *float64 `json:"tmax"`
}

// MinTemp returns the daily minimum, or nil when absent.
func (r DailyRecord) MinTemp() *float64 { return r.TMin }

// MaxTemp returns the daily maximum, or nil when absent.
func (r DailyRecord) MaxTemp() *float64 { return r.TMax }

// YearlyAverages maps a year to its average daily min and max temperature.
// A year missing from a map had no usable data for that metric.
type YearlyAverages struct {
	Min map[int]float64 `json:"min"`
	Max map[int]float64 `json:"max"`
}

// NewYearlyAverages returns empty, non-nil maps.
func NewYearlyAverages() YearlyAverages {
	return YearlyAverages{
		Min: make(map[int]float64),
		Max: make(map[int]float64),
	}
}

// Merge copies other into a. Keys already present are overwritten.
func (a YearlyAverages) Merge(other YearlyAverages) {
	for year, v := range other.Min {
		a.Min[year] = v
	}
	for year, v := range other.Max {
		a.Max[year] = v
	}
}

// Mode names the fetch strategy that produced a Run.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
)

// Run is the outcome of one full fetch over the configured year range.
type Run struct {
	ID        string         `json:"id"`
	Mode      Mode           `json:"mode"`
	StationID int            `json:"stationId"`
	StartYear int            `json:"startYear"`
	EndYear   int            `json:"endYear"` // exclusive
	Workers   int            `json:"workers"`
	ChunkSize int            `json:"chunkSize"`
	Tasks     int            `json:"tasks"`
	StartedAt time.Time      `json:"startedAt"` // always UTC
	Duration  time.Duration  `json:"durationNs"`
	Averages  YearlyAverages `json:"averages"`
}
