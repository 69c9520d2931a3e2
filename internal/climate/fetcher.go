package climate

import (
	"context"
	"log"
)

// Source returns the raw daily records for one calendar year.
type Source interface {
	DailyRecords(ctx context.Context, year int) ([]DailyRecord, error)
}

// TaskFetcher turns a Task into the averages of the years it covers.
type TaskFetcher interface {
	FetchTask(ctx context.Context, t Task) YearlyAverages
}

// TaskFetcherFunc adapts a function to TaskFetcher.
type TaskFetcherFunc func(ctx context.Context, t Task) YearlyAverages

func (f TaskFetcherFunc) FetchTask(ctx context.Context, t Task) YearlyAverages {
	return f(ctx, t)
}

// Fetcher reduces each year of a task to its min and max averages.
// A year that fails for any reason is logged and left out; the rest of the
// task carries on.
type Fetcher struct {
	source  Source
	endYear int
}

// NewFetcher creates a Fetcher that never goes past endYear (exclusive).
func NewFetcher(source Source, endYear int) *Fetcher {
	return &Fetcher{
		source:  source,
		endYear: endYear,
	}
}

func (f *Fetcher) FetchTask(ctx context.Context, t Task) YearlyAverages {
	out := NewYearlyAverages()

	for _, year := range t.Years(f.endYear) {
		records, err := f.source.DailyRecords(ctx, year)
		if err != nil {
			log.Printf("ERROR: fetcher: getting data for %d: %v", year, err)
			continue
		}

		if avg, _, err := AverageOf(records, DailyRecord.MinTemp); err != nil {
			log.Printf("fetcher: no min average for %d: %v", year, err)
		} else {
			out.Min[year] = avg
		}

		if avg, _, err := AverageOf(records, DailyRecord.MaxTemp); err != nil {
			log.Printf("fetcher: no max average for %d: %v", year, err)
		} else {
			out.Max[year] = avg
		}
	}

	return out
}
