package climate

import "errors"

// ErrNoValidData is returned when none of the records carries the metric.
var ErrNoValidData = errors.New("no valid data")

// AverageOf averages the metric picked by value over records, skipping days
// where it is absent. It returns the number of days that contributed.
func AverageOf(records []DailyRecord, value func(DailyRecord) *float64) (float64, int, error) {
	var (
		sum   float64
		count int
	)

	for _, r := range records {
		v := value(r)
		if v == nil {
			continue
		}
		sum += *v
		count++
	}

	if count == 0 {
		return 0, 0, ErrNoValidData
	}

	return sum / float64(count), count, nil
}
