package climate

import "fmt"

// Task is one unit of work: Size consecutive years starting at Start.
type Task struct {
	Start int `json:"start"`
	Size  int `json:"size"`
}

// Years lists the years covered by t, stopping before end.
func (t Task) Years(end int) []int {
	years := make([]int, 0, max(min(t.Size, end-t.Start), 0))
	for y := t.Start; y-t.Start < t.Size && y < end; y++ {
		years = append(years, y)
	}
	return years
}

// GenerateTasks splits [start, end) into chunks of chunkSize years, in
// ascending order. The last chunk keeps the full size; Task.Years caps it.
// A chunk larger than the whole range is cut down to the range.
func GenerateTasks(start, end, chunkSize int) ([]Task, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be at least 1, got %d", chunkSize)
	}
	if end < start {
		return nil, fmt.Errorf("end year %d is before start year %d", end, start)
	}

	if total := end - start; chunkSize > total {
		chunkSize = max(total, 1)
	}

	tasks := make([]Task, 0, (end-start+chunkSize-1)/chunkSize)
	for y := start; y < end; y += chunkSize {
		tasks = append(tasks, Task{Start: y, Size: chunkSize})
	}
	return tasks, nil
}

// BalancedChunkSize gives every one of workers an even share of [start, end).
func BalancedChunkSize(start, end, workers int) int {
	total := end - start
	if workers < 1 || total < 1 {
		return 1
	}
	return (total + workers - 1) / workers
}
