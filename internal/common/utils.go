package common

import (
	"maps"
	"slices"
)

// SortedYears returns the keys of a year-indexed series in ascending order.
func SortedYears(series map[int]float64) []int {
	return slices.Sorted(maps.Keys(series))
}

// YearsBetween keeps the entries of series whose year lies in [from, to].
func YearsBetween(series map[int]float64, from, to int) map[int]float64 {
	out := make(map[int]float64)
	for year, v := range series {
		if year >= from && year <= to {
			out[year] = v
		}
	}
	return out
}
