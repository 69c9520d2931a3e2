package common

import (
	"slices"
	"testing"
)

func TestSortedYears(t *testing.T) {
	got := SortedYears(map[int]float64{2001: 1, 1920: 2, 1999: 3})
	if !slices.Equal(got, []int{1920, 1999, 2001}) {
		t.Fatalf("expected ascending years, got %v", got)
	}
	if got := SortedYears(nil); len(got) != 0 {
		t.Fatalf("expected no years, got %v", got)
	}
}

func TestYearsBetween(t *testing.T) {
	series := map[int]float64{1999: 1, 2000: 2, 2005: 3, 2010: 4}

	got := YearsBetween(series, 2000, 2005)
	if len(got) != 2 || got[2000] != 2 || got[2005] != 3 {
		t.Fatalf("expected inclusive 2000..2005, got %v", got)
	}
	if got := YearsBetween(series, 2050, 2060); got == nil || len(got) != 0 {
		t.Fatalf("expected an empty non-nil map, got %v", got)
	}
	if len(series) != 4 {
		t.Fatalf("input was modified: %v", series)
	}
}
