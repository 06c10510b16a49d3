package rebar

import "sort"

// MaxTabulatedBars is the largest bar count in the section table.
const MaxTabulatedBars = 10

// sections holds the steel section (cm²) of 1 to 10 bars for each
// diameter (mm). Values are the tabulated ones, not n·π·Ø²/4.
var sections = map[int][MaxTabulatedBars]float64{
	5:  {0.19, 0.39, 0.59, 0.78, 0.98, 1.17, 1.37, 1.57, 1.76, 1.96},
	6:  {0.28, 0.56, 0.85, 1.13, 1.41, 1.7, 1.98, 2.26, 2.54, 2.82},
	8:  {0.5, 1.0, 1.5, 2.01, 2.51, 3.01, 3.51, 4.02, 4.52, 5.02},
	10: {0.78, 1.57, 2.35, 3.14, 3.92, 4.71, 5.49, 6.28, 7.06, 7.85},
	12: {1.13, 2.26, 3.39, 4.52, 5.65, 6.78, 7.92, 9.05, 10.18, 11.31},
	14: {1.54, 3.08, 4.62, 6.16, 7.67, 9.23, 10.7, 12.31, 13.85, 15.39},
	16: {2.01, 4.02, 6.03, 8.04, 10.05, 12.06, 14.07, 16.08, 18.09, 20.1},
	20: {3.14, 6.28, 9.42, 12.56, 15.7, 18.84, 21.99, 25.13, 28.27, 31.41},
	25: {4.91, 9.82, 14.73, 19.63, 24.54, 29.45, 34.36, 39.27, 44.08, 49.09},
	32: {8.04, 16.08, 24.12, 32.17, 40.21, 48.25, 56.28, 64.34, 72.38, 80.42},
	40: {12.56, 25.13, 37.7, 50.26, 62.83, 75.33, 87.96, 100.53, 113.08, 125.64},
}

// Diameters returns the tabulated bar diameters (mm) in ascending order.
func Diameters() []int {
	out := make([]int, 0, len(sections))
	for d := range sections {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// UnitSection returns the section of a single bar of diameter d (cm²).
func UnitSection(d int) (float64, bool) {
	row, ok := sections[d]
	if !ok {
		return 0, false
	}
	return row[0], true
}

// Section returns the tabulated section of n bars of diameter d (cm²).
// It reports false for an unknown diameter or a count outside 1..10.
func Section(d, n int) (float64, bool) {
	row, ok := sections[d]
	if !ok || n < 1 || n > MaxTabulatedBars {
		return 0, false
	}
	return row[n-1], true
}
