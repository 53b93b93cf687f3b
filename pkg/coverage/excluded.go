package coverage

import (
	"cmp"
	"slices"

	f "github.com/multimediallc/sensor-coverage/pkg/functional"
)

// RowCoverage returns the union of every sensor's interval on row y as
// disjoint intervals sorted by Lo. Touching intervals ([a,b], [b+1,c]) are joined.
func RowCoverage(sensors []Sensor, y int) []Interval {
	intervals := make([]Interval, 0, len(sensors))
	for _, s := range sensors {
		if iv, ok := s.RowInterval(y); ok {
			intervals = append(intervals, iv)
		}
	}
	return mergeIntervals(intervals)
}

// mergeIntervals sorts intervals in place and folds overlapping or adjacent ones
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return intervals
	}
	slices.SortFunc(intervals, func(a, b Interval) int {
		if c := cmp.Compare(a.Lo, b.Lo); c != 0 {
			return c
		}
		return cmp.Compare(a.Hi, b.Hi)
	})

	merged := intervals[:1]
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv.Lo <= last.Hi+1 {
			last.Hi = max(last.Hi, iv.Hi)
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// CountExcluded returns how many positions on row y cannot hold an
// undetected beacon. Known beacons on the row are real emitters and are
// not counted. beacons must be distinct.
func CountExcluded(sensors []Sensor, beacons []Position, y int) int {
	coverage := RowCoverage(sensors, y)
	width := f.Sum(coverage, Interval.Width)
	onRow := f.Count(beacons, func(b Position) bool {
		if b.Y != y {
			return false
		}
		_, covered := f.Find(coverage, func(iv Interval) bool { return iv.Contains(b.X) })
		return covered
	})
	return width - onRow
}
