package reporting

import "math"

// CompareChange diffs a current-period value against the previous period.
//
// A zero previous value has no meaningful percentage baseline, so the change
// reports the current value outright with percentage pinned to 0 or 100 and
// increase meaning the current value actually grew. Against a real baseline
// a zero delta counts as an increase; the dashboard renders it as "+0".
func CompareChange(current, previous float64) Change {
	if previous == 0 {
		percentage := 0.0
		if current != 0 {
			percentage = 100
		}
		return Change{
			Value:      current,
			Percentage: percentage,
			Increase:   current > 0,
		}
	}

	value := current - previous
	return Change{
		Value:      value,
		Percentage: value / math.Abs(previous) * 100,
		Increase:   value >= 0,
	}
}
