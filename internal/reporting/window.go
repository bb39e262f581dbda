package reporting

import "time"

// Window is an inclusive range of calendar days. Comparisons ignore
// time-of-day: a record on the end date is inside the window.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MonthWindow returns the calendar-month window for the given year and month.
func MonthWindow(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

// MonthWindowFor returns the calendar-month window containing the given date.
func MonthWindowFor(date time.Time) Window {
	return MonthWindow(date.Year(), date.Month())
}

// PreviousMonth returns the calendar-month window immediately before this one.
// It assumes the window is month-aligned, which is how the dashboards use it.
func (w Window) PreviousMonth() Window {
	prev := w.Start.AddDate(0, -1, 0)
	return MonthWindow(prev.Year(), prev.Month())
}

// Contains reports whether the date's calendar day falls inside the window.
func (w Window) Contains(date time.Time) bool {
	day := dayOf(date)
	return !day.Before(dayOf(w.Start)) && !day.After(dayOf(w.End))
}

// Key renders the window's month for cache keys, e.g. "2025-06".
// Only meaningful for month-aligned windows.
func (w Window) Key() string {
	return w.Start.Format("2006-01")
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey renders a date as the bucket key used by the daily series.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
