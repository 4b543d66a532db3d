// Package timewindow builds the current and comparable previous date ranges
// used by the dashboard.
//
// Build is pure: the reference instant is always injected, never read from
// the wall clock, so the same (mode, now) pair always yields the same windows.
package timewindow

import (
	"strings"
	"time"
)

// Mode selects the length of the analytics period
type Mode string

const (
	ModeDay   Mode = "day"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// IsValid checks if the mode is valid
func (m Mode) IsValid() bool {
	switch m {
	case ModeDay, ModeWeek, ModeMonth, ModeYear:
		return true
	default:
		return false
	}
}

// ParseMode maps user input to a Mode. Unknown or empty input falls back to ModeDay.
func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return ModeDay
	}
	return m
}

// Window is the half-open range [Start, End)
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns the length of the window
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Pair holds the current window and the period it is compared against
type Pair struct {
	Mode     Mode   `json:"mode"`
	Current  Window `json:"current"`
	Previous Window `json:"previous"`
}

// Build computes the window pair for mode relative to now.
// Day and year boundaries are taken in now's location.
func Build(mode Mode, now time.Time) Pair {
	if !mode.IsValid() {
		mode = ModeDay
	}

	pair := Pair{Mode: mode}
	switch mode {
	case ModeWeek:
		weekAgo := now.AddDate(0, 0, -7)
		pair.Current = Window{Start: weekAgo, End: now}
		pair.Previous = Window{Start: now.AddDate(0, 0, -14), End: weekAgo}

	case ModeMonth:
		boundary := addMonthsClamped(now, -1)
		pair.Current = Window{Start: boundary, End: now}
		pair.Previous = Window{Start: boundary.AddDate(0, 0, -30), End: boundary}

	case ModeYear:
		thisYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		pair.Current = Window{Start: thisYear, End: now}
		pair.Previous = Window{Start: thisYear.AddDate(-1, 0, 0), End: thisYear}

	default:
		today := StartOfDay(now)
		pair.Current = Window{Start: today, End: now}
		pair.Previous = Window{Start: today.AddDate(0, 0, -1), End: today}
	}

	return pair
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// addMonthsClamped moves t by months calendar months, keeping the time of day.
// A day that does not exist in the target month is clamped to its last day.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	if last := daysIn(target.Year(), target.Month(), t.Location()); d > last {
		d = last
	}

	return time.Date(target.Year(), target.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
