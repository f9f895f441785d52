// Package datefilter resolves a user-selected date filter into a
// concrete inclusive interval and narrows record lists to it.
package datefilter

import (
	"fmt"
	"time"
)

// Kind discriminates the filter variants.
type Kind string

// Filter kind constants.
const (
	KindAll    Kind = "all"
	KindMonth  Kind = "month"
	KindCustom Kind = "custom"
)

// Filter selects a date range: all time, a calendar month, or an
// explicit custom range. Start/End hold "2006-01-02" strings for the
// custom variant.
type Filter struct {
	Kind  Kind
	Start string
	End   string
	Month time.Month
	Year  int
}

// allTimeStart is the distant-past sentinel for the all-time filter.
var allTimeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)

// DateLayout is the wire format for custom filter bounds.
const DateLayout = "2006-01-02"

// All selects every record.
func All() Filter {
	return Filter{Kind: KindAll}
}

// ForMonth selects one calendar month.
func ForMonth(month time.Month, year int) Filter {
	return Filter{Kind: KindMonth, Month: month, Year: year}
}

// Custom selects an explicit start/end range of "2006-01-02" strings.
// Either bound may be empty; Resolve fills the gaps.
func Custom(start, end string) Filter {
	return Filter{Kind: KindCustom, Start: start, End: end}
}

// Default is the filter active before the user picks one: the current
// calendar month.
func Default(now time.Time) Filter {
	return ForMonth(now.Month(), now.Year())
}

// LastNDays selects the trailing n-day window ending today.
func LastNDays(n int, now time.Time) Filter {
	return Custom(now.AddDate(0, 0, -n).Format(DateLayout), now.Format(DateLayout))
}

// Range is a resolved inclusive interval: Start at 00:00:00.000 and
// End at 23:59:59.999 of their respective days (End is "now" for the
// all-time filter).
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the range, both ends
// inclusive.
func (r Range) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && !ts.After(r.End)
}

// Resolve turns a filter into a concrete range relative to now.
func Resolve(f Filter, now time.Time) Range {
	switch f.Kind {
	case KindAll:
		return Range{Start: allTimeStart, End: now}

	case KindMonth:
		month, year := f.Month, f.Year
		if month == 0 || year == 0 {
			month, year = now.Month(), now.Year()
		}
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		end := endOfDay(start.AddDate(0, 1, -1))
		return Range{Start: start, End: end}

	case KindCustom:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		if f.Start != "" {
			if parsed, err := time.ParseInLocation(DateLayout, f.Start, time.Local); err == nil {
				start = parsed
			}
		}
		end := now
		if f.End != "" {
			if parsed, err := time.ParseInLocation(DateLayout, f.End, time.Local); err == nil {
				end = parsed
			}
		}
		return Range{Start: startOfDay(start), End: endOfDay(end)}

	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		return Range{Start: start, End: endOfDay(now)}
	}
}

// Dated is anything carrying a creation timestamp.
type Dated interface {
	Timestamp() time.Time
}

// Apply keeps the records whose timestamps fall inside r. Filtering an
// already-filtered list with the same range returns the same list.
func Apply[T any](records []T, r Range, timestamp func(T) time.Time) []T {
	kept := make([]T, 0, len(records))
	for _, rec := range records {
		if r.Contains(timestamp(rec)) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// Describe produces the human-readable label for a filter.
func Describe(f Filter) string {
	switch f.Kind {
	case KindAll:
		return "All Time"
	case KindMonth:
		month := f.Month
		if month == 0 {
			month = time.January
		}
		return fmt.Sprintf("%s %d", month, f.Year)
	case KindCustom:
		if f.Start != "" && f.End != "" {
			return fmt.Sprintf("%s – %s", f.Start, f.End)
		}
		return "Custom Range"
	default:
		return ""
	}
}

// Months lists the selectable months for filter pickers.
func Months() []time.Month {
	months := make([]time.Month, 12)
	for i := range months {
		months[i] = time.Month(i + 1)
	}
	return months
}

// Years lists the selectable years, current year back five.
func Years(now time.Time) []int {
	years := make([]int, 0, 6)
	for y := now.Year(); y >= now.Year()-5; y-- {
		years = append(years, y)
	}
	return years
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
