package models

import (
	"strings"
	"time"
)

type FilterMode string

const (
	FilterToday    FilterMode = "hoy"
	FilterTomorrow FilterMode = "mañana"
	FilterAll      FilterMode = "todos"
)

// ParseFilterMode maps the selector value (and its English alias) to a mode.
// Anything unrecognised becomes FilterAll.
func ParseFilterMode(s string) FilterMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hoy", "today":
		return FilterToday
	case "mañana", "manana", "tomorrow":
		return FilterTomorrow
	default:
		return FilterAll
	}
}

// FilterEvents returns the events dated today, tomorrow, or all of them,
// keeping the input order. Only the calendar date of today is used.
func FilterEvents(events []Event, today time.Time, mode FilterMode) []Event {
	var target string
	switch mode {
	case FilterToday:
		target = today.Format(DateLayout)
	case FilterTomorrow:
		target = today.AddDate(0, 0, 1).Format(DateLayout)
	default:
		return events
	}

	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Date == target {
			out = append(out, e)
		}
	}
	return out
}
