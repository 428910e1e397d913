package derive

import (
	"sort"

	"github.com/petpalapp/petpal/internal/model"
)

// upcomingLimit caps the "upcoming" listing.
const upcomingLimit = 5

// EventsForMonth returns the events matching both month (0-11) and year,
// preserving stored order.
func EventsForMonth(events []model.CalendarEvent, month, year int) []model.CalendarEvent {
	var out []model.CalendarEvent
	for _, e := range events {
		if e.Month == month && e.Year == year {
			out = append(out, e)
		}
	}
	return out
}

// EventsForDay narrows a month view to a single day of month.
func EventsForDay(events []model.CalendarEvent, month, year, day int) []model.CalendarEvent {
	var out []model.CalendarEvent
	for _, e := range EventsForMonth(events, month, year) {
		if e.Date == day {
			out = append(out, e)
		}
	}
	return out
}

// UpcomingEvents returns the month's events sorted ascending by day, capped
// to the first five. Same-day events keep creation order (ids are monotonic).
func UpcomingEvents(events []model.CalendarEvent, month, year int) []model.CalendarEvent {
	filtered := EventsForMonth(events, month, year)
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Date != filtered[j].Date {
			return filtered[i].Date < filtered[j].Date
		}
		return filtered[i].ID < filtered[j].ID
	})
	if len(filtered) > upcomingLimit {
		filtered = filtered[:upcomingLimit]
	}
	return filtered
}
