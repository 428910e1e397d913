package derive

import (
	"testing"

	"github.com/petpalapp/petpal/internal/model"
)

func ev(id int64, title string, day, month, year int) model.CalendarEvent {
	return model.CalendarEvent{ID: id, Title: title, Category: model.CategoryVet, Date: day, Month: month, Year: year}
}

func TestEventsForMonth(t *testing.T) {
	t.Parallel()

	events := []model.CalendarEvent{
		ev(1, "Vacuna", 15, 5, 2025),
		ev(2, "Baño", 3, 6, 2025),
		ev(3, "Paseo", 20, 5, 2024), // same month, other year
	}

	got := EventsForMonth(events, 5, 2025)
	if len(got) != 1 || got[0].Title != "Vacuna" {
		t.Fatalf("EventsForMonth(5, 2025) = %v", got)
	}
	if got := EventsForMonth(events, 6, 2024); len(got) != 0 {
		t.Fatalf("EventsForMonth(6, 2024) = %v, want empty", got)
	}
}

func TestEventsForDay(t *testing.T) {
	t.Parallel()

	events := []model.CalendarEvent{
		ev(1, "Vacuna", 15, 5, 2025),
		ev(2, "Control", 15, 5, 2025),
		ev(3, "Baño", 16, 5, 2025),
	}
	got := EventsForDay(events, 5, 2025, 15)
	if len(got) != 2 {
		t.Fatalf("EventsForDay = %v, want 2 events", got)
	}
}

func TestUpcomingEvents_SortsAndCaps(t *testing.T) {
	t.Parallel()

	events := []model.CalendarEvent{
		ev(10, "f", 28, 8, 2025),
		ev(11, "a", 2, 8, 2025),
		ev(12, "d", 14, 8, 2025),
		ev(13, "b", 5, 8, 2025),
		ev(14, "e", 21, 8, 2025),
		ev(15, "c", 9, 8, 2025),
		ev(16, "other month", 1, 9, 2025),
	}

	got := UpcomingEvents(events, 8, 2025)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	wantOrder := []string{"a", "b", "c", "d", "e"}
	for i, w := range wantOrder {
		if got[i].Title != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestUpcomingEvents_SameDayKeepsCreationOrder(t *testing.T) {
	t.Parallel()

	events := []model.CalendarEvent{
		ev(2, "second", 10, 3, 2025),
		ev(1, "first", 10, 3, 2025),
	}
	got := UpcomingEvents(events, 3, 2025)
	if got[0].Title != "first" || got[1].Title != "second" {
		t.Fatalf("same-day order = [%s %s], want creation order", got[0].Title, got[1].Title)
	}
}
