package schedule

import (
	"reflect"
	"testing"

	"darklands/models"
)

func sampleCatalog() []models.Event {
	return []models.Event{
		{ID: "a", Date: "2026-03-03", Title: "Main Night", Type: "Party", Area: "Main Hall", Start: "22:00"},
		{ID: "b", Date: "2026-03-03", Title: "Rope Basics", Type: "Workshop", Area: "Loft", Start: "20:00"},
		{ID: "c", Date: "2026-03-04", Title: "Recovery Brunch", Type: "Social", Area: "Harbor"},
		{ID: "d", Date: "2026-03-03", Title: "Warmup Drinks", Type: "Social", Area: "Bar", Start: "18:00"},
		{ID: "e", Date: "2026-03-02", Title: "Early Check-in", Type: "Social", Area: "Lobby"},
	}
}

func TestDistinctSortedDates(t *testing.T) {
	tests := []struct {
		name   string
		events []models.Event
		want   []string
	}{
		{"empty catalog", nil, []string{}},
		{"dedupes and sorts", sampleCatalog(), []string{"2026-03-02", "2026-03-03", "2026-03-04"}},
		{"single date repeated", []models.Event{
			{ID: "x", Date: "2026-03-05"}, {ID: "y", Date: "2026-03-05"},
		}, []string{"2026-03-05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistinctSortedDates(tt.events)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DistinctSortedDates() = %v, want %v", got, tt.want)
			}
			// Idempotence: same input, same output.
			again := DistinctSortedDates(tt.events)
			if !reflect.DeepEqual(got, again) {
				t.Errorf("DistinctSortedDates() not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestFilterByDateAndCategory(t *testing.T) {
	events := sampleCatalog()

	tests := []struct {
		name     string
		date     string
		category string
		wantIDs  []string
	}{
		{"all categories keeps catalog order", "2026-03-03", models.CategoryAll, []string{"a", "b", "d"}},
		{"parties only", "2026-03-03", models.CategoryParties, []string{"a"}},
		{"workshops only", "2026-03-03", models.CategoryWorkshops, []string{"b"}},
		{"date with no events", "2026-03-09", models.CategoryAll, []string{}},
		{"category with no events that day", "2026-03-04", models.CategoryParties, []string{}},
		{"lowercase category treated as bucket", "2026-03-03", "parties", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByDateAndCategory(events, tt.date, tt.category)
			gotIDs := ids(got)
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("FilterByDateAndCategory(%q, %q) = %v, want %v", tt.date, tt.category, gotIDs, tt.wantIDs)
			}
			for _, e := range got {
				if e.Date != tt.date {
					t.Errorf("event %s has date %s, want %s", e.ID, e.Date, tt.date)
				}
			}
		})
	}
}

func TestFilterCategoryMatchIsCaseInsensitive(t *testing.T) {
	events := []models.Event{
		{ID: "p1", Date: "2026-03-03", Type: "party"},
		{ID: "p2", Date: "2026-03-03", Type: "PARTY"},
		{ID: "w1", Date: "2026-03-03", Type: "Workshop"},
	}
	got := ids(FilterByDateAndCategory(events, "2026-03-03", models.CategoryParties))
	want := []string{"p1", "p2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestItineraryFor(t *testing.T) {
	events := sampleCatalog()

	t.Run("sorted by start time", func(t *testing.T) {
		favs := map[string]bool{"a": true, "b": true}
		got := ids(ItineraryFor(events, favs, "2026-03-03"))
		want := []string{"b", "a"} // 20:00 before 22:00
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("missing start sorts first", func(t *testing.T) {
		extra := append(sampleCatalog(), models.Event{ID: "f", Date: "2026-03-03", Title: "Open Doors", Type: "Social"})
		favs := map[string]bool{"a": true, "d": true, "f": true}
		got := ids(ItineraryFor(extra, favs, "2026-03-03"))
		want := []string{"f", "d", "a"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("equal starts keep catalog order", func(t *testing.T) {
		tied := []models.Event{
			{ID: "x", Date: "2026-03-03", Start: "21:00"},
			{ID: "y", Date: "2026-03-03", Start: "21:00"},
		}
		favs := map[string]bool{"x": true, "y": true}
		got := ids(ItineraryFor(tied, favs, "2026-03-03"))
		want := []string{"x", "y"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("only favourites on the selected date", func(t *testing.T) {
		favs := map[string]bool{"a": true, "c": true}
		got := ItineraryFor(events, favs, "2026-03-03")
		if len(got) != 1 || got[0].ID != "a" {
			t.Errorf("got %v, want just event a", ids(got))
		}
	})

	t.Run("empty favourites", func(t *testing.T) {
		got := ItineraryFor(events, map[string]bool{}, "2026-03-03")
		if len(got) != 0 {
			t.Errorf("got %v, want empty", ids(got))
		}
	})

	t.Run("nil inputs", func(t *testing.T) {
		got := ItineraryFor(nil, nil, "2026-03-03")
		if len(got) != 0 {
			t.Errorf("got %v, want empty", ids(got))
		}
	})
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}
