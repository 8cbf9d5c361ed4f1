package schedule

import (
	"sort"
	"strings"

	"darklands/models"
)

// Pure derivations over the catalog. Both front ends render from these,
// so the logic lives here once instead of being re-implemented per screen.

// DistinctSortedDates returns every date present in the catalog exactly
// once, ascending. YYYY-MM-DD sorts lexicographically in chronological
// order, so a plain string sort is enough.
func DistinctSortedDates(events []models.Event) []string {
	seen := make(map[string]bool, len(events))
	dates := make([]string, 0, len(events))
	for _, e := range events {
		if !seen[e.Date] {
			seen[e.Date] = true
			dates = append(dates, e.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// categoryType maps a category bucket to the event type it selects.
var categoryType = map[string]string{
	models.CategoryParties:   "Party",
	models.CategoryWorkshops: "Workshop",
}

// FilterByDateAndCategory keeps events on the given date, optionally
// narrowed to one category bucket. The filter is stable: catalog order
// is preserved and nothing is resorted.
func FilterByDateAndCategory(events []models.Event, date, category string) []models.Event {
	want, narrow := categoryType[strings.ToUpper(category)]
	out := make([]models.Event, 0)
	for _, e := range events {
		if e.Date != date {
			continue
		}
		if narrow && !strings.EqualFold(e.Type, want) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ItineraryFor returns the favourited events on the given date, ascending
// by start time. Start is compared as a plain string, valid for zero-padded
// 24-hour HH:mm; an absent start is the empty string and so sorts before
// any timed event. Ties keep catalog order.
func ItineraryFor(events []models.Event, favoriteIDs map[string]bool, date string) []models.Event {
	out := make([]models.Event, 0)
	for _, e := range events {
		if e.Date == date && favoriteIDs[e.ID] {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
