package agenda

import (
	"net/http"
	"strings"

	"darklands/catalog"
	"darklands/favorites"
	"darklands/models"
	"darklands/schedule"
	"darklands/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the agenda read API. The catalog and favourite stores
// are injected by main; handlers never reach for ambient state.
type Handler struct {
	Catalog   *catalog.Store
	Favorites *favorites.Store
}

func New(cat *catalog.Store, favs *favorites.Store) *Handler {
	return &Handler{Catalog: cat, Favorites: favs}
}

// GET /api/home
func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"festival": "BEYOND DARKLANDS",
		"edition":  2026,
		"location": "ANTWERP • BELGIUM",
		"badge":    "OFFICIAL APP",
		"tagline":  "Everything you need for your festival experience in one place.",
		"live":     "Welcome to Darklands 2026. Check the agenda for the latest schedule changes.",
	})
}

// GET /api/agenda/dates
func (h *Handler) GetDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dates := schedule.DistinctSortedDates(h.Catalog.Load())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"dates": dates})
}

// GET /api/agenda?date=YYYY-MM-DD&category=ALL|PARTIES|WORKSHOPS
func (h *Handler) GetAgenda(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	events := h.Catalog.Load()

	date := r.URL.Query().Get("date")
	if date == "" {
		// The screens default to the festival's first day.
		if dates := schedule.DistinctSortedDates(events); len(dates) > 0 {
			date = dates[0]
		}
	}
	category := strings.ToUpper(r.URL.Query().Get("category"))
	if category == "" {
		category = models.CategoryAll
	}

	filtered := schedule.FilterByDateAndCategory(events, date, category)
	h.annotate(r, filtered)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"date":     date,
		"category": category,
		"events":   filtered,
	})
}

// GET /api/agenda/event/:eventid
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, ok := h.Catalog.Get(ps.ByName("eventid"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if deviceID := utils.DeviceIDFromContext(r.Context()); deviceID != "" {
		event.IsFavorite = h.Favorites.IsFavorite(r.Context(), deviceID, event.ID)
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// GET /api/myagenda?date=YYYY-MM-DD
func (h *Handler) GetMyAgenda(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deviceID := utils.DeviceIDFromContext(r.Context())
	if deviceID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	events := h.Catalog.Load()
	date := r.URL.Query().Get("date")
	if date == "" {
		if dates := schedule.DistinctSortedDates(events); len(dates) > 0 {
			date = dates[0]
		}
	}

	members := h.Favorites.Members(r.Context(), deviceID)
	itinerary := schedule.ItineraryFor(events, members, date)
	for i := range itinerary {
		itinerary[i].IsFavorite = true
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"date":   date,
		"events": itinerary,
	})
}

// annotate fills IsFavorite for the calling device, when there is one.
func (h *Handler) annotate(r *http.Request, events []models.Event) {
	deviceID := utils.DeviceIDFromContext(r.Context())
	if deviceID == "" {
		return
	}
	members := h.Favorites.Members(r.Context(), deviceID)
	for i := range events {
		events[i].IsFavorite = members[events[i].ID]
	}
}
