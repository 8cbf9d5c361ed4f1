package favorites

import (
	"net/http"

	"darklands/catalog"
	"darklands/models"
	"darklands/notices"
	"darklands/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the favourite set over HTTP and feeds the toast
// channel on every toggle.
type Handler struct {
	Favorites *Store
	Catalog   *catalog.Store
	Notices   *notices.Center
}

func NewHandler(favs *Store, cat *catalog.Store, center *notices.Center) *Handler {
	return &Handler{Favorites: favs, Catalog: cat, Notices: center}
}

// POST /api/favorites/:eventid/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	deviceID := utils.DeviceIDFromContext(r.Context())
	if deviceID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	event, ok := h.Catalog.Get(ps.ByName("eventid"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	favorite, ids := h.Favorites.Toggle(r.Context(), deviceID, event.ID)
	if h.Notices != nil {
		if favorite {
			h.Notices.Show(deviceID, "Added to your agenda: "+event.Title, models.ToastSuccess)
		} else {
			h.Notices.Show(deviceID, "Removed from your agenda: "+event.Title, models.ToastInfo)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"eventid":  event.ID,
		"favorite": favorite,
		"count":    len(ids),
	})
}

// GET /api/favorites
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deviceID := utils.DeviceIDFromContext(r.Context())
	if deviceID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"favorites": h.Favorites.IDs(r.Context(), deviceID),
	})
}
