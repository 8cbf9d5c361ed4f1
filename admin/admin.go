package admin

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"darklands/catalog"
	"darklands/utils"

	"github.com/julienschmidt/httprouter"
)

const maxCatalogBytes = 1 << 20

// Handler is the catalog editing surface: the admin screen posts the raw
// JSON text it edits and gets the current text back.
type Handler struct {
	Catalog *catalog.Store
}

func NewHandler(cat *catalog.Store) *Handler {
	return &Handler{Catalog: cat}
}

// GET /api/admin/events
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pretty, err := json.MarshalIndent(h.Catalog.Load(), "", "  ")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode events")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(pretty)
}

// POST /api/admin/events
// The body is the admin's raw JSON text. A parse or shape failure leaves
// the catalog untouched and comes back as the user-visible error.
func (h *Handler) ReplaceEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCatalogBytes))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to read body")
		return
	}

	if err := h.Catalog.Replace(body); err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			utils.RespondWithError(w, http.StatusBadRequest, verr.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not update events")
		return
	}

	log.Printf("admin: catalog replaced, now %d events", h.Catalog.Count())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Events data updated!",
		"count":   h.Catalog.Count(),
	})
}
