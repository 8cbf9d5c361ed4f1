package export

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"darklands/catalog"
	"darklands/favorites"
	"darklands/models"
	"darklands/schedule"
	"darklands/utils"

	ics "github.com/arran4/golang-ical"
	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const hmacSecret = "darklands-share-secret" // keep secure

// Handler renders a device's itinerary as something it can take along:
// an iCalendar feed for the phone's calendar or a printable PDF.
type Handler struct {
	Catalog   *catalog.Store
	Favorites *favorites.Store
}

func NewHandler(cat *catalog.Store, favs *favorites.Store) *Handler {
	return &Handler{Catalog: cat, Favorites: favs}
}

// itinerary resolves the device's sorted itinerary for the requested
// date (defaulting to the festival's first day) the same way the
// my-agenda screen does.
func (h *Handler) itinerary(r *http.Request) (string, string, []models.Event, bool) {
	deviceID := utils.DeviceIDFromContext(r.Context())
	if deviceID == "" {
		return "", "", nil, false
	}

	events := h.Catalog.Load()
	date := r.URL.Query().Get("date")
	if date == "" {
		if dates := schedule.DistinctSortedDates(events); len(dates) > 0 {
			date = dates[0]
		}
	}
	members := h.Favorites.Members(r.Context(), deviceID)
	return deviceID, date, schedule.ItineraryFor(events, members, date), true
}

// GET /api/myagenda/export.ics?date=YYYY-MM-DD
func (h *Handler) ICS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	_, date, itinerary, ok := h.itinerary(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Darklands//Companion//EN")

	for _, e := range itinerary {
		ev := cal.AddEvent(e.ID + "@darklands")
		ev.SetDtStampTime(time.Now())
		ev.SetSummary(e.Title)
		ev.SetLocation(e.Area)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}

		if e.Start == "" {
			// Unscheduled entries become all-day items.
			if day, err := time.Parse("2006-01-02", e.Date); err == nil {
				ev.SetAllDayStartAt(day)
				ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
			}
			continue
		}
		start, err := time.Parse("2006-01-02 15:04", e.Date+" "+e.Start)
		if err != nil {
			continue
		}
		ev.SetStartAt(start)
		if e.End != "" {
			if end, err := time.Parse("2006-01-02 15:04", e.Date+" "+e.End); err == nil {
				if e.End < e.Start {
					// Parties run past midnight into the next day.
					end = end.AddDate(0, 0, 1)
				}
				ev.SetEndAt(end)
			}
		}
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", "attachment; filename=myagenda-"+date+".ics")
	w.WriteHeader(http.StatusOK)
	_ = cal.SerializeTo(w)
}

// GET /api/myagenda/export.pdf?date=YYYY-MM-DD
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deviceID, date, itinerary, ok := h.itinerary(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	qrPNG, err := qrcode.Encode(sharePayload(deviceID, date), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Darklands - My Agenda")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", date))
	pdf.Ln(10)

	if len(itinerary) == 0 {
		pdf.Cell(0, 8, "Nothing on your agenda for this day yet.")
		pdf.Ln(8)
	}
	for _, e := range itinerary {
		start := e.Start
		if start == "" {
			start = "--:--"
		}
		pdf.Cell(0, 8, fmt.Sprintf("%s  %s (%s)", start, e.Title, e.Area))
		pdf.Ln(7)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=myagenda-"+date+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// sharePayload returns a signed payload string:
// device|date|timestamp|nonce|signature.
func sharePayload(deviceID, date string) string {
	data := fmt.Sprintf("%s|%s|%d|%s", deviceID, date, time.Now().Unix(), utils.GenerateRandomString(8))
	h := hmac.New(sha256.New, []byte(hmacSecret))
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}
