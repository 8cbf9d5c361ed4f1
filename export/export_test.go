package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"darklands/catalog"
	"darklands/favorites"
	"darklands/globals"
	"darklands/models"
	"darklands/rdx"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	favStore := favorites.NewStore(rdx.NewMemory())
	t.Cleanup(favStore.Close)

	ctx := context.Background()
	favStore.Toggle(ctx, "dev1", "a")
	favStore.Toggle(ctx, "dev1", "b")

	return NewHandler(catalog.NewWith([]models.Event{
		{ID: "a", Date: "2026-03-03", Title: "Main Night", Type: "Party", Area: "Main Hall", Start: "22:00", End: "04:00"},
		{ID: "b", Date: "2026-03-03", Title: "Rope Basics", Type: "Workshop", Area: "Loft", Start: "20:00"},
		{ID: "c", Date: "2026-03-03", Title: "Not Favourited", Type: "Social", Area: "Bar"},
	}), favStore)
}

func deviceRequest(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	ctx := context.WithValue(req.Context(), globals.DeviceIDKey, "dev1")
	return req.WithContext(ctx)
}

func TestICSExport(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ICS(w, deviceRequest("/api/myagenda/export.ics?date=2026-03-03"), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar" {
		t.Errorf("Content-Type = %s", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("no VCALENDAR envelope")
	}
	for _, want := range []string{"SUMMARY:Main Night", "SUMMARY:Rope Basics"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in ICS output", want)
		}
	}
	if strings.Contains(body, "Not Favourited") {
		t.Error("non-favourited event leaked into the export")
	}
}

func TestPDFExport(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.PDF(w, deviceRequest("/api/myagenda/export.pdf?date=2026-03-03"), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %s", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("response is not a PDF document")
	}
}

func TestExportRequiresDevice(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ICS(w, httptest.NewRequest(http.MethodGet, "/api/myagenda/export.ics", nil), nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("ICS status = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	h.PDF(w, httptest.NewRequest(http.MethodGet, "/api/myagenda/export.pdf", nil), nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("PDF status = %d, want 401", w.Code)
	}
}
