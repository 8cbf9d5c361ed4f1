package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"darklands/auth"
	"darklands/globals"
	"darklands/middleware"
	"darklands/utils"

	"github.com/julienschmidt/httprouter"
)

func passthrough(gotDevice, gotRole *string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*gotDevice = utils.DeviceIDFromContext(r.Context())
		*gotRole, _ = r.Context().Value(globals.RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticate(t *testing.T) {
	token, err := auth.NewToken("dev-42", "", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("valid token", func(t *testing.T) {
		var device, role string
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		middleware.Authenticate(passthrough(&device, &role))(w, req, nil)
		if w.Code != http.StatusOK || device != "dev-42" {
			t.Errorf("code = %d, device = %q", w.Code, device)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		var device, role string
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		middleware.Authenticate(passthrough(&device, &role))(w, req, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("code = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		var device, role string
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")

		middleware.Authenticate(passthrough(&device, &role))(w, req, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("code = %d, want 401", w.Code)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	var device, role string
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	middleware.OptionalAuth(passthrough(&device, &role))(w, req, nil)
	if w.Code != http.StatusOK || device != "" {
		t.Errorf("code = %d, device = %q; anonymous requests must pass", w.Code, device)
	}
}

func TestRequireAdmin(t *testing.T) {
	deviceToken, err := auth.NewToken("dev-1", "", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	adminToken, err := auth.NewToken("admin-1", "admin", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"admin token passes", adminToken, http.StatusOK},
		{"device token forbidden", deviceToken, http.StatusForbidden},
		{"no token unauthorized", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var device, role string
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			middleware.RequireAdmin(passthrough(&device, &role))(w, req, nil)
			if w.Code != tt.want {
				t.Errorf("code = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && role != "admin" {
				t.Errorf("role = %q, want admin", role)
			}
		})
	}
}
