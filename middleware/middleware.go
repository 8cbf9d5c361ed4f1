package middleware

import (
	"context"
	"fmt"
	"net/http"

	"darklands/globals"
	"darklands/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	DeviceID string `json:"deviceId"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// bearer pulls the raw token out of the request. Browsers cannot set
// headers on a websocket dial, so upgrades may carry it as ?token=.
func bearer(r *http.Request) string {
	if websocket.IsWebSocketUpgrade(r) {
		if t := r.URL.Query().Get("token"); t != "" {
			return t
		}
	}
	h := r.Header.Get("Authorization")
	if len(h) >= 8 && h[:7] == "Bearer " {
		return h[7:]
	}
	return ""
}

func parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func withClaims(r *http.Request, claims *Claims) *http.Request {
	ctx := context.WithValue(r.Context(), globals.DeviceIDKey, claims.DeviceID)
	ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
	return r.WithContext(ctx)
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := bearer(r)
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}
		claims, err := parse(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		next(w, withClaims(r, claims), ps)
	}
}

// OptionalAuth attaches the device id when a valid token is present and
// proceeds regardless, so public agenda views can still be personalized.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if tokenString := bearer(r); tokenString != "" {
			if claims, err := parse(tokenString); err == nil {
				r = withClaims(r, claims)
			}
		}
		next(w, r, ps)
	}
}

// RequireAdmin gates the catalog editing surface.
func RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if utils.RoleFromContext(r.Context()) != "admin" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	})
}
