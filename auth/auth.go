package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"darklands/globals"
	"darklands/middleware"
	"darklands/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL = 30 * 24 * time.Hour
	adminTTL   = 12 * time.Hour
)

// NewToken signs a JWT for the given device. Role is "" for regular
// devices and "admin" for the catalog editor.
func NewToken(deviceID, role string, ttl time.Duration) (string, error) {
	claims := &middleware.Claims{
		DeviceID: deviceID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// StartSession hands a fresh device identity to an app install. There
// are no accounts: favourites are keyed by this device id.
func StartSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	deviceID := uuid.New().String()
	token, err := NewToken(deviceID, "", sessionTTL)
	if err != nil {
		log.Printf("session token: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create session")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"token":    token,
		"deviceid": deviceID,
	})
}

// AdminLogin checks the shared admin password against the bcrypt hash in
// ADMIN_PASSWORD_HASH and issues a short-lived admin token.
func AdminLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		log.Println("ADMIN_PASSWORD_HASH not set; admin login disabled")
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Admin login disabled")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := NewToken("admin-"+uuid.New().String(), "admin", adminTTL)
	if err != nil {
		log.Printf("admin token: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token})
}
