package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/folio-cms/internal/domain"
	"github.com/msomdec/folio-cms/internal/service"
)

const (
	msgMissingCredentials = "Please provide both email and password"
	msgInvalidCredentials = "Invalid email or password"
	msgInactiveUser       = "User is not active"
	msgNotAuthenticated   = "You are not authenticated!"
	msgUnknownTokenUser   = "The user with the given token does not exist"
	msgPasswordChanged    = "The password has been changed recently. Please log in again."
	msgInternal           = "Internal server error"
)

// AuthHandler handles login and refresh-token requests.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleLogin processes a login request.
// POST /api/user/login
// Request:  {"email":"...","password":"..."}
// Response: {"message":"Login successful","accessToken":"...","refreshToken":"...","user":{...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r, "", 0)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgMissingCredentials)
		return
	}

	session, err := h.auth.Login(r.Context(), f.get("email"), f.get("password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, msgMissingCredentials)
		case errors.Is(err, domain.ErrUnauthorized):
			writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
		case errors.Is(err, domain.ErrInactiveUser):
			writeMessage(w, http.StatusUnauthorized, msgInactiveUser)
		default:
			slog.Error("login user", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	writeSession(w, "Login successful", session)
}

// HandleVerifyLogin exchanges a refresh token for a new token pair.
// POST /api/user/verify-login
// Request:  {"refreshToken":"..."}
//
// An invalid or expired refresh token answers 500, as existing clients
// expect.
func (h *AuthHandler) HandleVerifyLogin(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r, "", 0)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	session, err := h.auth.VerifyLogin(r.Context(), f.get("refreshToken"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			writeMessage(w, http.StatusUnauthorized, msgNotAuthenticated)
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, msgUnknownTokenUser)
		case errors.Is(err, domain.ErrPasswordChanged):
			writeMessage(w, http.StatusUnauthorized, msgPasswordChanged)
		case errors.Is(err, domain.ErrInvalidToken):
			slog.Warn("rejected refresh token", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgInternal)
		default:
			slog.Error("verify login", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	writeSession(w, "Token refreshed successfully", session)
}

func writeSession(w http.ResponseWriter, message string, s *service.Session) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      message,
		"accessToken":  s.AccessToken,
		"refreshToken": s.RefreshToken,
		"user":         toProfileDTO(s.User),
	})
}
