package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/titanmaster/vortexproxies/internal/middleware"
	"github.com/titanmaster/vortexproxies/internal/models"
	"github.com/titanmaster/vortexproxies/internal/service"
	"github.com/titanmaster/vortexproxies/internal/session"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Login verifies credentials and returns the matching user, or
	// service.ErrInvalidCredentials for any bad username/password pair.
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// AuthHandler handles login, logout, current-user, and the permanently
// disabled registration endpoint.
type AuthHandler struct {
	// AuthService performs the underlying credential verification.
	AuthService AuthService
	// Sessions holds the server-side login sessions.
	Sessions *session.Store
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register.
// Self-registration is permanently disabled: every request gets the same
// fixed 403 response regardless of input.
func (h *AuthHandler) Register(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusForbidden, "Registration is disabled. Admin access only.")
}

// Login handles POST /api/login.
// It expects a JSON body with non-empty "username" and "password" fields.
// A bad username and a bad password produce identical 401 responses, so
// callers cannot enumerate accounts. On success it establishes a session
// and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sess, err := h.Sessions.Create(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/logout.
// It destroys the session, if any, and clears the cookie. Logging out
// without a session (or twice) still returns 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		h.Sessions.Delete(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusOK)
}

// CurrentUser handles GET /api/user.
// It returns the authenticated user, or 401 for anonymous requests.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
