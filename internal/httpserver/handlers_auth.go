package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	authdomain "gamevault/backend/internal/domain/auth"
	authusecase "gamevault/backend/internal/usecase/auth"

	"go.uber.org/zap"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	// A client holding a still-valid token must log out before logging in
	// again.
	if existing := extractToken(r); existing != "" && s.authService.ValidateToken(existing) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "User is already logged in. Please logout first before logging in again.",
		})
		return
	}

	result := s.authService.Login(r.Context(), authdomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})

	switch result.Outcome {
	case authusecase.OutcomeSuccess:
		http.SetCookie(w, &http.Cookie{
			Name:     jwtCookieName,
			Value:    result.Token,
			Path:     "/",
			Expires:  result.ExpiresAt,
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteStrictMode,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"user":      result.User,
			"expiresAt": result.ExpiresAt,
			"message":   result.Message,
		})
	case authusecase.OutcomeMissingCredentials:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": result.Message,
		})
	case authusecase.OutcomeInvalidCredentials:
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": result.Message,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": result.Message,
		})
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"message": "No user is logged in."})
		return
	}

	if summary := s.authService.GetUserFromToken(token); summary != nil {
		s.logger.Info("logout", zap.String("email", summary.Email))
	}

	// Stateless logout: the cookie is cleared client-side, the token
	// itself stays valid until natural expiry.
	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	// The gate already verified the token; extraction here is display
	// only.
	summary := s.authService.GetUserFromToken(extractToken(r))
	if summary == nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	err := s.authService.ChangePassword(r.Context(), identity.UserID, payload.CurrentPassword, payload.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrPasswordMismatch):
			writeError(w, http.StatusBadRequest, "current password is incorrect")
		case errors.Is(err, authdomain.ErrPasswordUnchanged):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, authdomain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
