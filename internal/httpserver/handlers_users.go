package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authdomain "gamevault/backend/internal/domain/auth"
	roledomain "gamevault/backend/internal/domain/role"
	userusecase "gamevault/backend/internal/usecase/user"
)

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserResponse(u *authdomain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.RoleName,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: u.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toUserResponses(users []*authdomain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.userService.Register(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		if errors.Is(err, authdomain.ErrEmailExists) {
			writeError(w, http.StatusConflict, err.Error())
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": toUserResponse(user)})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context(), userusecase.Filter{
		RoleName: r.URL.Query().Get("role"),
	})
	if err != nil {
		if errors.Is(err, roledomain.ErrNotFound) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": toUserResponses(users)})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id required")
		return
	}

	user, err := s.userService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.userService.Create(r.Context(), userusecase.CreateInput{
		Email:    payload.Email,
		Name:     payload.Name,
		Password: payload.Password,
		RoleName: payload.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, roledomain.ErrNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": toUserResponse(user)})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id required")
		return
	}

	var payload struct {
		Email *string `json:"email"`
		Name  *string `json:"name"`
		Role  *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := s.userService.Update(r.Context(), id, userusecase.UpdateInput{
		Email:    payload.Email,
		Name:     payload.Name,
		RoleName: payload.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, authdomain.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, roledomain.ErrNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id required")
		return
	}

	if err := s.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
