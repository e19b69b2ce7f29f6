package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authdomain "gamevault/backend/internal/domain/auth"
	gamedomain "gamevault/backend/internal/domain/game"
	librarydomain "gamevault/backend/internal/domain/library"
)

func (s *Server) handleListLibraries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.libraryService.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"libraries": entries})
}

func (s *Server) handleGameOwners(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "game id required")
		return
	}

	entries, err := s.libraryService.ListByGame(r.Context(), gameID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"owners": entries})
}

func (s *Server) handleUserLibrary(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id required")
		return
	}

	identity, _ := identityFromContext(r.Context())
	if !canActFor(identity, userID) {
		writeError(w, http.StatusForbidden, "Common users can only view their own game library")
		return
	}

	entries, err := s.libraryService.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": entries})
}

func (s *Server) handleGetLibraryEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id required")
		return
	}
	gameID, err := pathID(r, "gameId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "game id required")
		return
	}

	identity, _ := identityFromContext(r.Context())
	if !canActFor(identity, userID) {
		writeError(w, http.StatusForbidden, "Common users can only view their own game library")
		return
	}

	entry, err := s.libraryService.Get(r.Context(), userID, gameID)
	if err != nil {
		if errors.Is(err, librarydomain.ErrNotOwned) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleAddToLibrary(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID int64 `json:"userId"`
		GameID int64 `json:"gameId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	identity, _ := identityFromContext(r.Context())
	if !canActFor(identity, payload.UserID) {
		writeError(w, http.StatusForbidden, "Common users can only add games to their own library")
		return
	}

	entry, err := s.libraryService.Add(r.Context(), payload.UserID, payload.GameID)
	if err != nil {
		switch {
		case errors.Is(err, librarydomain.ErrAlreadyOwned):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, authdomain.ErrUserNotFound), errors.Is(err, gamedomain.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleMoveLibraryEntry(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID         int64 `json:"userId"`
		GameID         int64 `json:"gameId"`
		UpdateToGameID int64 `json:"updateToGameId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	entry, err := s.libraryService.Move(r.Context(), payload.UserID, payload.GameID, payload.UpdateToGameID)
	if err != nil {
		switch {
		case errors.Is(err, librarydomain.ErrNotOwned):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, librarydomain.ErrAlreadyOwned):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, authdomain.ErrUserNotFound), errors.Is(err, gamedomain.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleRemoveFromLibrary(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "user id required")
		return
	}
	gameID, err := pathID(r, "gameId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "game id required")
		return
	}

	identity, _ := identityFromContext(r.Context())
	if !canActFor(identity, userID) {
		writeError(w, http.StatusForbidden, "Common users can only delete games from their own library")
		return
	}

	if err := s.libraryService.Remove(r.Context(), userID, gameID); err != nil {
		if errors.Is(err, librarydomain.ErrNotOwned) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
