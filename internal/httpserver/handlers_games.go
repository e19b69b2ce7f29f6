package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	gamedomain "gamevault/backend/internal/domain/game"
	gameusecase "gamevault/backend/internal/usecase/game"
)

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.gameService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleListGamesOnSale(w http.ResponseWriter, r *http.Request) {
	games, err := s.gameService.ListOnSale(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "game id required")
		return
	}

	game, err := s.gameService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, gamedomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var payload gameusecase.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	game, err := s.gameService.Create(r.Context(), payload)
	if err != nil {
		if errors.Is(err, gamedomain.ErrNameExists) {
			writeError(w, http.StatusConflict, err.Error())
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "game id required")
		return
	}

	var payload gameusecase.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	game, err := s.gameService.Update(r.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, gamedomain.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, gamedomain.ErrNameExists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "game id required")
		return
	}

	if err := s.gameService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, gamedomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApplyDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "game id required")
		return
	}

	var payload struct {
		Percentage int `json:"percentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	game, err := s.gameService.ApplyDiscount(r.Context(), id, payload.Percentage)
	if err != nil {
		switch {
		case errors.Is(err, gamedomain.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, gamedomain.ErrInvalidDiscount):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleUpdateSaleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "game id required")
		return
	}

	var payload struct {
		OnSale *bool `json:"onSale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.OnSale == nil {
		writeError(w, http.StatusBadRequest, "onSale is required")
		return
	}

	game, err := s.gameService.UpdateSaleStatus(r.Context(), id, *payload.OnSale)
	if err != nil {
		if errors.Is(err, gamedomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, game)
}
