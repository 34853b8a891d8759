package rest

import (
	"net/http"

	"github.com/fortuna/backstage/internal/store"
)

// GetGames returns all recorded games
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.Games.ListGames(r.Context())
	if err != nil {
		h.fail(w, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetGame returns a specific game by ID
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := intVar(r, "gameID")
	if err != nil {
		h.fail(w, "Invalid game ID", err)
		return
	}

	game, err := h.svc.Games.GetGame(r.Context(), gameID)
	if err != nil {
		h.fail(w, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"game": game})
}

// CreateGame records a result
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var game store.Game
	if err := decodeJSON(w, r, &game); err != nil {
		h.fail(w, "Invalid game", err)
		return
	}
	if err := h.svc.Games.RecordGame(r.Context(), &game); err != nil {
		h.fail(w, "Failed to record game", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"game": game})
}

// UpdateGame replaces a recorded result
func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := intVar(r, "gameID")
	if err != nil {
		h.fail(w, "Invalid game ID", err)
		return
	}

	var game store.Game
	if err := decodeJSON(w, r, &game); err != nil {
		h.fail(w, "Invalid game", err)
		return
	}
	if err := h.svc.Games.UpdateGame(r.Context(), gameID, &game); err != nil {
		h.fail(w, "Failed to update game", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"game": game})
}

// DeleteGame removes a recorded result
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := intVar(r, "gameID")
	if err != nil {
		h.fail(w, "Invalid game ID", err)
		return
	}

	if err := h.svc.Games.DeleteGame(r.Context(), gameID); err != nil {
		h.fail(w, "Failed to delete game", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
