package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/backstage/internal/store"
)

// GetTeams returns all teams
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.Teams.ListTeams(r.Context())
	if err != nil {
		h.fail(w, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

// GetTeam returns a team by name
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.svc.Teams.GetTeam(r.Context(), mux.Vars(r)["teamName"])
	if err != nil {
		h.fail(w, "Failed to fetch team", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// CreateTeam registers a team
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var team store.Team
	if err := decodeJSON(w, r, &team); err != nil {
		h.fail(w, "Invalid team", err)
		return
	}
	if err := h.svc.Teams.CreateTeam(r.Context(), &team); err != nil {
		h.fail(w, "Failed to create team", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"team": team})
}

// UpdateTeam edits a team
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var team store.Team
	if err := decodeJSON(w, r, &team); err != nil {
		h.fail(w, "Invalid team", err)
		return
	}
	if err := h.svc.Teams.UpdateTeam(r.Context(), mux.Vars(r)["teamName"], &team); err != nil {
		h.fail(w, "Failed to update team", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// DeleteTeam removes a team
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Teams.DeleteTeam(r.Context(), mux.Vars(r)["teamName"]); err != nil {
		h.fail(w, "Failed to delete team", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTeamRoster returns a team's players
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.svc.Teams.GetRoster(r.Context(), mux.Vars(r)["teamName"])
	if err != nil {
		h.fail(w, "Failed to fetch team roster", err)
		return
	}

	respondJSON(w, http.StatusOK, roster)
}

// GetTeamGames returns the games a team has played
func (h *Handler) GetTeamGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.Teams.GetSchedule(r.Context(), mux.Vars(r)["teamName"])
	if err != nil {
		h.fail(w, "Failed to fetch team games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetPlayers returns players, optionally filtered by ?team=
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.Players.ListPlayers(r.Context(), r.URL.Query().Get("team"))
	if err != nil {
		h.fail(w, "Failed to fetch players", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": players,
		"count":   len(players),
	})
}

// GetPlayer returns a player by team and number
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	player, err := h.svc.Players.GetPlayer(r.Context(), vars["teamName"], vars["playerNo"])
	if err != nil {
		h.fail(w, "Failed to fetch player", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"player": player})
}

// CreatePlayer adds a player to a roster
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var player store.Player
	if err := decodeJSON(w, r, &player); err != nil {
		h.fail(w, "Invalid player", err)
		return
	}
	if err := h.svc.Players.CreatePlayer(r.Context(), &player); err != nil {
		h.fail(w, "Failed to create player", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"player": player})
}

// UpdatePlayer edits or transfers a player
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var player store.Player
	if err := decodeJSON(w, r, &player); err != nil {
		h.fail(w, "Invalid player", err)
		return
	}
	vars := mux.Vars(r)
	if err := h.svc.Players.UpdatePlayer(r.Context(), vars["teamName"], vars["playerNo"], &player); err != nil {
		h.fail(w, "Failed to update player", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"player": player})
}

// DeletePlayer removes a player
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.Players.DeletePlayer(r.Context(), vars["teamName"], vars["playerNo"]); err != nil {
		h.fail(w, "Failed to delete player", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCoaches returns all coaches
func (h *Handler) GetCoaches(w http.ResponseWriter, r *http.Request) {
	coaches, err := h.svc.Coaches.ListCoaches(r.Context())
	if err != nil {
		h.fail(w, "Failed to fetch coaches", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"coaches": coaches,
		"count":   len(coaches),
	})
}

// GetCoach returns a coach by number
func (h *Handler) GetCoach(w http.ResponseWriter, r *http.Request) {
	coach, err := h.svc.Coaches.GetCoach(r.Context(), mux.Vars(r)["coachNo"])
	if err != nil {
		h.fail(w, "Failed to fetch coach", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"coach": coach})
}

// CreateCoach registers a coach
func (h *Handler) CreateCoach(w http.ResponseWriter, r *http.Request) {
	var coach store.Coach
	if err := decodeJSON(w, r, &coach); err != nil {
		h.fail(w, "Invalid coach", err)
		return
	}
	if err := h.svc.Coaches.CreateCoach(r.Context(), &coach); err != nil {
		h.fail(w, "Failed to create coach", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"coach": coach})
}

// UpdateCoach edits a coach
func (h *Handler) UpdateCoach(w http.ResponseWriter, r *http.Request) {
	var coach store.Coach
	if err := decodeJSON(w, r, &coach); err != nil {
		h.fail(w, "Invalid coach", err)
		return
	}
	if err := h.svc.Coaches.UpdateCoach(r.Context(), mux.Vars(r)["coachNo"], &coach); err != nil {
		h.fail(w, "Failed to update coach", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"coach": coach})
}

// DeleteCoach removes a coach
func (h *Handler) DeleteCoach(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Coaches.DeleteCoach(r.Context(), mux.Vars(r)["coachNo"]); err != nil {
		h.fail(w, "Failed to delete coach", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFields returns all venues
func (h *Handler) GetFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.svc.Fields.ListFields(r.Context())
	if err != nil {
		h.fail(w, "Failed to fetch fields", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fields": fields,
		"count":  len(fields),
	})
}

// CreateField registers a venue
func (h *Handler) CreateField(w http.ResponseWriter, r *http.Request) {
	var field store.Field
	if err := decodeJSON(w, r, &field); err != nil {
		h.fail(w, "Invalid field", err)
		return
	}
	if err := h.svc.Fields.CreateField(r.Context(), &field); err != nil {
		h.fail(w, "Failed to create field", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"field": field})
}
