package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/store"
)

const maxBodyBytes = 1 << 20

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services bundles the league services the handlers call into
type Services struct {
	Teams     *service.TeamService
	Players   *service.PlayerService
	Coaches   *service.CoachService
	Fields    *service.FieldService
	Games     *service.GameService
	Standings *service.StandingsService
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	svc    Services
	health HealthChecker
	logger *zap.Logger
}

// NewHandler creates a new handler. health may be nil.
func NewHandler(svc Services, health HealthChecker, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, health: health, logger: logger}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.HealthCheck(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "backstage",
	})
}

// GetStandings returns the league table
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Standings.GetStandings(r.Context())
	if err != nil {
		h.fail(w, "Failed to compute standings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"standings": rows,
		"count":     len(rows),
	})
}

// GetRecords returns the league table as a bare array
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Standings.GetStandings(r.Context())
	if err != nil {
		h.fail(w, "Failed to compute standings", err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// fail maps a service error onto a status code and writes it
func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
	}
	respondError(w, status, message, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", service.ErrInvalidInput, err)
	}
	return nil
}

func intVar(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidInput, name)
	}
	return value, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
