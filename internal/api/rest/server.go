package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
	logger  *zap.Logger
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		port:    port,
		handler: handler,
		logger:  logger,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           NewRouter(handler, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter wires every route and middleware onto a mux router
func NewRouter(handler *Handler, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggingMiddleware(logger))
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Standings
	api.HandleFunc("/standings", handler.GetStandings).Methods("GET")
	api.HandleFunc("/records", handler.GetRecords).Methods("GET")

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams", handler.CreateTeam).Methods("POST")
	api.HandleFunc("/teams/{teamName}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamName}", handler.UpdateTeam).Methods("PUT")
	api.HandleFunc("/teams/{teamName}", handler.DeleteTeam).Methods("DELETE")
	api.HandleFunc("/teams/{teamName}/roster", handler.GetTeamRoster).Methods("GET")
	api.HandleFunc("/teams/{teamName}/games", handler.GetTeamGames).Methods("GET")

	// Players
	api.HandleFunc("/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/players", handler.CreatePlayer).Methods("POST")
	api.HandleFunc("/players/{teamName}/{playerNo}", handler.GetPlayer).Methods("GET")
	api.HandleFunc("/players/{teamName}/{playerNo}", handler.UpdatePlayer).Methods("PUT")
	api.HandleFunc("/players/{teamName}/{playerNo}", handler.DeletePlayer).Methods("DELETE")

	// Coaches
	api.HandleFunc("/coaches", handler.GetCoaches).Methods("GET")
	api.HandleFunc("/coaches", handler.CreateCoach).Methods("POST")
	api.HandleFunc("/coaches/{coachNo}", handler.GetCoach).Methods("GET")
	api.HandleFunc("/coaches/{coachNo}", handler.UpdateCoach).Methods("PUT")
	api.HandleFunc("/coaches/{coachNo}", handler.DeleteCoach).Methods("DELETE")

	// Games
	api.HandleFunc("/games", handler.GetGames).Methods("GET")
	api.HandleFunc("/games", handler.CreateGame).Methods("POST")
	api.HandleFunc("/games/{gameID:[0-9]+}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID:[0-9]+}", handler.UpdateGame).Methods("PUT")
	api.HandleFunc("/games/{gameID:[0-9]+}", handler.DeleteGame).Methods("DELETE")

	// Fields
	api.HandleFunc("/fields", handler.GetFields).Methods("GET")
	api.HandleFunc("/fields", handler.CreateField).Methods("POST")

	// CORS preflight for any path
	router.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return router
}

// Start starts the REST API server
func (s *Server) Start() error {
	s.logger.Info("REST API server listening", zap.String("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
