package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/standings"
)

// Message types pushed to clients
const (
	MessageStandings = "standings"
	MessageGame      = "game"
)

// Message is the envelope for every frame sent to clients
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// StandingsSource provides the snapshot sent to newly connected clients
type StandingsSource interface {
	GetStandings(ctx context.Context) ([]standings.Row, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server represents the WebSocket server
type Server struct {
	port      string
	server    *http.Server
	hub       *Hub
	standings StandingsSource
	logger    *zap.Logger
}

var _ service.EventSink = (*Server)(nil)

// NewServer creates a new WebSocket server
func NewServer(port string, source StandingsSource, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		port:      port,
		hub:       NewHub(logger),
		standings: source,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/standings", s.handleStandings)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}
	return s
}

// Handler exposes the routes for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the hub and serves until Shutdown is called
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run(ctx)

	s.logger.Info("websocket server listening", zap.String("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// handleStandings upgrades the connection, sends the current table and then
// streams every update
func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	client := newClient(s.hub, conn)

	rows, err := s.standings.GetStandings(r.Context())
	if err != nil {
		s.logger.Error("failed to load standings snapshot", zap.Error(err))
	} else if data, err := encode(MessageStandings, rows); err == nil {
		client.send <- data
	}

	if !s.hub.join(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"clients": s.hub.ClientCount(),
	})
}

// PublishGameEvent pushes a game change to every client
func (s *Server) PublishGameEvent(ctx context.Context, event service.GameEvent) error {
	return s.broadcast(MessageGame, event)
}

// PublishStandings pushes a standings snapshot to every client
func (s *Server) PublishStandings(ctx context.Context, rows []standings.Row) error {
	return s.broadcast(MessageStandings, rows)
}

func (s *Server) broadcast(kind string, payload interface{}) error {
	data, err := encode(kind, payload)
	if err != nil {
		return err
	}
	s.hub.Broadcast(data)
	return nil
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func encode(kind string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(Message{Type: kind, Data: payload})
	if err != nil {
		return nil, fmt.Errorf("encoding %s message: %w", kind, err)
	}
	return data, nil
}
