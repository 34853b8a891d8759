package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/standings"
	"github.com/fortuna/backstage/internal/store"
)

type sourceFunc func(ctx context.Context) ([]standings.Row, error)

func (f sourceFunc) GetStandings(ctx context.Context) ([]standings.Row, error) { return f(ctx) }

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func startServer(t *testing.T, source StandingsSource) (*Server, string) {
	t.Helper()

	srv := NewServer("0", source, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go srv.hub.Run(ctx)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws/standings", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestStandingsFeedSendsSnapshotThenUpdates(t *testing.T) {
	initial := standings.Compute([]string{"Bears", "Hawks"}, nil)
	srv, url := startServer(t, sourceFunc(func(context.Context) ([]standings.Row, error) {
		return initial, nil
	}))

	conn := dial(t, url)

	f := readFrame(t, conn)
	assert.Equal(t, MessageStandings, f.Type)
	var rows []standings.Row
	require.NoError(t, json.Unmarshal(f.Data, &rows))
	assert.Equal(t, initial, rows)

	require.Eventually(t, func() bool { return srv.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.PublishGameEvent(context.Background(), service.GameEvent{
		Type: service.EventGameRecorded,
		Game: &store.Game{GameID: 1, WinningTeam: "Bears", LosingTeam: "Hawks"},
	}))
	updated := standings.Compute([]string{"Bears", "Hawks"}, []standings.Result{{Winner: "Bears", Loser: "Hawks"}})
	require.NoError(t, srv.PublishStandings(context.Background(), updated))

	f = readFrame(t, conn)
	assert.Equal(t, MessageGame, f.Type)
	var event service.GameEvent
	require.NoError(t, json.Unmarshal(f.Data, &event))
	assert.Equal(t, "Bears", event.Game.WinningTeam)

	f = readFrame(t, conn)
	assert.Equal(t, MessageStandings, f.Type)
	require.NoError(t, json.Unmarshal(f.Data, &rows))
	assert.Equal(t, updated, rows)
}

func TestStandingsFeedSurvivesSnapshotError(t *testing.T) {
	srv, url := startServer(t, sourceFunc(func(context.Context) ([]standings.Row, error) {
		return nil, errors.New("database unavailable")
	}))

	conn := dial(t, url)
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, srv.PublishStandings(context.Background(), []standings.Row{}))
	f := readFrame(t, conn)
	assert.Equal(t, MessageStandings, f.Type)
	assert.JSONEq(t, `[]`, string(f.Data))
}

func TestClientDisconnectUnregisters(t *testing.T) {
	srv, url := startServer(t, sourceFunc(func(context.Context) ([]standings.Row, error) {
		return []standings.Row{}, nil
	}))

	conn := dial(t, url)
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return srv.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHealth(t *testing.T) {
	srv := NewServer("0", sourceFunc(func(context.Context) ([]standings.Row, error) { return nil, nil }), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","clients":0}`, rec.Body.String())
}
