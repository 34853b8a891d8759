package service

import (
	"context"
	"time"

	"github.com/fortuna/backstage/internal/standings"
	"github.com/fortuna/backstage/internal/store"
)

// Game event types
const (
	EventGameRecorded = "game.recorded"
	EventGameUpdated  = "game.updated"
	EventGameDeleted  = "game.deleted"
)

// GameEvent describes a change to the recorded results
type GameEvent struct {
	Type       string      `json:"type"`
	Game       *store.Game `json:"game"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// EventSink receives game changes and the standings they produce.
// Sinks are notified after the write has committed; a failing sink
// never fails the write.
type EventSink interface {
	PublishGameEvent(ctx context.Context, event GameEvent) error
	PublishStandings(ctx context.Context, rows []standings.Row) error
}
