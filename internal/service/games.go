package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fortuna/backstage/internal/store"
)

// GameService records results and notifies sinks of the new standings
type GameService struct {
	games     GameRepository
	teams     TeamRepository
	standings *StandingsService
	sinks     []EventSink
	logger    *zap.Logger
}

// NewGameService creates a new game service
func NewGameService(games GameRepository, teams TeamRepository, standings *StandingsService, logger *zap.Logger, sinks ...EventSink) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		games:     games,
		teams:     teams,
		standings: standings,
		sinks:     sinks,
		logger:    logger,
	}
}

// AddSink registers another sink for game events
func (s *GameService) AddSink(sink EventSink) {
	s.sinks = append(s.sinks, sink)
}

// ListGames returns all recorded games, most recent first
func (s *GameService) ListGames(ctx context.Context) ([]*store.Game, error) {
	games, err := s.games.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching games: %w", err)
	}
	return nonNil(games), nil
}

// GetGame returns one game
func (s *GameService) GetGame(ctx context.Context, gameID int) (*store.Game, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}
	return game, nil
}

// RecordGame stores a new result
func (s *GameService) RecordGame(ctx context.Context, game *store.Game) error {
	if err := s.validate(ctx, game); err != nil {
		return err
	}
	if err := s.games.Create(ctx, game); err != nil {
		return fmt.Errorf("recording game: %w", err)
	}

	s.logger.Info("game recorded",
		zap.Int("game_id", game.GameID),
		zap.String("winner", game.WinningTeam),
		zap.String("loser", game.LosingTeam),
	)
	s.notify(ctx, EventGameRecorded, game)
	return nil
}

// UpdateGame replaces a recorded result
func (s *GameService) UpdateGame(ctx context.Context, gameID int, game *store.Game) error {
	if game.GameID != 0 && game.GameID != gameID {
		return invalidf("game id cannot be changed (%d -> %d)", gameID, game.GameID)
	}
	game.GameID = gameID
	if err := s.validate(ctx, game); err != nil {
		return err
	}
	if err := s.games.Update(ctx, game); err != nil {
		return fmt.Errorf("updating game: %w", err)
	}

	s.logger.Info("game updated", zap.Int("game_id", gameID))
	s.notify(ctx, EventGameUpdated, game)
	return nil
}

// DeleteGame removes a recorded result
func (s *GameService) DeleteGame(ctx context.Context, gameID int) error {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("fetching game: %w", err)
	}
	if err := s.games.Delete(ctx, gameID); err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}

	s.logger.Info("game deleted", zap.Int("game_id", gameID))
	s.notify(ctx, EventGameDeleted, game)
	return nil
}

func (s *GameService) validate(ctx context.Context, game *store.Game) error {
	trim(&game.WinningTeam)
	trim(&game.LosingTeam)
	trim(&game.FieldName)
	trim(&game.Result)

	switch {
	case game.WinningTeam == "" || game.LosingTeam == "":
		return invalidf("winning and losing team are required")
	case game.WinningTeam == game.LosingTeam:
		return invalidf("a team cannot play itself (%q)", game.WinningTeam)
	case game.GameDate.IsZero():
		return invalidf("game date is required")
	}

	if err := requireTeam(ctx, s.teams, game.WinningTeam, "winning team"); err != nil {
		return err
	}
	return requireTeam(ctx, s.teams, game.LosingTeam, "losing team")
}

// notify fans the change out to every sink. Failures are logged only; the
// result is already stored.
func (s *GameService) notify(ctx context.Context, eventType string, game *store.Game) {
	if len(s.sinks) == 0 {
		return
	}

	event := GameEvent{Type: eventType, Game: game, OccurredAt: time.Now().UTC()}
	for _, sink := range s.sinks {
		if err := sink.PublishGameEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish game event",
				zap.String("type", eventType),
				zap.Int("game_id", game.GameID),
				zap.Error(err),
			)
		}
	}

	if s.standings == nil {
		return
	}
	rows, err := s.standings.GetStandings(ctx)
	if err != nil {
		s.logger.Warn("failed to compute standings for broadcast", zap.Error(err))
		return
	}
	for _, sink := range s.sinks {
		if err := sink.PublishStandings(ctx, rows); err != nil {
			s.logger.Warn("failed to publish standings", zap.Error(err))
		}
	}
}
