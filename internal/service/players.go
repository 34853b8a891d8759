package service

import (
	"context"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

// PlayerService handles roster administration
type PlayerService struct {
	players PlayerRepository
	teams   TeamRepository
}

// NewPlayerService creates a new player service
func NewPlayerService(players PlayerRepository, teams TeamRepository) *PlayerService {
	return &PlayerService{players: players, teams: teams}
}

// ListPlayers returns all players, or one team's players when teamName is set
func (s *PlayerService) ListPlayers(ctx context.Context, teamName string) ([]*store.Player, error) {
	var (
		players []*store.Player
		err     error
	)
	if teamName != "" {
		players, err = s.players.ListByTeam(ctx, teamName)
	} else {
		players, err = s.players.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	return nonNil(players), nil
}

// GetPlayer returns a player by team and number
func (s *PlayerService) GetPlayer(ctx context.Context, teamName, playerNo string) (*store.Player, error) {
	player, err := s.players.Get(ctx, teamName, playerNo)
	if err != nil {
		return nil, fmt.Errorf("fetching player: %w", err)
	}
	return player, nil
}

// CreatePlayer adds a player to a team's roster
func (s *PlayerService) CreatePlayer(ctx context.Context, p *store.Player) error {
	if err := s.validate(ctx, p); err != nil {
		return err
	}
	if err := s.players.Create(ctx, p); err != nil {
		return fmt.Errorf("creating player: %w", err)
	}
	return nil
}

// UpdatePlayer edits the player identified by (teamName, playerNo).
// Setting p.TeamName to another team transfers the player.
func (s *PlayerService) UpdatePlayer(ctx context.Context, teamName, playerNo string, p *store.Player) error {
	if p.TeamName == "" {
		p.TeamName = teamName
	}
	if p.PlayerNo == "" {
		p.PlayerNo = playerNo
	}
	if p.PlayerNo != playerNo {
		return invalidf("player number cannot be changed (%q -> %q)", playerNo, p.PlayerNo)
	}
	if err := s.validate(ctx, p); err != nil {
		return err
	}
	if err := s.players.Update(ctx, teamName, playerNo, p); err != nil {
		return fmt.Errorf("updating player: %w", err)
	}
	return nil
}

// DeletePlayer removes a player from a roster
func (s *PlayerService) DeletePlayer(ctx context.Context, teamName, playerNo string) error {
	if err := s.players.Delete(ctx, teamName, playerNo); err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}
	return nil
}

func (s *PlayerService) validate(ctx context.Context, p *store.Player) error {
	trim(&p.TeamName)
	trim(&p.PlayerNo)
	trim(&p.Name)
	trim(&p.Position)
	trim(&p.Education)

	switch {
	case p.TeamName == "":
		return invalidf("team name is required")
	case p.PlayerNo == "":
		return invalidf("player number is required")
	case p.Name == "":
		return invalidf("player name is required")
	case p.Height < 0 || p.Weight < 0:
		return invalidf("height and weight must not be negative")
	}
	return requireTeam(ctx, s.teams, p.TeamName, "team")
}
