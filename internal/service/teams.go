package service

import (
	"context"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

// TeamService handles team administration
type TeamService struct {
	teams   TeamRepository
	players PlayerRepository
	games   GameRepository
}

// NewTeamService creates a new team service
func NewTeamService(teams TeamRepository, players PlayerRepository, games GameRepository) *TeamService {
	return &TeamService{teams: teams, players: players, games: games}
}

// ListTeams returns every registered team
func (s *TeamService) ListTeams(ctx context.Context) ([]*store.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	return teams, nil
}

// GetTeam returns one team by name
func (s *TeamService) GetTeam(ctx context.Context, name string) (*store.Team, error) {
	team, err := s.teams.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	return team, nil
}

// CreateTeam registers a new team
func (s *TeamService) CreateTeam(ctx context.Context, team *store.Team) error {
	normalizeTeam(team)
	if team.TeamName == "" {
		return invalidf("team name is required")
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return fmt.Errorf("creating team: %w", err)
	}
	return nil
}

// UpdateTeam edits a team's details. The name identifies the team and cannot change.
func (s *TeamService) UpdateTeam(ctx context.Context, name string, team *store.Team) error {
	normalizeTeam(team)
	if team.TeamName != "" && team.TeamName != name {
		return invalidf("team name cannot be changed (%q -> %q)", name, team.TeamName)
	}
	team.TeamName = name
	if err := s.teams.Update(ctx, team); err != nil {
		return fmt.Errorf("updating team: %w", err)
	}
	return nil
}

// DeleteTeam removes a team. Recorded games stay and drop out of the standings.
func (s *TeamService) DeleteTeam(ctx context.Context, name string) error {
	if err := s.teams.Delete(ctx, name); err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return nil
}

// GetRoster returns the players registered to a team
func (s *TeamService) GetRoster(ctx context.Context, name string) (*Roster, error) {
	team, err := s.teams.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	players, err := s.players.ListByTeam(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}
	return &Roster{Team: team, Players: nonNil(players)}, nil
}

// GetSchedule returns the games a team has played
func (s *TeamService) GetSchedule(ctx context.Context, name string) ([]*store.Game, error) {
	if _, err := s.teams.GetByName(ctx, name); err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	games, err := s.games.ListByTeam(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching team games: %w", err)
	}
	return nonNil(games), nil
}

// Roster pairs a team with its players
type Roster struct {
	Team    *store.Team     `json:"team"`
	Players []*store.Player `json:"players"`
}

func normalizeTeam(team *store.Team) {
	trim(&team.TeamName)
	trim(&team.ChiefCoach)
	trim(&team.CompanyName)
	trim(&team.CompanyPhone)
	trim(&team.CompanyAddress)
	trim(&team.FieldName)
}

// nonNil keeps empty collections encoding as [] instead of null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
