package service

import (
	"context"
	"fmt"

	"github.com/fortuna/backstage/internal/standings"
)

// StandingsService builds the league table from the stored teams and games.
// Nothing is cached: every call reads the current rows.
type StandingsService struct {
	teams TeamRepository
	games GameRepository
	calc  *standings.Calculator
}

// NewStandingsService creates a standings service. A nil calculator uses the defaults.
func NewStandingsService(teams TeamRepository, games GameRepository, calc *standings.Calculator) *StandingsService {
	if calc == nil {
		calc = standings.NewCalculator()
	}
	return &StandingsService{teams: teams, games: games, calc: calc}
}

// GetStandings returns the current league table
func (s *StandingsService) GetStandings(ctx context.Context) ([]standings.Row, error) {
	names, err := s.teams.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching team names: %w", err)
	}

	games, err := s.games.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching games: %w", err)
	}

	results := make([]standings.Result, 0, len(games))
	for _, g := range games {
		results = append(results, standings.Result{Winner: g.WinningTeam, Loser: g.LosingTeam})
	}

	return s.calc.Compute(names, results), nil
}
