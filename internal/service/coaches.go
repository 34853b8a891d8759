package service

import (
	"context"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

// CoachService handles coaching staff administration
type CoachService struct {
	coaches CoachRepository
	teams   TeamRepository
}

// NewCoachService creates a new coach service
func NewCoachService(coaches CoachRepository, teams TeamRepository) *CoachService {
	return &CoachService{coaches: coaches, teams: teams}
}

// ListCoaches returns all coaches
func (s *CoachService) ListCoaches(ctx context.Context) ([]*store.Coach, error) {
	coaches, err := s.coaches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching coaches: %w", err)
	}
	return nonNil(coaches), nil
}

// GetCoach returns one coach
func (s *CoachService) GetCoach(ctx context.Context, coachNo string) (*store.Coach, error) {
	coach, err := s.coaches.Get(ctx, coachNo)
	if err != nil {
		return nil, fmt.Errorf("fetching coach: %w", err)
	}
	return coach, nil
}

// CreateCoach registers a coach
func (s *CoachService) CreateCoach(ctx context.Context, c *store.Coach) error {
	if err := s.validate(ctx, c); err != nil {
		return err
	}
	if err := s.coaches.Create(ctx, c); err != nil {
		return fmt.Errorf("creating coach: %w", err)
	}
	return nil
}

// UpdateCoach edits the coach with the given number
func (s *CoachService) UpdateCoach(ctx context.Context, coachNo string, c *store.Coach) error {
	if c.CoachNo != "" && c.CoachNo != coachNo {
		return invalidf("coach number cannot be changed (%q -> %q)", coachNo, c.CoachNo)
	}
	c.CoachNo = coachNo
	if err := s.validate(ctx, c); err != nil {
		return err
	}
	if err := s.coaches.Update(ctx, c); err != nil {
		return fmt.Errorf("updating coach: %w", err)
	}
	return nil
}

// DeleteCoach removes a coach
func (s *CoachService) DeleteCoach(ctx context.Context, coachNo string) error {
	if err := s.coaches.Delete(ctx, coachNo); err != nil {
		return fmt.Errorf("deleting coach: %w", err)
	}
	return nil
}

func (s *CoachService) validate(ctx context.Context, c *store.Coach) error {
	trim(&c.CoachNo)
	trim(&c.Name)
	trim(&c.TeamName)

	if c.CoachNo == "" {
		return invalidf("coach number is required")
	}
	if c.Name == "" {
		return invalidf("coach name is required")
	}
	if c.TeamName == "" {
		return nil
	}
	return requireTeam(ctx, s.teams, c.TeamName, "team")
}
