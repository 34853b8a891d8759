package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fortuna/backstage/internal/store"
)

// ErrInvalidInput marks a request rejected by validation.
var ErrInvalidInput = errors.New("invalid input")

// TeamRepository is the team storage the services depend on.
type TeamRepository interface {
	List(ctx context.Context) ([]*store.Team, error)
	ListNames(ctx context.Context) ([]string, error)
	GetByName(ctx context.Context, name string) (*store.Team, error)
	Create(ctx context.Context, team *store.Team) error
	Update(ctx context.Context, team *store.Team) error
	Delete(ctx context.Context, name string) error
}

// PlayerRepository is the player storage the services depend on.
type PlayerRepository interface {
	List(ctx context.Context) ([]*store.Player, error)
	ListByTeam(ctx context.Context, teamName string) ([]*store.Player, error)
	Get(ctx context.Context, teamName, playerNo string) (*store.Player, error)
	Create(ctx context.Context, p *store.Player) error
	Update(ctx context.Context, teamName, playerNo string, p *store.Player) error
	Delete(ctx context.Context, teamName, playerNo string) error
}

// CoachRepository is the coach storage the services depend on.
type CoachRepository interface {
	List(ctx context.Context) ([]*store.Coach, error)
	Get(ctx context.Context, coachNo string) (*store.Coach, error)
	Create(ctx context.Context, c *store.Coach) error
	Update(ctx context.Context, c *store.Coach) error
	Delete(ctx context.Context, coachNo string) error
}

// FieldRepository is the venue storage the services depend on.
type FieldRepository interface {
	List(ctx context.Context) ([]*store.Field, error)
	Create(ctx context.Context, f *store.Field) error
}

// GameRepository is the game result storage the services depend on.
type GameRepository interface {
	List(ctx context.Context) ([]*store.Game, error)
	ListByTeam(ctx context.Context, teamName string) ([]*store.Game, error)
	GetByID(ctx context.Context, gameID int) (*store.Game, error)
	Create(ctx context.Context, game *store.Game) error
	Update(ctx context.Context, game *store.Game) error
	Delete(ctx context.Context, gameID int) error
}

// requireTeam checks that name is a registered team, turning a miss into a
// validation failure rather than a not-found.
func requireTeam(ctx context.Context, teams TeamRepository, name, role string) error {
	if _, err := teams.GetByName(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalidf("%s %q is not a registered team", role, name)
		}
		return err
	}
	return nil
}

func trim(s *string) {
	*s = strings.TrimSpace(*s)
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
