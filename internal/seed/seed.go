package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/store"
)

// Fixture is a league snapshot loaded from YAML
type Fixture struct {
	Fields  []Field  `yaml:"fields"`
	Teams   []Team   `yaml:"teams"`
	Players []Player `yaml:"players"`
	Coaches []Coach  `yaml:"coaches"`
	Games   []Game   `yaml:"games"`
}

type Field struct {
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	Capacity int    `yaml:"capacity"`
}

type Team struct {
	Name           string `yaml:"name"`
	ChiefCoach     string `yaml:"chief_coach"`
	CompanyName    string `yaml:"company_name"`
	CompanyPhone   string `yaml:"company_phone"`
	CompanyAddress string `yaml:"company_address"`
	Field          string `yaml:"field"`
}

type Player struct {
	Team      string `yaml:"team"`
	Number    string `yaml:"number"`
	Name      string `yaml:"name"`
	Birthday  string `yaml:"birthday"`
	Position  string `yaml:"position"`
	Height    int    `yaml:"height"`
	Weight    int    `yaml:"weight"`
	Education string `yaml:"education"`
}

type Coach struct {
	Number   string `yaml:"number"`
	Name     string `yaml:"name"`
	Birthday string `yaml:"birthday"`
	Team     string `yaml:"team"`
}

type Game struct {
	Winner string `yaml:"winner"`
	Loser  string `yaml:"loser"`
	Date   string `yaml:"date"`
	Field  string `yaml:"field"`
	Result string `yaml:"result"`
}

// Load reads a fixture file
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

// Services are the write paths a fixture is applied through
type Services struct {
	Fields  *service.FieldService
	Teams   *service.TeamService
	Players *service.PlayerService
	Coaches *service.CoachService
	Games   *service.GameService
}

// Summary counts what Apply created and what already existed
type Summary struct {
	Created int
	Skipped int
}

// Apply writes the fixture in dependency order. Rows that already exist are
// skipped, so applying the same fixture twice is a no-op.
func Apply(ctx context.Context, svc Services, f *Fixture, logger *zap.Logger) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var sum Summary
	record := func(kind, key string, err error) error {
		switch {
		case err == nil:
			sum.Created++
			return nil
		case errors.Is(err, store.ErrConflict):
			sum.Skipped++
			logger.Debug("seed row already present", zap.String("kind", kind), zap.String("key", key))
			return nil
		default:
			return fmt.Errorf("seeding %s %q: %w", kind, key, err)
		}
	}

	for _, fl := range f.Fields {
		err := svc.Fields.CreateField(ctx, &store.Field{FieldName: fl.Name, Address: fl.Address, Capacity: fl.Capacity})
		if err := record("field", fl.Name, err); err != nil {
			return sum, err
		}
	}

	for _, t := range f.Teams {
		err := svc.Teams.CreateTeam(ctx, &store.Team{
			TeamName:       t.Name,
			ChiefCoach:     t.ChiefCoach,
			CompanyName:    t.CompanyName,
			CompanyPhone:   t.CompanyPhone,
			CompanyAddress: t.CompanyAddress,
			FieldName:      t.Field,
		})
		if err := record("team", t.Name, err); err != nil {
			return sum, err
		}
	}

	for _, p := range f.Players {
		birthday, err := store.ParseDate(p.Birthday)
		if err != nil {
			return sum, fmt.Errorf("seeding player %s/%s: %w", p.Team, p.Number, err)
		}
		err = svc.Players.CreatePlayer(ctx, &store.Player{
			TeamName:  p.Team,
			PlayerNo:  p.Number,
			Name:      p.Name,
			Birthday:  birthday,
			Position:  p.Position,
			Height:    p.Height,
			Weight:    p.Weight,
			Education: p.Education,
		})
		if err := record("player", p.Team+"/"+p.Number, err); err != nil {
			return sum, err
		}
	}

	for _, c := range f.Coaches {
		birthday, err := store.ParseDate(c.Birthday)
		if err != nil {
			return sum, fmt.Errorf("seeding coach %s: %w", c.Number, err)
		}
		err = svc.Coaches.CreateCoach(ctx, &store.Coach{CoachNo: c.Number, Name: c.Name, Birthday: birthday, TeamName: c.Team})
		if err := record("coach", c.Number, err); err != nil {
			return sum, err
		}
	}

	for _, g := range f.Games {
		date, err := store.ParseDate(g.Date)
		if err != nil {
			return sum, fmt.Errorf("seeding game %s-%s: %w", g.Winner, g.Loser, err)
		}
		err = svc.Games.RecordGame(ctx, &store.Game{
			WinningTeam: g.Winner,
			LosingTeam:  g.Loser,
			GameDate:    date,
			FieldName:   g.Field,
			Result:      g.Result,
		})
		if err := record("game", g.Winner+" over "+g.Loser+" on "+g.Date, err); err != nil {
			return sum, err
		}
	}

	logger.Info("fixture applied", zap.Int("created", sum.Created), zap.Int("skipped", sum.Skipped))
	return sum, nil
}
