package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fortuna/backstage/internal/api/rest"
	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/standings"
	"github.com/fortuna/backstage/internal/store"
	"github.com/fortuna/backstage/internal/store/repository"
)

// league is the service graph shared by every command
type league struct {
	db       *store.Database
	services rest.Services
}

// openLeague connects to Postgres, applies migrations and wires the services
func openLeague(ctx context.Context) (*league, error) {
	db, err := store.NewDatabase(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	teams := repository.NewTeamRepository(db)
	players := repository.NewPlayerRepository(db)
	coaches := repository.NewCoachRepository(db)
	fields := repository.NewFieldRepository(db)
	games := repository.NewGameRepository(db)

	calc := standings.NewCalculator(standings.WithOrphanPolicy(cfg.Policy()))
	st := service.NewStandingsService(teams, games, calc)

	return &league{
		db: db,
		services: rest.Services{
			Teams:     service.NewTeamService(teams, players, games),
			Players:   service.NewPlayerService(players, teams),
			Coaches:   service.NewCoachService(coaches, teams),
			Fields:    service.NewFieldService(fields),
			Games:     service.NewGameService(games, teams, st, logger.Named("games")),
			Standings: st,
		},
	}, nil
}

func (l *league) Close() {
	if err := l.db.Close(); err != nil {
		logger.Warn("closing database", zap.Error(err))
	}
}
