package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fortuna/backstage/internal/seed"
	"github.com/fortuna/backstage/internal/standings"
	"github.com/fortuna/backstage/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.NewDatabase(cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		return db.RunMigrations(cmd.Context())
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fields, teams, players, coaches and games from a YAML fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		lg, err := openLeague(cmd.Context())
		if err != nil {
			return err
		}
		defer lg.Close()

		svc := lg.services
		sum, err := seed.Apply(cmd.Context(), seed.Services{
			Fields:  svc.Fields,
			Teams:   svc.Teams,
			Players: svc.Players,
			Coaches: svc.Coaches,
			Games:   svc.Games,
		}, fixture, logger)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d rows (%d already present)\n", sum.Created, sum.Skipped)
		return nil
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Print the current league table",
	RunE: func(cmd *cobra.Command, args []string) error {
		lg, err := openLeague(cmd.Context())
		if err != nil {
			return err
		}
		defer lg.Close()

		rows, err := lg.services.Standings.GetStandings(cmd.Context())
		if err != nil {
			return err
		}
		logger.Debug("standings computed", zap.Int("teams", len(rows)), zap.String("orphan_policy", cfg.OrphanPolicy))

		return standings.WriteTable(cmd.OutOrStdout(), rows)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "league.yaml", "fixture file")
}
