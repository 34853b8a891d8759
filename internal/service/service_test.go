package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/standings"
	"github.com/fortuna/backstage/internal/store"
	"github.com/fortuna/backstage/internal/testutil"
)

func date(t *testing.T, s string) store.Date {
	t.Helper()
	d, err := store.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newGameService(league *testutil.League, sinks ...service.EventSink) (*service.GameService, *service.StandingsService) {
	st := service.NewStandingsService(league.Teams(), league.Games(), nil)
	return service.NewGameService(league.Games(), league.Teams(), st, nil, sinks...), st
}

func TestStandingsServiceReadsCurrentState(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks", "Owls")
	league.MustAddGame("Bears", "Hawks", "2025-04-01")
	league.MustAddGame("Bears", "Owls", "2025-04-02")

	svc := service.NewStandingsService(league.Teams(), league.Games(), nil)
	rows, err := svc.GetStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, standings.Row{TeamName: "Bears", Wins: 2, WinRate: 1.0}, rows[0])

	league.MustAddGame("Hawks", "Owls", "2025-04-03")
	rows, err = svc.GetStandings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hawks", rows[1].TeamName)
	assert.Equal(t, 1, rows[1].Wins)
}

func TestStandingsServiceOrphanPolicy(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks")
	league.MustAddGame("Bears", "Wolves", "2025-04-01")

	excl := service.NewStandingsService(league.Teams(), league.Games(), nil)
	rows, err := excl.GetStandings(context.Background())
	require.NoError(t, err)
	for _, row := range rows {
		assert.Zero(t, row.Wins)
	}

	known := service.NewStandingsService(league.Teams(), league.Games(),
		standings.NewCalculator(standings.WithOrphanPolicy(standings.CountKnownSide)))
	rows, err = known.GetStandings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bears", rows[0].TeamName)
	assert.Equal(t, 1, rows[0].Wins)
}

func TestStandingsServiceStorageError(t *testing.T) {
	league := testutil.NewLeague()
	league.Err = errors.New("connection refused")

	svc := service.NewStandingsService(league.Teams(), league.Games(), nil)
	_, err := svc.GetStandings(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestRecordGameValidation(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks")
	svc, _ := newGameService(league)

	tests := []struct {
		name string
		game store.Game
	}{
		{"missing winner", store.Game{LosingTeam: "Hawks", GameDate: date(t, "2025-04-01")}},
		{"self", store.Game{WinningTeam: "Bears", LosingTeam: " Bears ", GameDate: date(t, "2025-04-01")}},
		{"missing date", store.Game{WinningTeam: "Bears", LosingTeam: "Hawks"}},
		{"unknown loser", store.Game{WinningTeam: "Bears", LosingTeam: "Wolves", GameDate: date(t, "2025-04-01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.game
			err := svc.RecordGame(context.Background(), &g)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}

	games, err := svc.ListGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestRecordGamePublishesEventAndStandings(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks")

	sink := new(testutil.MockEventSink)
	sink.On("PublishGameEvent", mock.Anything, mock.MatchedBy(func(e service.GameEvent) bool {
		return e.Type == service.EventGameRecorded && e.Game.WinningTeam == "Bears"
	})).Return(nil).Once()
	sink.On("PublishStandings", mock.Anything, mock.MatchedBy(func(rows []standings.Row) bool {
		return len(rows) == 2 && rows[0].TeamName == "Bears" && rows[0].Wins == 1
	})).Return(nil).Once()

	svc, _ := newGameService(league, sink)
	game := &store.Game{WinningTeam: "Bears", LosingTeam: "Hawks", GameDate: date(t, "2025-04-01"), Result: "5-3"}
	require.NoError(t, svc.RecordGame(context.Background(), game))
	assert.NotZero(t, game.GameID)

	testutil.VerifyAllMocks(t, sink)
}

func TestRecordGameSinkFailureDoesNotFailWrite(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks")

	sink := new(testutil.MockEventSink)
	sink.On("PublishGameEvent", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	sink.On("PublishStandings", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc, st := newGameService(league, sink)
	err := svc.RecordGame(context.Background(), &store.Game{
		WinningTeam: "Hawks", LosingTeam: "Bears", GameDate: date(t, "2025-04-01"),
	})
	require.NoError(t, err)

	rows, err := st.GetStandings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hawks", rows[0].TeamName)
}

func TestRecordGameDuplicateIsConflict(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks")
	svc, _ := newGameService(league)

	for i, want := range []error{nil, store.ErrConflict} {
		err := svc.RecordGame(context.Background(), &store.Game{
			WinningTeam: "Bears", LosingTeam: "Hawks", GameDate: date(t, "2025-04-01"),
		})
		if want == nil {
			require.NoError(t, err, "attempt %d", i)
		} else {
			assert.ErrorIs(t, err, want, "attempt %d", i)
		}
	}
}

func TestUpdateAndDeleteGame(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks")
	g := league.MustAddGame("Bears", "Hawks", "2025-04-01")

	sink := new(testutil.MockEventSink)
	sink.On("PublishGameEvent", mock.Anything, mock.MatchedBy(func(e service.GameEvent) bool {
		return e.Type == service.EventGameUpdated
	})).Return(nil).Once()
	sink.On("PublishGameEvent", mock.Anything, mock.MatchedBy(func(e service.GameEvent) bool {
		return e.Type == service.EventGameDeleted && e.Game.GameID == g.GameID
	})).Return(nil).Once()
	sink.On("PublishStandings", mock.Anything, mock.Anything).Return(nil).Twice()

	svc, st := newGameService(league, sink)
	ctx := context.Background()

	flipped := &store.Game{WinningTeam: "Hawks", LosingTeam: "Bears", GameDate: date(t, "2025-04-01")}
	require.NoError(t, svc.UpdateGame(ctx, g.GameID, flipped))

	rows, err := st.GetStandings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hawks", rows[0].TeamName)

	err = svc.UpdateGame(ctx, g.GameID, &store.Game{GameID: g.GameID + 1, WinningTeam: "Hawks", LosingTeam: "Bears", GameDate: date(t, "2025-04-01")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	require.NoError(t, svc.DeleteGame(ctx, g.GameID))
	assert.ErrorIs(t, svc.DeleteGame(ctx, g.GameID), store.ErrNotFound)

	rows, err = st.GetStandings(ctx)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Zero(t, row.Wins+row.Losses)
	}

	testutil.VerifyAllMocks(t, sink)
}

func TestTeamServiceLifecycle(t *testing.T) {
	league := testutil.NewLeague()
	svc := service.NewTeamService(league.Teams(), league.Players(), league.Games())
	ctx := context.Background()

	assert.ErrorIs(t, svc.CreateTeam(ctx, &store.Team{TeamName: "  "}), service.ErrInvalidInput)

	require.NoError(t, svc.CreateTeam(ctx, &store.Team{TeamName: " Bears ", ChiefCoach: "Halas"}))
	assert.ErrorIs(t, svc.CreateTeam(ctx, &store.Team{TeamName: "Bears"}), store.ErrConflict)

	team, err := svc.GetTeam(ctx, "Bears")
	require.NoError(t, err)
	assert.Equal(t, "Halas", team.ChiefCoach)

	err = svc.UpdateTeam(ctx, "Bears", &store.Team{TeamName: "Cubs"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	require.NoError(t, svc.UpdateTeam(ctx, "Bears", &store.Team{ChiefCoach: "Ditka"}))
	team, err = svc.GetTeam(ctx, "Bears")
	require.NoError(t, err)
	assert.Equal(t, "Ditka", team.ChiefCoach)

	require.NoError(t, svc.DeleteTeam(ctx, "Bears"))
	_, err = svc.GetTeam(ctx, "Bears")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTeamRosterAndSchedule(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks")
	league.MustAddGame("Bears", "Hawks", "2025-04-01")
	league.MustAddGame("Hawks", "Bears", "2025-04-08")

	players := service.NewPlayerService(league.Players(), league.Teams())
	teams := service.NewTeamService(league.Teams(), league.Players(), league.Games())
	ctx := context.Background()

	require.NoError(t, players.CreatePlayer(ctx, &store.Player{TeamName: "Bears", PlayerNo: "34", Name: "Payton"}))

	roster, err := teams.GetRoster(ctx, "Hawks")
	require.NoError(t, err)
	assert.NotNil(t, roster.Players)
	assert.Empty(t, roster.Players)

	roster, err = teams.GetRoster(ctx, "Bears")
	require.NoError(t, err)
	require.Len(t, roster.Players, 1)
	assert.Equal(t, "Payton", roster.Players[0].Name)

	games, err := teams.GetSchedule(ctx, "Bears")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "2025-04-08", games[0].GameDate.String())

	_, err = teams.GetSchedule(ctx, "Wolves")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPlayerServiceTransfer(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears", "Hawks")
	svc := service.NewPlayerService(league.Players(), league.Teams())
	ctx := context.Background()

	err := svc.CreatePlayer(ctx, &store.Player{TeamName: "Wolves", PlayerNo: "9", Name: "Ghost"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	require.NoError(t, svc.CreatePlayer(ctx, &store.Player{TeamName: "Bears", PlayerNo: "9", Name: "Smith"}))
	require.NoError(t, svc.UpdatePlayer(ctx, "Bears", "9", &store.Player{TeamName: "Hawks", Name: "Smith"}))

	_, err = svc.GetPlayer(ctx, "Bears", "9")
	assert.ErrorIs(t, err, store.ErrNotFound)

	hawks, err := svc.ListPlayers(ctx, "Hawks")
	require.NoError(t, err)
	require.Len(t, hawks, 1)

	err = svc.UpdatePlayer(ctx, "Hawks", "9", &store.Player{PlayerNo: "10", Name: "Smith"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	require.NoError(t, svc.DeletePlayer(ctx, "Hawks", "9"))
	all, err := svc.ListPlayers(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCoachService(t *testing.T) {
	league := testutil.NewLeague()
	league.MustAddTeams("Bears")
	svc := service.NewCoachService(league.Coaches(), league.Teams())
	ctx := context.Background()

	assert.ErrorIs(t, svc.CreateCoach(ctx, &store.Coach{CoachNo: "C1"}), service.ErrInvalidInput)
	assert.ErrorIs(t, svc.CreateCoach(ctx, &store.Coach{CoachNo: "C1", Name: "Lovie", TeamName: "Wolves"}), service.ErrInvalidInput)

	require.NoError(t, svc.CreateCoach(ctx, &store.Coach{CoachNo: "C1", Name: "Lovie"}))
	require.NoError(t, svc.UpdateCoach(ctx, "C1", &store.Coach{Name: "Lovie Smith", TeamName: "Bears"}))

	coach, err := svc.GetCoach(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Bears", coach.TeamName)

	require.NoError(t, svc.DeleteCoach(ctx, "C1"))
	assert.ErrorIs(t, svc.DeleteCoach(ctx, "C1"), store.ErrNotFound)
}

func TestFieldService(t *testing.T) {
	league := testutil.NewLeague()
	svc := service.NewFieldService(league.Fields())
	ctx := context.Background()

	assert.ErrorIs(t, svc.CreateField(ctx, &store.Field{FieldName: ""}), service.ErrInvalidInput)
	assert.ErrorIs(t, svc.CreateField(ctx, &store.Field{FieldName: "Soldier", Capacity: -1}), service.ErrInvalidInput)
	require.NoError(t, svc.CreateField(ctx, &store.Field{FieldName: "Soldier", Capacity: 61500}))

	fields, err := svc.ListFields(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, 61500, fields[0].Capacity)
}
