package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/backstage/internal/service"
	"github.com/fortuna/backstage/internal/testutil"
)

func newServices(league *testutil.League) (Services, *service.StandingsService) {
	st := service.NewStandingsService(league.Teams(), league.Games(), nil)
	return Services{
		Fields:  service.NewFieldService(league.Fields()),
		Teams:   service.NewTeamService(league.Teams(), league.Players(), league.Games()),
		Players: service.NewPlayerService(league.Players(), league.Teams()),
		Coaches: service.NewCoachService(league.Coaches(), league.Teams()),
		Games:   service.NewGameService(league.Games(), league.Teams(), st, nil),
	}, st
}

func TestLoadFixture(t *testing.T) {
	f, err := Load("testdata/league.yaml")
	require.NoError(t, err)

	assert.Len(t, f.Fields, 2)
	assert.Len(t, f.Teams, 3)
	assert.Len(t, f.Players, 2)
	assert.Len(t, f.Coaches, 1)
	require.Len(t, f.Games, 3)
	assert.Equal(t, "2025-04-01", f.Games[0].Date)
}

func TestApplyIsIdempotent(t *testing.T) {
	f, err := Load("testdata/league.yaml")
	require.NoError(t, err)

	league := testutil.NewLeague()
	svc, st := newServices(league)
	ctx := context.Background()

	sum, err := Apply(ctx, svc, f, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{Created: 11}, sum)

	rows, err := st.GetStandings(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Bears", rows[0].TeamName)
	assert.Equal(t, 2, rows[0].Wins)
	assert.Equal(t, "Owls", rows[2].TeamName)
	assert.Equal(t, 2.0, rows[2].GamesBehind)

	// fields use ON CONFLICT DO NOTHING, so they count as created again
	sum, err = Apply(ctx, svc, f, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{Created: 2, Skipped: 9}, sum)
}

func TestApplyRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown team", "teams: [{name: Bears}]\ngames: [{winner: Bears, loser: Wolves, date: \"2025-04-01\"}]"},
		{"bad date", "teams: [{name: Bears}, {name: Hawks}]\ngames: [{winner: Bears, loser: Hawks, date: April}]"},
		{"player without team", "players: [{team: Bears, number: \"1\", name: X}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			svc, _ := newServices(testutil.NewLeague())
			_, err = Apply(context.Background(), svc, f, nil)
			assert.Error(t, err)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("teams: {name: [}"))
	assert.Error(t, err)
}
