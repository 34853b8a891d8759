package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fortuna/backstage/internal/store"
)

// ============================================================================
// In-memory repositories. They mirror the constraints of the SQL schema
// closely enough for service and handler tests.
// ============================================================================

// League holds every table in memory. The zero value is not usable; call NewLeague.
type League struct {
	mu      sync.Mutex
	fields  map[string]store.Field
	teams   map[string]store.Team
	players map[string]store.Player
	coaches map[string]store.Coach
	games   map[int]store.Game
	nextID  int

	// Err, when set, is returned by every operation.
	Err error
}

// NewLeague creates an empty in-memory league
func NewLeague() *League {
	return &League{
		fields:  map[string]store.Field{},
		teams:   map[string]store.Team{},
		players: map[string]store.Player{},
		coaches: map[string]store.Coach{},
		games:   map[int]store.Game{},
	}
}

// Teams returns the team repository view
func (l *League) Teams() *TeamRepo { return &TeamRepo{l} }

// Players returns the player repository view
func (l *League) Players() *PlayerRepo { return &PlayerRepo{l} }

// Coaches returns the coach repository view
func (l *League) Coaches() *CoachRepo { return &CoachRepo{l} }

// Fields returns the field repository view
func (l *League) Fields() *FieldRepo { return &FieldRepo{l} }

// Games returns the game repository view
func (l *League) Games() *GameRepo { return &GameRepo{l} }

// MustAddTeams registers bare teams by name
func (l *League) MustAddTeams(names ...string) {
	for _, name := range names {
		if err := l.Teams().Create(context.Background(), &store.Team{TeamName: name}); err != nil {
			panic(err)
		}
	}
}

// MustAddGame records a result without going through validation
func (l *League) MustAddGame(winner, loser, date string) *store.Game {
	d, err := store.ParseDate(date)
	if err != nil {
		panic(err)
	}
	g := &store.Game{WinningTeam: winner, LosingTeam: loser, GameDate: d}
	if err := l.Games().Create(context.Background(), g); err != nil {
		panic(err)
	}
	return g
}

func playerKey(team, no string) string { return team + "\x00" + no }

// TeamRepo is the in-memory team table
type TeamRepo struct{ l *League }

func (r *TeamRepo) List(ctx context.Context) ([]*store.Team, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	out := make([]*store.Team, 0, len(r.l.teams))
	for _, t := range r.l.teams {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamName < out[j].TeamName })
	return out, nil
}

func (r *TeamRepo) ListNames(ctx context.Context) ([]string, error) {
	teams, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.TeamName
	}
	return names, nil
}

func (r *TeamRepo) GetByName(ctx context.Context, name string) (*store.Team, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	t, ok := r.l.teams[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (r *TeamRepo) Create(ctx context.Context, team *store.Team) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if _, ok := r.l.teams[team.TeamName]; ok {
		return store.ErrConflict
	}
	if team.FieldName != "" {
		if _, ok := r.l.fields[team.FieldName]; !ok {
			return store.ErrConflict
		}
	}
	r.l.nextID++
	now := time.Now().UTC()
	team.TeamID, team.CreatedAt, team.UpdatedAt = r.l.nextID, now, now
	r.l.teams[team.TeamName] = *team
	return nil
}

func (r *TeamRepo) Update(ctx context.Context, team *store.Team) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	cur, ok := r.l.teams[team.TeamName]
	if !ok {
		return store.ErrNotFound
	}
	if team.FieldName != "" {
		if _, ok := r.l.fields[team.FieldName]; !ok {
			return store.ErrConflict
		}
	}
	team.TeamID, team.CreatedAt, team.UpdatedAt = cur.TeamID, cur.CreatedAt, time.Now().UTC()
	r.l.teams[team.TeamName] = *team
	return nil
}

// Delete cascades to the team's players and detaches its coaches, as the schema does.
func (r *TeamRepo) Delete(ctx context.Context, name string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if _, ok := r.l.teams[name]; !ok {
		return store.ErrNotFound
	}
	delete(r.l.teams, name)
	for k, p := range r.l.players {
		if p.TeamName == name {
			delete(r.l.players, k)
		}
	}
	for k, c := range r.l.coaches {
		if c.TeamName == name {
			c.TeamName = ""
			r.l.coaches[k] = c
		}
	}
	return nil
}

// PlayerRepo is the in-memory player table
type PlayerRepo struct{ l *League }

func (r *PlayerRepo) list(match func(store.Player) bool) ([]*store.Player, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	var out []*store.Player
	for _, p := range r.l.players {
		if match(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].PlayerNo < out[j].PlayerNo
	})
	return out, nil
}

func (r *PlayerRepo) List(ctx context.Context) ([]*store.Player, error) {
	return r.list(func(store.Player) bool { return true })
}

func (r *PlayerRepo) ListByTeam(ctx context.Context, teamName string) ([]*store.Player, error) {
	return r.list(func(p store.Player) bool { return p.TeamName == teamName })
}

func (r *PlayerRepo) Get(ctx context.Context, teamName, playerNo string) (*store.Player, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	p, ok := r.l.players[playerKey(teamName, playerNo)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (r *PlayerRepo) Create(ctx context.Context, p *store.Player) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if _, ok := r.l.teams[p.TeamName]; !ok {
		return store.ErrConflict
	}
	key := playerKey(p.TeamName, p.PlayerNo)
	if _, ok := r.l.players[key]; ok {
		return store.ErrConflict
	}
	r.l.players[key] = *p
	return nil
}

func (r *PlayerRepo) Update(ctx context.Context, teamName, playerNo string, p *store.Player) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	oldKey := playerKey(teamName, playerNo)
	if _, ok := r.l.players[oldKey]; !ok {
		return store.ErrNotFound
	}
	newKey := playerKey(p.TeamName, p.PlayerNo)
	if newKey != oldKey {
		if _, ok := r.l.players[newKey]; ok {
			return store.ErrConflict
		}
	}
	delete(r.l.players, oldKey)
	r.l.players[newKey] = *p
	return nil
}

func (r *PlayerRepo) Delete(ctx context.Context, teamName, playerNo string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	key := playerKey(teamName, playerNo)
	if _, ok := r.l.players[key]; !ok {
		return store.ErrNotFound
	}
	delete(r.l.players, key)
	return nil
}

// CoachRepo is the in-memory coach table
type CoachRepo struct{ l *League }

func (r *CoachRepo) List(ctx context.Context) ([]*store.Coach, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	out := make([]*store.Coach, 0, len(r.l.coaches))
	for _, c := range r.l.coaches {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CoachNo < out[j].CoachNo })
	return out, nil
}

func (r *CoachRepo) Get(ctx context.Context, coachNo string) (*store.Coach, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	c, ok := r.l.coaches[coachNo]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (r *CoachRepo) Create(ctx context.Context, c *store.Coach) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if _, ok := r.l.coaches[c.CoachNo]; ok {
		return store.ErrConflict
	}
	r.l.coaches[c.CoachNo] = *c
	return nil
}

func (r *CoachRepo) Update(ctx context.Context, c *store.Coach) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if _, ok := r.l.coaches[c.CoachNo]; !ok {
		return store.ErrNotFound
	}
	r.l.coaches[c.CoachNo] = *c
	return nil
}

func (r *CoachRepo) Delete(ctx context.Context, coachNo string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if _, ok := r.l.coaches[coachNo]; !ok {
		return store.ErrNotFound
	}
	delete(r.l.coaches, coachNo)
	return nil
}

// FieldRepo is the in-memory field table
type FieldRepo struct{ l *League }

func (r *FieldRepo) List(ctx context.Context) ([]*store.Field, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	out := make([]*store.Field, 0, len(r.l.fields))
	for _, f := range r.l.fields {
		f := f
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldName < out[j].FieldName })
	return out, nil
}

// Create ignores a field that already exists, like the ON CONFLICT DO NOTHING insert.
func (r *FieldRepo) Create(ctx context.Context, f *store.Field) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if _, ok := r.l.fields[f.FieldName]; !ok {
		r.l.fields[f.FieldName] = *f
	}
	return nil
}

// GameRepo is the in-memory game table
type GameRepo struct{ l *League }

func (r *GameRepo) list(match func(store.Game) bool) ([]*store.Game, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	var out []*store.Game
	for _, g := range r.l.games {
		if match(g) {
			g := g
			out = append(out, &g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GameDate.Equal(out[j].GameDate.Time) {
			return out[i].GameDate.After(out[j].GameDate.Time)
		}
		return out[i].GameID > out[j].GameID
	})
	return out, nil
}

func (r *GameRepo) List(ctx context.Context) ([]*store.Game, error) {
	return r.list(func(store.Game) bool { return true })
}

func (r *GameRepo) ListByTeam(ctx context.Context, teamName string) ([]*store.Game, error) {
	return r.list(func(g store.Game) bool {
		return g.WinningTeam == teamName || g.LosingTeam == teamName
	})
}

func (r *GameRepo) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	g, ok := r.l.games[gameID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &g, nil
}

func (r *GameRepo) Create(ctx context.Context, game *store.Game) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if r.duplicate(game) {
		return store.ErrConflict
	}
	r.l.nextID++
	game.GameID = r.l.nextID
	game.CreatedAt = time.Now().UTC()
	r.l.games[game.GameID] = *game
	return nil
}

func (r *GameRepo) Update(ctx context.Context, game *store.Game) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	cur, ok := r.l.games[game.GameID]
	if !ok {
		return store.ErrNotFound
	}
	if r.duplicate(game) {
		return store.ErrConflict
	}
	game.CreatedAt = cur.CreatedAt
	r.l.games[game.GameID] = *game
	return nil
}

func (r *GameRepo) Delete(ctx context.Context, gameID int) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	if _, ok := r.l.games[gameID]; !ok {
		return store.ErrNotFound
	}
	delete(r.l.games, gameID)
	return nil
}

// duplicate mirrors UNIQUE(winning_team, losing_team, game_date). Caller holds mu.
func (r *GameRepo) duplicate(game *store.Game) bool {
	for id, g := range r.l.games {
		if id != game.GameID && g.WinningTeam == game.WinningTeam &&
			g.LosingTeam == game.LosingTeam && g.GameDate.Equal(game.GameDate.Time) {
			return true
		}
	}
	return false
}
