package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

const playerColumns = `team_name, player_no, name, birthday, position, height, weight, education`

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// List returns every player grouped by team
func (r *PlayerRepository) List(ctx context.Context) ([]*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY team_name, player_no`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// ListByTeam returns a team's roster
func (r *PlayerRepository) ListByTeam(ctx context.Context, teamName string) ([]*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_name = $1 ORDER BY player_no`

	rows, err := r.db.DB().QueryContext(ctx, query, teamName)
	if err != nil {
		return nil, fmt.Errorf("querying roster: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// Get finds a player by team and number
func (r *PlayerRepository) Get(ctx context.Context, teamName, playerNo string) (*store.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE team_name = $1 AND player_no = $2`

	player, err := scanPlayer(r.db.DB().QueryRowContext(ctx, query, teamName, playerNo))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %s #%s: %w", teamName, playerNo, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// Create inserts a player
func (r *PlayerRepository) Create(ctx context.Context, p *store.Player) error {
	query := `
		INSERT INTO players (team_name, player_no, name, birthday, position, height, weight, education)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		p.TeamName, p.PlayerNo, p.Name, p.Birthday, store.NullString(p.Position),
		store.NullInt(p.Height), store.NullInt(p.Weight), store.NullString(p.Education),
	)
	if err != nil {
		return wrapWriteErr("inserting player", err)
	}
	return nil
}

// Update rewrites the player identified by (teamName, playerNo). The player
// may move to another team via p.TeamName.
func (r *PlayerRepository) Update(ctx context.Context, teamName, playerNo string, p *store.Player) error {
	query := `
		UPDATE players
		SET team_name = $3, name = $4, birthday = $5, position = $6,
			height = $7, weight = $8, education = $9
		WHERE team_name = $1 AND player_no = $2
	`

	result, err := r.db.DB().ExecContext(ctx, query,
		teamName, playerNo,
		p.TeamName, p.Name, p.Birthday, store.NullString(p.Position),
		store.NullInt(p.Height), store.NullInt(p.Weight), store.NullString(p.Education),
	)
	if err != nil {
		return wrapWriteErr("updating player", err)
	}
	return expectOneRow(result, fmt.Sprintf("player %s #%s", teamName, playerNo))
}

// Delete removes a player
func (r *PlayerRepository) Delete(ctx context.Context, teamName, playerNo string) error {
	result, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM players WHERE team_name = $1 AND player_no = $2`, teamName, playerNo)
	if err != nil {
		return wrapWriteErr("deleting player", err)
	}
	return expectOneRow(result, fmt.Sprintf("player %s #%s", teamName, playerNo))
}

func scanPlayers(rows *sql.Rows) ([]*store.Player, error) {
	var players []*store.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func scanPlayer(row rowScanner) (*store.Player, error) {
	p := &store.Player{}
	var position, education sql.NullString
	var height, weight sql.NullInt64
	err := row.Scan(
		&p.TeamName, &p.PlayerNo, &p.Name, &p.Birthday,
		&position, &height, &weight, &education,
	)
	if err != nil {
		return nil, err
	}
	p.Position = position.String
	p.Height = int(height.Int64)
	p.Weight = int(weight.Int64)
	p.Education = education.String
	return p, nil
}
