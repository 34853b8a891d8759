package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

const gameColumns = `game_id, winning_team, losing_team, game_date, field_name, result, created_at`

// GameRepository handles game result data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// List returns every recorded game, most recent first
func (r *GameRepository) List(ctx context.Context) ([]*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY game_date DESC, game_id DESC`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// ListByTeam returns the games a team won or lost
func (r *GameRepository) ListByTeam(ctx context.Context, teamName string) ([]*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games
		WHERE winning_team = $1 OR losing_team = $1
		ORDER BY game_date DESC, game_id DESC`

	rows, err := r.db.DB().QueryContext(ctx, query, teamName)
	if err != nil {
		return nil, fmt.Errorf("querying team games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// GetByID finds a game by its database ID
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE game_id = $1`

	game, err := scanGame(r.db.DB().QueryRowContext(ctx, query, gameID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game %d: %w", gameID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// Create records a game result
func (r *GameRepository) Create(ctx context.Context, game *store.Game) error {
	query := `
		INSERT INTO games (winning_team, losing_team, game_date, field_name, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING game_id, created_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		game.WinningTeam, game.LosingTeam, game.GameDate,
		store.NullString(game.FieldName), store.NullString(game.Result),
	).Scan(&game.GameID, &game.CreatedAt)
	if err != nil {
		return wrapWriteErr("inserting game", err)
	}

	return nil
}

// Update rewrites the game with game.GameID
func (r *GameRepository) Update(ctx context.Context, game *store.Game) error {
	query := `
		UPDATE games
		SET winning_team = $2, losing_team = $3, game_date = $4, field_name = $5, result = $6
		WHERE game_id = $1
		RETURNING created_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		game.GameID, game.WinningTeam, game.LosingTeam, game.GameDate,
		store.NullString(game.FieldName), store.NullString(game.Result),
	).Scan(&game.CreatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("game %d: %w", game.GameID, store.ErrNotFound)
	}
	if err != nil {
		return wrapWriteErr("updating game", err)
	}

	return nil
}

// Delete removes a game result
func (r *GameRepository) Delete(ctx context.Context, gameID int) error {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
	if err != nil {
		return wrapWriteErr("deleting game", err)
	}
	return expectOneRow(result, fmt.Sprintf("game %d", gameID))
}

// scanGames scans multiple game rows
func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var games []*store.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

func scanGame(row rowScanner) (*store.Game, error) {
	g := &store.Game{}
	var field, result sql.NullString
	err := row.Scan(
		&g.GameID, &g.WinningTeam, &g.LosingTeam, &g.GameDate,
		&field, &result, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.FieldName = field.String
	g.Result = result.String
	return g, nil
}
