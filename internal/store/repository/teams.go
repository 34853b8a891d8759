package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

const teamColumns = `
	team_id, team_name, chief_coach, company_name, company_phone,
	company_address, field_name, created_at, updated_at`

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// List returns all teams ordered by name
func (r *TeamRepository) List(ctx context.Context) ([]*store.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY team_name`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// ListNames returns the name of every registered team
func (r *TeamRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT team_name FROM teams ORDER BY team_name`)
	if err != nil {
		return nil, fmt.Errorf("querying team names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning team name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// GetByName finds a team by its unique name
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*store.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE team_name = $1`

	team, err := scanTeam(r.db.DB().QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team %q: %w", name, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// Create inserts a team and fills in its generated columns
func (r *TeamRepository) Create(ctx context.Context, team *store.Team) error {
	query := `
		INSERT INTO teams (team_name, chief_coach, company_name, company_phone, company_address, field_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING team_id, created_at, updated_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		team.TeamName, store.NullString(team.ChiefCoach), store.NullString(team.CompanyName),
		store.NullString(team.CompanyPhone), store.NullString(team.CompanyAddress), store.NullString(team.FieldName),
	).Scan(&team.TeamID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return wrapWriteErr("inserting team", err)
	}

	return nil
}

// Update rewrites the mutable columns of the team named team.TeamName
func (r *TeamRepository) Update(ctx context.Context, team *store.Team) error {
	query := `
		UPDATE teams
		SET chief_coach = $2, company_name = $3, company_phone = $4,
			company_address = $5, field_name = $6, updated_at = NOW()
		WHERE team_name = $1
		RETURNING team_id, created_at, updated_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		team.TeamName, store.NullString(team.ChiefCoach), store.NullString(team.CompanyName),
		store.NullString(team.CompanyPhone), store.NullString(team.CompanyAddress), store.NullString(team.FieldName),
	).Scan(&team.TeamID, &team.CreatedAt, &team.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("team %q: %w", team.TeamName, store.ErrNotFound)
	}
	if err != nil {
		return wrapWriteErr("updating team", err)
	}

	return nil
}

// Delete removes a team. Its players go with it; its games stay.
func (r *TeamRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM teams WHERE team_name = $1`, name)
	if err != nil {
		return wrapWriteErr("deleting team", err)
	}
	return expectOneRow(result, fmt.Sprintf("team %q", name))
}

func scanTeam(row rowScanner) (*store.Team, error) {
	team := &store.Team{}
	var coach, company, phone, address, field sql.NullString
	err := row.Scan(
		&team.TeamID, &team.TeamName, &coach, &company, &phone,
		&address, &field, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	team.ChiefCoach = coach.String
	team.CompanyName = company.String
	team.CompanyPhone = phone.String
	team.CompanyAddress = address.String
	team.FieldName = field.String
	return team, nil
}
