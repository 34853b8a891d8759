package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

// CoachRepository handles coach data access
type CoachRepository struct {
	db *store.Database
}

// NewCoachRepository creates a new coach repository
func NewCoachRepository(db *store.Database) *CoachRepository {
	return &CoachRepository{db: db}
}

// List returns all coaches
func (r *CoachRepository) List(ctx context.Context) ([]*store.Coach, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT coach_no, name, birthday, team_name FROM coaches ORDER BY coach_no`)
	if err != nil {
		return nil, fmt.Errorf("querying coaches: %w", err)
	}
	defer rows.Close()

	var coaches []*store.Coach
	for rows.Next() {
		coach, err := scanCoach(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning coach: %w", err)
		}
		coaches = append(coaches, coach)
	}
	return coaches, rows.Err()
}

// Get finds a coach by number
func (r *CoachRepository) Get(ctx context.Context, coachNo string) (*store.Coach, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT coach_no, name, birthday, team_name FROM coaches WHERE coach_no = $1`, coachNo)

	coach, err := scanCoach(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("coach %q: %w", coachNo, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying coach: %w", err)
	}
	return coach, nil
}

// Create inserts a coach
func (r *CoachRepository) Create(ctx context.Context, c *store.Coach) error {
	_, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO coaches (coach_no, name, birthday, team_name) VALUES ($1, $2, $3, $4)`,
		c.CoachNo, c.Name, c.Birthday, store.NullString(c.TeamName),
	)
	if err != nil {
		return wrapWriteErr("inserting coach", err)
	}
	return nil
}

// Update rewrites a coach's details
func (r *CoachRepository) Update(ctx context.Context, c *store.Coach) error {
	result, err := r.db.DB().ExecContext(ctx,
		`UPDATE coaches SET name = $2, birthday = $3, team_name = $4 WHERE coach_no = $1`,
		c.CoachNo, c.Name, c.Birthday, store.NullString(c.TeamName),
	)
	if err != nil {
		return wrapWriteErr("updating coach", err)
	}
	return expectOneRow(result, fmt.Sprintf("coach %q", c.CoachNo))
}

// Delete removes a coach
func (r *CoachRepository) Delete(ctx context.Context, coachNo string) error {
	result, err := r.db.DB().ExecContext(ctx, `DELETE FROM coaches WHERE coach_no = $1`, coachNo)
	if err != nil {
		return wrapWriteErr("deleting coach", err)
	}
	return expectOneRow(result, fmt.Sprintf("coach %q", coachNo))
}

func scanCoach(row rowScanner) (*store.Coach, error) {
	c := &store.Coach{}
	var team sql.NullString
	if err := row.Scan(&c.CoachNo, &c.Name, &c.Birthday, &team); err != nil {
		return nil, err
	}
	c.TeamName = team.String
	return c, nil
}
