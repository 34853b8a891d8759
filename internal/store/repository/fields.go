package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

// FieldRepository handles venue data access
type FieldRepository struct {
	db *store.Database
}

// NewFieldRepository creates a new field repository
func NewFieldRepository(db *store.Database) *FieldRepository {
	return &FieldRepository{db: db}
}

// List returns all venues
func (r *FieldRepository) List(ctx context.Context) ([]*store.Field, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT field_name, address, capacity FROM fields ORDER BY field_name`)
	if err != nil {
		return nil, fmt.Errorf("querying fields: %w", err)
	}
	defer rows.Close()

	var fields []*store.Field
	for rows.Next() {
		f := &store.Field{}
		var address sql.NullString
		var capacity sql.NullInt64
		if err := rows.Scan(&f.FieldName, &address, &capacity); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		f.Address = address.String
		f.Capacity = int(capacity.Int64)
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// Create inserts a venue, leaving an existing one with the same name untouched
func (r *FieldRepository) Create(ctx context.Context, f *store.Field) error {
	_, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO fields (field_name, address, capacity) VALUES ($1, $2, $3)
		 ON CONFLICT (field_name) DO NOTHING`,
		f.FieldName, store.NullString(f.Address), store.NullInt(f.Capacity),
	)
	if err != nil {
		return wrapWriteErr("inserting field", err)
	}
	return nil
}
