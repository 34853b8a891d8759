package service

import (
	"context"
	"fmt"

	"github.com/fortuna/backstage/internal/store"
)

// FieldService manages venues
type FieldService struct {
	fields FieldRepository
}

// NewFieldService creates a new field service
func NewFieldService(fields FieldRepository) *FieldService {
	return &FieldService{fields: fields}
}

// ListFields returns all venues
func (s *FieldService) ListFields(ctx context.Context) ([]*store.Field, error) {
	fields, err := s.fields.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching fields: %w", err)
	}
	return nonNil(fields), nil
}

// CreateField registers a venue
func (s *FieldService) CreateField(ctx context.Context, f *store.Field) error {
	trim(&f.FieldName)
	trim(&f.Address)
	if f.FieldName == "" {
		return invalidf("field name is required")
	}
	if f.Capacity < 0 {
		return invalidf("capacity must not be negative")
	}
	if err := s.fields.Create(ctx, f); err != nil {
		return fmt.Errorf("creating field: %w", err)
	}
	return nil
}
