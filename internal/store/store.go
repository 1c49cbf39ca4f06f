// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/nayeemhs/uniassist/internal/domain"
)

// Repository defines the interface for persisting student profiles.
type Repository interface {
	// CreateStudent inserts a new profile row and returns its assigned id.
	CreateStudent(ctx context.Context, profile *domain.StudentProfile) (int64, error)

	// GetStudent retrieves a profile by id. Returns nil, nil when no row exists.
	GetStudent(ctx context.Context, id int64) (*domain.StudentProfile, error)

	// ListStudents retrieves all stored profiles.
	ListStudents(ctx context.Context) ([]*domain.StudentProfile, error)

	// UpdateStudent merges the non-nil fields of partial into the row with the
	// given id. Only used when upsert mode is enabled; returns an error when
	// the row does not exist.
	UpdateStudent(ctx context.Context, id int64, partial *domain.StudentProfile) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
