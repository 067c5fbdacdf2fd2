package profile

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for profile data storage.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// List returns every profile, most recently updated first.
	List(ctx context.Context) ([]*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
