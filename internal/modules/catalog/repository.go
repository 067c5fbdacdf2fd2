package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for vendor category storage.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context, activeOnly bool) ([]*Category, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Category, error)
}
