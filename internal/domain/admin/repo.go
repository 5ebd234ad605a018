package admin

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*Department, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Department, int, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// ExistsByName matches names case-insensitively.
	ExistsByName(ctx context.Context, name string) (bool, error)
}
