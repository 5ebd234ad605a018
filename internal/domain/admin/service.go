package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinrec/clinrec/internal/platform/apperror"
	"github.com/clinrec/clinrec/internal/platform/db"
)

type Service struct {
	departments Repository
	tx          db.TxRunner
}

func NewService(departments Repository, tx db.TxRunner) *Service {
	return &Service{departments: departments, tx: tx}
}

// Create rejects a name already used by another department, compared
// case-insensitively.
func (s *Service) Create(ctx context.Context, d *Department) error {
	if d.Name == "" {
		return apperror.InvalidArgument("name is required")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		taken, err := s.departments.ExistsByName(ctx, d.Name)
		if err != nil {
			return apperror.Unexpected(err)
		}
		if taken {
			return apperror.InvalidArgument("department name already exists")
		}
		return s.departments.Create(ctx, d)
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Department, error) {
	return s.departments.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Department) error {
	if d.Name == "" {
		return apperror.InvalidArgument("name is required")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.departments.GetByID(ctx, d.ID)
		if err != nil {
			return err
		}
		if existing.Name != d.Name {
			taken, err := s.departments.ExistsByName(ctx, d.Name)
			if err != nil {
				return apperror.Unexpected(err)
			}
			if taken {
				return apperror.InvalidArgument("department name already exists")
			}
		}
		return s.departments.Update(ctx, d)
	})
}

// Delete removes a department. Doctors, patients or appointments still
// referencing it surface as a conflict from the storage FK constraint.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.departments.Delete(ctx, id)
	})
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return s.departments.List(ctx, limit, offset)
}
