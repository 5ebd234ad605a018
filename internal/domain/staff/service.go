package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinrec/clinrec/internal/platform/apperror"
	"github.com/clinrec/clinrec/internal/platform/db"
	"github.com/clinrec/clinrec/internal/platform/ref"
)

type Service struct {
	doctors     Repository
	users       *ref.Resolver
	departments *ref.Resolver
	tx          db.TxRunner
}

func NewService(doctors Repository, users, departments *ref.Resolver, tx db.TxRunner) *Service {
	return &Service{doctors: doctors, users: users, departments: departments, tx: tx}
}

// Create resolves the user and department references before the insert; a
// dangling reference aborts the whole operation.
func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if d.LicenseNumber == "" {
		return apperror.InvalidArgument("license_number is required")
	}
	if d.UserID == uuid.Nil {
		return apperror.InvalidArgument("user_id is required")
	}
	if d.DepartmentID == uuid.Nil {
		return apperror.InvalidArgument("department_id is required")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.users.Require(ctx, d.UserID); err != nil {
			return err
		}
		if err := s.departments.Require(ctx, d.DepartmentID); err != nil {
			return err
		}
		taken, err := s.doctors.ExistsByLicense(ctx, d.LicenseNumber)
		if err != nil {
			return apperror.Unexpected(err)
		}
		if taken {
			return apperror.InvalidArgument("license number already registered")
		}
		return s.doctors.Create(ctx, d)
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	if d.DepartmentID == uuid.Nil {
		return apperror.InvalidArgument("department_id is required")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.departments.Require(ctx, d.DepartmentID); err != nil {
			return err
		}
		return s.doctors.Update(ctx, d)
	})
}

// Delete removes a doctor. Appointments, visits or records still referencing
// the doctor surface as a conflict from the storage FK constraint.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.doctors.Delete(ctx, id)
	})
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}
