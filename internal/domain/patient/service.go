package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinrec/clinrec/internal/platform/apperror"
	"github.com/clinrec/clinrec/internal/platform/db"
	"github.com/clinrec/clinrec/internal/platform/ref"
)

type Service struct {
	patients    Repository
	doctors     *ref.Resolver
	departments *ref.Resolver
	tx          db.TxRunner

	// Cascade order matters: prescriptions and visits reference the patient,
	// medical records do too; the patient row goes last.
	prescriptions DependentDeleter
	visits        DependentDeleter
	records       DependentDeleter
}

func NewService(patients Repository, doctors, departments *ref.Resolver, tx db.TxRunner,
	prescriptions, visits, records DependentDeleter) *Service {
	return &Service{
		patients:      patients,
		doctors:       doctors,
		departments:   departments,
		tx:            tx,
		prescriptions: prescriptions,
		visits:        visits,
		records:       records,
	}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return apperror.InvalidArgument("first_name and last_name are required")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requireReferences(ctx, p); err != nil {
			return err
		}
		if p.NationalID != nil {
			taken, err := s.patients.ExistsByNationalID(ctx, *p.NationalID)
			if err != nil {
				return apperror.Unexpected(err)
			}
			if taken {
				return apperror.InvalidArgument("national id already registered")
			}
		}
		return s.patients.Create(ctx, p)
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return apperror.InvalidArgument("first_name and last_name are required")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.patients.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := s.requireReferences(ctx, p); err != nil {
			return err
		}
		if p.NationalID != nil && (existing.NationalID == nil || *existing.NationalID != *p.NationalID) {
			taken, err := s.patients.ExistsByNationalID(ctx, *p.NationalID)
			if err != nil {
				return apperror.Unexpected(err)
			}
			if taken {
				return apperror.InvalidArgument("national id already registered")
			}
		}
		return s.patients.Update(ctx, p)
	})
}

// Delete removes the patient aggregate in one transaction: prescriptions,
// then visits, then medical records, then the patient row. Appointments are
// deliberately not cascaded; a remaining appointment aborts the transaction
// with a conflict from the storage FK constraint, leaving everything intact.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		ok, err := s.patients.ExistsByID(ctx, id)
		if err != nil {
			return apperror.Unexpected(err)
		}
		if !ok {
			return apperror.NotFound("patient", id)
		}
		if _, err := s.prescriptions.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		if _, err := s.visits.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		if _, err := s.records.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		return s.patients.Delete(ctx, id)
	})
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) requireReferences(ctx context.Context, p *Patient) error {
	if err := s.doctors.RequireOptional(ctx, p.PrimaryDoctorID); err != nil {
		return err
	}
	return s.departments.RequireOptional(ctx, p.DepartmentID)
}
