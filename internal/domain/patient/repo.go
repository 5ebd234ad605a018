package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
}

// DependentDeleter removes all rows of one dependent record type belonging
// to a patient. The records repos implement it for prescriptions, visits and
// medical records.
type DependentDeleter interface {
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}
