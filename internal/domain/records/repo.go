package records

import (
	"context"

	"github.com/google/uuid"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, r *MedicalRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error)
	Update(ctx context.Context, r *MedicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*MedicalRecord, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error)
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}

type PatientVisitRepository interface {
	Create(ctx context.Context, v *PatientVisit) error
	GetByID(ctx context.Context, id uuid.UUID) (*PatientVisit, error)
	Update(ctx context.Context, v *PatientVisit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*PatientVisit, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PatientVisit, int, error)
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Prescription, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}
