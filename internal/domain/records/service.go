package records

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinrec/clinrec/internal/platform/apperror"
	"github.com/clinrec/clinrec/internal/platform/db"
	"github.com/clinrec/clinrec/internal/platform/ref"
)

type Service struct {
	records       MedicalRecordRepository
	visits        PatientVisitRepository
	prescriptions PrescriptionRepository
	patients      *ref.Resolver
	doctors       *ref.Resolver
	tx            db.TxRunner
	now           func() time.Time
}

func NewService(records MedicalRecordRepository, visits PatientVisitRepository,
	prescriptions PrescriptionRepository, patients, doctors *ref.Resolver, tx db.TxRunner) *Service {
	return &Service{
		records:       records,
		visits:        visits,
		prescriptions: prescriptions,
		patients:      patients,
		doctors:       doctors,
		tx:            tx,
		now:           time.Now,
	}
}

func (s *Service) requireRefs(ctx context.Context, patientID, doctorID uuid.UUID) error {
	if patientID == uuid.Nil {
		return apperror.InvalidArgument("patient_id is required")
	}
	if doctorID == uuid.Nil {
		return apperror.InvalidArgument("doctor_id is required")
	}
	if err := s.patients.Require(ctx, patientID); err != nil {
		return err
	}
	return s.doctors.Require(ctx, doctorID)
}

// -- MedicalRecord --

func (s *Service) CreateRecord(ctx context.Context, m *MedicalRecord) error {
	if m.RecordType == "" {
		return apperror.InvalidArgument("record_type is required")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requireRefs(ctx, m.PatientID, m.DoctorID); err != nil {
			return err
		}
		return s.records.Create(ctx, m)
	})
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}

// UpdateRecord persists the mutable fields and returns the stored row.
// Immutable columns such as patient_id and doctor_id are never rewritten,
// so callers must not trust the input struct for the response.
func (s *Service) UpdateRecord(ctx context.Context, m *MedicalRecord) (*MedicalRecord, error) {
	if m.RecordType == "" {
		return nil, apperror.InvalidArgument("record_type is required")
	}
	var stored *MedicalRecord
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.records.Update(ctx, m); err != nil {
			return err
		}
		var err error
		stored, err = s.records.GetByID(ctx, m.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.records.Delete(ctx, id)
	})
}

func (s *Service) ListRecords(ctx context.Context, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.List(ctx, limit, offset)
}

func (s *Service) ListRecordsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.ListByPatient(ctx, patientID, limit, offset)
}

// -- PatientVisit --

func (s *Service) CreateVisit(ctx context.Context, v *PatientVisit) error {
	if v.VisitDate.IsZero() {
		return apperror.InvalidArgument("visit_date is required")
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requireRefs(ctx, v.PatientID, v.DoctorID); err != nil {
			return err
		}
		return s.visits.Create(ctx, v)
	})
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*PatientVisit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) UpdateVisit(ctx context.Context, v *PatientVisit) (*PatientVisit, error) {
	if v.VisitDate.IsZero() {
		return nil, apperror.InvalidArgument("visit_date is required")
	}
	var stored *PatientVisit
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.visits.Update(ctx, v); err != nil {
			return err
		}
		var err error
		stored, err = s.visits.GetByID(ctx, v.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Service) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.visits.Delete(ctx, id)
	})
}

func (s *Service) ListVisits(ctx context.Context, limit, offset int) ([]*PatientVisit, int, error) {
	return s.visits.List(ctx, limit, offset)
}

func (s *Service) ListVisitsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PatientVisit, int, error) {
	return s.visits.ListByPatient(ctx, patientID, limit, offset)
}

// -- Prescription --

func (s *Service) CreatePrescription(ctx context.Context, p *Prescription) error {
	if p.MedicationName == "" {
		return apperror.InvalidArgument("medication_name is required")
	}
	if p.IssuedAt.IsZero() {
		p.IssuedAt = s.now()
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requireRefs(ctx, p.PatientID, p.DoctorID); err != nil {
			return err
		}
		return s.prescriptions.Create(ctx, p)
	})
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

func (s *Service) UpdatePrescription(ctx context.Context, p *Prescription) (*Prescription, error) {
	if p.MedicationName == "" {
		return nil, apperror.InvalidArgument("medication_name is required")
	}
	var stored *Prescription
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.prescriptions.Update(ctx, p); err != nil {
			return err
		}
		var err error
		stored, err = s.prescriptions.GetByID(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Service) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.prescriptions.Delete(ctx, id)
	})
}

func (s *Service) ListPrescriptions(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.List(ctx, limit, offset)
}

func (s *Service) ListPrescriptionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.ListByPatient(ctx, patientID, limit, offset)
}
