package scheduling

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinrec/clinrec/internal/platform/apperror"
	"github.com/clinrec/clinrec/internal/platform/db"
	"github.com/clinrec/clinrec/internal/platform/ref"
)

const StatusScheduled = "scheduled"

var validStatuses = map[string]bool{
	StatusScheduled: true, "completed": true, "cancelled": true, "no_show": true,
}

type Service struct {
	appointments Repository
	patients     *ref.Resolver
	doctors      *ref.Resolver
	departments  *ref.Resolver
	tx           db.TxRunner
}

func NewService(appointments Repository, patients, doctors, departments *ref.Resolver, tx db.TxRunner) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		departments:  departments,
		tx:           tx,
	}
}

// Create resolves patient, doctor and department before the insert; the
// first dangling reference aborts the operation.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return apperror.InvalidArgument("invalid status: " + a.Status)
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requireReferences(ctx, a); err != nil {
			return err
		}
		return s.appointments.Create(ctx, a)
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	if !validStatuses[a.Status] {
		return apperror.InvalidArgument("invalid status: " + a.Status)
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requireReferences(ctx, a); err != nil {
			return err
		}
		return s.appointments.Update(ctx, a)
	})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		return s.appointments.Delete(ctx, id)
	})
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) validate(a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return apperror.InvalidArgument("patient_id is required")
	}
	if a.DoctorID == uuid.Nil {
		return apperror.InvalidArgument("doctor_id is required")
	}
	if a.DepartmentID == uuid.Nil {
		return apperror.InvalidArgument("department_id is required")
	}
	if a.AppointmentDate.IsZero() {
		return apperror.InvalidArgument("appointment_date is required")
	}
	return nil
}

func (s *Service) requireReferences(ctx context.Context, a *Appointment) error {
	if err := s.patients.Require(ctx, a.PatientID); err != nil {
		return err
	}
	if err := s.doctors.Require(ctx, a.DoctorID); err != nil {
		return err
	}
	return s.departments.Require(ctx, a.DepartmentID)
}
