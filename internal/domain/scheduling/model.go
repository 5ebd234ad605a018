package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointment table. It references patient, doctor
// and department; none of the references cascade on delete, so a patient
// with appointments cannot be removed.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID `db:"doctor_id" json:"doctor_id"`
	DepartmentID    uuid.UUID `db:"department_id" json:"department_id"`
	AppointmentDate time.Time `db:"appointment_date" json:"appointment_date"`
	Status          string    `db:"status" json:"status"`
	Reason          *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
