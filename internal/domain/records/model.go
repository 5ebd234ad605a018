package records

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord maps to the medical_record table.
type MedicalRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	RecordType  string    `db:"record_type" json:"record_type"`
	Description *string   `db:"description" json:"description,omitempty"`
	Attachments *string   `db:"attachments" json:"attachments,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PatientVisit maps to the patient_visit table.
type PatientVisit struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	VisitDate     time.Time `db:"visit_date" json:"visit_date"`
	Symptoms      *string   `db:"symptoms" json:"symptoms,omitempty"`
	Diagnosis     *string   `db:"diagnosis" json:"diagnosis,omitempty"`
	TreatmentPlan *string   `db:"treatment_plan" json:"treatment_plan,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Prescription maps to the prescription table.
type Prescription struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID `db:"doctor_id" json:"doctor_id"`
	MedicationName string    `db:"medication_name" json:"medication_name"`
	Dosage         *string   `db:"dosage" json:"dosage,omitempty"`
	Frequency      *string   `db:"frequency" json:"frequency,omitempty"`
	Duration       *string   `db:"duration" json:"duration,omitempty"`
	Instructions   *string   `db:"instructions" json:"instructions,omitempty"`
	IssuedAt       time.Time `db:"issued_at" json:"issued_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
