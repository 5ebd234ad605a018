package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. PrimaryDoctorID and DepartmentID are
// optional references; a nil value stays null in storage.
type Patient struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	FirstName             string     `db:"first_name" json:"first_name"`
	LastName              string     `db:"last_name" json:"last_name"`
	NationalID            *string    `db:"national_id" json:"national_id,omitempty"`
	BirthDate             *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender                *string    `db:"gender" json:"gender,omitempty"`
	Phone                 *string    `db:"phone" json:"phone,omitempty"`
	Email                 *string    `db:"email" json:"email,omitempty"`
	Address               *string    `db:"address" json:"address,omitempty"`
	BloodType             *string    `db:"blood_type" json:"blood_type,omitempty"`
	Allergies             *string    `db:"allergies" json:"allergies,omitempty"`
	ChronicConditions     *string    `db:"chronic_conditions" json:"chronic_conditions,omitempty"`
	InsuranceProvider     *string    `db:"insurance_provider" json:"insurance_provider,omitempty"`
	InsuranceNumber       *string    `db:"insurance_number" json:"insurance_number,omitempty"`
	EmergencyContactName  *string    `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	PrimaryDoctorID       *uuid.UUID `db:"primary_doctor_id" json:"primary_doctor_id,omitempty"`
	DepartmentID          *uuid.UUID `db:"department_id" json:"department_id,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}
