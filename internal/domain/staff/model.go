package staff

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table. Every doctor is backed by a user account
// and assigned to a department.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	DepartmentID   uuid.UUID `db:"department_id" json:"department_id"`
	LicenseNumber  string    `db:"license_number" json:"license_number"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Email          *string   `db:"email" json:"email,omitempty"`
	RoomNumber     *string   `db:"room_number" json:"room_number,omitempty"`
	WorkingHours   *string   `db:"working_hours" json:"working_hours,omitempty"`
	Biography      *string   `db:"biography" json:"biography,omitempty"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
