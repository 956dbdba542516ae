package staff

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of staff roles. Role checks across the codebase
// compare against these values, never free-form strings.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleDoctor, RoleReceptionist:
		return true
	}
	return false
}

// DoctorProfile is present only for users with RoleDoctor.
type DoctorProfile struct {
	RegistrationNumber string  `json:"registration_number,omitempty"`
	Specialization     string  `json:"specialization,omitempty"`
	Qualification      string  `json:"qualification,omitempty"`
	ConsultationFee    float64 `json:"consultation_fee,omitempty"`
}

type User struct {
	ID            uuid.UUID
	ClinicID      uuid.UUID
	FullName      string
	Email         string
	Phone         string
	PasswordHash  string
	Role          Role
	DoctorProfile *DoctorProfile
	Permissions   []string
	Active        bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
