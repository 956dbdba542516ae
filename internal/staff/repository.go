package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDoctorNotFound = errors.New("doctor not found in this clinic")
	ErrEmailTaken     = errors.New("email already registered for this clinic")
)

// Repository contains all DB interactions needed by the staff service.
type Repository interface {
	GetByID(ctx context.Context, clinicID, id uuid.UUID) (*User, error)
	GetActiveDoctor(ctx context.Context, clinicID, doctorID uuid.UUID) (*User, error)
	Create(ctx context.Context, u *User) error
	ListByClinic(ctx context.Context, clinicID uuid.UUID, role Role) ([]User, error)
}
