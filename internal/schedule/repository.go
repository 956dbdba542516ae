package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrScheduleNotFound = errors.New("doctor schedule not found")
	ErrDoctorNotFound   = errors.New("doctor not found in this clinic")
)

// Repository contains all DB interactions needed by the schedule service.
type Repository interface {
	// Upsert atomically creates or replaces the schedule keyed on
	// (clinic, doctor, context), forcing it active.
	Upsert(ctx context.Context, s *DoctorSchedule) error

	// FindActive returns all active schedules for a doctor in stable
	// store order, typically zero to two rows.
	FindActive(ctx context.Context, clinicID, doctorID uuid.UUID) ([]DoctorSchedule, error)

	Deactivate(ctx context.Context, clinicID, doctorID uuid.UUID, sc Context) error
}

// DoctorDirectory is the slice of the staff service the schedule service
// needs: the doctor must exist, belong to the clinic, hold the doctor role,
// and be active.
type DoctorDirectory interface {
	ActiveDoctorExists(ctx context.Context, clinicID, doctorID uuid.UUID) (bool, error)
}
