package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/caredesk/clinic-platform/internal/schedule"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrSlotOutsideSchedule  = errors.New("requested slot is outside doctor clinic/hospital schedule")
	ErrSlotTaken            = errors.New("doctor already has an appointment in the selected slot")
	ErrBookingInProgress    = errors.New("another booking for this doctor is in progress, please retry")
	ErrInvalidTransition    = errors.New("invalid appointment status transition")
	ErrCancelReasonRequired = errors.New("cancellation reason is required")
)

// Repository contains all DB interactions needed by the booking service.
type Repository interface {
	// ListActiveForDoctorDate returns appointments for (clinic, doctor,
	// date) whose status still blocks the slot (booked or waiting).
	ListActiveForDoctorDate(ctx context.Context, clinicID, doctorID uuid.UUID, date time.Time) ([]Appointment, error)

	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, clinicID, id uuid.UUID) (*Appointment, error)
	UpdateStatus(ctx context.Context, a *Appointment) error

	ListForClinicDate(ctx context.Context, clinicID uuid.UUID, date time.Time) ([]Appointment, error)
}

// ScheduleFinder is the slice of the schedule service the booking path needs.
type ScheduleFinder interface {
	FindActiveSchedules(ctx context.Context, clinicID, doctorID uuid.UUID) ([]schedule.DoctorSchedule, error)
}

// Notifier enqueues the out-of-band alert sent to a doctor when a booking
// lands in their hospital time. Enqueueing failures never unwind a booking.
type Notifier interface {
	HospitalBookingAlert(ctx context.Context, appt *Appointment) error
}
