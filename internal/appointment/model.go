package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusBooked    Status = "booked"
	StatusWaiting   Status = "waiting"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusWaiting, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Completed and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusBooked:
		return next == StatusWaiting || next == StatusCompleted || next == StatusCancelled
	case StatusWaiting:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

type Source string

const (
	SourceWalkIn   Source = "walkin"
	SourcePhone    Source = "phone"
	SourceWhatsApp Source = "whatsapp"
	SourceWeb      Source = "web"
	SourceStaff    Source = "staff"
)

func (s Source) Valid() bool {
	switch s {
	case SourceWalkIn, SourcePhone, SourceWhatsApp, SourceWeb, SourceStaff:
		return true
	}
	return false
}

type Type string

const (
	TypeNew       Type = "new"
	TypeFollowUp  Type = "follow_up"
	TypeEmergency Type = "emergency"
)

func (t Type) Valid() bool {
	return t == TypeNew || t == TypeFollowUp || t == TypeEmergency
}

// BookingContext is the resolved context tag stored on an appointment at
// creation time. It is derived from the doctor's schedules, never supplied
// by the client, and never changes afterwards.
type BookingContext string

const (
	BookingClinicTime   BookingContext = "clinic_time"
	BookingHospitalTime BookingContext = "hospital_time"
)

type Appointment struct {
	ID                 uuid.UUID
	ClinicID           uuid.UUID
	PatientID          uuid.UUID
	DoctorID           uuid.UUID
	BookedBy           *uuid.UUID // nil for automated channels
	Source             Source
	Date               time.Time // calendar date, time of day ignored
	StartTime          string    // HH:MM
	EndTime            string    // HH:MM
	Type               Type
	Status             Status
	BookingContext     BookingContext
	Reason             string
	Notes              string
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
