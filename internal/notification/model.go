package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAppointmentConfirmation Type = "appointment_confirmation"
	TypeAppointmentReminder     Type = "appointment_reminder"
	TypeHospitalBookingAlert    Type = "hospital_time_booking_alert"
	TypeFollowUp                Type = "follow_up"
	TypeBillingDue              Type = "billing_due"
	TypeGeneral                 Type = "general"
)

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelEmail    Channel = "email"
	ChannelInApp    Channel = "in_app"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusFailed    Status = "failed"
)

// Notification is one outbox row. The platform only ever enqueues; the
// notify worker hands queued rows to the broker and records the outcome.
type Notification struct {
	ID            uuid.UUID
	ClinicID      uuid.UUID
	UserID        *uuid.UUID
	PatientID     *uuid.UUID
	AppointmentID *uuid.UUID
	Type          Type
	Channel       Channel
	Recipient     string
	TemplateCode  string
	Payload       map[string]any
	Status        Status
	FailureReason string
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
